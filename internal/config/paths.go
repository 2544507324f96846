package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDir = "redmine-cli"

// Paths locates the files rdm persists.
type Paths struct {
	ConfigFile    string
	CacheDir      string
	ActivityCache string
}

// DefaultPaths resolves the per-OS config and cache directories.
func DefaultPaths() (Paths, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to determine config directory: %w", err)
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to determine cache directory: %w", err)
	}
	return pathsFor(filepath.Join(configDir, appDir), filepath.Join(cacheDir, appDir)), nil
}

// PathsIn keeps every file under root. Used by tests.
func PathsIn(root string) Paths {
	return pathsFor(root, filepath.Join(root, "cache"))
}

func pathsFor(configDir, cacheDir string) Paths {
	return Paths{
		ConfigFile:    filepath.Join(configDir, "config.toml"),
		CacheDir:      cacheDir,
		ActivityCache: filepath.Join(cacheDir, "activities.json"),
	}
}
