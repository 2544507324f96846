package config

import (
	"redmine-cli/internal/apperr"
)

// Source names where a resolved value came from.
type Source string

const (
	SourceNone    Source = ""
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceProfile Source = "profile"
)

// Config is the effective connection for one invocation.
type Config struct {
	URL          string
	APIKey       string
	ProfileName  string
	URLSource    Source
	APIKeySource Source
}

// RedactedAPIKey returns the key in a form safe to print.
func (c Config) RedactedAPIKey() string { return RedactKey(c.APIKey) }

// SourceLabel describes the configuration source for display.
func (c Config) SourceLabel() string {
	switch {
	case c.ProfileName != "":
		return "config file"
	case c.URLSource == SourceEnv || c.APIKeySource == SourceEnv:
		return "environment variables"
	default:
		return "CLI flags"
	}
}

// RedactKey keeps the first and last four characters of long keys.
func RedactKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func missingCredentials() error {
	return apperr.Config("No Redmine credentials configured").
		WithHint("Set REDMINE_URL and REDMINE_API_KEY environment variables, or use `rdm profile add` to create a profile.")
}

// Resolve picks each field independently: CLI flag, then environment, then
// the active profile of store. store may be nil.
func Resolve(cliURL, cliAPIKey string, env Env, store *Store) (Config, error) {
	var cfg Config
	profile, hasProfile := store.ActiveProfile()

	cfg.URL, cfg.URLSource = pick(cliURL, lookup(env, EnvURL), profile.URL)
	cfg.APIKey, cfg.APIKeySource = pick(cliAPIKey, lookup(env, EnvAPIKey), profile.APIKey)

	if cfg.URL == "" || cfg.APIKey == "" {
		return Config{}, missingCredentials()
	}

	fromProfile := cfg.URLSource == SourceProfile || cfg.APIKeySource == SourceProfile
	cliComplete := cliURL != "" && cliAPIKey != ""
	if hasProfile && fromProfile && !cliComplete {
		cfg.ProfileName = profile.Name
	}
	return cfg, nil
}

func pick(flag, env, profile string) (string, Source) {
	switch {
	case flag != "":
		return flag, SourceFlag
	case env != "":
		return env, SourceEnv
	case profile != "":
		return profile, SourceProfile
	}
	return "", SourceNone
}

// Load resolves the configuration, reading the profile file only when flags
// and environment leave a field unset.
func Load(paths Paths, cliURL, cliAPIKey string, env Env) (Config, error) {
	if cfg, err := Resolve(cliURL, cliAPIKey, env, nil); err == nil {
		return cfg, nil
	}
	store, err := LoadStore(paths.ConfigFile)
	if err != nil {
		return Config{}, err
	}
	return Resolve(cliURL, cliAPIKey, env, store)
}
