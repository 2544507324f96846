package config

import "os"

const (
	EnvURL    = "REDMINE_URL"
	EnvAPIKey = "REDMINE_API_KEY"
)

// Env is a key/value source for environment lookups.
type Env interface {
	Lookup(key string) (string, bool)
}

// OSEnv reads the process environment.
type OSEnv struct{}

func (OSEnv) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

// MapEnv is a fixed environment.
type MapEnv map[string]string

func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// lookup treats empty values as unset.
func lookup(env Env, key string) string {
	if env == nil {
		return ""
	}
	v, ok := env.Lookup(key)
	if !ok {
		return ""
	}
	return v
}
