package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"redmine-cli/internal/apperr"
	"redmine-cli/internal/fsutil"
)

const profileListHint = "Use `rdm profile list` to see available profiles."

// DefaultProfileName is used by `config set` when no profile exists yet.
const DefaultProfileName = "default"

// Profile is one named server identity.
type Profile struct {
	Name   string `toml:"name"`
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
}

// Store is the persisted set of profiles. Active, when non-empty, is always
// a key of Profiles.
type Store struct {
	Active   string             `toml:"active,omitempty"`
	Profiles map[string]Profile `toml:"profiles"`
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{Profiles: map[string]Profile{}}
}

// LoadStore reads the profile file. A missing file yields an empty store.
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewStore(), nil
		}
		return nil, apperr.IO("failed to read profile file "+path, err)
	}

	s := NewStore()
	if _, err := toml.Decode(string(data), s); err != nil {
		return nil, apperr.Config(fmt.Sprintf("failed to parse profile file %s: %v", path, err)).
			WithHint("Fix or remove the file, then run `rdm profile add`.")
	}
	if s.Profiles == nil {
		s.Profiles = map[string]Profile{}
	}
	if _, ok := s.Profiles[s.Active]; s.Active != "" && !ok {
		return nil, apperr.Config(fmt.Sprintf("profile file %s names unknown active profile %q", path, s.Active))
	}
	return s, nil
}

// Save rewrites the whole store at path.
func (s *Store) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return apperr.Config(fmt.Sprintf("failed to serialize profiles: %v", err))
	}
	if err := fsutil.WriteFileAtomic(path, buf.Bytes(), 0o600); err != nil {
		return apperr.IO("failed to save profile file", err)
	}
	return nil
}

// Add inserts or replaces p. The first profile ever added becomes active.
func (s *Store) Add(p Profile) {
	if s.Profiles == nil {
		s.Profiles = map[string]Profile{}
	}
	s.Profiles[p.Name] = p
	if s.Active == "" {
		s.Active = p.Name
	}
}

// Delete removes a profile. When it was active, the first remaining profile
// by name takes over.
func (s *Store) Delete(name string) error {
	if _, ok := s.Profiles[name]; !ok {
		return apperr.NotFound("Profile", name, profileListHint)
	}
	delete(s.Profiles, name)
	if s.Active == name {
		s.Active = ""
		if names := s.Names(); len(names) > 0 {
			s.Active = names[0]
		}
	}
	return nil
}

func (s *Store) SetActive(name string) error {
	if _, ok := s.Profiles[name]; !ok {
		return apperr.NotFound("Profile", name, profileListHint)
	}
	s.Active = name
	return nil
}

// ActiveProfile returns the active profile, if any.
func (s *Store) ActiveProfile() (Profile, bool) {
	if s == nil || s.Active == "" {
		return Profile{}, false
	}
	p, ok := s.Profiles[s.Active]
	return p, ok
}

// Names returns profile names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.Profiles))
	for name := range s.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetValue updates one field of the active profile, creating the default
// profile when the store is empty. It returns the profile that was changed.
func (s *Store) SetValue(key, value string) (string, error) {
	p, ok := s.ActiveProfile()
	if !ok {
		p = Profile{Name: DefaultProfileName}
	}

	switch key {
	case "url":
		p.URL = value
	case "api-key", "api_key":
		p.APIKey = value
	default:
		return "", apperr.Validationf("unknown config key: %s", key).
			WithHint("Supported keys: url, api-key.")
	}

	s.Add(p)
	return p.Name, nil
}

type yamlProfile struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
	Active bool   `yaml:"active,omitempty"`
}

type yamlStore struct {
	Active   string        `yaml:"active,omitempty"`
	Profiles []yamlProfile `yaml:"profiles"`
}

// RenderYAML renders the store for display with every API key redacted.
func (s *Store) RenderYAML() (string, error) {
	view := yamlStore{Active: s.Active, Profiles: []yamlProfile{}}
	for _, name := range s.Names() {
		p := s.Profiles[name]
		view.Profiles = append(view.Profiles, yamlProfile{
			Name:   p.Name,
			URL:    p.URL,
			APIKey: RedactKey(p.APIKey),
			Active: name == s.Active,
		})
	}
	data, err := yaml.Marshal(&view)
	if err != nil {
		return "", fmt.Errorf("failed to format profiles: %w", err)
	}
	return string(data), nil
}
