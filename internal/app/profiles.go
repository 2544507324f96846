package app

import (
	"fmt"
	"net/url"
	"strings"

	"redmine-cli/internal/apperr"
	"redmine-cli/internal/config"
	"redmine-cli/internal/output"
)

type ProfileSummary struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	IsActive bool   `json:"is_active"`
}

type ProfileAdded ProfileSummary

func (r ProfileAdded) Markdown(output.Meta) string {
	var b strings.Builder
	b.WriteString("## Profile Added\n\n")
	b.WriteString(output.KVTable([]output.KV{
		{Key: "Name", Value: r.Name},
		{Key: "URL", Value: r.URL},
		{Key: "Active", Value: yesNo(r.IsActive)},
	}))
	b.WriteString("\n*Use `rdm ping` to test the connection*\n")
	return b.String()
}

func (s *Session) loadStore() (*config.Store, error) {
	return config.LoadStore(s.Paths.ConfigFile)
}

// AddProfile stores a profile, replacing one of the same name.
func (s *Session) AddProfile(name, rawURL, apiKey string) (ProfileAdded, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ProfileAdded{}, apperr.Validation("--name is required")
	}
	if err := validateServerURL(rawURL); err != nil {
		return ProfileAdded{}, err
	}
	if strings.TrimSpace(apiKey) == "" {
		return ProfileAdded{}, apperr.Validation("--api-key is required").
			WithHint("Find your key under My account > API access key in Redmine.")
	}

	store, err := s.loadStore()
	if err != nil {
		return ProfileAdded{}, err
	}
	store.Add(config.Profile{Name: name, URL: strings.TrimRight(rawURL, "/"), APIKey: apiKey})
	if err := store.Save(s.Paths.ConfigFile); err != nil {
		return ProfileAdded{}, err
	}
	s.Log.Debug().Str("profile", name).Str("path", s.Paths.ConfigFile).Msg("profile saved")

	p := store.Profiles[name]
	return ProfileAdded{Name: p.Name, URL: p.URL, IsActive: store.Active == name}, nil
}

func validateServerURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return apperr.Validation("--url is required")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperr.Validationf("invalid URL: '%s'", raw).
			WithHint("Use a full URL such as https://redmine.example.com")
	}
	return nil
}

type ProfileActivated struct {
	Name string `json:"name"`
}

func (r ProfileActivated) Markdown(output.Meta) string {
	return fmt.Sprintf("## Profile Activated\n\nNow using profile **%s**.\n", r.Name)
}

func (s *Session) UseProfile(name string) (ProfileActivated, error) {
	store, err := s.loadStore()
	if err != nil {
		return ProfileActivated{}, err
	}
	if err := store.SetActive(name); err != nil {
		return ProfileActivated{}, err
	}
	if err := store.Save(s.Paths.ConfigFile); err != nil {
		return ProfileActivated{}, err
	}
	return ProfileActivated{Name: name}, nil
}

type ProfileList struct {
	Profiles []ProfileSummary `json:"profiles"`
	Active   *string          `json:"active"`
}

func (r ProfileList) Markdown(output.Meta) string {
	var b strings.Builder
	b.WriteString("## Profiles\n\n")
	if len(r.Profiles) == 0 {
		b.WriteString("No profiles configured.\n\n")
		b.WriteString("*Use `rdm profile add --name <name> --url <url> --api-key <key>` to add a profile.*\n")
		return b.String()
	}
	rows := make([][]string, 0, len(r.Profiles))
	for _, p := range r.Profiles {
		marker := ""
		if p.IsActive {
			marker = "*"
		}
		rows = append(rows, []string{marker, p.Name, p.URL})
	}
	b.WriteString(output.Table([]string{"Active", "Name", "URL"}, rows))
	return b.String()
}

func (s *Session) ListProfiles() (ProfileList, error) {
	store, err := s.loadStore()
	if err != nil {
		return ProfileList{}, err
	}
	res := ProfileList{Profiles: []ProfileSummary{}}
	for _, name := range store.Names() {
		p := store.Profiles[name]
		res.Profiles = append(res.Profiles, ProfileSummary{Name: name, URL: p.URL, IsActive: name == store.Active})
	}
	if store.Active != "" {
		active := store.Active
		res.Active = &active
	}
	return res, nil
}

type ProfileDeleted struct {
	Name      string  `json:"name"`
	NewActive *string `json:"new_active"`
}

func (r ProfileDeleted) Markdown(output.Meta) string {
	md := fmt.Sprintf("## Profile Deleted\n\nProfile **%s** has been deleted.\n", r.Name)
	if r.NewActive != nil {
		md += fmt.Sprintf("\nActive profile is now **%s**.\n", *r.NewActive)
	}
	return md
}

func (s *Session) DeleteProfile(name string) (ProfileDeleted, error) {
	store, err := s.loadStore()
	if err != nil {
		return ProfileDeleted{}, err
	}
	if err := store.Delete(name); err != nil {
		return ProfileDeleted{}, err
	}
	if err := store.Save(s.Paths.ConfigFile); err != nil {
		return ProfileDeleted{}, err
	}
	res := ProfileDeleted{Name: name}
	if store.Active != "" {
		active := store.Active
		res.NewActive = &active
	}
	return res, nil
}

// ConfigInfo is the resolved connection as shown by `config show`.
type ConfigInfo struct {
	URL            string  `json:"url"`
	APIKeyRedacted string  `json:"api_key_redacted"`
	Source         string  `json:"source"`
	ProfileName    *string `json:"profile_name"`
}

func (r ConfigInfo) Markdown(output.Meta) string {
	pairs := []output.KV{
		{Key: "URL", Value: r.URL},
		{Key: "API Key", Value: r.APIKeyRedacted},
		{Key: "Source", Value: r.Source},
	}
	if r.ProfileName != nil {
		pairs = append(pairs, output.KV{Key: "Profile", Value: *r.ProfileName})
	}
	return "## Current Configuration\n\n" + output.KVTable(pairs)
}

// ShowConfig reports the configuration an API command would use.
func (s *Session) ShowConfig() ConfigInfo {
	info := ConfigInfo{
		URL:            s.Config.URL,
		APIKeyRedacted: s.Config.RedactedAPIKey(),
		Source:         s.Config.SourceLabel(),
	}
	if s.Config.ProfileName != "" {
		name := s.Config.ProfileName
		info.ProfileName = &name
	}
	return info
}

type ConfigUpdated struct {
	Profile string `json:"profile"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

func (r ConfigUpdated) Markdown(output.Meta) string {
	return fmt.Sprintf("## Configuration Updated\n\nSet `%s` = `%s` on profile **%s**.\n", r.Key, r.Value, r.Profile)
}

// SetConfigValue edits the active profile, creating the default one if the
// store is empty.
func (s *Session) SetConfigValue(key, value string) (ConfigUpdated, error) {
	if key == "url" {
		if err := validateServerURL(value); err != nil {
			return ConfigUpdated{}, err
		}
		value = strings.TrimRight(value, "/")
	}
	store, err := s.loadStore()
	if err != nil {
		return ConfigUpdated{}, err
	}
	name, err := store.SetValue(key, value)
	if err != nil {
		return ConfigUpdated{}, err
	}
	if err := store.Save(s.Paths.ConfigFile); err != nil {
		return ConfigUpdated{}, err
	}

	shown := value
	if key != "url" {
		shown = config.RedactKey(value)
	}
	return ConfigUpdated{Profile: name, Key: key, Value: shown}, nil
}

// ConfigFile is the raw profile store as shown by `config view`.
type ConfigFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func (r ConfigFile) Markdown(output.Meta) string {
	return fmt.Sprintf("## Config File\n\n`%s`\n\n```yaml\n%s```\n", r.Path, r.Content)
}

func (s *Session) ViewConfig() (ConfigFile, error) {
	store, err := s.loadStore()
	if err != nil {
		return ConfigFile{}, err
	}
	content, err := store.RenderYAML()
	if err != nil {
		return ConfigFile{}, apperr.Config(err.Error())
	}
	return ConfigFile{Path: s.Paths.ConfigFile, Content: content}, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
