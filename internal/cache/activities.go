// Package cache keeps the time entry activity list on disk for a day so
// activity names can be resolved without a request per command.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"redmine-cli/internal/apperr"
	"redmine-cli/internal/fsutil"
	"redmine-cli/internal/redmine"
)

// TTL is how long a fetched activity list stays valid.
const TTL = 24 * time.Hour

// ActivityCache is the persisted activity list.
type ActivityCache struct {
	UpdatedAt  int64              `json:"updated_at"`
	Activities []redmine.Activity `json:"activities"`
}

// New stamps activities with now.
func New(activities []redmine.Activity, now time.Time) *ActivityCache {
	return &ActivityCache{UpdatedAt: now.Unix(), Activities: activities}
}

// IsValidAt reports whether the cache is younger than TTL at now. A cache
// stamped in the future counts as fresh.
func (c *ActivityCache) IsValidAt(now time.Time) bool {
	return now.Unix()-c.UpdatedAt < int64(TTL/time.Second)
}

// AgeStringAt describes the cache age at now as "Ns ago", "Nm ago" or "Nh ago".
func (c *ActivityCache) AgeStringAt(now time.Time) string {
	age := now.Unix() - c.UpdatedAt
	if age < 0 {
		age = 0
	}
	switch {
	case age < 60:
		return fmt.Sprintf("%ds ago", age)
	case age < 3600:
		return fmt.Sprintf("%dm ago", age/60)
	default:
		return fmt.Sprintf("%dh ago", age/3600)
	}
}

// Load reads the cache. A missing file returns nil and no error; a corrupt
// file returns the parse error and callers decide whether to ignore it.
func Load(path string) (*ActivityCache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read activity cache: %w", err)
	}
	var c ActivityCache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse activity cache %s: %w", path, err)
	}
	return &c, nil
}

// Save writes the cache, creating parent directories.
func (c *ActivityCache) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode activity cache: %w", err)
	}
	return fsutil.WriteFileAtomic(path, data, 0o644)
}

// Resolve finds an activity by token. A numeric token is tried as an id
// first; any token that misses falls back to a case-insensitive name match.
func (c *ActivityCache) Resolve(token string) (redmine.Activity, bool) {
	if id, err := strconv.ParseUint(token, 10, 31); err == nil {
		for _, a := range c.Activities {
			if a.ID == int(id) {
				return a, true
			}
		}
	}
	for _, a := range c.Activities {
		if strings.EqualFold(a.Name, token) {
			return a, true
		}
	}
	return redmine.Activity{}, false
}

// ResolveID is Resolve returning the id or a validation error.
func (c *ActivityCache) ResolveID(token string) (int, error) {
	a, ok := c.Resolve(token)
	if !ok {
		return 0, apperr.Validationf("Unknown activity: '%s'", token).
			WithHint("Use `rdm time activities list` to see available activities.")
	}
	return a.ID, nil
}
