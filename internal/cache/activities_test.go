package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redmine-cli/internal/apperr"
	"redmine-cli/internal/redmine"
)

func yes() *bool { b := true; return &b }

func sample() *ActivityCache {
	return New([]redmine.Activity{
		{ID: 8, Name: "Design"},
		{ID: 9, Name: "Development", IsDefault: yes()},
		{ID: 10, Name: "8"},
		{ID: 11, Name: "42"},
	}, time.Unix(1_700_000_000, 0))
}

func TestResolve_IDBeforeName(t *testing.T) {
	a, ok := sample().Resolve("8")
	require.True(t, ok)
	assert.Equal(t, "Design", a.Name, "numeric token must match the id even when a name equals it")
}

func TestResolve_NumericFallsBackToName(t *testing.T) {
	a, ok := sample().Resolve("42")
	require.True(t, ok)
	assert.Equal(t, 11, a.ID)
}

func TestResolve_CaseInsensitiveName(t *testing.T) {
	a, ok := sample().Resolve("development")
	require.True(t, ok)
	assert.Equal(t, 9, a.ID)

	_, ok = sample().Resolve("Dev")
	assert.False(t, ok, "name match is exact apart from case")
}

func TestResolveID_Unknown(t *testing.T) {
	_, err := sample().ResolveID("Testing")
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Contains(t, e.Hint, "rdm time activities list")
}

func TestIsValidAt(t *testing.T) {
	c := sample()

	created := time.Unix(c.UpdatedAt, 0)
	assert.True(t, c.IsValidAt(created.Add(TTL-time.Second)))
	assert.False(t, c.IsValidAt(created.Add(TTL)))
	assert.False(t, c.IsValidAt(created.Add(TTL+time.Hour)))
	assert.True(t, c.IsValidAt(created.Add(-time.Hour)))
}

func TestAgeStringAt(t *testing.T) {
	c := &ActivityCache{UpdatedAt: 1_000_000}
	base := time.Unix(1_000_000, 0)
	assert.Equal(t, "5s ago", c.AgeStringAt(base.Add(5*time.Second)))
	assert.Equal(t, "2m ago", c.AgeStringAt(base.Add(150*time.Second)))
	assert.Equal(t, "3h ago", c.AgeStringAt(base.Add(3*time.Hour+time.Minute)))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "activities.json")
	c := sample()

	require.NoError(t, c.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)

	if diff := cmp.Diff(c, loaded); diff != "" {
		t.Errorf("cache mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	c, err := Load(filepath.Join(dir, "activities.json"))
	require.NoError(t, err)
	assert.Nil(t, c)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}
