package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redmine-cli/internal/apperr"
	"redmine-cli/internal/cache"
	"redmine-cli/internal/config"
	"redmine-cli/internal/output"
	"redmine-cli/internal/redmine"
)

const activitiesJSON = `{"time_entry_activities":[{"id":8,"name":"Design"},{"id":9,"name":"Development","is_default":true}]}`

type testEnv struct {
	session *Session
	calls   *int32
	stdout  *bytes.Buffer
}

func newSession(t *testing.T, dryRun bool, h http.HandlerFunc) testEnv {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	stdout := &bytes.Buffer{}
	rt := &Runtime{
		Env:    config.MapEnv{},
		Stdout: stdout,
		Stderr: io.Discard,
		Now:    func() time.Time { return time.Date(2024, 5, 17, 15, 0, 0, 0, time.Local) },
	}
	cfg := config.Config{URL: srv.URL, APIKey: "test-key-123456"}
	s := &Session{
		Config: cfg,
		Client: redmine.NewClient(cfg, redmine.Options{
			DryRun:          dryRun,
			MaxElapsed:      100 * time.Millisecond,
			InitialInterval: time.Millisecond,
		}),
		Paths:  config.PathsIn(t.TempDir()),
		Log:    zerolog.Nop(),
		Format: output.FormatMarkdown,
		DryRun: dryRun,
		rt:     rt,
	}
	return testEnv{session: s, calls: &calls, stdout: stdout}
}

func reply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func requireKind(t *testing.T, err error, kind apperr.Kind) *apperr.Error {
	t.Helper()
	e, ok := apperr.As(err)
	require.True(t, ok, "expected app error, got %v", err)
	require.Equal(t, kind, e.Kind, "message: %s", e.Message)
	return e
}

func TestCreateTimeEntry_ResolvesActivityAndDefaultsDate(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/enumerations/time_entry_activities.json":
			reply(w, 200, activitiesJSON)
		case "/time_entries.json":
			var body struct {
				TimeEntry map[string]any `json:"time_entry"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 123.0, body.TimeEntry["issue_id"])
			assert.Equal(t, 9.0, body.TimeEntry["activity_id"])
			assert.Equal(t, "2024-05-17", body.TimeEntry["spent_on"])
			assert.NotContains(t, body.TimeEntry, "project_id")
			reply(w, 201, `{"time_entry":{"id":77,"hours":2.5,"spent_on":"2024-05-17","activity":{"id":9,"name":"Development"},"issue":{"id":123}}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	res, err := env.session.CreateTimeEntry(context.Background(), TimeCreateArgs{Issue: 123, Hours: 2.5, Activity: "development"})
	require.NoError(t, err)
	assert.Equal(t, 77, res.TimeEntry.ID)
	assert.Contains(t, res.Markdown(output.Meta{}), "rdm time get --id 77")

	c, err := cache.Load(env.session.Paths.ActivityCache)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Len(t, c.Activities, 2)
}

func TestCreateTimeEntry_UsesFreshCache(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/time_entries.json", r.URL.Path)
		reply(w, 201, `{"time_entry":{"id":1,"hours":1,"activity":{"id":8,"name":"Design"}}}`)
	})
	require.NoError(t, cache.New([]redmine.Activity{{ID: 8, Name: "Design"}}, env.session.rt.now()).Save(env.session.Paths.ActivityCache))

	_, err := env.session.CreateTimeEntry(context.Background(), TimeCreateArgs{Project: 4, Hours: 1, Activity: "Design"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(env.calls))
}

func TestCreateTimeEntry_Validation(t *testing.T) {
	tests := []struct {
		name string
		args TimeCreateArgs
	}{
		{"zero hours", TimeCreateArgs{Issue: 1, Hours: 0, Activity: "9"}},
		{"negative hours", TimeCreateArgs{Issue: 1, Hours: -1, Activity: "9"}},
		{"no target", TimeCreateArgs{Hours: 1, Activity: "9"}},
		{"both targets", TimeCreateArgs{Issue: 1, Project: 2, Hours: 1, Activity: "9"}},
		{"bad date", TimeCreateArgs{Issue: 1, Hours: 1, Activity: "9", SpentOn: "17/05/2024"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
				t.Errorf("unexpected request %s", r.URL.Path)
			})
			_, err := env.session.CreateTimeEntry(context.Background(), tt.args)
			requireKind(t, err, apperr.KindValidation)
			assert.Zero(t, atomic.LoadInt32(env.calls))
		})
	}
}

func TestCreateTimeEntry_UnknownActivity(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, activitiesJSON)
	})
	_, err := env.session.CreateTimeEntry(context.Background(), TimeCreateArgs{Issue: 1, Hours: 1, Activity: "Napping"})
	e := requireKind(t, err, apperr.KindValidation)
	assert.Contains(t, e.Hint, "rdm time activities list")
}

func TestCreateTimeEntry_DryRunAcceptsNumericActivity(t *testing.T) {
	env := newSession(t, true, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})
	_, err := env.session.CreateTimeEntry(context.Background(), TimeCreateArgs{Issue: 5, Hours: 1.5, Activity: "9"})
	e := requireKind(t, err, apperr.KindDryRun)
	assert.Contains(t, e.Message, "POST /time_entries.json")
	assert.Contains(t, e.Message, `"activity_id": 9`)
	assert.NoFileExists(t, env.session.Paths.ActivityCache)
}

const entriesJSON = `{"time_entries":[
	{"id":1,"hours":2,"spent_on":"2024-05-01","activity":{"id":9,"name":"Development"},"user":{"id":1,"name":"Ann"},"issue":{"id":10}},
	{"id":2,"hours":1.5,"spent_on":"2024-05-02","activity":{"id":8,"name":"Design"},"user":{"id":2,"name":"Bob"},"issue":{"id":9}},
	{"id":3,"hours":0.5,"spent_on":"2024-05-02","activity":{"id":9,"name":"Development"},"user":{"id":1,"name":"Ann"}}
],"total_count":40,"offset":0,"limit":3}`

func TestListTimeEntries_Plain(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2024-05-01", q.Get("from"))
		assert.Equal(t, "x", q.Get("cf_3"))
		reply(w, 200, entriesJSON)
	})

	res, err := env.session.ListTimeEntries(context.Background(), TimeListArgs{From: "2024-05-01", CustomFields: []string{"3=x"}, Limit: 3})
	require.NoError(t, err)
	require.NotNil(t, res.List)
	assert.Nil(t, res.Grouped)
	require.NotNil(t, res.Meta().NextOffset)
	assert.Equal(t, 3, *res.Meta().NextOffset)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"time_entries"`)
}

func TestListTimeEntries_Grouped(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, entriesJSON)
	})

	res, err := env.session.ListTimeEntries(context.Background(), TimeListArgs{GroupBy: "issue", Limit: 3})
	require.NoError(t, err)
	require.NotNil(t, res.Grouped)
	assert.Nil(t, res.List)

	var names []string
	for _, g := range res.Grouped.Groups {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"#10", "#9", "No Issue"}, names)
	assert.InDelta(t, 4.0, res.Grouped.TotalHours, 1e-9)
	assert.Equal(t, 40, *res.Meta().TotalCount)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"group_by":"Issue"`)
}

func TestListTimeEntries_BadGroupByFailsBeforeRequest(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})
	_, err := env.session.ListTimeEntries(context.Background(), TimeListArgs{GroupBy: "weekday", Limit: 25})
	requireKind(t, err, apperr.KindValidation)

	_, err = env.session.ListTimeEntries(context.Background(), TimeListArgs{Limit: 500})
	requireKind(t, err, apperr.KindValidation)
}

func TestUpdateTimeEntry(t *testing.T) {
	t.Run("nothing to update", func(t *testing.T) {
		env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {})
		_, err := env.session.UpdateTimeEntry(context.Background(), TimeUpdateArgs{ID: 3})
		e := requireKind(t, err, apperr.KindValidation)
		assert.Equal(t, "Nothing to update", e.Message)
		assert.Zero(t, atomic.LoadInt32(env.calls))
	})

	t.Run("activity alone is an update", func(t *testing.T) {
		env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/enumerations/time_entry_activities.json":
				reply(w, 200, activitiesJSON)
			case r.Method == http.MethodPut:
				var body map[string]map[string]any
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, map[string]any{"activity_id": 9.0}, body["time_entry"])
				w.WriteHeader(http.StatusNoContent)
			default:
				reply(w, 200, `{"time_entry":{"id":3,"hours":1,"activity":{"id":9,"name":"Development"}}}`)
			}
		})
		a := "development"
		res, err := env.session.UpdateTimeEntry(context.Background(), TimeUpdateArgs{ID: 3, Activity: &a})
		require.NoError(t, err)
		assert.Equal(t, "Development", res.TimeEntry.Activity.Name)
	})

	t.Run("hours must be positive", func(t *testing.T) {
		env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {})
		h := 0.0
		_, err := env.session.UpdateTimeEntry(context.Background(), TimeUpdateArgs{ID: 3, Hours: &h})
		requireKind(t, err, apperr.KindValidation)
	})

	t.Run("comment only", func(t *testing.T) {
		env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPut {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			reply(w, 200, `{"time_entry":{"id":3,"hours":1,"comments":"pairing","activity":{"id":9,"name":"Development"}}}`)
		})
		c := "pairing"
		res, err := env.session.UpdateTimeEntry(context.Background(), TimeUpdateArgs{ID: 3, Comment: &c})
		require.NoError(t, err)
		assert.Equal(t, "pairing", res.TimeEntry.Comments)
	})
}

func TestDeleteTimeEntry_NotFound(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		reply(w, 404, ``)
	})
	_, err := env.session.DeleteTimeEntry(context.Background(), 999)
	e := requireKind(t, err, apperr.KindNotFound)
	assert.Equal(t, "999", e.ID)
}

func TestActivities_CacheAge(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, activitiesJSON)
	})
	ctx := context.Background()

	res, err := env.session.Activities(ctx, false)
	require.NoError(t, err)
	assert.False(t, res.Cached)

	res, err = env.session.Activities(ctx, false)
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.NotEmpty(t, res.CacheAge)
	assert.Contains(t, res.Markdown(output.Meta{}), "--refresh")
	assert.EqualValues(t, 1, atomic.LoadInt32(env.calls))

	_, err = env.session.Activities(ctx, true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(env.calls))
}

func TestActivities_CacheExpiresOnSessionClock(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, activitiesJSON)
	})
	ctx := context.Background()
	written := env.session.rt.now()
	require.NoError(t, cache.New([]redmine.Activity{{ID: 8, Name: "Design"}}, written).Save(env.session.Paths.ActivityCache))

	env.session.rt.Now = func() time.Time { return written.Add(23 * time.Hour) }
	res, err := env.session.Activities(ctx, false)
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.Equal(t, "23h ago", res.CacheAge)
	assert.Zero(t, atomic.LoadInt32(env.calls))

	env.session.rt.Now = func() time.Time { return written.Add(25 * time.Hour) }
	res, err = env.session.Activities(ctx, false)
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.EqualValues(t, 1, atomic.LoadInt32(env.calls))

	c, err := cache.Load(env.session.Paths.ActivityCache)
	require.NoError(t, err)
	assert.Equal(t, written.Add(25*time.Hour).Unix(), c.UpdatedAt)
}

func TestListIssues_SearchUsesSearchEndpoint(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search.json":
			reply(w, 200, `{"results":[],"total_count":0,"offset":0,"limit":25}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	list, err := env.session.ListIssues(context.Background(), IssueListArgs{Search: "login", Limit: 25})
	require.NoError(t, err)
	assert.Empty(t, list.Issues)
}

func TestCreateIssue(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Issue map[string]any `json:"issue"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Broken login", body.Issue["subject"])
		assert.Equal(t, 2.0, body.Issue["tracker_id"])
		assert.NotContains(t, body.Issue, "priority_id")
		reply(w, 201, `{"issue":{"id":55,"subject":"Broken login","project":{"id":1,"name":"Web"},"status":{"id":1,"name":"New"},"priority":{"id":2,"name":"Normal"}}}`)
	})

	res, err := env.session.CreateIssue(context.Background(), IssueCreateArgs{Project: 1, Subject: "Broken login", Tracker: 2})
	require.NoError(t, err)
	assert.Equal(t, 55, res.Issue.ID)
	assert.Contains(t, res.Markdown(output.Meta{}), "## Issue Created")

	_, err = env.session.CreateIssue(context.Background(), IssueCreateArgs{Project: 1, Subject: "  "})
	requireKind(t, err, apperr.KindValidation)
}

func TestUpdateIssue(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/issues/7.json", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	ctx := context.Background()

	_, err := env.session.UpdateIssue(ctx, IssueUpdateArgs{ID: 7})
	requireKind(t, err, apperr.KindValidation)

	ratio := 120
	_, err = env.session.UpdateIssue(ctx, IssueUpdateArgs{ID: 7, DoneRatio: &ratio})
	requireKind(t, err, apperr.KindValidation)
	assert.Zero(t, atomic.LoadInt32(env.calls))

	ratio = 50
	res, err := env.session.UpdateIssue(ctx, IssueUpdateArgs{ID: 7, DoneRatio: &ratio})
	require.NoError(t, err)
	assert.Contains(t, res.Markdown(output.Meta{}), "Issue #7 has been updated.")
}

func TestProfiles_Lifecycle(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {})
	s := env.session

	added, err := s.AddProfile("work", "https://redmine.example.com/", "abcdefghijkl")
	require.NoError(t, err)
	assert.True(t, added.IsActive)
	assert.Equal(t, "https://redmine.example.com", added.URL)

	added, err = s.AddProfile("home", "http://localhost:3000", "zzzzzzzzzzzz")
	require.NoError(t, err)
	assert.False(t, added.IsActive)

	_, err = s.UseProfile("home")
	require.NoError(t, err)

	list, err := s.ListProfiles()
	require.NoError(t, err)
	require.Len(t, list.Profiles, 2)
	require.NotNil(t, list.Active)
	assert.Equal(t, "home", *list.Active)

	deleted, err := s.DeleteProfile("home")
	require.NoError(t, err)
	require.NotNil(t, deleted.NewActive)
	assert.Equal(t, "work", *deleted.NewActive)

	_, err = s.DeleteProfile("home")
	requireKind(t, err, apperr.KindNotFound)
}

func TestAddProfile_Validation(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {})
	_, err := env.session.AddProfile("", "https://x", "k")
	requireKind(t, err, apperr.KindValidation)
	_, err = env.session.AddProfile("a", "ftp://x", "k")
	requireKind(t, err, apperr.KindValidation)
	_, err = env.session.AddProfile("a", "https://x", "")
	requireKind(t, err, apperr.KindValidation)
	assert.NoFileExists(t, env.session.Paths.ConfigFile)
}

func TestListProfiles_EmptyHint(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {})
	list, err := env.session.ListProfiles()
	require.NoError(t, err)
	assert.Nil(t, list.Active)
	assert.Contains(t, list.Markdown(output.Meta{}), "rdm profile add --name <name>")
}

func TestSetConfigValue_CreatesDefaultProfile(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {})
	s := env.session

	res, err := s.SetConfigValue("api-key", "0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultProfileName, res.Profile)
	assert.Equal(t, "0123...cdef", res.Value)

	store, err := config.LoadStore(s.Paths.ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultProfileName, store.Active)

	view, err := s.ViewConfig()
	require.NoError(t, err)
	assert.NotContains(t, view.Content, "0123456789abcdef")
}

func TestShowConfig(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {})
	info := env.session.ShowConfig()
	assert.Equal(t, "test...3456", info.APIKeyRedacted)
	assert.Equal(t, "CLI flags", info.Source)
	assert.Nil(t, info.ProfileName)
	assert.Contains(t, info.Markdown(output.Meta{}), "## Current Configuration")
}

func TestParseUserStatus(t *testing.T) {
	for in, want := range map[string]int{"": 0, "active": 1, "Registered": 2, "locked": 3} {
		got, err := ParseUserStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseUserStatus("banned")
	requireKind(t, err, apperr.KindValidation)
}

func TestGetProject_RequiresOneSelector(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/web.json", r.URL.Path)
		reply(w, 200, `{"project":{"id":1,"name":"Web","identifier":"web"}}`)
	})
	ctx := context.Background()

	_, err := env.session.GetProject(ctx, 0, "")
	requireKind(t, err, apperr.KindValidation)
	_, err = env.session.GetProject(ctx, 1, "web")
	requireKind(t, err, apperr.KindValidation)

	p, err := env.session.GetProject(ctx, 0, "web")
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
}

func TestSession_Render(t *testing.T) {
	env := newSession(t, false, func(w http.ResponseWriter, r *http.Request) {})
	env.session.Format = output.FormatJSON
	require.NoError(t, env.session.Render(TimeEntryDeleted{ID: 4}, output.Meta{}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &got))
	assert.Equal(t, true, got["ok"])
	assert.Equal(t, map[string]any{"id": 4.0}, got["data"])
	assert.Nil(t, got["error"])
}
