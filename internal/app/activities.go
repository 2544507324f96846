package app

import (
	"context"
	"fmt"
	"strconv"

	"redmine-cli/internal/cache"
	"redmine-cli/internal/output"
	"redmine-cli/internal/redmine"
)

// ActivitiesResult is the output of `time activities list`.
type ActivitiesResult struct {
	Activities []redmine.Activity `json:"time_entry_activities"`
	Cached     bool               `json:"cached"`
	CacheAge   string             `json:"cache_age,omitempty"`
}

func (r ActivitiesResult) Markdown(meta output.Meta) string {
	md := redmine.ActivityList{TimeEntryActivities: r.Activities}.Markdown(meta)
	if r.Cached {
		md += fmt.Sprintf("\n*Cached %s. Use `--refresh` to reload from the server.*\n", r.CacheAge)
	}
	return md
}

// loadActivities returns the cached activity list when it is present and
// fresh, otherwise fetches it and rewrites the cache. Cache failures never
// fail the command.
func (s *Session) loadActivities(ctx context.Context, refresh bool) (*cache.ActivityCache, bool, error) {
	path := s.Paths.ActivityCache
	if !refresh {
		c, err := cache.Load(path)
		if err != nil {
			s.Log.Debug().Err(err).Msg("ignoring unreadable activity cache")
		}
		if c != nil && c.IsValidAt(s.rt.now()) {
			return c, true, nil
		}
	}

	list, err := s.Client.ListActivities(ctx)
	if err != nil {
		return nil, false, err
	}
	c := cache.New(list.TimeEntryActivities, s.rt.now())
	if s.DryRun {
		return c, false, nil
	}
	if err := c.Save(path); err != nil {
		s.Log.Debug().Err(err).Str("path", path).Msg("failed to write activity cache")
	}
	return c, false, nil
}

// Activities lists time entry activities.
func (s *Session) Activities(ctx context.Context, refresh bool) (ActivitiesResult, error) {
	c, cached, err := s.loadActivities(ctx, refresh)
	if err != nil {
		return ActivitiesResult{}, err
	}
	res := ActivitiesResult{Activities: c.Activities, Cached: cached}
	if res.Activities == nil {
		res.Activities = []redmine.Activity{}
	}
	if cached {
		res.CacheAge = c.AgeStringAt(s.rt.now())
	}
	return res, nil
}

// resolveActivity turns a name or id into an activity id.
func (s *Session) resolveActivity(ctx context.Context, token string) (int, error) {
	c, _, err := s.loadActivities(ctx, false)
	if err != nil {
		return 0, err
	}
	// A dry run cannot fetch activities; a numeric token is taken on trust.
	if s.DryRun && len(c.Activities) == 0 {
		if id, err := strconv.ParseUint(token, 10, 31); err == nil {
			return int(id), nil
		}
	}
	return c.ResolveID(token)
}
