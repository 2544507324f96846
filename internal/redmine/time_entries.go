package redmine

import (
	"context"
	"net/http"
	"strconv"
)

func timeEntryNotFound(id int) *notFound {
	return &notFound{"Time entry", strconv.Itoa(id), "Use `rdm time list` to find available time entries."}
}

func timeEntryPath(id int) string { return "/time_entries/" + strconv.Itoa(id) + ".json" }

// ListActivities fetches the time entry activity enumeration.
func (c *Client) ListActivities(ctx context.Context) (ActivityList, error) {
	if c.dryRun {
		return ActivityList{TimeEntryActivities: []Activity{}}, nil
	}
	var list ActivityList
	if err := c.get(ctx, "/enumerations/time_entry_activities.json", nil, nil, &list); err != nil {
		return ActivityList{}, err
	}
	return list, nil
}

func (c *Client) ListTimeEntries(ctx context.Context, f TimeEntryFilters) (TimeEntryList, error) {
	if c.dryRun {
		return TimeEntryList{TimeEntries: []TimeEntry{}, Pagination: Pagination{Limit: f.Limit, Offset: f.Offset}}, nil
	}
	q := pageQuery(f.Limit, f.Offset)
	setIf(q, "project_id", f.Project)
	if f.Issue > 0 {
		q.Set("issue_id", strconv.Itoa(f.Issue))
	}
	setIf(q, "user_id", f.User)
	setIf(q, "from", f.From)
	setIf(q, "to", f.To)
	addCustomFields(q, f.CustomFields)

	var list TimeEntryList
	if err := c.get(ctx, "/time_entries.json", q, nil, &list); err != nil {
		return TimeEntryList{}, err
	}
	return list, nil
}

func (c *Client) GetTimeEntry(ctx context.Context, id int) (TimeEntry, error) {
	if c.dryRun {
		return TimeEntry{}, nil
	}
	var wrapper struct {
		TimeEntry TimeEntry `json:"time_entry"`
	}
	if err := c.get(ctx, timeEntryPath(id), nil, timeEntryNotFound(id), &wrapper); err != nil {
		return TimeEntry{}, err
	}
	return wrapper.TimeEntry, nil
}

func (c *Client) CreateTimeEntry(ctx context.Context, entry NewTimeEntry) (TimeEntry, error) {
	body := struct {
		TimeEntry NewTimeEntry `json:"time_entry"`
	}{entry}
	if c.dryRun {
		return TimeEntry{}, c.simulate(http.MethodPost, "/time_entries.json", body)
	}
	var wrapper struct {
		TimeEntry TimeEntry `json:"time_entry"`
	}
	if err := c.do(ctx, http.MethodPost, "/time_entries.json", nil, body, nil, &wrapper); err != nil {
		return TimeEntry{}, err
	}
	return wrapper.TimeEntry, nil
}

// UpdateTimeEntry applies a partial update, then reads the entry back since
// the update itself returns no body.
func (c *Client) UpdateTimeEntry(ctx context.Context, id int, update UpdateTimeEntry) (TimeEntry, error) {
	body := struct {
		TimeEntry UpdateTimeEntry `json:"time_entry"`
	}{update}
	if c.dryRun {
		return TimeEntry{}, c.simulate(http.MethodPut, timeEntryPath(id), body)
	}
	if err := c.do(ctx, http.MethodPut, timeEntryPath(id), nil, body, timeEntryNotFound(id), nil); err != nil {
		return TimeEntry{}, err
	}
	return c.GetTimeEntry(ctx, id)
}

func (c *Client) DeleteTimeEntry(ctx context.Context, id int) error {
	if c.dryRun {
		return c.simulate(http.MethodDelete, timeEntryPath(id), nil)
	}
	return c.do(ctx, http.MethodDelete, timeEntryPath(id), nil, nil, timeEntryNotFound(id), nil)
}
