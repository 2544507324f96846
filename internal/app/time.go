package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"redmine-cli/internal/apperr"
	"redmine-cli/internal/output"
	"redmine-cli/internal/redmine"
)

type TimeCreateArgs struct {
	Issue    int
	Project  int
	Hours    float64
	Activity string
	SpentOn  string
	Comment  string
	User     int
}

type TimeEntryCreated struct {
	TimeEntry redmine.TimeEntry `json:"time_entry"`
}

func (r TimeEntryCreated) Markdown(output.Meta) string {
	t := r.TimeEntry
	var b strings.Builder
	b.WriteString("## Time Entry Created\n\n")
	pairs := []output.KV{
		{Key: "ID", Value: strconv.Itoa(t.ID)},
		{Key: "Hours", Value: fmt.Sprintf("%.2f", t.Hours)},
		{Key: "Activity", Value: t.Activity.Name},
		{Key: "Date", Value: t.SpentOn},
	}
	if t.Issue != nil {
		pairs = append(pairs, output.KV{Key: "Issue", Value: "#" + strconv.Itoa(t.Issue.ID)})
	}
	if t.Project != nil {
		pairs = append(pairs, output.KV{Key: "Project", Value: t.Project.Name})
	}
	if t.Comments != "" {
		pairs = append(pairs, output.KV{Key: "Comment", Value: t.Comments})
	}
	b.WriteString(output.KVTable(pairs))
	fmt.Fprintf(&b, "\n*Use `rdm time get --id %d` to view details*\n", t.ID)
	return b.String()
}

// CreateTimeEntry logs hours against exactly one of an issue or a project.
func (s *Session) CreateTimeEntry(ctx context.Context, args TimeCreateArgs) (TimeEntryCreated, error) {
	if args.Hours <= 0 {
		return TimeEntryCreated{}, apperr.Validation("Hours must be positive").
			WithHint("Use a positive number like `--hours 2.5`")
	}
	switch {
	case args.Issue == 0 && args.Project == 0:
		return TimeEntryCreated{}, apperr.Validation("Either --issue or --project is required").
			WithHint("Use `--issue 123` to log time against an issue or `--project 1` for project-level time")
	case args.Issue != 0 && args.Project != 0:
		return TimeEntryCreated{}, apperr.Validation("--issue and --project cannot be used together").
			WithHint("Time is logged against an issue, or against a project when there is no issue.")
	}
	if err := validateDate("spent-on", args.SpentOn); err != nil {
		return TimeEntryCreated{}, err
	}

	activityID, err := s.resolveActivity(ctx, args.Activity)
	if err != nil {
		return TimeEntryCreated{}, err
	}

	entry := redmine.NewTimeEntry{
		Hours:      args.Hours,
		ActivityID: activityID,
		SpentOn:    args.SpentOn,
		Comments:   args.Comment,
	}
	if entry.SpentOn == "" {
		entry.SpentOn = s.today()
	}
	if args.Issue != 0 {
		entry.IssueID = &args.Issue
	}
	if args.Project != 0 {
		entry.ProjectID = &args.Project
	}
	if args.User != 0 {
		entry.UserID = &args.User
	}

	created, err := s.Client.CreateTimeEntry(ctx, entry)
	if err != nil {
		return TimeEntryCreated{}, err
	}
	return TimeEntryCreated{TimeEntry: created}, nil
}

type TimeListArgs struct {
	Project      string
	Issue        int
	User         string
	From         string
	To           string
	CustomFields []string
	GroupBy      string
	Limit        int
	Offset       int
}

// TimeListResult is either a plain page of entries or the same page grouped.
// Exactly one of List and Grouped is set.
type TimeListResult struct {
	List    *redmine.TimeEntryList
	Grouped *redmine.GroupedTimeEntries

	page redmine.Pagination
}

// Meta reports the pagination of the underlying page in both forms.
func (r TimeListResult) Meta() output.Meta { return r.page.Meta() }

func (r TimeListResult) Markdown(meta output.Meta) string {
	if r.Grouped != nil {
		return r.Grouped.Markdown(meta)
	}
	if r.List != nil {
		return r.List.Markdown(meta)
	}
	return ""
}

func (r TimeListResult) MarshalJSON() ([]byte, error) {
	if r.Grouped != nil {
		return json.Marshal(r.Grouped)
	}
	return json.Marshal(r.List)
}

func (s *Session) ListTimeEntries(ctx context.Context, args TimeListArgs) (TimeListResult, error) {
	if err := validatePage(args.Limit, args.Offset); err != nil {
		return TimeListResult{}, err
	}
	if err := validateDate("from", args.From); err != nil {
		return TimeListResult{}, err
	}
	if err := validateDate("to", args.To); err != nil {
		return TimeListResult{}, err
	}
	cfs, err := redmine.ParseCustomFields(args.CustomFields)
	if err != nil {
		return TimeListResult{}, err
	}
	var field redmine.GroupField
	if args.GroupBy != "" {
		if field, err = redmine.ParseGroupField(args.GroupBy); err != nil {
			return TimeListResult{}, err
		}
	}

	list, err := s.Client.ListTimeEntries(ctx, redmine.TimeEntryFilters{
		Project:      args.Project,
		Issue:        args.Issue,
		User:         args.User,
		From:         args.From,
		To:           args.To,
		CustomFields: cfs,
		Limit:        args.Limit,
		Offset:       args.Offset,
	})
	if err != nil {
		return TimeListResult{}, err
	}

	res := TimeListResult{page: list.Pagination}
	if args.GroupBy != "" {
		grouped := redmine.GroupTimeEntries(list.TimeEntries, field)
		res.Grouped = &grouped
	} else {
		res.List = &list
	}
	return res, nil
}

func (s *Session) GetTimeEntry(ctx context.Context, id int) (redmine.TimeEntry, error) {
	if err := validateID("id", id); err != nil {
		return redmine.TimeEntry{}, err
	}
	return s.Client.GetTimeEntry(ctx, id)
}

type TimeUpdateArgs struct {
	ID       int
	Hours    *float64
	Activity *string
	SpentOn  *string
	Comment  *string
}

type TimeEntryUpdated struct {
	TimeEntry redmine.TimeEntry `json:"time_entry"`
}

func (r TimeEntryUpdated) Markdown(output.Meta) string {
	t := r.TimeEntry
	var b strings.Builder
	b.WriteString("## Time Entry Updated\n\n")
	b.WriteString(output.KVTable([]output.KV{
		{Key: "ID", Value: strconv.Itoa(t.ID)},
		{Key: "Hours", Value: fmt.Sprintf("%.2f", t.Hours)},
		{Key: "Activity", Value: t.Activity.Name},
		{Key: "Date", Value: t.SpentOn},
	}))
	return b.String()
}

// UpdateTimeEntry changes the given fields and returns the entry as the
// server reads it back afterwards.
func (s *Session) UpdateTimeEntry(ctx context.Context, args TimeUpdateArgs) (TimeEntryUpdated, error) {
	if err := validateID("id", args.ID); err != nil {
		return TimeEntryUpdated{}, err
	}
	update := redmine.UpdateTimeEntry{Hours: args.Hours, SpentOn: args.SpentOn, Comments: args.Comment}
	// The activity is resolved after validation, so it is checked apart.
	if args.Activity == nil && update.IsEmpty() {
		return TimeEntryUpdated{}, apperr.Validation("Nothing to update").
			WithHint("Pass at least one of --hours, --activity, --spent-on or --comment.")
	}
	if args.Hours != nil && *args.Hours <= 0 {
		return TimeEntryUpdated{}, apperr.Validation("Hours must be positive").
			WithHint("Use a positive number like `--hours 2.5`")
	}
	if args.SpentOn != nil {
		if err := validateDate("spent-on", *args.SpentOn); err != nil {
			return TimeEntryUpdated{}, err
		}
	}

	if args.Activity != nil {
		id, err := s.resolveActivity(ctx, *args.Activity)
		if err != nil {
			return TimeEntryUpdated{}, err
		}
		update.ActivityID = &id
	}

	entry, err := s.Client.UpdateTimeEntry(ctx, args.ID, update)
	if err != nil {
		return TimeEntryUpdated{}, err
	}
	return TimeEntryUpdated{TimeEntry: entry}, nil
}

type TimeEntryDeleted struct {
	ID int `json:"id"`
}

func (r TimeEntryDeleted) Markdown(output.Meta) string {
	return fmt.Sprintf("## Time Entry Deleted\n\nTime entry #%d has been deleted.\n", r.ID)
}

func (s *Session) DeleteTimeEntry(ctx context.Context, id int) (TimeEntryDeleted, error) {
	if err := validateID("id", id); err != nil {
		return TimeEntryDeleted{}, err
	}
	if err := s.Client.DeleteTimeEntry(ctx, id); err != nil {
		return TimeEntryDeleted{}, err
	}
	return TimeEntryDeleted{ID: id}, nil
}
