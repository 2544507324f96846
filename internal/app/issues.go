package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"redmine-cli/internal/apperr"
	"redmine-cli/internal/output"
	"redmine-cli/internal/redmine"
)

type IssueListArgs struct {
	Project      string
	Status       string
	AssignedTo   string
	Author       string
	Tracker      string
	Subject      string
	Search       string
	CustomFields []string
	Limit        int
	Offset       int
}

// ListIssues filters issues, or runs a full-text search when Search is set.
func (s *Session) ListIssues(ctx context.Context, args IssueListArgs) (redmine.IssueList, error) {
	if err := validatePage(args.Limit, args.Offset); err != nil {
		return redmine.IssueList{}, err
	}
	if args.Search != "" {
		return s.Client.SearchIssues(ctx, args.Search, args.Project, args.Limit, args.Offset)
	}
	cfs, err := redmine.ParseCustomFields(args.CustomFields)
	if err != nil {
		return redmine.IssueList{}, err
	}
	return s.Client.ListIssues(ctx, redmine.IssueFilters{
		Project:      args.Project,
		Status:       args.Status,
		AssignedTo:   args.AssignedTo,
		Author:       args.Author,
		Tracker:      args.Tracker,
		Subject:      args.Subject,
		CustomFields: cfs,
		Limit:        args.Limit,
		Offset:       args.Offset,
	})
}

func (s *Session) GetIssue(ctx context.Context, id int) (redmine.Issue, error) {
	if err := validateID("id", id); err != nil {
		return redmine.Issue{}, err
	}
	return s.Client.GetIssue(ctx, id)
}

type IssueCreateArgs struct {
	Project        int
	Subject        string
	Description    string
	Tracker        int
	Status         int
	Priority       int
	AssignedTo     int
	StartDate      string
	DueDate        string
	EstimatedHours float64
	CustomFields   []string
}

type IssueCreated struct {
	Issue redmine.Issue `json:"issue"`
}

func (r IssueCreated) Markdown(output.Meta) string {
	i := r.Issue
	var b strings.Builder
	b.WriteString("## Issue Created\n\n")
	b.WriteString(output.KVTable([]output.KV{
		{Key: "ID", Value: "#" + strconv.Itoa(i.ID)},
		{Key: "Subject", Value: i.Subject},
		{Key: "Project", Value: i.Project.Name},
		{Key: "Status", Value: i.Status.Name},
	}))
	fmt.Fprintf(&b, "\n*Use `rdm issue get --id %d` to view full details*\n", i.ID)
	return b.String()
}

func (s *Session) CreateIssue(ctx context.Context, args IssueCreateArgs) (IssueCreated, error) {
	if err := validateID("project", args.Project); err != nil {
		return IssueCreated{}, err
	}
	if strings.TrimSpace(args.Subject) == "" {
		return IssueCreated{}, apperr.Validation("--subject is required").
			WithHint("Use `--subject \"Short summary\"`")
	}
	if err := validateDate("start-date", args.StartDate); err != nil {
		return IssueCreated{}, err
	}
	if err := validateDate("due-date", args.DueDate); err != nil {
		return IssueCreated{}, err
	}
	if args.EstimatedHours < 0 {
		return IssueCreated{}, apperr.Validation("--estimated-hours must not be negative")
	}
	cfs, err := redmine.ParseCustomFields(args.CustomFields)
	if err != nil {
		return IssueCreated{}, err
	}

	issue := redmine.NewIssue{
		ProjectID:    args.Project,
		Subject:      args.Subject,
		Description:  args.Description,
		TrackerID:    optionalID(args.Tracker),
		StatusID:     optionalID(args.Status),
		PriorityID:   optionalID(args.Priority),
		AssignedToID: optionalID(args.AssignedTo),
		StartDate:    args.StartDate,
		DueDate:      args.DueDate,
		CustomFields: cfs,
	}
	if args.EstimatedHours > 0 {
		issue.EstimatedHours = &args.EstimatedHours
	}

	created, err := s.Client.CreateIssue(ctx, issue)
	if err != nil {
		return IssueCreated{}, err
	}
	return IssueCreated{Issue: created}, nil
}

// IssueUpdateArgs carries only the flags the user set.
type IssueUpdateArgs struct {
	ID             int
	Subject        *string
	Description    *string
	Tracker        *int
	Status         *int
	Priority       *int
	AssignedTo     *int
	StartDate      *string
	DueDate        *string
	EstimatedHours *float64
	DoneRatio      *int
	Notes          *string
	CustomFields   []string
}

type IssueUpdated struct {
	ID int `json:"id"`
}

func (r IssueUpdated) Markdown(output.Meta) string {
	return fmt.Sprintf("## Issue Updated\n\nIssue #%d has been updated.\n\n*Use `rdm issue get --id %d` to view changes*\n", r.ID, r.ID)
}

func (s *Session) UpdateIssue(ctx context.Context, args IssueUpdateArgs) (IssueUpdated, error) {
	if err := validateID("id", args.ID); err != nil {
		return IssueUpdated{}, err
	}
	if args.DoneRatio != nil && (*args.DoneRatio < 0 || *args.DoneRatio > 100) {
		return IssueUpdated{}, apperr.Validationf("--done-ratio must be between 0 and 100, got %d", *args.DoneRatio)
	}
	for flag, v := range map[string]*string{"start-date": args.StartDate, "due-date": args.DueDate} {
		if v == nil {
			continue
		}
		if err := validateDate(flag, *v); err != nil {
			return IssueUpdated{}, err
		}
	}
	cfs, err := redmine.ParseCustomFields(args.CustomFields)
	if err != nil {
		return IssueUpdated{}, err
	}

	update := redmine.UpdateIssue{
		Subject:        args.Subject,
		Description:    args.Description,
		TrackerID:      args.Tracker,
		StatusID:       args.Status,
		PriorityID:     args.Priority,
		AssignedToID:   args.AssignedTo,
		StartDate:      args.StartDate,
		DueDate:        args.DueDate,
		EstimatedHours: args.EstimatedHours,
		DoneRatio:      args.DoneRatio,
		Notes:          args.Notes,
		CustomFields:   cfs,
	}
	if update.IsEmpty() {
		return IssueUpdated{}, apperr.Validation("Nothing to update").
			WithHint("Pass at least one field to change, e.g. `--status 3` or `--notes \"...\"`.")
	}

	if err := s.Client.UpdateIssue(ctx, args.ID, update); err != nil {
		return IssueUpdated{}, err
	}
	return IssueUpdated{ID: args.ID}, nil
}

func optionalID(id int) *int {
	if id == 0 {
		return nil
	}
	return &id
}
