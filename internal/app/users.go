package app

import (
	"context"
	"strconv"
	"strings"

	"redmine-cli/internal/apperr"
	"redmine-cli/internal/redmine"
)

// ParseUserStatus maps a status name to Redmine's numeric account status.
// The empty string means no filter.
func ParseUserStatus(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case "active":
		return redmine.UserStatusActive, nil
	case "registered":
		return redmine.UserStatusRegistered, nil
	case "locked":
		return redmine.UserStatusLocked, nil
	}
	return 0, apperr.Validationf("invalid user status: '%s'", s).
		WithHint("Valid values: active, registered, locked")
}

func (s *Session) ListUsers(ctx context.Context, status string, limit, offset int) (redmine.UserList, error) {
	if err := validatePage(limit, offset); err != nil {
		return redmine.UserList{}, err
	}
	code, err := ParseUserStatus(status)
	if err != nil {
		return redmine.UserList{}, err
	}
	return s.Client.ListUsers(ctx, code, limit, offset)
}

func (s *Session) GetUser(ctx context.Context, id int) (redmine.User, error) {
	if err := validateID("id", id); err != nil {
		return redmine.User{}, err
	}
	return s.Client.GetUser(ctx, id)
}

func (s *Session) ListProjects(ctx context.Context, limit, offset int) (redmine.ProjectList, error) {
	if err := validatePage(limit, offset); err != nil {
		return redmine.ProjectList{}, err
	}
	return s.Client.ListProjects(ctx, limit, offset)
}

// GetProject looks a project up by numeric id or identifier; exactly one
// must be given.
func (s *Session) GetProject(ctx context.Context, id int, identifier string) (redmine.Project, error) {
	switch {
	case id == 0 && identifier == "":
		return redmine.Project{}, apperr.Validation("Either --id or --identifier is required")
	case id != 0 && identifier != "":
		return redmine.Project{}, apperr.Validation("--id and --identifier cannot be used together")
	case identifier != "":
		return s.Client.GetProject(ctx, identifier)
	}
	if err := validateID("id", id); err != nil {
		return redmine.Project{}, err
	}
	return s.Client.GetProject(ctx, strconv.Itoa(id))
}

func (s *Session) ListVersions(ctx context.Context, project string) (redmine.VersionList, error) {
	if strings.TrimSpace(project) == "" {
		return redmine.VersionList{}, apperr.Validation("--project is required").
			WithHint("Use `rdm project list` to find a project id or identifier.")
	}
	return s.Client.ListVersions(ctx, project)
}
