package redmine

import (
	"context"
	"net/url"
)

func (c *Client) ListProjects(ctx context.Context, limit, offset int) (ProjectList, error) {
	if c.dryRun {
		return ProjectList{Projects: []Project{}, Pagination: Pagination{Limit: limit, Offset: offset}}, nil
	}
	var list ProjectList
	if err := c.get(ctx, "/projects.json", pageQuery(limit, offset), nil, &list); err != nil {
		return ProjectList{}, err
	}
	return list, nil
}

// GetProject fetches a project by numeric id or identifier.
func (c *Client) GetProject(ctx context.Context, idOrIdentifier string) (Project, error) {
	if c.dryRun {
		return Project{}, nil
	}
	var wrapper struct {
		Project Project `json:"project"`
	}
	nf := &notFound{"Project", idOrIdentifier, "Use `rdm project list` to see available projects."}
	if err := c.get(ctx, "/projects/"+url.PathEscape(idOrIdentifier)+".json", nil, nf, &wrapper); err != nil {
		return Project{}, err
	}
	return wrapper.Project, nil
}

// ListVersions lists the versions (milestones) of a project.
func (c *Client) ListVersions(ctx context.Context, project string) (VersionList, error) {
	if c.dryRun {
		return VersionList{Versions: []Version{}}, nil
	}
	var list VersionList
	nf := &notFound{"Project", project, "Use `rdm project list` to see available projects."}
	if err := c.get(ctx, "/projects/"+url.PathEscape(project)+"/versions.json", nil, nf, &list); err != nil {
		return VersionList{}, err
	}
	return list, nil
}

func (c *Client) ListTrackers(ctx context.Context) (TrackerList, error) {
	if c.dryRun {
		return TrackerList{Trackers: []Tracker{}}, nil
	}
	var list TrackerList
	if err := c.get(ctx, "/trackers.json", nil, nil, &list); err != nil {
		return TrackerList{}, err
	}
	return list, nil
}
