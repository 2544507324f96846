package redmine

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const issueListHint = "Use `rdm issue list` to find available issues."

func issueNotFound(id int) *notFound {
	return &notFound{"Issue", strconv.Itoa(id), issueListHint}
}

func (c *Client) ListIssues(ctx context.Context, f IssueFilters) (IssueList, error) {
	if c.dryRun {
		return IssueList{Issues: []Issue{}, Pagination: Pagination{Limit: f.Limit, Offset: f.Offset}}, nil
	}
	q := pageQuery(f.Limit, f.Offset)
	setIf(q, "project_id", f.Project)
	setIf(q, "status_id", f.Status)
	setIf(q, "assigned_to_id", f.AssignedTo)
	setIf(q, "author_id", f.Author)
	setIf(q, "tracker_id", f.Tracker)
	setIf(q, "subject", f.Subject)
	addCustomFields(q, f.CustomFields)

	var list IssueList
	if err := c.get(ctx, "/issues.json", q, nil, &list); err != nil {
		return IssueList{}, err
	}
	return list, nil
}

func (c *Client) GetIssue(ctx context.Context, id int) (Issue, error) {
	if c.dryRun {
		return Issue{}, nil
	}
	var wrapper struct {
		Issue Issue `json:"issue"`
	}
	if err := c.get(ctx, "/issues/"+strconv.Itoa(id)+".json", nil, issueNotFound(id), &wrapper); err != nil {
		return Issue{}, err
	}
	return wrapper.Issue, nil
}

func (c *Client) CreateIssue(ctx context.Context, issue NewIssue) (Issue, error) {
	body := struct {
		Issue NewIssue `json:"issue"`
	}{issue}
	if c.dryRun {
		return Issue{}, c.simulate(http.MethodPost, "/issues.json", body)
	}
	var wrapper struct {
		Issue Issue `json:"issue"`
	}
	if err := c.do(ctx, http.MethodPost, "/issues.json", nil, body, nil, &wrapper); err != nil {
		return Issue{}, err
	}
	return wrapper.Issue, nil
}

// UpdateIssue applies a partial update. The server replies without a body.
func (c *Client) UpdateIssue(ctx context.Context, id int, update UpdateIssue) error {
	path := "/issues/" + strconv.Itoa(id) + ".json"
	body := struct {
		Issue UpdateIssue `json:"issue"`
	}{update}
	if c.dryRun {
		return c.simulate(http.MethodPut, path, body)
	}
	return c.do(ctx, http.MethodPut, path, nil, body, issueNotFound(id), nil)
}

// SearchIssues runs a full-text search and fetches every issue hit. Hits the
// caller cannot read are skipped; paging reflects the search itself.
func (c *Client) SearchIssues(ctx context.Context, query, project string, limit, offset int) (IssueList, error) {
	if c.dryRun {
		return IssueList{Issues: []Issue{}, Pagination: Pagination{Limit: limit, Offset: offset}}, nil
	}
	q := pageQuery(limit, offset)
	q.Set("q", query)
	q.Set("issues", "1")

	path := "/search.json"
	var nf *notFound
	if project != "" {
		path = "/projects/" + url.PathEscape(project) + "/search.json"
		nf = &notFound{"Project", project, "Use `rdm project list` to see available projects."}
	}

	var results SearchResults
	if err := c.get(ctx, path, q, nf, &results); err != nil {
		return IssueList{}, err
	}

	list := IssueList{Issues: []Issue{}, Pagination: results.Pagination}
	for _, r := range results.Results {
		if r.Type != "issue" {
			continue
		}
		issue, err := c.GetIssue(ctx, r.ID)
		if err != nil {
			if ctx.Err() != nil {
				return IssueList{}, err
			}
			c.log.Debug().Int("issue", r.ID).Err(err).Msg("skipping inaccessible issue")
			continue
		}
		list.Issues = append(list.Issues, issue)
	}
	return list, nil
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
