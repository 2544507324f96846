package redmine

import (
	"context"
	"net/url"
	"strconv"

	"redmine-cli/internal/apperr"
)

// Ping checks that the server accepts the configured key.
func (c *Client) Ping(ctx context.Context) (PingResult, error) {
	if c.dryRun {
		return PingResult{Status: "dry-run", URL: c.baseURL}, nil
	}
	if err := c.get(ctx, "/users/current.json", nil, nil, nil); err != nil {
		return PingResult{}, err
	}
	return PingResult{Status: "ok", URL: c.baseURL}, nil
}

// Me returns the account that owns the API key.
func (c *Client) Me(ctx context.Context) (CurrentUser, error) {
	if c.dryRun {
		return CurrentUser{}, apperr.Validation("Cannot use --dry-run with 'me' command")
	}
	var wrapper struct {
		User CurrentUser `json:"user"`
	}
	if err := c.get(ctx, "/users/current.json", nil, nil, &wrapper); err != nil {
		return CurrentUser{}, err
	}
	return wrapper.User, nil
}

// ListUsers lists accounts. status 0 leaves the server default (active).
func (c *Client) ListUsers(ctx context.Context, status, limit, offset int) (UserList, error) {
	if c.dryRun {
		return UserList{Users: []User{}, Pagination: Pagination{Limit: limit, Offset: offset}}, nil
	}
	q := pageQuery(limit, offset)
	if status > 0 {
		q.Set("status", strconv.Itoa(status))
	}
	var list UserList
	if err := c.get(ctx, "/users.json", q, nil, &list); err != nil {
		return UserList{}, err
	}
	return list, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (User, error) {
	if c.dryRun {
		return User{}, nil
	}
	var wrapper struct {
		User User `json:"user"`
	}
	nf := &notFound{"User", strconv.Itoa(id), "Use `rdm user list` to see available users."}
	if err := c.get(ctx, "/users/"+strconv.Itoa(id)+".json", nil, nf, &wrapper); err != nil {
		return User{}, err
	}
	return wrapper.User, nil
}

func pageQuery(limit, offset int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}

func addCustomFields(q url.Values, fields []CustomFieldValue) {
	for _, cf := range fields {
		q.Add("cf_"+strconv.Itoa(cf.ID), cf.Value)
	}
}
