package apiclient

import (
	"context"
	"net/http"
)

// ListApplications returns applications matching the filter.
func (c *Client) ListApplications(ctx context.Context, f ApplicationFilter) ([]Application, error) {
	list, err := Request[[]Application](ctx, c, http.MethodGet, "/api/applications", WithQuery(f.values()))
	if err != nil {
		return nil, err
	}
	return orEmpty(list), nil
}

// CreateApplication applies a candidate to a job.
func (c *Client) CreateApplication(ctx context.Context, in ApplicationInput) (*Application, error) {
	app, err := Request[Application](ctx, c, http.MethodPost, "/api/applications", WithBody(in))
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateApplicationStatus moves an application through the pipeline.
func (c *Client) UpdateApplicationStatus(ctx context.Context, id ID, change StatusChange) (*Application, error) {
	path, err := resourcePath("/api/applications/%s/status", id)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	app, err := Request[Application](ctx, c, http.MethodPatch, path, WithBody(change))
	if err != nil {
		return nil, err
	}
	return &app, nil
}
