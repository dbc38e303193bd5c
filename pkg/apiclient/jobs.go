package apiclient

import (
	"context"
	"net/http"
)

// ListJobs returns the jobs visible to the current user.
func (c *Client) ListJobs(ctx context.Context, f JobFilter) ([]Job, error) {
	jobs, err := Request[[]Job](ctx, c, http.MethodGet, "/api/jobs", WithQuery(f.values()))
	if err != nil {
		return nil, err
	}
	return orEmpty(jobs), nil
}

// GetJob returns one job.
func (c *Client) GetJob(ctx context.Context, id ID) (*Job, error) {
	path, err := resourcePath("/api/jobs/%s", id)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	job, err := Request[Job](ctx, c, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// CreateJob creates a job requisition.
func (c *Client) CreateJob(ctx context.Context, in JobInput) (*Job, error) {
	job, err := Request[Job](ctx, c, http.MethodPost, "/api/jobs", WithBody(in))
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJob replaces the editable fields of a job.
func (c *Client) UpdateJob(ctx context.Context, id ID, in JobInput) (*Job, error) {
	path, err := resourcePath("/api/jobs/%s", id)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	job, err := Request[Job](ctx, c, http.MethodPut, path, WithBody(in))
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob deletes a job.
func (c *Client) DeleteJob(ctx context.Context, id ID) error {
	path, err := resourcePath("/api/jobs/%s", id)
	if err != nil {
		return c.errors.Unknown(err)
	}
	_, err = Request[struct{}](ctx, c, http.MethodDelete, path)
	return err
}

// SubmitJob sends a draft job for manager validation.
func (c *Client) SubmitJob(ctx context.Context, id ID) (*Job, error) {
	path, err := resourcePath("/api/jobs/%s/submit", id)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	job, err := Request[Job](ctx, c, http.MethodPost, path)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ValidateJob approves or rejects a submitted job.
func (c *Client) ValidateJob(ctx context.Context, id ID, d Decision) (*Job, error) {
	path, err := resourcePath("/api/jobs/%s/validate", id)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	job, err := Request[Job](ctx, c, http.MethodPost, path, WithBody(d))
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListPendingJobs returns jobs awaiting validation.
// Returns an empty list when the viewer may not see them.
func (c *Client) ListPendingJobs(ctx context.Context) ([]Job, error) {
	jobs, err := Request[[]Job](ctx, c, http.MethodGet, "/api/jobs/pending")
	if err != nil {
		if degraded(err) {
			return []Job{}, nil
		}
		return nil, err
	}
	return orEmpty(jobs), nil
}

// GetClientJobRequests returns the hiring requests of the current client.
// Returns an empty list when the viewer may not see them.
func (c *Client) GetClientJobRequests(ctx context.Context) ([]JobRequest, error) {
	reqs, err := Request[[]JobRequest](ctx, c, http.MethodGet, "/api/client/job-requests")
	if err != nil {
		if degraded(err) {
			return []JobRequest{}, nil
		}
		return nil, err
	}
	return orEmpty(reqs), nil
}

// CreateClientJobRequest submits a hiring request on behalf of a client.
func (c *Client) CreateClientJobRequest(ctx context.Context, in JobRequestInput) (*JobRequest, error) {
	req, err := Request[JobRequest](ctx, c, http.MethodPost, "/api/client/job-requests", WithBody(in))
	if err != nil {
		return nil, err
	}
	return &req, nil
}
