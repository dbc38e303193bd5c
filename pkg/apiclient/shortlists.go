package apiclient

import (
	"context"
	"net/http"
)

// ListShortlists returns the shortlists proposed for a job.
func (c *Client) ListShortlists(ctx context.Context, jobID ID) ([]Shortlist, error) {
	path, err := resourcePath("/api/jobs/%s/shortlists", jobID)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	list, err := Request[[]Shortlist](ctx, c, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	return orEmpty(list), nil
}

// ValidateShortlist approves or rejects a shortlist.
func (c *Client) ValidateShortlist(ctx context.Context, id ID, d Decision) (*Shortlist, error) {
	path, err := resourcePath("/api/shortlists/%s/validate", id)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	sl, err := Request[Shortlist](ctx, c, http.MethodPost, path, WithBody(d))
	if err != nil {
		return nil, err
	}
	return &sl, nil
}

// ListPendingShortlists returns shortlists awaiting validation.
// Returns an empty list when the viewer may not see them.
func (c *Client) ListPendingShortlists(ctx context.Context) ([]Shortlist, error) {
	list, err := Request[[]Shortlist](ctx, c, http.MethodGet, "/api/shortlists/pending")
	if err != nil {
		if degraded(err) {
			return []Shortlist{}, nil
		}
		return nil, err
	}
	return orEmpty(list), nil
}
