package apiclient

import (
	"context"
	"io"
	"net/http"

	"github.com/dmitrymomot/hireflow/pkg/gateway"
)

// ListCandidates returns candidates matching the filter.
func (c *Client) ListCandidates(ctx context.Context, f CandidateFilter) ([]Candidate, error) {
	list, err := Request[[]Candidate](ctx, c, http.MethodGet, "/api/candidates", WithQuery(f.values()))
	if err != nil {
		return nil, err
	}
	return orEmpty(list), nil
}

// GetCandidate returns one candidate.
func (c *Client) GetCandidate(ctx context.Context, id ID) (*Candidate, error) {
	path, err := resourcePath("/api/candidates/%s", id)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	cand, err := Request[Candidate](ctx, c, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	return &cand, nil
}

// CreateCandidate adds a candidate.
func (c *Client) CreateCandidate(ctx context.Context, in CandidateInput) (*Candidate, error) {
	cand, err := Request[Candidate](ctx, c, http.MethodPost, "/api/candidates", WithBody(in))
	if err != nil {
		return nil, err
	}
	return &cand, nil
}

// UpdateCandidateStatus moves a candidate through the pipeline.
func (c *Client) UpdateCandidateStatus(ctx context.Context, id ID, change StatusChange) (*Candidate, error) {
	path, err := resourcePath("/api/candidates/%s/status", id)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	cand, err := Request[Candidate](ctx, c, http.MethodPatch, path, WithBody(change))
	if err != nil {
		return nil, err
	}
	return &cand, nil
}

// UploadCandidateCV uploads a CV file as multipart form data.
func (c *Client) UploadCandidateCV(ctx context.Context, id ID, filename, contentType string, content io.Reader) (*Candidate, error) {
	path, err := resourcePath("/api/candidates/%s/cv", id)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	body := &gateway.Multipart{
		Files: []gateway.File{{
			Field:       "file",
			Name:        filename,
			ContentType: contentType,
			Content:     content,
		}},
	}
	cand, err := Request[Candidate](ctx, c, http.MethodPost, path, WithBody(body))
	if err != nil {
		return nil, err
	}
	return &cand, nil
}

// DeleteCandidate removes a candidate.
func (c *Client) DeleteCandidate(ctx context.Context, id ID) error {
	path, err := resourcePath("/api/candidates/%s", id)
	if err != nil {
		return c.errors.Unknown(err)
	}
	_, err = Request[struct{}](ctx, c, http.MethodDelete, path)
	return err
}
