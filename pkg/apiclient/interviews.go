package apiclient

import (
	"context"
	"net/http"
)

// ListInterviews returns interviews matching the filter.
func (c *Client) ListInterviews(ctx context.Context, f InterviewFilter) ([]Interview, error) {
	list, err := Request[[]Interview](ctx, c, http.MethodGet, "/api/interviews", WithQuery(f.values()))
	if err != nil {
		return nil, err
	}
	return orEmpty(list), nil
}

// ScheduleInterview books an interview for an application.
func (c *Client) ScheduleInterview(ctx context.Context, in InterviewInput) (*Interview, error) {
	iv, err := Request[Interview](ctx, c, http.MethodPost, "/api/interviews", WithBody(in))
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

// UpdateInterview reschedules or edits an interview.
func (c *Client) UpdateInterview(ctx context.Context, id ID, in InterviewInput) (*Interview, error) {
	path, err := resourcePath("/api/interviews/%s", id)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	iv, err := Request[Interview](ctx, c, http.MethodPut, path, WithBody(in))
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

// CancelInterview cancels an interview with an optional reason.
func (c *Client) CancelInterview(ctx context.Context, id ID, reason string) (*Interview, error) {
	path, err := resourcePath("/api/interviews/%s/cancel", id)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	body := map[string]string{}
	if reason != "" {
		body["reason"] = reason
	}
	iv, err := Request[Interview](ctx, c, http.MethodPost, path, WithBody(body))
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

// SubmitInterviewFeedback records the interviewer's assessment.
func (c *Client) SubmitInterviewFeedback(ctx context.Context, id ID, fb InterviewFeedback) (*Interview, error) {
	path, err := resourcePath("/api/interviews/%s/feedback", id)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}
	iv, err := Request[Interview](ctx, c, http.MethodPost, path, WithBody(fb))
	if err != nil {
		return nil, err
	}
	return &iv, nil
}
