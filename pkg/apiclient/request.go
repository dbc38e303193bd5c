package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/hireflow/pkg/apierr"
	"github.com/dmitrymomot/hireflow/pkg/gateway"
)

// maxBodySize caps the response bytes read into memory.
const maxBodySize = 10 << 20

type requestConfig struct {
	query  url.Values
	header http.Header
	body   any
	table  apierr.Table
}

// RequestOption configures a single Request call.
type RequestOption func(*requestConfig)

// WithQuery adds query parameters.
func WithQuery(q url.Values) RequestOption {
	return func(c *requestConfig) {
		for k, vs := range q {
			for _, v := range vs {
				c.query.Add(k, v)
			}
		}
	}
}

// WithBody sets the request body (see gateway.Request for accepted kinds).
func WithBody(body any) RequestOption {
	return func(c *requestConfig) {
		c.body = body
	}
}

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(c *requestConfig) {
		c.header.Set(key, value)
	}
}

// WithRules overrides the translation table used on failure.
func WithRules(t apierr.Table) RequestOption {
	return func(c *requestConfig) {
		c.table = t
	}
}

// Request calls endpoint (a path such as "/api/jobs") and decodes the result.
// Failures are returned as *apierr.Error.
func Request[T any](ctx context.Context, c *Client, method, endpoint string, opts ...RequestOption) (T, error) {
	var zero T

	cfg := &requestConfig{
		query:  url.Values{},
		header: http.Header{},
		table:  apierr.GenericRules,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if endpoint == "" {
		return zero, c.errors.Unknown(ErrEmptyEndpoint)
	}

	target, err := c.endpointURL(ctx, endpoint, cfg.query)
	if err != nil {
		return zero, c.errors.Unknown(err)
	}

	resp, err := c.gateway.Do(ctx, gateway.Request{
		Method: method,
		URL:    target,
		Body:   cfg.body,
		Header: cfg.header,
	})
	if err != nil {
		if gateway.IsUnreachable(err) {
			return zero, c.errors.Network(err)
		}
		return zero, c.errors.Unknown(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return zero, c.errors.Unknown(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return decodeSuccess[T](ctx, c.logger, resp, data), nil
	}

	apiErr := c.errors.NormalizeWith(cfg.table, resp.StatusCode, data)
	c.logFailure(ctx, method, endpoint, apiErr)
	return zero, apiErr
}

func (c *Client) endpointURL(ctx context.Context, endpoint string, q url.Values) (string, error) {
	base, err := c.BaseURL(ctx)
	if err != nil {
		return "", err
	}

	target := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/")
	if len(q) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + q.Encode()
	}
	return target, nil
}

// decodeSuccess never fails: unusable bodies yield the zero value.
func decodeSuccess[T any](ctx context.Context, logger *slog.Logger, resp *http.Response, data []byte) T {
	var out T
	if len(strings.TrimSpace(string(data))) == 0 {
		return out
	}

	if err := json.Unmarshal(data, &out); err != nil {
		if isJSON(resp.Header.Get("Content-Type")) {
			logger.WarnContext(ctx, "malformed json in successful response",
				slog.String("url", resp.Request.URL.Redacted()),
				slog.Any("error", err))
		}
		var zero T
		return zero
	}
	return out
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func (c *Client) logFailure(ctx context.Context, method, endpoint string, e *apierr.Error) {
	attrs := []any{
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Int("status", e.Status),
		slog.String("message", e.Raw),
	}

	switch {
	case e.Status == http.StatusUnauthorized:
		c.logger.WarnContext(ctx, "session expired", attrs...)
	case e.Status == http.StatusForbidden:
		c.logger.WarnContext(ctx, "access forbidden", attrs...)
	case e.Status >= http.StatusInternalServerError:
		c.logger.ErrorContext(ctx, "server error", attrs...)
	default:
		c.logger.DebugContext(ctx, "request failed", attrs...)
	}
}

// degraded reports whether a dashboard list call should show no data
// instead of failing.
func degraded(err error) bool {
	return apierr.IsStatus(err, http.StatusUnauthorized, http.StatusUnprocessableEntity)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func resourcePath(format string, ids ...ID) (string, error) {
	args := make([]any, len(ids))
	for i, id := range ids {
		if id == "" {
			return "", ErrMissingID
		}
		args[i] = url.PathEscape(string(id))
	}
	return fmt.Sprintf(format, args...), nil
}
