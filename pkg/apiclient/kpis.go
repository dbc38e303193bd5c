package apiclient

import (
	"context"
	"net/http"
)

// GetKPIs returns the tenant-wide dashboard metrics.
func (c *Client) GetKPIs(ctx context.Context, f KPIFilter) (*KPIs, error) {
	return c.kpis(ctx, "/api/kpis", f)
}

// GetRecruiterKPIs returns the metrics of the current recruiter.
func (c *Client) GetRecruiterKPIs(ctx context.Context, f KPIFilter) (*KPIs, error) {
	return c.kpis(ctx, "/api/kpis/recruiter", f)
}

// GetManagerKPIs returns the metrics of the current manager's teams.
func (c *Client) GetManagerKPIs(ctx context.Context, f KPIFilter) (*KPIs, error) {
	return c.kpis(ctx, "/api/kpis/manager", f)
}

func (c *Client) kpis(ctx context.Context, endpoint string, f KPIFilter) (*KPIs, error) {
	k, err := Request[KPIs](ctx, c, http.MethodGet, endpoint, WithQuery(f.values()))
	if err != nil {
		return nil, err
	}
	return &k, nil
}
