package apiclient

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Calendar is the data behind the recruiter calendar view.
type Calendar struct {
	Jobs         []Job
	Applications []Application
	Interviews   []Interview
}

// LoadCalendar fetches jobs, applications and interviews in parallel.
// The first failure cancels the other calls and is returned.
func (c *Client) LoadCalendar(ctx context.Context, f CalendarFilter) (*Calendar, error) {
	var cal Calendar
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		jobs, err := c.ListJobs(gctx, JobFilter{})
		cal.Jobs = jobs
		return err
	})
	g.Go(func() error {
		apps, err := c.ListApplications(gctx, ApplicationFilter{})
		cal.Applications = apps
		return err
	})
	g.Go(func() error {
		ivs, err := c.ListInterviews(gctx, InterviewFilter{From: f.From, To: f.To})
		cal.Interviews = ivs
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &cal, nil
}
