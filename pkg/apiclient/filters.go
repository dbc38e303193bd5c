package apiclient

import (
	"net/url"
	"strconv"
	"time"
)

// Page selects a window of a list endpoint.
type Page struct {
	Skip  int
	Limit int
}

func (p Page) apply(q query) {
	q.setInt("skip", p.Skip)
	q.setInt("limit", p.Limit)
}

// JobFilter narrows ListJobs.
type JobFilter struct {
	Status      string
	ClientID    ID
	RecruiterID ID
	Search      string
	Page
}

func (f JobFilter) values() url.Values {
	q := query{}
	q.setString("status", f.Status)
	q.setString("client_id", string(f.ClientID))
	q.setString("recruiter_id", string(f.RecruiterID))
	q.setString("search", f.Search)
	f.apply(q)
	return url.Values(q)
}

// CandidateFilter narrows ListCandidates.
type CandidateFilter struct {
	Status string
	JobID  ID
	Search string
	Page
}

func (f CandidateFilter) values() url.Values {
	q := query{}
	q.setString("status", f.Status)
	q.setString("job_id", string(f.JobID))
	q.setString("search", f.Search)
	f.apply(q)
	return url.Values(q)
}

// ApplicationFilter narrows ListApplications.
type ApplicationFilter struct {
	JobID       ID
	CandidateID ID
	Status      string
	Page
}

func (f ApplicationFilter) values() url.Values {
	q := query{}
	q.setString("job_id", string(f.JobID))
	q.setString("candidate_id", string(f.CandidateID))
	q.setString("status", f.Status)
	f.apply(q)
	return url.Values(q)
}

// InterviewFilter narrows ListInterviews.
type InterviewFilter struct {
	From          time.Time
	To            time.Time
	Status        string
	InterviewerID ID
	Page
}

func (f InterviewFilter) values() url.Values {
	q := query{}
	q.setTime("from", f.From)
	q.setTime("to", f.To)
	q.setString("status", f.Status)
	q.setString("interviewer_id", string(f.InterviewerID))
	f.apply(q)
	return url.Values(q)
}

// KPIFilter narrows the KPI endpoints.
type KPIFilter struct {
	From   time.Time
	To     time.Time
	TeamID ID
}

func (f KPIFilter) values() url.Values {
	q := query{}
	q.setTime("from", f.From)
	q.setTime("to", f.To)
	q.setString("team_id", string(f.TeamID))
	return url.Values(q)
}

// CalendarFilter bounds LoadCalendar.
type CalendarFilter struct {
	From time.Time
	To   time.Time
}

type query url.Values

func (q query) setString(key, value string) {
	if value != "" {
		url.Values(q).Set(key, value)
	}
}

func (q query) setInt(key string, value int) {
	if value > 0 {
		url.Values(q).Set(key, strconv.Itoa(value))
	}
}

func (q query) setTime(key string, value time.Time) {
	if !value.IsZero() {
		url.Values(q).Set(key, value.UTC().Format(time.RFC3339))
	}
}
