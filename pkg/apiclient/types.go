package apiclient

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ID is a backend identifier. The backend may send numbers or strings.
type ID string

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric IDs as numbers.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string {
	return string(id)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a time that tolerates the naive ISO formats the backend emits.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON parses RFC 3339, naive ISO date-times and plain dates.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// MarshalJSON writes RFC 3339, or null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// Job is a job requisition.
type Job struct {
	ID              ID         `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Department      string     `json:"department,omitempty"`
	Location        string     `json:"location,omitempty"`
	ContractType    string     `json:"contract_type,omitempty"`
	Status          string     `json:"status,omitempty"`
	SalaryMin       *float64   `json:"salary_min,omitempty"`
	SalaryMax       *float64   `json:"salary_max,omitempty"`
	Openings        int        `json:"openings,omitempty"`
	ClientID        ID         `json:"client_id,omitempty"`
	RecruiterID     ID         `json:"recruiter_id,omitempty"`
	CreatedBy       ID         `json:"created_by,omitempty"`
	ValidatedBy     ID         `json:"validated_by,omitempty"`
	ValidationNotes string     `json:"validation_comment,omitempty"`
	CreatedAt       *Timestamp `json:"created_at,omitempty"`
	UpdatedAt       *Timestamp `json:"updated_at,omitempty"`
}

// JobInput is the payload to create or update a job.
type JobInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Department   string   `json:"department,omitempty"`
	Location     string   `json:"location,omitempty"`
	ContractType string   `json:"contract_type,omitempty"`
	SalaryMin    *float64 `json:"salary_min,omitempty"`
	SalaryMax    *float64 `json:"salary_max,omitempty"`
	Openings     int      `json:"openings,omitempty"`
	ClientID     ID       `json:"client_id,omitempty"`
	RecruiterID  ID       `json:"recruiter_id,omitempty"`
}

// JobRequest is a hiring request submitted by a client.
type JobRequest struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Urgency     string     `json:"urgency,omitempty"`
	ClientID    ID         `json:"client_id,omitempty"`
	JobID       ID         `json:"job_id,omitempty"`
	CreatedAt   *Timestamp `json:"created_at,omitempty"`
}

// JobRequestInput is the payload of a new client hiring request.
type JobRequestInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Urgency     string `json:"urgency,omitempty"`
	Openings    int    `json:"openings,omitempty"`
}

// Decision is an approve or reject verdict with an optional comment.
type Decision struct {
	Approved bool   `json:"approved"`
	Comment  string `json:"comment,omitempty"`
}

// Candidate is a person in the recruitment pipeline.
type Candidate struct {
	ID        ID         `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Status    string     `json:"status,omitempty"`
	Source    string     `json:"source,omitempty"`
	CVURL     string     `json:"cv_url,omitempty"`
	Skills    []string   `json:"skills,omitempty"`
	JobID     ID         `json:"job_id,omitempty"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
}

// CandidateInput is the payload to create a candidate.
type CandidateInput struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	Source    string   `json:"source,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	JobID     ID       `json:"job_id,omitempty"`
}

// Application links a candidate to a job.
type Application struct {
	ID          ID         `json:"id"`
	CandidateID ID         `json:"candidate_id"`
	JobID       ID         `json:"job_id"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	AppliedAt   *Timestamp `json:"applied_at,omitempty"`
	UpdatedAt   *Timestamp `json:"updated_at,omitempty"`
}

// ApplicationInput is the payload to create an application.
type ApplicationInput struct {
	CandidateID ID     `json:"candidate_id"`
	JobID       ID     `json:"job_id"`
	Notes       string `json:"notes,omitempty"`
}

// StatusChange is the payload of status transitions.
type StatusChange struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// Interview is a scheduled interview.
type Interview struct {
	ID              ID         `json:"id"`
	ApplicationID   ID         `json:"application_id"`
	CandidateID     ID         `json:"candidate_id,omitempty"`
	JobID           ID         `json:"job_id,omitempty"`
	InterviewerID   ID         `json:"interviewer_id,omitempty"`
	ScheduledAt     *Timestamp `json:"scheduled_at"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	Mode            string     `json:"mode,omitempty"`
	Location        string     `json:"location,omitempty"`
	Status          string     `json:"status,omitempty"`
	Feedback        string     `json:"feedback,omitempty"`
	Rating          *int       `json:"rating,omitempty"`
}

// InterviewInput is the payload to schedule or update an interview.
type InterviewInput struct {
	ApplicationID   ID        `json:"application_id,omitempty"`
	InterviewerID   ID        `json:"interviewer_id,omitempty"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	Mode            string    `json:"mode,omitempty"`
	Location        string    `json:"location,omitempty"`
}

// InterviewFeedback is submitted after an interview.
type InterviewFeedback struct {
	Feedback       string `json:"feedback"`
	Rating         int    `json:"rating"`
	Recommendation string `json:"recommendation,omitempty"`
}

// Shortlist is the set of candidates proposed for a job.
type Shortlist struct {
	ID         ID          `json:"id"`
	JobID      ID          `json:"job_id"`
	Status     string      `json:"status"`
	Candidates []Candidate `json:"candidates,omitempty"`
	Comment    string      `json:"comment,omitempty"`
	CreatedAt  *Timestamp  `json:"created_at,omitempty"`
}

// User is an account of the tenant.
type User struct {
	ID        ID         `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	TeamID    ID         `json:"team_id,omitempty"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
}

// UserInput is the payload to create or update a user.
type UserInput struct {
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
	Password string `json:"password,omitempty"`
	TeamID   ID     `json:"team_id,omitempty"`
}

// Team groups users under a manager.
type Team struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	ManagerID ID     `json:"manager_id,omitempty"`
	Members   []User `json:"members,omitempty"`
}

// TeamInput is the payload to create a team.
type TeamInput struct {
	Name      string `json:"name"`
	ManagerID ID     `json:"manager_id,omitempty"`
}

// KPIs is a dashboard metrics snapshot. Fields the backend adds are kept in Extra.
type KPIs struct {
	OpenJobs            int            `json:"open_jobs"`
	ActiveCandidates    int            `json:"active_candidates"`
	InterviewsScheduled int            `json:"interviews_scheduled"`
	Hires               int            `json:"hires"`
	AverageTimeToHire   float64        `json:"average_time_to_hire"`
	ConversionRate      float64        `json:"conversion_rate"`
	Extra               map[string]any `json:"-"`
}

// UnmarshalJSON decodes known fields and keeps the full payload in Extra.
func (k *KPIs) UnmarshalJSON(data []byte) error {
	type plain KPIs
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var extra map[string]any
	if err := json.Unmarshal(data, &extra); err != nil {
		return err
	}
	*k = KPIs(p)
	k.Extra = extra
	return nil
}

// Notification is an in-app notification.
type Notification struct {
	ID        ID         `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type,omitempty"`
	Link      string     `json:"link,omitempty"`
	Read      bool       `json:"is_read"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
}

// CompanyRegistration is the self-service tenant signup payload.
type CompanyRegistration struct {
	CompanyName   string `json:"company_name"`
	Subdomain     string `json:"subdomain"`
	AdminName     string `json:"admin_name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}
