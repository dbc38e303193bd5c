package apierr

import (
	"net/http"
	"strings"
)

// Rule maps a message substring to a catalogue key.
type Rule struct {
	Substring string
	Key       string
}

// Table is an ordered set of translation rules.
type Table struct {
	Exact    map[string]string
	ByStatus map[int]string
	Default  string
	Contains []Rule
}

// Key returns the catalogue key for a message and status.
// The boolean is false when only Default (or nothing) applies.
func (t Table) Key(status int, message string) (string, bool) {
	msg := strings.TrimSpace(message)

	if key, ok := t.Exact[msg]; ok {
		return key, true
	}

	lower := strings.ToLower(msg)
	for _, r := range t.Contains {
		if r.Substring != "" && strings.Contains(lower, strings.ToLower(r.Substring)) {
			return r.Key, true
		}
	}

	if key, ok := t.ByStatus[status]; ok {
		return key, true
	}

	return t.Default, false
}

var statusKeys = map[int]string{
	http.StatusBadRequest:          "status.400",
	http.StatusUnauthorized:        "status.401",
	http.StatusForbidden:           "status.403",
	http.StatusNotFound:            "status.404",
	http.StatusConflict:            "status.409",
	http.StatusUnprocessableEntity: "status.422",
	http.StatusTooManyRequests:     "status.429",
	http.StatusInternalServerError: "status.500",
	http.StatusBadGateway:          "status.502",
	http.StatusServiceUnavailable:  "status.503",
	http.StatusGatewayTimeout:      "status.504",
}

// GenericRules applies to every endpoint except login.
var GenericRules = Table{
	Exact: map[string]string{
		"Incorrect email or password":           "auth.invalid_credentials",
		"User not found":                        "auth.user_not_found",
		"User account is inactive":              "auth.inactive",
		"Inactive user":                         "auth.inactive",
		"Not authenticated":                     "auth.not_authenticated",
		"Could not validate credentials":        "auth.session_expired",
		"Token has expired":                     "auth.session_expired",
		"Not enough permissions":                "auth.forbidden",
		"Database error":                        "server.database",
		"Internal server error":                 "status.500",
		"Job not found":                         "resource.job_not_found",
		"Candidate not found":                   "resource.candidate_not_found",
		"Application not found":                 "resource.application_not_found",
		"Interview not found":                   "resource.interview_not_found",
		"Shortlist not found":                   "resource.shortlist_not_found",
		"Team not found":                        "resource.team_not_found",
		"Email already registered":              "conflict.email_taken",
		"Subdomain already taken":               "conflict.subdomain_taken",
		"Candidate already applied":             "conflict.already_applied",
		"Job is not pending validation":         "workflow.job_not_pending",
		"Shortlist already validated":           "workflow.shortlist_validated",
		"Interview slot is no longer available": "workflow.slot_taken",
	},
	Contains: []Rule{
		{Substring: "already exists", Key: "conflict.exists"},
		{Substring: "already registered", Key: "conflict.email_taken"},
		{Substring: "not found", Key: "resource.not_found"},
		{Substring: "permission", Key: "auth.forbidden"},
		{Substring: "not allowed", Key: "auth.forbidden"},
		{Substring: "database", Key: "server.database"},
		{Substring: "timed out", Key: "server.timeout"},
		{Substring: "timeout", Key: "server.timeout"},
		{Substring: "token", Key: "auth.session_expired"},
		{Substring: "invalid file", Key: "upload.invalid_file"},
		{Substring: "file too large", Key: "upload.too_large"},
	},
	ByStatus: statusKeys,
}

// LoginRules applies to the login form only.
var LoginRules = Table{
	Exact: map[string]string{
		"Incorrect email or password":    "auth.invalid_credentials",
		"Incorrect username or password": "auth.invalid_credentials",
		"User not found":                 "auth.user_not_found",
		"User account is inactive":       "auth.inactive",
		"Inactive user":                  "auth.inactive",
		"Tenant not found":               "auth.tenant_unknown",
		"Company not found":              "auth.tenant_unknown",
	},
	Contains: []Rule{
		{Substring: "password", Key: "auth.invalid_credentials"},
		{Substring: "inactive", Key: "auth.inactive"},
		{Substring: "tenant", Key: "auth.tenant_unknown"},
	},
	ByStatus: map[int]string{
		http.StatusBadRequest:          "auth.invalid_credentials",
		http.StatusUnauthorized:        "auth.invalid_credentials",
		http.StatusForbidden:           "auth.inactive",
		http.StatusNotFound:            "auth.user_not_found",
		http.StatusUnprocessableEntity: "login.missing_fields",
		http.StatusTooManyRequests:     "login.too_many_attempts",
		http.StatusInternalServerError: "status.500",
		http.StatusBadGateway:          "status.502",
		http.StatusServiceUnavailable:  "status.503",
		http.StatusGatewayTimeout:      "status.504",
	},
	Default: "login.failed",
}
