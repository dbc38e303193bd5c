// Package apierr defines the single error type returned by API calls and the
// rules that turn raw backend failures into localized, user-facing messages.
//
// Every failed call yields an [*Error] carrying a translated message, the HTTP
// status (0 when the backend was never reached), an optional machine-readable
// code and the parsed backend payload:
//
//	var apiErr *apierr.Error
//	if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
//		showBanner(apiErr.Message)
//	}
//
// # Translation
//
// A [Table] maps backend messages to catalogue keys. Lookups run in order:
// exact message, case-insensitive substring, HTTP status, then the message
// itself. Two tables ship with the package: [GenericRules] for every endpoint
// and the smaller [LoginRules] for the login form.
//
// Catalogues are embedded YAML files (French default, English) resolved
// through pkg/i18n.
package apierr
