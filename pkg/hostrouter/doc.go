// Package hostrouter routes edge traffic by Host header and extracts the
// tenant subdomain of a request.
//
// Every company in the ATS is served on its own subdomain of a shared base
// domain ("acme.hireflow.io"). [Tenant] returns that label, ignoring the
// reserved infrastructure labels (www, api, app):
//
//	tenant := hostrouter.Tenant(r, "hireflow.io") // "acme"
//
// [Router] dispatches whole requests by host pattern. Exact patterns win
// over wildcards:
//
//	router := hostrouter.New(hostrouter.Routes{
//		"api.hireflow.io": backendProxy,
//		"*.hireflow.io":   frontend,
//	}, frontend)
//
// Hosts are compared lower-cased with the port removed. Bracketed IPv6
// literals keep their brackets.
package hostrouter
