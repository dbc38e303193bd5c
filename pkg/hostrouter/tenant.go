package hostrouter

import (
	"net/http"
	"strings"
)

// Reserved holds subdomain labels that never identify a tenant.
var Reserved = map[string]bool{
	"www": true,
	"api": true,
	"app": true,
}

// Host returns the lower-cased request host without its port.
//
//	"Acme.Hireflow.IO:8080" -> "acme.hireflow.io"
//	"[::1]:8080"            -> "[::1]"
func Host(r *http.Request) string {
	return normalizeHost(r.Host)
}

// Subdomain returns everything in the request host before baseDomain.
// It returns "" when the host is baseDomain itself or outside it.
func Subdomain(r *http.Request, baseDomain string) string {
	return subdomain(normalizeHost(r.Host), baseDomain)
}

// Tenant returns the tenant label of the request host.
// Nested subdomains and reserved labels yield "".
func Tenant(r *http.Request, baseDomain string) string {
	return TenantFromHost(r.Host, baseDomain)
}

// TenantFromHost is Tenant for a raw host string.
func TenantFromHost(host, baseDomain string) string {
	sub := subdomain(normalizeHost(host), baseDomain)
	if sub == "" || strings.Contains(sub, ".") || Reserved[sub] {
		return ""
	}
	return sub
}

func subdomain(host, baseDomain string) string {
	base := strings.ToLower(strings.Trim(strings.TrimSpace(baseDomain), "."))
	if base == "" || host == base {
		return ""
	}
	sub, ok := strings.CutSuffix(host, "."+base)
	if !ok {
		return ""
	}
	return sub
}

func normalizeHost(host string) string {
	if idx := strings.LastIndex(host, ":"); idx != -1 && !strings.Contains(host[idx:], "]") {
		// A bare IPv6 literal has several colons and no port.
		if strings.Count(host, ":") == 1 || strings.HasPrefix(host, "[") {
			host = host[:idx]
		}
	}
	return strings.ToLower(strings.TrimSuffix(host, "."))
}
