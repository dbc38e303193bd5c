package apienv

import (
	"errors"
	"net"
	"net/url"
	"strings"
)

// LocalBackend is the backend address used during local development.
const LocalBackend = "http://localhost:8000"

const backendPort = "8000"

var frontendPorts = []string{"3000", "3001"}

var tunnelMarkers = []string{
	"ngrok",
	"trycloudflare",
	"loca.lt",
	"localtunnel",
	"devtunnels",
	"app.github.dev",
	"gitpod.io",
}

// Env is a snapshot of everything the resolution depends on.
type Env struct {
	// Hostname of the current page, without port. Empty means no page context.
	Hostname string
	// Protocol of the current page: "http" or "https".
	Protocol string
	// Port of the current page, informational.
	Port string
	// Override is the configured backend URL, if any.
	Override string
	// TunnelURL is the backend URL cached for the current tunnel session, if any.
	TunnelURL string
}

// Resolve returns the backend base URL for env. It is a pure function.
func Resolve(env Env) string {
	host := strings.ToLower(strings.TrimSpace(env.Hostname))
	proto := normalizeProtocol(env.Protocol)
	override := strings.TrimRight(strings.TrimSpace(env.Override), "/")

	if host == "" {
		if override != "" {
			return override
		}
		return LocalBackend
	}

	loopback := IsLoopback(host)

	if override != "" {
		if loopback && !IsLoopback(overrideHost(override)) {
			return LocalBackend
		}
		return override
	}

	if loopback {
		return LocalBackend
	}

	if proto == "https" || IsTunnel(host) {
		if tunnel := strings.TrimRight(strings.TrimSpace(env.TunnelURL), "/"); tunnel != "" {
			return tunnel
		}
		if swapped, ok := swapFrontendPort(host); ok {
			return proto + "://" + swapped
		}
		return proto + "://" + host
	}

	return proto + "://" + host
}

// IsLoopback reports whether host is localhost, 127.0.0.1 or ::1.
// Brackets and ports are ignored.
func IsLoopback(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")

	switch host {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

// IsTunnel reports whether host belongs to a known tunnel provider.
func IsTunnel(host string) bool {
	host = strings.ToLower(host)
	for _, marker := range tunnelMarkers {
		if strings.Contains(host, marker) {
			return true
		}
	}
	return false
}

// swapFrontendPort replaces a frontend port embedded in a tunnel hostname
// ("app-3000.devtunnels.ms", "3000-ws.gitpod.io") with the backend port.
func swapFrontendPort(host string) (string, bool) {
	for _, port := range frontendPorts {
		if infix := "-" + port + "."; strings.Contains(host, infix) {
			return strings.Replace(host, infix, "-"+backendPort+".", 1), true
		}
		if prefix := port + "-"; strings.HasPrefix(host, prefix) {
			return backendPort + "-" + strings.TrimPrefix(host, prefix), true
		}
	}
	return "", false
}

func overrideHost(override string) string {
	u, err := url.Parse(override)
	if err != nil || u.Host == "" {
		u, err = url.Parse("http://" + override)
		if err != nil {
			return ""
		}
	}
	return u.Hostname()
}

func normalizeProtocol(p string) string {
	p = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(p), ":"))
	if p == "https" {
		return "https"
	}
	return "http"
}

// ParsePage builds an Env from the current page URL.
// An empty URL yields an empty Env (no page context).
func ParsePage(pageURL string) (Env, error) {
	if strings.TrimSpace(pageURL) == "" {
		return Env{}, nil
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return Env{}, errors.Join(ErrInvalidPageURL, err)
	}
	if u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return Env{}, ErrInvalidPageURL
	}

	return Env{
		Hostname: u.Hostname(),
		Protocol: u.Scheme,
		Port:     u.Port(),
	}, nil
}
