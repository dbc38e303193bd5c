package hostrouter

import (
	"net/http"
	"strings"
)

// Routes maps host patterns to handlers.
// Exact: "api.hireflow.io"
// Wildcard: "*.hireflow.io"
type Routes map[string]http.Handler

// Router routes requests based on the Host header.
type Router struct {
	exact    map[string]http.Handler
	wildcard map[string]http.Handler // keyed by the parent domain of "*.parent"
	fallback http.Handler
}

// New creates a host router. Unmatched hosts go to fallback, or 404 when nil.
func New(routes Routes, fallback http.Handler) *Router {
	if fallback == nil {
		fallback = http.NotFoundHandler()
	}

	r := &Router{
		exact:    make(map[string]http.Handler, len(routes)),
		wildcard: make(map[string]http.Handler),
		fallback: fallback,
	}

	for pattern, handler := range routes {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" || handler == nil {
			continue
		}
		if parent, ok := strings.CutPrefix(pattern, "*."); ok {
			r.wildcard[parent] = handler
			continue
		}
		r.exact[pattern] = handler
	}

	return r
}

// ServeHTTP dispatches to the handler registered for the request host.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler(Host(req)).ServeHTTP(w, req)
}

func (r *Router) handler(host string) http.Handler {
	if h, ok := r.exact[host]; ok {
		return h
	}
	if _, parent, ok := strings.Cut(host, "."); ok {
		if h, ok := r.wildcard[parent]; ok {
			return h
		}
	}
	return r.fallback
}
