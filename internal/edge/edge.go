// Package edge assembles the HTTP handler of the edge server: route guard
// for the role dashboards, same-origin /api proxy, frontend delivery,
// health and metrics endpoints.
package edge

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/hireflow/internal/config"
	"github.com/dmitrymomot/hireflow/middlewares"
	"github.com/dmitrymomot/hireflow/pkg/apierr"
	"github.com/dmitrymomot/hireflow/pkg/cookie"
	"github.com/dmitrymomot/hireflow/pkg/health"
	"github.com/dmitrymomot/hireflow/pkg/hostrouter"
)

// ErrNoFrontend is returned when neither a frontend URL nor a static
// directory is configured.
var ErrNoFrontend = errors.New("edge: no frontend configured")

// serviceName identifies the edge in health reports.
const serviceName = "hireflow-edge"

type options struct {
	logger     *slog.Logger
	transport  http.RoundTripper
	registry   *prometheus.Registry
	readyCheck health.Checks
}

// Option configures the edge handler.
type Option func(*options)

// WithLogger sets the logger used by the middlewares and the proxies.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTransport sets the round tripper used to reach the upstreams.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		if rt != nil {
			o.transport = rt
		}
	}
}

// WithRegistry collects metrics on reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// WithReadinessCheck adds a named readiness check next to the backend one.
func WithReadinessCheck(name string, check health.CheckFunc) Option {
	return func(o *options) {
		if name != "" && check != nil {
			o.readyCheck[name] = check
		}
	}
}

// New builds the edge handler from cfg.
func New(cfg config.Edge, opts ...Option) (http.Handler, error) {
	o := &options{
		logger:     slog.New(slog.DiscardHandler),
		transport:  http.DefaultTransport,
		readyCheck: health.Checks{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	backend, _ := url.Parse(cfg.BackendURL)

	frontend, err := frontendHandler(cfg, o.transport)
	if err != nil {
		return nil, err
	}

	catalogue, err := apierr.Catalogue()
	if err != nil {
		return nil, fmt.Errorf("edge: load catalogue: %w", err)
	}

	o.readyCheck["backend"] = health.HTTPCheck(
		&http.Client{Transport: o.transport},
		strings.TrimSuffix(cfg.BackendURL, "/")+cfg.BackendHealth,
	)

	guardOpts := []middlewares.AuthGuardOption{middlewares.WithAuthLogger(o.logger)}
	if cfg.JWTSecret != "" {
		guardOpts = append(guardOpts, middlewares.WithAuthSecret([]byte(cfg.JWTSecret)))
	}

	r := chi.NewRouter()
	if len(cfg.CORSOrigins) > 0 {
		r.Use(middlewares.CORS(
			middlewares.WithAllowOrigins(cfg.CORSOrigins...),
			middlewares.WithAllowCredentials(),
		))
	}
	r.Use(
		middlewares.RequestID(),
		middlewares.Recover(o.logger),
		middlewares.AccessLog(o.logger),
		middlewares.Metrics(o.registry),
		middlewares.Language(catalogue),
	)
	if cfg.BaseDomain != "" {
		r.Use(middlewares.Tenant(cfg.BaseDomain))
	}

	r.Get("/health/live", health.LivenessHandler(health.WithService(serviceName)))
	r.Get("/health/ready", health.ReadinessHandler(o.readyCheck,
		health.WithService(serviceName),
		health.WithLogger(o.logger)))
	r.Method(http.MethodGet, "/metrics", middlewares.MetricsHandler(o.registry))

	api := newBackendProxy(backend, o.transport, catalogue, o.logger)
	r.With(middlewares.Timeout(cfg.RequestTimeout)).Handle("/api", api)
	r.With(middlewares.Timeout(cfg.RequestTimeout)).Handle("/api/*", api)

	// The api subdomain reaches the backend on every path.
	var pages http.Handler = middlewares.AuthGuard(cookie.New(), guardOpts...)(frontend)
	if cfg.BaseDomain != "" {
		pages = hostrouter.New(hostrouter.Routes{"api." + cfg.BaseDomain: api}, pages)
	}
	r.Handle("/*", pages)

	return r, nil
}

func frontendHandler(cfg config.Edge, transport http.RoundTripper) (http.Handler, error) {
	switch {
	case cfg.FrontendURL != "":
		u, err := url.Parse(cfg.FrontendURL)
		if err != nil {
			return nil, err
		}
		return newFrontendProxy(u, transport), nil
	case cfg.StaticDir != "":
		return spaHandler(cfg.StaticDir), nil
	default:
		return nil, ErrNoFrontend
	}
}
