// Package middlewares provides the net/http middlewares of the edge server.
//
// Every middleware has the shape func(http.Handler) http.Handler and plugs
// into chi or any other router:
//
//	r := chi.NewRouter()
//	r.Use(
//		middlewares.CORS(middlewares.WithAllowOrigins(origins...), middlewares.WithAllowCredentials()),
//		middlewares.RequestID(),
//		middlewares.Recover(logger),
//		middlewares.AccessLog(logger),
//		middlewares.Metrics(prometheus.DefaultRegisterer),
//		middlewares.Tenant("hireflow.io"),
//		middlewares.Language(catalogue),
//		middlewares.AuthGuard(cookies, middlewares.WithAuthSecret(secret)),
//	)
//
// # Request ID
//
// RequestID reuses an incoming X-Request-ID (or X-Correlation-ID) and
// generates a UUID otherwise. Pair it with RequestIDExtractor so every log
// line carries the ID:
//
//	log := logger.New(cfg, middlewares.RequestIDExtractor(), middlewares.TenantExtractor())
//
// # Auth guard
//
// AuthGuard protects the role dashboards (/admin, /manager, /recruiter,
// /client). Requests without the auth_token cookie are redirected to the
// role selection page. When a signing secret is configured the cookie must
// hold a valid HS256 token; a token whose role claim belongs to another
// dashboard is redirected there.
//
// # Tenant
//
// Tenant resolves the company subdomain from the Host header, stores it in
// the request context and forwards it upstream as X-Tenant-Subdomain.
//
// # Recommended order
//
// CORS first so preflights short-circuit, then RequestID so all later
// middlewares log with the ID, then Recover, AccessLog and Metrics, then the
// request-scoped resolvers (Tenant, Language) and finally AuthGuard.
package middlewares
