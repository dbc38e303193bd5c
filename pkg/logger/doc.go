// Package logger builds the slog loggers used by the SDK and the edge server.
//
// Loggers write JSON (or text) to stdout, enrich every record with
// request-scoped attributes pulled from the context, and optionally forward
// warnings and errors to Sentry.
//
//	log := logger.New(logger.Config{Level: "debug"},
//		middlewares.RequestIDExtractor(),
//		middlewares.TenantExtractor(),
//	)
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//	// {"level":"INFO","msg":"request processed","status":200,"request_id":"...","tenant":"acme"}
//
// # Context Extractors
//
// A [ContextExtractor] returns one attribute from the context. Extractors run
// on every log call so request-scoped values are always fresh.
//
// # Sentry
//
// When Config.Sentry.DSN is set, errors become Sentry issues and warnings are
// stored as Sentry logs. An empty DSN, or a failed Sentry initialization,
// falls back to stdout only. Call [Flush] before the process exits.
package logger
