package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/hireflow/pkg/gateway"
	"github.com/dmitrymomot/hireflow/pkg/hostrouter"
	"github.com/dmitrymomot/hireflow/pkg/logger"
)

type tenantKey struct{}

// Tenant resolves the tenant subdomain of baseDomain from the Host header.
// When the host carries none, an X-Tenant-Subdomain sent by the client is
// kept. The resolved value is stored in the context and forwarded upstream.
func Tenant(baseDomain string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenant := hostrouter.Tenant(r, baseDomain)
			if tenant == "" {
				tenant = r.Header.Get(gateway.HeaderTenant)
			}
			if tenant == "" {
				r.Header.Del(gateway.HeaderTenant)
				next.ServeHTTP(w, r)
				return
			}

			r.Header.Set(gateway.HeaderTenant, tenant)
			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), tenant)))
		})
	}
}

// WithTenant stores a tenant subdomain in ctx.
func WithTenant(ctx context.Context, tenant string) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenant)
}

// GetTenant returns the tenant stored in ctx, or "".
func GetTenant(ctx context.Context) string {
	v, _ := ctx.Value(tenantKey{}).(string)
	return v
}

// TenantExtractor adds "tenant" to every log entry.
func TenantExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := GetTenant(ctx); v != "" {
			return slog.String("tenant", v), true
		}
		return slog.Attr{}, false
	}
}
