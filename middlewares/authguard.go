package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrymomot/hireflow/pkg/cookie"
	"github.com/dmitrymomot/hireflow/pkg/session"
)

// DefaultRoleClaim is the JWT claim holding the user's role.
const DefaultRoleClaim = "role"

type claimsKey struct{}

// AuthGuardConfig configures the AuthGuard middleware.
type AuthGuardConfig struct {
	Logger     *slog.Logger
	Protected  map[string]session.Role
	LoginPath  string
	RoleClaim  string
	CookieName string
	Secret     []byte
}

// AuthGuardOption configures AuthGuardConfig.
type AuthGuardOption func(*AuthGuardConfig)

// WithAuthSecret enables HS256 verification of the auth cookie.
func WithAuthSecret(secret []byte) AuthGuardOption {
	return func(cfg *AuthGuardConfig) {
		cfg.Secret = secret
	}
}

// WithProtectedPaths replaces the guarded prefix to role mapping.
func WithProtectedPaths(paths map[string]session.Role) AuthGuardOption {
	return func(cfg *AuthGuardConfig) {
		if len(paths) > 0 {
			cfg.Protected = paths
		}
	}
}

// WithLoginPath sets where unauthenticated visitors are sent.
func WithLoginPath(path string) AuthGuardOption {
	return func(cfg *AuthGuardConfig) {
		if path != "" {
			cfg.LoginPath = path
		}
	}
}

// WithRoleClaim sets the JWT claim read for the role.
func WithRoleClaim(claim string) AuthGuardOption {
	return func(cfg *AuthGuardConfig) {
		if claim != "" {
			cfg.RoleClaim = claim
		}
	}
}

// WithAuthLogger sets the logger for rejected tokens.
func WithAuthLogger(l *slog.Logger) AuthGuardOption {
	return func(cfg *AuthGuardConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// AuthGuard keeps anonymous visitors out of the role dashboards.
//
// A protected request without the auth cookie is redirected (302) to the
// login path. With a secret configured, an invalid or expired token also
// expires the cookie, and a token whose role claim maps to another
// dashboard is redirected to that dashboard. Requests outside the protected
// prefixes pass through untouched.
func AuthGuard(cookies *cookie.Manager, opts ...AuthGuardOption) Middleware {
	if cookies == nil {
		cookies = cookie.New()
	}
	cfg := &AuthGuardConfig{
		Logger:     slog.New(slog.DiscardHandler),
		Protected:  session.ProtectedPaths(),
		LoginPath:  session.RoleSelectionPath,
		RoleClaim:  DefaultRoleClaim,
		CookieName: cookie.AuthToken,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (any, error) { return cfg.Secret, nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			required, ok := protectedRole(cfg.Protected, r.URL.Path)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			token, err := cookies.Get(r, cfg.CookieName)
			if err != nil {
				http.Redirect(w, r, cfg.LoginPath, http.StatusFound)
				return
			}

			if len(cfg.Secret) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			claims := jwt.MapClaims{}
			if _, err := parser.ParseWithClaims(token, claims, keyFunc); err != nil {
				cfg.Logger.WarnContext(r.Context(), "auth cookie rejected",
					slog.String("path", r.URL.Path),
					slog.Any("error", errors.Join(ErrInvalidToken, err)))
				http.SetCookie(w, cookies.Expired(cfg.CookieName))
				http.Redirect(w, r, cfg.LoginPath, http.StatusFound)
				return
			}

			raw, _ := claims[cfg.RoleClaim].(string)
			if role := session.ParseRole(raw); role.Valid() && role != required {
				http.Redirect(w, r, session.DashboardPath(role), http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

// GetClaims returns the verified token claims, or nil when no secret is
// configured or the route is public.
func GetClaims(ctx context.Context) jwt.MapClaims {
	v, _ := ctx.Value(claimsKey{}).(jwt.MapClaims)
	return v
}

// protectedRole returns the role owning the longest prefix matching path.
func protectedRole(protected map[string]session.Role, path string) (session.Role, bool) {
	var (
		best  string
		role  session.Role
		found bool
	)
	for prefix, r := range protected {
		if path != prefix && !strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/") {
			continue
		}
		if len(prefix) > len(best) {
			best, role, found = prefix, r, true
		}
	}
	return role, found
}
