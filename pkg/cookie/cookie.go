package cookie

import (
	"errors"
	"net/http"
	"time"
)

const (
	// AuthToken is the name of the cookie holding the bearer token.
	AuthToken = "auth_token"

	// DefaultMaxAge is the lifetime of the session cookie.
	DefaultMaxAge = 7 * 24 * time.Hour
)

// Errors.
var (
	ErrNotFound = errors.New("cookie: not found")
	ErrNoOrigin = errors.New("cookie: jar requires an absolute http(s) origin")
)

// Manager reads and writes cookies on server responses.
type Manager struct {
	domain   string
	path     string
	maxAge   time.Duration
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a cookie Manager. Defaults: Path=/, SameSite=Lax, seven days,
// not HttpOnly (the page script reads the token), not Secure.
func New(opts ...Option) *Manager {
	m := &Manager{
		path:     "/",
		maxAge:   DefaultMaxAge,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = domain
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.path = path
		}
	}
}

// WithSecure sets the Secure flag. Pass true when the page is served over HTTPS.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) {
		m.httpOnly = httpOnly
	}
}

// WithMaxAge sets the cookie lifetime.
func WithMaxAge(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.maxAge = d
		}
	}
}

// Get returns a cookie value from the request.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	if c.Value == "" {
		return "", ErrNotFound
	}
	return c.Value, nil
}

// Set writes a cookie with the manager's attributes.
func (m *Manager) Set(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, m.Cookie(name, value))
}

// Delete expires a cookie immediately.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.Expired(name))
}

// Cookie builds a cookie with the manager's attributes.
func (m *Manager) Cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   int(m.maxAge.Seconds()),
		Expires:  time.Now().Add(m.maxAge),
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}

// Expired builds a cookie that removes name from the client.
func (m *Manager) Expired(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}
