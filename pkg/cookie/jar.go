package cookie

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"golang.org/x/net/publicsuffix"
)

// Jar is the client-side cookie copy of the session, bound to the page origin.
// It wraps a standard cookie jar so the same cookies are sent by any
// http.Client using CookieJar().
type Jar struct {
	jar    *cookiejar.Jar
	origin *url.URL
	mgr    *Manager
	mu     sync.Mutex
}

// NewJar creates a jar for the given page origin (e.g. "https://acme.example.com").
// The Secure attribute follows the origin scheme.
func NewJar(origin string, opts ...Option) (*Jar, error) {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, ErrNoOrigin
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	opts = append([]Option{WithSecure(u.Scheme == "https")}, opts...)

	return &Jar{
		jar:    jar,
		origin: &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"},
		mgr:    New(opts...),
	}, nil
}

// CookieJar exposes the underlying jar for http.Client.Jar.
func (j *Jar) CookieJar() http.CookieJar {
	return j.jar
}

// Origin returns the page origin the jar is bound to.
func (j *Jar) Origin() *url.URL {
	u := *j.origin
	return &u
}

// Secure reports whether cookies written by the jar carry the Secure flag.
func (j *Jar) Secure() bool {
	return j.mgr.secure
}

// Get returns the value of the named cookie for the page origin.
func (j *Jar) Get(name string) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, c := range j.jar.Cookies(j.origin) {
		if c.Name == name && c.Value != "" {
			return c.Value, nil
		}
	}
	return "", ErrNotFound
}

// Set stores the named cookie with the jar's attributes.
func (j *Jar) Set(name, value string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.jar.SetCookies(j.origin, []*http.Cookie{j.mgr.Cookie(name, value)})
}

// Expire removes the named cookie.
func (j *Jar) Expire(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.jar.SetCookies(j.origin, []*http.Cookie{j.mgr.Expired(name)})
}
