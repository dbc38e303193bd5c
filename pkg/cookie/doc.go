// Package cookie builds and reads the session cookie shared between the
// client SDK and the edge server.
//
// The cookie carries the raw bearer token under the name [AuthToken] so the
// edge server can decide whether a page request is authenticated before the
// page renders. It is scoped to the whole application (Path=/), uses
// SameSite=Lax, lives for seven days and is marked Secure only when the page
// is served over HTTPS.
//
// # Server Side
//
// The edge server reads and expires cookies through a [Manager]:
//
//	m := cookie.New(cookie.WithSecure(r.TLS != nil))
//	token, err := m.Get(r, cookie.AuthToken)
//	if errors.Is(err, cookie.ErrNotFound) {
//		// redirect to the role selection page
//	}
//	m.Delete(w, cookie.AuthToken)
//
// # Client Side
//
// The SDK keeps its copy in a [Jar] bound to the page origin. The same jar is
// installed on the HTTP client, so the cookie travels with every request to
// that origin:
//
//	jar, err := cookie.NewJar("https://acme.example.com")
//	client := &http.Client{Jar: jar.CookieJar()}
//	jar.Set(cookie.AuthToken, token)
package cookie
