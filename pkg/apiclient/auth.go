package apiclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/hireflow/pkg/apierr"
	"github.com/dmitrymomot/hireflow/pkg/gateway"
	"github.com/dmitrymomot/hireflow/pkg/hostrouter"
	"github.com/dmitrymomot/hireflow/pkg/session"
	"github.com/dmitrymomot/hireflow/pkg/slug"
)

// Auth endpoints.
const (
	LoginPath           = "/api/auth/login"
	LogoutPath          = "/api/auth/logout"
	CurrentUserPath     = "/api/auth/me"
	RegisterCompanyPath = "/api/auth/register-company"
)

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	AccessToken string
	TokenType   string
	Profile     session.Profile
	Role        session.Role
	// RedirectTo is the dashboard of the user's role.
	RedirectTo string
}

// Login exchanges credentials for a token (OAuth2 password grant, form
// encoded username and password) and stores the session.
// Failures use the login translation table.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	base, err := c.BaseURL(ctx)
	if err != nil {
		return nil, c.errors.Unknown(err)
	}

	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  strings.TrimRight(base, "/") + LoginPath,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	httpClient := &http.Client{
		Jar:     c.http.Jar,
		Timeout: c.http.Timeout,
		Transport: &headerTransport{
			base:   c.http.Transport,
			header: c.loginHeader(ctx),
		},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)

	tok, err := conf.PasswordCredentialsToken(ctx, strings.TrimSpace(email), password)
	if err != nil {
		apiErr := c.loginError(ctx, err)
		c.logger.WarnContext(ctx, "login failed",
			slog.Int("status", apiErr.Status),
			slog.String("message", apiErr.Raw))
		return nil, apiErr
	}

	profile := session.Profile{
		UserID: extraString(tok, "user_id"),
		Role:   extraString(tok, "user_role"),
		Email:  extraString(tok, "user_email"),
		Name:   extraString(tok, "user_name"),
	}
	if profile.Email == "" {
		profile.Email = strings.TrimSpace(email)
	}

	if err := c.sessions.Set(ctx, tok.AccessToken, profile); err != nil {
		return nil, c.errors.Unknown(err)
	}

	role := session.ParseRole(profile.Role)
	c.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", profile.UserID),
		slog.String("role", role.String()))

	return &LoginResult{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		Profile:     profile,
		Role:        role,
		RedirectTo:  session.DashboardPath(role),
	}, nil
}

func (c *Client) loginHeader(ctx context.Context) http.Header {
	h := http.Header{}
	if tenant := c.sessions.Tenant(ctx); tenant != "" {
		h.Set(gateway.HeaderTenant, tenant)
	}
	return h
}

func (c *Client) loginError(ctx context.Context, err error) *apierr.Error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		return c.errors.NormalizeLogin(re.Response.StatusCode, re.Body)
	}

	var ue *url.Error
	if errors.As(err, &ue) && ctx.Err() == nil {
		return c.errors.Network(&gateway.UnreachableError{Method: http.MethodPost, URL: ue.URL, Err: ue.Err})
	}
	return c.errors.Unknown(err)
}

func extraString(tok *oauth2.Token, key string) string {
	switch v := tok.Extra(key).(type) {
	case string:
		return v
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}

// headerTransport adds fixed headers to every request.
type headerTransport struct {
	base   http.RoundTripper
	header http.Header
}

func (t *headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	if len(t.header) == 0 {
		return base.RoundTrip(r)
	}

	r = r.Clone(r.Context())
	for k, vs := range t.header {
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	return base.RoundTrip(r)
}

// registration is the backend answer to a company signup.
type registration struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      ID     `json:"user_id"`
	UserRole    string `json:"user_role"`
	UserEmail   string `json:"user_email"`
	UserName    string `json:"user_name"`
	Subdomain   string `json:"subdomain"`
}

// maxSubdomainLength is the DNS label limit.
const maxSubdomainLength = 63

// RegisterCompany creates a tenant and its administrator. An empty subdomain
// is derived from the company name. The returned subdomain is cached as the
// tenant context; when the backend also returns a token the administrator is
// signed in.
func (c *Client) RegisterCompany(ctx context.Context, in CompanyRegistration) (*LoginResult, error) {
	if in.Subdomain == "" {
		in.Subdomain = TenantSlug(in.CompanyName)
	}

	reg, err := Request[registration](ctx, c, http.MethodPost, RegisterCompanyPath, WithBody(in))
	if err != nil {
		return nil, err
	}

	subdomain := reg.Subdomain
	if subdomain == "" {
		subdomain = in.Subdomain
	}
	if err := c.sessions.SetTenant(ctx, subdomain); err != nil {
		return nil, c.errors.Unknown(err)
	}

	result := &LoginResult{
		AccessToken: reg.AccessToken,
		TokenType:   reg.TokenType,
		Profile: session.Profile{
			UserID: string(reg.UserID),
			Role:   reg.UserRole,
			Email:  reg.UserEmail,
			Name:   reg.UserName,
		},
	}
	if result.Profile.Role == "" {
		result.Profile.Role = string(session.RoleAdmin)
	}
	result.Role = session.ParseRole(result.Profile.Role)
	result.RedirectTo = session.DashboardPath(result.Role)

	if reg.AccessToken != "" {
		if err := c.sessions.Set(ctx, reg.AccessToken, result.Profile); err != nil {
			return nil, c.errors.Unknown(err)
		}
	}
	return result, nil
}

// TenantSlug derives a subdomain label from a company name. Reserved
// infrastructure labels get a random suffix.
func TenantSlug(companyName string) string {
	return slug.Make(companyName,
		slug.MaxLength(maxSubdomainLength),
		slug.ReservedSlugs(slices.Collect(maps.Keys(hostrouter.Reserved))...),
	)
}

// Logout notifies the backend and clears the local session. The session is
// cleared even when the backend call fails.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := Request[struct{}](ctx, c, http.MethodPost, LogoutPath); err != nil {
		c.logger.DebugContext(ctx, "backend logout failed", slog.Any("error", err))
	}
	if err := c.sessions.Clear(ctx); err != nil {
		return c.errors.Unknown(err)
	}
	return nil
}

// CurrentUser returns the signed-in user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	u, err := Request[User](ctx, c, http.MethodGet, CurrentUserPath)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
