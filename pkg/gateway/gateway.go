package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/hireflow/pkg/session"
)

// Header names set by the gateway.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderTenant    = "X-Tenant-Subdomain"
)

// Session is the part of the session store the gateway depends on.
type Session interface {
	Token(ctx context.Context) string
	Clear(ctx context.Context) error
}

var _ Session = (*session.Store)(nil)

// SessionExpired is published when the backend rejects the session.
type SessionExpired struct {
	// RedirectTo is the route the user must be sent to.
	RedirectTo string
	Method     string
	URL        string
	RequestID  string
}

// ExpiryObserver is notified when the session expires.
type ExpiryObserver interface {
	SessionExpired(ctx context.Context, ev SessionExpired)
}

// ExpiryFunc adapts a function to ExpiryObserver.
type ExpiryFunc func(ctx context.Context, ev SessionExpired)

// SessionExpired implements ExpiryObserver.
func (f ExpiryFunc) SessionExpired(ctx context.Context, ev SessionExpired) {
	f(ctx, ev)
}

// Request describes one backend call.
type Request struct {
	Header http.Header
	Body   any
	Method string
	URL    string
}

// Gateway sends authenticated requests.
type Gateway struct {
	client    *http.Client
	session   Session
	logger    *slog.Logger
	tenant    func(ctx context.Context) string
	requestID func() string
	observers []*observerEntry
	mu        sync.RWMutex
}

type observerEntry struct {
	obs ExpiryObserver
}

// Option configures the Gateway.
type Option func(*Gateway)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithExpiryObserver registers an observer at construction.
func WithExpiryObserver(obs ExpiryObserver) Option {
	return func(g *Gateway) {
		if obs != nil {
			g.observers = append(g.observers, &observerEntry{obs: obs})
		}
	}
}

// WithTenant sets the function providing the tenant subdomain header.
func WithTenant(fn func(ctx context.Context) string) Option {
	return func(g *Gateway) {
		g.tenant = fn
	}
}

// WithRequestIDGenerator overrides the request ID generator.
func WithRequestIDGenerator(fn func() string) Option {
	return func(g *Gateway) {
		if fn != nil {
			g.requestID = fn
		}
	}
}

// New creates a Gateway. A nil client uses http.DefaultClient.
func New(client *http.Client, sess Session, opts ...Option) *Gateway {
	if client == nil {
		client = http.DefaultClient
	}
	g := &Gateway{
		client:    client,
		session:   sess,
		logger:    slog.New(slog.DiscardHandler),
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Subscribe registers an observer and returns a function removing it.
func (g *Gateway) Subscribe(obs ExpiryObserver) (unsubscribe func()) {
	entry := &observerEntry{obs: obs}

	g.mu.Lock()
	g.observers = append(g.observers, entry)
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.observers = slices.DeleteFunc(g.observers, func(e *observerEntry) bool {
			return e == entry
		})
	}
}

// Client returns the underlying HTTP client.
func (g *Gateway) Client() *http.Client {
	return g.client
}

// Do sends the request. The caller must close the response body.
func (g *Gateway) Do(ctx context.Context, r Request) (*http.Response, error) {
	req, err := g.build(ctx, r)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Join(ctxErr, err)
		}
		g.logger.WarnContext(ctx, "backend unreachable",
			slog.String("method", req.Method),
			slog.String("url", req.URL.Redacted()),
			slog.Any("error", err))
		return nil, &UnreachableError{Method: req.Method, URL: req.URL.Redacted(), Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		g.expire(ctx, SessionExpired{
			RedirectTo: session.RoleSelectionPath,
			Method:     req.Method,
			URL:        req.URL.Redacted(),
			RequestID:  req.Header.Get(HeaderRequestID),
		})
	}

	return resp, nil
}

func (g *Gateway) build(ctx context.Context, r Request) (*http.Request, error) {
	if r.URL == "" {
		return nil, errors.Join(ErrInvalidRequest, errors.New("empty url"))
	}
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	body, contentType, err := encodeBody(r.Body)
	if err != nil {
		return nil, errors.Join(ErrEncodeBody, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return nil, errors.Join(ErrInvalidRequest, err)
	}

	for name, values := range r.Header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	switch r.Body.(type) {
	case *Multipart:
		// The boundary is owned by the encoder.
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
	default:
		if req.Header.Get("Content-Type") == "" {
			req.Header.Set("Content-Type", contentType)
		}
	}

	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, g.requestID())
	}
	if g.tenant != nil && req.Header.Get(HeaderTenant) == "" {
		if sub := g.tenant(ctx); sub != "" {
			req.Header.Set(HeaderTenant, sub)
		}
	}

	if g.session != nil {
		if token := g.session.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		} else {
			g.logger.DebugContext(ctx, "no session token, sending anonymous request",
				slog.String("method", method),
				slog.String("url", req.URL.Redacted()))
		}
	}

	return req, nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "application/json", nil
	case *Multipart:
		if b == nil {
			return nil, "", nil
		}
		return b.encode()
	case io.Reader:
		return b, "application/json", nil
	case []byte:
		return bytes.NewReader(b), "application/json", nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func (g *Gateway) expire(ctx context.Context, ev SessionExpired) {
	g.logger.WarnContext(ctx, "session expired",
		slog.String("method", ev.Method),
		slog.String("url", ev.URL),
		slog.String("request_id", ev.RequestID))

	if g.session != nil {
		if err := g.session.Clear(ctx); err != nil {
			g.logger.ErrorContext(ctx, "failed to clear session", slog.Any("error", err))
		}
	}

	g.mu.RLock()
	observers := slices.Clone(g.observers)
	g.mu.RUnlock()

	for _, e := range observers {
		e.obs.SessionExpired(ctx, ev)
	}
}
