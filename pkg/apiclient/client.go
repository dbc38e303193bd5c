package apiclient

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/hireflow/pkg/apienv"
	"github.com/dmitrymomot/hireflow/pkg/apierr"
	"github.com/dmitrymomot/hireflow/pkg/gateway"
	"github.com/dmitrymomot/hireflow/pkg/session"
)

// Client is the typed backend client.
type Client struct {
	env      apienv.Source
	sessions *session.Store
	gateway  *gateway.Gateway
	errors   *apierr.Translator
	http     *http.Client
	logger   *slog.Logger
}

type options struct {
	env        apienv.Source
	httpClient *http.Client
	translator *apierr.Translator
	logger     *slog.Logger
	language   string
	observers  []gateway.ExpiryObserver
}

// Option configures the Client.
type Option func(*options)

// WithEnvSource sets the environment used to resolve the backend URL.
// Defaults to no page context, which resolves to the local backend.
func WithEnvSource(src apienv.Source) Option {
	return func(o *options) {
		o.env = src
	}
}

// WithBaseURL pins the backend URL, bypassing page-based resolution.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.env = apienv.Static(apienv.Env{Override: baseURL})
	}
}

// WithHTTPClient sets the HTTP client. Install the session cookie jar on it
// so cookies travel with every request.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithTranslator sets the error translator.
func WithTranslator(t *apierr.Translator) Option {
	return func(o *options) {
		o.translator = t
	}
}

// WithLanguage sets the error message language when no translator is given.
func WithLanguage(lang string) Option {
	return func(o *options) {
		o.language = lang
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithExpiryObserver registers an observer notified when the session expires.
func WithExpiryObserver(obs gateway.ExpiryObserver) Option {
	return func(o *options) {
		o.observers = append(o.observers, obs)
	}
}

// New creates a Client.
func New(sessions *session.Store, opts ...Option) (*Client, error) {
	if sessions == nil {
		return nil, ErrNoSessionStore
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.env == nil {
		o.env = apienv.Static(apienv.Env{})
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.translator == nil {
		t, err := apierr.NewTranslator(apierr.WithLanguage(o.language))
		if err != nil {
			return nil, err
		}
		o.translator = t
	}

	gwOpts := []gateway.Option{
		gateway.WithLogger(o.logger),
	}
	for _, obs := range o.observers {
		gwOpts = append(gwOpts, gateway.WithExpiryObserver(obs))
	}

	return &Client{
		env:      o.env,
		sessions: sessions,
		gateway:  gateway.New(o.httpClient, sessions, gwOpts...),
		errors:   o.translator,
		http:     o.httpClient,
		logger:   o.logger,
	}, nil
}

// Session returns the session store.
func (c *Client) Session() *session.Store {
	return c.sessions
}

// Gateway returns the underlying gateway.
func (c *Client) Gateway() *gateway.Gateway {
	return c.gateway
}

// BaseURL resolves the backend URL for the current environment.
func (c *Client) BaseURL(ctx context.Context) (string, error) {
	return apienv.BaseURL(ctx, c.env)
}

// OnSessionExpired registers an observer and returns a function removing it.
func (c *Client) OnSessionExpired(obs gateway.ExpiryObserver) (unsubscribe func()) {
	return c.gateway.Subscribe(obs)
}
