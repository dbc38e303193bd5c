package server

import (
	"context"
	"log/slog"
	"net"
	"time"
)

// Option configures the server runtime.
type Option func(*config)

type config struct {
	baseCtx         context.Context
	logger          *slog.Logger
	listener        net.Listener
	address         string
	shutdownHooks   []func(context.Context) error
	shutdownTimeout time.Duration
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		address:         defaultAddress,
		shutdownTimeout: defaultShutdownTimeout,
		logger:          slog.New(slog.DiscardHandler),
		baseCtx:         context.Background(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithAddress sets the listen address. Defaults to ":3000".
func WithAddress(addr string) Option {
	return func(c *config) {
		if addr != "" {
			c.address = addr
		}
	}
}

// WithListener serves on an existing listener instead of WithAddress.
func WithListener(ln net.Listener) Option {
	return func(c *config) {
		c.listener = ln
	}
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithShutdownTimeout bounds the graceful shutdown, hooks included.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// WithShutdownHook registers a cleanup function run after the HTTP server
// stops, in registration order.
//
//	server.WithShutdownHook(redis.Shutdown(client))
func WithShutdownHook(fn func(context.Context) error) Option {
	return func(c *config) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// WithContext sets the parent of the signal-aware context.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}
