package apienv

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrymomot/hireflow/pkg/kvstore"
)

// TunnelKey is the durable storage key of the cached tunnel backend URL.
const TunnelKey = "tunnel_api_url"

// Source produces the environment snapshot for a request.
type Source interface {
	Env(ctx context.Context) (Env, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (Env, error)

// Env implements Source.
func (f SourceFunc) Env(ctx context.Context) (Env, error) {
	return f(ctx)
}

// Static returns a Source that always yields env.
func Static(env Env) Source {
	return SourceFunc(func(context.Context) (Env, error) {
		return env, nil
	})
}

// BaseURL resolves the backend base URL from src.
func BaseURL(ctx context.Context, src Source) (string, error) {
	env, err := src.Env(ctx)
	if err != nil {
		return "", err
	}
	return Resolve(env), nil
}

// StoreSource builds snapshots from the current page URL, a configured
// override and the tunnel URL cached in durable storage. The page URL may be
// changed at any time; every call reads the latest state.
type StoreSource struct {
	store    kvstore.Store
	page     string
	override string
	mu       sync.RWMutex
}

// NewStoreSource creates a StoreSource. store may be nil.
func NewStoreSource(pageURL, override string, store kvstore.Store) *StoreSource {
	return &StoreSource{
		store:    store,
		page:     pageURL,
		override: override,
	}
}

// Env implements Source.
func (s *StoreSource) Env(ctx context.Context) (Env, error) {
	s.mu.RLock()
	page, override := s.page, s.override
	s.mu.RUnlock()

	env, err := ParsePage(page)
	if err != nil {
		return Env{}, err
	}
	env.Override = override

	if s.store != nil {
		tunnel, err := s.store.Get(ctx, TunnelKey)
		switch {
		case err == nil:
			env.TunnelURL = tunnel
		case !errors.Is(err, kvstore.ErrNotFound):
			return Env{}, err
		}
	}
	return env, nil
}

// SetPage updates the current page URL.
func (s *StoreSource) SetPage(pageURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = pageURL
}

// Page returns the current page URL.
func (s *StoreSource) Page() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// SetTunnelURL caches the backend URL of the current tunnel session.
// An empty value removes it.
func (s *StoreSource) SetTunnelURL(ctx context.Context, tunnelURL string) error {
	if s.store == nil {
		return nil
	}
	if tunnelURL == "" {
		return s.store.Delete(ctx, TunnelKey)
	}
	return s.store.Set(ctx, TunnelKey, tunnelURL)
}
