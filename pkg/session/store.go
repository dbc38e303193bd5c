package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/hireflow/pkg/cookie"
	"github.com/dmitrymomot/hireflow/pkg/kvstore"
)

// Storage keys.
const (
	KeyToken   = "auth_token"
	KeyProfile = "user_info"
	KeyTenant  = "tenant_subdomain"
)

// CookieSink is the cookie copy of the token. *cookie.Jar implements it.
type CookieSink interface {
	Get(name string) (string, error)
	Set(name, value string)
	Expire(name string)
}

var _ CookieSink = (*cookie.Jar)(nil)

// Store manages the session across durable storage and the auth cookie.
// It is safe for concurrent use; concurrent writers resolve last-writer-wins.
type Store struct {
	durable kvstore.Store
	cookies CookieSink
	logger  *slog.Logger
	mu      sync.RWMutex
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger used for storage failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a session store. Either sink may be nil.
func New(durable kvstore.Store, cookies CookieSink, opts ...Option) *Store {
	s := &Store{
		durable: durable,
		cookies: cookies,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set writes the token and profile to durable storage and the token to the cookie.
// If the cookie is missing after the write, it is rewritten from the durable copy.
func (s *Store) Set(ctx context.Context, token string, profile Profile) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.durable != nil {
		raw, err := json.Marshal(profile)
		if err != nil {
			return errors.Join(ErrPersist, err)
		}
		if err := s.durable.Set(ctx, KeyProfile, string(raw)); err != nil {
			return errors.Join(ErrPersist, err)
		}
		if err := s.durable.Set(ctx, KeyToken, token); err != nil {
			// Token and profile are never left half-written.
			if cerr := s.clear(ctx); cerr != nil {
				s.logger.ErrorContext(ctx, "failed to clear session", slog.Any("error", cerr))
			}
			return errors.Join(ErrPersist, err)
		}
	}

	if s.cookies == nil {
		return nil
	}
	s.cookies.Set(cookie.AuthToken, token)
	if _, err := s.cookies.Get(cookie.AuthToken); err != nil {
		s.logger.WarnContext(ctx, "auth cookie missing after write, rewriting from durable copy")
		s.healCookie(ctx)
	}
	return nil
}

// Current returns the full session, or false when no token is stored.
func (s *Store) Current(ctx context.Context) (*Session, bool) {
	token := s.Token(ctx)
	if token == "" {
		return nil, false
	}
	sess := &Session{AccessToken: token}
	if p, ok := s.Profile(ctx); ok {
		sess.Profile = *p
	}
	return sess, true
}

// Token returns the bearer token: durable copy first, then the cookie.
// Returns "" when neither holds one.
func (s *Store) Token(ctx context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if token := s.durableGet(ctx, KeyToken); token != "" {
		if s.cookies != nil {
			if _, err := s.cookies.Get(cookie.AuthToken); err != nil {
				s.cookies.Set(cookie.AuthToken, token)
			}
		}
		return token
	}

	if s.cookies != nil {
		if token, err := s.cookies.Get(cookie.AuthToken); err == nil {
			return token
		}
	}
	return ""
}

// Clear removes the token and profile from durable storage and expires the cookie.
// The tenant subdomain is kept.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clear(ctx)
}

func (s *Store) clear(ctx context.Context) error {
	var errs []error
	if s.durable != nil {
		if err := s.durable.Delete(ctx, KeyToken); err != nil {
			errs = append(errs, err)
		}
		if err := s.durable.Delete(ctx, KeyProfile); err != nil {
			errs = append(errs, err)
		}
	}
	if s.cookies != nil {
		s.cookies.Expire(cookie.AuthToken)
	}
	if err := errors.Join(errs...); err != nil {
		return errors.Join(ErrPersist, err)
	}
	return nil
}

// Profile returns the stored user profile.
// A profile that cannot be decoded clears the whole session.
func (s *Store) Profile(ctx context.Context) (*Profile, bool) {
	s.mu.RLock()
	raw := s.durableGet(ctx, KeyProfile)
	s.mu.RUnlock()

	if raw == "" {
		return nil, false
	}

	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A concurrent Set may have replaced the profile in the meantime.
		if s.durableGet(ctx, KeyProfile) != raw {
			return s.decodedProfile(ctx)
		}

		s.logger.WarnContext(ctx, "clearing session",
			slog.Any("error", errors.Join(ErrCorruptedProfile, err)))
		if err := s.clear(ctx); err != nil {
			s.logger.ErrorContext(ctx, "failed to clear session", slog.Any("error", err))
		}
		return nil, false
	}
	return &p, true
}

// decodedProfile decodes the stored profile. Callers must hold the lock.
func (s *Store) decodedProfile(ctx context.Context) (*Profile, bool) {
	raw := s.durableGet(ctx, KeyProfile)
	if raw == "" {
		return nil, false
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, false
	}
	return &p, true
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// Role returns the role of the stored profile, or RoleNone.
func (s *Store) Role(ctx context.Context) Role {
	p, ok := s.Profile(ctx)
	if !ok {
		return RoleNone
	}
	return ParseRole(p.Role)
}

// HasRole reports whether the stored profile has the given role.
func (s *Store) HasRole(ctx context.Context, role Role) bool {
	r := s.Role(ctx)
	return r != RoleNone && r == role
}

// HasAnyRole reports whether the stored profile has one of the given roles.
func (s *Store) HasAnyRole(ctx context.Context, roles ...Role) bool {
	r := s.Role(ctx)
	return r != RoleNone && slices.Contains(roles, r)
}

// Tenant returns the cached tenant subdomain.
func (s *Store) Tenant(ctx context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.durableGet(ctx, KeyTenant)
}

// SetTenant caches the tenant subdomain. An empty value removes it.
func (s *Store) SetTenant(ctx context.Context, subdomain string) error {
	if s.durable == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if subdomain == "" {
		err = s.durable.Delete(ctx, KeyTenant)
	} else {
		err = s.durable.Set(ctx, KeyTenant, subdomain)
	}
	if err != nil {
		return errors.Join(ErrPersist, err)
	}
	return nil
}

// Durable exposes the durable storage, which may be nil.
func (s *Store) Durable() kvstore.Store {
	return s.durable
}

func (s *Store) healCookie(ctx context.Context) {
	if token := s.durableGet(ctx, KeyToken); token != "" {
		s.cookies.Set(cookie.AuthToken, token)
	}
}

func (s *Store) durableGet(ctx context.Context, key string) string {
	if s.durable == nil {
		return ""
	}
	v, err := s.durable.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			s.logger.WarnContext(ctx, "durable storage read failed",
				slog.String("key", key),
				slog.Any("error", err))
		}
		return ""
	}
	return v
}
