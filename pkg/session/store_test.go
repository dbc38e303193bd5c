package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hireflow/pkg/cookie"
	"github.com/dmitrymomot/hireflow/pkg/kvstore"
	"github.com/dmitrymomot/hireflow/pkg/session"
)

// lossyJar drops the first n cookie writes, like a browser refusing a cookie.
type lossyJar struct {
	values map[string]string
	drop   int
	mu     sync.Mutex
}

func newLossyJar(drop int) *lossyJar {
	return &lossyJar{values: map[string]string{}, drop: drop}
}

func (j *lossyJar) Get(name string) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	v, ok := j.values[name]
	if !ok || v == "" {
		return "", cookie.ErrNotFound
	}
	return v, nil
}

func (j *lossyJar) Set(name, value string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.drop > 0 {
		j.drop--
		return
	}
	j.values[name] = value
}

func (j *lossyJar) Expire(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.values, name)
}

// faultyStore wraps a kvstore and fails writes to one key.
type faultyStore struct {
	kvstore.Store
	failKey string
	mu      sync.Mutex
}

func (f *faultyStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	fail := f.failKey == key
	f.mu.Unlock()
	if fail {
		return errors.New("quota exceeded")
	}
	return f.Store.Set(ctx, key, value)
}

func (f *faultyStore) failOn(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failKey = key
}

// staleProfileStore returns a stale profile value on the first read of the profile key,
// as if another writer replaced it right after that read.
type staleProfileStore struct {
	kvstore.Store
	stale string
	once  sync.Once
}

func (s *staleProfileStore) Get(ctx context.Context, key string) (string, error) {
	if key == session.KeyProfile {
		served := false
		s.once.Do(func() { served = true })
		if served {
			return s.stale, nil
		}
	}
	return s.Store.Get(ctx, key)
}

var managerProfile = session.Profile{
	UserID: "u1",
	Role:   "manager",
	Email:  "m@x.com",
	Name:   "M X",
}

func newJar(t *testing.T) *cookie.Jar {
	t.Helper()
	jar, err := cookie.NewJar("https://acme.example.com")
	require.NoError(t, err)
	return jar
}

func TestStore_SetAndRead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	durable := kvstore.NewMemory()
	jar := newJar(t)
	store := session.New(durable, jar)

	require.NoError(t, store.Set(ctx, "abc123", managerProfile))

	require.Equal(t, "abc123", store.Token(ctx))
	require.True(t, store.IsAuthenticated(ctx))
	require.Equal(t, session.RoleManager, store.Role(ctx))
	require.True(t, store.HasRole(ctx, session.RoleManager))
	require.False(t, store.HasRole(ctx, session.RoleAdmin))
	require.True(t, store.HasAnyRole(ctx, session.RoleAdmin, session.RoleManager))
	require.False(t, store.HasAnyRole(ctx))

	p, ok := store.Profile(ctx)
	require.True(t, ok)
	require.Equal(t, managerProfile, *p)

	cookieToken, err := jar.Get(cookie.AuthToken)
	require.NoError(t, err)
	require.Equal(t, "abc123", cookieToken)

	stored, err := durable.Get(ctx, session.KeyToken)
	require.NoError(t, err)
	require.Equal(t, "abc123", stored)

	sess, ok := store.Current(ctx)
	require.True(t, ok)
	require.Equal(t, "abc123", sess.AccessToken)
	require.Equal(t, session.RoleManager, sess.Role())
}

func TestStore_SetRejectsEmptyToken(t *testing.T) {
	t.Parallel()

	store := session.New(kvstore.NewMemory(), nil)
	require.ErrorIs(t, store.Set(context.Background(), "", managerProfile), session.ErrEmptyToken)
}

func TestStore_TokenCookieConsistency(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("lost cookie write is healed on set", func(t *testing.T) {
		t.Parallel()

		jar := newLossyJar(1)
		store := session.New(kvstore.NewMemory(), jar)
		require.NoError(t, store.Set(ctx, "abc123", managerProfile))

		v, err := jar.Get(cookie.AuthToken)
		require.NoError(t, err)
		require.Equal(t, "abc123", v)
	})

	t.Run("missing cookie is rewritten on read", func(t *testing.T) {
		t.Parallel()

		jar := newLossyJar(0)
		store := session.New(kvstore.NewMemory(), jar)
		require.NoError(t, store.Set(ctx, "abc123", managerProfile))

		jar.Expire(cookie.AuthToken)
		require.Equal(t, "abc123", store.Token(ctx))

		v, err := jar.Get(cookie.AuthToken)
		require.NoError(t, err)
		require.Equal(t, "abc123", v)
	})

	t.Run("cookie fallback when durable copy is missing", func(t *testing.T) {
		t.Parallel()

		jar := newLossyJar(0)
		jar.Set(cookie.AuthToken, "from-cookie")
		store := session.New(kvstore.NewMemory(), jar)

		require.Equal(t, "from-cookie", store.Token(ctx))
		require.True(t, store.IsAuthenticated(ctx))
		require.Equal(t, session.RoleNone, store.Role(ctx))
	})
}

func TestStore_ClearIsTotal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	durable := kvstore.NewMemory()
	jar := newJar(t)
	store := session.New(durable, jar)

	require.NoError(t, store.SetTenant(ctx, "acme"))
	require.NoError(t, store.Set(ctx, "abc123", managerProfile))
	require.NoError(t, store.Clear(ctx))

	require.Empty(t, store.Token(ctx))
	require.False(t, store.IsAuthenticated(ctx))
	_, ok := store.Profile(ctx)
	require.False(t, ok)
	require.Equal(t, session.RoleNone, store.Role(ctx))

	_, err := jar.Get(cookie.AuthToken)
	require.ErrorIs(t, err, cookie.ErrNotFound)

	_, err = durable.Get(ctx, session.KeyProfile)
	require.ErrorIs(t, err, kvstore.ErrNotFound)

	require.Equal(t, "acme", store.Tenant(ctx))
}

func TestStore_CorruptedProfileClearsSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	durable := kvstore.NewMemory()
	store := session.New(durable, newLossyJar(0))

	require.NoError(t, store.Set(ctx, "abc123", managerProfile))
	require.NoError(t, durable.Set(ctx, session.KeyProfile, "{not json"))

	_, ok := store.Profile(ctx)
	require.False(t, ok)
	require.Empty(t, store.Token(ctx))
}

func TestStore_CorruptedProfileKeepsNewerSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	durable := &staleProfileStore{Store: kvstore.NewMemory(), stale: "{not json"}
	store := session.New(durable, newLossyJar(0))

	require.NoError(t, store.Set(ctx, "fresh", managerProfile))

	p, ok := store.Profile(ctx)
	require.True(t, ok)
	require.Equal(t, managerProfile.UserID, p.UserID)
	require.Equal(t, "fresh", store.Token(ctx))
}

func TestStore_FailedTokenWriteClearsSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	durable := &faultyStore{Store: kvstore.NewMemory()}
	jar := newLossyJar(0)
	store := session.New(durable, jar)

	require.NoError(t, store.Set(ctx, "tokA", managerProfile))

	durable.failOn(session.KeyToken)
	err := store.Set(ctx, "tokB", session.Profile{UserID: "u2", Role: "admin"})
	require.ErrorIs(t, err, session.ErrPersist)

	require.Empty(t, store.Token(ctx))
	require.False(t, store.IsAuthenticated(ctx))
	_, ok := store.Profile(ctx)
	require.False(t, ok)
	_, err = jar.Get(cookie.AuthToken)
	require.ErrorIs(t, err, cookie.ErrNotFound)
}

func TestStore_NilSinks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.New(nil, nil)

	require.NoError(t, store.Set(ctx, "abc123", managerProfile))
	require.Empty(t, store.Token(ctx))
	require.False(t, store.IsAuthenticated(ctx))
	require.Equal(t, session.RoleNone, store.Role(ctx))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.SetTenant(ctx, "acme"))
	require.Empty(t, store.Tenant(ctx))
}

func TestStore_Tenant(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.New(kvstore.NewMemory(), nil)

	require.Empty(t, store.Tenant(ctx))
	require.NoError(t, store.SetTenant(ctx, "acme"))
	require.Equal(t, "acme", store.Tenant(ctx))
	require.NoError(t, store.SetTenant(ctx, ""))
	require.Empty(t, store.Tenant(ctx))
}

func TestStore_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.New(kvstore.NewMemory(), newJar(t))

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_ = store.Set(ctx, "abc123", managerProfile)
		}()
		go func() {
			defer wg.Done()
			_ = store.Token(ctx)
		}()
		go func() {
			defer wg.Done()
			_ = store.HasRole(ctx, session.RoleManager)
		}()
	}
	wg.Wait()

	require.Equal(t, "abc123", store.Token(ctx))
}
