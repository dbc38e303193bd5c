package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		client, err := Open(ctx, "")
		require.ErrorIs(t, err, ErrEmptyConnectionURL)
		require.Nil(t, client)
	})

	for _, url := range []string{"http://localhost:6379", "localhost:6379", "memory://"} {
		t.Run("rejects "+url, func(t *testing.T) {
			t.Parallel()

			client, err := Open(ctx, url)
			require.ErrorIs(t, err, ErrFailedToParseURL)
			require.Nil(t, client)
		})
	}
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	err := Healthcheck(nil)(context.Background())
	require.ErrorIs(t, err, ErrHealthcheckFailed)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestShutdown(t *testing.T) {
	t.Parallel()

	closed := false
	want := errors.New("close error")
	err := Shutdown(closerFunc(func() error {
		closed = true
		return want
	}))(context.Background())

	require.True(t, closed)
	require.ErrorIs(t, err, want)
}

func TestWait(t *testing.T) {
	t.Parallel()

	t.Run("cancelled context returns immediately", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		err := wait(ctx, 10*time.Second)
		require.ErrorIs(t, err, context.Canceled)
		require.Less(t, time.Since(start), time.Second)
	})

	t.Run("waits for the duration", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		require.NoError(t, wait(context.Background(), 20*time.Millisecond))
		require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})
}

func TestOptions(t *testing.T) {
	t.Parallel()

	o := defaultOptions()
	WithPoolSize(12)(o)
	WithPoolSize(0)(o)
	WithRetry(1, time.Millisecond)(o)
	WithIOTimeout(time.Second)(o)

	require.Equal(t, 12, o.poolSize)
	require.Equal(t, 1, o.retryAttempts)
	require.Equal(t, time.Millisecond, o.retryInterval)
	require.Equal(t, time.Second, o.ioTimeout)
}
