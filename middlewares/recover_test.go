package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hireflow/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("converts a panic into 500", func(t *testing.T) {
		t.Parallel()

		h := middlewares.Recover(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("custom panic handler receives the PanicError", func(t *testing.T) {
		t.Parallel()

		var got *middlewares.PanicError
		h := middlewares.Recover(nil, middlewares.WithPanicHandler(func(w http.ResponseWriter, _ *http.Request, err *middlewares.PanicError) {
			got = err
			w.WriteHeader(http.StatusTeapot)
		}))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusTeapot, rec.Code)
		require.NotNil(t, got)
		require.Equal(t, "boom", got.Value)
		require.NotEmpty(t, got.Stack)
		require.True(t, middlewares.IsPanicError(got))
		require.Equal(t, "panic: boom", got.Error())
	})

	t.Run("stack capture can be disabled", func(t *testing.T) {
		t.Parallel()

		var got *middlewares.PanicError
		h := middlewares.Recover(nil,
			middlewares.WithRecoverDisablePrintStack(),
			middlewares.WithPanicHandler(func(w http.ResponseWriter, _ *http.Request, err *middlewares.PanicError) {
				got = err
			}),
		)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(42)
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotNil(t, got)
		require.Nil(t, got.Stack)
	})

	t.Run("abort handler is re-panicked", func(t *testing.T) {
		t.Parallel()

		h := middlewares.Recover(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))
		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})

	t.Run("passes through", func(t *testing.T) {
		t.Parallel()

		h := middlewares.Recover(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusAccepted, rec.Code)
	})
}

func TestAsPanicError(t *testing.T) {
	t.Parallel()

	_, ok := middlewares.AsPanicError(nil)
	require.False(t, ok)

	pe, ok := middlewares.AsPanicError(&middlewares.PanicError{Value: "x"})
	require.True(t, ok)
	require.Equal(t, "x", pe.Value)
}
