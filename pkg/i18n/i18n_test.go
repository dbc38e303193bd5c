package i18n_test

import (
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hireflow/pkg/i18n"
)

func newCatalogue(t *testing.T, opts ...i18n.Option) *i18n.I18n {
	t.Helper()
	base := []i18n.Option{
		i18n.WithDefaultLanguage("fr"),
		i18n.WithTranslations("fr", "errors", map[string]any{
			"not_found": "Ressource introuvable",
			"status": map[string]any{
				"generic": "Erreur HTTP {{status}}",
			},
		}),
		i18n.WithTranslations("en", "errors", map[string]any{
			"not_found": "Resource not found",
		}),
	}
	inst, err := i18n.New(append(base, opts...)...)
	require.NoError(t, err)
	return inst
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults to french", func(t *testing.T) {
		t.Parallel()
		inst, err := i18n.New()
		require.NoError(t, err)
		require.Equal(t, "fr", inst.DefaultLanguage())
		require.Equal(t, []string{"fr"}, inst.Languages())
	})

	t.Run("rejects empty default language", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithDefaultLanguage(""))
		require.ErrorIs(t, err, i18n.ErrEmptyLanguage)
	})

	t.Run("rejects empty namespace", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithTranslations("fr", "", map[string]any{"a": "b"}))
		require.ErrorIs(t, err, i18n.ErrEmptyNamespace)
	})

	t.Run("lists languages default first", func(t *testing.T) {
		t.Parallel()
		inst := newCatalogue(t)
		require.Equal(t, []string{"fr", "en"}, inst.Languages())
	})
}

func TestT(t *testing.T) {
	t.Parallel()

	inst := newCatalogue(t)

	t.Run("exact language", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Resource not found", inst.T("en", "errors", "not_found"))
	})

	t.Run("base language fallback", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Resource not found", inst.T("en-CA", "errors", "not_found"))
	})

	t.Run("default language fallback", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Erreur HTTP 418", inst.T("en", "errors", "status.generic", i18n.M{"status": 418}))
	})

	t.Run("missing key returns key", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "nope", inst.T("fr", "errors", "nope"))
	})
}

func TestMissingKeyHandler(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		missed []string
	)
	inst := newCatalogue(t, i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
		mu.Lock()
		defer mu.Unlock()
		missed = append(missed, lang+":"+namespace+":"+key)
	}))

	inst.T("en", "errors", "not_found")
	inst.T("en", "errors", "unknown")

	require.Equal(t, []string{"en:errors:unknown"}, missed)
}

func TestMatch(t *testing.T) {
	t.Parallel()

	inst := newCatalogue(t)

	tests := []struct {
		name       string
		preference string
		want       string
	}{
		{"empty", "", "fr"},
		{"exact", "en", "en"},
		{"regional", "en-US", "en"},
		{"header with quality", "de-DE,en;q=0.8,fr;q=0.5", "en"},
		{"unsupported", "ja", "fr"},
		{"garbage", ";;;", "fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, inst.Match(tt.preference))
		})
	}
}

func TestWithYAMLDir(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"fr/errors.yaml": {Data: []byte("status:\n  \"404\": Ressource introuvable\n")},
		"en/errors.yml":  {Data: []byte("status:\n  \"404\": Resource not found\n")},
		"README.md":      {Data: []byte("ignored")},
	}

	inst, err := i18n.New(i18n.WithYAMLDir(fsys))
	require.NoError(t, err)

	require.Equal(t, "Ressource introuvable", inst.T("fr", "errors", "status.404"))
	require.Equal(t, "Resource not found", inst.T("en", "errors", "status.404"))

	t.Run("rejects files outside language dirs", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithYAMLDir(fstest.MapFS{
			"errors.yaml": {Data: []byte("a: b\n")},
		}))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithYAMLDir(fstest.MapFS{
			"fr/errors.yaml": {Data: []byte("a: [unclosed\n")},
		}))
		require.ErrorIs(t, err, i18n.ErrInvalidFile)
	})
}

func TestTranslator(t *testing.T) {
	t.Parallel()

	inst := newCatalogue(t)

	tr := i18n.NewTranslator(inst, "en-GB,en;q=0.9", "errors")
	require.Equal(t, "en", tr.Language())
	require.Equal(t, "errors", tr.Namespace())
	require.Equal(t, "Resource not found", tr.T("not_found"))
	require.True(t, tr.Has("status.generic"))
	require.False(t, tr.Has("nope"))

	require.Panics(t, func() { i18n.NewTranslator(nil, "fr", "errors") })
}

func TestReplacePlaceholders(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Hello, Ana!", i18n.ReplacePlaceholders("Hello, {{name}}!", i18n.M{"name": "Ana"}))
	require.Equal(t, "Hello, {{name}}!", i18n.ReplacePlaceholders("Hello, {{name}}!", nil))
	require.Equal(t, "5 of {{total}}", i18n.ReplacePlaceholders("{{n}} of {{total}}", i18n.M{"n": 5}))
}
