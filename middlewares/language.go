package middlewares

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/hireflow/pkg/i18n"
)

// LanguageCookie is the cookie holding an explicit language choice.
const LanguageCookie = "lang"

type languageKey struct{}

// Language negotiates the response language from the lang cookie, then
// Accept-Language, against the catalogue's languages.
func Language(catalogue *i18n.I18n) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			preference := r.Header.Get("Accept-Language")
			if c, err := r.Cookie(LanguageCookie); err == nil && c.Value != "" {
				preference = c.Value
			}
			lang := catalogue.Match(preference)
			next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), lang)))
		})
	}
}

// WithLanguage stores a language tag in ctx.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageKey{}, lang)
}

// GetLanguage returns the negotiated language, or "" when Language is not used.
func GetLanguage(ctx context.Context) string {
	v, _ := ctx.Value(languageKey{}).(string)
	return v
}
