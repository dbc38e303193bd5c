// Package i18n holds the message catalogues used to present backend errors to
// users in their language.
//
// Catalogues are immutable after construction and safe for concurrent use.
// Keys are grouped by namespace and may be nested; nested keys are addressed
// with dots ("status.404").
//
// # Basic Usage
//
//	inst, err := i18n.New(
//		i18n.WithDefaultLanguage("fr"),
//		i18n.WithTranslations("fr", "errors", map[string]any{
//			"status": map[string]any{"404": "Ressource introuvable"},
//		}),
//	)
//
//	inst.T("fr", "errors", "status.404") // "Ressource introuvable"
//
// # File-Based Catalogues
//
// [WithYAMLDir] loads "{lang}/{namespace}.yaml" files from any fs.FS, which
// pairs well with embed:
//
//	//go:embed locales
//	var locales embed.FS
//
//	sub, _ := fs.Sub(locales, "locales")
//	inst, err := i18n.New(i18n.WithDefaultLanguage("fr"), i18n.WithYAMLDir(sub))
//
// # Fallback
//
// Lookups try the exact language, then its base ("en" for "en-CA"), then the
// default language. When nothing matches, T returns the key itself and the
// optional missing-key handler is called.
//
// # Language Negotiation
//
// [I18n.Match] picks the best supported language for an Accept-Language
// header or a configured preference such as "en-US".
//
// # Placeholders
//
// Messages may contain {{name}} placeholders, filled from [M] values:
//
//	inst.T("en", "errors", "status.generic", i18n.M{"status": 418})
package i18n
