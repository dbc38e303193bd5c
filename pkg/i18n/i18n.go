package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is the default language code used when no default language is specified.
const DefaultLang = "fr"

// M holds placeholder values.
type M map[string]any

// I18n is an immutable set of message catalogues.
type I18n struct {
	// Key format: "lang:namespace:key.path"
	translations map[string]string

	missingKeyHandler func(lang, namespace, key string)
	matcher           language.Matcher

	defaultLang string
	languages   []string
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates a new I18n instance with the given options.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if i.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}

	i.languages = i.collectLanguages()

	tags := make([]language.Tag, 0, len(i.languages))
	for _, lang := range i.languages {
		tags = append(tags, language.Make(lang))
	}
	i.matcher = language.NewMatcher(tags)

	return i, nil
}

// WithDefaultLanguage sets the default/fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithTranslations loads translations for a language and namespace.
// Nested maps are flattened into dotted keys.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		i.add(lang, namespace, translations)
		return nil
	}
}

// WithMissingKeyHandler sets a function called when a key is not found in any
// language, including the default.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// T returns the translation for key, falling back to the base language and then
// the default language. Returns the key itself if nothing matches.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	if translation, ok := i.Lookup(lang, namespace, key); ok {
		return replacePlaceholdersWithMerge(translation, placeholders...)
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
	return key
}

// Lookup returns the raw translation with the same fallback chain as T.
func (i *I18n) Lookup(lang, namespace, key string) (string, bool) {
	for _, candidate := range i.fallbackChain(lang) {
		if translation, ok := i.translations[buildKey(candidate, namespace, key)]; ok {
			return translation, true
		}
	}
	return "", false
}

// Match returns the supported language that best fits the preference, which may
// be a single tag ("en-US") or an Accept-Language header ("en-US,en;q=0.9").
// Returns the default language when nothing fits.
func (i *I18n) Match(preference string) string {
	if strings.TrimSpace(preference) == "" {
		return i.defaultLang
	}

	tags, _, err := language.ParseAcceptLanguage(preference)
	if err != nil || len(tags) == 0 {
		return i.defaultLang
	}

	_, idx, confidence := i.matcher.Match(tags...)
	if confidence == language.No {
		return i.defaultLang
	}
	return i.languages[idx]
}

// Languages returns the list of available languages, default first.
func (i *I18n) Languages() []string {
	return slices.Clone(i.languages)
}

// DefaultLanguage returns the default/fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

func (i *I18n) add(lang, namespace string, translations map[string]any) {
	for key, value := range flattenTranslations(translations, "") {
		i.translations[buildKey(lang, namespace, key)] = value
	}
}

func (i *I18n) fallbackChain(lang string) []string {
	chain := make([]string, 0, 3)
	if lang != "" {
		chain = append(chain, lang)
		if base := baseLanguage(lang); base != lang {
			chain = append(chain, base)
		}
	}
	if !slices.Contains(chain, i.defaultLang) {
		chain = append(chain, i.defaultLang)
	}
	return chain
}

func (i *I18n) collectLanguages() []string {
	set := make(map[string]struct{})
	for key := range i.translations {
		lang, _, _ := strings.Cut(key, ":")
		set[lang] = struct{}{}
	}
	delete(set, i.defaultLang)

	others := slices.Sorted(maps.Keys(set))
	return append([]string{i.defaultLang}, others...)
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}

// baseLanguage strips the region from a language tag ("en-US" to "en").
func baseLanguage(lang string) string {
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		return lang[:i]
	}
	return lang
}
