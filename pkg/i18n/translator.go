package i18n

// Translator binds an I18n instance to one language and namespace.
type Translator struct {
	i18n      *I18n
	language  string
	namespace string
}

// NewTranslator creates a Translator. The language is negotiated with Match,
// so "en-US" or a full Accept-Language header are accepted.
func NewTranslator(i18n *I18n, language, namespace string) *Translator {
	if i18n == nil {
		panic("i18n: service is not provided")
	}
	return &Translator{
		i18n:      i18n,
		language:  i18n.Match(language),
		namespace: namespace,
	}
}

// T translates a key.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.i18n.T(t.language, t.namespace, key, placeholders...)
}

// Has reports whether key has a translation in the fallback chain.
func (t *Translator) Has(key string) bool {
	_, ok := t.i18n.Lookup(t.language, t.namespace, key)
	return ok
}

// Language returns the translator's language.
func (t *Translator) Language() string {
	return t.language
}

// Namespace returns the translator's namespace.
func (t *Translator) Namespace() string {
	return t.namespace
}
