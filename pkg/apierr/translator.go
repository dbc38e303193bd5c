package apierr

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/dmitrymomot/hireflow/pkg/i18n"
	"github.com/dmitrymomot/hireflow/pkg/sanitizer"
)

//go:embed locales
var locales embed.FS

const namespace = "errors"

// Translator turns failed responses into localized errors.
type Translator struct {
	tr *i18n.Translator
}

type options struct {
	catalogue *i18n.I18n
	language  string
}

// Option configures the Translator.
type Option func(*options)

// WithLanguage selects the message language ("fr", "en", "en-US", or an
// Accept-Language header). Unsupported languages fall back to French.
func WithLanguage(lang string) Option {
	return func(o *options) {
		o.language = lang
	}
}

// WithCatalogue replaces the embedded catalogue. It must provide the
// "errors" namespace.
func WithCatalogue(c *i18n.I18n) Option {
	return func(o *options) {
		o.catalogue = c
	}
}

// Catalogue loads the embedded message catalogue.
func Catalogue() (*i18n.I18n, error) {
	sub, err := fs.Sub(locales, "locales")
	if err != nil {
		return nil, err
	}
	return i18n.New(
		i18n.WithDefaultLanguage("fr"),
		i18n.WithYAMLDir(sub),
	)
}

// NewTranslator creates a Translator backed by the embedded catalogue.
func NewTranslator(opts ...Option) (*Translator, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.catalogue == nil {
		c, err := Catalogue()
		if err != nil {
			return nil, fmt.Errorf("apierr: load catalogue: %w", err)
		}
		o.catalogue = c
	}

	return &Translator{tr: i18n.NewTranslator(o.catalogue, o.language, namespace)}, nil
}

// Language returns the negotiated message language.
func (t *Translator) Language() string {
	return t.tr.Language()
}

// Normalize builds an Error from a failed response using GenericRules.
func (t *Translator) Normalize(status int, body []byte) *Error {
	return t.NormalizeWith(GenericRules, status, body)
}

// NormalizeLogin builds an Error from a failed login response using LoginRules.
func (t *Translator) NormalizeLogin(status int, body []byte) *Error {
	return t.NormalizeWith(LoginRules, status, body)
}

// NormalizeWith builds an Error from a failed response using the given table.
func (t *Translator) NormalizeWith(table Table, status int, body []byte) *Error {
	p := parseBody(status, body)
	return &Error{
		Message: t.Translate(table, status, p.message),
		Raw:     p.message,
		Status:  status,
		Code:    p.code,
		Details: p.details,
	}
}

// Translate maps a backend message to a localized one.
func (t *Translator) Translate(table Table, status int, message string) string {
	if key, _ := table.Key(status, message); key != "" {
		return t.tr.T(key)
	}

	if message == genericMessage(status) {
		return t.tr.T("status.generic", i18n.M{"status": status})
	}
	return message
}

// Network builds the error for a request that never reached the backend.
func (t *Translator) Network(cause error) *Error {
	e := &Error{
		Message: t.tr.T("network.unreachable"),
		Code:    CodeNetwork,
		Err:     cause,
	}
	if cause != nil {
		e.Raw = cause.Error()
	}
	return e
}

// Unknown wraps any other failure.
func (t *Translator) Unknown(cause error) *Error {
	e := &Error{Code: CodeUnknown, Err: cause}
	if cause != nil && cause.Error() != "" {
		e.Message = cause.Error()
		e.Raw = cause.Error()
	} else {
		e.Message = t.tr.T("unknown")
	}
	return e
}

type parsed struct {
	details any
	message string
	code    string
}

func genericMessage(status int) string {
	return "HTTP error " + strconv.Itoa(status)
}

// parseBody extracts the message, code and payload of an error response.
// Message fields are tried in order: detail, message, error. FastAPI
// validation errors carry a list in detail; the first msg is used.
func parseBody(status int, body []byte) parsed {
	var p parsed

	var payload any
	if err := json.Unmarshal(body, &payload); err == nil {
		p.details = payload
		if obj, ok := payload.(map[string]any); ok {
			p.message = firstMessage(obj)
			p.code = stringField(obj, "code", "error_code")
			if p.message != "" {
				return p
			}
		}
		if s, ok := payload.(string); ok && strings.TrimSpace(s) != "" {
			p.message = strings.TrimSpace(s)
			return p
		}
	}

	if p.details == nil {
		if text := sanitizer.PlainText(string(body), 0); text != "" {
			p.message = text
			return p
		}
	}

	p.message = genericMessage(status)
	return p
}

func firstMessage(obj map[string]any) string {
	for _, field := range []string{"detail", "message", "error"} {
		switch v := obj[field].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case []any:
			for _, item := range v {
				switch it := item.(type) {
				case map[string]any:
					if msg, ok := it["msg"].(string); ok && msg != "" {
						return msg
					}
				case string:
					if it != "" {
						return it
					}
				}
			}
		case map[string]any:
			if msg := firstMessage(v); msg != "" {
				return msg
			}
		}
	}
	return ""
}

func stringField(obj map[string]any, fields ...string) string {
	for _, f := range fields {
		switch v := obj[f].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
