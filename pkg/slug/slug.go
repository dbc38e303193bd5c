package slug

import (
	"crypto/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	defaultSeparator = "-"
	defaultSuffixLen = 6
	suffixAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Letters that do not decompose into a base letter plus a combining mark.
var foldings = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "ae", "œ", "oe", "Œ", "oe",
	"ø", "o", "Ø", "o", "ł", "l", "Ł", "l", "đ", "d", "Đ", "d",
)

type config struct {
	reserved  map[string]bool
	separator string
	maxLength int
	suffix    int
}

// Option configures Make.
type Option func(*config)

// MaxLength caps the slug length in runes, suffix included.
func MaxLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxLength = n
		}
	}
}

// Separator sets the word separator. Defaults to "-".
func Separator(sep string) Option {
	return func(c *config) {
		if sep != "" {
			c.separator = sep
		}
	}
}

// WithSuffix always appends a random suffix of n characters.
func WithSuffix(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.suffix = n
		}
	}
}

// ReservedSlugs forces a random suffix when the slug equals one of words.
func ReservedSlugs(words ...string) Option {
	return func(c *config) {
		for _, w := range words {
			c.reserved[strings.ToLower(w)] = true
		}
	}
}

// Make builds a slug from s. It returns "" when s has no letters or digits
// and no suffix is requested.
func Make(s string, opts ...Option) string {
	cfg := &config{
		separator: defaultSeparator,
		reserved:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	base := words(fold(s), cfg.separator)

	suffixLen := cfg.suffix
	if suffixLen == 0 && cfg.reserved[base] {
		suffixLen = defaultSuffixLen
	}
	if suffixLen == 0 {
		return truncate(base, cfg.maxLength, cfg.separator)
	}

	suffix := random(suffixLen)
	if cfg.maxLength > 0 {
		room := cfg.maxLength - len(suffix) - len(cfg.separator)
		if room <= 0 {
			return truncate(suffix, cfg.maxLength, cfg.separator)
		}
		base = truncate(base, room, cfg.separator)
	}
	if base == "" {
		return suffix
	}
	return base + cfg.separator + suffix
}

func fold(s string) string {
	s = foldings.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return strings.ToLower(out)
}

func words(s, sep string) string {
	var b strings.Builder
	pending := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteString(sep)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// truncate cuts s to n runes without leaving a trailing separator.
func truncate(s string, n int, sep string) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return strings.TrimRight(s[:n], sep)
}

func random(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return string(buf)
}
