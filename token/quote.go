package token

import (
	"fmt"
	"strings"
)

// NeedsQuote reports whether a scalar must be quoted when emitted.
// The safe bare set is alphanumerics plus '.', '_' and '/'; everything
// else, and the empty string, gets quotes.
func NeedsQuote(v string) bool {
	if v == "" {
		return true
	}
	for i := 0; i < len(v); i++ {
		if !isEmitSafe(v[i]) {
			return true
		}
	}
	return false
}

func isEmitSafe(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '.', '_', '/':
		return true
	}
	return false
}

// Quote renders v as a double-quoted string with the dialect's escapes.
func Quote(v string) string {
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Unquote decodes a double-quoted token, including its quotes.
func Unquote(d []byte) (string, error) {
	if len(d) < 2 || d[0] != '"' || d[len(d)-1] != '"' {
		return "", fmt.Errorf("%w: %q", ErrUnterminatedString, string(d))
	}
	body := d[1 : len(d)-1]
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("%w: %q", ErrBadEscape, string(d))
		}
		switch body[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			// Unknown escapes pass through with the backslash so an
			// edit round-trip does not alter them.
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return b.String(), nil
}

// MaybeQuote emits v bare when it is safe, quoted otherwise.
func MaybeQuote(v string) string {
	if NeedsQuote(v) {
		return Quote(v)
	}
	return v
}
