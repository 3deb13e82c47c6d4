// Package expand substitutes ${env.KEY} expressions in configuration text.
package expand

import (
	"os"
	"strings"
	"unicode"
)

const prefix = "${env."

// Lookup resolves an environment key
type Lookup func(key string) (string, bool)

// Env replaces every ${env.KEY} or ${env.KEY|fallback} in value using the
// process environment.
func Env(value string) string {
	return With(value, os.LookupEnv)
}

// With replaces every ${env.KEY} or ${env.KEY|fallback} in value using
// lookup. Unset keys expand to the fallback or an empty string. Expressions
// with an invalid key or without a closing brace are kept verbatim.
func With(value string, lookup Lookup) string {
	if !strings.Contains(value, prefix) {
		return value
	}
	var b strings.Builder
	rest := value
	for {
		idx := strings.Index(rest, prefix)
		if idx < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:idx])
		body := rest[idx+len(prefix):]
		end := strings.IndexByte(body, '}')
		if end < 0 {
			b.WriteString(rest[idx:])
			break
		}
		key, fallback, _ := strings.Cut(body[:end], "|")
		if !validKey(key) {
			b.WriteString(prefix)
			rest = body
			continue
		}
		if v, ok := lookup(key); ok && v != "" {
			b.WriteString(v)
		} else {
			b.WriteString(fallback)
		}
		rest = body[end+1:]
	}
	return b.String()
}

func validKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
