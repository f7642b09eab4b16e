// Package sanitize checks user supplied tokens before they reach a filename or a child environment.
// Pipeline order
// 1 reject invalid UTF-8
// 2 Unicode NFC normalization
// 3 remove format chars (ZWJ ZWNJ FEFF etc)
// 4 reject control chars, including whitespace-class ones such as \t, \n and NEL
// 5 trim surrounding spaces, then for path tokens reject separators and dot names
package sanitize

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	perr "scanweb/internal/platform/errors"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)),
		)
	},
}

func normalize(s string) string {
	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return s
	}
	return ns
}

// Token normalizes s and accepts it only as a single path component:
// non-empty, no '/' or '\', no NUL or other control chars, not "." or "..".
// Failures are Validation errors carrying field
func Token(field, s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", invalid(field, "%s is not valid UTF-8", field)
	}
	s = normalize(s)
	if hasControl(s) {
		return "", invalid(field, "%s must not contain control characters", field)
	}
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return "", invalid(field, "%s is required", field)
	case ".", "..":
		return "", invalid(field, "%s must not be %q", field, s)
	}
	if strings.ContainsAny(s, `/\`) {
		return "", invalid(field, "%s must not contain path separators", field)
	}
	return s, nil
}

// Text normalizes an optional free-text value such as tags. Empty is allowed;
// control chars are not since the value ends up in a child environment
func Text(field, s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", invalid(field, "%s is not valid UTF-8", field)
	}
	s = normalize(s)
	if hasControl(s) {
		return "", invalid(field, "%s must not contain control characters", field)
	}
	return strings.TrimSpace(s), nil
}

func hasControl(s string) bool {
	return strings.ContainsFunc(s, unicode.IsControl)
}

func invalid(field, format string, a ...any) error {
	return perr.WithField(perr.Validationf(format, a...), field)
}
