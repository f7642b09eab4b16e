// Package strings provides small string and path helpers
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// BasePath normalizes a mount prefix like "scan/" or "/scan" to "/scan".
// Blank input and "/" both yield "/"
func BasePath(s string) string {
	s = std.Trim(std.TrimSpace(s), "/")
	if s == "" {
		return "/"
	}
	return "/" + s
}
