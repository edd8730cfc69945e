// Package strings provides small string helpers shared across modules
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s if it has non whitespace content, otherwise panics.
// name appears in the panic message so the missing value is identifiable
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes and asserts a route prefix like /scrutiny:
// one leading slash, no trailing slash, panics on blank input
func MustPrefix(s string) string {
	s = std.TrimSpace(s)
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Fallback returns s unless blank, then def
func Fallback(s, def string) string {
	if std.TrimSpace(s) == "" {
		return def
	}
	return s
}
