// internal/app/system/normalize/normalize.go
// Package normalize centralizes input normalization so stores and handlers
// agree on canonical forms.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are compared and
// indexed in this canonical form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}
