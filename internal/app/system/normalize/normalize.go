// Package normalize provides canonical forms for user-supplied identity
// fields before they are stored or matched.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are compared and
// indexed in this form everywhere; callers must normalize before any
// lookup or insert against the users collection.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
