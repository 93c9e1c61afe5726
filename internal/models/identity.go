package models

import "strings"

// EmailLocalPart returns the part of an email address before the "@". It is
// the fallback nickname when a user registers without one.
func EmailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// DisplayName picks the nickname for an externally signed-in user: the
// provider's name claim when present, otherwise the email local part.
func DisplayName(c Claims) string {
	if c.Name != "" {
		return c.Name
	}
	return EmailLocalPart(c.Email)
}
