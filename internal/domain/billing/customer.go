package billing

import "strings"

// Customer is a billing contact within one business tenant. Identity is
// (tenantID, NormalizeEmail(email)); two records sharing that key are the
// same customer and a second one must never be created.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NormalizeEmail lowercases and trims an email address for identity
// comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CustomerNameFallback returns name, or the local part of the email when name
// is empty, so a customer record is never created nameless.
func CustomerNameFallback(name, email string) string {
	if name != "" {
		return name
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
