package entity

import "strings"

// User - an authenticated participant. Email is the stable identifier the
// engine trusts; it is always stored case-normalized.
type User struct {
	Email string `json:"email"`
}

// NormalizeEmail - lowercases and trims an email so the same participant never
// appears under two identifiers.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
