package models

import "time"

// Account represents a registered user owning a watchlist.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents an authenticated session for an account.
type Session struct {
	Token     string    `json:"token"`
	AccountID string    `json:"account_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
