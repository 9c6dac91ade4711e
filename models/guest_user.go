package models

import "time"

// GuestUser is an anonymous session identity. Its ID doubles as the
// SessionID owning a guest cart.
type GuestUser struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the guest session is past its lifetime.
func (g *GuestUser) Expired(now time.Time) bool {
	return now.After(g.ExpiresAt)
}
