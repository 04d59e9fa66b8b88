package domain

import "time"

// Session is a server-side record of an authenticated device or browser
// instance. It can be revoked independently of any token that references it.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	// DeviceInfo is an opaque descriptive blob (user agent, origin address,
	// capture time) recorded at creation. Advisory only; never consulted for
	// authorization decisions.
	DeviceInfo string
	CreatedAt  time.Time
	// LastAccessedAt is nil until the session passes validation for the first time.
	LastAccessedAt *time.Time
}

// IsExpired reports whether the session is logically dead at the given time.
// An expired session may still exist in the store until lazily evicted or swept.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
