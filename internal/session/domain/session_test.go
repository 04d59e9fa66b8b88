package domain

import (
	"testing"
	"time"
)

func TestIsExpired(t *testing.T) {
	now := time.Now().UTC()
	s := &Session{ExpiresAt: now.Add(time.Hour)}
	if s.IsExpired(now) {
		t.Error("session expiring in an hour should not be expired")
	}
	s.ExpiresAt = now.Add(-time.Second)
	if !s.IsExpired(now) {
		t.Error("session past expires_at should be expired")
	}
	// Exactly at the boundary the session is still alive.
	s.ExpiresAt = now
	if s.IsExpired(now) {
		t.Error("session at exact expiry instant should not be expired")
	}
}
