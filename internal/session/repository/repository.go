package repository

import (
	"context"
	"time"

	"github.com/Toronto-Scrum-Team/registration-backend/internal/session/domain"
)

// Repository defines persistence for sessions. Each method is a single
// statement against the store and therefore atomic with respect to concurrent
// callers. Deletes are delete-if-exists: removing an already-removed session
// is not an error.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Create(ctx context.Context, s *domain.Session) error
	// ListByUser returns the user's sessions ordered by created_at descending.
	// When includeExpired is false, sessions past their expiry are filtered out
	// by the query; nothing is deleted.
	ListByUser(ctx context.Context, userID string, includeExpired bool) ([]*domain.Session, error)
	UpdateLastAccessed(ctx context.Context, id string, at time.Time) error
	// Delete removes the session if present and reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
	// DeleteAllByUser removes every session owned by userID, sparing exceptID
	// when non-empty. Returns the number of sessions removed.
	DeleteAllByUser(ctx context.Context, userID, exceptID string) (int64, error)
	// DeleteExpired removes every session with expires_at <= now. Returns the count removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
