// Package service implements the session manager: creation, validation with
// lazy eviction, revocation (single, all, all-except), listing, and sweeping.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Toronto-Scrum-Team/registration-backend/internal/session/domain"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/session/repository"
)

// ValidateOutcome classifies the result of Validate. Validate is not a pure
// read: an expired session is deleted as a side effect of being looked at.
type ValidateOutcome int

const (
	// ValidateNotFound means no session exists for the id.
	ValidateNotFound ValidateOutcome = iota
	// ValidateExpiredAndRemoved means the session was past its expiry and has
	// been deleted from the store.
	ValidateExpiredAndRemoved
	// ValidateActive means the session is live; its last-accessed timestamp
	// has been updated.
	ValidateActive
)

// ValidateResult is the outcome of a Validate call. Session is non-nil only
// when Outcome is ValidateActive.
type ValidateResult struct {
	Outcome ValidateOutcome
	Session *domain.Session
}

// Manager orchestrates session lifecycle against the session repository.
// Every operation re-reads the store; sessions are never cached in process.
type Manager struct {
	repo       repository.Repository
	defaultTTL time.Duration
	now        func() time.Time
}

// NewManager returns a Manager with the given repository and default session
// lifetime. defaultTTL is used by Create when the caller passes no ttl.
func NewManager(repo repository.Repository, defaultTTL time.Duration) *Manager {
	if defaultTTL <= 0 {
		defaultTTL = 168 * time.Hour // 7 days
	}
	return &Manager{repo: repo, defaultTTL: defaultTTL, now: func() time.Time { return time.Now().UTC() }}
}

// Create allocates a new session for userID expiring after ttl (or the default
// lifetime when ttl <= 0) and persists it with last_accessed_at unset.
// Returns the full record.
func (m *Manager) Create(ctx context.Context, userID, deviceInfo string, ttl time.Duration) (*domain.Session, error) {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	now := m.now()
	s := &domain.Session{
		ID:         uuid.New().String(),
		UserID:     userID,
		ExpiresAt:  now.Add(ttl),
		DeviceInfo: deviceInfo,
		CreatedAt:  now,
	}
	if err := m.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate looks up the session by id. A missing session reports NotFound. An
// expired session is deleted and reports ExpiredAndRemoved (lazy eviction). A
// live session gets its last-accessed timestamp updated and is returned.
func (m *Manager) Validate(ctx context.Context, id string) (ValidateResult, error) {
	s, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return ValidateResult{}, err
	}
	if s == nil {
		return ValidateResult{Outcome: ValidateNotFound}, nil
	}
	now := m.now()
	if s.IsExpired(now) {
		// Delete-if-exists: a concurrent sweep may have beaten us to it.
		if _, err := m.repo.Delete(ctx, s.ID); err != nil {
			return ValidateResult{}, err
		}
		return ValidateResult{Outcome: ValidateExpiredAndRemoved}, nil
	}
	if err := m.repo.UpdateLastAccessed(ctx, s.ID, now); err != nil {
		return ValidateResult{}, err
	}
	s.LastAccessedAt = &now
	return ValidateResult{Outcome: ValidateActive, Session: s}, nil
}

// Terminate deletes the session with the given id. When ownerID is non-empty,
// deletion proceeds only if the session belongs to that user; an owner
// mismatch reports not-found rather than a distinct authorization failure, so
// callers cannot probe for other users' session ids. Returns whether a session
// was removed.
func (m *Manager) Terminate(ctx context.Context, id, ownerID string) (bool, error) {
	s, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if s == nil {
		return false, nil
	}
	if ownerID != "" && s.UserID != ownerID {
		return false, nil
	}
	return m.repo.Delete(ctx, id)
}

// TerminateAll deletes every session owned by userID, sparing exceptID when
// non-empty ("log out other devices"). Returns the number of sessions removed.
func (m *Manager) TerminateAll(ctx context.Context, userID, exceptID string) (int64, error) {
	return m.repo.DeleteAllByUser(ctx, userID, exceptID)
}

// ListActive returns the user's sessions ordered newest-created first. By
// default sessions past their expiry are filtered out; includeExpired lists
// them too. Pure read: nothing is evicted.
func (m *Manager) ListActive(ctx context.Context, userID string, includeExpired bool) ([]*domain.Session, error) {
	return m.repo.ListByUser(ctx, userID, includeExpired)
}

// SweepExpired deletes every session in the store whose expiry has passed and
// returns the count removed. Safe to run concurrently with Validate: both
// paths use delete-if-exists semantics.
func (m *Manager) SweepExpired(ctx context.Context) (int64, error) {
	return m.repo.DeleteExpired(ctx, m.now())
}
