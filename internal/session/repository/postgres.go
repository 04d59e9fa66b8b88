package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Toronto-Scrum-Team/registration-backend/internal/session/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a session repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the session for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, expires_at, device_info, created_at, last_accessed_at
		 FROM sessions WHERE id = $1`, id)
	s, err := scanSession(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// Create persists the session to the database. The session must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, expires_at, device_info, created_at, last_accessed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.UserID, s.ExpiresAt,
		sql.NullString{String: s.DeviceInfo, Valid: s.DeviceInfo != ""},
		s.CreatedAt, timeToNullTime(s.LastAccessedAt))
	return err
}

// ListByUser returns all sessions for the user, newest-created first.
// When includeExpired is false, logically dead sessions are filtered by the
// query; they remain in the store until evicted or swept.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, includeExpired bool) ([]*domain.Session, error) {
	query := `SELECT id, user_id, expires_at, device_info, created_at, last_accessed_at
		 FROM sessions WHERE user_id = $1 ORDER BY created_at DESC`
	args := []any{userID}
	if !includeExpired {
		query = `SELECT id, user_id, expires_at, device_info, created_at, last_accessed_at
		 FROM sessions WHERE user_id = $1 AND expires_at > $2 ORDER BY created_at DESC`
		args = append(args, time.Now().UTC())
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Session
	for rows.Next() {
		s, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateLastAccessed sets the session's last-accessed timestamp for the given id.
func (r *PostgresRepository) UpdateLastAccessed(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET last_accessed_at = $2 WHERE id = $1`, id, at)
	return err
}

// Delete removes the session if present. Reports whether a row was removed;
// deleting a missing session is not an error, so concurrent sweep and lazy
// eviction never race into a failure.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteAllByUser removes every session owned by userID, sparing exceptID when
// non-empty. Returns the number of sessions removed.
func (r *PostgresRepository) DeleteAllByUser(ctx context.Context, userID, exceptID string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if exceptID != "" {
		res, err = r.db.ExecContext(ctx,
			`DELETE FROM sessions WHERE user_id = $1 AND id <> $2`, userID, exceptID)
	} else {
		res, err = r.db.ExecContext(ctx,
			`DELETE FROM sessions WHERE user_id = $1`, userID)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteExpired removes every session whose expiry has passed. Returns the count removed.
func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func timeToNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func scanSession(scan func(dest ...any) error) (*domain.Session, error) {
	var (
		s            domain.Session
		deviceInfo   sql.NullString
		lastAccessed sql.NullTime
	)
	if err := scan(&s.ID, &s.UserID, &s.ExpiresAt, &deviceInfo, &s.CreatedAt, &lastAccessed); err != nil {
		return nil, err
	}
	if deviceInfo.Valid {
		s.DeviceInfo = deviceInfo.String
	}
	if lastAccessed.Valid {
		s.LastAccessedAt = &lastAccessed.Time
	}
	return &s, nil
}
