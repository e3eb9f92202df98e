package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/room-booking/internal/persistence"
)

// CreateSession inserts a new session.
func (s *Storage) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = s.now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, token, expires_at, created_at, revoked_at)
		VALUES (?, ?, ?, ?, NULL)`,
		session.ID, session.Token, formatTime(session.ExpiresAt), formatTime(session.CreatedAt),
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}
	return session, nil
}

// GetSession retrieves a session by token.
func (s *Storage) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, token, expires_at, created_at, revoked_at
		FROM sessions WHERE token = ?`, token)

	var (
		session              persistence.Session
		expiresAt, createdAt string
		revokedAt            sql.NullString
	)
	if err := row.Scan(&session.ID, &session.Token, &expiresAt, &createdAt, &revokedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Session{}, persistence.ErrNotFound
		}
		return persistence.Session{}, mapError(err)
	}

	var err error
	if session.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return persistence.Session{}, err
	}
	if session.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Session{}, err
	}
	if revokedAt.Valid {
		stamp, err := parseTime(revokedAt.String)
		if err != nil {
			return persistence.Session{}, err
		}
		session.RevokedAt = &stamp
	}
	return session, nil
}

// RevokeSession marks a session revoked at the supplied instant.
func (s *Storage) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET revoked_at = ? WHERE token = ?`,
		formatTime(revokedAt), token,
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.Session{}, fmt.Errorf("sqlite: session revoke rows: %w", err)
	}
	if affected == 0 {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return s.GetSession(ctx, token)
}

// DeleteExpiredSessions drops sessions whose expiry precedes the reference.
func (s *Storage) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE expires_at < ?`,
		formatTime(reference),
	)
	return mapError(err)
}
