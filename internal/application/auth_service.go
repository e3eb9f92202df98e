package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/room-booking/internal/persistence"
)

// PasswordVerifier compares a stored hash with a candidate password.
type PasswordVerifier func(hashedPassword, password string) error

// AuthService issues and validates admin sessions. The room-management
// surface is guarded by a single shared admin credential; bookers are
// identified by free-form name and email and never authenticate.
type AuthService struct {
	sessions       persistence.SessionRepository
	adminHash      string
	verifyPassword PasswordVerifier
	tokenGenerator func() string
	now            func() time.Time
	sessionTTL     time.Duration
	logger         *slog.Logger
}

// NewAuthService constructs an AuthService with the provided dependencies.
func NewAuthService(sessions persistence.SessionRepository, adminHash string, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration) *AuthService {
	return NewAuthServiceWithLogger(sessions, adminHash, tokenGenerator, now, sessionTTL, nil)
}

// NewAuthServiceWithLogger constructs an AuthService with a specified logger.
func NewAuthServiceWithLogger(sessions persistence.SessionRepository, adminHash string, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration, logger *slog.Logger) *AuthService {
	if tokenGenerator == nil {
		tokenGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		sessions:       sessions,
		adminHash:      adminHash,
		verifyPassword: VerifyPassword,
		tokenGenerator: tokenGenerator,
		now:            now,
		sessionTTL:     sessionTTL,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Authenticate checks the admin password and issues a new session token.
func (s *AuthService) Authenticate(ctx context.Context, password string) (session Session, err error) {
	if s == nil || s.sessions == nil {
		err = fmt.Errorf("AuthService not configured")
		return
	}

	logger := s.loggerWith(ctx, "Authenticate")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "authentication failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("session_id", session.ID).InfoContext(ctx, "admin session issued")
	}()

	if s.adminHash == "" {
		err = ErrInvalidCredentials
		return
	}
	if verr := s.verifyPassword(s.adminHash, password); verr != nil {
		err = ErrInvalidCredentials
		return
	}

	now := s.now().UTC()

	// Opportunistic cleanup keeps the session table from accumulating
	// expired tokens; failures here never block a login.
	if cleanupErr := s.sessions.DeleteExpiredSessions(ctx, now); cleanupErr != nil {
		logger.WarnContext(ctx, "failed to prune expired sessions", "error", cleanupErr)
	}

	token := s.tokenGenerator()
	if token == "" {
		err = fmt.Errorf("token generator produced empty token")
		return
	}

	stored, err := s.sessions.CreateSession(ctx, persistence.Session{
		ID:        s.tokenGenerator(),
		Token:     token,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	})
	if err != nil {
		return
	}

	session = fromStoredSession(stored)
	return
}

// ValidateSession resolves a token into an admin principal.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (Principal, error) {
	if s == nil || s.sessions == nil {
		return Principal{}, fmt.Errorf("AuthService not configured")
	}

	stored, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Principal{}, ErrUnauthorized
		}
		return Principal{}, err
	}

	if stored.RevokedAt != nil {
		return Principal{}, ErrSessionRevoked
	}
	if !s.now().UTC().Before(stored.ExpiresAt) {
		return Principal{}, ErrSessionExpired
	}

	return Principal{SessionID: stored.ID, IsAdmin: true}, nil
}

// RevokeSession invalidates a session token.
func (s *AuthService) RevokeSession(ctx context.Context, token string) (err error) {
	if s == nil || s.sessions == nil {
		return fmt.Errorf("AuthService not configured")
	}

	logger := s.loggerWith(ctx, "RevokeSession")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to revoke session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session revoked")
	}()

	if _, err = s.sessions.RevokeSession(ctx, token, s.now().UTC()); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = ErrUnauthorized
		}
		return
	}
	return nil
}
