package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/example/room-booking/internal/persistence/memory"
	"github.com/example/room-booking/internal/testfixtures"
)

func newAuthFixture(t *testing.T, clock *testfixtures.Clock, ttl time.Duration) *AuthService {
	t.Helper()
	hash, err := HashPassword("open-sesame")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	counter := 0
	tokens := func() string {
		counter++
		return fmt.Sprintf("token-%d", counter)
	}
	return NewAuthService(memory.Open(), hash, tokens, clock.NowFunc(), ttl)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	now := testfixtures.ReferenceTime()

	t.Run("issues sessions for the correct password", func(t *testing.T) {
		svc := newAuthFixture(t, testfixtures.NewClock(now), time.Hour)

		session, err := svc.Authenticate(ctx, "open-sesame")
		if err != nil {
			t.Fatalf("authenticate: %v", err)
		}
		if session.Token == "" {
			t.Fatalf("expected a token")
		}
		if !session.ExpiresAt.Equal(now.Add(time.Hour)) {
			t.Fatalf("unexpected expiry %v", session.ExpiresAt)
		}

		principal, err := svc.ValidateSession(ctx, session.Token)
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if !principal.IsAdmin {
			t.Fatalf("expected admin principal, got %+v", principal)
		}
	})

	t.Run("rejects the wrong password", func(t *testing.T) {
		svc := newAuthFixture(t, testfixtures.NewClock(now), time.Hour)

		_, err := svc.Authenticate(ctx, "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_ValidateSession(t *testing.T) {
	ctx := context.Background()
	base := testfixtures.ReferenceTime()

	t.Run("unknown tokens are unauthorized", func(t *testing.T) {
		svc := newAuthFixture(t, testfixtures.NewClock(base), time.Hour)
		_, err := svc.ValidateSession(ctx, "nope")
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("expired sessions are rejected", func(t *testing.T) {
		clock := testfixtures.NewClock(base)
		svc := newAuthFixture(t, clock, time.Hour)

		session, err := svc.Authenticate(ctx, "open-sesame")
		if err != nil {
			t.Fatalf("authenticate: %v", err)
		}

		clock.Advance(2 * time.Hour)
		if _, err := svc.ValidateSession(ctx, session.Token); !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
	})

	t.Run("revoked sessions are rejected", func(t *testing.T) {
		svc := newAuthFixture(t, testfixtures.NewClock(base), time.Hour)

		session, err := svc.Authenticate(ctx, "open-sesame")
		if err != nil {
			t.Fatalf("authenticate: %v", err)
		}
		if err := svc.RevokeSession(ctx, session.Token); err != nil {
			t.Fatalf("revoke: %v", err)
		}
		if _, err := svc.ValidateSession(ctx, session.Token); !errors.Is(err, ErrSessionRevoked) {
			t.Fatalf("expected ErrSessionRevoked, got %v", err)
		}
	})
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := VerifyPassword(hash, "s3cret"); err != nil {
		t.Fatalf("expected verification to pass, got %v", err)
	}
	if err := VerifyPassword(hash, "other"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := VerifyPassword("not-a-hash", "s3cret"); !errors.Is(err, ErrInvalidPasswordHash) {
		t.Fatalf("expected ErrInvalidPasswordHash, got %v", err)
	}
}
