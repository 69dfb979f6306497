package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/abc-restaurant/restaurant-gateway/internal/core/domain"
)

func testSession() *domain.Session {
	now := time.Now().UTC()
	return &domain.Session{
		ID:        "sid-123",
		Username:  "alice",
		Role:      domain.RoleAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("secret")

	raw, err := codec.Encode(testSession())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	claims, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if claims.SessionID != "sid-123" || claims.Username != "alice" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestCodec_RejectsTamperedToken(t *testing.T) {
	codec := NewCodec("secret")

	raw, err := codec.Encode(testSession())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	tampered := raw[:len(raw)-2] + "xx"
	if _, err := codec.Decode(tampered); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_RejectsWrongSecret(t *testing.T) {
	raw, err := NewCodec("secret-a").Encode(testSession())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if _, err := NewCodec("secret-b").Decode(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_RejectsExpiredSession(t *testing.T) {
	codec := NewCodec("secret")

	session := testSession()
	session.ExpiresAt = time.Now().Add(-time.Minute)
	raw, err := codec.Encode(session)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if _, err := codec.Decode(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestCodec_RejectsMissingClaims(t *testing.T) {
	codec := NewCodec("secret")

	// A structurally valid token signed with the right secret but without
	// the session claims must still be rejected.
	bare := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := bare.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := codec.Decode(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_RejectsGarbage(t *testing.T) {
	codec := NewCodec("secret")

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Decode(raw); err != ErrInvalidToken {
			t.Fatalf("%q: expected ErrInvalidToken, got %v", raw, err)
		}
	}
}
