package security

import (
	"testing"
	"time"
)

func newTestCodec() *TokenCodec {
	return NewTokenCodec([]byte("test-secret"), "test-issuer", 30*time.Minute)
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	c := newTestCodec()

	token, err := c.Issue("user@example.com", "session-123", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := c.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "user@example.com" {
		t.Errorf("Subject = %q", claims.Subject)
	}
	if claims.SessionID != "session-123" {
		t.Errorf("SessionID = %q", claims.SessionID)
	}
	if !claims.SessionBound() {
		t.Error("token with session_ref must report SessionBound")
	}
}

func TestTokenCodec_LegacyToken(t *testing.T) {
	c := newTestCodec()

	token, err := c.Issue("user@example.com", "", 0) // default ttl, no session
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := c.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.SessionBound() {
		t.Error("session-less token must not report SessionBound")
	}
	if claims.SessionID != "" {
		t.Errorf("SessionID = %q, want empty", claims.SessionID)
	}
}

func TestTokenCodec_ExpiredToken(t *testing.T) {
	c := newTestCodec()

	token, err := c.Issue("user@example.com", "session-123", -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := c.Verify(token); err != ErrInvalidToken {
		t.Errorf("expired token: err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenCodec_InvalidTokens(t *testing.T) {
	c := newTestCodec()

	good, err := c.Issue("user@example.com", "session-123", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	otherSecret := NewTokenCodec([]byte("other-secret"), "test-issuer", time.Hour)
	forged, err := otherSecret.Issue("user@example.com", "session-123", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	otherIssuer := NewTokenCodec([]byte("test-secret"), "someone-else", time.Hour)
	wrongIss, err := otherIssuer.Issue("user@example.com", "", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"truncated", good[:len(good)-10]},
		{"wrong secret", forged},
		{"wrong issuer", wrongIss},
	}
	for _, tc := range cases {
		if _, err := c.Verify(tc.token); err != ErrInvalidToken {
			t.Errorf("%s: err = %v, want ErrInvalidToken", tc.name, err)
		}
	}
}
