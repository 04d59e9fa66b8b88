package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any verification failure: malformed
// structure, signature mismatch, wrong algorithm, wrong issuer, or elapsed
// expiry. The causes are deliberately not distinguished, so callers cannot
// leak which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified content of a token: the subject identity and the
// session binding, if any.
type Claims struct {
	// Subject is the durable credential key (the user's email).
	Subject string
	// SessionID is the bound session's id, or "" for a legacy session-less
	// token. Callers must check SessionBound and handle the legacy case
	// explicitly; legacy tokens cannot be revoked before their own expiry.
	SessionID string
}

// SessionBound reports whether the token's validity is additionally gated by
// a live session record.
func (c Claims) SessionBound() bool {
	return c.SessionID != ""
}

// tokenClaims is the JWT wire shape.
type tokenClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"session_id,omitempty"`
}

// TokenCodec issues and verifies HS256 JWTs with an injected shared secret.
// The secret is constructor state, not ambient configuration, so it can be
// rotated by swapping codecs and faked in tests.
type TokenCodec struct {
	secret     []byte
	issuer     string
	defaultTTL time.Duration
}

// NewTokenCodec returns a TokenCodec signing with secret. issuer is set on
// issued tokens and required on verification. defaultTTL is used by Issue
// when the caller passes no ttl.
func NewTokenCodec(secret []byte, issuer string, defaultTTL time.Duration) *TokenCodec {
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Minute
	}
	return &TokenCodec{secret: secret, issuer: issuer, defaultTTL: defaultTTL}
}

// Issue signs a token for subject expiring after ttl (or the default when ttl
// is zero). sessionID may be empty for a session-less token; such tokens are
// unrevocable before expiry and exist only for backward compatibility.
// A negative ttl produces an already-expired token, which Verify rejects.
func (c *TokenCodec) Issue(subject, sessionID string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	now := time.Now().UTC()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SessionID: sessionID,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates the token (structure, HMAC signature, exp, iss)
// and returns its claims. Every failure mode collapses to ErrInvalidToken.
func (c *TokenCodec) Verify(tokenString string) (Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.Issuer != c.issuer {
		return Claims{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{Subject: claims.Subject, SessionID: claims.SessionID}, nil
}
