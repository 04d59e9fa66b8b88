// Package service implements registration, credential verification, token
// issuance, and the request-time auth gate.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Toronto-Scrum-Team/registration-backend/internal/security"
	sessiondomain "github.com/Toronto-Scrum-Team/registration-backend/internal/session/domain"
	sessionservice "github.com/Toronto-Scrum-Team/registration-backend/internal/session/service"
	userdomain "github.com/Toronto-Scrum-Team/registration-backend/internal/user/domain"
)

// Sentinel errors for the auth service; the HTTP layer maps them to status codes.
var (
	// ErrEmailAlreadyRegistered is surfaced distinctly; duplicate registration
	// is not conflated with validation failures.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	// ErrInvalidCredentials is deliberately uniform for unknown identity and
	// wrong password, to prevent identity enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is the single outcome for every auth-gate failure: bad
	// signature, expired token, revoked or expired session, owner mismatch,
	// unknown subject.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSessionNotFound covers session administration on ids that do not
	// exist or do not belong to the caller; the two are not distinguished.
	ErrSessionNotFound = errors.New("session not found")
	// ErrValidation wraps input validation failures so the HTTP layer can map
	// them to 400 without matching message strings.
	ErrValidation = errors.New("validation failed")
)

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
}

// LoginResult holds the outcome of a successful Login: a session-bound access
// token and the session it references.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *userdomain.User
	Session     *sessiondomain.Session
}

// AuthService implements register, login, logout, and the auth gate.
type AuthService struct {
	userRepo UserRepo
	sessions *sessionservice.Manager
	hasher   *security.Hasher
	codec    *security.TokenCodec
	tokenTTL time.Duration
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(
	userRepo UserRepo,
	sessions *sessionservice.Manager,
	hasher *security.Hasher,
	codec *security.TokenCodec,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		hasher:   hasher,
		codec:    codec,
		tokenTTL: tokenTTL,
	}
}

// Register creates a user with the given email, name, and password after
// validating the email shape, the password policy, and the confirmation.
func (s *AuthService) Register(ctx context.Context, email, name, password, confirmPassword string) (*userdomain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := security.ValidatePasswordConfirmation(password, confirmPassword); err != nil {
		return nil, err
	}
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}
	hashed, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	}
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials, creates a session recording deviceInfo, and
// issues an access token bound to that session. Unknown email and wrong
// password both report ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password, deviceInfo string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	sess, err := s.sessions.Create(ctx, user.ID, deviceInfo, 0)
	if err != nil {
		return nil, err
	}
	token, err := s.codec.Issue(user.Email, sess.ID, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken: token,
		ExpiresAt:   sess.ExpiresAt,
		User:        user,
		Session:     sess,
	}, nil
}

// Authorize is the auth gate: it verifies the bearer token, resolves the
// subject to a user, and — for session-bound tokens — validates the session
// (touching its last-accessed timestamp, evicting it if expired) and checks
// ownership. Returns the user and, for session-bound tokens, the live session.
// Legacy session-less tokens return a nil session; that degraded mode exists
// only for tokens issued before sessions were introduced.
func (s *AuthService) Authorize(ctx context.Context, tokenString string) (*userdomain.User, *sessiondomain.Session, error) {
	claims, err := s.codec.Verify(tokenString)
	if err != nil {
		return nil, nil, ErrUnauthorized
	}
	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUnauthorized
	}
	if !claims.SessionBound() {
		return user, nil, nil
	}
	res, err := s.sessions.Validate(ctx, claims.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if res.Outcome != sessionservice.ValidateActive || res.Session.UserID != user.ID {
		return nil, nil, ErrUnauthorized
	}
	return user, res.Session, nil
}

// Logout terminates every session owned by the user and returns the count.
func (s *AuthService) Logout(ctx context.Context, userID string) (int64, error) {
	return s.sessions.TerminateAll(ctx, userID, "")
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	return nil
}
