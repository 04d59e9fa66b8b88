// Package handler exposes registration and login over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authservice "github.com/Toronto-Scrum-Team/registration-backend/internal/auth/service"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/security"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/server/middleware"
	sessionservice "github.com/Toronto-Scrum-Team/registration-backend/internal/session/service"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/telemetry"
	telemetrydomain "github.com/Toronto-Scrum-Team/registration-backend/internal/telemetry/domain"
	userdomain "github.com/Toronto-Scrum-Team/registration-backend/internal/user/domain"
)

// AuthHandler serves /auth routes.
type AuthHandler struct {
	auth    *authservice.AuthService
	emitter telemetry.EventEmitter
}

// NewAuthHandler returns an AuthHandler. emitter may be nil.
func NewAuthHandler(auth *authservice.AuthService, emitter telemetry.EventEmitter) *AuthHandler {
	return &AuthHandler{auth: auth, emitter: emitter}
}

type registerRequest struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *userdomain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Name, req.Password, req.ConfirmPassword)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	telemetry.EmitAsync(h.emitter, c.Request.Context(),
		telemetrydomain.New(telemetrydomain.EventUserRegistered, user.ID, "", nil))

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	deviceInfo := sessionservice.BuildDeviceInfo(c.Request.UserAgent(), c.ClientIP())
	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, deviceInfo)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			metadata, _ := json.Marshal(map[string]string{"client_ip": c.ClientIP()})
			telemetry.EmitAsync(h.emitter, c.Request.Context(),
				telemetrydomain.New(telemetrydomain.EventLoginFailed, "", "", metadata))
		}
		h.writeAuthError(c, err)
		return
	}

	telemetry.EmitAsync(h.emitter, c.Request.Context(),
		telemetrydomain.New(telemetrydomain.EventUserLogin, res.User.ID, res.Session.ID, nil))

	c.JSON(http.StatusOK, gin.H{
		"access_token": res.AccessToken,
		"token_type":   "bearer",
		"expires_at":   res.ExpiresAt,
		"session_id":   res.Session.ID,
		"user":         toUserResponse(res.User),
	})
}

// Me handles GET /auth/me. Requires the auth middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout handles POST /auth/logout: terminates every session of the caller.
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	count, err := h.auth.Logout(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	telemetry.EmitAsync(h.emitter, c.Request.Context(),
		telemetrydomain.New(telemetrydomain.EventSessionTerminated, user.ID, "", nil))

	c.JSON(http.StatusOK, gin.H{
		"message":          "logged out",
		"terminated_count": count,
	})
}

// writeAuthError maps service errors to HTTP statuses. Internal errors never
// leak their message.
func (h *AuthHandler) writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authservice.ErrEmailAlreadyRegistered):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, authservice.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, security.ErrWeakPassword),
		errors.Is(err, security.ErrPasswordMismatch),
		errors.Is(err, authservice.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
