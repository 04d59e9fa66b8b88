// Package handler exposes session administration over HTTP.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Toronto-Scrum-Team/registration-backend/internal/server/middleware"
	sessiondomain "github.com/Toronto-Scrum-Team/registration-backend/internal/session/domain"
	sessionservice "github.com/Toronto-Scrum-Team/registration-backend/internal/session/service"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/telemetry"
	telemetrydomain "github.com/Toronto-Scrum-Team/registration-backend/internal/telemetry/domain"
)

// SessionHandler serves /sessions routes. All routes sit behind the auth gate.
type SessionHandler struct {
	sessions *sessionservice.Manager
	emitter  telemetry.EventEmitter
}

// NewSessionHandler returns a SessionHandler. emitter may be nil.
func NewSessionHandler(sessions *sessionservice.Manager, emitter telemetry.EventEmitter) *SessionHandler {
	return &SessionHandler{sessions: sessions, emitter: emitter}
}

type sessionResponse struct {
	ID             string     `json:"id"`
	ExpiresAt      time.Time  `json:"expires_at"`
	DeviceInfo     string     `json:"device_info,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
	Current        bool       `json:"current"`
}

func toSessionResponse(s *sessiondomain.Session, currentID string) sessionResponse {
	return sessionResponse{
		ID:             s.ID,
		ExpiresAt:      s.ExpiresAt,
		DeviceInfo:     s.DeviceInfo,
		CreatedAt:      s.CreatedAt,
		LastAccessedAt: s.LastAccessedAt,
		Current:        currentID != "" && s.ID == currentID,
	}
}

// List handles GET /sessions/: the caller's active sessions, newest first.
func (h *SessionHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var currentID string
	if current, ok := middleware.CurrentSession(c); ok {
		currentID = current.ID
	}

	sessions, err := h.sessions.ListActive(c.Request.Context(), user.ID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s, currentID))
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out, "total": len(out)})
}

type terminateRequest struct {
	SessionID string `json:"session_id"`
}

// Terminate handles DELETE /sessions/terminate: ends one session of the
// caller. Unknown ids and sessions owned by someone else report the same 404.
func (h *SessionHandler) Terminate(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req terminateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	terminated, err := h.sessions.Terminate(c.Request.Context(), req.SessionID, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if !terminated {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	telemetry.EmitAsync(h.emitter, c.Request.Context(),
		telemetrydomain.New(telemetrydomain.EventSessionTerminated, user.ID, req.SessionID, nil))

	c.JSON(http.StatusOK, gin.H{"message": "session terminated"})
}

// TerminateAll handles DELETE /sessions/terminate-all: ends every session of
// the caller, the current one included.
func (h *SessionHandler) TerminateAll(c *gin.Context) {
	h.terminateAll(c, false)
}

// TerminateOthers handles DELETE /sessions/terminate-others: ends every
// session of the caller except the one backing this request.
func (h *SessionHandler) TerminateOthers(c *gin.Context) {
	h.terminateAll(c, true)
}

func (h *SessionHandler) terminateAll(c *gin.Context, keepCurrent bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var exceptID string
	if keepCurrent {
		if current, ok := middleware.CurrentSession(c); ok {
			exceptID = current.ID
		}
	}

	count, err := h.sessions.TerminateAll(c.Request.Context(), user.ID, exceptID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	telemetry.EmitAsync(h.emitter, c.Request.Context(),
		telemetrydomain.New(telemetrydomain.EventSessionTerminated, user.ID, "", nil))

	c.JSON(http.StatusOK, gin.H{"terminated_count": count})
}

// Cleanup handles POST /sessions/cleanup: removes expired sessions storewide.
// The same work runs periodically in the background; this endpoint exists for
// operators who want an immediate sweep.
func (h *SessionHandler) Cleanup(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	count, err := h.sessions.SweepExpired(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	telemetry.EmitAsync(h.emitter, c.Request.Context(),
		telemetrydomain.New(telemetrydomain.EventSessionsSwept, "", "", nil))

	c.JSON(http.StatusOK, gin.H{"removed_count": count})
}
