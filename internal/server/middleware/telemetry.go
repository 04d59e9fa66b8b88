package middleware

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Toronto-Scrum-Team/registration-backend/internal/telemetry"
	telemetrydomain "github.com/Toronto-Scrum-Team/registration-backend/internal/telemetry/domain"
)

// RequestTelemetry emits a fire-and-forget http_request event after each
// request completes. The emit never blocks the response.
func RequestTelemetry(emitter telemetry.EventEmitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if emitter == nil {
			return
		}

		var userID, sessionID string
		if user, ok := CurrentUser(c); ok {
			userID = user.ID
		}
		if session, ok := CurrentSession(c); ok {
			sessionID = session.ID
		}

		metadata, _ := json.Marshal(map[string]any{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
		})
		event := telemetrydomain.New(telemetrydomain.EventHTTPRequest, userID, sessionID, metadata)
		telemetry.EmitAsync(emitter, c.Request.Context(), event)
	}
}
