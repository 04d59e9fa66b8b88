package domain

import "time"

// Event types emitted by the service.
const (
	EventUserRegistered    = "user_registered"
	EventUserLogin         = "user_login"
	EventLoginFailed       = "login_failed"
	EventSessionTerminated = "session_terminated"
	EventSessionsSwept     = "sessions_swept"
	EventHTTPRequest       = "http_request"
)

// Event is a telemetry event. UserID and SessionID are optional; Metadata is
// an arbitrary JSON object serialized by the caller.
type Event struct {
	UserID    string    `json:"user_id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	EventType string    `json:"event_type"`
	Source    string    `json:"source"`
	Metadata  []byte    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// New returns an Event of the given type stamped with the current time.
func New(eventType, userID, sessionID string, metadata []byte) *Event {
	return &Event{
		UserID:    userID,
		SessionID: sessionID,
		EventType: eventType,
		Source:    "registration-backend",
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
}
