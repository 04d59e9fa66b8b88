package telemetry

import (
	"context"

	"github.com/Toronto-Scrum-Team/registration-backend/internal/telemetry/domain"
)

// EventEmitter emits telemetry events (e.g. to OTel Logs or Kafka). Best-effort;
// callers log and ignore errors.
type EventEmitter interface {
	Emit(ctx context.Context, event *domain.Event) error
}

// MultiEmitter fans an event out to every child emitter; the first error wins
// but every child still sees the event.
type MultiEmitter []EventEmitter

// Emit sends the event to all children.
func (m MultiEmitter) Emit(ctx context.Context, event *domain.Event) error {
	var firstErr error
	for _, e := range m {
		if e == nil {
			continue
		}
		if err := e.Emit(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
