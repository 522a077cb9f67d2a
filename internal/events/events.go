package events

import (
	"context"
	"time"
)

// Event types published by the service.
const (
	TypeAttendanceRecorded   = "attendance.recorded"
	TypeAttendanceCleared    = "attendance.cleared"
	TypeJustificationCreated = "justification.created"
	TypeQRCheckIn            = "attendance.qr_check_in"
)

// Event is the envelope every published message shares.
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// EventPublisher decouples services from the message transport. The Kafka
// implementation is used in production; tests use the mock.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
