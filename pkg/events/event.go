package events

import (
	"context"
	"time"
)

const (
	NoteCreated     = "NOTE_CREATED"
	NoteDeleted     = "NOTE_DELETED"
	NotesCleared    = "NOTES_CLEARED"
	SessionCreated  = "SESSION_CREATED"
	SessionDeleted  = "SESSION_DELETED"
	SessionsCleared = "SESSIONS_CLEARED"
	ChatReplied     = "CHAT_REPLIED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "NOTE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher delivers events to an external bus. Services treat publishing as
// best effort: a failure is logged, never returned to the user.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Recorder keeps published events in memory; tests use it in place of NATS.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(ctx context.Context, event Event) error {
	r.Events = append(r.Events, event)
	return nil
}

// Types lists the recorded event types in publish order.
func (r *Recorder) Types() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.EventType()
	}
	return out
}
