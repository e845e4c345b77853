package messaging

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Change event types
const (
	PatientCreated    = "patient.created"
	PatientUpdated    = "patient.updated"
	PatientDeleted    = "patient.deleted"
	MedicationCreated = "medication.created"
	MedicationUpdated = "medication.updated"
	MedicationDeleted = "medication.deleted"
	DepartmentCreated = "department.created"
	DepartmentUpdated = "department.updated"
	DepartmentDeleted = "department.deleted"
	TreatmentCreated  = "treatment.created"
	TreatmentUpdated  = "treatment.updated"
	TreatmentDeleted  = "treatment.deleted"
	NurseAssigned     = "nurse.assigned"
)

// Event is a committed change to one entity.
type Event struct {
	Type       string      `json:"type"`
	Key        string      `json:"key"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func NewEvent(eventType, key string, payload interface{}) Event {
	return Event{
		Type:       eventType,
		Key:        key,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher defines the interface for publishing change events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }

// Emit publishes event and logs a failure instead of returning it. The write
// the event describes has already committed.
func Emit(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		log.Warn().
			Err(err).
			Str("event_type", event.Type).
			Str("key", event.Key).
			Msg("failed to publish change event")
	}
}
