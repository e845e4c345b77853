package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingPublisher struct {
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e Event) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func TestEmit(t *testing.T) {
	p := &recordingPublisher{err: errors.New("broker down")}

	assert.NotPanics(t, func() {
		Emit(context.Background(), p, NewEvent(PatientCreated, "P1", nil))
		Emit(context.Background(), nil, NewEvent(PatientCreated, "P2", nil))
	})
	assert.Len(t, p.events, 1)
	assert.Equal(t, "P1", p.events[0].Key)
	assert.False(t, p.events[0].OccurredAt.IsZero())
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), NewEvent(TreatmentDeleted, "k", nil)))
	assert.NoError(t, p.Close())
}
