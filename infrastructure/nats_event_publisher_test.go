package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"coinbot/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishedMessage struct {
	subject string
	data    []byte
}

// recordingBus captures raw messages instead of sending them
type recordingBus struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

func (b *recordingBus) Publish(ctx context.Context, subject string, data []byte) error {
	if b.err != nil {
		return b.err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, publishedMessage{subject: subject, data: data})
	return nil
}

func TestNATSEventPublisher_Envelope(t *testing.T) {
	t.Parallel()

	// Setup
	bus := &recordingBus{}
	publisher := NewNATSEventPublisher(bus, NewEventSubjectMapper())
	event := events.ReferralClaimedEvent{Code: "abc", InviterID: "alice", ClaimerID: "bob", Bonus: 50}

	// Execute
	require.NoError(t, publisher.Publish(event))

	// Assert
	require.Len(t, bus.messages, 1)
	assert.Equal(t, "coinbot.economy.referral_claimed", bus.messages[0].subject)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(bus.messages[0].data, &envelope))
	assert.Equal(t, "referral_claimed", envelope.EventType)
	assert.Equal(t, "coinbot", envelope.SourceService)
	_, err := uuid.Parse(envelope.EventID)
	assert.NoError(t, err)

	var payload events.ReferralClaimedEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, event, payload)
}

func TestNATSEventPublisher_LocalHandlers(t *testing.T) {
	t.Parallel()

	// Setup
	bus := &recordingBus{}
	publisher := NewNATSEventPublisher(bus, NewEventSubjectMapper())

	var received []events.Event
	publisher.RegisterLocalHandler(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) error {
		received = append(received, event)
		return errors.New("handler failure is logged only")
	})

	// Execute
	require.NoError(t, publisher.Publish(events.BalanceChangeEvent{UserID: "u1", NewBalance: 10}))
	require.NoError(t, publisher.Publish(events.EconomyNukedEvent{GuildID: "g1"}))

	// Assert
	require.Len(t, received, 1)
	assert.Equal(t, "u1", received[0].(events.BalanceChangeEvent).UserID)
	assert.Len(t, bus.messages, 2, "both events still reach the bus")
}

func TestNATSEventPublisher_BusErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		busErr  error
		wantErr bool
	}{
		{"bus failure is returned", errors.New("connection refused"), true},
		{"missing stream is ignored", errors.New("nats: no response from stream"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			publisher := NewNATSEventPublisher(&recordingBus{err: tt.busErr}, NewEventSubjectMapper())
			err := publisher.Publish(events.InterestAppliedEvent{GuildID: "g"})

			if tt.wantErr {
				assert.ErrorContains(t, err, "failed to publish event to NATS")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocalEventPublisher_NoBus(t *testing.T) {
	t.Parallel()

	publisher := NewLocalEventPublisher()
	called := false
	publisher.RegisterLocalHandler(events.EventTypeListingCreated, func(ctx context.Context, event events.Event) error {
		called = true
		return nil
	})

	require.NoError(t, publisher.Publish(events.ListingCreatedEvent{ListingID: "l1"}))
	assert.True(t, called)
}

func TestEventSubjectMapper(t *testing.T) {
	t.Parallel()

	mapper := NewEventSubjectMapper()
	subjects := mapper.GetAllSubjects()
	assert.Len(t, subjects, 6)

	for _, subject := range subjects {
		eventType := mapper.MapSubjectToEventType(subject)
		assert.Equal(t, SubjectPrefix+string(eventType), subject)
	}
	assert.Equal(t, "coinbot.economy.economy_nuked", mapper.MapEventToSubject(events.EconomyNukedEvent{}))
}
