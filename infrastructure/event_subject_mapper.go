package infrastructure

import (
	"strings"

	"coinbot/events"
)

// SubjectPrefix is prepended to every economy event subject
const SubjectPrefix = "coinbot.economy."

// EventSubjectMapper maps domain events to NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject returns coinbot.economy.<event type>
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	return SubjectPrefix + string(event.Type())
}

// MapSubjectToEventType converts a subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	return events.EventType(strings.TrimPrefix(subject, SubjectPrefix))
}

// GetAllSubjects returns every subject this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		SubjectPrefix + string(events.EventTypeBalanceChange),
		SubjectPrefix + string(events.EventTypeListingCreated),
		SubjectPrefix + string(events.EventTypeListingPurchased),
		SubjectPrefix + string(events.EventTypeReferralClaimed),
		SubjectPrefix + string(events.EventTypeInterestApplied),
		SubjectPrefix + string(events.EventTypeEconomyNuked),
	}
}
