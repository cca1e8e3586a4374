package commands

import (
	"time"

	"agora/internal/shared/events"
)

const (
	eventSourceService  = "agora/poll-service"
	eventPayloadVersion = 1
)

func newPollEnvelope(eventID, eventType, entityType, entityID string, occurredAt time.Time, payload map[string]any) events.Envelope {
	return events.Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  eventSourceService,
		OccurredAtUTC:  occurredAt.UTC(),
		EntityType:     entityType,
		EntityID:       entityID,
		PayloadVersion: eventPayloadVersion,
		Payload:        payload,
	}
}
