package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "agora/contexts/governance/poll-service/application"
	"agora/contexts/governance/poll-service/ports"
	"agora/internal/shared/events"
)

// OutboxRelay publishes persisted outbox rows to the event bus.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce publishes a bounded batch of pending outbox rows and marks each row
// published only after broker publish succeeds. It stops on the first failure
// so the retry loop can reprocess remaining rows safely.
func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("poll outbox list failed",
			"event", "poll_outbox_list_failed",
			"module", "governance/poll-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(pending) == 0 {
		logger.Debug("poll outbox relay found no pending rows",
			"event", "poll_outbox_relay_noop",
			"module", "governance/poll-service",
			"layer", "worker",
			"batch_size", limit,
		)
		return nil
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var event events.Envelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("poll outbox decode failed",
				"event", "poll_outbox_decode_failed",
				"module", "governance/poll-service",
				"layer", "worker",
				"outbox_id", row.ID,
				"error", err.Error(),
			)
			return err
		}
		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("poll outbox publish failed",
				"event", "poll_outbox_publish_failed",
				"module", "governance/poll-service",
				"layer", "worker",
				"outbox_id", row.ID,
				"event_type", topic,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.ID, now); err != nil {
			logger.Error("poll outbox mark published failed",
				"event", "poll_outbox_mark_published_failed",
				"module", "governance/poll-service",
				"layer", "worker",
				"outbox_id", row.ID,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("poll outbox relay cycle completed",
		"event", "poll_outbox_relay_completed",
		"module", "governance/poll-service",
		"layer", "worker",
		"published", len(pending),
	)
	return nil
}
