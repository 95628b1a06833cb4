package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"sponza/contexts/matchmaking/recommendation-service/ports"
)

// OutboxRelay publishes pending outbox rows (campaign.archived envelopes
// written by the expirer) to the event bus.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("recommendation outbox list failed",
			"event", "recommendation_outbox_list_failed",
			"module", "matchmaking/recommendation-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("recommendation outbox decode failed",
				"event", "recommendation_outbox_decode_failed",
				"module", "matchmaking/recommendation-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}

		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("recommendation outbox publish failed",
				"event", "recommendation_outbox_publish_failed",
				"module", "matchmaking/recommendation-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"event_id", event.EventID,
				"topic", topic,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			logger.Error("recommendation outbox mark published failed",
				"event", "recommendation_outbox_mark_published_failed",
				"module", "matchmaking/recommendation-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	if len(pending) > 0 {
		logger.Info("recommendation outbox relay cycle completed",
			"event", "recommendation_outbox_relay_completed",
			"module", "matchmaking/recommendation-service",
			"layer", "worker",
			"published_count", len(pending),
		)
	}
	return nil
}
