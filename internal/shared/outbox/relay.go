package outbox

import (
	"context"
	"encoding/json"
	"log/slog"

	"skvote/internal/shared/events"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type Store interface {
	FetchPending(ctx context.Context, limit int) ([]Message, error)
	MarkPublished(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

// Relay drains pending outbox rows onto the notification bus. Delivery is
// at-least-once; consumers dedup on event id.
type Relay struct {
	Outbox    Store
	Publisher Publisher
	Topic     string
	BatchSize int
	Logger    *slog.Logger
}

func (r Relay) RunOnce(ctx context.Context) error {
	batch := r.BatchSize
	if batch <= 0 {
		batch = 100
	}
	messages, err := r.Outbox.FetchPending(ctx, batch)
	if err != nil {
		return err
	}
	for _, message := range messages {
		var envelope events.Envelope
		if err := json.Unmarshal(message.Payload, &envelope); err != nil {
			// Unparseable rows are dead on arrival; park them so the relay
			// does not spin on them forever.
			if markErr := r.Outbox.MarkFailed(ctx, message.ID); markErr != nil {
				return markErr
			}
			r.log().Error("outbox payload unreadable",
				"event", "outbox_payload_unreadable",
				"module", "internal/shared/outbox",
				"layer", "platform",
				"message_id", message.ID,
				"error", err.Error(),
			)
			continue
		}
		if err := r.Publisher.Publish(ctx, r.Topic, envelope); err != nil {
			if markErr := r.Outbox.MarkFailed(ctx, message.ID); markErr != nil {
				return markErr
			}
			r.log().Error("outbox publish failed",
				"event", "outbox_publish_failed",
				"module", "internal/shared/outbox",
				"layer", "platform",
				"message_id", message.ID,
				"error", err.Error(),
			)
			continue
		}
		if err := r.Outbox.MarkPublished(ctx, message.ID); err != nil {
			return err
		}
		r.log().Info("outbox message relayed",
			"event", "outbox_message_relayed",
			"module", "internal/shared/outbox",
			"layer", "platform",
			"message_id", message.ID,
			"event_type", message.EventType,
		)
	}
	return nil
}

func (r Relay) log() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
