package outbox

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

type outboxModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	EventType  string    `gorm:"column:event_type"`
	Payload    []byte    `gorm:"column:payload"`
	Status     string    `gorm:"column:status;index"`
	RetryCount int       `gorm:"column:retry_count"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (outboxModel) TableName() string { return "outbox_messages" }

// PostgresStore reads and settles outbox rows written by the service
// repositories inside their business transactions.
type PostgresStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewPostgresStore(db *gorm.DB, logger *slog.Logger) *PostgresStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{db: db, logger: logger}
}

func (s *PostgresStore) FetchPending(ctx context.Context, limit int) ([]Message, error) {
	var rows []outboxModel
	err := s.db.WithContext(ctx).
		Where("status = ?", "pending").
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		s.logger.Error("outbox fetch failed",
			"event", "outbox_fetch_failed",
			"module", "internal/shared/outbox",
			"layer", "platform",
			"error", err.Error(),
		)
		return nil, err
	}
	messages := make([]Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, Message{
			ID:         row.ID,
			EventType:  row.EventType,
			Payload:    row.Payload,
			Status:     row.Status,
			RetryCount: row.RetryCount,
		})
	}
	return messages, nil
}

func (s *PostgresStore) MarkPublished(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, "published", false)
}

func (s *PostgresStore) MarkFailed(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, "failed", true)
}

func (s *PostgresStore) setStatus(ctx context.Context, id string, status string, bumpRetry bool) error {
	updates := map[string]any{"status": status}
	if bumpRetry {
		updates["retry_count"] = gorm.Expr("retry_count + 1")
	}
	return s.db.WithContext(ctx).Model(&outboxModel{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}
