package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"skvote/contexts/election-operations/audit-service/domain/entities"

	"gorm.io/gorm"
)

type auditLogModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	ActorID    string    `gorm:"column:actor_id"`
	Action     string    `gorm:"column:action;index"`
	Detail     string    `gorm:"column:detail"`
	IP         string    `gorm:"column:ip"`
	UserAgent  string    `gorm:"column:user_agent"`
	OccurredAt time.Time `gorm:"column:occurred_at;index"`
}

func (auditLogModel) TableName() string { return "audit_logs" }

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) ListRecent(ctx context.Context, action string, limit int) ([]entities.AuditLog, error) {
	query := r.db.WithContext(ctx).Model(&auditLogModel{})
	if action != "" {
		query = query.Where("action = ?", action)
	}
	var rows []auditLogModel
	if err := query.Order("occurred_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		r.logger.Error("audit repository operation failed",
			"event", "audit_repo_list_failed",
			"module", "election-operations/audit-service",
			"layer", "adapters/postgres",
			"error", err.Error(),
		)
		return nil, err
	}
	logs := make([]entities.AuditLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, entities.AuditLog{
			ID:         row.ID,
			ActorID:    row.ActorID,
			Action:     row.Action,
			Detail:     row.Detail,
			IP:         row.IP,
			UserAgent:  row.UserAgent,
			OccurredAt: row.OccurredAt,
		})
	}
	return logs, nil
}
