package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"skvote/contexts/election-operations/verification-service/domain/entities"
	domainerrors "skvote/contexts/election-operations/verification-service/domain/errors"
	"skvote/contexts/election-operations/verification-service/ports"
	"skvote/internal/shared/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type accountModel struct {
	ID                  string    `gorm:"column:id;primaryKey"`
	Name                string    `gorm:"column:name"`
	Email               string    `gorm:"column:email"`
	BirthDate           time.Time `gorm:"column:birth_date"`
	Barangay            string    `gorm:"column:barangay"`
	City                string    `gorm:"column:city"`
	VerificationStatus  string    `gorm:"column:verification_status"`
	VerificationMessage string    `gorm:"column:verification_message"`
	HasVoted            bool      `gorm:"column:has_voted"`
	CreatedAt           time.Time `gorm:"column:created_at"`
}

func (accountModel) TableName() string { return "accounts" }

type auditLogModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	ActorID    string    `gorm:"column:actor_id"`
	Action     string    `gorm:"column:action"`
	Detail     string    `gorm:"column:detail"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
}

func (auditLogModel) TableName() string { return "audit_logs" }

type outboxModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	EventType  string    `gorm:"column:event_type"`
	Payload    []byte    `gorm:"column:payload"`
	Status     string    `gorm:"column:status"`
	RetryCount int       `gorm:"column:retry_count"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (outboxModel) TableName() string { return "outbox_messages" }

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

func (r *Repository) GetVoter(ctx context.Context, accountID string) (entities.VoterRecord, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(accountID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VoterRecord{}, domainerrors.ErrAccountNotFound
		}
		return entities.VoterRecord{}, r.logError("verification_repo_get_voter_failed", err,
			"account_id", strings.TrimSpace(accountID))
	}
	return row.toEntity(), nil
}

// UpdateStatusFrom is a guarded UPDATE: the WHERE clause on the current status
// makes the database the arbiter of concurrent transitions. Zero rows
// affected means another transition won.
func (r *Repository) UpdateStatusFrom(
	ctx context.Context,
	accountID string,
	from []entities.Status,
	to entities.Status,
	message string,
	_ time.Time,
) error {
	sources := make([]string, 0, len(from))
	for _, status := range from {
		sources = append(sources, string(status))
	}
	result := r.db.WithContext(ctx).Model(&accountModel{}).
		Where("id = ?", strings.TrimSpace(accountID)).
		Where("verification_status IN ?", sources).
		Updates(map[string]any{
			"verification_status":  string(to),
			"verification_message": message,
		})
	if result.Error != nil {
		return r.logError("verification_repo_update_status_failed", result.Error,
			"account_id", strings.TrimSpace(accountID),
			"target_status", string(to),
		)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&accountModel{}).
			Where("id = ?", strings.TrimSpace(accountID)).
			Count(&count).Error; err == nil && count == 0 {
			return domainerrors.ErrAccountNotFound
		}
		return domainerrors.ErrInvalidStateTransition
	}
	return nil
}

func (r *Repository) ListByStatus(ctx context.Context, statuses []entities.Status) ([]entities.VoterRecord, error) {
	filter := make([]string, 0, len(statuses))
	for _, status := range statuses {
		filter = append(filter, string(status))
	}
	var rows []accountModel
	if err := r.db.WithContext(ctx).
		Where("verification_status IN ?", filter).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("verification_repo_list_by_status_failed", err)
	}
	voters := make([]entities.VoterRecord, 0, len(rows))
	for _, row := range rows {
		voters = append(voters, row.toEntity())
	}
	return voters, nil
}

func (r *Repository) Append(ctx context.Context, entry ports.AuditEntry) error {
	row := auditLogModel{
		ID:         uuid.NewString(),
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		Detail:     entry.Detail,
		OccurredAt: entry.OccurredAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("verification_repo_append_audit_failed", err, "action", entry.Action)
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope events.Envelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		ID:        envelope.EventID,
		EventType: envelope.EventType,
		Payload:   payload,
		Status:    "pending",
		CreatedAt: envelope.OccurredAtUTC,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("verification_repo_append_outbox_failed", err, "event_type", envelope.EventType)
	}
	return nil
}

func (m accountModel) toEntity() entities.VoterRecord {
	status := entities.Status(m.VerificationStatus)
	if m.VerificationStatus == "" {
		status = entities.StatusPending
	}
	return entities.VoterRecord{
		AccountID: m.ID,
		Name:      m.Name,
		Email:     m.Email,
		BirthDate: m.BirthDate,
		Barangay:  m.Barangay,
		City:      m.City,
		Status:    status,
		Message:   m.VerificationMessage,
		HasVoted:  m.HasVoted,
		CreatedAt: m.CreatedAt,
	}
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-operations/verification-service",
		"layer", "adapters/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("verification repository operation failed", fields...)
	return err
}
