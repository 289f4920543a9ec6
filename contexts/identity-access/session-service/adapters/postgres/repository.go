package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"skvote/contexts/identity-access/session-service/domain/entities"
	"skvote/contexts/identity-access/session-service/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type accountModel struct {
	ID           string `gorm:"column:id;primaryKey"`
	Name         string `gorm:"column:name"`
	Email        string `gorm:"column:email"`
	PasswordHash string `gorm:"column:password_hash"`
}

func (accountModel) TableName() string { return "accounts" }

type accountRoleModel struct {
	AccountID string `gorm:"column:account_id"`
	RoleName  string `gorm:"column:role_name"`
}

func (accountRoleModel) TableName() string { return "account_roles" }

type auditLogModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	ActorID    string    `gorm:"column:actor_id"`
	Action     string    `gorm:"column:action"`
	Detail     string    `gorm:"column:detail"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
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

func (r *Repository) GetCredentialByEmail(ctx context.Context, email string) (entities.Credential, bool, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Credential{}, false, nil
		}
		return entities.Credential{}, false, r.logError("session_repo_get_credential_failed", err)
	}
	return entities.Credential{
		AccountID:    row.ID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
	}, true, nil
}

func (r *Repository) ListRoleNames(ctx context.Context, accountID string) ([]string, error) {
	var rows []accountRoleModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		Order("role_name ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("session_repo_list_roles_failed", err, "account_id", strings.TrimSpace(accountID))
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.RoleName)
	}
	return names, nil
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
		return r.logError("session_repo_append_audit_failed", err, "action", entry.Action)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "identity-access/session-service",
		"layer", "adapters/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("session repository operation failed", fields...)
	return err
}
