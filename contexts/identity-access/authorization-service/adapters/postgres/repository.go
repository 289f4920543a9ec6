package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"skvote/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "skvote/contexts/identity-access/authorization-service/domain/errors"
	"skvote/contexts/identity-access/authorization-service/domain/services"
	"skvote/contexts/identity-access/authorization-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type accountRoleModel struct {
	AccountID string    `gorm:"column:account_id;primaryKey"`
	RoleName  string    `gorm:"column:role_name;primaryKey"`
	GrantedAt time.Time `gorm:"column:granted_at"`
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

// Repository persists role assignments. Role definitions stay in the static
// catalog; only the account/role relation lives in the database.
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

func (r *Repository) ListAccountRoles(ctx context.Context, accountID string) ([]entities.Role, error) {
	var rows []accountRoleModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		Order("granted_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("authz_repo_list_roles_failed", err, "account_id", strings.TrimSpace(accountID))
	}
	var roles []entities.Role
	for _, row := range rows {
		if role, ok := services.CatalogRole(row.RoleName); ok {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

func (r *Repository) ListEffectivePermissions(ctx context.Context, accountID string) ([]string, error) {
	roles, err := r.ListAccountRoles(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return services.EffectivePermissions(roles), nil
}

func (r *Repository) GrantRole(ctx context.Context, accountID string, roleName string, now time.Time) error {
	row := accountRoleModel{
		AccountID: strings.TrimSpace(accountID),
		RoleName:  strings.ToLower(strings.TrimSpace(roleName)),
		GrantedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrRoleAlreadyAssigned
		}
		return r.logError("authz_repo_grant_role_failed", err,
			"account_id", row.AccountID,
			"role_name", row.RoleName,
		)
	}
	return nil
}

func (r *Repository) RevokeRole(ctx context.Context, accountID string, roleName string) error {
	result := r.db.WithContext(ctx).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		Where("role_name = ?", strings.ToLower(strings.TrimSpace(roleName))).
		Delete(&accountRoleModel{})
	if result.Error != nil {
		return r.logError("authz_repo_revoke_role_failed", result.Error,
			"account_id", strings.TrimSpace(accountID),
			"role_name", strings.TrimSpace(roleName),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRoleNotAssigned
	}
	return nil
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
		return r.logError("authz_repo_append_audit_failed", err, "action", entry.Action)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "identity-access/authorization-service",
		"layer", "adapters/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("authorization repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
