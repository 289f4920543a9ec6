package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"skvote/contexts/identity-access/registration-service/domain/entities"
	domainerrors "skvote/contexts/identity-access/registration-service/domain/errors"
	"skvote/contexts/identity-access/registration-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type accountModel struct {
	ID                  string    `gorm:"column:id;primaryKey"`
	Name                string    `gorm:"column:name"`
	Email               string    `gorm:"column:email;uniqueIndex"`
	PasswordHash        string    `gorm:"column:password_hash"`
	PhoneNumber         string    `gorm:"column:phone_number"`
	BirthDate           time.Time `gorm:"column:birth_date"`
	Address             string    `gorm:"column:address"`
	City                string    `gorm:"column:city"`
	Province            string    `gorm:"column:province"`
	Barangay            string    `gorm:"column:barangay"`
	IDType              string    `gorm:"column:id_type"`
	IDFrontRef          string    `gorm:"column:id_front_ref"`
	IDBackRef           string    `gorm:"column:id_back_ref"`
	VerificationStatus  string    `gorm:"column:verification_status"`
	VerificationMessage string    `gorm:"column:verification_message"`
	HasVoted            bool      `gorm:"column:has_voted"`
	CreatedAt           time.Time `gorm:"column:created_at"`
}

func (accountModel) TableName() string { return "accounts" }

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

func (r *Repository) CreateAccount(ctx context.Context, account entities.Account, defaultRole string) error {
	row := accountModel{
		ID:                  account.AccountID,
		Name:                account.Name,
		Email:               account.Email,
		PasswordHash:        account.PasswordHash,
		PhoneNumber:         account.PhoneNumber,
		BirthDate:           account.BirthDate,
		Address:             account.Address,
		City:                account.City,
		Province:            account.Province,
		Barangay:            account.Barangay,
		IDType:              account.IDType,
		IDFrontRef:          account.IDFrontRef,
		IDBackRef:           account.IDBackRef,
		VerificationStatus:  string(account.VerificationStatus),
		VerificationMessage: account.VerificationMessage,
		HasVoted:            account.HasVoted,
		CreatedAt:           account.CreatedAt,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return tx.Create(&accountRoleModel{
			AccountID: account.AccountID,
			RoleName:  defaultRole,
			GrantedAt: account.CreatedAt,
		}).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEmailTaken
		}
		return r.logError("registration_repo_create_account_failed", err, "account_id", account.AccountID)
	}
	return nil
}

func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&accountModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, r.logError("registration_repo_email_exists_failed", err)
	}
	return count > 0, nil
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
		return r.logError("registration_repo_append_audit_failed", err, "action", entry.Action)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "identity-access/registration-service",
		"layer", "adapters/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("registration repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
