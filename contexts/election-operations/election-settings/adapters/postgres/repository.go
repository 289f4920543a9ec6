package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"skvote/contexts/election-operations/election-settings/domain/entities"
	domainerrors "skvote/contexts/election-operations/election-settings/domain/errors"
	"skvote/contexts/election-operations/election-settings/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingsRowID pins the table to a single row; upserts always target it.
const settingsRowID = "default"

type settingsModel struct {
	ID                 string     `gorm:"column:id;primaryKey"`
	RegistrationStart  *time.Time `gorm:"column:registration_start"`
	RegistrationEnd    *time.Time `gorm:"column:registration_end"`
	VotingStart        *time.Time `gorm:"column:voting_start"`
	VotingEnd          *time.Time `gorm:"column:voting_end"`
	EnableRegistration bool       `gorm:"column:enable_registration"`
	EnableVoting       bool       `gorm:"column:enable_voting"`
	ShowResults        bool       `gorm:"column:show_results"`
	UpdatedBy          string     `gorm:"column:updated_by"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (settingsModel) TableName() string { return "election_settings" }

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

func (r *Repository) GetSettings(ctx context.Context) (entities.Settings, error) {
	var row settingsModel
	err := r.db.WithContext(ctx).
		Where("id = ?", settingsRowID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Settings{}, domainerrors.ErrSettingsNotFound
		}
		return entities.Settings{}, r.logError("settings_repo_get_failed", err)
	}
	return entities.Settings{
		RegistrationStart:  row.RegistrationStart,
		RegistrationEnd:    row.RegistrationEnd,
		VotingStart:        row.VotingStart,
		VotingEnd:          row.VotingEnd,
		EnableRegistration: row.EnableRegistration,
		EnableVoting:       row.EnableVoting,
		ShowResults:        row.ShowResults,
		UpdatedBy:          row.UpdatedBy,
		UpdatedAt:          row.UpdatedAt,
	}, nil
}

func (r *Repository) SaveSettings(ctx context.Context, settings entities.Settings) error {
	row := settingsModel{
		ID:                 settingsRowID,
		RegistrationStart:  settings.RegistrationStart,
		RegistrationEnd:    settings.RegistrationEnd,
		VotingStart:        settings.VotingStart,
		VotingEnd:          settings.VotingEnd,
		EnableRegistration: settings.EnableRegistration,
		EnableVoting:       settings.EnableVoting,
		ShowResults:        settings.ShowResults,
		UpdatedBy:          settings.UpdatedBy,
		UpdatedAt:          settings.UpdatedAt,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).
		Error
	if err != nil {
		return r.logError("settings_repo_save_failed", err)
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
		return r.logError("settings_repo_append_audit_failed", err, "action", entry.Action)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-operations/election-settings",
		"layer", "adapters/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("settings repository operation failed", fields...)
	return err
}
