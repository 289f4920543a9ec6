package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"skvote/contexts/election-operations/candidate-service/domain/entities"
	domainerrors "skvote/contexts/election-operations/candidate-service/domain/errors"
	"skvote/contexts/election-operations/candidate-service/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type candidateModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Position  string    `gorm:"column:position;index"`
	Bio       string    `gorm:"column:bio"`
	Platform  string    `gorm:"column:platform"`
	PhotoRef  string    `gorm:"column:photo_ref"`
	Status    string    `gorm:"column:status;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (candidateModel) TableName() string { return "candidates" }

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

func (r *Repository) CreateCandidate(ctx context.Context, candidate entities.Candidate) error {
	row := toModel(candidate)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("candidate_repo_create_failed", err, "candidate_id", candidate.ID)
	}
	return nil
}

func (r *Repository) UpdateCandidate(ctx context.Context, candidate entities.Candidate) error {
	row := toModel(candidate)
	result := r.db.WithContext(ctx).Model(&candidateModel{}).
		Where("id = ?", candidate.ID).
		Updates(map[string]any{
			"name":       row.Name,
			"bio":        row.Bio,
			"platform":   row.Platform,
			"photo_ref":  row.PhotoRef,
			"status":     row.Status,
			"updated_at": row.UpdatedAt,
		})
	if result.Error != nil {
		return r.logError("candidate_repo_update_failed", result.Error, "candidate_id", candidate.ID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCandidateNotFound
	}
	return nil
}

func (r *Repository) GetCandidate(ctx context.Context, candidateID string) (entities.Candidate, error) {
	var row candidateModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(candidateID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Candidate{}, domainerrors.ErrCandidateNotFound
		}
		return entities.Candidate{}, r.logError("candidate_repo_get_failed", err, "candidate_id", candidateID)
	}
	return row.toEntity(), nil
}

func (r *Repository) List(ctx context.Context, status string, position string) ([]entities.Candidate, error) {
	query := r.db.WithContext(ctx).Model(&candidateModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if position != "" {
		query = query.Where("position = ?", position)
	}
	var rows []candidateModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("candidate_repo_list_failed", err)
	}
	candidates := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, row.toEntity())
	}
	return candidates, nil
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
		return r.logError("candidate_repo_append_audit_failed", err, "action", entry.Action)
	}
	return nil
}

func toModel(candidate entities.Candidate) candidateModel {
	return candidateModel{
		ID:        candidate.ID,
		Name:      candidate.Name,
		Position:  candidate.Position,
		Bio:       candidate.Bio,
		Platform:  candidate.Platform,
		PhotoRef:  candidate.PhotoRef,
		Status:    candidate.Status,
		CreatedAt: candidate.CreatedAt,
		UpdatedAt: candidate.UpdatedAt,
	}
}

func (m candidateModel) toEntity() entities.Candidate {
	return entities.Candidate{
		ID:        m.ID,
		Name:      m.Name,
		Position:  m.Position,
		Bio:       m.Bio,
		Platform:  m.Platform,
		PhotoRef:  m.PhotoRef,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-operations/candidate-service",
		"layer", "adapters/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("candidate repository operation failed", fields...)
	return err
}
