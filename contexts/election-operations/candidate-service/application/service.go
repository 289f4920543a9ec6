package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"skvote/contexts/election-operations/candidate-service/domain/entities"
	domainerrors "skvote/contexts/election-operations/candidate-service/domain/errors"
	"skvote/contexts/election-operations/candidate-service/ports"
)

type PhotoUpload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

type CreateCandidateCommand struct {
	ActorID  string
	Name     string
	Position string
	Bio      string
	Platform string
	Photo    *PhotoUpload
}

// UpdateCandidateCommand carries partial updates; nil fields are untouched.
type UpdateCandidateCommand struct {
	ActorID     string
	CandidateID string
	Name        *string
	Bio         *string
	Platform    *string
	Status      *string
	Photo       *PhotoUpload
}

type Service struct {
	Candidates ports.CandidateRepository
	Photos     ports.PhotoStore
	Authz      ports.Authorizer
	Audit      ports.AuditSink
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (s Service) Create(ctx context.Context, cmd CreateCandidateCommand) (entities.Candidate, error) {
	logger := resolveLogger(s.Logger)
	if err := s.requirePermission(ctx, cmd.ActorID); err != nil {
		return entities.Candidate{}, err
	}
	name := strings.TrimSpace(cmd.Name)
	position := strings.ToLower(strings.TrimSpace(cmd.Position))
	if name == "" {
		return entities.Candidate{}, domainerrors.ErrInvalidRequest
	}
	if !entities.ValidPosition(position) {
		return entities.Candidate{}, domainerrors.ErrInvalidPosition
	}

	candidateID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Candidate{}, err
	}
	photoRef := ""
	if cmd.Photo != nil {
		photoRef, err = s.Photos.StorePhoto(ctx,
			fmt.Sprintf("candidates/%s/photo", candidateID), cmd.Photo.ContentType, cmd.Photo.Body)
		if err != nil {
			return entities.Candidate{}, err
		}
	}

	now := s.now()
	candidate := entities.Candidate{
		ID:        candidateID,
		Name:      name,
		Position:  position,
		Bio:       strings.TrimSpace(cmd.Bio),
		Platform:  strings.TrimSpace(cmd.Platform),
		PhotoRef:  photoRef,
		Status:    entities.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Candidates.CreateCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}
	if err := s.appendAudit(ctx, cmd.ActorID, "candidate_created",
		fmt.Sprintf("candidate %s created for %s", candidateID, position), now); err != nil {
		return entities.Candidate{}, err
	}
	logger.Info("candidate created",
		"event", "candidate_created",
		"module", "election-operations/candidate-service",
		"layer", "application",
		"candidate_id", candidateID,
		"position", position,
	)
	return candidate, nil
}

func (s Service) Update(ctx context.Context, cmd UpdateCandidateCommand) (entities.Candidate, error) {
	logger := resolveLogger(s.Logger)
	if err := s.requirePermission(ctx, cmd.ActorID); err != nil {
		return entities.Candidate{}, err
	}
	candidateID := strings.TrimSpace(cmd.CandidateID)
	if candidateID == "" {
		return entities.Candidate{}, domainerrors.ErrInvalidRequest
	}
	candidate, err := s.Candidates.GetCandidate(ctx, candidateID)
	if err != nil {
		return entities.Candidate{}, err
	}

	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return entities.Candidate{}, domainerrors.ErrInvalidRequest
		}
		candidate.Name = name
	}
	if cmd.Bio != nil {
		candidate.Bio = strings.TrimSpace(*cmd.Bio)
	}
	if cmd.Platform != nil {
		candidate.Platform = strings.TrimSpace(*cmd.Platform)
	}
	if cmd.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*cmd.Status))
		if status != entities.StatusActive && status != entities.StatusInactive {
			return entities.Candidate{}, domainerrors.ErrInvalidRequest
		}
		candidate.Status = status
	}
	if cmd.Photo != nil {
		photoRef, err := s.Photos.StorePhoto(ctx,
			fmt.Sprintf("candidates/%s/photo", candidateID), cmd.Photo.ContentType, cmd.Photo.Body)
		if err != nil {
			return entities.Candidate{}, err
		}
		candidate.PhotoRef = photoRef
	}

	now := s.now()
	candidate.UpdatedAt = now
	if err := s.Candidates.UpdateCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}
	if err := s.appendAudit(ctx, cmd.ActorID, "candidate_updated",
		fmt.Sprintf("candidate %s updated", candidateID), now); err != nil {
		return entities.Candidate{}, err
	}
	logger.Info("candidate updated",
		"event", "candidate_updated",
		"module", "election-operations/candidate-service",
		"layer", "application",
		"candidate_id", candidateID,
		"status", candidate.Status,
	)
	return candidate, nil
}

// Archive retires a candidate from ballots without deleting the row.
func (s Service) Archive(ctx context.Context, actorID string, candidateID string) (entities.Candidate, error) {
	inactive := entities.StatusInactive
	return s.Update(ctx, UpdateCandidateCommand{
		ActorID:     actorID,
		CandidateID: candidateID,
		Status:      &inactive,
	})
}

// ListActive is the public roster read; it also backs the voting engine's
// candidate directory.
func (s Service) ListActive(ctx context.Context, position string) ([]entities.Candidate, error) {
	position = strings.ToLower(strings.TrimSpace(position))
	if position != "" && !entities.ValidPosition(position) {
		return nil, domainerrors.ErrInvalidPosition
	}
	return s.Candidates.List(ctx, entities.StatusActive, position)
}

func (s Service) requirePermission(ctx context.Context, actorID string) error {
	allowed, err := s.Authz.HasPermission(ctx, strings.TrimSpace(actorID), "manage:all_candidates")
	if err != nil || !allowed {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

func (s Service) appendAudit(ctx context.Context, actorID string, action string, detail string, now time.Time) error {
	if s.Audit == nil {
		return nil
	}
	return s.Audit.Append(ctx, ports.AuditEntry{
		ActorID:    strings.TrimSpace(actorID),
		Action:     action,
		Detail:     detail,
		OccurredAt: now,
	})
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
