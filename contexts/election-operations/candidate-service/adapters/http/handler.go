package httpadapter

import (
	"context"
	"log/slog"

	"skvote/contexts/election-operations/candidate-service/application"
	"skvote/contexts/election-operations/candidate-service/domain/entities"
	httptransport "skvote/contexts/election-operations/candidate-service/transport/http"
)

type Handler struct {
	Candidates application.Service
	Logger     *slog.Logger
}

func (h Handler) CreateHandler(ctx context.Context, actorID string, req httptransport.CreateCandidateRequest) (httptransport.CandidateView, error) {
	candidate, err := h.Candidates.Create(ctx, application.CreateCandidateCommand{
		ActorID:  actorID,
		Name:     req.Name,
		Position: req.Position,
		Bio:      req.Bio,
		Platform: req.Platform,
	})
	if err != nil {
		return httptransport.CandidateView{}, err
	}
	return toView(candidate), nil
}

func (h Handler) UpdateHandler(ctx context.Context, actorID string, candidateID string, req httptransport.UpdateCandidateRequest) (httptransport.CandidateView, error) {
	candidate, err := h.Candidates.Update(ctx, application.UpdateCandidateCommand{
		ActorID:     actorID,
		CandidateID: candidateID,
		Name:        req.Name,
		Bio:         req.Bio,
		Platform:    req.Platform,
		Status:      req.Status,
	})
	if err != nil {
		return httptransport.CandidateView{}, err
	}
	return toView(candidate), nil
}

func (h Handler) ListActiveHandler(ctx context.Context, position string) (httptransport.CandidateListResponse, error) {
	candidates, err := h.Candidates.ListActive(ctx, position)
	if err != nil {
		return httptransport.CandidateListResponse{}, err
	}
	views := make([]httptransport.CandidateView, 0, len(candidates))
	for _, candidate := range candidates {
		views = append(views, toView(candidate))
	}
	return httptransport.CandidateListResponse{Candidates: views, Count: len(views)}, nil
}

func toView(candidate entities.Candidate) httptransport.CandidateView {
	return httptransport.CandidateView{
		ID:       candidate.ID,
		Name:     candidate.Name,
		Position: candidate.Position,
		Bio:      candidate.Bio,
		Platform: candidate.Platform,
		PhotoRef: candidate.PhotoRef,
		Status:   candidate.Status,
	}
}
