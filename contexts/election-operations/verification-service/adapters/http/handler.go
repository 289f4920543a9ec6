package httpadapter

import (
	"context"
	"log/slog"

	"skvote/contexts/election-operations/verification-service/application/commands"
	"skvote/contexts/election-operations/verification-service/application/queries"
	"skvote/contexts/election-operations/verification-service/domain/entities"
	httptransport "skvote/contexts/election-operations/verification-service/transport/http"
)

type Handler struct {
	Verification commands.VerificationUseCase
	Eligibility  queries.EligibilityUseCase
	Logger       *slog.Logger
}

func (h Handler) OpenReviewHandler(ctx context.Context, actorID string, req httptransport.OpenReviewRequest) (httptransport.StatusChangeResponse, error) {
	err := h.Verification.OpenReview(ctx, commands.OpenReviewCommand{
		ActorID:   actorID,
		AccountID: req.AccountID,
	})
	if err != nil {
		return httptransport.StatusChangeResponse{}, err
	}
	return httptransport.StatusChangeResponse{
		Success:   true,
		AccountID: req.AccountID,
		Status:    string(entities.StatusVerifying),
	}, nil
}

func (h Handler) SetStatusHandler(ctx context.Context, actorID string, req httptransport.SetStatusRequest) (httptransport.StatusChangeResponse, error) {
	err := h.Verification.SetStatus(ctx, commands.SetStatusCommand{
		ActorID:   actorID,
		AccountID: req.AccountID,
		Status:    entities.Status(req.Status),
		Reason:    req.Reason,
	})
	if err != nil {
		return httptransport.StatusChangeResponse{}, err
	}
	return httptransport.StatusChangeResponse{
		Success:   true,
		AccountID: req.AccountID,
		Status:    req.Status,
	}, nil
}

func (h Handler) EligibilityHandler(ctx context.Context, accountID string) (httptransport.EligibilityResponse, error) {
	report, err := h.Eligibility.VerifyEligibility(ctx, accountID)
	if err != nil {
		return httptransport.EligibilityResponse{}, err
	}
	return toEligibilityResponse(report), nil
}

func (h Handler) StatusHandler(ctx context.Context, accountID string) (httptransport.StatusResponse, error) {
	report, err := h.Eligibility.GetStatus(ctx, accountID)
	if err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{
		AccountID: report.AccountID,
		Status:    string(report.Status),
		Message:   report.Message,
	}, nil
}

func (h Handler) PendingHandler(ctx context.Context, actorID string) (httptransport.PendingListResponse, error) {
	reports, err := h.Eligibility.ListPending(ctx, actorID)
	if err != nil {
		return httptransport.PendingListResponse{}, err
	}
	voters := make([]httptransport.EligibilityResponse, 0, len(reports))
	for _, report := range reports {
		voters = append(voters, toEligibilityResponse(report))
	}
	return httptransport.PendingListResponse{Voters: voters, Count: len(voters)}, nil
}

func toEligibilityResponse(report queries.EligibilityReport) httptransport.EligibilityResponse {
	return httptransport.EligibilityResponse{
		AccountID: report.AccountID,
		Name:      report.Name,
		Barangay:  report.Barangay,
		City:      report.City,
		Age:       report.Age,
		Status:    string(report.Status),
		HasVoted:  report.HasVoted,
		Eligible:  report.Eligible,
	}
}
