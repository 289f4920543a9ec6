package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"skvote/contexts/election-operations/voting-engine/application/commands"
	"skvote/contexts/election-operations/voting-engine/application/queries"
	httptransport "skvote/contexts/election-operations/voting-engine/transport/http"
)

type Handler struct {
	Cast    commands.CastVoteUseCase
	Status  queries.VoteStatusUseCase
	Results queries.ResultsUseCase
	Logger  *slog.Logger
}

func (h Handler) CastVoteHandler(ctx context.Context, accountID string, req httptransport.CastVoteRequest) (httptransport.CastVoteResponse, error) {
	result, err := h.Cast.CastVote(ctx, commands.CastVoteCommand{
		AccountID:     accountID,
		ChairpersonID: req.ChairpersonID,
		KagawadIDs:    req.KagawadIDs,
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{
		Success:     true,
		BallotID:    result.BallotID,
		ReceiptCode: result.ReceiptCode,
		CastAt:      result.CastAt.Format(time.RFC3339),
	}, nil
}

func (h Handler) VoteStatusHandler(ctx context.Context, callerID string, accountID string) (httptransport.VoteStatusResponse, error) {
	status, err := h.Status.GetVoteStatus(ctx, callerID, accountID)
	if err != nil {
		return httptransport.VoteStatusResponse{}, err
	}
	response := httptransport.VoteStatusResponse{
		AccountID: status.AccountID,
		HasVoted:  status.HasVoted,
	}
	if status.Ballot != nil {
		response.Ballot = &httptransport.BallotView{
			BallotID:      status.Ballot.ID,
			ChairpersonID: status.Ballot.ChairpersonID,
			KagawadIDs:    status.Ballot.KagawadIDs,
			ReceiptCode:   status.Ballot.ReceiptCode,
			CastAt:        status.Ballot.CastAt.Format(time.RFC3339),
		}
	}
	return response, nil
}

func (h Handler) ResultsHandler(ctx context.Context, callerID string) (httptransport.ResultsResponse, error) {
	report, err := h.Results.Results(ctx, callerID)
	if err != nil {
		return httptransport.ResultsResponse{}, err
	}
	return httptransport.ResultsResponse{
		Chairperson:    toTallyViews(report.Chairperson),
		Kagawad:        toTallyViews(report.Kagawad),
		TotalBallots:   report.TotalBallots,
		VerifiedVoters: report.VerifiedVoters,
		TurnoutPercent: report.TurnoutPercent,
	}, nil
}

func toTallyViews(tallies []queries.CandidateTally) []httptransport.CandidateTallyView {
	views := make([]httptransport.CandidateTallyView, 0, len(tallies))
	for _, tally := range tallies {
		views = append(views, httptransport.CandidateTallyView{
			CandidateID: tally.CandidateID,
			Name:        tally.Name,
			Position:    tally.Position,
			Votes:       tally.Votes,
			Percentage:  tally.Percentage,
			Elected:     tally.Elected,
		})
	}
	return views
}
