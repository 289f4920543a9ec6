package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "skvote/contexts/election-operations/voting-engine/application"
	"skvote/contexts/election-operations/voting-engine/domain/entities"
	domainerrors "skvote/contexts/election-operations/voting-engine/domain/errors"
	"skvote/contexts/election-operations/voting-engine/domain/services"
	"skvote/contexts/election-operations/voting-engine/ports"
	"skvote/internal/shared/events"
)

type CastVoteCommand struct {
	AccountID     string
	ChairpersonID string
	KagawadIDs    []string
}

type CastVoteResult struct {
	BallotID    string
	ReceiptCode string
	CastAt      time.Time
}

// CastVoteUseCase admits a ballot through an ordered precondition chain:
// permission, voting window, voter standing, then slate validity. The
// ballot repository is the final arbiter of the one-ballot rule.
type CastVoteUseCase struct {
	Ballots    ports.BallotRepository
	Voters     ports.VoterDirectory
	Candidates ports.CandidateDirectory
	Gate       ports.ElectionGate
	Authz      ports.Authorizer
	Audit      ports.AuditSink
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc CastVoteUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)

	allowed, err := uc.Authz.HasPermission(ctx, accountID, "cast:vote")
	if err != nil || !allowed {
		logger.Warn("vote denied",
			"event", "vote_cast_denied",
			"module", "election-operations/voting-engine",
			"layer", "application",
			"account_id", accountID,
		)
		return CastVoteResult{}, domainerrors.ErrUnauthorized
	}

	now := uc.now()
	open, err := uc.Gate.VotingOpen(ctx, now)
	if err != nil {
		return CastVoteResult{}, err
	}
	if !open {
		return CastVoteResult{}, domainerrors.ErrVotingClosed
	}

	standing, err := uc.Voters.GetStanding(ctx, accountID)
	if err != nil {
		// A missing account is indistinguishable from an unverified one to
		// the caller.
		return CastVoteResult{}, domainerrors.ErrNotEligible
	}
	if !standing.Verified {
		return CastVoteResult{}, domainerrors.ErrNotEligible
	}
	if standing.HasVoted {
		return CastVoteResult{}, domainerrors.ErrAlreadyVoted
	}

	chair, kagawads, err := services.NormalizeSlate(cmd.ChairpersonID, cmd.KagawadIDs)
	if err != nil {
		return CastVoteResult{}, err
	}
	if err := uc.checkCandidate(ctx, entities.PositionChairperson, chair); err != nil {
		return CastVoteResult{}, err
	}
	if err := uc.checkCandidates(ctx, entities.PositionKagawad, kagawads); err != nil {
		return CastVoteResult{}, err
	}

	ballotID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return CastVoteResult{}, err
	}
	ballot := entities.Ballot{
		ID:            ballotID,
		AccountID:     accountID,
		ChairpersonID: chair,
		KagawadIDs:    kagawads,
		ReceiptCode:   services.ReceiptCode(ballotID),
		CastAt:        now,
	}
	if err := uc.Ballots.CreateBallot(ctx, ballot); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyVoted) {
			return CastVoteResult{}, domainerrors.ErrAlreadyVoted
		}
		return CastVoteResult{}, err
	}

	// The ballot is durable once CreateBallot returns. Failing the request
	// here would hide the receipt from a voter whose retry can only see
	// ErrAlreadyVoted, so trail appends are logged and not surfaced.
	if err := uc.appendAudit(ctx, accountID, now); err != nil {
		logger.Error("audit append failed after ballot commit",
			"event", "vote_cast_audit_failed",
			"module", "election-operations/voting-engine",
			"layer", "application",
			"account_id", accountID,
			"ballot_id", ballot.ID,
			"error", err,
		)
	}
	if err := uc.appendCastEvent(ctx, ballot, now); err != nil {
		logger.Error("outbox append failed after ballot commit",
			"event", "vote_cast_outbox_failed",
			"module", "election-operations/voting-engine",
			"layer", "application",
			"account_id", accountID,
			"ballot_id", ballot.ID,
			"error", err,
		)
	}
	logger.Info("ballot committed",
		"event", "vote_cast_committed",
		"module", "election-operations/voting-engine",
		"layer", "application",
		"account_id", accountID,
		"ballot_id", ballot.ID,
	)
	return CastVoteResult{
		BallotID:    ballot.ID,
		ReceiptCode: ballot.ReceiptCode,
		CastAt:      now,
	}, nil
}

func (uc CastVoteUseCase) checkCandidate(ctx context.Context, position string, candidateID string) error {
	return uc.checkCandidates(ctx, position, []string{candidateID})
}

func (uc CastVoteUseCase) checkCandidates(ctx context.Context, position string, candidateIDs []string) error {
	active, err := uc.Candidates.ActiveCandidates(ctx, position)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(active))
	for _, candidate := range active {
		known[candidate.ID] = struct{}{}
	}
	for _, id := range candidateIDs {
		if _, ok := known[id]; !ok {
			return domainerrors.ErrInvalidCandidate
		}
	}
	return nil
}

func (uc CastVoteUseCase) appendAudit(ctx context.Context, accountID string, now time.Time) error {
	if uc.Audit == nil {
		return nil
	}
	return uc.Audit.Append(ctx, ports.AuditEntry{
		ActorID:    accountID,
		Action:     "ballot_cast",
		Detail:     fmt.Sprintf("ballot cast by account %s", accountID),
		OccurredAt: now,
	})
}

func (uc CastVoteUseCase) appendCastEvent(ctx context.Context, ballot entities.Ballot, now time.Time) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	// Candidate choices stay out of the event payload; the notification
	// surface only needs the fact of the cast and the receipt.
	return uc.Outbox.AppendOutbox(ctx, events.Envelope{
		EventID:        eventID,
		EventType:      "ballot.cast",
		SourceService:  "election-operations/voting-engine",
		OccurredAtUTC:  now,
		AccountID:      ballot.AccountID,
		EntityType:     "ballot",
		EntityID:       ballot.ID,
		PayloadVersion: 1,
		Payload: map[string]any{
			"ballot_id":    ballot.ID,
			"receipt_code": ballot.ReceiptCode,
		},
	})
}

func (uc CastVoteUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
