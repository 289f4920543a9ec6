package queries

import (
	"context"
	"errors"
	"strings"

	"skvote/contexts/election-operations/voting-engine/domain/entities"
	domainerrors "skvote/contexts/election-operations/voting-engine/domain/errors"
	"skvote/contexts/election-operations/voting-engine/ports"
)

// VoteStatus is the owner-or-admin view of a single account's ballot.
type VoteStatus struct {
	AccountID string
	HasVoted  bool
	Ballot    *entities.Ballot
}

type VoteStatusUseCase struct {
	Ballots ports.BallotRepository
	Authz   ports.Authorizer
}

// GetVoteStatus returns whether the account has voted and, if so, the
// ballot. Callers other than the owner need view:all_voter_data.
func (u VoteStatusUseCase) GetVoteStatus(ctx context.Context, callerID string, accountID string) (VoteStatus, error) {
	callerID = strings.TrimSpace(callerID)
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return VoteStatus{}, domainerrors.ErrInvalidRequest
	}
	if callerID != accountID {
		allowed, err := u.Authz.HasPermission(ctx, callerID, "view:all_voter_data")
		if err != nil || !allowed {
			return VoteStatus{}, domainerrors.ErrUnauthorized
		}
	}
	ballot, err := u.Ballots.GetBallotByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrBallotNotFound) {
			return VoteStatus{AccountID: accountID, HasVoted: false}, nil
		}
		return VoteStatus{}, err
	}
	return VoteStatus{AccountID: accountID, HasVoted: true, Ballot: &ballot}, nil
}
