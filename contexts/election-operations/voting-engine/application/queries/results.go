package queries

import (
	"context"
	"sort"
	"strings"

	"skvote/contexts/election-operations/voting-engine/domain/entities"
	domainerrors "skvote/contexts/election-operations/voting-engine/domain/errors"
	"skvote/contexts/election-operations/voting-engine/ports"
)

type CandidateTally struct {
	CandidateID string
	Name        string
	Position    string
	Votes       int64
	Percentage  float64
	Elected     bool
}

type ResultsReport struct {
	Chairperson    []CandidateTally
	Kagawad        []CandidateTally
	TotalBallots   int64
	VerifiedVoters int64
	TurnoutPercent float64
}

type ResultsUseCase struct {
	Ballots    ports.BallotRepository
	Voters     ports.VoterDirectory
	Candidates ports.CandidateDirectory
	Gate       ports.ElectionGate
	Authz      ports.Authorizer
}

// Results tabulates per-seat tallies. Hidden results require
// view:live_statistics; anonymous callers see ErrResultsHidden, not a tally.
func (u ResultsUseCase) Results(ctx context.Context, callerID string) (ResultsReport, error) {
	visible, err := u.Gate.ResultsVisible(ctx)
	if err != nil {
		return ResultsReport{}, err
	}
	if !visible {
		allowed, err := u.Authz.HasPermission(ctx, strings.TrimSpace(callerID), "view:live_statistics")
		if err != nil || !allowed {
			return ResultsReport{}, domainerrors.ErrResultsHidden
		}
	}

	totalBallots, err := u.Ballots.CountBallots(ctx)
	if err != nil {
		return ResultsReport{}, err
	}
	verified, err := u.Voters.CountVerified(ctx)
	if err != nil {
		return ResultsReport{}, err
	}
	counts, err := u.Ballots.TallySelections(ctx)
	if err != nil {
		return ResultsReport{}, err
	}
	votesByCandidate := make(map[string]int64, len(counts))
	for _, count := range counts {
		votesByCandidate[count.CandidateID] = count.Votes
	}

	chairperson, err := u.positionTally(ctx, entities.PositionChairperson, votesByCandidate, totalBallots, 1)
	if err != nil {
		return ResultsReport{}, err
	}
	kagawad, err := u.positionTally(ctx, entities.PositionKagawad, votesByCandidate, totalBallots, entities.KagawadSeats)
	if err != nil {
		return ResultsReport{}, err
	}

	report := ResultsReport{
		Chairperson:    chairperson,
		Kagawad:        kagawad,
		TotalBallots:   totalBallots,
		VerifiedVoters: verified,
	}
	if verified > 0 {
		report.TurnoutPercent = float64(totalBallots) / float64(verified) * 100
	}
	return report, nil
}

// positionTally ranks all active candidates of one position, including those
// with zero votes, and marks the top seats elected. Seats beyond the ballot
// count stay unmarked so an empty election elects nobody.
func (u ResultsUseCase) positionTally(
	ctx context.Context,
	position string,
	votesByCandidate map[string]int64,
	totalBallots int64,
	seats int,
) ([]CandidateTally, error) {
	candidates, err := u.Candidates.ActiveCandidates(ctx, position)
	if err != nil {
		return nil, err
	}
	tallies := make([]CandidateTally, 0, len(candidates))
	for _, candidate := range candidates {
		entry := CandidateTally{
			CandidateID: candidate.ID,
			Name:        candidate.Name,
			Position:    position,
			Votes:       votesByCandidate[candidate.ID],
		}
		if totalBallots > 0 {
			entry.Percentage = float64(entry.Votes) / float64(totalBallots) * 100
		}
		tallies = append(tallies, entry)
	}
	sort.SliceStable(tallies, func(i, j int) bool {
		if tallies[i].Votes != tallies[j].Votes {
			return tallies[i].Votes > tallies[j].Votes
		}
		return tallies[i].Name < tallies[j].Name
	})
	for i := range tallies {
		if i < seats && tallies[i].Votes > 0 {
			tallies[i].Elected = true
		}
	}
	return tallies, nil
}
