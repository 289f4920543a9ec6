package queries

import (
	"context"
	"strings"
	"time"

	"skvote/contexts/election-operations/verification-service/domain/entities"
	domainerrors "skvote/contexts/election-operations/verification-service/domain/errors"
	"skvote/contexts/election-operations/verification-service/ports"
)

// EligibilityReport is the officer's read-only preview before committing a
// transition. Producing it never mutates verification state.
type EligibilityReport struct {
	AccountID string
	Name      string
	Barangay  string
	City      string
	Age       int
	Status    entities.Status
	HasVoted  bool
	Eligible  bool
}

// StatusReport is the applicant-facing view of their own record.
type StatusReport struct {
	AccountID string
	Status    entities.Status
	Message   string
}

type EligibilityUseCase struct {
	Voters ports.VoterRepository
	Authz  ports.Authorizer
	Clock  ports.Clock
}

// VerifyEligibility previews whether an account could be verified right now.
func (u EligibilityUseCase) VerifyEligibility(ctx context.Context, accountID string) (EligibilityReport, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return EligibilityReport{}, domainerrors.ErrInvalidRequest
	}
	voter, err := u.Voters.GetVoter(ctx, accountID)
	if err != nil {
		return EligibilityReport{}, err
	}
	age := voter.Age(u.now())
	return EligibilityReport{
		AccountID: voter.AccountID,
		Name:      voter.Name,
		Barangay:  voter.Barangay,
		City:      voter.City,
		Age:       age,
		Status:    voter.Status,
		HasVoted:  voter.HasVoted,
		Eligible:  entities.AgeEligible(age) && !voter.Status.Terminal(),
	}, nil
}

// GetStatus returns the applicant's current status and any rejection reason.
func (u EligibilityUseCase) GetStatus(ctx context.Context, accountID string) (StatusReport, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return StatusReport{}, domainerrors.ErrInvalidRequest
	}
	voter, err := u.Voters.GetVoter(ctx, accountID)
	if err != nil {
		return StatusReport{}, err
	}
	return StatusReport{
		AccountID: voter.AccountID,
		Status:    voter.Status,
		Message:   voter.Message,
	}, nil
}

// ListPending is the officer queue: records awaiting a decision.
func (u EligibilityUseCase) ListPending(ctx context.Context, actorID string) ([]EligibilityReport, error) {
	allowed, err := u.Authz.HasPermission(ctx, strings.TrimSpace(actorID), "verify:voters")
	if err != nil || !allowed {
		return nil, domainerrors.ErrUnauthorized
	}
	voters, err := u.Voters.ListByStatus(ctx, []entities.Status{
		entities.StatusPending,
		entities.StatusVerifying,
	})
	if err != nil {
		return nil, err
	}
	now := u.now()
	reports := make([]EligibilityReport, 0, len(voters))
	for _, voter := range voters {
		age := voter.Age(now)
		reports = append(reports, EligibilityReport{
			AccountID: voter.AccountID,
			Name:      voter.Name,
			Barangay:  voter.Barangay,
			City:      voter.City,
			Age:       age,
			Status:    voter.Status,
			HasVoted:  voter.HasVoted,
			Eligible:  entities.AgeEligible(age) && !voter.Status.Terminal(),
		})
	}
	return reports, nil
}

func (u EligibilityUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
