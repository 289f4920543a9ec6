package unit

import (
	"context"
	"errors"
	"sync"
	"testing"

	domainerrors "skvote/contexts/election-operations/voting-engine/domain/errors"
)

// Concurrent casts for the same account must admit exactly one ballot; the
// rest surface ErrAlreadyVoted.
func TestConcurrentCastsAdmitSingleBallot(t *testing.T) {
	module := newVotingModule()
	seedEligibleVoter(module, "acct-1")
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	outcomes := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, err := module.Handler.CastVoteHandler(ctx, "acct-1", validSlate())
			outcomes[slot] = err
		}(i)
	}
	wg.Wait()

	var accepted, rejected int
	for _, err := range outcomes {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, domainerrors.ErrAlreadyVoted):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if accepted != 1 {
		t.Fatalf("expected exactly one accepted ballot, got %d", accepted)
	}
	if rejected != attempts-1 {
		t.Fatalf("expected %d rejections, got %d", attempts-1, rejected)
	}
}

func TestConcurrentCastsForDistinctAccounts(t *testing.T) {
	module := newVotingModule()
	accounts := []string{"acct-a", "acct-b", "acct-c", "acct-d"}
	for _, accountID := range accounts {
		seedEligibleVoter(module, accountID)
	}
	ctx := context.Background()

	var wg sync.WaitGroup
	outcomes := make([]error, len(accounts))
	for i, accountID := range accounts {
		wg.Add(1)
		go func(slot int, id string) {
			defer wg.Done()
			_, err := module.Handler.CastVoteHandler(ctx, id, validSlate())
			outcomes[slot] = err
		}(i, accountID)
	}
	wg.Wait()

	for i, err := range outcomes {
		if err != nil {
			t.Fatalf("cast for %s failed: %v", accounts[i], err)
		}
	}
}
