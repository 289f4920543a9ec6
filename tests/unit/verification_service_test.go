package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	verification "skvote/contexts/election-operations/verification-service"
	"skvote/contexts/election-operations/verification-service/domain/entities"
	domainerrors "skvote/contexts/election-operations/verification-service/domain/errors"
	httptransport "skvote/contexts/election-operations/verification-service/transport/http"
)

func seedPendingVoter(module verification.Module, accountID string, age int) {
	module.Store.SetVoter(entities.VoterRecord{
		AccountID: accountID,
		Name:      "Pedro Reyes",
		Email:     accountID + "@example.com",
		BirthDate: time.Now().UTC().AddDate(-age, 0, 0),
		Barangay:  "Commonwealth",
		City:      "Quezon City",
		Status:    entities.StatusPending,
		CreatedAt: time.Now().UTC(),
	})
}

func TestOpenReviewMovesPendingToVerifying(t *testing.T) {
	module := verification.NewInMemoryModule(testLogger())
	module.Store.SetPermissions("officer-1", "verify:voters")
	seedPendingVoter(module, "acct-1", 18)
	ctx := context.Background()

	resp, err := module.Handler.OpenReviewHandler(ctx, "officer-1", httptransport.OpenReviewRequest{
		AccountID: "acct-1",
	})
	if err != nil {
		t.Fatalf("open review failed: %v", err)
	}
	if !resp.Success || resp.Status != string(entities.StatusVerifying) {
		t.Fatalf("unexpected response: %+v", resp)
	}

	voter, ok := module.Store.Voter("acct-1")
	if !ok || voter.Status != entities.StatusVerifying {
		t.Fatalf("expected verifying status, got %+v", voter)
	}
}

func TestOpenReviewDeniedWithoutPermission(t *testing.T) {
	module := verification.NewInMemoryModule(testLogger())
	seedPendingVoter(module, "acct-1", 18)
	ctx := context.Background()

	_, err := module.Handler.OpenReviewHandler(ctx, "voter-2", httptransport.OpenReviewRequest{
		AccountID: "acct-1",
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSetStatusVerifiesEligibleVoter(t *testing.T) {
	module := verification.NewInMemoryModule(testLogger())
	module.Store.SetPermissions("officer-1", "verify:voters")
	seedPendingVoter(module, "acct-1", 18)
	ctx := context.Background()

	resp, err := module.Handler.SetStatusHandler(ctx, "officer-1", httptransport.SetStatusRequest{
		AccountID: "acct-1",
		Status:    string(entities.StatusVerified),
	})
	if err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if resp.Status != string(entities.StatusVerified) {
		t.Fatalf("unexpected status %s", resp.Status)
	}

	envelopes := module.Store.OutboxEnvelopes()
	if len(envelopes) == 0 {
		t.Fatalf("expected verification event in outbox")
	}
	entries := module.Store.AuditEntries()
	if len(entries) == 0 || entries[len(entries)-1].Action != "verification_verified" {
		t.Fatalf("expected verification_verified audit entry, got %+v", entries)
	}
}

func TestSetStatusRejectsOverageVerification(t *testing.T) {
	module := verification.NewInMemoryModule(testLogger())
	module.Store.SetPermissions("officer-1", "verify:voters")
	seedPendingVoter(module, "acct-1", 31)
	ctx := context.Background()

	_, err := module.Handler.SetStatusHandler(ctx, "officer-1", httptransport.SetStatusRequest{
		AccountID: "acct-1",
		Status:    string(entities.StatusVerified),
	})
	if !errors.Is(err, domainerrors.ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible for 31 year old, got %v", err)
	}
}

func TestSetStatusRejectsTerminalTransition(t *testing.T) {
	module := verification.NewInMemoryModule(testLogger())
	module.Store.SetPermissions("officer-1", "verify:voters")
	seedPendingVoter(module, "acct-1", 18)
	ctx := context.Background()

	if _, err := module.Handler.SetStatusHandler(ctx, "officer-1", httptransport.SetStatusRequest{
		AccountID: "acct-1",
		Status:    string(entities.StatusRejected),
		Reason:    "illegible documents",
	}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	_, err := module.Handler.SetStatusHandler(ctx, "officer-1", httptransport.SetStatusRequest{
		AccountID: "acct-1",
		Status:    string(entities.StatusVerified),
	})
	if !errors.Is(err, domainerrors.ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition after rejection, got %v", err)
	}
}

func TestSetStatusRejectsNonTerminalTarget(t *testing.T) {
	module := verification.NewInMemoryModule(testLogger())
	module.Store.SetPermissions("officer-1", "verify:voters")
	seedPendingVoter(module, "acct-1", 18)
	ctx := context.Background()

	_, err := module.Handler.SetStatusHandler(ctx, "officer-1", httptransport.SetStatusRequest{
		AccountID: "acct-1",
		Status:    "pending",
	})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for non-terminal target, got %v", err)
	}
}

func TestSetStatusUnknownAccount(t *testing.T) {
	module := verification.NewInMemoryModule(testLogger())
	module.Store.SetPermissions("officer-1", "verify:voters")
	ctx := context.Background()

	_, err := module.Handler.SetStatusHandler(ctx, "officer-1", httptransport.SetStatusRequest{
		AccountID: "ghost",
		Status:    string(entities.StatusVerified),
	})
	if !errors.Is(err, domainerrors.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestEligibilityPreview(t *testing.T) {
	module := verification.NewInMemoryModule(testLogger())
	seedPendingVoter(module, "acct-1", 18)
	ctx := context.Background()

	resp, err := module.Handler.EligibilityHandler(ctx, "acct-1")
	if err != nil {
		t.Fatalf("eligibility failed: %v", err)
	}
	if resp.Age != 18 {
		t.Fatalf("expected age 18, got %d", resp.Age)
	}
	if !resp.Eligible {
		t.Fatalf("expected pending 18 year old to preview as eligible")
	}
}

func TestEligibilityPreviewFalseWhenRejected(t *testing.T) {
	module := verification.NewInMemoryModule(testLogger())
	module.Store.SetVoter(entities.VoterRecord{
		AccountID: "acct-1",
		BirthDate: time.Now().UTC().AddDate(-18, 0, 0),
		Status:    entities.StatusRejected,
	})
	ctx := context.Background()

	resp, err := module.Handler.EligibilityHandler(ctx, "acct-1")
	if err != nil {
		t.Fatalf("eligibility failed: %v", err)
	}
	if resp.Eligible {
		t.Fatalf("expected rejected record to preview as ineligible")
	}
}

func TestPendingListRequiresPermission(t *testing.T) {
	module := verification.NewInMemoryModule(testLogger())
	seedPendingVoter(module, "acct-1", 18)
	ctx := context.Background()

	if _, err := module.Handler.PendingHandler(ctx, "voter-2"); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	module.Store.SetPermissions("officer-1", "verify:voters")
	resp, err := module.Handler.PendingHandler(ctx, "officer-1")
	if err != nil {
		t.Fatalf("pending list failed: %v", err)
	}
	if resp.Count != 1 || len(resp.Voters) != 1 {
		t.Fatalf("expected one pending voter, got %+v", resp)
	}
}

func TestStatusLookup(t *testing.T) {
	module := verification.NewInMemoryModule(testLogger())
	seedPendingVoter(module, "acct-1", 18)
	ctx := context.Background()

	resp, err := module.Handler.StatusHandler(ctx, "acct-1")
	if err != nil {
		t.Fatalf("status lookup failed: %v", err)
	}
	if resp.Status != string(entities.StatusPending) {
		t.Fatalf("expected pending, got %s", resp.Status)
	}

	if _, err := module.Handler.StatusHandler(ctx, "ghost"); !errors.Is(err, domainerrors.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
