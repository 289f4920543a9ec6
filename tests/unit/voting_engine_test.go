package unit

import (
	"context"
	"errors"
	"strings"
	"testing"

	voting "skvote/contexts/election-operations/voting-engine"
	"skvote/contexts/election-operations/voting-engine/adapters/memory"
	"skvote/contexts/election-operations/voting-engine/domain/entities"
	domainerrors "skvote/contexts/election-operations/voting-engine/domain/errors"
	"skvote/contexts/election-operations/voting-engine/domain/services"
	"skvote/contexts/election-operations/voting-engine/ports"
	httptransport "skvote/contexts/election-operations/voting-engine/transport/http"
	"skvote/internal/shared/events"
)

// brokenTrail fails every audit and outbox append.
type brokenTrail struct{}

func (brokenTrail) Append(context.Context, ports.AuditEntry) error {
	return errors.New("audit sink unavailable")
}

func (brokenTrail) AppendOutbox(context.Context, events.Envelope) error {
	return errors.New("outbox unavailable")
}

func newVotingModule() voting.Module {
	module := voting.NewInMemoryModule(testLogger())
	module.Store.SetCandidate(ports.CandidateRef{ID: "chair-1", Name: "Ana Cruz", Position: entities.PositionChairperson})
	module.Store.SetCandidate(ports.CandidateRef{ID: "chair-2", Name: "Ben Lim", Position: entities.PositionChairperson})
	for _, id := range []string{"kgwd-1", "kgwd-2", "kgwd-3", "kgwd-4", "kgwd-5", "kgwd-6", "kgwd-7", "kgwd-8"} {
		module.Store.SetCandidate(ports.CandidateRef{ID: id, Name: "Kagawad " + id, Position: entities.PositionKagawad})
	}
	return module
}

func seedEligibleVoter(module voting.Module, accountID string) {
	module.Store.SetVoter(ports.VoterStanding{AccountID: accountID, Verified: true})
	module.Store.SetPermissions(accountID, "cast:vote")
}

func validSlate() httptransport.CastVoteRequest {
	return httptransport.CastVoteRequest{
		ChairpersonID: "chair-1",
		KagawadIDs:    []string{"kgwd-1", "kgwd-2", "kgwd-3"},
	}
}

func TestCastVoteSucceeds(t *testing.T) {
	module := newVotingModule()
	seedEligibleVoter(module, "acct-1")
	ctx := context.Background()

	resp, err := module.Handler.CastVoteHandler(ctx, "acct-1", validSlate())
	if err != nil {
		t.Fatalf("cast failed: %v", err)
	}
	if !resp.Success || resp.BallotID == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !strings.HasPrefix(resp.ReceiptCode, "SK-") {
		t.Fatalf("unexpected receipt code %q", resp.ReceiptCode)
	}
	if resp.ReceiptCode != services.ReceiptCode(resp.BallotID) {
		t.Fatalf("receipt code must derive from ballot id")
	}

	entries := module.Store.AuditEntries()
	if len(entries) == 0 || entries[len(entries)-1].Action != "ballot_cast" {
		t.Fatalf("expected ballot_cast audit entry, got %+v", entries)
	}
	envelopes := module.Store.OutboxEnvelopes()
	if len(envelopes) != 1 || envelopes[0].EventType != "ballot.cast" {
		t.Fatalf("expected ballot.cast outbox event, got %+v", envelopes)
	}
}

func TestCastVoteAcceptsFullKagawadSlate(t *testing.T) {
	module := newVotingModule()
	seedEligibleVoter(module, "acct-1")
	ctx := context.Background()

	resp, err := module.Handler.CastVoteHandler(ctx, "acct-1", httptransport.CastVoteRequest{
		ChairpersonID: "chair-1",
		KagawadIDs:    []string{"kgwd-1", "kgwd-2", "kgwd-3", "kgwd-4", "kgwd-5", "kgwd-6", "kgwd-7"},
	})
	if err != nil {
		t.Fatalf("seven-kagawad cast failed: %v", err)
	}
	if !strings.HasPrefix(resp.ReceiptCode, "SK-") {
		t.Fatalf("unexpected receipt code %q", resp.ReceiptCode)
	}

	status, err := module.Handler.VoteStatusHandler(ctx, "acct-1", "acct-1")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.Ballot == nil || len(status.Ballot.KagawadIDs) != entities.KagawadSeats {
		t.Fatalf("expected ballot with %d kagawad choices, got %+v", entities.KagawadSeats, status.Ballot)
	}
}

func TestCastVoteReceiptIsDeterministic(t *testing.T) {
	code := services.ReceiptCode("3f2504e0-4f89-41d3-9a0c-0305e82c3301")
	if code != services.ReceiptCode("3f2504e0-4f89-41d3-9a0c-0305e82c3301") {
		t.Fatalf("receipt code must be a pure function of the ballot id")
	}
	if code != "SK-3F2504E04F89" {
		t.Fatalf("unexpected receipt %q", code)
	}
}

func TestCastVoteRequiresPermission(t *testing.T) {
	module := newVotingModule()
	module.Store.SetVoter(ports.VoterStanding{AccountID: "acct-1", Verified: true})
	ctx := context.Background()

	_, err := module.Handler.CastVoteHandler(ctx, "acct-1", validSlate())
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCastVoteRejectedWhenVotingClosed(t *testing.T) {
	module := newVotingModule()
	seedEligibleVoter(module, "acct-1")
	module.Store.SetVotingOpen(false)
	ctx := context.Background()

	_, err := module.Handler.CastVoteHandler(ctx, "acct-1", validSlate())
	if !errors.Is(err, domainerrors.ErrVotingClosed) {
		t.Fatalf("expected ErrVotingClosed, got %v", err)
	}
}

func TestCastVoteRejectsUnverifiedVoter(t *testing.T) {
	module := newVotingModule()
	module.Store.SetVoter(ports.VoterStanding{AccountID: "acct-1", Verified: false})
	module.Store.SetPermissions("acct-1", "cast:vote")
	ctx := context.Background()

	_, err := module.Handler.CastVoteHandler(ctx, "acct-1", validSlate())
	if !errors.Is(err, domainerrors.ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible, got %v", err)
	}
}

func TestCastVoteRejectsUnknownAccount(t *testing.T) {
	module := newVotingModule()
	module.Store.SetPermissions("ghost", "cast:vote")
	ctx := context.Background()

	_, err := module.Handler.CastVoteHandler(ctx, "ghost", validSlate())
	if !errors.Is(err, domainerrors.ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible for unknown account, got %v", err)
	}
}

func TestCastVoteRejectsSecondBallot(t *testing.T) {
	module := newVotingModule()
	seedEligibleVoter(module, "acct-1")
	ctx := context.Background()

	if _, err := module.Handler.CastVoteHandler(ctx, "acct-1", validSlate()); err != nil {
		t.Fatalf("first cast failed: %v", err)
	}
	_, err := module.Handler.CastVoteHandler(ctx, "acct-1", validSlate())
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
}

func TestCastVoteRejectsMalformedSlates(t *testing.T) {
	module := newVotingModule()
	seedEligibleVoter(module, "acct-1")
	ctx := context.Background()

	cases := []struct {
		name string
		req  httptransport.CastVoteRequest
	}{
		{"missing chairperson", httptransport.CastVoteRequest{KagawadIDs: []string{"kgwd-1"}}},
		{"no kagawads", httptransport.CastVoteRequest{ChairpersonID: "chair-1"}},
		{"too many kagawads", httptransport.CastVoteRequest{
			ChairpersonID: "chair-1",
			KagawadIDs:    []string{"kgwd-1", "kgwd-2", "kgwd-3", "kgwd-4", "kgwd-5", "kgwd-6", "kgwd-7", "kgwd-8"},
		}},
		{"duplicate kagawad", httptransport.CastVoteRequest{
			ChairpersonID: "chair-1",
			KagawadIDs:    []string{"kgwd-1", "kgwd-1"},
		}},
		{"unknown chairperson", httptransport.CastVoteRequest{
			ChairpersonID: "nobody",
			KagawadIDs:    []string{"kgwd-1"},
		}},
		{"kagawad on chair slot", httptransport.CastVoteRequest{
			ChairpersonID: "kgwd-1",
			KagawadIDs:    []string{"kgwd-2"},
		}},
	}
	for _, tc := range cases {
		if _, err := module.Handler.CastVoteHandler(ctx, "acct-1", tc.req); !errors.Is(err, domainerrors.ErrInvalidCandidate) {
			t.Fatalf("%s: expected ErrInvalidCandidate, got %v", tc.name, err)
		}
	}
}

func TestCastVoteSurvivesTrailAppendFailure(t *testing.T) {
	store := memory.NewStore()
	module := voting.NewModule(voting.Dependencies{
		Ballots:    store,
		Voters:     store,
		Candidates: store,
		Gate:       store,
		Authz:      store,
		Audit:      brokenTrail{},
		Outbox:     brokenTrail{},
		Clock:      store,
		IDGen:      store,
		Logger:     testLogger(),
	})
	module.Store = store
	module.Store.SetCandidate(ports.CandidateRef{ID: "chair-1", Name: "Ana Cruz", Position: entities.PositionChairperson})
	module.Store.SetCandidate(ports.CandidateRef{ID: "kgwd-1", Name: "Kagawad kgwd-1", Position: entities.PositionKagawad})
	seedEligibleVoter(module, "acct-1")
	ctx := context.Background()

	// The ballot commits before the trail appends run, so sink failures
	// must not cost the voter their receipt.
	resp, err := module.Handler.CastVoteHandler(ctx, "acct-1", httptransport.CastVoteRequest{
		ChairpersonID: "chair-1",
		KagawadIDs:    []string{"kgwd-1"},
	})
	if err != nil {
		t.Fatalf("cast failed on trail append error: %v", err)
	}
	if resp.ReceiptCode != services.ReceiptCode(resp.BallotID) {
		t.Fatalf("receipt code must derive from ballot id")
	}

	status, err := module.Handler.VoteStatusHandler(ctx, "acct-1", "acct-1")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !status.HasVoted || status.Ballot == nil || status.Ballot.ReceiptCode != resp.ReceiptCode {
		t.Fatalf("expected durable ballot with matching receipt, got %+v", status)
	}
}

func TestVoteStatusOwnerSeesOwnBallot(t *testing.T) {
	module := newVotingModule()
	seedEligibleVoter(module, "acct-1")
	ctx := context.Background()

	cast, err := module.Handler.CastVoteHandler(ctx, "acct-1", validSlate())
	if err != nil {
		t.Fatalf("cast failed: %v", err)
	}

	status, err := module.Handler.VoteStatusHandler(ctx, "acct-1", "acct-1")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !status.HasVoted || status.Ballot == nil {
		t.Fatalf("expected ballot on own status, got %+v", status)
	}
	if status.Ballot.ReceiptCode != cast.ReceiptCode {
		t.Fatalf("receipt mismatch")
	}
}

func TestVoteStatusDeniedForOtherAccounts(t *testing.T) {
	module := newVotingModule()
	seedEligibleVoter(module, "acct-1")
	ctx := context.Background()

	if _, err := module.Handler.CastVoteHandler(ctx, "acct-1", validSlate()); err != nil {
		t.Fatalf("cast failed: %v", err)
	}

	_, err := module.Handler.VoteStatusHandler(ctx, "acct-2", "acct-1")
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign status read, got %v", err)
	}

	module.Store.SetPermissions("admin-1", "view:all_voter_data")
	status, err := module.Handler.VoteStatusHandler(ctx, "admin-1", "acct-1")
	if err != nil {
		t.Fatalf("admin status read failed: %v", err)
	}
	if !status.HasVoted {
		t.Fatalf("expected admin to see has_voted")
	}
}

func TestVoteStatusBeforeVoting(t *testing.T) {
	module := newVotingModule()
	seedEligibleVoter(module, "acct-1")
	ctx := context.Background()

	status, err := module.Handler.VoteStatusHandler(ctx, "acct-1", "acct-1")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.HasVoted || status.Ballot != nil {
		t.Fatalf("expected clean status before voting, got %+v", status)
	}
}

func TestResultsHiddenUntilPublished(t *testing.T) {
	module := newVotingModule()
	seedEligibleVoter(module, "acct-1")
	ctx := context.Background()

	if _, err := module.Handler.CastVoteHandler(ctx, "acct-1", validSlate()); err != nil {
		t.Fatalf("cast failed: %v", err)
	}

	_, err := module.Handler.ResultsHandler(ctx, "acct-1")
	if !errors.Is(err, domainerrors.ErrResultsHidden) {
		t.Fatalf("expected ErrResultsHidden, got %v", err)
	}

	// Live statistics permission overrides the publication toggle.
	module.Store.SetPermissions("officer-1", "view:live_statistics")
	if _, err := module.Handler.ResultsHandler(ctx, "officer-1"); err != nil {
		t.Fatalf("officer should see live results: %v", err)
	}
}

func TestResultsTallyAndElectedMarkers(t *testing.T) {
	module := newVotingModule()
	module.Store.SetResultsVisible(true)
	ctx := context.Background()

	for i, slate := range []httptransport.CastVoteRequest{
		{ChairpersonID: "chair-1", KagawadIDs: []string{"kgwd-1", "kgwd-2"}},
		{ChairpersonID: "chair-1", KagawadIDs: []string{"kgwd-1", "kgwd-3"}},
		{ChairpersonID: "chair-2", KagawadIDs: []string{"kgwd-1"}},
	} {
		accountID := "acct-" + string(rune('a'+i))
		seedEligibleVoter(module, accountID)
		if _, err := module.Handler.CastVoteHandler(ctx, accountID, slate); err != nil {
			t.Fatalf("cast %d failed: %v", i, err)
		}
	}

	resp, err := module.Handler.ResultsHandler(ctx, "")
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	if resp.TotalBallots != 3 {
		t.Fatalf("expected 3 ballots, got %d", resp.TotalBallots)
	}
	if resp.VerifiedVoters != 3 || resp.TurnoutPercent != 100 {
		t.Fatalf("expected full turnout, got %+v", resp)
	}

	if len(resp.Chairperson) != 2 {
		t.Fatalf("expected both chairperson candidates in tally, got %d", len(resp.Chairperson))
	}
	top := resp.Chairperson[0]
	if top.CandidateID != "chair-1" || top.Votes != 2 || !top.Elected {
		t.Fatalf("unexpected chairperson leader: %+v", top)
	}
	if resp.Chairperson[1].Elected {
		t.Fatalf("runner-up chairperson must not be marked elected")
	}

	if len(resp.Kagawad) != 8 {
		t.Fatalf("expected all kagawad candidates in tally, got %d", len(resp.Kagawad))
	}
	if resp.Kagawad[0].CandidateID != "kgwd-1" || resp.Kagawad[0].Votes != 3 {
		t.Fatalf("unexpected kagawad leader: %+v", resp.Kagawad[0])
	}
	for _, tally := range resp.Kagawad {
		if tally.Votes == 0 && tally.Elected {
			t.Fatalf("zero-vote candidate marked elected: %+v", tally)
		}
	}
}
