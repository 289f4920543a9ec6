package memory

import (
	"context"
	"sync"
	"time"

	"skvote/contexts/election-operations/voting-engine/domain/entities"
	domainerrors "skvote/contexts/election-operations/voting-engine/domain/errors"
	"skvote/contexts/election-operations/voting-engine/ports"
	"skvote/internal/shared/events"

	"github.com/google/uuid"
)

// Store is the in-memory voting backend for tests and local runs. The mutex
// around CreateBallot plays the role the ballots unique index plays in
// postgres.
type Store struct {
	mu           sync.RWMutex
	voters       map[string]ports.VoterStanding
	candidates   map[string]ports.CandidateRef
	ballots      map[string]entities.Ballot
	permissions  map[string]map[string]struct{}
	audit        []ports.AuditEntry
	outbox       []events.Envelope
	votingOpen   bool
	resultsShown bool
	fixedNow     time.Time
}

func NewStore() *Store {
	return &Store{
		voters:      make(map[string]ports.VoterStanding),
		candidates:  make(map[string]ports.CandidateRef),
		ballots:     make(map[string]entities.Ballot),
		permissions: make(map[string]map[string]struct{}),
		votingOpen:  true,
	}
}

func (s *Store) SetVoter(standing ports.VoterStanding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[standing.AccountID] = standing
}

func (s *Store) SetCandidate(candidate ports.CandidateRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[candidate.ID] = candidate
}

func (s *Store) SetPermissions(accountID string, permissions ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	grants := make(map[string]struct{}, len(permissions))
	for _, permission := range permissions {
		grants[permission] = struct{}{}
	}
	s.permissions[accountID] = grants
}

func (s *Store) SetVotingOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votingOpen = open
}

func (s *Store) SetResultsVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resultsShown = visible
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixedNow = now
}

func (s *Store) CreateBallot(_ context.Context, ballot entities.Ballot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.ballots[ballot.AccountID]; exists {
		return domainerrors.ErrAlreadyVoted
	}
	standing, ok := s.voters[ballot.AccountID]
	if ok && standing.HasVoted {
		return domainerrors.ErrAlreadyVoted
	}
	s.ballots[ballot.AccountID] = ballot
	if ok {
		standing.HasVoted = true
		s.voters[ballot.AccountID] = standing
	}
	return nil
}

func (s *Store) GetBallotByAccount(_ context.Context, accountID string) (entities.Ballot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ballot, ok := s.ballots[accountID]
	if !ok {
		return entities.Ballot{}, domainerrors.ErrBallotNotFound
	}
	return ballot, nil
}

func (s *Store) CountBallots(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.ballots)), nil
}

func (s *Store) TallySelections(_ context.Context) ([]ports.SelectionCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	votes := make(map[string]int64)
	for _, ballot := range s.ballots {
		votes[ballot.ChairpersonID]++
		for _, id := range ballot.KagawadIDs {
			votes[id]++
		}
	}
	counts := make([]ports.SelectionCount, 0, len(votes))
	for id, total := range votes {
		position := ""
		if candidate, ok := s.candidates[id]; ok {
			position = candidate.Position
		}
		counts = append(counts, ports.SelectionCount{CandidateID: id, Position: position, Votes: total})
	}
	return counts, nil
}

func (s *Store) GetStanding(_ context.Context, accountID string) (ports.VoterStanding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	standing, ok := s.voters[accountID]
	if !ok {
		return ports.VoterStanding{}, domainerrors.ErrNotEligible
	}
	return standing, nil
}

func (s *Store) CountVerified(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, standing := range s.voters {
		if standing.Verified {
			total++
		}
	}
	return total, nil
}

func (s *Store) ActiveCandidates(_ context.Context, position string) ([]ports.CandidateRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refs := make([]ports.CandidateRef, 0)
	for _, candidate := range s.candidates {
		if candidate.Position == position {
			refs = append(refs, candidate)
		}
	}
	return refs, nil
}

func (s *Store) VotingOpen(_ context.Context, _ time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.votingOpen, nil
}

func (s *Store) ResultsVisible(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resultsShown, nil
}

func (s *Store) HasPermission(_ context.Context, accountID string, permission string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if accountID == "" {
		return false, nil
	}
	grants, ok := s.permissions[accountID]
	if !ok {
		return false, nil
	}
	_, allowed := grants[permission]
	return allowed, nil
}

func (s *Store) Append(_ context.Context, entry ports.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, entry)
	return nil
}

func (s *Store) AuditEntries() []ports.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.AuditEntry(nil), s.audit...)
}

func (s *Store) AppendOutbox(_ context.Context, envelope events.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox = append(s.outbox, envelope)
	return nil
}

func (s *Store) OutboxEnvelopes() []events.Envelope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]events.Envelope(nil), s.outbox...)
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.fixedNow.IsZero() {
		return s.fixedNow
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
