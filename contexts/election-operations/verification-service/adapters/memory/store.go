package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"skvote/contexts/election-operations/verification-service/domain/entities"
	domainerrors "skvote/contexts/election-operations/verification-service/domain/errors"
	"skvote/contexts/election-operations/verification-service/ports"
	"skvote/internal/shared/events"

	"github.com/google/uuid"
)

// Store implements the repository, authorizer, clock, id, audit, and outbox
// ports in memory. The mutex makes UpdateStatusFrom the same check-and-set
// serialization point the postgres adapter gets from its guarded UPDATE.
type Store struct {
	mu sync.RWMutex

	voters      map[string]entities.VoterRecord
	permissions map[string][]string
	audit       []ports.AuditEntry
	outbox      []events.Envelope
}

func NewStore() *Store {
	return &Store{
		voters:      make(map[string]entities.VoterRecord),
		permissions: make(map[string][]string),
	}
}

func (s *Store) SetVoter(voter entities.VoterRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[strings.TrimSpace(voter.AccountID)] = voter
}

func (s *Store) SetPermissions(accountID string, permissions ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permissions[strings.TrimSpace(accountID)] = append([]string(nil), permissions...)
}

func (s *Store) Voter(accountID string) (entities.VoterRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[strings.TrimSpace(accountID)]
	return voter, ok
}

func (s *Store) GetVoter(_ context.Context, accountID string) (entities.VoterRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[strings.TrimSpace(accountID)]
	if !ok {
		return entities.VoterRecord{}, domainerrors.ErrAccountNotFound
	}
	return voter, nil
}

func (s *Store) UpdateStatusFrom(
	_ context.Context,
	accountID string,
	from []entities.Status,
	to entities.Status,
	message string,
	_ time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	voter, ok := s.voters[strings.TrimSpace(accountID)]
	if !ok {
		return domainerrors.ErrAccountNotFound
	}
	allowed := false
	for _, status := range from {
		if voter.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return domainerrors.ErrInvalidStateTransition
	}
	voter.Status = to
	voter.Message = message
	s.voters[voter.AccountID] = voter
	return nil
}

func (s *Store) ListByStatus(_ context.Context, statuses []entities.Status) ([]entities.VoterRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entities.VoterRecord
	for _, voter := range s.voters {
		for _, status := range statuses {
			if voter.Status == status {
				out = append(out, voter)
				break
			}
		}
	}
	return out, nil
}

func (s *Store) HasPermission(_ context.Context, accountID string, permission string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.permissions[strings.TrimSpace(accountID)] {
		if p == permission {
			return true, nil
		}
	}
	return false, nil
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
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
