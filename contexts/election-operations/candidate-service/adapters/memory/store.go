package memory

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"skvote/contexts/election-operations/candidate-service/domain/entities"
	domainerrors "skvote/contexts/election-operations/candidate-service/domain/errors"
	"skvote/contexts/election-operations/candidate-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu          sync.RWMutex
	candidates  map[string]entities.Candidate
	permissions map[string]map[string]struct{}
	audit       []ports.AuditEntry
	fixedNow    time.Time
}

func NewStore() *Store {
	return &Store{
		candidates:  make(map[string]entities.Candidate),
		permissions: make(map[string]map[string]struct{}),
	}
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

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixedNow = now
}

func (s *Store) Candidate(candidateID string) (entities.Candidate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.candidates[candidateID]
	return candidate, ok
}

func (s *Store) CreateCandidate(_ context.Context, candidate entities.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[candidate.ID] = candidate
	return nil
}

func (s *Store) UpdateCandidate(_ context.Context, candidate entities.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[candidate.ID]; !ok {
		return domainerrors.ErrCandidateNotFound
	}
	s.candidates[candidate.ID] = candidate
	return nil
}

func (s *Store) GetCandidate(_ context.Context, candidateID string) (entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.candidates[candidateID]
	if !ok {
		return entities.Candidate{}, domainerrors.ErrCandidateNotFound
	}
	return candidate, nil
}

func (s *Store) List(_ context.Context, status string, position string) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidates := make([]entities.Candidate, 0)
	for _, candidate := range s.candidates {
		if status != "" && candidate.Status != status {
			continue
		}
		if position != "" && candidate.Position != position {
			continue
		}
		candidates = append(candidates, candidate)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	return candidates, nil
}

func (s *Store) StorePhoto(_ context.Context, key string, _ string, body io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, body)
	return "mem://" + key, nil
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
