package memory

import (
	"context"
	"sync"
	"time"

	"skvote/contexts/election-operations/election-settings/domain/entities"
	domainerrors "skvote/contexts/election-operations/election-settings/domain/errors"
	"skvote/contexts/election-operations/election-settings/ports"
)

type Store struct {
	mu          sync.RWMutex
	settings    *entities.Settings
	permissions map[string]map[string]struct{}
	audit       []ports.AuditEntry
	fixedNow    time.Time
}

func NewStore() *Store {
	return &Store{
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

func (s *Store) GetSettings(_ context.Context) (entities.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return entities.Settings{}, domainerrors.ErrSettingsNotFound
	}
	return *s.settings, nil
}

func (s *Store) SaveSettings(_ context.Context, settings entities.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &settings
	return nil
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
