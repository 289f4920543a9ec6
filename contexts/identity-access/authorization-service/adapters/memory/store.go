package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"skvote/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "skvote/contexts/identity-access/authorization-service/domain/errors"
	"skvote/contexts/identity-access/authorization-service/domain/services"
	"skvote/contexts/identity-access/authorization-service/ports"
)

// Store implements the repository, clock, and audit ports in memory.
type Store struct {
	mu sync.RWMutex

	assignments map[string][]string
	audit       []ports.AuditEntry
}

func NewStore() *Store {
	return &Store{assignments: make(map[string][]string)}
}

// SeedRoles assigns roles directly, bypassing the permission guard;
// tests and bootstrap seeding only.
func (s *Store) SeedRoles(accountID string, roleNames ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, roleName := range roleNames {
		s.assignments[accountID] = appendUnique(s.assignments[accountID], strings.ToLower(roleName))
	}
}

func (s *Store) ListAccountRoles(_ context.Context, accountID string) ([]entities.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var roles []entities.Role
	for _, roleName := range s.assignments[strings.TrimSpace(accountID)] {
		if role, ok := services.CatalogRole(roleName); ok {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

func (s *Store) ListEffectivePermissions(ctx context.Context, accountID string) ([]string, error) {
	roles, err := s.ListAccountRoles(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return services.EffectivePermissions(roles), nil
}

func (s *Store) GrantRole(_ context.Context, accountID string, roleName string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	accountID = strings.TrimSpace(accountID)
	for _, assigned := range s.assignments[accountID] {
		if assigned == roleName {
			return domainerrors.ErrRoleAlreadyAssigned
		}
	}
	s.assignments[accountID] = append(s.assignments[accountID], roleName)
	return nil
}

func (s *Store) RevokeRole(_ context.Context, accountID string, roleName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	accountID = strings.TrimSpace(accountID)
	assigned := s.assignments[accountID]
	for i, candidate := range assigned {
		if candidate == roleName {
			s.assignments[accountID] = append(assigned[:i:i], assigned[i+1:]...)
			return nil
		}
	}
	return domainerrors.ErrRoleNotAssigned
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
	return time.Now().UTC()
}

func appendUnique(items []string, item string) []string {
	for _, existing := range items {
		if existing == item {
			return items
		}
	}
	return append(items, item)
}
