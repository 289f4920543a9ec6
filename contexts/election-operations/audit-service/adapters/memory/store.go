package memory

import (
	"context"
	"sort"
	"sync"

	"skvote/contexts/election-operations/audit-service/domain/entities"
)

type Store struct {
	mu          sync.RWMutex
	logs        []entities.AuditLog
	permissions map[string]map[string]struct{}
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

func (s *Store) SeedLog(log entities.AuditLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, log)
}

func (s *Store) ListRecent(_ context.Context, action string, limit int) ([]entities.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := make([]entities.AuditLog, 0, len(s.logs))
	for _, log := range s.logs {
		if action != "" && log.Action != action {
			continue
		}
		logs = append(logs, log)
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].OccurredAt.After(logs[j].OccurredAt)
	})
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
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
