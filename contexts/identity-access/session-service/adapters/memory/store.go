package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"skvote/contexts/identity-access/session-service/domain/entities"
	"skvote/contexts/identity-access/session-service/ports"
)

// Store implements the credential reader, clock, and audit ports in memory.
type Store struct {
	mu sync.RWMutex

	credentials map[string]entities.Credential // keyed by email
	roles       map[string][]string
	audit       []ports.AuditEntry
}

func NewStore() *Store {
	return &Store{
		credentials: make(map[string]entities.Credential),
		roles:       make(map[string][]string),
	}
}

func (s *Store) SeedCredential(credential entities.Credential, roleNames ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(credential.Email))
	credential.Email = email
	s.credentials[email] = credential
	s.roles[credential.AccountID] = append([]string(nil), roleNames...)
}

func (s *Store) GetCredentialByEmail(_ context.Context, email string) (entities.Credential, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	credential, ok := s.credentials[strings.ToLower(strings.TrimSpace(email))]
	return credential, ok, nil
}

func (s *Store) ListRoleNames(_ context.Context, accountID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.roles[strings.TrimSpace(accountID)]...), nil
}

func (s *Store) Append(_ context.Context, entry ports.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, entry)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
