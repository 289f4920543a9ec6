package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"skvote/contexts/identity-access/registration-service/domain/entities"
	domainerrors "skvote/contexts/identity-access/registration-service/domain/errors"
	"skvote/contexts/identity-access/registration-service/ports"

	"github.com/google/uuid"
)

// Store implements the repository, clock, id, and audit ports in memory.
type Store struct {
	mu sync.RWMutex

	accounts map[string]entities.Account // keyed by account id
	emails   map[string]string           // email -> account id
	roles    map[string][]string
	audit    []ports.AuditEntry
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]entities.Account),
		emails:   make(map[string]string),
		roles:    make(map[string][]string),
	}
}

func (s *Store) CreateAccount(_ context.Context, account entities.Account, defaultRole string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(account.Email))
	if _, taken := s.emails[email]; taken {
		return domainerrors.ErrEmailTaken
	}
	s.emails[email] = account.AccountID
	s.accounts[account.AccountID] = account
	s.roles[account.AccountID] = append(s.roles[account.AccountID], defaultRole)
	return nil
}

func (s *Store) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, taken := s.emails[strings.ToLower(strings.TrimSpace(email))]
	return taken, nil
}

func (s *Store) Account(accountID string) (entities.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[accountID]
	return account, ok
}

func (s *Store) Roles(accountID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.roles[accountID]...)
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

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
