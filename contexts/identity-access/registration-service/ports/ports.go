package ports

import (
	"context"
	"io"
	"time"

	"skvote/contexts/identity-access/registration-service/domain/entities"
)

type AccountRepository interface {
	// CreateAccount persists the account and its default role atomically.
	// A concurrent registration with the same email loses with ErrEmailTaken.
	CreateAccount(ctx context.Context, account entities.Account, defaultRole string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

// DocumentStore keeps uploaded ID images; only the returned reference string
// is retained on the account.
type DocumentStore interface {
	StoreDocument(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

// RegistrationGate reflects the election settings registration window.
type RegistrationGate interface {
	RegistrationOpen(ctx context.Context, now time.Time) (bool, error)
}

type AuditEntry struct {
	ActorID    string
	Action     string
	Detail     string
	OccurredAt time.Time
}

type AuditSink interface {
	Append(ctx context.Context, entry AuditEntry) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
