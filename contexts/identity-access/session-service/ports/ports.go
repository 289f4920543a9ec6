package ports

import (
	"context"
	"time"

	"skvote/contexts/identity-access/session-service/domain/entities"
)

type CredentialReader interface {
	GetCredentialByEmail(ctx context.Context, email string) (entities.Credential, bool, error)
	ListRoleNames(ctx context.Context, accountID string) ([]string, error)
}

// TokenCodec issues and verifies the opaque session token. Verify returns the
// account id the token was issued for.
type TokenCodec interface {
	Issue(accountID string, issuedAt time.Time, ttl time.Duration) (string, error)
	Verify(token string) (string, error)
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
