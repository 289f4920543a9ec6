package ports

import (
	"context"
	"time"

	"skvote/contexts/identity-access/authorization-service/domain/entities"
)

type Repository interface {
	ListAccountRoles(ctx context.Context, accountID string) ([]entities.Role, error)
	ListEffectivePermissions(ctx context.Context, accountID string) ([]string, error)
	GrantRole(ctx context.Context, accountID string, roleName string, now time.Time) error
	RevokeRole(ctx context.Context, accountID string, roleName string) error
}

// AuditEntry is appended for every role mutation.
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
