package ports

import (
	"context"
	"time"

	"skvote/contexts/election-operations/verification-service/domain/entities"
	"skvote/internal/shared/events"
)

type VoterRepository interface {
	GetVoter(ctx context.Context, accountID string) (entities.VoterRecord, error)
	// UpdateStatusFrom applies the transition only when the current status is
	// one of the allowed sources; the loser of a concurrent race observes
	// ErrInvalidStateTransition. This is the serialization point for the
	// state machine.
	UpdateStatusFrom(
		ctx context.Context,
		accountID string,
		from []entities.Status,
		to entities.Status,
		message string,
		now time.Time,
	) error
	ListByStatus(ctx context.Context, statuses []entities.Status) ([]entities.VoterRecord, error)
}

// Authorizer resolves whether an account holds a permission; anonymous
// callers (empty account id) always evaluate false.
type Authorizer interface {
	HasPermission(ctx context.Context, accountID string, permission string) (bool, error)
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

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope events.Envelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
