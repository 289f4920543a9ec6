package ports

import (
	"context"
	"io"
	"time"

	"skvote/contexts/election-operations/candidate-service/domain/entities"
)

type CandidateRepository interface {
	CreateCandidate(ctx context.Context, candidate entities.Candidate) error
	UpdateCandidate(ctx context.Context, candidate entities.Candidate) error
	GetCandidate(ctx context.Context, candidateID string) (entities.Candidate, error)
	// List filters by status and, when position is non-empty, by position.
	List(ctx context.Context, status string, position string) ([]entities.Candidate, error)
}

type PhotoStore interface {
	StorePhoto(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

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

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
