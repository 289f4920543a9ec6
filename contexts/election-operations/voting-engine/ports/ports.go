package ports

import (
	"context"
	"time"

	"skvote/contexts/election-operations/voting-engine/domain/entities"
	"skvote/internal/shared/events"
)

type BallotRepository interface {
	// CreateBallot persists the ballot, its selections, and the voter's
	// has_voted flag atomically. A second ballot for the same account
	// resolves ErrAlreadyVoted; this is the serialization point for the
	// one-ballot-per-account rule.
	CreateBallot(ctx context.Context, ballot entities.Ballot) error
	GetBallotByAccount(ctx context.Context, accountID string) (entities.Ballot, error)
	CountBallots(ctx context.Context) (int64, error)
	TallySelections(ctx context.Context) ([]SelectionCount, error)
}

type SelectionCount struct {
	CandidateID string
	Position    string
	Votes       int64
}

// VoterStanding is the slice of an account the engine needs to admit a vote.
type VoterStanding struct {
	AccountID string
	Verified  bool
	HasVoted  bool
}

type VoterDirectory interface {
	GetStanding(ctx context.Context, accountID string) (VoterStanding, error)
	CountVerified(ctx context.Context) (int64, error)
}

type CandidateRef struct {
	ID       string
	Name     string
	Position string
}

// CandidateDirectory lists active candidates; archived candidates never
// appear and therefore can never be voted for.
type CandidateDirectory interface {
	ActiveCandidates(ctx context.Context, position string) ([]CandidateRef, error)
}

// ElectionGate answers whether the voting window is open and whether results
// may be shown, from the election settings record.
type ElectionGate interface {
	VotingOpen(ctx context.Context, now time.Time) (bool, error)
	ResultsVisible(ctx context.Context) (bool, error)
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

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope events.Envelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
