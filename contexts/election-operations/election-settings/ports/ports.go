package ports

import (
	"context"
	"time"

	"skvote/contexts/election-operations/election-settings/domain/entities"
)

// SettingsRepository stores the single settings record. GetSettings returns
// ErrSettingsNotFound until the first save; the application layer substitutes
// the defaults.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (entities.Settings, error)
	SaveSettings(ctx context.Context, settings entities.Settings) error
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
