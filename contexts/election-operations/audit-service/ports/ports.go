package ports

import (
	"context"

	"skvote/contexts/election-operations/audit-service/domain/entities"
)

type AuditLogRepository interface {
	// ListRecent returns logs newest first, optionally filtered by action.
	ListRecent(ctx context.Context, action string, limit int) ([]entities.AuditLog, error)
}

type Authorizer interface {
	HasPermission(ctx context.Context, accountID string, permission string) (bool, error)
}
