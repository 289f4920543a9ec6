package queries

import (
	"context"
	"log/slog"
	"strings"

	"skvote/contexts/election-operations/audit-service/domain/entities"
	domainerrors "skvote/contexts/election-operations/audit-service/domain/errors"
	"skvote/contexts/election-operations/audit-service/ports"
)

const defaultLimit = 100
const maxLimit = 500

type ListLogsUseCase struct {
	Logs   ports.AuditLogRepository
	Authz  ports.Authorizer
	Logger *slog.Logger
}

// ListLogs returns recent audit entries for holders of view:audit_logs.
func (u ListLogsUseCase) ListLogs(ctx context.Context, actorID string, action string, limit int) ([]entities.AuditLog, error) {
	actorID = strings.TrimSpace(actorID)
	allowed, err := u.Authz.HasPermission(ctx, actorID, "view:audit_logs")
	if err != nil || !allowed {
		if u.Logger != nil {
			u.Logger.Warn("audit log read denied",
				"event", "audit_list_denied",
				"module", "election-operations/audit-service",
				"layer", "application",
				"actor_id", actorID,
			)
		}
		return nil, domainerrors.ErrUnauthorized
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return u.Logs.ListRecent(ctx, strings.TrimSpace(action), limit)
}
