package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"skvote/contexts/election-operations/audit-service/application/queries"
	httptransport "skvote/contexts/election-operations/audit-service/transport/http"
)

type Handler struct {
	Logs   queries.ListLogsUseCase
	Logger *slog.Logger
}

func (h Handler) ListHandler(ctx context.Context, actorID string, action string, limit int) (httptransport.AuditLogListResponse, error) {
	logs, err := h.Logs.ListLogs(ctx, actorID, action, limit)
	if err != nil {
		return httptransport.AuditLogListResponse{}, err
	}
	views := make([]httptransport.AuditLogView, 0, len(logs))
	for _, log := range logs {
		views = append(views, httptransport.AuditLogView{
			ID:         log.ID,
			ActorID:    log.ActorID,
			Action:     log.Action,
			Detail:     log.Detail,
			IP:         log.IP,
			UserAgent:  log.UserAgent,
			OccurredAt: log.OccurredAt.Format(time.RFC3339),
		})
	}
	return httptransport.AuditLogListResponse{Logs: views, Count: len(views)}, nil
}
