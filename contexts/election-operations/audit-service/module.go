package audit

import (
	"log/slog"

	httpadapter "skvote/contexts/election-operations/audit-service/adapters/http"
	"skvote/contexts/election-operations/audit-service/adapters/memory"
	"skvote/contexts/election-operations/audit-service/application/queries"
	"skvote/contexts/election-operations/audit-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Logs   ports.AuditLogRepository
	Authz  ports.Authorizer
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Logs: queries.ListLogsUseCase{
				Logs:   deps.Logs,
				Authz:  deps.Authz,
				Logger: deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Logs:   store,
		Authz:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
