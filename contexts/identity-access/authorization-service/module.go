package authorization

import (
	"log/slog"

	httpadapter "skvote/contexts/identity-access/authorization-service/adapters/http"
	"skvote/contexts/identity-access/authorization-service/adapters/memory"
	"skvote/contexts/identity-access/authorization-service/application/commands"
	"skvote/contexts/identity-access/authorization-service/application/queries"
	"skvote/contexts/identity-access/authorization-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Audit      ports.AuditSink
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Check: queries.CheckPermissionUseCase{
				Repository: deps.Repository,
				Clock:      deps.Clock,
				Logger:     deps.Logger,
			},
			Roles: queries.ListAccountRolesUseCase{
				Repository: deps.Repository,
			},
			Mutate: commands.RoleUseCase{
				Repository: deps.Repository,
				Audit:      deps.Audit,
				Clock:      deps.Clock,
				Logger:     deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Audit:      store,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
