package settings

import (
	"log/slog"

	httpadapter "skvote/contexts/election-operations/election-settings/adapters/http"
	"skvote/contexts/election-operations/election-settings/adapters/memory"
	"skvote/contexts/election-operations/election-settings/application"
	"skvote/contexts/election-operations/election-settings/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Settings ports.SettingsRepository
	Authz    ports.Authorizer
	Audit    ports.AuditSink
	Clock    ports.Clock
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Settings: deps.Settings,
		Authz:    deps.Authz,
		Audit:    deps.Audit,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Settings: service,
			Logger:   deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Settings: store,
		Authz:    store,
		Audit:    store,
		Clock:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
