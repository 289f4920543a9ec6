package candidate

import (
	"log/slog"

	httpadapter "skvote/contexts/election-operations/candidate-service/adapters/http"
	"skvote/contexts/election-operations/candidate-service/adapters/memory"
	"skvote/contexts/election-operations/candidate-service/application"
	"skvote/contexts/election-operations/candidate-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Candidates ports.CandidateRepository
	Photos     ports.PhotoStore
	Authz      ports.Authorizer
	Audit      ports.AuditSink
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Candidates: deps.Candidates,
		Photos:     deps.Photos,
		Authz:      deps.Authz,
		Audit:      deps.Audit,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Candidates: service,
			Logger:     deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Candidates: store,
		Photos:     store,
		Authz:      store,
		Audit:      store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
