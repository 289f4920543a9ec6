package verification

import (
	"log/slog"

	httpadapter "skvote/contexts/election-operations/verification-service/adapters/http"
	"skvote/contexts/election-operations/verification-service/adapters/memory"
	"skvote/contexts/election-operations/verification-service/application/commands"
	"skvote/contexts/election-operations/verification-service/application/queries"
	"skvote/contexts/election-operations/verification-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Voters ports.VoterRepository
	Authz  ports.Authorizer
	Audit  ports.AuditSink
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Verification: commands.VerificationUseCase{
				Voters: deps.Voters,
				Authz:  deps.Authz,
				Audit:  deps.Audit,
				Outbox: deps.Outbox,
				Clock:  deps.Clock,
				IDGen:  deps.IDGen,
				Logger: deps.Logger,
			},
			Eligibility: queries.EligibilityUseCase{
				Voters: deps.Voters,
				Authz:  deps.Authz,
				Clock:  deps.Clock,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Voters: store,
		Authz:  store,
		Audit:  store,
		Outbox: store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
