package voting

import (
	"log/slog"

	httpadapter "skvote/contexts/election-operations/voting-engine/adapters/http"
	"skvote/contexts/election-operations/voting-engine/adapters/memory"
	"skvote/contexts/election-operations/voting-engine/application/commands"
	"skvote/contexts/election-operations/voting-engine/application/queries"
	"skvote/contexts/election-operations/voting-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Ballots    ports.BallotRepository
	Voters     ports.VoterDirectory
	Candidates ports.CandidateDirectory
	Gate       ports.ElectionGate
	Authz      ports.Authorizer
	Audit      ports.AuditSink
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Cast: commands.CastVoteUseCase{
				Ballots:    deps.Ballots,
				Voters:     deps.Voters,
				Candidates: deps.Candidates,
				Gate:       deps.Gate,
				Authz:      deps.Authz,
				Audit:      deps.Audit,
				Outbox:     deps.Outbox,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			Status: queries.VoteStatusUseCase{
				Ballots: deps.Ballots,
				Authz:   deps.Authz,
			},
			Results: queries.ResultsUseCase{
				Ballots:    deps.Ballots,
				Voters:     deps.Voters,
				Candidates: deps.Candidates,
				Gate:       deps.Gate,
				Authz:      deps.Authz,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Ballots:    store,
		Voters:     store,
		Candidates: store,
		Gate:       store,
		Authz:      store,
		Audit:      store,
		Outbox:     store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
