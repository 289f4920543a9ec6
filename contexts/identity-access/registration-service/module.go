package registration

import (
	"context"
	"io"
	"log/slog"

	httpadapter "skvote/contexts/identity-access/registration-service/adapters/http"
	"skvote/contexts/identity-access/registration-service/adapters/memory"
	"skvote/contexts/identity-access/registration-service/application"
	"skvote/contexts/identity-access/registration-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Accounts  ports.AccountRepository
	Documents ports.DocumentStore
	Gate      ports.RegistrationGate
	Audit     ports.AuditSink
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Registrations: application.Service{
				Accounts:  deps.Accounts,
				Documents: deps.Documents,
				Gate:      deps.Gate,
				Audit:     deps.Audit,
				Clock:     deps.Clock,
				IDGen:     deps.IDGen,
				Logger:    deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

type discardDocuments struct{}

func (discardDocuments) StoreDocument(_ context.Context, key string, _ string, body io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, body)
	return "mem://" + key, nil
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Accounts:  store,
		Documents: discardDocuments{},
		Audit:     store,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
