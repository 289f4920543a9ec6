package session

import (
	"log/slog"
	"time"

	httpadapter "skvote/contexts/identity-access/session-service/adapters/http"
	"skvote/contexts/identity-access/session-service/adapters/memory"
	"skvote/contexts/identity-access/session-service/adapters/token"
	"skvote/contexts/identity-access/session-service/application"
	"skvote/contexts/identity-access/session-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Credentials ports.CredentialReader
	Tokens      ports.TokenCodec
	Audit       ports.AuditSink
	Clock       ports.Clock
	SessionTTL  time.Duration
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Sessions: application.Service{
				Credentials: deps.Credentials,
				Tokens:      deps.Tokens,
				Audit:       deps.Audit,
				Clock:       deps.Clock,
				SessionTTL:  deps.SessionTTL,
				Logger:      deps.Logger,
			},
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(secret string, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Credentials: store,
		Tokens:      token.NewHS256Codec(secret, "skvote"),
		Audit:       store,
		Clock:       store,
		SessionTTL:  time.Hour,
		Logger:      logger,
	})
	module.Store = store
	return module
}
