// Package bootstrap is the composition root. Construction and wiring stay
// here so context modules remain free of platform concerns.
package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	audit "skvote/contexts/election-operations/audit-service"
	auditpostgres "skvote/contexts/election-operations/audit-service/adapters/postgres"
	candidate "skvote/contexts/election-operations/candidate-service"
	candidatepostgres "skvote/contexts/election-operations/candidate-service/adapters/postgres"
	settings "skvote/contexts/election-operations/election-settings"
	settingspostgres "skvote/contexts/election-operations/election-settings/adapters/postgres"
	verification "skvote/contexts/election-operations/verification-service"
	verificationpostgres "skvote/contexts/election-operations/verification-service/adapters/postgres"
	voting "skvote/contexts/election-operations/voting-engine"
	votingpostgres "skvote/contexts/election-operations/voting-engine/adapters/postgres"
	votingports "skvote/contexts/election-operations/voting-engine/ports"
	authorization "skvote/contexts/identity-access/authorization-service"
	authzpostgres "skvote/contexts/identity-access/authorization-service/adapters/postgres"
	authzqueries "skvote/contexts/identity-access/authorization-service/application/queries"
	registration "skvote/contexts/identity-access/registration-service"
	registrationpostgres "skvote/contexts/identity-access/registration-service/adapters/postgres"
	session "skvote/contexts/identity-access/session-service"
	sessionpostgres "skvote/contexts/identity-access/session-service/adapters/postgres"
	"skvote/contexts/identity-access/session-service/adapters/token"

	"skvote/internal/platform/config"
	"skvote/internal/platform/db"
	"skvote/internal/platform/httpserver"
	"skvote/internal/platform/messaging"
	"skvote/internal/platform/storage"
	"skvote/internal/shared/outbox"
)

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	relay        outbox.Relay
	enabled      bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	objects, err := buildObjectStore(cfg, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	authzRepo := authzpostgres.NewRepository(pg.DB, logger)
	authzModule := authorization.NewModule(authorization.Dependencies{
		Repository: authzRepo,
		Audit:      authzRepo,
		Clock:      authzpostgres.SystemClock{},
		Logger:     logger,
	})
	gate := permissionGate{check: authzModule.Handler.Check}

	sessionRepo := sessionpostgres.NewRepository(pg.DB, logger)
	sessionModule := session.NewModule(session.Dependencies{
		Credentials: sessionRepo,
		Tokens:      token.NewHS256Codec(cfg.SessionSecret, cfg.ServiceName),
		Audit:       sessionRepo,
		Clock:       sessionpostgres.SystemClock{},
		SessionTTL:  time.Duration(cfg.SessionTTLHours) * time.Hour,
		Logger:      logger,
	})

	settingsRepo := settingspostgres.NewRepository(pg.DB, logger)
	settingsModule := settings.NewModule(settings.Dependencies{
		Settings: settingsRepo,
		Authz:    gate,
		Audit:    settingsRepo,
		Clock:    settingspostgres.SystemClock{},
		Logger:   logger,
	})

	registrationRepo := registrationpostgres.NewRepository(pg.DB, logger)
	registrationModule := registration.NewModule(registration.Dependencies{
		Accounts:  registrationRepo,
		Documents: documentStore{objects: objects},
		Gate:      settingsModule.Service,
		Audit:     registrationRepo,
		Clock:     registrationpostgres.SystemClock{},
		IDGen:     registrationpostgres.UUIDGenerator{},
		Logger:    logger,
	})

	verificationRepo := verificationpostgres.NewRepository(pg.DB, logger)
	verificationModule := verification.NewModule(verification.Dependencies{
		Voters: verificationRepo,
		Authz:  gate,
		Audit:  verificationRepo,
		Outbox: verificationRepo,
		Clock:  verificationpostgres.SystemClock{},
		IDGen:  verificationpostgres.UUIDGenerator{},
		Logger: logger,
	})

	candidateRepo := candidatepostgres.NewRepository(pg.DB, logger)
	candidateModule := candidate.NewModule(candidate.Dependencies{
		Candidates: candidateRepo,
		Photos:     photoStore{objects: objects},
		Authz:      gate,
		Audit:      candidateRepo,
		Clock:      candidatepostgres.SystemClock{},
		IDGen:      candidatepostgres.UUIDGenerator{},
		Logger:     logger,
	})

	votingRepo := votingpostgres.NewRepository(pg.DB, logger)
	votingModule := voting.NewModule(voting.Dependencies{
		Ballots:    votingRepo,
		Voters:     votingRepo,
		Candidates: candidateDirectory{service: candidateModule},
		Gate:       settingsModule.Service,
		Authz:      gate,
		Audit:      votingRepo,
		Outbox:     votingRepo,
		Clock:      votingpostgres.SystemClock{},
		IDGen:      votingpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	auditRepo := auditpostgres.NewRepository(pg.DB, logger)
	auditModule := audit.NewModule(audit.Dependencies{
		Logs:   auditRepo,
		Authz:  gate,
		Logger: logger,
	})

	server := httpserver.New(httpserver.Modules{
		Session:       sessionModule,
		Registration:  registrationModule,
		Authorization: authzModule,
		Verification:  verificationModule,
		Voting:        votingModule,
		Candidates:    candidateModule,
		Settings:      settingsModule,
		Audit:         auditModule,
	}, logger, normalizeAddr(cfg.HTTPPort))

	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	store := outbox.NewPostgresStore(pg.DB, logger)

	return &WorkerApp{
		postgres: pg,
		relay: outbox.Relay{
			Outbox:    store,
			Publisher: bus,
			Topic:     cfg.NotificationTopic,
			BatchSize: 100,
			Logger:    logger,
		},
		enabled:      cfg.EnableOutboxRelay,
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if !w.enabled {
		w.logger.Info("outbox relay disabled",
			"event", "bootstrap_worker_idle",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.relay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func buildObjectStore(cfg config.Config, logger *slog.Logger) (storage.ObjectStore, error) {
	if strings.TrimSpace(cfg.S3AccessKeyID) == "" {
		logger.Warn("object storage credentials absent, using in-memory store",
			"event", "bootstrap_storage_memory_fallback",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return storage.NewMemoryStore(), nil
	}
	return storage.NewS3Store(cfg, logger)
}

// permissionGate adapts the authorization module to the per-service
// Authorizer ports. Evaluation errors collapse to deny.
type permissionGate struct {
	check authzqueries.CheckPermissionUseCase
}

func (g permissionGate) HasPermission(ctx context.Context, accountID string, permission string) (bool, error) {
	decision, err := g.check.Execute(ctx, authzqueries.CheckPermissionQuery{
		AccountID:  accountID,
		Permission: permission,
	})
	if err != nil {
		return false, err
	}
	return decision.Allowed, nil
}

type documentStore struct {
	objects storage.ObjectStore
}

func (d documentStore) StoreDocument(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	return d.objects.Put(ctx, key, contentType, body)
}

type photoStore struct {
	objects storage.ObjectStore
}

func (p photoStore) StorePhoto(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	return p.objects.Put(ctx, key, contentType, body)
}

// candidateDirectory projects the candidate roster into the voting engine's
// directory port.
type candidateDirectory struct {
	service candidate.Module
}

func (c candidateDirectory) ActiveCandidates(ctx context.Context, position string) ([]votingports.CandidateRef, error) {
	candidates, err := c.service.Service.ListActive(ctx, position)
	if err != nil {
		return nil, err
	}
	refs := make([]votingports.CandidateRef, 0, len(candidates))
	for _, item := range candidates {
		refs = append(refs, votingports.CandidateRef{
			ID:       item.ID,
			Name:     item.Name,
			Position: item.Position,
		})
	}
	return refs, nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
