package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	audit "skvote/contexts/election-operations/audit-service"
	candidate "skvote/contexts/election-operations/candidate-service"
	settings "skvote/contexts/election-operations/election-settings"
	verification "skvote/contexts/election-operations/verification-service"
	voting "skvote/contexts/election-operations/voting-engine"
	authorization "skvote/contexts/identity-access/authorization-service"
	registration "skvote/contexts/identity-access/registration-service"
	session "skvote/contexts/identity-access/session-service"
	sessionentities "skvote/contexts/identity-access/session-service/domain/entities"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "skvote/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	session       session.Module
	registration  registration.Module
	authorization authorization.Module
	verification  verification.Module
	voting        voting.Module
	candidates    candidate.Module
	settings      settings.Module
	audit         audit.Module
}

type Modules struct {
	Session       session.Module
	Registration  registration.Module
	Authorization authorization.Module
	Verification  verification.Module
	Voting        voting.Module
	Candidates    candidate.Module
	Settings      settings.Module
	Audit         audit.Module
}

func New(modules Modules, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		session:       modules.Session,
		registration:  modules.Registration,
		authorization: modules.Authorization,
		verification:  modules.Verification,
		voting:        modules.Voting,
		candidates:    modules.Candidates,
		settings:      modules.Settings,
		audit:         modules.Audit,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/auth/v1/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/auth/v1/register", s.handleRegister)

	s.mux.HandleFunc("POST /api/authz/v1/check", s.handleAuthzCheck)
	s.mux.HandleFunc("GET /api/authz/v1/accounts/{account_id}/roles", s.handleAuthzListRoles)
	s.mux.HandleFunc("POST /api/authz/v1/accounts/{account_id}/roles/grant", s.handleAuthzGrantRole)
	s.mux.HandleFunc("POST /api/authz/v1/accounts/{account_id}/roles/revoke", s.handleAuthzRevokeRole)

	s.mux.HandleFunc("GET /api/verifications/v1/pending", s.handleVerificationPending)
	s.mux.HandleFunc("GET /api/verifications/v1/{account_id}", s.handleVerificationStatus)
	s.mux.HandleFunc("GET /api/verifications/v1/{account_id}/eligibility", s.handleVerificationEligibility)
	s.mux.HandleFunc("POST /api/verifications/v1/{account_id}/review", s.handleVerificationOpenReview)
	s.mux.HandleFunc("POST /api/verifications/v1/{account_id}/status", s.handleVerificationSetStatus)

	s.mux.HandleFunc("POST /api/votes/v1", s.handleCastVote)
	s.mux.HandleFunc("GET /api/votes/v1/{account_id}", s.handleVoteStatus)
	s.mux.HandleFunc("GET /api/results/v1", s.handleResults)

	s.mux.HandleFunc("GET /api/candidates/v1", s.handleListCandidates)
	s.mux.HandleFunc("POST /api/candidates/v1", s.handleCreateCandidate)
	s.mux.HandleFunc("PATCH /api/candidates/v1/{candidate_id}", s.handleUpdateCandidate)

	s.mux.HandleFunc("GET /api/election-settings/v1", s.handleGetSettings)
	s.mux.HandleFunc("PUT /api/election-settings/v1", s.handleUpsertSettings)

	s.mux.HandleFunc("GET /api/audit-logs/v1", s.handleListAuditLogs)
}

// resolveIdentity maps the Authorization header to a caller identity.
// Anything unresolvable collapses to anonymous; the domain layers then deny.
func (s *Server) resolveIdentity(r *http.Request) sessionentities.Identity {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return sessionentities.Anonymous()
	}
	return s.session.Handler.ResolveIdentity(r.Context(), strings.TrimSpace(parts[1]))
}

// hasBearer distinguishes "no credentials at all" (401) from "credentials
// that resolve to a caller the domain rejects" (403).
func hasBearer(r *http.Request) bool {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	return len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && strings.TrimSpace(parts[1]) != ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
