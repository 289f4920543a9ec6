package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	audit "skvote/contexts/election-operations/audit-service"
	candidate "skvote/contexts/election-operations/candidate-service"
	settings "skvote/contexts/election-operations/election-settings"
	verification "skvote/contexts/election-operations/verification-service"
	voting "skvote/contexts/election-operations/voting-engine"
	votingentities "skvote/contexts/election-operations/voting-engine/domain/entities"
	votingports "skvote/contexts/election-operations/voting-engine/ports"
	authorization "skvote/contexts/identity-access/authorization-service"
	registration "skvote/contexts/identity-access/registration-service"
	session "skvote/contexts/identity-access/session-service"
	sessionentities "skvote/contexts/identity-access/session-service/domain/entities"
	sessionhttp "skvote/contexts/identity-access/session-service/transport/http"
)

type testEnv struct {
	server        *Server
	session       session.Module
	registration  registration.Module
	authorization authorization.Module
	verification  verification.Module
	voting        voting.Module
	candidates    candidate.Module
	settings      settings.Module
	audit         audit.Module
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &testEnv{
		session:       session.NewInMemoryModule("test-secret", logger),
		registration:  registration.NewInMemoryModule(logger),
		authorization: authorization.NewInMemoryModule(logger),
		verification:  verification.NewInMemoryModule(logger),
		voting:        voting.NewInMemoryModule(logger),
		candidates:    candidate.NewInMemoryModule(logger),
		settings:      settings.NewInMemoryModule(logger),
		audit:         audit.NewInMemoryModule(logger),
	}
	env.server = New(Modules{
		Session:       env.session,
		Registration:  env.registration,
		Authorization: env.authorization,
		Verification:  env.verification,
		Voting:        env.voting,
		Candidates:    env.candidates,
		Settings:      env.settings,
		Audit:         env.audit,
	}, logger, ":0")
	return env
}

// mintToken seeds a credential with the given roles and logs in through the
// session module, returning a bearer token the server will accept.
func (env *testEnv) mintToken(t *testing.T, accountID string, roles ...string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	email := accountID + "@example.com"
	env.session.Store.SeedCredential(sessionentities.Credential{
		AccountID:    accountID,
		Email:        email,
		Name:         accountID,
		PasswordHash: string(hash),
	}, roles...)
	resp, err := env.session.Handler.LoginHandler(context.Background(), sessionhttp.LoginRequest{
		Email:    email,
		Password: "password",
	})
	if err != nil {
		t.Fatalf("login for %s failed: %v", accountID, err)
	}
	return resp.Token
}

// seedBallotFixtures prepares a verified voter with cast:vote plus a minimal
// candidate roster in the voting engine's store.
func (env *testEnv) seedBallotFixtures(accountID string) {
	env.voting.Store.SetVoter(votingports.VoterStanding{AccountID: accountID, Verified: true})
	env.voting.Store.SetPermissions(accountID, "cast:vote")
	env.voting.Store.SetCandidate(votingports.CandidateRef{ID: "chair-1", Name: "Ana Cruz", Position: votingentities.PositionChairperson})
	env.voting.Store.SetCandidate(votingports.CandidateRef{ID: "kgwd-1", Name: "Ben Lim", Position: votingentities.PositionKagawad})
	env.voting.Store.SetCandidate(votingports.CandidateRef{ID: "kgwd-2", Name: "Carla Uy", Position: votingentities.PositionKagawad})
}

func (env *testEnv) do(t *testing.T, method string, path string, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return out.Code
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
