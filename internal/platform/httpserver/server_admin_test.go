package httpserver

import (
	"net/http"
	"testing"
	"time"

	auditentities "skvote/contexts/election-operations/audit-service/domain/entities"
	audithttp "skvote/contexts/election-operations/audit-service/transport/http"
	candidatehttp "skvote/contexts/election-operations/candidate-service/transport/http"
	settingshttp "skvote/contexts/election-operations/election-settings/transport/http"
	verificationentities "skvote/contexts/election-operations/verification-service/domain/entities"
	verificationhttp "skvote/contexts/election-operations/verification-service/transport/http"
	authzhttp "skvote/contexts/identity-access/authorization-service/transport/http"
)

func seedPendingVerification(env *testEnv, accountID string) {
	env.verification.Store.SetVoter(verificationentities.VoterRecord{
		AccountID: accountID,
		Name:      "Pedro Reyes",
		BirthDate: time.Now().UTC().AddDate(-18, 0, 0),
		Barangay:  "Commonwealth",
		City:      "Quezon City",
		Status:    verificationentities.StatusPending,
		CreatedAt: time.Now().UTC(),
	})
}

func TestVerificationFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	seedPendingVerification(env, "acct-1")
	env.verification.Store.SetPermissions("officer-1", "verify:voters")
	token := env.mintToken(t, "officer-1", "election_officer")

	pending := env.do(t, http.MethodGet, "/api/verifications/v1/pending", token, nil)
	requireStatus(t, pending, http.StatusOK)
	pendingResp := decodeBody[verificationhttp.PendingListResponse](t, pending)
	if pendingResp.Count != 1 {
		t.Fatalf("expected one pending voter, got %+v", pendingResp)
	}

	review := env.do(t, http.MethodPost, "/api/verifications/v1/acct-1/review", token, nil)
	requireStatus(t, review, http.StatusOK)

	decide := env.do(t, http.MethodPost, "/api/verifications/v1/acct-1/status", token, verificationhttp.SetStatusRequest{
		Status: "verified",
	})
	requireStatus(t, decide, http.StatusOK)

	status := env.do(t, http.MethodGet, "/api/verifications/v1/acct-1", "", nil)
	requireStatus(t, status, http.StatusOK)
	statusResp := decodeBody[verificationhttp.StatusResponse](t, status)
	if statusResp.Status != "verified" {
		t.Fatalf("expected verified, got %+v", statusResp)
	}
}

func TestVerificationDecisionWithoutTokenIs401(t *testing.T) {
	env := newTestEnv(t)
	seedPendingVerification(env, "acct-1")

	rec := env.do(t, http.MethodPost, "/api/verifications/v1/acct-1/status", "", verificationhttp.SetStatusRequest{
		Status: "verified",
	})
	requireStatus(t, rec, http.StatusUnauthorized)
}

func TestVerificationDecisionWithoutPermissionIs403(t *testing.T) {
	env := newTestEnv(t)
	seedPendingVerification(env, "acct-1")
	token := env.mintToken(t, "voter-2", "voter")

	rec := env.do(t, http.MethodPost, "/api/verifications/v1/acct-1/status", token, verificationhttp.SetStatusRequest{
		Status: "verified",
	})
	requireStatus(t, rec, http.StatusForbidden)
}

func TestDoubleDecisionIs409(t *testing.T) {
	env := newTestEnv(t)
	seedPendingVerification(env, "acct-1")
	env.verification.Store.SetPermissions("officer-1", "verify:voters")
	token := env.mintToken(t, "officer-1", "election_officer")

	reject := verificationhttp.SetStatusRequest{Status: "rejected", Reason: "illegible documents"}
	requireStatus(t, env.do(t, http.MethodPost, "/api/verifications/v1/acct-1/status", token, reject), http.StatusOK)

	verify := verificationhttp.SetStatusRequest{Status: "verified"}
	rec := env.do(t, http.MethodPost, "/api/verifications/v1/acct-1/status", token, verify)
	requireStatus(t, rec, http.StatusConflict)
}

func TestCandidateLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.candidates.Store.SetPermissions("admin-1", "manage:all_candidates")
	token := env.mintToken(t, "admin-1", "administrator")

	created := env.do(t, http.MethodPost, "/api/candidates/v1", token, candidatehttp.CreateCandidateRequest{
		Name:     "Ana Cruz",
		Position: "chairperson",
	})
	requireStatus(t, created, http.StatusCreated)
	view := decodeBody[candidatehttp.CandidateView](t, created)

	list := env.do(t, http.MethodGet, "/api/candidates/v1?position=chairperson", "", nil)
	requireStatus(t, list, http.StatusOK)
	listResp := decodeBody[candidatehttp.CandidateListResponse](t, list)
	if listResp.Count != 1 || listResp.Candidates[0].ID != view.ID {
		t.Fatalf("expected created candidate on public roster, got %+v", listResp)
	}

	inactive := "inactive"
	patched := env.do(t, http.MethodPatch, "/api/candidates/v1/"+view.ID, token, candidatehttp.UpdateCandidateRequest{
		Status: &inactive,
	})
	requireStatus(t, patched, http.StatusOK)

	relist := env.do(t, http.MethodGet, "/api/candidates/v1", "", nil)
	requireStatus(t, relist, http.StatusOK)
	if decodeBody[candidatehttp.CandidateListResponse](t, relist).Count != 0 {
		t.Fatalf("archived candidate still listed")
	}
}

func TestCandidateCreateWithoutPermissionIs403(t *testing.T) {
	env := newTestEnv(t)
	token := env.mintToken(t, "voter-1", "voter")

	rec := env.do(t, http.MethodPost, "/api/candidates/v1", token, candidatehttp.CreateCandidateRequest{
		Name:     "Ana Cruz",
		Position: "chairperson",
	})
	requireStatus(t, rec, http.StatusForbidden)
}

func TestSettingsRoundTripOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.settings.Store.SetPermissions("admin-1", "manage:election_settings")
	token := env.mintToken(t, "admin-1", "administrator")

	get := env.do(t, http.MethodGet, "/api/election-settings/v1", "", nil)
	requireStatus(t, get, http.StatusOK)
	defaults := decodeBody[settingshttp.SettingsResponse](t, get)
	if defaults.ShowResults {
		t.Fatalf("results should default hidden")
	}

	put := env.do(t, http.MethodPut, "/api/election-settings/v1", token, settingshttp.SettingsPayload{
		EnableRegistration: true,
		EnableVoting:       true,
		ShowResults:        true,
	})
	requireStatus(t, put, http.StatusOK)

	reget := env.do(t, http.MethodGet, "/api/election-settings/v1", "", nil)
	requireStatus(t, reget, http.StatusOK)
	if !decodeBody[settingshttp.SettingsResponse](t, reget).ShowResults {
		t.Fatalf("settings update not visible on read")
	}
}

func TestSettingsUpdateWithoutTokenIs401(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/election-settings/v1", "", settingshttp.SettingsPayload{
		EnableVoting: true,
	})
	requireStatus(t, rec, http.StatusUnauthorized)
}

func TestAuditLogListingOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.audit.Store.SetPermissions("auditor-1", "view:audit_logs")
	env.audit.Store.SeedLog(auditentities.AuditLog{
		ID:         "log-1",
		ActorID:    "officer-1",
		Action:     "ballot_cast",
		OccurredAt: time.Now().UTC(),
	})
	token := env.mintToken(t, "auditor-1", "auditor")

	rec := env.do(t, http.MethodGet, "/api/audit-logs/v1?action=ballot_cast&limit=10", token, nil)
	requireStatus(t, rec, http.StatusOK)
	resp := decodeBody[audithttp.AuditLogListResponse](t, rec)
	if resp.Count != 1 || resp.Logs[0].Action != "ballot_cast" {
		t.Fatalf("unexpected audit response: %+v", resp)
	}

	bad := env.do(t, http.MethodGet, "/api/audit-logs/v1?limit=ten", token, nil)
	requireStatus(t, bad, http.StatusBadRequest)
}

func TestAuthzGrantAndCheckOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.authorization.Store.SeedRoles("admin-1", "administrator")
	adminToken := env.mintToken(t, "admin-1", "administrator")

	grant := env.do(t, http.MethodPost, "/api/authz/v1/accounts/acct-2/roles/grant", adminToken, authzhttp.GrantRoleRequest{
		RoleName: "voter",
	})
	requireStatus(t, grant, http.StatusOK)

	voterToken := env.mintToken(t, "acct-2", "voter")
	check := env.do(t, http.MethodPost, "/api/authz/v1/check", voterToken, authzhttp.CheckPermissionRequest{
		Permission: "cast:vote",
	})
	requireStatus(t, check, http.StatusOK)
	if !decodeBody[authzhttp.CheckPermissionResponse](t, check).Allowed {
		t.Fatalf("expected granted voter role to allow cast:vote")
	}

	roles := env.do(t, http.MethodGet, "/api/authz/v1/accounts/acct-2/roles", adminToken, nil)
	requireStatus(t, roles, http.StatusOK)
}

func TestAuthzGrantWithoutTokenIs401(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/authz/v1/accounts/acct-2/roles/grant", "", authzhttp.GrantRoleRequest{
		RoleName: "voter",
	})
	requireStatus(t, rec, http.StatusUnauthorized)
}

func TestAuthzGrantWithoutAdminRoleIs403(t *testing.T) {
	env := newTestEnv(t)
	token := env.mintToken(t, "voter-1", "voter")

	rec := env.do(t, http.MethodPost, "/api/authz/v1/accounts/acct-2/roles/grant", token, authzhttp.GrantRoleRequest{
		RoleName: "voter",
	})
	requireStatus(t, rec, http.StatusForbidden)
}
