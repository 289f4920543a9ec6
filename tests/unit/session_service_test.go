package unit

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	session "skvote/contexts/identity-access/session-service"
	"skvote/contexts/identity-access/session-service/domain/entities"
	domainerrors "skvote/contexts/identity-access/session-service/domain/errors"
	httptransport "skvote/contexts/identity-access/session-service/transport/http"
)

func seedLoginAccount(t *testing.T, module session.Module, email string, password string, roles ...string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	module.Store.SeedCredential(entities.Credential{
		AccountID:    "acct-1",
		Email:        email,
		Name:         "Juan Dela Cruz",
		PasswordHash: string(hash),
	}, roles...)
}

func TestLoginIssuesTokenWithRoles(t *testing.T) {
	module := session.NewInMemoryModule("test-secret", testLogger())
	seedLoginAccount(t, module, "juan@example.com", "correct-horse", "voter")
	ctx := context.Background()

	resp, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Email:    "juan@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected a session token")
	}
	if resp.AccountID != "acct-1" {
		t.Fatalf("unexpected account id %s", resp.AccountID)
	}
	if len(resp.Roles) != 1 || resp.Roles[0] != "voter" {
		t.Fatalf("expected voter role on session, got %v", resp.Roles)
	}
	if resp.ExpiresAt.IsZero() {
		t.Fatalf("expected expiry set")
	}
}

func TestLoginNormalizesEmailCase(t *testing.T) {
	module := session.NewInMemoryModule("test-secret", testLogger())
	seedLoginAccount(t, module, "Juan@Example.com", "correct-horse")
	ctx := context.Background()

	if _, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Email:    "  JUAN@EXAMPLE.COM ",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("expected case-insensitive email match, got %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	module := session.NewInMemoryModule("test-secret", testLogger())
	seedLoginAccount(t, module, "juan@example.com", "correct-horse")
	ctx := context.Background()

	_, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Email:    "juan@example.com",
		Password: "wrong-horse",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	module := session.NewInMemoryModule("test-secret", testLogger())
	ctx := context.Background()

	_, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown account, got %v", err)
	}
}

func TestResolveIdentityRoundTrip(t *testing.T) {
	module := session.NewInMemoryModule("test-secret", testLogger())
	seedLoginAccount(t, module, "juan@example.com", "correct-horse", "voter", "candidate")
	ctx := context.Background()

	resp, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Email:    "juan@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	identity := module.Handler.ResolveIdentity(ctx, resp.Token)
	if identity.IsAnonymous() {
		t.Fatalf("expected resolved identity for fresh token")
	}
	if identity.AccountID != "acct-1" {
		t.Fatalf("unexpected account id %s", identity.AccountID)
	}
	if len(identity.Roles) != 2 {
		t.Fatalf("expected roles carried in token, got %v", identity.Roles)
	}
}

func TestResolveIdentityRejectsTamperedToken(t *testing.T) {
	module := session.NewInMemoryModule("test-secret", testLogger())
	seedLoginAccount(t, module, "juan@example.com", "correct-horse", "voter")
	ctx := context.Background()

	resp, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Email:    "juan@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	identity := module.Handler.ResolveIdentity(ctx, resp.Token+"x")
	if !identity.IsAnonymous() {
		t.Fatalf("expected anonymous identity for tampered token")
	}
}

func TestResolveIdentityRejectsForeignSecret(t *testing.T) {
	issuer := session.NewInMemoryModule("secret-a", testLogger())
	verifier := session.NewInMemoryModule("secret-b", testLogger())
	seedLoginAccount(t, issuer, "juan@example.com", "correct-horse", "voter")
	ctx := context.Background()

	resp, err := issuer.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Email:    "juan@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	identity := verifier.Handler.ResolveIdentity(ctx, resp.Token)
	if !identity.IsAnonymous() {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}
