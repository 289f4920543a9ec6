package unit

import (
	"context"
	"errors"
	"testing"

	authorization "skvote/contexts/identity-access/authorization-service"
	domainerrors "skvote/contexts/identity-access/authorization-service/domain/errors"
	httptransport "skvote/contexts/identity-access/authorization-service/transport/http"
)

func TestCheckPermissionGrantedThroughRole(t *testing.T) {
	module := authorization.NewInMemoryModule(testLogger())
	module.Store.SeedRoles("acct-1", "voter")
	ctx := context.Background()

	resp, err := module.Handler.CheckPermissionHandler(ctx, "acct-1", httptransport.CheckPermissionRequest{
		Permission: "cast:vote",
	})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !resp.Allowed {
		t.Fatalf("expected voter role to grant cast:vote, reason: %s", resp.Reason)
	}
	if resp.AccountID != "acct-1" {
		t.Fatalf("expected caller account to be checked, got %s", resp.AccountID)
	}
}

func TestCheckPermissionDeniedWithoutRole(t *testing.T) {
	module := authorization.NewInMemoryModule(testLogger())
	module.Store.SeedRoles("acct-1", "voter")
	ctx := context.Background()

	resp, err := module.Handler.CheckPermissionHandler(ctx, "acct-1", httptransport.CheckPermissionRequest{
		Permission: "manage:election_settings",
	})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if resp.Allowed {
		t.Fatalf("expected voter to lack admin permission")
	}
}

func TestCheckPermissionRejectsBlankPermission(t *testing.T) {
	module := authorization.NewInMemoryModule(testLogger())
	ctx := context.Background()

	_, err := module.Handler.CheckPermissionHandler(ctx, "acct-1", httptransport.CheckPermissionRequest{
		Permission: "   ",
	})
	if !errors.Is(err, domainerrors.ErrInvalidPermission) {
		t.Fatalf("expected ErrInvalidPermission, got %v", err)
	}
}

func TestGrantRoleRequiresManageAllUsers(t *testing.T) {
	module := authorization.NewInMemoryModule(testLogger())
	module.Store.SeedRoles("officer-1", "election_officer")
	ctx := context.Background()

	_, err := module.Handler.GrantRoleHandler(ctx, "officer-1", "acct-2", httptransport.GrantRoleRequest{
		RoleName: "voter",
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-admin actor, got %v", err)
	}
}

func TestGrantRoleAndListRoles(t *testing.T) {
	module := authorization.NewInMemoryModule(testLogger())
	module.Store.SeedRoles("admin-1", "administrator")
	ctx := context.Background()

	resp, err := module.Handler.GrantRoleHandler(ctx, "admin-1", "acct-2", httptransport.GrantRoleRequest{
		RoleName: "voter",
	})
	if err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if !resp.Success || resp.RoleName != "voter" {
		t.Fatalf("unexpected grant response: %+v", resp)
	}

	roles, err := module.Handler.ListAccountRolesHandler(ctx, "acct-2")
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	if len(roles.Roles) != 1 || roles.Roles[0] != "voter" {
		t.Fatalf("expected single voter role, got %v", roles.Roles)
	}
	found := false
	for _, p := range roles.Permissions {
		if p == "cast:vote" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected cast:vote in effective permissions, got %v", roles.Permissions)
	}
}

func TestGrantRoleRejectsDuplicateAssignment(t *testing.T) {
	module := authorization.NewInMemoryModule(testLogger())
	module.Store.SeedRoles("admin-1", "administrator")
	module.Store.SeedRoles("acct-2", "voter")
	ctx := context.Background()

	_, err := module.Handler.GrantRoleHandler(ctx, "admin-1", "acct-2", httptransport.GrantRoleRequest{
		RoleName: "voter",
	})
	if !errors.Is(err, domainerrors.ErrRoleAlreadyAssigned) {
		t.Fatalf("expected ErrRoleAlreadyAssigned, got %v", err)
	}
}

func TestGrantRoleRejectsUnknownRole(t *testing.T) {
	module := authorization.NewInMemoryModule(testLogger())
	module.Store.SeedRoles("admin-1", "administrator")
	ctx := context.Background()

	_, err := module.Handler.GrantRoleHandler(ctx, "admin-1", "acct-2", httptransport.GrantRoleRequest{
		RoleName: "super_user",
	})
	if !errors.Is(err, domainerrors.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound for non-catalog role, got %v", err)
	}
}

func TestRevokeRoleRemovesPermissions(t *testing.T) {
	module := authorization.NewInMemoryModule(testLogger())
	module.Store.SeedRoles("admin-1", "administrator")
	module.Store.SeedRoles("acct-2", "voter")
	ctx := context.Background()

	if _, err := module.Handler.RevokeRoleHandler(ctx, "admin-1", "acct-2", httptransport.RevokeRoleRequest{
		RoleName: "voter",
	}); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	check, err := module.Handler.CheckPermissionHandler(ctx, "acct-2", httptransport.CheckPermissionRequest{
		Permission: "cast:vote",
	})
	if err != nil {
		t.Fatalf("check after revoke failed: %v", err)
	}
	if check.Allowed {
		t.Fatalf("expected cast:vote denied after role revocation")
	}
}

func TestRevokeRoleNotAssigned(t *testing.T) {
	module := authorization.NewInMemoryModule(testLogger())
	module.Store.SeedRoles("admin-1", "administrator")
	ctx := context.Background()

	_, err := module.Handler.RevokeRoleHandler(ctx, "admin-1", "acct-2", httptransport.RevokeRoleRequest{
		RoleName: "voter",
	})
	if !errors.Is(err, domainerrors.ErrRoleNotAssigned) {
		t.Fatalf("expected ErrRoleNotAssigned, got %v", err)
	}
}

func TestRoleMutationsAreAudited(t *testing.T) {
	module := authorization.NewInMemoryModule(testLogger())
	module.Store.SeedRoles("admin-1", "administrator")
	ctx := context.Background()

	if _, err := module.Handler.GrantRoleHandler(ctx, "admin-1", "acct-2", httptransport.GrantRoleRequest{
		RoleName: "auditor",
	}); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	entries := module.Store.AuditEntries()
	if len(entries) == 0 {
		t.Fatalf("expected audit entry for role grant")
	}
	last := entries[len(entries)-1]
	if last.ActorID != "admin-1" || last.Action != "role_granted" {
		t.Fatalf("unexpected audit entry: %+v", last)
	}
}
