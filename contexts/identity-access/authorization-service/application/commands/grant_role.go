package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "skvote/contexts/identity-access/authorization-service/application"
	domainerrors "skvote/contexts/identity-access/authorization-service/domain/errors"
	"skvote/contexts/identity-access/authorization-service/domain/services"
	"skvote/contexts/identity-access/authorization-service/ports"
)

// GrantRoleCommand assigns a catalog role to an account.
type GrantRoleCommand struct {
	ActorID   string
	AccountID string
	RoleName  string
}

// RevokeRoleCommand removes a role assignment from an account.
type RevokeRoleCommand struct {
	ActorID   string
	AccountID string
	RoleName  string
}

// RoleUseCase orchestrates role assignment for the administrator management
// surface. Every mutation requires manage:all_users and is audited.
type RoleUseCase struct {
	Repository ports.Repository
	Audit      ports.AuditSink
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (uc RoleUseCase) GrantRole(ctx context.Context, cmd GrantRoleCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	roleName := strings.ToLower(strings.TrimSpace(cmd.RoleName))
	if accountID == "" {
		return domainerrors.ErrInvalidAccountID
	}
	if _, ok := services.CatalogRole(roleName); !ok {
		return domainerrors.ErrRoleNotFound
	}
	if err := uc.requireActorPermission(ctx, cmd.ActorID, "manage:all_users"); err != nil {
		logger.Warn("role grant denied",
			"event", "authz_role_grant_denied",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"actor_id", strings.TrimSpace(cmd.ActorID),
			"account_id", accountID,
			"role_name", roleName,
		)
		return err
	}

	now := uc.now()
	if err := uc.Repository.GrantRole(ctx, accountID, roleName, now); err != nil {
		return err
	}
	if err := uc.appendAudit(ctx, cmd.ActorID, "role_granted",
		fmt.Sprintf("role %s granted to account %s", roleName, accountID), now); err != nil {
		return err
	}
	logger.Info("role granted",
		"event", "authz_role_granted",
		"module", "identity-access/authorization-service",
		"layer", "application",
		"actor_id", strings.TrimSpace(cmd.ActorID),
		"account_id", accountID,
		"role_name", roleName,
	)
	return nil
}

func (uc RoleUseCase) RevokeRole(ctx context.Context, cmd RevokeRoleCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	roleName := strings.ToLower(strings.TrimSpace(cmd.RoleName))
	if accountID == "" {
		return domainerrors.ErrInvalidAccountID
	}
	if roleName == "" {
		return domainerrors.ErrInvalidRoleName
	}
	if err := uc.requireActorPermission(ctx, cmd.ActorID, "manage:all_users"); err != nil {
		logger.Warn("role revoke denied",
			"event", "authz_role_revoke_denied",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"actor_id", strings.TrimSpace(cmd.ActorID),
			"account_id", accountID,
			"role_name", roleName,
		)
		return err
	}

	now := uc.now()
	if err := uc.Repository.RevokeRole(ctx, accountID, roleName); err != nil {
		return err
	}
	if err := uc.appendAudit(ctx, cmd.ActorID, "role_revoked",
		fmt.Sprintf("role %s revoked from account %s", roleName, accountID), now); err != nil {
		return err
	}
	logger.Info("role revoked",
		"event", "authz_role_revoked",
		"module", "identity-access/authorization-service",
		"layer", "application",
		"actor_id", strings.TrimSpace(cmd.ActorID),
		"account_id", accountID,
		"role_name", roleName,
	)
	return nil
}

func (uc RoleUseCase) requireActorPermission(ctx context.Context, actorID string, permission string) error {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return domainerrors.ErrUnauthorized
	}
	permissions, err := uc.Repository.ListEffectivePermissions(ctx, actorID)
	if err != nil {
		return domainerrors.ErrUnauthorized
	}
	if !services.GrantsPermission(permissions, permission) {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

func (uc RoleUseCase) appendAudit(ctx context.Context, actorID string, action string, detail string, now time.Time) error {
	if uc.Audit == nil {
		return nil
	}
	return uc.Audit.Append(ctx, ports.AuditEntry{
		ActorID:    strings.TrimSpace(actorID),
		Action:     action,
		Detail:     detail,
		OccurredAt: now,
	})
}

func (uc RoleUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
