package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "skvote/contexts/identity-access/authorization-service/application"
	"skvote/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "skvote/contexts/identity-access/authorization-service/domain/errors"
	"skvote/contexts/identity-access/authorization-service/domain/services"
	"skvote/contexts/identity-access/authorization-service/ports"
)

// CheckPermissionQuery is the request model for single-permission evaluation.
type CheckPermissionQuery struct {
	AccountID  string
	Permission string
}

// CheckPermissionUseCase evaluates permissions against the account's role set.
// Anonymous callers (empty account id) are denied without error so transports
// uniformly route to Unauthorized.
type CheckPermissionUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute evaluates a permission and returns deny-by-default on lookup failure.
func (u CheckPermissionUseCase) Execute(ctx context.Context, query CheckPermissionQuery) (entities.PermissionDecision, error) {
	if strings.TrimSpace(query.Permission) == "" {
		return entities.PermissionDecision{}, domainerrors.ErrInvalidPermission
	}

	logger := application.ResolveLogger(u.Logger)
	now := u.now()

	accountID := strings.TrimSpace(query.AccountID)
	if accountID == "" {
		return entities.PermissionDecision{
			Permission: query.Permission,
			Allowed:    false,
			Reason:     "anonymous_caller",
			CheckedAt:  now,
		}, nil
	}

	permissions, err := u.Repository.ListEffectivePermissions(ctx, accountID)
	if err != nil {
		logger.Error("permission lookup failed, deny by default",
			"event", "authz_permission_lookup_failed",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"account_id", accountID,
			"permission", query.Permission,
			"error", err.Error(),
		)
		return entities.PermissionDecision{
			AccountID:  accountID,
			Permission: query.Permission,
			Allowed:    false,
			Reason:     "deny_by_default",
			CheckedAt:  now,
		}, nil
	}

	allowed := services.GrantsPermission(permissions, query.Permission)
	reason := "permission_granted"
	if !allowed {
		reason = "permission_missing"
		logger.Warn("check permission denied",
			"event", "authz_check_denied",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"account_id", accountID,
			"permission", query.Permission,
		)
	}

	return entities.PermissionDecision{
		AccountID:  accountID,
		Permission: query.Permission,
		Allowed:    allowed,
		Reason:     reason,
		CheckedAt:  now,
	}, nil
}

func (u CheckPermissionUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
