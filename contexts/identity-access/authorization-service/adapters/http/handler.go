package httpadapter

import (
	"context"
	"log/slog"
	"strings"

	"skvote/contexts/identity-access/authorization-service/application/commands"
	"skvote/contexts/identity-access/authorization-service/application/queries"
	httptransport "skvote/contexts/identity-access/authorization-service/transport/http"
)

type Handler struct {
	Check  queries.CheckPermissionUseCase
	Roles  queries.ListAccountRolesUseCase
	Mutate commands.RoleUseCase
	Logger *slog.Logger
}

func (h Handler) CheckPermissionHandler(
	ctx context.Context,
	callerID string,
	req httptransport.CheckPermissionRequest,
) (httptransport.CheckPermissionResponse, error) {
	accountID := strings.TrimSpace(req.AccountID)
	if accountID == "" {
		accountID = callerID
	}
	decision, err := h.Check.Execute(ctx, queries.CheckPermissionQuery{
		AccountID:  accountID,
		Permission: req.Permission,
	})
	if err != nil {
		return httptransport.CheckPermissionResponse{}, err
	}
	return httptransport.CheckPermissionResponse{
		AccountID:  decision.AccountID,
		Permission: decision.Permission,
		Allowed:    decision.Allowed,
		Reason:     decision.Reason,
	}, nil
}

func (h Handler) ListAccountRolesHandler(ctx context.Context, accountID string) (httptransport.AccountRolesResponse, error) {
	result, err := h.Roles.Execute(ctx, accountID)
	if err != nil {
		return httptransport.AccountRolesResponse{}, err
	}
	return httptransport.AccountRolesResponse{
		AccountID:   result.AccountID,
		Roles:       result.Roles,
		Permissions: result.Permissions,
	}, nil
}

func (h Handler) GrantRoleHandler(
	ctx context.Context,
	actorID string,
	accountID string,
	req httptransport.GrantRoleRequest,
) (httptransport.RoleMutationResponse, error) {
	err := h.Mutate.GrantRole(ctx, commands.GrantRoleCommand{
		ActorID:   actorID,
		AccountID: accountID,
		RoleName:  req.RoleName,
	})
	if err != nil {
		return httptransport.RoleMutationResponse{}, err
	}
	return httptransport.RoleMutationResponse{
		AccountID: accountID,
		RoleName:  strings.ToLower(strings.TrimSpace(req.RoleName)),
		Success:   true,
	}, nil
}

func (h Handler) RevokeRoleHandler(
	ctx context.Context,
	actorID string,
	accountID string,
	req httptransport.RevokeRoleRequest,
) (httptransport.RoleMutationResponse, error) {
	err := h.Mutate.RevokeRole(ctx, commands.RevokeRoleCommand{
		ActorID:   actorID,
		AccountID: accountID,
		RoleName:  req.RoleName,
	})
	if err != nil {
		return httptransport.RoleMutationResponse{}, err
	}
	return httptransport.RoleMutationResponse{
		AccountID: accountID,
		RoleName:  strings.ToLower(strings.TrimSpace(req.RoleName)),
		Success:   true,
	}, nil
}
