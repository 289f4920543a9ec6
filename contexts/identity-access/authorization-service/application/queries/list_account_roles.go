package queries

import (
	"context"
	"strings"

	domainerrors "skvote/contexts/identity-access/authorization-service/domain/errors"
	"skvote/contexts/identity-access/authorization-service/domain/services"
	"skvote/contexts/identity-access/authorization-service/ports"
)

// ListAccountRolesUseCase resolves the role set and the effective permission
// union for one account.
type ListAccountRolesUseCase struct {
	Repository ports.Repository
}

type AccountRoles struct {
	AccountID   string
	Roles       []string
	Permissions []string
}

func (u ListAccountRolesUseCase) Execute(ctx context.Context, accountID string) (AccountRoles, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return AccountRoles{}, domainerrors.ErrInvalidAccountID
	}

	roles, err := u.Repository.ListAccountRoles(ctx, accountID)
	if err != nil {
		return AccountRoles{}, err
	}

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.RoleName)
	}
	return AccountRoles{
		AccountID:   accountID,
		Roles:       names,
		Permissions: services.EffectivePermissions(roles),
	}, nil
}
