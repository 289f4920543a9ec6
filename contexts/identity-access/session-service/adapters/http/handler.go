package httpadapter

import (
	"context"
	"log/slog"

	"skvote/contexts/identity-access/session-service/application"
	"skvote/contexts/identity-access/session-service/domain/entities"
	httptransport "skvote/contexts/identity-access/session-service/transport/http"
)

type Handler struct {
	Sessions application.Service
	Logger   *slog.Logger
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	session, err := h.Sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{
		Token:     session.Token,
		AccountID: session.AccountID,
		Name:      session.Name,
		Roles:     session.Roles,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// ResolveIdentity is called once per request at the HTTP boundary.
func (h Handler) ResolveIdentity(ctx context.Context, bearerToken string) entities.Identity {
	return h.Sessions.Resolve(ctx, bearerToken)
}
