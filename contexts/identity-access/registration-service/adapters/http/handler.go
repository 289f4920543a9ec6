package httpadapter

import (
	"context"
	"log/slog"

	"skvote/contexts/identity-access/registration-service/application"
	httptransport "skvote/contexts/identity-access/registration-service/transport/http"
)

type Handler struct {
	Registrations application.Service
	Logger        *slog.Logger
}

func (h Handler) RegisterHandler(ctx context.Context, cmd application.RegisterCommand) (httptransport.RegisterResponse, error) {
	result, err := h.Registrations.Register(ctx, cmd)
	if err != nil {
		return httptransport.RegisterResponse{}, err
	}
	return httptransport.RegisterResponse{
		Success:            true,
		AccountID:          result.AccountID,
		VerificationStatus: string(result.VerificationStatus),
	}, nil
}
