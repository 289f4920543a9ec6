package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"skvote/contexts/election-operations/election-settings/application"
	"skvote/contexts/election-operations/election-settings/domain/entities"
	domainerrors "skvote/contexts/election-operations/election-settings/domain/errors"
	httptransport "skvote/contexts/election-operations/election-settings/transport/http"
)

type Handler struct {
	Settings application.Service
	Logger   *slog.Logger
}

func (h Handler) GetHandler(ctx context.Context) (httptransport.SettingsResponse, error) {
	settings, err := h.Settings.Get(ctx)
	if err != nil {
		return httptransport.SettingsResponse{}, err
	}
	return toResponse(settings), nil
}

func (h Handler) UpsertHandler(ctx context.Context, actorID string, req httptransport.SettingsPayload) (httptransport.SettingsResponse, error) {
	registrationStart, err := parseTime(req.RegistrationStart)
	if err != nil {
		return httptransport.SettingsResponse{}, err
	}
	registrationEnd, err := parseTime(req.RegistrationEnd)
	if err != nil {
		return httptransport.SettingsResponse{}, err
	}
	votingStart, err := parseTime(req.VotingStart)
	if err != nil {
		return httptransport.SettingsResponse{}, err
	}
	votingEnd, err := parseTime(req.VotingEnd)
	if err != nil {
		return httptransport.SettingsResponse{}, err
	}
	settings, err := h.Settings.Upsert(ctx, application.UpsertSettingsCommand{
		ActorID:            actorID,
		RegistrationStart:  registrationStart,
		RegistrationEnd:    registrationEnd,
		VotingStart:        votingStart,
		VotingEnd:          votingEnd,
		EnableRegistration: req.EnableRegistration,
		EnableVoting:       req.EnableVoting,
		ShowResults:        req.ShowResults,
	})
	if err != nil {
		return httptransport.SettingsResponse{}, err
	}
	return toResponse(settings), nil
}

func parseTime(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, domainerrors.ErrInvalidRequest
	}
	parsed = parsed.UTC()
	return &parsed, nil
}

func toResponse(settings entities.Settings) httptransport.SettingsResponse {
	response := httptransport.SettingsResponse{
		SettingsPayload: httptransport.SettingsPayload{
			RegistrationStart:  formatTime(settings.RegistrationStart),
			RegistrationEnd:    formatTime(settings.RegistrationEnd),
			VotingStart:        formatTime(settings.VotingStart),
			VotingEnd:          formatTime(settings.VotingEnd),
			EnableRegistration: settings.EnableRegistration,
			EnableVoting:       settings.EnableVoting,
			ShowResults:        settings.ShowResults,
		},
		UpdatedBy: settings.UpdatedBy,
	}
	if !settings.UpdatedAt.IsZero() {
		response.UpdatedAt = settings.UpdatedAt.Format(time.RFC3339)
	}
	return response
}

func formatTime(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.Format(time.RFC3339)
	return &formatted
}
