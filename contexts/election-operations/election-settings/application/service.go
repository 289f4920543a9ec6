package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"skvote/contexts/election-operations/election-settings/domain/entities"
	domainerrors "skvote/contexts/election-operations/election-settings/domain/errors"
	"skvote/contexts/election-operations/election-settings/ports"
)

type UpsertSettingsCommand struct {
	ActorID            string
	RegistrationStart  *time.Time
	RegistrationEnd    *time.Time
	VotingStart        *time.Time
	VotingEnd          *time.Time
	EnableRegistration bool
	EnableVoting       bool
	ShowResults        bool
}

type Service struct {
	Settings ports.SettingsRepository
	Authz    ports.Authorizer
	Audit    ports.AuditSink
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Get returns the saved record, or the defaults when nothing has been saved.
func (s Service) Get(ctx context.Context) (entities.Settings, error) {
	settings, err := s.Settings.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrSettingsNotFound) {
			return entities.Defaults(), nil
		}
		return entities.Settings{}, err
	}
	return settings, nil
}

func (s Service) Upsert(ctx context.Context, cmd UpsertSettingsCommand) (entities.Settings, error) {
	logger := resolveLogger(s.Logger)
	actorID := strings.TrimSpace(cmd.ActorID)
	allowed, err := s.Authz.HasPermission(ctx, actorID, "manage:election_settings")
	if err != nil || !allowed {
		return entities.Settings{}, domainerrors.ErrUnauthorized
	}
	if invalidWindow(cmd.RegistrationStart, cmd.RegistrationEnd) ||
		invalidWindow(cmd.VotingStart, cmd.VotingEnd) {
		return entities.Settings{}, domainerrors.ErrInvalidWindow
	}

	now := s.now()
	settings := entities.Settings{
		RegistrationStart:  cmd.RegistrationStart,
		RegistrationEnd:    cmd.RegistrationEnd,
		VotingStart:        cmd.VotingStart,
		VotingEnd:          cmd.VotingEnd,
		EnableRegistration: cmd.EnableRegistration,
		EnableVoting:       cmd.EnableVoting,
		ShowResults:        cmd.ShowResults,
		UpdatedBy:          actorID,
		UpdatedAt:          now,
	}
	if err := s.Settings.SaveSettings(ctx, settings); err != nil {
		return entities.Settings{}, err
	}
	if s.Audit != nil {
		if err := s.Audit.Append(ctx, ports.AuditEntry{
			ActorID: actorID,
			Action:  "election_settings_updated",
			Detail: fmt.Sprintf("voting=%t registration=%t results=%t",
				settings.EnableVoting, settings.EnableRegistration, settings.ShowResults),
			OccurredAt: now,
		}); err != nil {
			return entities.Settings{}, err
		}
	}
	logger.Info("election settings saved",
		"event", "election_settings_saved",
		"module", "election-operations/election-settings",
		"layer", "application",
		"actor_id", actorID,
		"enable_voting", settings.EnableVoting,
		"show_results", settings.ShowResults,
	)
	return settings, nil
}

// VotingOpen implements the gate the voting engine consults.
func (s Service) VotingOpen(ctx context.Context, now time.Time) (bool, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return settings.VotingOpen(now), nil
}

// RegistrationOpen implements the gate the registration service consults.
func (s Service) RegistrationOpen(ctx context.Context, now time.Time) (bool, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return settings.RegistrationOpen(now), nil
}

func (s Service) ResultsVisible(ctx context.Context) (bool, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return settings.ShowResults, nil
}

func invalidWindow(start *time.Time, end *time.Time) bool {
	return start != nil && end != nil && end.Before(*start)
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
