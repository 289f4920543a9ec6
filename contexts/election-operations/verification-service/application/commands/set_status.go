package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "skvote/contexts/election-operations/verification-service/application"
	"skvote/contexts/election-operations/verification-service/domain/entities"
	domainerrors "skvote/contexts/election-operations/verification-service/domain/errors"
	"skvote/contexts/election-operations/verification-service/domain/services"
	"skvote/contexts/election-operations/verification-service/ports"
	"skvote/internal/shared/events"
)

// OpenReviewCommand moves a pending record into verifying when an election
// officer opens it.
type OpenReviewCommand struct {
	ActorID   string
	AccountID string
}

// SetStatusCommand commits a terminal verification decision.
type SetStatusCommand struct {
	ActorID   string
	AccountID string
	Status    entities.Status
	Reason    string
}

// VerificationUseCase orchestrates officer-driven verification transitions:
// permission guard, eligibility check, guarded state update, audit, and
// outbox notification.
type VerificationUseCase struct {
	Voters ports.VoterRepository
	Authz  ports.Authorizer
	Audit  ports.AuditSink
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc VerificationUseCase) OpenReview(ctx context.Context, cmd OpenReviewCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	if accountID == "" {
		return domainerrors.ErrInvalidRequest
	}
	if err := uc.requirePermission(ctx, cmd.ActorID, "verify:voters"); err != nil {
		logger.Warn("open review denied",
			"event", "verification_open_review_denied",
			"module", "election-operations/verification-service",
			"layer", "application",
			"actor_id", strings.TrimSpace(cmd.ActorID),
			"account_id", accountID,
		)
		return err
	}

	voter, err := uc.Voters.GetVoter(ctx, accountID)
	if err != nil {
		return err
	}
	if !services.CanTransition(voter.Status, entities.StatusVerifying) {
		return domainerrors.ErrInvalidStateTransition
	}

	now := uc.now()
	if err := uc.Voters.UpdateStatusFrom(ctx, accountID,
		services.AllowedFrom(entities.StatusVerifying), entities.StatusVerifying, "", now); err != nil {
		return err
	}
	if err := uc.appendAudit(ctx, cmd.ActorID, "verification_review_opened",
		fmt.Sprintf("review opened for account %s", accountID), now); err != nil {
		return err
	}
	logger.Info("verification review opened",
		"event", "verification_review_opened",
		"module", "election-operations/verification-service",
		"layer", "application",
		"actor_id", strings.TrimSpace(cmd.ActorID),
		"account_id", accountID,
	)
	return nil
}

func (uc VerificationUseCase) SetStatus(ctx context.Context, cmd SetStatusCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	if accountID == "" {
		return domainerrors.ErrInvalidRequest
	}
	if cmd.Status != entities.StatusVerified && cmd.Status != entities.StatusRejected {
		return domainerrors.ErrInvalidRequest
	}
	if err := uc.requirePermission(ctx, cmd.ActorID, "verify:voters"); err != nil {
		logger.Warn("status change denied",
			"event", "verification_set_status_denied",
			"module", "election-operations/verification-service",
			"layer", "application",
			"actor_id", strings.TrimSpace(cmd.ActorID),
			"account_id", accountID,
			"target_status", string(cmd.Status),
		)
		return err
	}

	voter, err := uc.Voters.GetVoter(ctx, accountID)
	if err != nil {
		return err
	}
	if !services.CanTransition(voter.Status, cmd.Status) {
		return domainerrors.ErrInvalidStateTransition
	}

	now := uc.now()
	if cmd.Status == entities.StatusVerified {
		if age := voter.Age(now); !entities.AgeEligible(age) {
			logger.Warn("verification rejected on age",
				"event", "verification_age_ineligible",
				"module", "election-operations/verification-service",
				"layer", "application",
				"account_id", accountID,
				"age", age,
			)
			return domainerrors.ErrNotEligible
		}
	}

	reason := strings.TrimSpace(cmd.Reason)
	// The guarded update decides concurrent verify/reject races.
	if err := uc.Voters.UpdateStatusFrom(ctx, accountID,
		services.AllowedFrom(cmd.Status), cmd.Status, reason, now); err != nil {
		return err
	}

	// The decision is committed once the guarded update returns. Trail
	// append failures are logged so the officer does not retry into
	// ErrInvalidStateTransition for a status that already stuck.
	if err := uc.appendAudit(ctx, cmd.ActorID, "verification_"+string(cmd.Status),
		fmt.Sprintf("account %s marked %s", accountID, cmd.Status), now); err != nil {
		logger.Error("audit append failed after status commit",
			"event", "verification_audit_failed",
			"module", "election-operations/verification-service",
			"layer", "application",
			"account_id", accountID,
			"status", string(cmd.Status),
			"error", err,
		)
	}
	if err := uc.appendStatusEvent(ctx, voter, cmd.Status, reason, now); err != nil {
		logger.Error("outbox append failed after status commit",
			"event", "verification_outbox_failed",
			"module", "election-operations/verification-service",
			"layer", "application",
			"account_id", accountID,
			"status", string(cmd.Status),
			"error", err,
		)
	}
	logger.Info("verification status committed",
		"event", "verification_status_committed",
		"module", "election-operations/verification-service",
		"layer", "application",
		"actor_id", strings.TrimSpace(cmd.ActorID),
		"account_id", accountID,
		"status", string(cmd.Status),
	)
	return nil
}

func (uc VerificationUseCase) requirePermission(ctx context.Context, actorID string, permission string) error {
	allowed, err := uc.Authz.HasPermission(ctx, strings.TrimSpace(actorID), permission)
	if err != nil || !allowed {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

func (uc VerificationUseCase) appendAudit(ctx context.Context, actorID string, action string, detail string, now time.Time) error {
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

func (uc VerificationUseCase) appendStatusEvent(
	ctx context.Context,
	voter entities.VoterRecord,
	status entities.Status,
	reason string,
	now time.Time,
) error {
	// Outbox is optional for pure read/test wiring, so nil is treated as no-op.
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, events.Envelope{
		EventID:        eventID,
		EventType:      "verification.status_changed",
		SourceService:  "election-operations/verification-service",
		OccurredAtUTC:  now,
		AccountID:      voter.AccountID,
		EntityType:     "account",
		EntityID:       voter.AccountID,
		PayloadVersion: 1,
		Payload: map[string]any{
			"account_id": voter.AccountID,
			"status":     string(status),
			"reason":     reason,
		},
	})
}

func (uc VerificationUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
