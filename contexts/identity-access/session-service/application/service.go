package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"skvote/contexts/identity-access/session-service/domain/entities"
	domainerrors "skvote/contexts/identity-access/session-service/domain/errors"
	"skvote/contexts/identity-access/session-service/ports"
)

type Service struct {
	Credentials ports.CredentialReader
	Tokens      ports.TokenCodec
	Audit       ports.AuditSink
	Clock       ports.Clock
	SessionTTL  time.Duration
	Logger      *slog.Logger
}

// Login verifies the credential pair and issues a session token.
// Credential mismatches and unknown emails are indistinguishable to callers.
func (s Service) Login(ctx context.Context, email string, password string) (entities.Session, error) {
	logger := resolveLogger(s.Logger)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return entities.Session{}, domainerrors.ErrInvalidRequest
	}

	credential, found, err := s.Credentials.GetCredentialByEmail(ctx, email)
	if err != nil {
		return entities.Session{}, err
	}
	if !found {
		logger.Warn("login rejected",
			"event", "session_login_unknown_email",
			"module", "identity-access/session-service",
			"layer", "application",
		)
		return entities.Session{}, domainerrors.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)) != nil {
		logger.Warn("login rejected",
			"event", "session_login_bad_password",
			"module", "identity-access/session-service",
			"layer", "application",
			"account_id", credential.AccountID,
		)
		return entities.Session{}, domainerrors.ErrInvalidCredentials
	}

	now := s.now()
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	token, err := s.Tokens.Issue(credential.AccountID, now, ttl)
	if err != nil {
		return entities.Session{}, err
	}
	roles, err := s.Credentials.ListRoleNames(ctx, credential.AccountID)
	if err != nil {
		return entities.Session{}, err
	}
	if s.Audit != nil {
		if err := s.Audit.Append(ctx, ports.AuditEntry{
			ActorID:    credential.AccountID,
			Action:     "login",
			Detail:     "session issued",
			OccurredAt: now,
		}); err != nil {
			return entities.Session{}, err
		}
	}
	logger.Info("session issued",
		"event", "session_login_succeeded",
		"module", "identity-access/session-service",
		"layer", "application",
		"account_id", credential.AccountID,
	)
	return entities.Session{
		Token:     token,
		AccountID: credential.AccountID,
		Name:      credential.Name,
		Roles:     roles,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// Resolve maps a bearer token to the caller's identity. Missing, malformed,
// or expired tokens resolve to the anonymous identity, never an error.
func (s Service) Resolve(ctx context.Context, token string) entities.Identity {
	logger := resolveLogger(s.Logger)
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.Anonymous()
	}
	accountID, err := s.Tokens.Verify(token)
	if err != nil {
		logger.Debug("token rejected, resolving anonymous",
			"event", "session_resolve_anonymous",
			"module", "identity-access/session-service",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Anonymous()
	}
	roles, err := s.Credentials.ListRoleNames(ctx, accountID)
	if err != nil {
		logger.Warn("role lookup failed, resolving anonymous",
			"event", "session_resolve_role_lookup_failed",
			"module", "identity-access/session-service",
			"layer", "application",
			"account_id", accountID,
			"error", err.Error(),
		)
		return entities.Anonymous()
	}
	return entities.Identity{AccountID: accountID, Roles: roles}
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
