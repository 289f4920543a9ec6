package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"skvote/contexts/identity-access/registration-service/domain/entities"
	domainerrors "skvote/contexts/identity-access/registration-service/domain/errors"
	"skvote/contexts/identity-access/registration-service/ports"
)

// DocumentUpload is one side of the applicant's ID document.
type DocumentUpload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

type RegisterCommand struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
	BirthDate   time.Time
	Address     string
	City        string
	Province    string
	Barangay    string
	IDType      string
	IDFront     *DocumentUpload
	IDBack      *DocumentUpload
}

type RegisterResult struct {
	AccountID          string
	VerificationStatus entities.VerificationStatus
}

type Service struct {
	Accounts  ports.AccountRepository
	Documents ports.DocumentStore
	Gate      ports.RegistrationGate
	Audit     ports.AuditSink
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// Register creates a pending account with the default voter role.
func (s Service) Register(ctx context.Context, cmd RegisterCommand) (RegisterResult, error) {
	logger := resolveLogger(s.Logger)
	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	if strings.TrimSpace(cmd.FirstName) == "" ||
		strings.TrimSpace(cmd.LastName) == "" ||
		email == "" ||
		cmd.Password == "" ||
		strings.TrimSpace(cmd.Barangay) == "" ||
		strings.TrimSpace(cmd.IDType) == "" ||
		cmd.BirthDate.IsZero() {
		return RegisterResult{}, domainerrors.ErrInvalidRequest
	}
	if cmd.IDFront == nil || cmd.IDBack == nil {
		return RegisterResult{}, domainerrors.ErrMissingDocument
	}

	now := s.now()
	// Gate is nil in wirings that never close registration.
	if s.Gate != nil {
		open, err := s.Gate.RegistrationOpen(ctx, now)
		if err != nil {
			return RegisterResult{}, err
		}
		if !open {
			return RegisterResult{}, domainerrors.ErrRegistrationClosed
		}
	}
	age := entities.AgeAt(cmd.BirthDate, now)
	if !entities.Eligible(age) {
		logger.Warn("registration rejected on age",
			"event", "registration_age_rejected",
			"module", "identity-access/registration-service",
			"layer", "application",
			"age", age,
		)
		return RegisterResult{}, domainerrors.ErrNotEligible
	}

	// Fast duplicate check; the unique constraint still decides races.
	if exists, err := s.Accounts.EmailExists(ctx, email); err != nil {
		return RegisterResult{}, err
	} else if exists {
		return RegisterResult{}, domainerrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterResult{}, err
	}

	accountID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return RegisterResult{}, err
	}

	frontRef, err := s.Documents.StoreDocument(ctx,
		fmt.Sprintf("ids/%s/front", accountID), cmd.IDFront.ContentType, cmd.IDFront.Body)
	if err != nil {
		return RegisterResult{}, err
	}
	backRef, err := s.Documents.StoreDocument(ctx,
		fmt.Sprintf("ids/%s/back", accountID), cmd.IDBack.ContentType, cmd.IDBack.Body)
	if err != nil {
		return RegisterResult{}, err
	}

	account := entities.Account{
		AccountID:          accountID,
		Name:               strings.TrimSpace(cmd.FirstName) + " " + strings.TrimSpace(cmd.LastName),
		Email:              email,
		PasswordHash:       string(hash),
		PhoneNumber:        strings.TrimSpace(cmd.PhoneNumber),
		BirthDate:          cmd.BirthDate,
		Address:            strings.TrimSpace(cmd.Address),
		City:               strings.TrimSpace(cmd.City),
		Province:           strings.TrimSpace(cmd.Province),
		Barangay:           strings.TrimSpace(cmd.Barangay),
		IDType:             strings.TrimSpace(cmd.IDType),
		IDFrontRef:         frontRef,
		IDBackRef:          backRef,
		VerificationStatus: entities.VerificationStatusPending,
		HasVoted:           false,
		CreatedAt:          now,
	}
	if err := s.Accounts.CreateAccount(ctx, account, "voter"); err != nil {
		return RegisterResult{}, err
	}

	if s.Audit != nil {
		if err := s.Audit.Append(ctx, ports.AuditEntry{
			ActorID:    accountID,
			Action:     "account_registered",
			Detail:     fmt.Sprintf("account %s registered in %s, %s", accountID, account.Barangay, account.City),
			OccurredAt: now,
		}); err != nil {
			return RegisterResult{}, err
		}
	}

	logger.Info("account registered",
		"event", "registration_account_created",
		"module", "identity-access/registration-service",
		"layer", "application",
		"account_id", accountID,
		"barangay", account.Barangay,
	)
	return RegisterResult{
		AccountID:          accountID,
		VerificationStatus: account.VerificationStatus,
	}, nil
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
