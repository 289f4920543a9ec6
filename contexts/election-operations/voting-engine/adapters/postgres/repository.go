package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"skvote/contexts/election-operations/voting-engine/domain/entities"
	domainerrors "skvote/contexts/election-operations/voting-engine/domain/errors"
	"skvote/contexts/election-operations/voting-engine/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ballotModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	AccountID   string    `gorm:"column:account_id;uniqueIndex"`
	ReceiptCode string    `gorm:"column:receipt_code"`
	CastAt      time.Time `gorm:"column:cast_at"`
}

func (ballotModel) TableName() string { return "ballots" }

type ballotSelectionModel struct {
	BallotID    string `gorm:"column:ballot_id;primaryKey"`
	CandidateID string `gorm:"column:candidate_id;primaryKey"`
	Position    string `gorm:"column:position"`
}

func (ballotSelectionModel) TableName() string { return "ballot_selections" }

type accountModel struct {
	ID                 string `gorm:"column:id;primaryKey"`
	VerificationStatus string `gorm:"column:verification_status"`
	HasVoted           bool   `gorm:"column:has_voted"`
}

func (accountModel) TableName() string { return "accounts" }

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// CreateBallot writes the ballot, its selections, and flips has_voted in one
// transaction. The unique index on ballots.account_id decides concurrent
// double casts; the loser surfaces ErrAlreadyVoted.
func (r *Repository) CreateBallot(ctx context.Context, ballot entities.Ballot) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := ballotModel{
			ID:          ballot.ID,
			AccountID:   ballot.AccountID,
			ReceiptCode: ballot.ReceiptCode,
			CastAt:      ballot.CastAt,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		selections := make([]ballotSelectionModel, 0, len(ballot.KagawadIDs)+1)
		selections = append(selections, ballotSelectionModel{
			BallotID:    ballot.ID,
			CandidateID: ballot.ChairpersonID,
			Position:    entities.PositionChairperson,
		})
		for _, id := range ballot.KagawadIDs {
			selections = append(selections, ballotSelectionModel{
				BallotID:    ballot.ID,
				CandidateID: id,
				Position:    entities.PositionKagawad,
			})
		}
		if err := tx.Create(&selections).Error; err != nil {
			return err
		}
		return tx.Model(&accountModel{}).
			Where("id = ?", ballot.AccountID).
			Update("has_voted", true).
			Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyVoted
		}
		return r.logError("voting_repo_create_ballot_failed", err, "account_id", ballot.AccountID)
	}
	return nil
}

func (r *Repository) GetBallotByAccount(ctx context.Context, accountID string) (entities.Ballot, error) {
	var row ballotModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Ballot{}, domainerrors.ErrBallotNotFound
		}
		return entities.Ballot{}, r.logError("voting_repo_get_ballot_failed", err, "account_id", accountID)
	}
	var selections []ballotSelectionModel
	if err := r.db.WithContext(ctx).
		Where("ballot_id = ?", row.ID).
		Find(&selections).Error; err != nil {
		return entities.Ballot{}, r.logError("voting_repo_get_selections_failed", err, "ballot_id", row.ID)
	}
	ballot := entities.Ballot{
		ID:          row.ID,
		AccountID:   row.AccountID,
		ReceiptCode: row.ReceiptCode,
		CastAt:      row.CastAt,
	}
	for _, selection := range selections {
		switch selection.Position {
		case entities.PositionChairperson:
			ballot.ChairpersonID = selection.CandidateID
		case entities.PositionKagawad:
			ballot.KagawadIDs = append(ballot.KagawadIDs, selection.CandidateID)
		}
	}
	return ballot, nil
}

func (r *Repository) CountBallots(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ballotModel{}).Count(&total).Error; err != nil {
		return 0, r.logError("voting_repo_count_ballots_failed", err)
	}
	return total, nil
}

func (r *Repository) TallySelections(ctx context.Context) ([]ports.SelectionCount, error) {
	var rows []struct {
		CandidateID string `gorm:"column:candidate_id"`
		Position    string `gorm:"column:position"`
		Votes       int64  `gorm:"column:votes"`
	}
	err := r.db.WithContext(ctx).Model(&ballotSelectionModel{}).
		Select("candidate_id, position, COUNT(*) AS votes").
		Group("candidate_id, position").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("voting_repo_tally_failed", err)
	}
	counts := make([]ports.SelectionCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, ports.SelectionCount{
			CandidateID: row.CandidateID,
			Position:    row.Position,
			Votes:       row.Votes,
		})
	}
	return counts, nil
}

func (r *Repository) GetStanding(ctx context.Context, accountID string) (ports.VoterStanding, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(accountID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.VoterStanding{}, domainerrors.ErrNotEligible
		}
		return ports.VoterStanding{}, r.logError("voting_repo_get_standing_failed", err, "account_id", accountID)
	}
	return ports.VoterStanding{
		AccountID: row.ID,
		Verified:  row.VerificationStatus == "verified",
		HasVoted:  row.HasVoted,
	}, nil
}

func (r *Repository) CountVerified(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&accountModel{}).
		Where("verification_status = ?", "verified").
		Count(&total).
		Error
	if err != nil {
		return 0, r.logError("voting_repo_count_verified_failed", err)
	}
	return total, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-operations/voting-engine",
		"layer", "adapters/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("voting repository operation failed", fields...)
	return err
}
