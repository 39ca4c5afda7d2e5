package repository

import (
	"context"
	"errors"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/internal/entity"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BallotSummary struct {
	entity.Ballot
	VoteCount int64
}

type BallotRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Ballot, error)

	// Finalize marks every vote of the user and the ballot as final in one transaction.
	Finalize(ctx context.Context, userID string, now time.Time) (*entity.Ballot, error)

	GetList(ctx context.Context, offset, limit int) ([]BallotSummary, error)
	Count(ctx context.Context, onlyFinal bool) (int64, error)
}

type ballotRepository struct{}

func NewBallotRepository() *ballotRepository {
	return &ballotRepository{}
}

func (r *ballotRepository) GetByUserID(ctx context.Context, userID string) (*entity.Ballot, error) {
	var result entity.Ballot
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *ballotRepository) Finalize(ctx context.Context, userID string, now time.Time) (*entity.Ballot, error) {
	var result entity.Ballot
	err := xcontext.DB(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&result, "user_id=?", userID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			result = entity.Ballot{ID: uuid.NewString(), UserID: userID}
		case err != nil:
			return err
		case result.IsFinal:
			return ErrAlreadyFinalized
		}

		var count int64
		if err := tx.Model(&entity.Vote{}).Where("user_id=?", userID).Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			return ErrNoVotes
		}

		err = tx.Model(&entity.Vote{}).
			Where("user_id=?", userID).
			Updates(map[string]any{"is_final": true, "updated_at": now}).Error
		if err != nil {
			return err
		}

		result.IsFinal = true
		result.SubmittedAt.Time = now
		result.SubmittedAt.Valid = true
		return tx.Save(&result).Error
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *ballotRepository) GetList(ctx context.Context, offset, limit int) ([]BallotSummary, error) {
	var result []BallotSummary
	err := xcontext.DB(ctx).Model(&entity.Ballot{}).
		Select("ballots.*, (SELECT COUNT(*) FROM votes WHERE votes.user_id=ballots.user_id) AS vote_count").
		Order("ballots.updated_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ballotRepository) Count(ctx context.Context, onlyFinal bool) (int64, error) {
	var count int64
	tx := xcontext.DB(ctx).Model(&entity.Ballot{})
	if onlyFinal {
		tx = tx.Where("is_final=?", true)
	}

	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
