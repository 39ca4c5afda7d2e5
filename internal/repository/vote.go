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

type VoteItem struct {
	CategoryID string
	NomineeID  string
}

// Voter is the profile snapshot stored on the ballot.
type Voter struct {
	DisplayName string
	AvatarURL   string
}

type NomineeVoteCount struct {
	NomineeID string
	Count     int64
}

type CategoryVoteCount struct {
	CategoryID string
	Count      int64
}

type VoteRepository interface {
	// Submit inserts or replaces the vote of the user in the category. The ballot row of the user is
	// created if needed and locked for the whole check-then-write sequence.
	Submit(ctx context.Context, userID string, item VoteItem, voter Voter) (*entity.Vote, error)

	// SubmitBatch applies all items in one transaction. Nothing is written if any item fails.
	SubmitBatch(ctx context.Context, userID string, items []VoteItem, voter Voter) ([]entity.Vote, error)

	GetByUserID(ctx context.Context, userID, categoryID string) ([]entity.Vote, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
	CountResults(ctx context.Context, categoryIDs []string, onlyFinal bool) ([]NomineeVoteCount, error)
	CountByCategory(ctx context.Context) ([]CategoryVoteCount, error)
	Count(ctx context.Context) (int64, error)
}

type voteRepository struct{}

func NewVoteRepository() *voteRepository {
	return &voteRepository{}
}

func (r *voteRepository) Submit(
	ctx context.Context, userID string, item VoteItem, voter Voter,
) (*entity.Vote, error) {
	var result *entity.Vote
	err := xcontext.DB(ctx).Transaction(func(tx *gorm.DB) error {
		ballot, err := lockOpenBallot(tx, userID, voter)
		if err != nil {
			return err
		}

		result, err = upsertVote(tx, userID, item)
		if err != nil {
			return err
		}

		return refreshVoter(tx, ballot.ID, voter)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *voteRepository) SubmitBatch(
	ctx context.Context, userID string, items []VoteItem, voter Voter,
) ([]entity.Vote, error) {
	result := make([]entity.Vote, 0, len(items))
	err := xcontext.DB(ctx).Transaction(func(tx *gorm.DB) error {
		ballot, err := lockOpenBallot(tx, userID, voter)
		if err != nil {
			return err
		}

		for _, item := range items {
			vote, err := upsertVote(tx, userID, item)
			if err != nil {
				return err
			}

			result = append(result, *vote)
		}

		return refreshVoter(tx, ballot.ID, voter)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// lockOpenBallot creates the ballot if it does not exist yet, then locks its row. Concurrent
// writers of the same user serialize on this lock.
func lockOpenBallot(tx *gorm.DB, userID string, voter Voter) (*entity.Ballot, error) {
	newBallot := entity.Ballot{
		ID:          uuid.NewString(),
		UserID:      userID,
		DisplayName: voter.DisplayName,
		AvatarURL:   voter.AvatarURL,
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&newBallot).Error
	if err != nil {
		return nil, err
	}

	var ballot entity.Ballot
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&ballot, "user_id=?", userID).Error
	if err != nil {
		return nil, err
	}

	if ballot.IsFinal {
		return nil, ErrBallotFinalized
	}

	return &ballot, nil
}

func upsertVote(tx *gorm.DB, userID string, item VoteItem) (*entity.Vote, error) {
	var category entity.Category
	if err := tx.Take(&category, "id=?", item.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}

		return nil, err
	}

	if !category.IsActive {
		return nil, ErrCategoryInactive
	}

	var nominee entity.Nominee
	err := tx.Take(&nominee, "id=? AND category_id=?", item.NomineeID, item.CategoryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidNominee
		}

		return nil, err
	}

	now := time.Now()
	vote := entity.Vote{
		ID:         uuid.NewString(),
		UserID:     userID,
		CategoryID: item.CategoryID,
		NomineeID:  item.NomineeID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "category_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"nominee_id": item.NomineeID,
			"updated_at": now,
		}),
	}).Create(&vote).Error
	if err != nil {
		return nil, err
	}

	var result entity.Vote
	err = tx.Take(&result, "user_id=? AND category_id=?", userID, item.CategoryID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func refreshVoter(tx *gorm.DB, ballotID string, voter Voter) error {
	return tx.Model(&entity.Ballot{}).
		Where("id=?", ballotID).
		Updates(map[string]any{
			"display_name": voter.DisplayName,
			"avatar_url":   voter.AvatarURL,
		}).Error
}

func (r *voteRepository) GetByUserID(ctx context.Context, userID, categoryID string) ([]entity.Vote, error) {
	var result []entity.Vote
	tx := xcontext.DB(ctx).Where("user_id=?", userID).Order("created_at ASC")
	if categoryID != "" {
		tx = tx.Where("category_id=?", categoryID)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *voteRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Vote{}).Where("user_id=?", userID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *voteRepository) CountResults(
	ctx context.Context, categoryIDs []string, onlyFinal bool,
) ([]NomineeVoteCount, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	var result []NomineeVoteCount
	tx := xcontext.DB(ctx).Model(&entity.Vote{}).
		Select("nominee_id, COUNT(*) AS count").
		Where("category_id IN (?)", categoryIDs).
		Group("nominee_id")
	if onlyFinal {
		tx = tx.Where("is_final=?", true)
	}

	if err := tx.Scan(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *voteRepository) CountByCategory(ctx context.Context) ([]CategoryVoteCount, error) {
	var result []CategoryVoteCount
	err := xcontext.DB(ctx).Model(&entity.Vote{}).
		Select("category_id, COUNT(*) AS count").
		Group("category_id").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *voteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.Vote{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
