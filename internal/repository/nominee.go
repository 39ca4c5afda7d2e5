package repository

import (
	"context"
	"fmt"

	"github.com/danishayman/bobo-game-awards-sub000/internal/entity"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"gorm.io/gorm"
)

type NomineeRepository interface {
	Create(ctx context.Context, e *entity.Nominee) error
	GetByID(ctx context.Context, id string) (*entity.Nominee, error)
	GetByCategoryIDs(ctx context.Context, categoryIDs []string) ([]entity.Nominee, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
	DeleteByID(ctx context.Context, id string) error
}

type nomineeRepository struct{}

func NewNomineeRepository() *nomineeRepository {
	return &nomineeRepository{}
}

func (r *nomineeRepository) Create(ctx context.Context, e *entity.Nominee) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *nomineeRepository) GetByID(ctx context.Context, id string) (*entity.Nominee, error) {
	var result entity.Nominee
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *nomineeRepository) GetByCategoryIDs(ctx context.Context, categoryIDs []string) ([]entity.Nominee, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	var result []entity.Nominee
	err := orderNominees(xcontext.DB(ctx)).
		Where("category_id IN (?)", categoryIDs).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *nomineeRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Nominee{}).
		Where("id=?", id).
		Updates(data)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return fmt.Errorf("row affected is empty")
	}

	return nil
}

func (r *nomineeRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Nominee{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
