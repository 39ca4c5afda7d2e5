package repository

import (
	"context"
	"fmt"

	"github.com/danishayman/bobo-game-awards-sub000/internal/entity"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"gorm.io/gorm"
)

type CategoryFilter struct {
	OnlyActive      bool
	IncludeNominees bool
}

type CategoryRepository interface {
	Create(ctx context.Context, e *entity.Category) error
	GetList(ctx context.Context, filter CategoryFilter) ([]entity.Category, error)
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string, includeNominees bool) (*entity.Category, error)
	IsSlugTaken(ctx context.Context, slug, exceptID string) (bool, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
	DeleteByID(ctx context.Context, id string) error
}

type categoryRepository struct{}

func NewCategoryRepository() *categoryRepository {
	return &categoryRepository{}
}

func orderNominees(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC, name ASC")
}

func (r *categoryRepository) Create(ctx context.Context, e *entity.Category) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *categoryRepository) GetList(ctx context.Context, filter CategoryFilter) ([]entity.Category, error) {
	var result []entity.Category
	tx := xcontext.DB(ctx).Model(&entity.Category{}).Order("display_order ASC, name ASC")
	if filter.OnlyActive {
		tx = tx.Where("is_active=?", true)
	}

	if filter.IncludeNominees {
		tx = tx.Preload("Nominees", orderNominees)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var result entity.Category
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *categoryRepository) GetBySlug(
	ctx context.Context, slug string, includeNominees bool,
) (*entity.Category, error) {
	var result entity.Category
	tx := xcontext.DB(ctx).Where("slug=?", slug)
	if includeNominees {
		tx = tx.Preload("Nominees", orderNominees)
	}

	if err := tx.Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// IsSlugTaken also looks at deleted categories, their slugs stay reserved by the unique index.
func (r *categoryRepository) IsSlugTaken(ctx context.Context, slug, exceptID string) (bool, error) {
	var count int64
	tx := xcontext.DB(ctx).Unscoped().Model(&entity.Category{}).Where("slug=?", slug)
	if exceptID != "" {
		tx = tx.Where("id<>?", exceptID)
	}

	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *categoryRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Category{}).
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

// DeleteByID soft deletes the category together with its nominees.
func (r *categoryRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&entity.Category{}, "id=?", id)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Delete(&entity.Nominee{}, "category_id=?", id).Error
	})
}
