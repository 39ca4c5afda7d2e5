package domain

import (
	"context"

	"github.com/danishayman/bobo-game-awards-sub000/internal/common"
	"github.com/danishayman/bobo-game-awards-sub000/internal/entity"
	"github.com/danishayman/bobo-game-awards-sub000/internal/model"
	"github.com/danishayman/bobo-game-awards-sub000/internal/repository"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/errorx"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"github.com/fatih/structs"
	"github.com/google/uuid"
)

type CategoryDomain interface {
	GetList(context.Context, *model.GetListCategoryRequest) (*model.GetListCategoryResponse, error)
	Get(context.Context, *model.GetCategoryRequest) (*model.GetCategoryResponse, error)
	GetAll(context.Context, *model.GetAllCategoryRequest) (*model.GetAllCategoryResponse, error)
	Create(context.Context, *model.CreateCategoryRequest) (*model.CreateCategoryResponse, error)
	Update(context.Context, *model.UpdateCategoryRequest) (*model.UpdateCategoryResponse, error)
	Delete(context.Context, *model.DeleteCategoryRequest) (*model.DeleteCategoryResponse, error)
}

type categoryDomain struct {
	categoryRepo       repository.CategoryRepository
	globalRoleVerifier *common.GlobalRoleVerifier
}

// categoryPatch maps the non-nil fields of an update request to column names.
type categoryPatch struct {
	Slug         any `structs:"slug,omitempty"`
	Name         any `structs:"name,omitempty"`
	Description  any `structs:"description,omitempty"`
	DisplayOrder any `structs:"display_order,omitempty"`
	IsActive     any `structs:"is_active,omitempty"`
	VotingStart  any `structs:"voting_start,omitempty,omitnested"`
	VotingEnd    any `structs:"voting_end,omitempty,omitnested"`
}

func NewCategoryDomain(
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
) CategoryDomain {
	return &categoryDomain{
		categoryRepo:       categoryRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *categoryDomain) GetList(
	ctx context.Context, req *model.GetListCategoryRequest,
) (*model.GetListCategoryResponse, error) {
	categories, err := d.categoryRepo.GetList(ctx, repository.CategoryFilter{
		OnlyActive:      true,
		IncludeNominees: req.IncludeNominees,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get category list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Category{}
	for i := range categories {
		result = append(result, model.ConvertCategory(&categories[i]))
	}

	return &model.GetListCategoryResponse{Categories: result}, nil
}

func (d *categoryDomain) Get(
	ctx context.Context, req *model.GetCategoryRequest,
) (*model.GetCategoryResponse, error) {
	if req.Slug == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty slug")
	}

	category, err := d.categoryRepo.GetBySlug(ctx, req.Slug, true)
	if err != nil {
		if isNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "Not found category")
		}

		xcontext.Logger(ctx).Errorf("Cannot get category: %v", err)
		return nil, errorx.Unknown
	}

	if !category.IsActive && !d.globalRoleVerifier.IsAdmin(ctx) {
		return nil, errorx.New(errorx.NotFound, "Not found category")
	}

	return &model.GetCategoryResponse{Category: model.ConvertCategory(category)}, nil
}

func (d *categoryDomain) GetAll(
	ctx context.Context, req *model.GetAllCategoryRequest,
) (*model.GetAllCategoryResponse, error) {
	if err := verifyAdmin(ctx, d.globalRoleVerifier); err != nil {
		return nil, err
	}

	categories, err := d.categoryRepo.GetList(ctx, repository.CategoryFilter{IncludeNominees: true})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get category list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Category{}
	for i := range categories {
		result = append(result, model.ConvertCategory(&categories[i]))
	}

	return &model.GetAllCategoryResponse{Categories: result}, nil
}

func (d *categoryDomain) Create(
	ctx context.Context, req *model.CreateCategoryRequest,
) (*model.CreateCategoryResponse, error) {
	if err := verifyAdmin(ctx, d.globalRoleVerifier); err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty name")
	}

	if err := checkSlug(req.Slug); err != nil {
		return nil, err
	}

	votingStart, err := parseOptionalTime("voting_start", req.VotingStart)
	if err != nil {
		return nil, err
	}

	votingEnd, err := parseOptionalTime("voting_end", req.VotingEnd)
	if err != nil {
		return nil, err
	}

	if votingStart.Valid && votingEnd.Valid && !votingStart.Time.Before(votingEnd.Time) {
		return nil, errorx.New(errorx.BadRequest, "Voting start must be before voting end")
	}

	if err := d.checkSlugAvailable(ctx, req.Slug, ""); err != nil {
		return nil, err
	}

	category := &entity.Category{
		Base:         entity.Base{ID: uuid.NewString()},
		Slug:         req.Slug,
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
		VotingStart:  votingStart,
		VotingEnd:    votingEnd,
	}

	if err := d.categoryRepo.Create(ctx, category); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create category: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCategoryResponse{Category: model.ConvertCategory(category)}, nil
}

func (d *categoryDomain) Update(
	ctx context.Context, req *model.UpdateCategoryRequest,
) (*model.UpdateCategoryResponse, error) {
	if err := verifyAdmin(ctx, d.globalRoleVerifier); err != nil {
		return nil, err
	}

	category, err := d.categoryRepo.GetByID(ctx, req.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "Not found category")
		}

		xcontext.Logger(ctx).Errorf("Cannot get category: %v", err)
		return nil, errorx.Unknown
	}

	patch := categoryPatch{}
	if req.Slug != nil {
		if err := checkSlug(*req.Slug); err != nil {
			return nil, err
		}

		if *req.Slug != category.Slug {
			if err := d.checkSlugAvailable(ctx, *req.Slug, category.ID); err != nil {
				return nil, err
			}
		}

		patch.Slug = *req.Slug
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, errorx.New(errorx.BadRequest, "Not allow empty name")
		}

		patch.Name = *req.Name
	}

	if req.Description != nil {
		patch.Description = *req.Description
	}

	if req.DisplayOrder != nil {
		patch.DisplayOrder = *req.DisplayOrder
	}

	if req.IsActive != nil {
		patch.IsActive = *req.IsActive
	}

	votingStart, votingEnd := category.VotingStart, category.VotingEnd
	if req.VotingStart != nil {
		if votingStart, err = parseOptionalTime("voting_start", *req.VotingStart); err != nil {
			return nil, err
		}

		patch.VotingStart = votingStart
	}

	if req.VotingEnd != nil {
		if votingEnd, err = parseOptionalTime("voting_end", *req.VotingEnd); err != nil {
			return nil, err
		}

		patch.VotingEnd = votingEnd
	}

	if votingStart.Valid && votingEnd.Valid && !votingStart.Time.Before(votingEnd.Time) {
		return nil, errorx.New(errorx.BadRequest, "Voting start must be before voting end")
	}

	data := structs.Map(patch)
	if len(data) == 0 {
		return &model.UpdateCategoryResponse{}, nil
	}

	if err := d.categoryRepo.UpdateByID(ctx, category.ID, data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update category: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateCategoryResponse{}, nil
}

func (d *categoryDomain) Delete(
	ctx context.Context, req *model.DeleteCategoryRequest,
) (*model.DeleteCategoryResponse, error) {
	if err := verifyAdmin(ctx, d.globalRoleVerifier); err != nil {
		return nil, err
	}

	if err := d.categoryRepo.DeleteByID(ctx, req.ID); err != nil {
		if isNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "Not found category")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete category: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCategoryResponse{}, nil
}

func (d *categoryDomain) checkSlugAvailable(ctx context.Context, slug, exceptID string) error {
	taken, err := d.categoryRepo.IsSlugTaken(ctx, slug, exceptID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check slug: %v", err)
		return errorx.Unknown
	}

	if taken {
		return errorx.New(errorx.AlreadyExists, "Slug %s is already used", slug)
	}

	return nil
}
