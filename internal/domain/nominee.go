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

type NomineeDomain interface {
	Create(context.Context, *model.CreateNomineeRequest) (*model.CreateNomineeResponse, error)
	Update(context.Context, *model.UpdateNomineeRequest) (*model.UpdateNomineeResponse, error)
	Delete(context.Context, *model.DeleteNomineeRequest) (*model.DeleteNomineeResponse, error)
}

type nomineeDomain struct {
	nomineeRepo        repository.NomineeRepository
	categoryRepo       repository.CategoryRepository
	globalRoleVerifier *common.GlobalRoleVerifier
}

type nomineePatch struct {
	Name         any `structs:"name,omitempty"`
	Description  any `structs:"description,omitempty"`
	ImageURL     any `structs:"image_url,omitempty"`
	DisplayOrder any `structs:"display_order,omitempty"`
}

func NewNomineeDomain(
	nomineeRepo repository.NomineeRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
) NomineeDomain {
	return &nomineeDomain{
		nomineeRepo:        nomineeRepo,
		categoryRepo:       categoryRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *nomineeDomain) Create(
	ctx context.Context, req *model.CreateNomineeRequest,
) (*model.CreateNomineeResponse, error) {
	if err := verifyAdmin(ctx, d.globalRoleVerifier); err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty name")
	}

	if _, err := d.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if isNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "Not found category")
		}

		xcontext.Logger(ctx).Errorf("Cannot get category: %v", err)
		return nil, errorx.Unknown
	}

	nominee := &entity.Nominee{
		Base:         entity.Base{ID: uuid.NewString()},
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
	}

	if err := d.nomineeRepo.Create(ctx, nominee); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create nominee: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateNomineeResponse{Nominee: model.ConvertNominee(nominee)}, nil
}

func (d *nomineeDomain) Update(
	ctx context.Context, req *model.UpdateNomineeRequest,
) (*model.UpdateNomineeResponse, error) {
	if err := verifyAdmin(ctx, d.globalRoleVerifier); err != nil {
		return nil, err
	}

	patch := nomineePatch{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, errorx.New(errorx.BadRequest, "Not allow empty name")
		}

		patch.Name = *req.Name
	}

	if req.Description != nil {
		patch.Description = *req.Description
	}

	if req.ImageURL != nil {
		patch.ImageURL = *req.ImageURL
	}

	if req.DisplayOrder != nil {
		patch.DisplayOrder = *req.DisplayOrder
	}

	if _, err := d.nomineeRepo.GetByID(ctx, req.ID); err != nil {
		if isNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "Not found nominee")
		}

		xcontext.Logger(ctx).Errorf("Cannot get nominee: %v", err)
		return nil, errorx.Unknown
	}

	data := structs.Map(patch)
	if len(data) == 0 {
		return &model.UpdateNomineeResponse{}, nil
	}

	if err := d.nomineeRepo.UpdateByID(ctx, req.ID, data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update nominee: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateNomineeResponse{}, nil
}

func (d *nomineeDomain) Delete(
	ctx context.Context, req *model.DeleteNomineeRequest,
) (*model.DeleteNomineeResponse, error) {
	if err := verifyAdmin(ctx, d.globalRoleVerifier); err != nil {
		return nil, err
	}

	if err := d.nomineeRepo.DeleteByID(ctx, req.ID); err != nil {
		if isNotFound(err) {
			return nil, errorx.New(errorx.NotFound, "Not found nominee")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete nominee: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteNomineeResponse{}, nil
}
