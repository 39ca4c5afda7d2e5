package domain

import (
	"context"
	"errors"

	"github.com/danishayman/bobo-game-awards-sub000/internal/common"
	"github.com/danishayman/bobo-game-awards-sub000/internal/domain/votewindow"
	"github.com/danishayman/bobo-game-awards-sub000/internal/entity"
	"github.com/danishayman/bobo-game-awards-sub000/internal/model"
	"github.com/danishayman/bobo-game-awards-sub000/internal/repository"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/errorx"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xredis"
	"golang.org/x/exp/slices"
)

type ResultDomain interface {
	GetResults(context.Context, *model.GetResultsRequest) (*model.GetResultsResponse, error)

	// RefreshCache recomputes the cached results of every active category. It does nothing while
	// voting is still active.
	RefreshCache(context.Context) error
}

type resultDomain struct {
	categoryRepo       repository.CategoryRepository
	voteRepo           repository.VoteRepository
	globalRoleVerifier *common.GlobalRoleVerifier
	redisClient        xredis.Client
	gate               *votewindow.Gate
}

func NewResultDomain(
	categoryRepo repository.CategoryRepository,
	voteRepo repository.VoteRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
	gate *votewindow.Gate,
) ResultDomain {
	return &resultDomain{
		categoryRepo:       categoryRepo,
		voteRepo:           voteRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
		redisClient:        redisClient,
		gate:               gate,
	}
}

func (d *resultDomain) GetResults(
	ctx context.Context, req *model.GetResultsRequest,
) (*model.GetResultsResponse, error) {
	now := d.gate.Now()
	isAdmin := d.globalRoleVerifier.IsAdmin(ctx)
	ended := !d.gate.IsVotingActive(now)

	var categories []entity.Category
	if req.CategorySlug != "" {
		category, err := d.categoryRepo.GetBySlug(ctx, req.CategorySlug, true)
		if err != nil {
			if isNotFound(err) {
				return nil, errorx.New(errorx.NotFound, "Not found category")
			}

			xcontext.Logger(ctx).Errorf("Cannot get category: %v", err)
			return nil, errorx.Unknown
		}

		if !category.IsActive && !isAdmin {
			return nil, errorx.New(errorx.NotFound, "Not found category")
		}

		categories = []entity.Category{*category}
	}

	// Votes are accepted in every category until the global deadline, so its own voting_end does
	// not make a category public.
	if !isAdmin && !ended {
		return nil, errorx.New(errorx.ResultsUnavailable, "Results are not available until voting ends")
	}

	countOpen := xcontext.Configs(ctx).Results.CountOpenBallots
	key := common.RedisKeyResults(req.CategorySlug, countOpen)

	// Results can no longer change once voting has ended.
	if ended {
		resp := model.GetResultsResponse{}
		err := d.redisClient.GetObj(ctx, key, &resp)
		if err == nil {
			return &resp, nil
		}

		if !errors.Is(err, xredis.Nil) {
			xcontext.Logger(ctx).Warnf("Cannot get cached results: %v", err)
		}
	}

	if categories == nil {
		var err error
		categories, err = d.categoryRepo.GetList(ctx, repository.CategoryFilter{
			OnlyActive:      true,
			IncludeNominees: true,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get category list: %v", err)
			return nil, errorx.Unknown
		}
	}

	results, err := d.computeResults(ctx, categories, !countOpen)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot compute results: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetResultsResponse{Categories: results}
	if ended {
		ttl := xcontext.Configs(ctx).Results.CacheTTL
		if err := d.redisClient.SetObj(ctx, key, resp, ttl); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache results: %v", err)
		}
	}

	return resp, nil
}

func (d *resultDomain) RefreshCache(ctx context.Context) error {
	if d.gate.IsVotingActive(d.gate.Now()) {
		return nil
	}

	categories, err := d.categoryRepo.GetList(ctx, repository.CategoryFilter{
		OnlyActive:      true,
		IncludeNominees: true,
	})
	if err != nil {
		return err
	}

	cfg := xcontext.Configs(ctx).Results
	results, err := d.computeResults(ctx, categories, !cfg.CountOpenBallots)
	if err != nil {
		return err
	}

	staleKeys, err := d.redisClient.Keys(ctx, common.RedisKeyResultsPattern)
	if err != nil {
		return err
	}

	if len(staleKeys) > 0 {
		if err := d.redisClient.Del(ctx, staleKeys...); err != nil {
			return err
		}
	}

	allKey := common.RedisKeyResults("", cfg.CountOpenBallots)
	err = d.redisClient.SetObj(ctx, allKey, model.GetResultsResponse{Categories: results}, cfg.CacheTTL)
	if err != nil {
		return err
	}

	for _, r := range results {
		key := common.RedisKeyResults(r.Slug, cfg.CountOpenBallots)
		resp := model.GetResultsResponse{Categories: []model.CategoryResult{r}}
		if err := d.redisClient.SetObj(ctx, key, resp, cfg.CacheTTL); err != nil {
			return err
		}
	}

	return nil
}

// computeResults counts the votes of every nominee of the given categories. Nominees are ordered
// by votes, ties keep the display order.
func (d *resultDomain) computeResults(
	ctx context.Context, categories []entity.Category, onlyFinal bool,
) ([]model.CategoryResult, error) {
	categoryIDs := []string{}
	for _, c := range categories {
		categoryIDs = append(categoryIDs, c.ID)
	}

	counts, err := d.voteRepo.CountResults(ctx, categoryIDs, onlyFinal)
	if err != nil {
		return nil, err
	}

	countMap := map[string]int64{}
	for _, c := range counts {
		countMap[c.NomineeID] = c.Count
	}

	results := []model.CategoryResult{}
	for i := range categories {
		category := model.ConvertCategory(&categories[i])
		nominees := category.Nominees
		category.Nominees = nil

		result := model.CategoryResult{Category: category, Results: []model.NomineeResult{}}
		for _, n := range nominees {
			result.Results = append(result.Results, model.NomineeResult{Nominee: n, Votes: countMap[n.ID]})
			result.TotalVotes += countMap[n.ID]
		}

		slices.SortStableFunc(result.Results, func(a, b model.NomineeResult) bool {
			if a.Votes != b.Votes {
				return a.Votes > b.Votes
			}

			return a.DisplayOrder < b.DisplayOrder
		})

		results = append(results, result)
	}

	return results, nil
}
