package domain

import (
	"context"
	"errors"

	"github.com/danishayman/bobo-game-awards-sub000/internal/common"
	"github.com/danishayman/bobo-game-awards-sub000/internal/domain/votewindow"
	"github.com/danishayman/bobo-game-awards-sub000/internal/model"
	"github.com/danishayman/bobo-game-awards-sub000/internal/repository"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/errorx"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
)

const (
	BallotStateNone  = "no_ballot"
	BallotStateOpen  = "open"
	BallotStateFinal = "final"
)

type BallotDomain interface {
	GetMyBallot(context.Context, *model.GetMyBallotRequest) (*model.GetMyBallotResponse, error)
	Finalize(context.Context, *model.FinalizeBallotRequest) (*model.FinalizeBallotResponse, error)
	GetList(context.Context, *model.GetListBallotRequest) (*model.GetListBallotResponse, error)
	GetStatistic(context.Context, *model.GetStatisticRequest) (*model.GetStatisticResponse, error)
}

type ballotDomain struct {
	ballotRepo         repository.BallotRepository
	voteRepo           repository.VoteRepository
	userRepo           repository.UserRepository
	categoryRepo       repository.CategoryRepository
	globalRoleVerifier *common.GlobalRoleVerifier
	gate               *votewindow.Gate
}

func NewBallotDomain(
	ballotRepo repository.BallotRepository,
	voteRepo repository.VoteRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	gate *votewindow.Gate,
) BallotDomain {
	return &ballotDomain{
		ballotRepo:         ballotRepo,
		voteRepo:           voteRepo,
		userRepo:           userRepo,
		categoryRepo:       categoryRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
		gate:               gate,
	}
}

func (d *ballotDomain) GetMyBallot(
	ctx context.Context, req *model.GetMyBallotRequest,
) (*model.GetMyBallotResponse, error) {
	ballot, err := d.ballotRepo.GetByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if isNotFound(err) {
			return &model.GetMyBallotResponse{Ballot: nil, State: BallotStateNone}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get ballot: %v", err)
		return nil, errorx.Unknown
	}

	state := BallotStateOpen
	if ballot.IsFinal {
		state = BallotStateFinal
	}

	clientBallot := model.ConvertBallot(ballot)
	return &model.GetMyBallotResponse{Ballot: &clientBallot, State: state}, nil
}

func (d *ballotDomain) Finalize(
	ctx context.Context, req *model.FinalizeBallotRequest,
) (*model.FinalizeBallotResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before finalizing")
	}

	now := d.gate.Now()
	if !d.gate.IsVotingActive(now) {
		err := d.checkEndedBallot(ctx, userID)
		common.IncCounter(common.BallotFinalizationTotal, resultLabel(err))
		return nil, err
	}

	ballot, err := d.ballotRepo.Finalize(ctx, userID, now)
	if err != nil {
		err = convertFinalizeError(ctx, err)
		common.IncCounter(common.BallotFinalizationTotal, resultLabel(err))
		return nil, err
	}

	common.IncCounter(common.BallotFinalizationTotal, "success")
	return &model.FinalizeBallotResponse{Ballot: model.ConvertBallot(ballot)}, nil
}

// checkEndedBallot reports why the ballot of the user cannot be finalized after the deadline.
// Votes can no longer be written at that point, so the ballot state read here is stable.
func (d *ballotDomain) checkEndedBallot(ctx context.Context, userID string) error {
	ballot, err := d.ballotRepo.GetByUserID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return convertFinalizeError(ctx, repository.ErrNoVotes)
		}

		return convertFinalizeError(ctx, err)
	}

	if ballot.IsFinal {
		return convertFinalizeError(ctx, repository.ErrAlreadyFinalized)
	}

	count, err := d.voteRepo.CountByUserID(ctx, userID)
	if err != nil {
		return convertFinalizeError(ctx, err)
	}

	if count == 0 {
		return convertFinalizeError(ctx, repository.ErrNoVotes)
	}

	return errorx.New(errorx.VotingEnded, "Voting has ended")
}

func convertFinalizeError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNoVotes):
		return errorx.New(errorx.NoVotesToFinalize, "No votes to finalize")
	case errors.Is(err, repository.ErrAlreadyFinalized):
		return errorx.New(errorx.AlreadyFinalized, "Ballot already finalized")
	default:
		xcontext.Logger(ctx).Errorf("Cannot finalize ballot: %v", err)
		return errorx.Unknown
	}
}

func (d *ballotDomain) GetList(
	ctx context.Context, req *model.GetListBallotRequest,
) (*model.GetListBallotResponse, error) {
	if err := verifyAdmin(ctx, d.globalRoleVerifier); err != nil {
		return nil, err
	}

	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	ballots, err := d.ballotRepo.GetList(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ballot list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.BallotSummary{}
	for i := range ballots {
		result = append(result, model.ConvertBallotSummary(&ballots[i]))
	}

	return &model.GetListBallotResponse{Ballots: result}, nil
}

func (d *ballotDomain) GetStatistic(
	ctx context.Context, req *model.GetStatisticRequest,
) (*model.GetStatisticResponse, error) {
	if err := verifyAdmin(ctx, d.globalRoleVerifier); err != nil {
		return nil, err
	}

	resp := &model.GetStatisticResponse{Categories: []model.CategoryStatistic{}}

	var err error
	if resp.TotalUsers, err = d.userRepo.Count(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	if resp.TotalBallots, err = d.ballotRepo.Count(ctx, false); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count ballots: %v", err)
		return nil, errorx.Unknown
	}

	if resp.FinalizedBallot, err = d.ballotRepo.Count(ctx, true); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count finalized ballots: %v", err)
		return nil, errorx.Unknown
	}

	if resp.TotalVotes, err = d.voteRepo.Count(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count votes: %v", err)
		return nil, errorx.Unknown
	}

	categories, err := d.categoryRepo.GetList(ctx, repository.CategoryFilter{})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get category list: %v", err)
		return nil, errorx.Unknown
	}

	counts, err := d.voteRepo.CountByCategory(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count votes by category: %v", err)
		return nil, errorx.Unknown
	}

	countMap := map[string]int64{}
	for _, c := range counts {
		countMap[c.CategoryID] = c.Count
	}

	for _, c := range categories {
		resp.Categories = append(resp.Categories, model.CategoryStatistic{
			CategoryID: c.ID,
			Slug:       c.Slug,
			Name:       c.Name,
			VoteCount:  countMap[c.ID],
		})
	}

	return resp, nil
}
