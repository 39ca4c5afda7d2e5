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
	"golang.org/x/exp/slices"
)

type VoteDomain interface {
	GetVotingStatus(context.Context, *model.GetVotingStatusRequest) (*model.GetVotingStatusResponse, error)
	Submit(context.Context, *model.SubmitVoteRequest) (*model.SubmitVoteResponse, error)
	SubmitBatch(context.Context, *model.SubmitVotesRequest) (*model.SubmitVotesResponse, error)
	GetMyVotes(context.Context, *model.GetMyVotesRequest) (*model.GetMyVotesResponse, error)
}

type voteDomain struct {
	voteRepo           repository.VoteRepository
	userRepo           repository.UserRepository
	globalRoleVerifier *common.GlobalRoleVerifier
	gate               *votewindow.Gate
}

func NewVoteDomain(
	voteRepo repository.VoteRepository,
	userRepo repository.UserRepository,
	gate *votewindow.Gate,
) VoteDomain {
	return &voteDomain{
		voteRepo:           voteRepo,
		userRepo:           userRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
		gate:               gate,
	}
}

func (d *voteDomain) GetVotingStatus(
	ctx context.Context, req *model.GetVotingStatusRequest,
) (*model.GetVotingStatusResponse, error) {
	now := d.gate.Now()
	isAdmin := d.globalRoleVerifier.IsAdmin(ctx)

	return &model.GetVotingStatusResponse{
		State:           string(d.gate.State(now)),
		Now:             now.Format(model.DefaultTimeLayout),
		Deadline:        d.gate.Deadline.Format(model.DefaultTimeLayout),
		LiveVotingStart: d.gate.LiveVotingStart.Format(model.DefaultTimeLayout),
		LockEnabled:     d.gate.LockEnabled,
		IsAdmin:         isAdmin,
		CanVote:         d.gate.CanUserVote(now, isAdmin),
	}, nil
}

func (d *voteDomain) Submit(
	ctx context.Context, req *model.SubmitVoteRequest,
) (*model.SubmitVoteResponse, error) {
	if req.CategoryID == "" || req.NomineeID == "" {
		return nil, errorx.New(errorx.BadRequest, "Category and nominee are required")
	}

	user, err := d.checkVoter(ctx)
	if err != nil {
		common.IncCounter(common.VoteSubmissionTotal, "single", resultLabel(err))
		return nil, err
	}

	vote, err := d.voteRepo.Submit(ctx, user.ID,
		repository.VoteItem{CategoryID: req.CategoryID, NomineeID: req.NomineeID},
		voterOf(user),
	)
	if err != nil {
		err = convertVoteError(ctx, err)
		common.IncCounter(common.VoteSubmissionTotal, "single", resultLabel(err))
		return nil, err
	}

	common.IncCounter(common.VoteSubmissionTotal, "single", "success")
	return &model.SubmitVoteResponse{Vote: model.ConvertVote(vote)}, nil
}

// SubmitBatch first tries to write every item in one transaction. If that fails, each item is
// written on its own and the failing ones are reported instead of failing the whole request.
func (d *voteDomain) SubmitBatch(
	ctx context.Context, req *model.SubmitVotesRequest,
) (*model.SubmitVotesResponse, error) {
	if len(req.Votes) == 0 {
		return nil, errorx.New(errorx.BadRequest, "No votes to submit")
	}

	if len(req.Votes) > MaxBatchVotes {
		return nil, errorx.New(errorx.BadRequest, "Too many votes (at most %d)", MaxBatchVotes)
	}

	items := make([]repository.VoteItem, 0, len(req.Votes))
	seen := map[string]bool{}
	for _, v := range req.Votes {
		if v.CategoryID == "" || v.NomineeID == "" {
			return nil, errorx.New(errorx.BadRequest, "Category and nominee are required")
		}

		if seen[v.CategoryID] {
			return nil, errorx.New(errorx.BadRequest, "Duplicated category %s", v.CategoryID)
		}
		seen[v.CategoryID] = true

		items = append(items, repository.VoteItem{CategoryID: v.CategoryID, NomineeID: v.NomineeID})
	}

	user, err := d.checkVoter(ctx)
	if err != nil {
		common.IncCounter(common.VoteSubmissionTotal, "batch", resultLabel(err))
		return nil, err
	}

	voter := voterOf(user)
	votes, err := d.voteRepo.SubmitBatch(ctx, user.ID, items, voter)
	if err == nil {
		resp := &model.SubmitVotesResponse{Votes: []model.Vote{}, Failures: []model.VoteFailure{}}
		for i := range votes {
			resp.Votes = append(resp.Votes, model.ConvertVote(&votes[i]))
		}

		common.IncCounter(common.VoteSubmissionTotal, "batch", "success")
		return resp, nil
	}

	xcontext.Logger(ctx).Debugf("Batch vote failed, fallback to sequential submission: %v", err)

	resp := &model.SubmitVotesResponse{Votes: []model.Vote{}, Failures: []model.VoteFailure{}}
	for _, item := range items {
		vote, err := d.voteRepo.Submit(ctx, user.ID, item, voter)
		if err != nil {
			failure := model.VoteFailure{CategoryID: item.CategoryID, NomineeID: item.NomineeID}

			var errx errorx.Error
			if !errors.As(convertVoteError(ctx, err), &errx) {
				errx = errorx.Unknown
			}

			failure.Code = int(errx.Code)
			failure.Reason = errx.Code.Reason()
			failure.Error = errx.Message
			resp.Failures = append(resp.Failures, failure)
			continue
		}

		resp.Votes = append(resp.Votes, model.ConvertVote(vote))
	}

	result := "partial"
	switch {
	case len(resp.Failures) == 0:
		result = "success"
	case len(resp.Votes) == 0:
		result = "failed"
	}
	common.IncCounter(common.VoteSubmissionTotal, "batch", result)

	return resp, nil
}

func (d *voteDomain) GetMyVotes(
	ctx context.Context, req *model.GetMyVotesRequest,
) (*model.GetMyVotesResponse, error) {
	votes, err := d.voteRepo.GetByUserID(ctx, xcontext.RequestUserID(ctx), req.CategoryID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get votes of user: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Vote{}
	for i := range votes {
		result = append(result, model.ConvertVote(&votes[i]))
	}

	return &model.GetMyVotesResponse{Votes: result}, nil
}

// checkVoter loads the caller and passes it through the voting gate.
func (d *voteDomain) checkVoter(ctx context.Context) (*entity.User, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before voting")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, errorx.New(errorx.Unauthenticated, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.gate.ValidateVoteSubmission(slices.Contains(entity.GlobalAdminRoles, user.Role)); err != nil {
		return nil, err
	}

	return user, nil
}

func voterOf(user *entity.User) repository.Voter {
	return repository.Voter{DisplayName: user.Name, AvatarURL: user.AvatarURL}
}

// resultLabel is the metric label of a failed operation.
func resultLabel(err error) string {
	var errx errorx.Error
	if errors.As(err, &errx) {
		return errx.Code.Reason()
	}

	return errorx.Unknown.Code.Reason()
}
