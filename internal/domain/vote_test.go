package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/internal/model"
	"github.com/danishayman/bobo-game-awards-sub000/internal/repository"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/errorx"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestVoteDomain(t *testing.T, now time.Time) VoteDomain {
	return NewVoteDomain(
		repository.NewVoteRepository(),
		repository.NewUserRepository(),
		newTestGate(t, now),
	)
}

func Test_voteDomain_Submit(t *testing.T) {
	ctx := withUser(newFixtureContext(), testutil.User2.ID)
	domain := newTestVoteDomain(t, openTime)

	resp, err := domain.Submit(ctx, &model.SubmitVoteRequest{
		CategoryID: testutil.Category1.ID,
		NomineeID:  testutil.Nominee1A.ID,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.Nominee1A.ID, resp.Vote.NomineeID)
	require.Equal(t, testutil.User2.ID, resp.Vote.UserID)

	// Changing the vote keeps a single row per category.
	resp, err = domain.Submit(ctx, &model.SubmitVoteRequest{
		CategoryID: testutil.Category1.ID,
		NomineeID:  testutil.Nominee1C.ID,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.Nominee1C.ID, resp.Vote.NomineeID)

	myVotes, err := domain.GetMyVotes(ctx, &model.GetMyVotesRequest{})
	require.NoError(t, err)
	require.Len(t, myVotes.Votes, 1)
	require.Equal(t, testutil.Nominee1C.ID, myVotes.Votes[0].NomineeID)

	myVotes, err = domain.GetMyVotes(ctx, &model.GetMyVotesRequest{CategoryID: testutil.Category2.ID})
	require.NoError(t, err)
	require.Empty(t, myVotes.Votes)
}

func Test_voteDomain_Submit_Gate(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		userID   string
		wantCode errorx.Code
	}{
		{name: "open", now: openTime, userID: testutil.User2.ID},
		{name: "locked user", now: lockedTime, userID: testutil.User2.ID, wantCode: errorx.VotingLocked},
		{name: "locked admin", now: lockedTime, userID: testutil.User1.ID},
		{name: "ended user", now: endedTime, userID: testutil.User2.ID, wantCode: errorx.VotingEnded},
		{name: "ended admin", now: endedTime, userID: testutil.User1.ID, wantCode: errorx.VotingEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := withUser(newFixtureContext(), tt.userID)
			_, err := newTestVoteDomain(t, tt.now).Submit(ctx, &model.SubmitVoteRequest{
				CategoryID: testutil.Category1.ID,
				NomineeID:  testutil.Nominee1A.ID,
			})

			if tt.wantCode == 0 {
				require.NoError(t, err)
			} else {
				require.True(t, errorx.Is(err, tt.wantCode), "got %v", err)
			}
		})
	}
}

func Test_voteDomain_Submit_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.SubmitVoteRequest
		wantCode errorx.Code
	}{
		{
			name:     "missing nominee",
			req:      &model.SubmitVoteRequest{CategoryID: testutil.Category1.ID},
			wantCode: errorx.BadRequest,
		},
		{
			name:     "nominee of another category",
			req:      &model.SubmitVoteRequest{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee2A.ID},
			wantCode: errorx.InvalidNominee,
		},
		{
			name:     "inactive category",
			req:      &model.SubmitVoteRequest{CategoryID: testutil.Category3.ID, NomineeID: testutil.Nominee3A.ID},
			wantCode: errorx.CategoryInactive,
		},
		{
			name:     "unknown category",
			req:      &model.SubmitVoteRequest{CategoryID: "unknown", NomineeID: testutil.Nominee1A.ID},
			wantCode: errorx.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := withUser(newFixtureContext(), testutil.User2.ID)
			_, err := newTestVoteDomain(t, openTime).Submit(ctx, tt.req)
			require.True(t, errorx.Is(err, tt.wantCode), "got %v", err)
		})
	}
}

func Test_voteDomain_Submit_Unauthenticated(t *testing.T) {
	_, err := newTestVoteDomain(t, openTime).Submit(newFixtureContext(), &model.SubmitVoteRequest{
		CategoryID: testutil.Category1.ID,
		NomineeID:  testutil.Nominee1A.ID,
	})
	require.True(t, errorx.Is(err, errorx.Unauthenticated))
}

func Test_voteDomain_Submit_FinalizedBallot(t *testing.T) {
	ctx := withUser(newFixtureContext(), testutil.User2.ID)
	domain := newTestVoteDomain(t, openTime)

	_, err := domain.Submit(ctx, &model.SubmitVoteRequest{
		CategoryID: testutil.Category1.ID,
		NomineeID:  testutil.Nominee1A.ID,
	})
	require.NoError(t, err)

	_, err = repository.NewBallotRepository().Finalize(ctx, testutil.User2.ID, openTime)
	require.NoError(t, err)

	_, err = domain.Submit(ctx, &model.SubmitVoteRequest{
		CategoryID: testutil.Category1.ID,
		NomineeID:  testutil.Nominee1B.ID,
	})
	require.True(t, errorx.Is(err, errorx.BallotFinalized))

	// The existing vote is untouched.
	myVotes, err := domain.GetMyVotes(ctx, &model.GetMyVotesRequest{})
	require.NoError(t, err)
	require.Len(t, myVotes.Votes, 1)
	require.Equal(t, testutil.Nominee1A.ID, myVotes.Votes[0].NomineeID)
	require.True(t, myVotes.Votes[0].IsFinal)
}

func Test_voteDomain_SubmitBatch(t *testing.T) {
	ctx := withUser(newFixtureContext(), testutil.User2.ID)
	domain := newTestVoteDomain(t, openTime)

	resp, err := domain.SubmitBatch(ctx, &model.SubmitVotesRequest{
		Votes: []model.VoteItem{
			{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee1B.ID},
			{CategoryID: testutil.Category2.ID, NomineeID: testutil.Nominee2A.ID},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Votes, 2)
	require.Empty(t, resp.Failures)
}

func Test_voteDomain_SubmitBatch_PartialFailure(t *testing.T) {
	ctx := withUser(newFixtureContext(), testutil.User2.ID)
	domain := newTestVoteDomain(t, openTime)

	resp, err := domain.SubmitBatch(ctx, &model.SubmitVotesRequest{
		Votes: []model.VoteItem{
			{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee1B.ID},
			{CategoryID: testutil.Category3.ID, NomineeID: testutil.Nominee3A.ID},
			{CategoryID: testutil.Category2.ID, NomineeID: testutil.Nominee1A.ID},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Votes, 1)
	require.Equal(t, testutil.Category1.ID, resp.Votes[0].CategoryID)

	require.Len(t, resp.Failures, 2)
	require.Equal(t, testutil.Category3.ID, resp.Failures[0].CategoryID)
	require.Equal(t, "CATEGORY_INACTIVE", resp.Failures[0].Reason)
	require.Equal(t, int(errorx.CategoryInactive), resp.Failures[0].Code)
	require.Equal(t, testutil.Category2.ID, resp.Failures[1].CategoryID)
	require.Equal(t, "INVALID_NOMINEE", resp.Failures[1].Reason)

	myVotes, err := domain.GetMyVotes(ctx, &model.GetMyVotesRequest{})
	require.NoError(t, err)
	require.Len(t, myVotes.Votes, 1)
}

func Test_voteDomain_SubmitBatch_Invalid(t *testing.T) {
	tooMany := []model.VoteItem{}
	for i := 0; i <= MaxBatchVotes; i++ {
		tooMany = append(tooMany, model.VoteItem{CategoryID: fmt.Sprintf("c%d", i), NomineeID: "n"})
	}

	tests := []struct {
		name  string
		votes []model.VoteItem
	}{
		{name: "empty", votes: nil},
		{name: "too many", votes: tooMany},
		{
			name: "duplicated category",
			votes: []model.VoteItem{
				{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee1A.ID},
				{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee1B.ID},
			},
		},
		{
			name:  "missing nominee",
			votes: []model.VoteItem{{CategoryID: testutil.Category1.ID}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := withUser(newFixtureContext(), testutil.User2.ID)
			_, err := newTestVoteDomain(t, openTime).SubmitBatch(ctx, &model.SubmitVotesRequest{Votes: tt.votes})
			require.True(t, errorx.Is(err, errorx.BadRequest), "got %v", err)
		})
	}
}

func Test_voteDomain_SubmitBatch_Locked(t *testing.T) {
	ctx := withUser(newFixtureContext(), testutil.User2.ID)
	_, err := newTestVoteDomain(t, lockedTime).SubmitBatch(ctx, &model.SubmitVotesRequest{
		Votes: []model.VoteItem{{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee1A.ID}},
	})
	require.True(t, errorx.Is(err, errorx.VotingLocked))
}

func Test_voteDomain_GetVotingStatus(t *testing.T) {
	ctx := newFixtureContext()

	resp, err := newTestVoteDomain(t, lockedTime).GetVotingStatus(ctx, &model.GetVotingStatusRequest{})
	require.NoError(t, err)
	require.Equal(t, "locked", resp.State)
	require.False(t, resp.IsAdmin)
	require.False(t, resp.CanVote)
	require.Equal(t, "2026-01-07T15:59:59Z", resp.Deadline)

	resp, err = newTestVoteDomain(t, lockedTime).GetVotingStatus(
		withUser(ctx, testutil.User1.ID), &model.GetVotingStatusRequest{})
	require.NoError(t, err)
	require.True(t, resp.IsAdmin)
	require.True(t, resp.CanVote)

	resp, err = newTestVoteDomain(t, endedTime).GetVotingStatus(ctx, &model.GetVotingStatusRequest{})
	require.NoError(t, err)
	require.Equal(t, "ended", resp.State)
	require.False(t, resp.CanVote)
}
