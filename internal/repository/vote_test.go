package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/internal/entity"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/testutil"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_voteRepository_Submit(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewVoteRepository()
	voter := Voter{DisplayName: "Alice", AvatarURL: "avatar"}

	vote, err := repo.Submit(ctx, testutil.User2.ID,
		VoteItem{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee1A.ID}, voter)
	require.NoError(t, err)
	require.Equal(t, testutil.Nominee1A.ID, vote.NomineeID)
	require.False(t, vote.IsFinal)

	ballot, err := NewBallotRepository().GetByUserID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.False(t, ballot.IsFinal)
	require.False(t, ballot.SubmittedAt.Valid)
	require.Equal(t, "Alice", ballot.DisplayName)

	// Changing the vote updates the same row.
	updated, err := repo.Submit(ctx, testutil.User2.ID,
		VoteItem{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee1B.ID},
		Voter{DisplayName: "Alice B"})
	require.NoError(t, err)
	require.Equal(t, vote.ID, updated.ID)
	require.Equal(t, testutil.Nominee1B.ID, updated.NomineeID)

	votes, err := repo.GetByUserID(ctx, testutil.User2.ID, "")
	require.NoError(t, err)
	require.Len(t, votes, 1)

	ballot, err = NewBallotRepository().GetByUserID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice B", ballot.DisplayName)
}

func Test_voteRepository_Submit_Invalid(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewVoteRepository()

	tests := []struct {
		name    string
		item    VoteItem
		wantErr error
	}{
		{
			name:    "nominee of another category",
			item:    VoteItem{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee2A.ID},
			wantErr: ErrInvalidNominee,
		},
		{
			name:    "unknown nominee",
			item:    VoteItem{CategoryID: testutil.Category1.ID, NomineeID: "unknown"},
			wantErr: ErrInvalidNominee,
		},
		{
			name:    "inactive category",
			item:    VoteItem{CategoryID: testutil.Category3.ID, NomineeID: testutil.Nominee3A.ID},
			wantErr: ErrCategoryInactive,
		},
		{
			name:    "unknown category",
			item:    VoteItem{CategoryID: "unknown", NomineeID: testutil.Nominee1A.ID},
			wantErr: ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Submit(ctx, testutil.User3.ID, tt.item, Voter{})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	// A rejected vote does not leave a ballot behind.
	_, err := NewBallotRepository().GetByUserID(ctx, testutil.User3.ID)
	require.Error(t, err)
}

func Test_voteRepository_SubmitBatch(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewVoteRepository()

	votes, err := repo.SubmitBatch(ctx, testutil.User2.ID, []VoteItem{
		{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee1A.ID},
		{CategoryID: testutil.Category2.ID, NomineeID: testutil.Nominee2B.ID},
	}, Voter{})
	require.NoError(t, err)
	require.Len(t, votes, 2)

	// One invalid item rolls back the whole batch.
	_, err = repo.SubmitBatch(ctx, testutil.User3.ID, []VoteItem{
		{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee1A.ID},
		{CategoryID: testutil.Category3.ID, NomineeID: testutil.Nominee3A.ID},
	}, Voter{})
	require.ErrorIs(t, err, ErrCategoryInactive)

	count, err := repo.CountByUserID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}

func Test_voteRepository_FinalizedBallot(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewVoteRepository()

	_, err := repo.Submit(ctx, testutil.User2.ID,
		VoteItem{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee1A.ID}, Voter{})
	require.NoError(t, err)

	err = xcontext.DB(ctx).Model(&entity.Ballot{}).
		Where("user_id=?", testutil.User2.ID).
		Update("is_final", true).Error
	require.NoError(t, err)

	_, err = repo.Submit(ctx, testutil.User2.ID,
		VoteItem{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee1B.ID}, Voter{})
	require.ErrorIs(t, err, ErrBallotFinalized)

	_, err = repo.Submit(ctx, testutil.User2.ID,
		VoteItem{CategoryID: testutil.Category2.ID, NomineeID: testutil.Nominee2A.ID}, Voter{})
	require.ErrorIs(t, err, ErrBallotFinalized)

	votes, err := repo.GetByUserID(ctx, testutil.User2.ID, testutil.Category1.ID)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	require.Equal(t, testutil.Nominee1A.ID, votes[0].NomineeID)
}

func Test_voteRepository_CountResults(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewVoteRepository()

	for _, u := range []string{testutil.User1.ID, testutil.User2.ID} {
		_, err := repo.Submit(ctx, u,
			VoteItem{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee1C.ID}, Voter{})
		require.NoError(t, err)
	}
	_, err := repo.Submit(ctx, testutil.User3.ID,
		VoteItem{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee1A.ID}, Voter{})
	require.NoError(t, err)

	counts, err := repo.CountResults(ctx, []string{testutil.Category1.ID}, false)
	require.NoError(t, err)
	require.ElementsMatch(t, []NomineeVoteCount{
		{NomineeID: testutil.Nominee1C.ID, Count: 2},
		{NomineeID: testutil.Nominee1A.ID, Count: 1},
	}, counts)

	counts, err = repo.CountResults(ctx, []string{testutil.Category1.ID}, true)
	require.NoError(t, err)
	require.Empty(t, counts)

	byCategory, err := repo.CountByCategory(ctx)
	require.NoError(t, err)
	require.Equal(t, []CategoryVoteCount{{CategoryID: testutil.Category1.ID, Count: 3}}, byCategory)
}

func Test_voteRepository_Submit_Concurrent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewVoteRepository()

	nominees := []string{testutil.Nominee1A.ID, testutil.Nominee1B.ID, testutil.Nominee1C.ID}

	var wg sync.WaitGroup
	errs := make(chan error, 3*len(nominees))
	for i := 0; i < 3; i++ {
		for _, nomineeID := range nominees {
			wg.Add(1)
			go func(nomineeID string) {
				defer wg.Done()
				_, err := repo.Submit(ctx, testutil.User2.ID,
					VoteItem{CategoryID: testutil.Category1.ID, NomineeID: nomineeID}, Voter{})
				errs <- err
			}(nomineeID)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	votes, err := repo.GetByUserID(ctx, testutil.User2.ID, testutil.Category1.ID)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	require.Contains(t, nominees, votes[0].NomineeID)

	var ballots int64
	err = xcontext.DB(ctx).Model(&entity.Ballot{}).Where("user_id=?", testutil.User2.ID).Count(&ballots).Error
	require.NoError(t, err)
	require.Equal(t, int64(1), ballots)
}

func Test_voteRepository_Submit_RaceWithFinalize(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	voteRepo := NewVoteRepository()
	ballotRepo := NewBallotRepository()

	_, err := voteRepo.Submit(ctx, testutil.User2.ID,
		VoteItem{CategoryID: testutil.Category1.ID, NomineeID: testutil.Nominee1A.ID}, Voter{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var submitErr, finalizeErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, submitErr = voteRepo.Submit(ctx, testutil.User2.ID,
			VoteItem{CategoryID: testutil.Category2.ID, NomineeID: testutil.Nominee2A.ID}, Voter{})
	}()
	go func() {
		defer wg.Done()
		_, finalizeErr = ballotRepo.Finalize(ctx, testutil.User2.ID, time.Now())
	}()
	wg.Wait()

	require.NoError(t, finalizeErr)

	votes, err := voteRepo.GetByUserID(ctx, testutil.User2.ID, "")
	require.NoError(t, err)
	for _, v := range votes {
		require.True(t, v.IsFinal)
	}

	if submitErr != nil {
		// Finalize won the lock, the late vote was rejected and not written.
		require.ErrorIs(t, submitErr, ErrBallotFinalized)
		require.Len(t, votes, 1)
	} else {
		// The vote landed first and was finalized with the rest.
		require.Len(t, votes, 2)
	}
}
