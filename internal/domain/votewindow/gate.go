package votewindow

import (
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/pkg/errorx"
)

type Gate struct {
	Window
	now func() time.Time
}

func NewGate(w Window) *Gate {
	return &Gate{Window: w, now: time.Now}
}

// WithClock replaces the clock of the gate, mostly for tests.
func (g *Gate) WithClock(now func() time.Time) *Gate {
	return &Gate{Window: g.Window, now: now}
}

func (g *Gate) Now() time.Time {
	return g.now().UTC()
}

// ValidateVoteSubmission returns nil if the caller may vote now. VOTING_ENDED has priority over
// VOTING_LOCKED.
func (g *Gate) ValidateVoteSubmission(isAdmin bool) error {
	now := g.Now()
	if g.CanUserVote(now, isAdmin) {
		return nil
	}

	if !g.IsVotingActive(now) {
		return errorx.New(errorx.VotingEnded, "Voting has ended")
	}

	if g.IsVotingLocked(now) {
		return errorx.New(errorx.VotingLocked, "Voting is not open yet")
	}

	return errorx.New(errorx.NoPermission, "You do not have permission to vote")
}
