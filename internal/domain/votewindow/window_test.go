package votewindow

import (
	"testing"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/config"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func defaultWindow(t *testing.T) Window {
	w, err := FromConfigs(config.VotingConfigs{
		TimezoneOffset:  "+08:00",
		Deadline:        "2026-01-07 23:59:59",
		LiveVotingStart: "2025-10-01 00:00:00",
		LockEnabled:     true,
	})
	require.NoError(t, err)
	return w
}

func TestFromConfigs(t *testing.T) {
	w := defaultWindow(t)
	require.Equal(t, time.Date(2026, 1, 7, 15, 59, 59, 0, time.UTC), w.Deadline)
	require.Equal(t, time.Date(2025, 9, 30, 16, 0, 0, 0, time.UTC), w.LiveVotingStart)
	require.True(t, w.LockEnabled)

	_, err := FromConfigs(config.VotingConfigs{TimezoneOffset: "+8", Deadline: "2026-01-07 23:59:59"})
	require.Error(t, err)

	_, err = FromConfigs(config.VotingConfigs{TimezoneOffset: "+08:00", Deadline: "2026/01/07"})
	require.Error(t, err)

	w, err = FromConfigs(config.VotingConfigs{
		Deadline:        "2026-01-07 23:59:59",
		LiveVotingStart: "2025-10-01 00:00:00",
	})
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 1, 7, 23, 59, 59, 0, time.UTC), w.Deadline)
}

func TestWindow_Deadline(t *testing.T) {
	w := defaultWindow(t)

	require.True(t, w.IsVotingActive(w.Deadline.Add(-time.Nanosecond)))
	require.False(t, w.IsVotingActive(w.Deadline))
	require.False(t, w.IsVotingActive(w.Deadline.Add(time.Second)))

	require.False(t, w.CanUserVote(w.Deadline, true))
	require.False(t, w.CanUserVote(w.Deadline, false))
	require.Equal(t, StateEnded, w.State(w.Deadline))
}

func TestWindow_Lock(t *testing.T) {
	w := defaultWindow(t)

	before := w.LiveVotingStart.Add(-time.Second)
	require.True(t, w.IsVotingLocked(before))
	require.False(t, w.IsLiveVotingActive(before))
	require.True(t, w.CanUserVote(before, true))
	require.False(t, w.CanUserVote(before, false))
	require.Equal(t, StateLocked, w.State(before))

	require.False(t, w.IsVotingLocked(w.LiveVotingStart))
	require.True(t, w.CanUserVote(w.LiveVotingStart, false))
	require.Equal(t, StateOpen, w.State(w.LiveVotingStart))

	w.LockEnabled = false
	require.False(t, w.IsVotingLocked(before))
	require.True(t, w.CanUserVote(before, false))
	require.Equal(t, StateOpen, w.State(before))
}

func TestGate_ValidateVoteSubmission(t *testing.T) {
	g := NewGate(defaultWindow(t))

	tests := []struct {
		name    string
		now     time.Time
		isAdmin bool
		wantErr errorx.Code
	}{
		{
			name:    "non-admin in lock window",
			now:     time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
			wantErr: errorx.VotingLocked,
		},
		{
			name:    "admin in lock window",
			now:     time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
			isAdmin: true,
		},
		{
			name: "user during live voting",
			now:  time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "admin after deadline",
			now:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			isAdmin: true,
			wantErr: errorx.VotingEnded,
		},
		{
			name:    "user after deadline",
			now:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			wantErr: errorx.VotingEnded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.WithClock(func() time.Time { return tt.now }).ValidateVoteSubmission(tt.isAdmin)
			if tt.wantErr == 0 {
				require.NoError(t, err)
				return
			}

			require.True(t, errorx.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestGate_EndedBeforeLocked(t *testing.T) {
	// Deadline before live start: the window is both ended and locked.
	g := NewGate(Window{
		Deadline:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		LiveVotingStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		LockEnabled:     true,
	}).WithClock(func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) })

	require.True(t, errorx.Is(g.ValidateVoteSubmission(false), errorx.VotingEnded))
	require.Equal(t, StateEnded, g.State(g.Now()))
}
