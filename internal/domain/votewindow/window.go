package votewindow

import (
	"fmt"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/config"
)

const wallClockLayout = "2006-01-02 15:04:05"

type State string

const (
	StateOpen   State = "open"
	StateLocked State = "locked"
	StateEnded  State = "ended"
)

// Window is the voting period. It is built once at startup and never mutated.
type Window struct {
	Deadline        time.Time
	LiveVotingStart time.Time
	LockEnabled     bool
}

// FromConfigs converts the wall-clock strings of cfg, interpreted in cfg.TimezoneOffset, into
// absolute instants.
func FromConfigs(cfg config.VotingConfigs) (Window, error) {
	loc, err := parseOffset(cfg.TimezoneOffset)
	if err != nil {
		return Window{}, err
	}

	deadline, err := time.ParseInLocation(wallClockLayout, cfg.Deadline, loc)
	if err != nil {
		return Window{}, fmt.Errorf("invalid voting deadline %q: %w", cfg.Deadline, err)
	}

	liveStart, err := time.ParseInLocation(wallClockLayout, cfg.LiveVotingStart, loc)
	if err != nil {
		return Window{}, fmt.Errorf("invalid live voting start %q: %w", cfg.LiveVotingStart, err)
	}

	return Window{
		Deadline:        deadline.UTC(),
		LiveVotingStart: liveStart.UTC(),
		LockEnabled:     cfg.LockEnabled,
	}, nil
}

// parseOffset accepts offsets like "+08:00", "-05:30" or "Z".
func parseOffset(offset string) (*time.Location, error) {
	if offset == "" || offset == "Z" {
		return time.UTC, nil
	}

	t, err := time.Parse("-07:00", offset)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone offset %q: %w", offset, err)
	}

	_, seconds := t.Zone()
	return time.FixedZone(offset, seconds), nil
}

// IsVotingActive reports whether now is strictly before the deadline. The deadline instant itself
// already counts as ended.
func (w Window) IsVotingActive(now time.Time) bool {
	return now.Before(w.Deadline)
}

func (w Window) IsLiveVotingActive(now time.Time) bool {
	return !w.LockEnabled || !now.Before(w.LiveVotingStart)
}

func (w Window) IsVotingLocked(now time.Time) bool {
	return !w.IsLiveVotingActive(now)
}

// CanUserVote only lets admins through the lock window. Nobody votes after the deadline.
func (w Window) CanUserVote(now time.Time, isAdmin bool) bool {
	if !w.IsVotingActive(now) {
		return false
	}

	if w.IsVotingLocked(now) {
		return isAdmin
	}

	return true
}

// State reports ended before locked.
func (w Window) State(now time.Time) State {
	switch {
	case !w.IsVotingActive(now):
		return StateEnded
	case w.IsVotingLocked(now):
		return StateLocked
	default:
		return StateOpen
	}
}
