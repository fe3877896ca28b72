package playback

import "time"

type Mode string

const (
	ModePlaying Mode = "playing"
	ModePaused  Mode = "paused"
)

func (m Mode) IsValid() bool {
	return m == ModePlaying || m == ModePaused
}

// State is the authoritative playback snapshot of a room: one media item,
// its mode and the timeline position that was reported at UpdatedAt.
type State struct {
	MediaId   string
	Mode      Mode
	Position  time.Duration
	UpdatedAt time.Time
}

// Replace discards the previous timeline and starts the given media from
// zero in playing mode.
func Replace(mediaId string, now time.Time) State {
	return State{
		MediaId:   mediaId,
		Mode:      ModePlaying,
		Position:  0,
		UpdatedAt: now,
	}
}

// Project returns the extrapolated position at now. While playing the
// position advances with wall clock time, while paused it is frozen.
func (s State) Project(now time.Time) time.Duration {
	if s.Mode != ModePlaying {
		return s.Position
	}

	elapsed := now.Sub(s.UpdatedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	return s.Position + elapsed
}

// ApplyEvent overwrites mode, position and the update instant. The caller
// validates mode and position before invoking.
func (s State) ApplyEvent(mode Mode, position time.Duration, now time.Time) State {
	s.Mode = mode
	s.Position = position
	s.UpdatedAt = now

	return s
}
