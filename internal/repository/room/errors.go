package room

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrUserNotFound = errors.New("user not found")
	// ErrNoMedia is returned when a room has no playback snapshot or the
	// persisted snapshot is malformed.
	ErrNoMedia = errors.New("no media")
)
