package redis

import (
	"context"
	"fmt"

	"github.com/collabstudy/server/internal/playback"
	"github.com/collabstudy/server/internal/repository/room"
)

func (r repo) getPlaybackKey(roomCode string) string {
	return "room:" + roomCode + ":playback"
}

func (r repo) SetPlaybackState(ctx context.Context, params *room.SetPlaybackStateParams) error {
	playbackKey := r.getPlaybackKey(params.RoomCode)
	if err := r.rc.HSet(ctx, playbackKey,
		"media_id", params.State.MediaId,
		"mode", string(params.State.Mode),
		"position", formatSeconds(params.State.Position),
		"updated_at", formatUnixSeconds(params.State.UpdatedAt),
	).Err(); err != nil {
		return fmt.Errorf("failed to set playback state: %w", err)
	}

	r.rc.Expire(ctx, playbackKey, r.expireDuration)

	return nil
}

// GetPlaybackState rehydrates the persisted snapshot. A missing or
// malformed snapshot reads as ErrNoMedia, never as a failure.
func (r repo) GetPlaybackState(ctx context.Context, roomCode string) (playback.State, error) {
	playbackKey := r.getPlaybackKey(roomCode)
	fields, err := r.rc.HGetAll(ctx, playbackKey).Result()
	if err != nil {
		return playback.State{}, fmt.Errorf("failed to get playback state: %w", err)
	}

	if len(fields) == 0 {
		return playback.State{}, room.ErrNoMedia
	}

	state, ok := scanPlaybackState(fields)
	if !ok {
		return playback.State{}, room.ErrNoMedia
	}

	r.rc.Expire(ctx, playbackKey, r.expireDuration)

	return state, nil
}

func (r repo) RemovePlaybackState(ctx context.Context, roomCode string) error {
	res, err := r.rc.Del(ctx, r.getPlaybackKey(roomCode)).Result()
	if err != nil {
		return fmt.Errorf("failed to remove playback state: %w", err)
	}
	if res == 0 {
		return room.ErrNoMedia
	}

	return nil
}

func scanPlaybackState(fields map[string]string) (playback.State, bool) {
	mediaId := fields["media_id"]
	if mediaId == "" {
		return playback.State{}, false
	}

	mode := playback.Mode(fields["mode"])
	if !mode.IsValid() {
		return playback.State{}, false
	}

	position, ok := parseSeconds(fields["position"])
	if !ok || position < 0 {
		return playback.State{}, false
	}

	updatedAt, ok := parseUnixSeconds(fields["updated_at"])
	if !ok {
		return playback.State{}, false
	}

	return playback.State{
		MediaId:   mediaId,
		Mode:      mode,
		Position:  position,
		UpdatedAt: updatedAt,
	}, true
}
