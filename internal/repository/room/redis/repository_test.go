package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collabstudy/server/internal/playback"
	"github.com/collabstudy/server/internal/repository/room"
)

func newTestRepo(t *testing.T) (*repo, *miniredis.Miniredis) {
	t.Helper()

	s := miniredis.RunT(t)
	rc := goredis.NewClient(&goredis.Options{Addr: s.Addr()})

	return NewRepo(rc, time.Hour), s
}

func TestRoomLifecycle(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	exists, err := r.RoomExists(ctx, "AB123")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = r.GetRoom(ctx, "AB123")
	assert.ErrorIs(t, err, room.ErrRoomNotFound)

	require.NoError(t, r.SetRoom(ctx, &room.SetRoomParams{RoomCode: "AB123", CreatedBy: "uid-1"}))

	exists, err = r.RoomExists(ctx, "AB123")
	require.NoError(t, err)
	assert.True(t, exists)

	roomData, err := r.GetRoom(ctx, "AB123")
	require.NoError(t, err)
	assert.Equal(t, "AB123", roomData.RoomCode)
	assert.Equal(t, "uid-1", roomData.CreatedBy)
}

func TestMembers(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.AddMemberToList(ctx, &room.AddMemberToListParams{RoomCode: "AB123", Username: "bob"}))
	require.NoError(t, r.AddMemberToList(ctx, &room.AddMemberToListParams{RoomCode: "AB123", Username: "alice"}))
	// adding twice is a no-op
	require.NoError(t, r.AddMemberToList(ctx, &room.AddMemberToListParams{RoomCode: "AB123", Username: "alice"}))

	members, err := r.GetMembers(ctx, "AB123")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, members)

	isMember, err := r.IsMemberInList(ctx, "AB123", "alice")
	require.NoError(t, err)
	assert.True(t, isMember)

	isMember, err = r.IsMemberInList(ctx, "AB123", "mallory")
	require.NoError(t, err)
	assert.False(t, isMember)

	require.NoError(t, r.RemoveMemberFromList(ctx, &room.RemoveMemberFromListParams{RoomCode: "AB123", Username: "bob"}))
	err = r.RemoveMemberFromList(ctx, &room.RemoveMemberFromListParams{RoomCode: "AB123", Username: "bob"})
	assert.ErrorIs(t, err, room.ErrUserNotFound)

	members, err = r.GetMembers(ctx, "AB123")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, members)
}

func TestPlaybackStateRoundTrip(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := r.GetPlaybackState(ctx, "AB123")
	assert.ErrorIs(t, err, room.ErrNoMedia)

	state := playback.State{
		MediaId:   "vid1",
		Mode:      playback.ModePaused,
		Position:  90500 * time.Millisecond,
		UpdatedAt: time.Unix(1700000000, 250_000_000),
	}
	require.NoError(t, r.SetPlaybackState(ctx, &room.SetPlaybackStateParams{RoomCode: "AB123", State: state}))

	got, err := r.GetPlaybackState(ctx, "AB123")
	require.NoError(t, err)
	assert.Equal(t, state.MediaId, got.MediaId)
	assert.Equal(t, state.Mode, got.Mode)
	assert.InDelta(t, state.Position.Seconds(), got.Position.Seconds(), 0.001)
	assert.WithinDuration(t, state.UpdatedAt, got.UpdatedAt, time.Millisecond)
}

func TestPlaybackStateMalformedReadsAsNoMedia(t *testing.T) {
	r, s := newTestRepo(t)
	ctx := context.Background()

	s.HSet("room:AB123:playback", "media_id", "vid1", "mode", "playing", "position", "not-a-number", "updated_at", "0")
	_, err := r.GetPlaybackState(ctx, "AB123")
	assert.ErrorIs(t, err, room.ErrNoMedia)

	s.HSet("room:XY999:playback", "media_id", "vid1", "mode", "rewinding", "position", "1", "updated_at", "1")
	_, err = r.GetPlaybackState(ctx, "XY999")
	assert.ErrorIs(t, err, room.ErrNoMedia)

	s.HSet("room:ZZ000:playback", "media_id", "vid1", "mode", "playing", "position", "-5", "updated_at", "1")
	_, err = r.GetPlaybackState(ctx, "ZZ000")
	assert.ErrorIs(t, err, room.ErrNoMedia)
}

func TestRemovePlaybackState(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	assert.ErrorIs(t, r.RemovePlaybackState(ctx, "AB123"), room.ErrNoMedia)

	state := playback.Replace("vid1", time.Now())
	require.NoError(t, r.SetPlaybackState(ctx, &room.SetPlaybackStateParams{RoomCode: "AB123", State: state}))
	require.NoError(t, r.RemovePlaybackState(ctx, "AB123"))

	_, err := r.GetPlaybackState(ctx, "AB123")
	assert.ErrorIs(t, err, room.ErrNoMedia)
}

func TestUserDocuments(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := r.GetUser(ctx, "uid-1")
	assert.ErrorIs(t, err, room.ErrUserNotFound)

	require.NoError(t, r.SetUser(ctx, &room.SetUserParams{
		UserId:  "uid-1",
		Name:    "alice",
		Email:   "alice@example.com",
		Picture: "https://example.com/a.png",
	}))

	user, err := r.GetUser(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)

	require.NoError(t, r.AddRoomToUserList(ctx, &room.AddRoomToUserListParams{UserId: "uid-1", RoomCode: "XY999"}))
	require.NoError(t, r.AddRoomToUserList(ctx, &room.AddRoomToUserListParams{UserId: "uid-1", RoomCode: "AB123"}))

	rooms, err := r.GetUserRooms(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"AB123", "XY999"}, rooms)

	require.NoError(t, r.RemoveRoomFromUserList(ctx, &room.RemoveRoomFromUserListParams{UserId: "uid-1", RoomCode: "XY999"}))
	rooms, err = r.GetUserRooms(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"AB123"}, rooms)
}
