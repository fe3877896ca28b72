package session

// Session binds one live connection to a participant name and a room code.
// It exists only while the connection is open and is never persisted.
type Session struct {
	Username string
	RoomCode string
}
