package room

type Room struct {
	RoomCode  string `redis:"room_code"`
	CreatedBy string `redis:"created_by"`
}

type User struct {
	UserId  string `redis:"user_id"`
	Name    string `redis:"name"`
	Email   string `redis:"email"`
	Picture string `redis:"picture"`
}
