package sync

type PlayMediaPayload struct {
	MediaId  string  `json:"media_id"`
	Position float64 `json:"position"`
	Mode     string  `json:"mode"`
	Title    string  `json:"title,omitempty"`
}

type PresencePayload struct {
	Members []string `json:"members"`
	Online  []string `json:"online"`
}

type MessagePayload struct {
	From string `json:"from,omitempty"`
	Text string `json:"text"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
