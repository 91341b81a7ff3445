package request

// CreateRoomRequest is the request body for creating a room.
// A zero buy-in means the default; an empty passcode leaves the room
// open to anyone with the code.
type CreateRoomRequest struct {
	BuyIn    int    `json:"buy_in,omitempty"`
	Passcode string `json:"passcode,omitempty"`
}

// JoinRoomRequest is the request body for joining a room
type JoinRoomRequest struct {
	Passcode string `json:"passcode,omitempty"`
}

// AddPlayerRequest is the request body for adding a player to the roster
type AddPlayerRequest struct {
	Name string `json:"name"`
}

// SetBuyInRequest is the request body for changing the room buy-in
type SetBuyInRequest struct {
	BuyIn int `json:"buy_in"`
}

// SubmitRoundRequest is the request body for submitting a round.
// Scores carry the raw entered strings; empty, whitespace and "0"
// all mean the player contributed nothing this round.
type SubmitRoundRequest struct {
	WinnerID   string            `json:"winner_id"`
	Scores     map[string]string `json:"scores"`
	Multiplier string            `json:"multiplier,omitempty"`
}

// RememberNamesRequest is the request body for saving frequent names
type RememberNamesRequest struct {
	Names []string `json:"names"`
}
