package domain

type ClientMessage struct {
	Type   string `json:"type"`
	Token  string `json:"token,omitempty"`
	Column *int   `json:"column,omitempty"`
}

type ServerMessage struct {
	Type        string        `json:"type"`
	Message     string        `json:"message,omitempty"`
	GameID      string        `json:"gameId,omitempty"`
	Column      *int          `json:"column,omitempty"`
	Row         *int          `json:"row,omitempty"`
	Player      string        `json:"player,omitempty"`
	Piece       Cell          `json:"piece,omitempty"`
	Score       *int64        `json:"score,omitempty"`
	Winner      string        `json:"winner,omitempty"`
	Reason      string        `json:"reason,omitempty"`
	WinningLine []Position    `json:"winningLine,omitempty"`
	State       *GameSnapshot `json:"state,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
