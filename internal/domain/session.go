package domain

import "time"

// SessionSnapshot is an in-progress game as kept in the live-game store
type SessionSnapshot struct {
	GameID      string       `json:"gameId"`
	Game        GameSnapshot `json:"game"`
	Depth       int          `json:"depth"`
	RandomFirst bool         `json:"randomFirst"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
