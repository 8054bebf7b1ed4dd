package domain

// Cell is the occupancy of a single board square
type Cell int

const (
	Empty   Cell = 0
	Player1 Cell = 1
	Player2 Cell = 2
)

// IsPiece reports whether c is a player's piece (not Empty, not garbage)
func (c Cell) IsPiece() bool {
	return c == Player1 || c == Player2
}

// Opponent returns the other player's piece. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

func (c Cell) String() string {
	switch c {
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	default:
		return "Empty"
	}
}

// classic 7x6 connect four
const (
	DefaultColumns       = 7
	DefaultRows          = 6
	DefaultConnectLength = 4
)

// Position is a (row, column) pair on the board
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// NoPosition marks that no piece has been placed yet
var NoPosition = Position{Row: -1, Column: -1}

func (p Position) IsNone() bool {
	return p.Row < 0 || p.Column < 0
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn      Error = "invalid column"
	ErrEmptySearchSpace   Error = "no valid moves left"
	ErrInvalidBoardConfig Error = "invalid board configuration"
	ErrInvalidDepth       Error = "invalid search depth"
	ErrGameOver           Error = "game is over"
	ErrNotYourTurn        Error = "not your turn"
	ErrComputerTurn       Error = "computer is to move"
	ErrGameNotFound       Error = "game not found"
)
