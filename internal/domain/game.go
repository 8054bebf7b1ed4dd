package domain

import "fmt"

// Player is fixed for the lifetime of a game
type Player struct {
	Name       string `json:"name"`
	Piece      Cell   `json:"piece"`
	IsComputer bool   `json:"isComputer"`
}

type Game struct {
	Board     *Board
	Players   [2]Player
	Current   int // index into Players
	Status    GameStatus
	Winner    Cell
	MoveCount int
	LastMove  Position
}

// NewGame starts an empty game. players[0] moves first.
func NewGame(columns, rows, connectLength int, players [2]Player) (*Game, error) {
	board, err := NewBoard(columns, rows, connectLength)
	if err != nil {
		return nil, err
	}
	if !players[0].Piece.IsPiece() || players[1].Piece != players[0].Piece.Opponent() {
		return nil, fmt.Errorf("players need distinct pieces, got %v and %v", players[0].Piece, players[1].Piece)
	}

	return &Game{
		Board:    board,
		Players:  players,
		Current:  0,
		Status:   StatusActive,
		Winner:   Empty,
		LastMove: NoPosition,
	}, nil
}

func (g *Game) CurrentPlayer() Player {
	return g.Players[g.Current]
}

func (g *Game) OpposingPlayer() Player {
	return g.Players[1-g.Current]
}

// MakeMove drops the current player's piece in column and advances the turn.
// The board is untouched when the move is rejected.
func (g *Game) MakeMove(column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameOver
	}

	if !g.Board.IsValidMove(column) {
		return -1, ErrInvalidColumn
	}

	player := g.CurrentPlayer()
	row := g.Board.NextOpenRow(column)
	g.Board.DropPiece(row, column, player.Piece)
	g.MoveCount++
	g.LastMove = Position{Row: row, Column: column}

	if g.Board.IsWinningMove(row, column, player.Piece) {
		g.Status = StatusWon
		g.Winner = player.Piece
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.Current = 1 - g.Current
	return row, nil
}

// Declare a draw without a move, used when the engine finds no search space
func (g *Game) EndInDraw() {
	if g.Status == StatusActive {
		g.Status = StatusDraw
	}
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}

// WinnerPlayer returns the player owning the winning piece
func (g *Game) WinnerPlayer() (Player, bool) {
	if g.Status != StatusWon {
		return Player{}, false
	}
	for _, p := range g.Players {
		if p.Piece == g.Winner {
			return p, true
		}
	}
	return Player{}, false
}

// GameSnapshot is what gets stored in redis and sent to clients
type GameSnapshot struct {
	Board     BoardSnapshot `json:"board"`
	Players   [2]Player     `json:"players"`
	Current   int           `json:"current"`
	Status    GameStatus    `json:"status"`
	Winner    Cell          `json:"winner"`
	MoveCount int           `json:"moveCount"`
	LastMove  Position      `json:"lastMove"`
}

func (g *Game) Snapshot() GameSnapshot {
	return GameSnapshot{
		Board:     g.Board.Snapshot(),
		Players:   g.Players,
		Current:   g.Current,
		Status:    g.Status,
		Winner:    g.Winner,
		MoveCount: g.MoveCount,
		LastMove:  g.LastMove,
	}
}

func GameFromSnapshot(s GameSnapshot) (*Game, error) {
	board, err := BoardFromSnapshot(s.Board)
	if err != nil {
		return nil, err
	}
	if s.Current != 0 && s.Current != 1 {
		return nil, fmt.Errorf("invalid current player index %d", s.Current)
	}
	if !s.Players[0].Piece.IsPiece() || s.Players[1].Piece != s.Players[0].Piece.Opponent() {
		return nil, fmt.Errorf("players need distinct pieces, got %v and %v", s.Players[0].Piece, s.Players[1].Piece)
	}

	switch s.Status {
	case StatusActive, StatusDraw:
		if s.Winner != Empty {
			return nil, fmt.Errorf("%s game cannot have winner %v", s.Status, s.Winner)
		}
	case StatusWon:
		if !s.Winner.IsPiece() {
			return nil, fmt.Errorf("won game needs a winning piece, got %v", s.Winner)
		}
	default:
		return nil, fmt.Errorf("unknown game status %q", s.Status)
	}

	return &Game{
		Board:     board,
		Players:   s.Players,
		Current:   s.Current,
		Status:    s.Status,
		Winner:    s.Winner,
		MoveCount: s.MoveCount,
		LastMove:  s.LastMove,
	}, nil
}
