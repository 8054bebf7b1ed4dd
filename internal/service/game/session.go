package game

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/iamasit07/connect-n/internal/domain"
	"github.com/iamasit07/connect-n/internal/service/bot"
)

const (
	ReasonConnected = "connected"
	ReasonBoardFull = "board_full"
)

// GameSession is one game played from a single client, against the computer or hot seat
type GameSession struct {
	GameID     string
	Game       *domain.Game
	Depth      int
	Reason     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	FinishedAt time.Time

	randomFirst bool
	round       int // bumped by Restart so stale computer moves are dropped
	rng         *rand.Rand
	engine      *bot.Engine
	pending     sync.WaitGroup
	mu          sync.Mutex
	manager     *SessionManager
}

// State returns a copy of the game for clients
func (gs *GameSession) State() domain.GameSnapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.Game.Snapshot()
}

func (gs *GameSession) snapshotLocked() domain.SessionSnapshot {
	return domain.SessionSnapshot{
		GameID:      gs.GameID,
		Game:        gs.Game.Snapshot(),
		Depth:       gs.Depth,
		RandomFirst: gs.randomFirst,
		CreatedAt:   gs.CreatedAt,
		UpdatedAt:   gs.UpdatedAt,
	}
}

func (gs *GameSession) saveSnapshotLocked() {
	if gs.Game.IsFinished() {
		gs.manager.deleteSnapshot(gs.GameID)
		return
	}
	gs.manager.saveSnapshot(gs.snapshotLocked())
}

func (gs *GameSession) send(msg domain.ServerMessage) {
	if err := gs.manager.conn.SendMessage(gs.GameID, msg); err != nil {
		log.Printf("[GAME] Error sending %s for game %s: %v", msg.Type, gs.GameID, err)
	}
}

// HandleMove plays column for the human whose turn it is and returns the landing row
func (gs *GameSession) HandleMove(column int) (int, error) {
	gs.mu.Lock()

	if gs.Game.IsFinished() {
		gs.mu.Unlock()
		return -1, domain.ErrGameOver
	}
	if gs.Game.CurrentPlayer().IsComputer {
		gs.mu.Unlock()
		return -1, domain.ErrComputerTurn
	}

	player := gs.Game.CurrentPlayer()
	row, err := gs.Game.MakeMove(column)
	if err != nil {
		gs.mu.Unlock()
		return -1, err
	}

	gs.afterMoveLocked(player, column, row)
	gs.mu.Unlock()

	gs.scheduleComputerMove()
	return row, nil
}

// HandleComputerMove lets the engine play if a computer is to move. A full
// board with no search space ends the game as a draw.
func (gs *GameSession) HandleComputerMove() error {
	gs.mu.Lock()
	return gs.computerMove(gs.round)
}

// runComputerMove plays the turn scheduled in round, unless Restart started a new one since
func (gs *GameSession) runComputerMove(round int) {
	gs.mu.Lock()
	if err := gs.computerMove(round); err != nil {
		log.Printf("[BOT] Error handling computer move in game %s: %v", gs.GameID, err)
	}
}

// computerMove must be called with gs.mu held and releases it
func (gs *GameSession) computerMove(round int) error {
	if gs.round != round || gs.Game.IsFinished() || !gs.Game.CurrentPlayer().IsComputer {
		gs.mu.Unlock()
		return nil
	}

	player := gs.Game.CurrentPlayer()
	opponent := gs.Game.OpposingPlayer()

	column, _, err := gs.engine.ChooseMove(gs.Game.Board, gs.Depth, player.Piece, opponent.Piece)
	if errors.Is(err, domain.ErrEmptySearchSpace) {
		gs.Game.EndInDraw()
		gs.finishLocked()
		gs.mu.Unlock()
		return nil
	}
	if err != nil {
		gs.mu.Unlock()
		return err
	}

	row, err := gs.Game.MakeMove(column)
	if err != nil {
		gs.mu.Unlock()
		return err
	}

	gs.afterMoveLocked(player, column, row)
	gs.mu.Unlock()

	gs.scheduleComputerMove()
	return nil
}

func (gs *GameSession) afterMoveLocked(player domain.Player, column, row int) {
	gs.UpdatedAt = time.Now()
	state := gs.Game.Snapshot()

	gs.send(domain.ServerMessage{
		Type:   "move_made",
		GameID: gs.GameID,
		Column: &column,
		Row:    &row,
		Player: player.Name,
		Piece:  player.Piece,
		State:  &state,
	})

	if gs.Game.IsFinished() {
		gs.finishLocked()
		return
	}
	gs.saveSnapshotLocked()
}

func (gs *GameSession) finishLocked() {
	gs.FinishedAt = time.Now()
	gs.UpdatedAt = gs.FinishedAt
	state := gs.Game.Snapshot()

	msg := domain.ServerMessage{
		Type:   "game_over",
		GameID: gs.GameID,
		State:  &state,
	}

	if winner, ok := gs.Game.WinnerPlayer(); ok {
		gs.Reason = ReasonConnected
		msg.Winner = winner.Name
		msg.Piece = winner.Piece
		msg.WinningLine = gs.Game.Board.WinningLine(gs.Game.LastMove.Row, gs.Game.LastMove.Column, winner.Piece)
		log.Printf("[GAME] Game %s won by %s after %d moves", gs.GameID, winner.Name, gs.Game.MoveCount)
	} else {
		gs.Reason = ReasonBoardFull
		msg.Winner = "draw"
		log.Printf("[GAME] Game %s ended in a draw after %d moves", gs.GameID, gs.Game.MoveCount)
	}
	msg.Reason = gs.Reason

	gs.send(msg)
	gs.saveSnapshotLocked()
}

// scheduleComputerMove plays the computer's turn after the configured delay
func (gs *GameSession) scheduleComputerMove() {
	gs.mu.Lock()
	if gs.Game.IsFinished() || !gs.Game.CurrentPlayer().IsComputer {
		gs.mu.Unlock()
		return
	}
	round := gs.round
	gs.pending.Add(1)
	gs.mu.Unlock()

	go func() {
		defer gs.pending.Done()

		// Small delay to feel natural
		if gs.manager.botDelay > 0 {
			time.Sleep(gs.manager.botDelay)
		}

		gs.runComputerMove(round)
	}()
}

// WaitForComputer blocks until scheduled computer moves have been played
func (gs *GameSession) WaitForComputer() {
	gs.pending.Wait()
}

// Restart clears the board and keeps the players and dimensions
func (gs *GameSession) Restart() error {
	gs.mu.Lock()

	players := gs.Game.Players
	if gs.randomFirst && gs.rng.Intn(2) == 1 {
		players[0], players[1] = players[1], players[0]
	}

	board := gs.Game.Board
	g, err := domain.NewGame(board.Columns(), board.Rows(), board.ConnectLength(), players)
	if err != nil {
		gs.mu.Unlock()
		return err
	}

	gs.Game = g
	gs.round++
	gs.Reason = ""
	gs.FinishedAt = time.Time{}
	gs.UpdatedAt = time.Now()

	state := g.Snapshot()
	gs.send(domain.ServerMessage{
		Type:   "game_state",
		GameID: gs.GameID,
		State:  &state,
	})
	gs.saveSnapshotLocked()
	log.Printf("[GAME] Game %s restarted", gs.GameID)
	gs.mu.Unlock()

	gs.scheduleComputerMove()
	return nil
}

// Hint asks the engine for the current player's best column without playing it
func (gs *GameSession) Hint() (int, int64, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.Game.IsFinished() {
		return -1, 0, domain.ErrGameOver
	}

	player := gs.Game.CurrentPlayer()
	return gs.engine.ChooseMove(gs.Game.Board, gs.Depth, player.Piece, gs.Game.OpposingPlayer().Piece)
}
