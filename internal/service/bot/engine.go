package bot

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/iamasit07/connect-n/internal/domain"
)

// Engine picks moves for computer players. It is not safe for concurrent use:
// give each game its own engine.
type Engine struct {
	rng   *rand.Rand
	nodes int64
}

// NewEngine seeds the tie-break generator; seed 0 means time based
func NewEngine(seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// NodesVisited is the number of positions the last ChooseMove call looked at
func (e *Engine) NodesVisited() int64 {
	return e.nodes
}

func (e *Engine) shuffle(columns []int) {
	e.rng.Shuffle(len(columns), func(i, j int) {
		columns[i], columns[j] = columns[j], columns[i]
	})
}

// ChooseMove returns the engine's column for current on board searching depth plies.
// The board passed in is never modified. With no open column it returns ErrEmptySearchSpace,
// which callers treat as a draw.
func (e *Engine) ChooseMove(board *domain.Board, depth int, current, opposing domain.Cell) (int, int64, error) {
	if !current.IsPiece() || opposing != current.Opponent() {
		return -1, 0, fmt.Errorf("choose move: bad pieces %v vs %v", current, opposing)
	}
	if board.IsFull() {
		return -1, MINIMAX_DRAW, domain.ErrEmptySearchSpace
	}

	start := time.Now()
	e.nodes = 0

	work := board.Clone()
	column, score := e.Minimax(work, depth, NegInf, PosInf, true, domain.NoPosition, current, opposing)

	log.Printf("[BOT] %v picked column %d (score %d, depth %d, %d nodes, %s)",
		current, column, score, depth, e.nodes, time.Since(start).Round(time.Microsecond))

	return column, score, nil
}

// CalculateBestMove selects the move for a difficulty name, falling back to fallbackDepth
func (e *Engine) CalculateBestMove(board *domain.Board, current domain.Cell, difficulty string, fallbackDepth int) (int, error) {
	column, _, err := e.ChooseMove(board, DepthFor(difficulty, fallbackDepth), current, current.Opponent())
	return column, err
}
