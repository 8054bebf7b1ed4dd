package bot

import (
	"math"

	"github.com/iamasit07/connect-n/internal/domain"
)

const (
	MINIMAX_WIN  int64 = 1_000_000_000_000_000
	MINIMAX_LOSS int64 = -MINIMAX_WIN
	MINIMAX_DRAW int64 = 0

	NegInf int64 = math.MinInt64
	PosInf int64 = math.MaxInt64
)

// Minimax searches depth plies below the position on board with alpha-beta pruning and returns
// the best column for the side to move together with its score, always from current's point of view.
//
// last is the move that produced this position. Pass domain.NoPosition at the root: the terminal test
// is skipped and the root moves are tried in a shuffled order (the engine's tie-break policy).
// Moves are applied to board and undone before returning, so board comes back unchanged.
func (e *Engine) Minimax(board *domain.Board, depth int, alpha, beta int64, maximizing bool, last domain.Position, current, opposing domain.Cell) (int, int64) {
	e.nodes++
	root := last.IsNone()

	if !root {
		if board.IsWinningMove(last.Row, last.Column, current) {
			return -1, MINIMAX_WIN
		}
		if board.IsWinningMove(last.Row, last.Column, opposing) {
			return -1, MINIMAX_LOSS
		}
		if board.IsFull() {
			return -1, MINIMAX_DRAW
		}
		if depth <= 0 {
			return -1, ScorePosition(board, last.Column, last.Row, current, opposing)
		}
	}

	validColumns := board.ValidLocations()
	if len(validColumns) == 0 {
		return -1, MINIMAX_DRAW
	}

	if root {
		if depth <= 0 {
			return e.PickBestMove(board, current, opposing)
		}
		e.shuffle(validColumns)
	}

	piece := opposing
	if maximizing {
		piece = current
	}

	bestCol := validColumns[0]
	if maximizing {
		maxEval := NegInf
		for _, col := range validColumns {
			row := board.NextOpenRow(col)
			board.DropPiece(row, col, piece)
			_, eval := e.Minimax(board, depth-1, alpha, beta, false, domain.Position{Row: row, Column: col}, current, opposing)
			board.RemovePiece(row, col)

			if eval > maxEval {
				maxEval = eval
				bestCol = col
			}
			alpha = max(alpha, maxEval)
			if alpha >= beta {
				break // beta cutoff
			}
		}
		return bestCol, maxEval
	}

	minEval := PosInf
	for _, col := range validColumns {
		row := board.NextOpenRow(col)
		board.DropPiece(row, col, piece)
		_, eval := e.Minimax(board, depth-1, alpha, beta, true, domain.Position{Row: row, Column: col}, current, opposing)
		board.RemovePiece(row, col)

		if eval < minEval {
			minEval = eval
			bestCol = col
		}
		beta = min(beta, minEval)
		if alpha >= beta {
			break // alpha cutoff
		}
	}
	return bestCol, minEval
}
