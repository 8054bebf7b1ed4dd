package bot

import (
	"github.com/iamasit07/connect-n/internal/domain"
)

// PickBestMove is the one-ply greedy pick: drop in each valid column, score it with ScorePosition,
// keep the first strictly best in shuffled order. Returns -1 when no column is open.
func (e *Engine) PickBestMove(board *domain.Board, current, opposing domain.Cell) (int, int64) {
	validColumns := board.ValidLocations()
	if len(validColumns) == 0 {
		return -1, MINIMAX_DRAW
	}
	e.shuffle(validColumns)

	bestCol := validColumns[0]
	bestScore := NegInf
	for _, col := range validColumns {
		row := board.NextOpenRow(col)
		board.DropPiece(row, col, current)
		score := ScorePosition(board, col, row, current, opposing)
		board.RemovePiece(row, col)

		if score > bestScore {
			bestScore = score
			bestCol = col
		}
	}

	return bestCol, bestScore
}
