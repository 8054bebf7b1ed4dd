package bot

import (
	"github.com/iamasit07/connect-n/internal/domain"
)

const (
	SCORE_FULL_RUN      = 100 // connect-length of the current player's pieces
	SCORE_ONE_SHORT     = 5   // N-1 own pieces and one gap
	SCORE_TWO_SHORT     = 2   // N-2 own pieces and two gaps
	SCORE_OPP_ONE_SHORT = -4  // opponent needs one more piece
	SCORE_CENTER_PIECE  = 3   // per own piece in the center column
)

// EvaluateWindow scores one connect-length slice from its piece counts
func EvaluateWindow(current, empty, opposing, connectLength int) int64 {
	var score int64

	switch {
	case current == connectLength:
		score += SCORE_FULL_RUN
	case current == connectLength-1 && empty == 1:
		score += SCORE_ONE_SHORT
	case current == connectLength-2 && empty == 2:
		score += SCORE_TWO_SHORT
	}

	if opposing == connectLength-1 && empty == 1 {
		score += SCORE_OPP_ONE_SHORT
	}

	return score
}

// ScorePosition values having just played at (row, column): every window through that cell
// plus a bonus for own pieces in the center column. It is local to the last move, not a full-board scan.
func ScorePosition(board *domain.Board, column, row int, current, opposing domain.Cell) int64 {
	n := board.ConnectLength()

	centerCol := board.Columns() / 2
	score := int64(SCORE_CENTER_PIECE * board.CountInColumn(centerCol, current))

	for _, dir := range domain.Directions {
		board.ForEachWindow(row, column, dir, func(start domain.Position) bool {
			mine, empty, theirs := board.CountWindow(start, dir, current, opposing)
			score += EvaluateWindow(mine, empty, theirs, n)
			return true
		})
	}

	return score
}
