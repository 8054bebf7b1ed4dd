package domain

// Direction is a unit step along one of the four lines a run can lie on
type Direction struct {
	DRow    int
	DColumn int
}

var (
	Horizontal   = Direction{DRow: 0, DColumn: 1}
	Vertical     = Direction{DRow: 1, DColumn: 0}
	Diagonal     = Direction{DRow: 1, DColumn: 1}  // "/" with row 0 at the bottom
	AntiDiagonal = Direction{DRow: 1, DColumn: -1} // "\"
)

var Directions = [4]Direction{Horizontal, Vertical, Diagonal, AntiDiagonal}

// ForEachWindow calls visit with the start of every connect-length window that contains (row, column)
// along dir. Windows that would leave the board are skipped, so short diagonals never show up.
// Returning false from visit stops the walk.
func (b *Board) ForEachWindow(row, column int, dir Direction, visit func(start Position) bool) {
	n := b.connectLength
	for k := n - 1; k >= 0; k-- {
		startRow, startCol := row-k*dir.DRow, column-k*dir.DColumn
		endRow, endCol := startRow+(n-1)*dir.DRow, startCol+(n-1)*dir.DColumn
		if !b.inBounds(startRow, startCol) || !b.inBounds(endRow, endCol) {
			continue
		}
		if !visit(Position{Row: startRow, Column: startCol}) {
			return
		}
	}
}

// CountWindow tallies the window starting at start along dir
func (b *Board) CountWindow(start Position, dir Direction, current, opposing Cell) (currentCount, emptyCount, opposingCount int) {
	r, c := start.Row, start.Column
	for i := 0; i < b.connectLength; i++ {
		switch b.cells[b.index(r, c)] {
		case current:
			currentCount++
		case opposing:
			opposingCount++
		case Empty:
			emptyCount++
		}
		r += dir.DRow
		c += dir.DColumn
	}
	return currentCount, emptyCount, opposingCount
}

// IsWinningMove checks only the windows passing through the last placed piece
func (b *Board) IsWinningMove(row, column int, piece Cell) bool {
	if !piece.IsPiece() || !b.inBounds(row, column) {
		return false
	}

	for _, dir := range Directions {
		won := false
		b.ForEachWindow(row, column, dir, func(start Position) bool {
			if b.windowFilledWith(start, dir, piece) {
				won = true
				return false
			}
			return true
		})
		if won {
			return true
		}
	}
	return false
}

func (b *Board) windowFilledWith(start Position, dir Direction, piece Cell) bool {
	r, c := start.Row, start.Column
	for i := 0; i < b.connectLength; i++ {
		if b.cells[b.index(r, c)] != piece {
			return false
		}
		r += dir.DRow
		c += dir.DColumn
	}
	return true
}

// IsTerminal is true when the last move won for either side or no column accepts a piece
func (b *Board) IsTerminal(row, column int, p1, p2 Cell) bool {
	return b.IsWinningMove(row, column, p1) ||
		b.IsWinningMove(row, column, p2) ||
		b.IsFull()
}

// WinningLine returns the cells of the first completed window through (row, column), or nil
func (b *Board) WinningLine(row, column int, piece Cell) []Position {
	if !piece.IsPiece() || !b.inBounds(row, column) {
		return nil
	}

	for _, dir := range Directions {
		var line []Position
		b.ForEachWindow(row, column, dir, func(start Position) bool {
			if !b.windowFilledWith(start, dir, piece) {
				return true
			}
			line = make([]Position, b.connectLength)
			for i := range line {
				line[i] = Position{Row: start.Row + i*dir.DRow, Column: start.Column + i*dir.DColumn}
			}
			return false
		})
		if line != nil {
			return line
		}
	}
	return nil
}
