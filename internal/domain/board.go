package domain

import (
	"fmt"
	"math"
)

// Board is a connect-N grid. Row 0 is the bottom row, pieces fall towards it.
type Board struct {
	columns       int
	rows          int
	connectLength int
	cells         []Cell
}

func NewBoard(columns, rows, connectLength int) (*Board, error) {
	if columns <= 0 || rows <= 0 || connectLength <= 0 {
		return nil, fmt.Errorf("%w: %dx%d connect %d", ErrInvalidBoardConfig, columns, rows, connectLength)
	}
	if columns > math.MaxInt/rows {
		return nil, fmt.Errorf("%w: %dx%d does not fit in memory", ErrInvalidBoardConfig, columns, rows)
	}

	return &Board{
		columns:       columns,
		rows:          rows,
		connectLength: connectLength,
		cells:         make([]Cell, columns*rows),
	}, nil
}

func (b *Board) Columns() int       { return b.columns }
func (b *Board) Rows() int          { return b.rows }
func (b *Board) ConnectLength() int { return b.connectLength }

func (b *Board) inBounds(row, column int) bool {
	return row >= 0 && row < b.rows && column >= 0 && column < b.columns
}

func (b *Board) index(row, column int) int {
	return row*b.columns + column
}

// At returns the cell at (row, column); anything outside the board reads as Empty
func (b *Board) At(row, column int) Cell {
	if !b.inBounds(row, column) {
		return Empty
	}
	return b.cells[b.index(row, column)]
}

// IsValidMove is true when the column exists and its top row is still empty
func (b *Board) IsValidMove(column int) bool {
	if column < 0 || column >= b.columns {
		return false
	}
	return b.At(b.rows-1, column) == Empty
}

// NextOpenRow returns the lowest empty row in column, or -1 when the column is full
func (b *Board) NextOpenRow(column int) int {
	if column < 0 || column >= b.columns {
		return -1
	}
	for row := 0; row < b.rows; row++ {
		if b.cells[b.index(row, column)] == Empty {
			return row
		}
	}
	return -1
}

// DropPiece sets a cell without any validation. Callers find the row with NextOpenRow.
func (b *Board) DropPiece(row, column int, piece Cell) {
	b.cells[b.index(row, column)] = piece
}

// RemovePiece clears a cell, undoing DropPiece
func (b *Board) RemovePiece(row, column int) {
	b.cells[b.index(row, column)] = Empty
}

// ValidLocations lists every column that accepts a piece, lowest first
func (b *Board) ValidLocations() []int {
	valid := make([]int, 0, b.columns)
	for col := 0; col < b.columns; col++ {
		if b.IsValidMove(col) {
			valid = append(valid, col)
		}
	}
	return valid
}

func (b *Board) IsFull() bool {
	for col := 0; col < b.columns; col++ {
		if b.IsValidMove(col) {
			return false
		}
	}
	return true
}

// ColumnHeight is the number of pieces stacked in column
func (b *Board) ColumnHeight(column int) int {
	height := 0
	for row := 0; row < b.rows; row++ {
		if b.cells[b.index(row, column)] == Empty {
			break
		}
		height++
	}
	return height
}

// CountInColumn counts the cells in column holding piece
func (b *Board) CountInColumn(column int, piece Cell) int {
	count := 0
	for row := 0; row < b.rows; row++ {
		if b.cells[b.index(row, column)] == piece {
			count++
		}
	}
	return count
}

// PieceCount is the number of occupied cells on the whole board
func (b *Board) PieceCount() int {
	count := 0
	for _, cell := range b.cells {
		if cell != Empty {
			count++
		}
	}
	return count
}

// Clone creates a deep copy of the board
func (b *Board) Clone() *Board {
	clone := &Board{
		columns:       b.columns,
		rows:          b.rows,
		connectLength: b.connectLength,
		cells:         make([]Cell, len(b.cells)),
	}
	copy(clone.cells, b.cells)
	return clone
}

// BoardSnapshot is the transport/storage form of a board. Cells[0] is the bottom row.
type BoardSnapshot struct {
	Columns       int      `json:"columns"`
	Rows          int      `json:"rows"`
	ConnectLength int      `json:"connectLength"`
	Cells         [][]Cell `json:"cells"`
}

func (b *Board) Snapshot() BoardSnapshot {
	grid := make([][]Cell, b.rows)
	for row := range grid {
		grid[row] = make([]Cell, b.columns)
		copy(grid[row], b.cells[b.index(row, 0):b.index(row, 0)+b.columns])
	}
	return BoardSnapshot{
		Columns:       b.columns,
		Rows:          b.rows,
		ConnectLength: b.connectLength,
		Cells:         grid,
	}
}

// BoardFromSnapshot rebuilds a board, rejecting bad shapes, unknown cell values and floating pieces
func BoardFromSnapshot(s BoardSnapshot) (*Board, error) {
	b, err := NewBoard(s.Columns, s.Rows, s.ConnectLength)
	if err != nil {
		return nil, err
	}
	if len(s.Cells) != s.Rows {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoardConfig, s.Rows, len(s.Cells))
	}

	for row := range s.Cells {
		if len(s.Cells[row]) != s.Columns {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoardConfig, row, len(s.Cells[row]))
		}
		for col, cell := range s.Cells[row] {
			if cell != Empty && !cell.IsPiece() {
				return nil, fmt.Errorf("%w: bad cell value %d at (%d,%d)", ErrInvalidBoardConfig, cell, row, col)
			}
			if cell != Empty && row > 0 && s.Cells[row-1][col] == Empty {
				return nil, fmt.Errorf("%w: floating piece at (%d,%d)", ErrInvalidBoardConfig, row, col)
			}
			b.cells[b.index(row, col)] = cell
		}
	}
	return b, nil
}
