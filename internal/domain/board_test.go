package domain

import (
	"errors"
	"math"
	"testing"
)

func mustParse(t *testing.T, n int, lines ...string) *Board {
	t.Helper()
	b, err := ParseBoard(n, lines...)
	if err != nil {
		t.Fatalf("parse board: %v", err)
	}
	return b
}

func mustBoard(t *testing.T, columns, rows, n int) *Board {
	t.Helper()
	b, err := NewBoard(columns, rows, n)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	return b
}

// drawnBoard is a full 7x6 board where nobody has four in a row
func drawnBoard(t *testing.T) *Board {
	return mustParse(t, 4,
		"OXOOXOX",
		"XOXOXOX",
		"OXOOXXO",
		"XXOXOOX",
		"XOXOXOO",
		"XOOXOXX",
	)
}

func TestNewBoardRejectsNonPositiveDimensions(t *testing.T) {
	for _, dims := range [][3]int{{0, 6, 4}, {7, 0, 4}, {7, 6, 0}, {-1, 6, 4}} {
		_, err := NewBoard(dims[0], dims[1], dims[2])
		if !errors.Is(err, ErrInvalidBoardConfig) {
			t.Fatalf("expected ErrInvalidBoardConfig for %v, got %v", dims, err)
		}
	}
}

func TestNewBoardRejectsOverflowingDimensions(t *testing.T) {
	for _, dims := range [][3]int{{1 << 62, 4, 4}, {4, 1 << 62, 4}, {math.MaxInt, 2, 4}} {
		b, err := NewBoard(dims[0], dims[1], dims[2])
		if !errors.Is(err, ErrInvalidBoardConfig) {
			t.Fatalf("expected ErrInvalidBoardConfig for %v, got %v", dims, err)
		}
		if b != nil {
			t.Fatalf("expected no board for %v", dims)
		}
	}

	s := BoardSnapshot{Columns: 1 << 62, Rows: 4, ConnectLength: 4}
	if _, err := BoardFromSnapshot(s); !errors.Is(err, ErrInvalidBoardConfig) {
		t.Fatalf("expected ErrInvalidBoardConfig from snapshot, got %v", err)
	}
}

func TestIsValidMoveOutOfRange(t *testing.T) {
	for _, dims := range [][2]int{{7, 6}, {4, 4}, {10, 9}} {
		b := mustBoard(t, dims[0], dims[1], 4)
		for _, col := range []int{-100, -1, dims[0], dims[0] + 1, 1000} {
			if b.IsValidMove(col) {
				t.Fatalf("column %d should be invalid on a %d-column board", col, dims[0])
			}
		}
		for col := 0; col < dims[0]; col++ {
			if !b.IsValidMove(col) {
				t.Fatalf("column %d should be valid on an empty board", col)
			}
		}
	}
}

func TestDropPieceKeepsGravity(t *testing.T) {
	b := mustBoard(t, 5, 4, 3)
	pieces := []Cell{Player1, Player2}

	for i := 0; i < 4; i++ {
		before := b.ColumnHeight(2)
		row := b.NextOpenRow(2)
		if row != before {
			t.Fatalf("expected next open row %d, got %d", before, row)
		}
		b.DropPiece(row, 2, pieces[i%2])
		if got := b.ColumnHeight(2); got != before+1 {
			t.Fatalf("expected height %d after drop, got %d", before+1, got)
		}
		for r := 0; r < b.Rows(); r++ {
			if r < b.ColumnHeight(2) && b.At(r, 2) == Empty {
				t.Fatalf("gap at row %d below the top piece", r)
			}
		}
	}

	if b.IsValidMove(2) {
		t.Fatalf("full column should not accept a move")
	}
	if row := b.NextOpenRow(2); row != -1 {
		t.Fatalf("expected -1 for a full column, got %d", row)
	}
}

func TestValidLocationsAscending(t *testing.T) {
	b := mustParse(t, 3,
		"X.O.",
		"XOOX",
	)
	got := b.ValidLocations()
	want := []int{1, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestIsWinningMoveHorizontal(t *testing.T) {
	b := mustParse(t, 4,
		".......",
		".......",
		".......",
		".......",
		".......",
		".XXX...",
	)
	if b.IsWinningMove(0, 2, Player1) {
		t.Fatalf("three in a row must not win with connect 4")
	}

	b.DropPiece(0, 4, Player1)
	if !b.IsWinningMove(0, 4, Player1) {
		t.Fatalf("expected horizontal win through (0,4)")
	}
	if !b.IsWinningMove(0, 1, Player1) {
		t.Fatalf("expected the same run to be found from its left end")
	}
	if b.IsWinningMove(0, 4, Player2) {
		t.Fatalf("run belongs to Player1 only")
	}
}

func TestIsWinningMoveAllDirections(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		row, col int
	}{
		{
			name: "vertical",
			lines: []string{
				"....",
				"..O.",
				"..O.",
				"..O.",
				"X.O.",
			},
			row: 3, col: 2,
		},
		{
			name: "diagonal",
			lines: []string{
				"...O",
				"..OX",
				".OXX",
				"OXXX",
			},
			row: 2, col: 2,
		},
		{
			name: "anti diagonal",
			lines: []string{
				"O...",
				"XO..",
				"XXO.",
				"XXXO",
			},
			row: 3, col: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, 4, tt.lines...)
			if !b.IsWinningMove(tt.row, tt.col, Player2) {
				t.Fatalf("expected a %s win at (%d,%d):\n%s", tt.name, tt.row, tt.col, b)
			}
			if line := b.WinningLine(tt.row, tt.col, Player2); len(line) != 4 {
				t.Fatalf("expected a 4-cell winning line, got %v", line)
			}
		})
	}
}

func TestIsWinningMoveConnectLongerThanBoard(t *testing.T) {
	b := mustParse(t, 5,
		"XXX",
		"XXX",
		"XXX",
	)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if b.IsWinningMove(r, c, Player1) {
				t.Fatalf("connect 5 cannot be won on a 3x3 board (hit at %d,%d)", r, c)
			}
		}
	}
}

func TestIsWinningMoveIgnoresNonPieces(t *testing.T) {
	b := mustBoard(t, 4, 4, 4)
	if b.IsWinningMove(0, 0, Empty) {
		t.Fatalf("an empty row must not count as a win for Empty")
	}
	if b.IsWinningMove(0, 0, Cell(7)) {
		t.Fatalf("unknown cell values never win")
	}
	if b.IsWinningMove(-1, 9, Player1) {
		t.Fatalf("out of range coordinates never win")
	}
}

func TestIsTerminalFullBoard(t *testing.T) {
	b := drawnBoard(t)
	if len(b.ValidLocations()) != 0 {
		t.Fatalf("expected no valid locations, got %v", b.ValidLocations())
	}
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Columns(); c++ {
			if b.IsWinningMove(r, c, b.At(r, c)) {
				t.Fatalf("drawn board has a win through (%d,%d)", r, c)
			}
		}
	}
	if !b.IsTerminal(5, 3, Player1, Player2) {
		t.Fatalf("full board must be terminal")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	b := mustParse(t, 4,
		"......",
		"..O...",
		".XXO..",
	)
	restored, err := BoardFromSnapshot(b.Snapshot())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.String() != b.String() {
		t.Fatalf("expected\n%s\ngot\n%s", b, restored)
	}
}

func TestBoardFromSnapshotRejectsFloatingPiece(t *testing.T) {
	s := BoardSnapshot{
		Columns:       2,
		Rows:          2,
		ConnectLength: 2,
		Cells:         [][]Cell{{Empty, Empty}, {Player1, Empty}},
	}
	if _, err := BoardFromSnapshot(s); !errors.Is(err, ErrInvalidBoardConfig) {
		t.Fatalf("expected ErrInvalidBoardConfig, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := mustBoard(t, 7, 6, 4)
	clone := b.Clone()
	clone.DropPiece(0, 3, Player1)
	if b.At(0, 3) != Empty {
		t.Fatalf("clone shares cells with the original")
	}
}
