package domain

import (
	"fmt"
	"strings"
)

// text form: one line per row, top row first, '.' empty, 'X' Player1, 'O' Player2

func (c Cell) Symbol() byte {
	switch c {
	case Player1:
		return 'X'
	case Player2:
		return 'O'
	default:
		return '.'
	}
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := b.rows - 1; row >= 0; row-- {
		for col := 0; col < b.columns; col++ {
			sb.WriteByte(b.At(row, col).Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard builds a board from its text form. Gravity is not checked here,
// so tests can set up positions directly.
func ParseBoard(connectLength int, lines ...string) (*Board, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidBoardConfig)
	}

	b, err := NewBoard(len(lines[0]), len(lines), connectLength)
	if err != nil {
		return nil, err
	}

	for i, line := range lines {
		if len(line) != b.columns {
			return nil, fmt.Errorf("%w: line %d has %d cells, want %d", ErrInvalidBoardConfig, i, len(line), b.columns)
		}
		row := b.rows - 1 - i
		for col := 0; col < len(line); col++ {
			switch line[col] {
			case '.':
			case 'X':
				b.DropPiece(row, col, Player1)
			case 'O':
				b.DropPiece(row, col, Player2)
			default:
				return nil, fmt.Errorf("%w: unknown symbol %q", ErrInvalidBoardConfig, line[col])
			}
		}
	}
	return b, nil
}
