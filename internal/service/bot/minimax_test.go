package bot

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/iamasit07/connect-n/internal/domain"
)

// exhaustive is plain minimax with the same leaf rules and no pruning
func exhaustive(b *domain.Board, depth int, maximizing bool, last domain.Position, current, opposing domain.Cell, nodes *int64) int64 {
	*nodes++
	if !last.IsNone() {
		if b.IsWinningMove(last.Row, last.Column, current) {
			return MINIMAX_WIN
		}
		if b.IsWinningMove(last.Row, last.Column, opposing) {
			return MINIMAX_LOSS
		}
		if b.IsFull() {
			return MINIMAX_DRAW
		}
		if depth == 0 {
			return ScorePosition(b, last.Column, last.Row, current, opposing)
		}
	}

	best := PosInf
	piece := opposing
	if maximizing {
		best = NegInf
		piece = current
	}
	for _, col := range b.ValidLocations() {
		row := b.NextOpenRow(col)
		b.DropPiece(row, col, piece)
		v := exhaustive(b, depth-1, !maximizing, domain.Position{Row: row, Column: col}, current, opposing, nodes)
		b.RemovePiece(row, col)
		if maximizing && v > best || !maximizing && v < best {
			best = v
		}
	}
	return best
}

// randomPosition plays random moves and stops early if someone wins
func randomPosition(rng *rand.Rand, columns, rows, n, moves int) *domain.Board {
	b, _ := domain.NewBoard(columns, rows, n)
	piece := domain.Player1
	for i := 0; i < moves; i++ {
		valid := b.ValidLocations()
		if len(valid) == 0 {
			break
		}
		col := valid[rng.Intn(len(valid))]
		row := b.NextOpenRow(col)
		if len(valid) == 1 {
			break
		}
		b.DropPiece(row, col, piece)
		if b.IsWinningMove(row, col, piece) {
			b.RemovePiece(row, col)
			break
		}
		piece = piece.Opponent()
	}
	return b
}

func TestAlphaBetaMatchesExhaustiveMinimax(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	configs := []struct{ columns, rows, n, depth int }{
		{5, 4, 3, 1},
		{5, 4, 3, 3},
		{5, 4, 3, 4},
		{7, 6, 4, 2},
		{7, 6, 4, 3},
	}

	for _, cfg := range configs {
		for i := 0; i < 8; i++ {
			b := randomPosition(rng, cfg.columns, cfg.rows, cfg.n, rng.Intn(cfg.columns*cfg.rows/2))
			if b.IsFull() {
				continue
			}
			before := b.String()

			var fullNodes int64
			want := exhaustive(b, cfg.depth, true, domain.NoPosition, domain.Player1, domain.Player2, &fullNodes)

			e := NewEngine(int64(i + 1))
			col, got := e.Minimax(b, cfg.depth, NegInf, PosInf, true, domain.NoPosition, domain.Player1, domain.Player2)
			if got != want {
				t.Fatalf("%dx%d connect %d depth %d: alpha-beta %d, exhaustive %d\n%s",
					cfg.columns, cfg.rows, cfg.n, cfg.depth, got, want, b)
			}
			if !b.IsValidMove(col) {
				t.Fatalf("minimax returned invalid column %d\n%s", col, b)
			}
			if e.NodesVisited() > fullNodes {
				t.Fatalf("pruned search visited %d nodes, exhaustive only %d", e.NodesVisited(), fullNodes)
			}
			if b.String() != before {
				t.Fatalf("minimax did not restore the board")
			}
		}
	}
}

func TestChooseMoveAlwaysValid(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	e := NewEngine(3)

	for i := 0; i < 40; i++ {
		b := randomPosition(rng, 7, 6, 4, rng.Intn(35))
		if b.IsFull() {
			continue
		}
		depth := 1 + i%3
		col, _, err := e.ChooseMove(b, depth, domain.Player2, domain.Player1)
		if err != nil {
			t.Fatalf("choose move: %v", err)
		}
		if !b.IsValidMove(col) {
			t.Fatalf("depth %d returned invalid column %d\n%s", depth, col, b)
		}
	}
}

func TestChooseMoveEmptyBoard(t *testing.T) {
	b, _ := domain.NewBoard(7, 6, 4)
	e := NewEngine(1)

	col, score, err := e.ChooseMove(b, 4, domain.Player1, domain.Player2)
	if err != nil {
		t.Fatalf("choose move: %v", err)
	}
	if col < 0 || col >= 7 {
		t.Fatalf("expected a column in [0,7), got %d", col)
	}
	if score == MINIMAX_WIN || score == MINIMAX_LOSS {
		t.Fatalf("expected a heuristic score, got sentinel %d", score)
	}
	if b.PieceCount() != 0 {
		t.Fatalf("search must not touch the caller's board")
	}
}

func TestChooseMoveTakesWin(t *testing.T) {
	b := mustParse(t, 4,
		".......",
		".......",
		".......",
		".......",
		"O......",
		"OXXX.O.",
	)
	b.DropPiece(0, 4, domain.Player1)
	if !b.IsWinningMove(0, 4, domain.Player1) {
		t.Fatalf("expected (0,4) to win for Player1")
	}
	b.RemovePiece(0, 4)

	e := NewEngine(5)
	col, score, err := e.ChooseMove(b, 1, domain.Player1, domain.Player2)
	if err != nil {
		t.Fatalf("choose move: %v", err)
	}
	if col != 4 {
		t.Fatalf("expected the winning column 4, got %d", col)
	}
	if score != MINIMAX_WIN {
		t.Fatalf("expected win score, got %d", score)
	}
}

func TestChooseMoveSeesOpenThreeAsLost(t *testing.T) {
	b := mustParse(t, 4,
		".......",
		".......",
		".......",
		".......",
		".......",
		".XXX...",
	)
	e := NewEngine(11)
	col, score, err := e.ChooseMove(b, 2, domain.Player2, domain.Player1)
	if err != nil {
		t.Fatalf("choose move: %v", err)
	}
	if !b.IsValidMove(col) {
		t.Fatalf("invalid column %d", col)
	}
	// both ends are open, every reply loses
	if score != MINIMAX_LOSS {
		t.Fatalf("expected the open three to be seen as lost, got %d", score)
	}
}

func TestChooseMoveBlocksThreat(t *testing.T) {
	b := mustParse(t, 4,
		".......",
		".......",
		".......",
		".......",
		".......",
		"OXXX...",
	)
	for seed := int64(1); seed <= 5; seed++ {
		e := NewEngine(seed)
		col, score, err := e.ChooseMove(b, 2, domain.Player2, domain.Player1)
		if err != nil {
			t.Fatalf("choose move: %v", err)
		}
		if col != 4 {
			t.Fatalf("seed %d: expected block at column 4, got %d (score %d)", seed, col, score)
		}
		if score == MINIMAX_LOSS {
			t.Fatalf("blocking should avoid the loss score")
		}
	}
}

func TestMinimaxFullBoardIsDraw(t *testing.T) {
	b := mustParse(t, 4,
		"OXOOXOX",
		"XOXOXOX",
		"OXOOXXO",
		"XXOXOOX",
		"XOXOXOO",
		"XOOXOXX",
	)
	if !b.IsTerminal(5, 3, domain.Player1, domain.Player2) {
		t.Fatalf("full board must be terminal")
	}

	e := NewEngine(1)
	col, score := e.Minimax(b, 4, NegInf, PosInf, true, domain.Position{Row: 5, Column: 3}, domain.Player1, domain.Player2)
	if col != -1 || score != 0 {
		t.Fatalf("expected (-1, 0) for a drawn board, got (%d, %d)", col, score)
	}

	if _, _, err := e.ChooseMove(b, 4, domain.Player1, domain.Player2); !errors.Is(err, domain.ErrEmptySearchSpace) {
		t.Fatalf("expected ErrEmptySearchSpace, got %v", err)
	}
}

func TestMinimaxDepthZeroUsesHeuristic(t *testing.T) {
	b := mustParse(t, 4,
		".......",
		".......",
		".......",
		".......",
		".......",
		"..XX...",
	)
	e := NewEngine(1)
	_, score := e.Minimax(b, 0, NegInf, PosInf, false, domain.Position{Row: 0, Column: 2}, domain.Player1, domain.Player2)
	if want := ScorePosition(b, 2, 0, domain.Player1, domain.Player2); score != want {
		t.Fatalf("expected heuristic %d at depth 0, got %d", want, score)
	}
}

func TestChooseMoveDepthZeroIsGreedy(t *testing.T) {
	b := mustParse(t, 4,
		".......",
		".......",
		".......",
		".......",
		".......",
		"..XX...",
	)
	e := NewEngine(2)
	col, score, err := e.ChooseMove(b, 0, domain.Player1, domain.Player2)
	if err != nil {
		t.Fatalf("choose move: %v", err)
	}

	// greedy score must be the best one-ply ScorePosition
	var best int64 = NegInf
	for _, c := range b.ValidLocations() {
		r := b.NextOpenRow(c)
		b.DropPiece(r, c, domain.Player1)
		best = max(best, ScorePosition(b, c, r, domain.Player1, domain.Player2))
		b.RemovePiece(r, c)
	}
	if score != best {
		t.Fatalf("expected greedy score %d, got %d (column %d)", best, score, col)
	}
}

func TestChooseMoveSameSeedSameColumn(t *testing.T) {
	b, _ := domain.NewBoard(7, 6, 4)
	first, _, _ := NewEngine(42).ChooseMove(b, 2, domain.Player1, domain.Player2)
	for i := 0; i < 3; i++ {
		again, _, _ := NewEngine(42).ChooseMove(b, 2, domain.Player1, domain.Player2)
		if again != first {
			t.Fatalf("seeded engines disagree: %d vs %d", first, again)
		}
	}
}

func TestChooseMoveRejectsBadPieces(t *testing.T) {
	b, _ := domain.NewBoard(7, 6, 4)
	if _, _, err := NewEngine(1).ChooseMove(b, 2, domain.Player1, domain.Player1); err == nil {
		t.Fatalf("expected an error when both sides share a piece")
	}
}

func TestDepthFor(t *testing.T) {
	tests := map[string]int{
		"easy":    0,
		"Medium":  2,
		" hard ":  4,
		"expert":  6,
		"":        5,
		"unknown": 5,
	}
	for name, want := range tests {
		if got := DepthFor(name, 5); got != want {
			t.Errorf("DepthFor(%q) = %d, want %d", name, got, want)
		}
	}
}
