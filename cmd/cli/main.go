package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/iamasit07/connect-n/internal/domain"
	"github.com/iamasit07/connect-n/internal/service/bot"
)

var (
	redPiece    = color.New(color.FgHiRed, color.Bold)
	yellowPiece = color.New(color.FgHiYellow, color.Bold)
	frameColor  = color.New(color.FgBlue)
	infoColor   = color.New(color.FgHiBlack)
)

type options struct {
	columns     int
	rows        int
	connect     int
	depth       int
	seed        int64
	player1     string
	player2     string
	randomFirst bool
	verbose     bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("connect-n", flag.ContinueOnError)
	fs.IntVar(&opts.columns, "columns", domain.DefaultColumns, "board columns")
	fs.IntVar(&opts.rows, "rows", domain.DefaultRows, "board rows")
	fs.IntVar(&opts.connect, "connect", domain.DefaultConnectLength, "pieces in a row needed to win")
	fs.IntVar(&opts.depth, "depth", 4, "computer search depth, 0 picks greedily")
	fs.Int64Var(&opts.seed, "seed", 0, "tie-break seed, 0 for time based")
	fs.StringVar(&opts.player1, "p1", "human", "player 1 (red): human or computer")
	fs.StringVar(&opts.player2, "p2", "computer", "player 2 (yellow): human or computer")
	fs.BoolVar(&opts.randomFirst, "random-first", false, "pick the starting player at random")
	fs.BoolVar(&opts.verbose, "v", false, "log engine statistics")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.depth < 0 {
		return opts, fmt.Errorf("depth must not be negative, got %d", opts.depth)
	}
	return opts, nil
}

func isComputer(kind string) (bool, error) {
	switch strings.ToLower(kind) {
	case "human", "h":
		return false, nil
	case "computer", "c", "ai":
		return true, nil
	}
	return false, fmt.Errorf("unknown player kind %q", kind)
}

func pieceColor(c domain.Cell) *color.Color {
	if c == domain.Player1 {
		return redPiece
	}
	return yellowPiece
}

// render draws the board top row first with 1-based column numbers underneath
func render(w io.Writer, b *domain.Board) {
	for row := b.Rows() - 1; row >= 0; row-- {
		frameColor.Fprint(w, "|")
		for col := 0; col < b.Columns(); col++ {
			cell := b.At(row, col)
			if cell == domain.Empty {
				fmt.Fprint(w, " . ")
			} else {
				pieceColor(cell).Fprint(w, " ● ")
			}
		}
		frameColor.Fprintln(w, "|")
	}

	fmt.Fprint(w, " ")
	for col := 1; col <= b.Columns(); col++ {
		fmt.Fprintf(w, "%2d ", col)
	}
	fmt.Fprintln(w)
}

// readColumn keeps asking until the player enters an open column, returned 0-based
func readColumn(in *bufio.Scanner, out io.Writer, g *domain.Game) (int, error) {
	player := g.CurrentPlayer()
	for {
		pieceColor(player.Piece).Fprintf(out, "%s", player.Name)
		fmt.Fprintf(out, ", choose a column (1-%d): ", g.Board.Columns())

		if !in.Scan() {
			if err := in.Err(); err != nil {
				return -1, err
			}
			return -1, io.EOF
		}

		text := strings.TrimSpace(in.Text())
		if text == "q" || text == "quit" {
			return -1, io.EOF
		}
		n, err := strconv.Atoi(text)
		if err != nil || !g.Board.IsValidMove(n-1) {
			fmt.Fprintln(out, "That column is not available.")
			continue
		}
		return n - 1, nil
	}
}

func run(opts options, stdin io.Reader, out io.Writer) error {
	p1Computer, err := isComputer(opts.player1)
	if err != nil {
		return err
	}
	p2Computer, err := isComputer(opts.player2)
	if err != nil {
		return err
	}

	players := [2]domain.Player{
		{Name: "Red", Piece: domain.Player1, IsComputer: p1Computer},
		{Name: "Yellow", Piece: domain.Player2, IsComputer: p2Computer},
	}
	engine := bot.NewEngine(opts.seed)
	if opts.randomFirst {
		seed := opts.seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		if rand.New(rand.NewSource(seed)).Intn(2) == 1 {
			players[0], players[1] = players[1], players[0]
		}
	}

	g, err := domain.NewGame(opts.columns, opts.rows, opts.connect, players)
	if err != nil {
		return err
	}

	in := bufio.NewScanner(stdin)
	render(out, g.Board)

	for !g.IsFinished() {
		player := g.CurrentPlayer()

		var column int
		if player.IsComputer {
			column, _, err = engine.ChooseMove(g.Board, opts.depth, player.Piece, g.OpposingPlayer().Piece)
			if errors.Is(err, domain.ErrEmptySearchSpace) {
				g.EndInDraw()
				break
			}
			if err != nil {
				return err
			}
			pieceColor(player.Piece).Fprintf(out, "%s", player.Name)
			fmt.Fprintf(out, " plays column %d\n", column+1)
		} else {
			column, err = readColumn(in, out, g)
			if err != nil {
				return err
			}
		}

		if _, err := g.MakeMove(column); err != nil {
			return err
		}
		render(out, g.Board)
	}

	if winner, ok := g.WinnerPlayer(); ok {
		pieceColor(winner.Piece).Fprintf(out, "%s wins!", winner.Name)
		infoColor.Fprintf(out, " (%d moves)\n", g.MoveCount)
	} else {
		fmt.Fprintln(out, "It's a draw.")
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !opts.verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(opts, os.Stdin, color.Output); err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(color.Output, "\nBye.")
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
