// Package console implements a line-oriented command loop for inspecting
// positions and move generation.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/M1Va1/Stockdoge/internal/board"
	"github.com/M1Va1/Stockdoge/internal/perft"
)

// Console reads commands from in and writes replies to out.
type Console struct {
	in     io.Reader
	out    io.Writer
	magics *board.Magics

	position *board.Board
	side     board.Color
}

// New creates a console set up at the starting position.
func New(in io.Reader, out io.Writer, magics *board.Magics) *Console {
	return &Console{
		in:       in,
		out:      out,
		magics:   magics,
		position: board.NewStartingBoard(magics),
		side:     board.White,
	}
}

// Position returns the current board and side to move.
func (c *Console) Position() (*board.Board, board.Color) {
	return c.position, c.side
}

// Run processes commands until quit, end of input or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "isready":
			fmt.Fprintln(c.out, "readyok")
		case "position":
			c.handlePosition(args)
		case "d":
			fmt.Fprint(c.out, c.position.String())
			fmt.Fprintf(c.out, "Fen: %s\n", c.position.FEN(c.side))
		case "fen":
			fmt.Fprintln(c.out, c.position.FEN(c.side))
		case "moves":
			c.handleMoves()
		case "check":
			fmt.Fprintf(c.out, "%s in check: %v\n", c.side, c.position.IsInCheck(c.side))
		case "perft":
			c.handlePerft(ctx, args)
		case "divide":
			c.handleDivide(args)
		case "quit":
			return nil
		default:
			fmt.Fprintf(c.out, "error: unknown command %q\n", cmd)
		}
	}
	return scanner.Err()
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (c *Console) handlePosition(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "error: position needs startpos or fen")
		return
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var (
		b    *board.Board
		side board.Color
		err  error
	)
	switch args[0] {
	case "startpos":
		b, side, err = board.ParseFEN(board.StartFEN, c.magics)
	case "fen":
		b, side, err = board.ParseFEN(strings.Join(args[1:movesAt], " "), c.magics)
	default:
		err = fmt.Errorf("unknown position kind %q", args[0])
	}
	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
		return
	}

	if movesAt < len(args) {
		for _, s := range args[movesAt+1:] {
			m, err := findLegal(b, side, s)
			if err != nil {
				fmt.Fprintf(c.out, "error: %v\n", err)
				return
			}
			b.MakeMove(m)
			side = side.Other()
		}
	}

	c.position, c.side = b, side
}

// findLegal matches coordinate notation against the legal moves of side.
func findLegal(b *board.Board, side board.Color, s string) (board.Move, error) {
	for _, m := range perft.LegalMoves(b, side) {
		if m.String() == s {
			return m, nil
		}
	}
	return board.NoMove, fmt.Errorf("illegal move %q for %s", s, side)
}

func (c *Console) handleMoves() {
	pseudo := c.position.GenAllMoves(c.side)
	legal := perft.LegalMoves(c.position, c.side)

	strs := make([]string, len(legal))
	for i, m := range legal {
		strs[i] = m.String()
	}
	fmt.Fprintf(c.out, "pseudo-legal: %d legal: %d\n", pseudo.Len(), len(legal))
	fmt.Fprintln(c.out, strings.Join(strs, " "))
}

func parseDepth(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing depth")
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 {
		return 0, fmt.Errorf("invalid depth %q", args[0])
	}
	return depth, nil
}

func (c *Console) handlePerft(ctx context.Context, args []string) {
	depth, err := parseDepth(args)
	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
		return
	}

	start := time.Now()
	nodes := perft.Count(c.position, c.side, depth)
	elapsed := time.Since(start)
	logx.WithContext(ctx).WithDuration(elapsed).Infof("perft %d: %d nodes", depth, nodes)

	fmt.Fprintf(c.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(c.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Fprintf(c.out, "NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

func (c *Console) handleDivide(args []string) {
	depth, err := parseDepth(args)
	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
		return
	}

	entries := perft.Divide(c.position, c.side, depth, nil)
	for _, e := range entries {
		fmt.Fprintf(c.out, "%s: %d\n", e.Move, e.Nodes)
	}
	fmt.Fprintf(c.out, "\nNodes: %d\n", perft.Total(entries))
}
