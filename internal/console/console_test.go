package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/M1Va1/Stockdoge/internal/board"
)

func run(t *testing.T, script string) (*Console, string) {
	t.Helper()
	var out bytes.Buffer
	c := New(strings.NewReader(script), &out, nil)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return c, out.String()
}

func TestPositionWithMoves(t *testing.T) {
	c, out := run(t, "position startpos moves e2e4 d7d5 e4e5 f7f5\nfen\n")
	want := "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 1"
	if !strings.Contains(out, want) {
		t.Errorf("fen output %q, want %q", out, want)
	}
	b, side := c.Position()
	if side != board.White || b.EnPassantTarget() != board.F6 {
		t.Errorf("side %v, ep %v", side, b.EnPassantTarget())
	}
}

func TestPositionFEN(t *testing.T) {
	_, out := run(t, "position fen 4k3/8/8/8/8/8/8/4RK2 b - - 0 1\ncheck\n")
	if !strings.Contains(out, "black in check: true") {
		t.Errorf("output %q", out)
	}
}

func TestIllegalMoveKeepsPosition(t *testing.T) {
	c, out := run(t, "position startpos moves e2e5\n")
	if !strings.Contains(out, `illegal move "e2e5"`) {
		t.Errorf("output %q", out)
	}
	b, _ := c.Position()
	if b.FEN(board.White) != board.StartFEN {
		t.Error("position changed after an illegal move")
	}
}

func TestPerftAndDivide(t *testing.T) {
	_, out := run(t, "perft 2\ndivide 1\n")
	if !strings.Contains(out, "Nodes: 400") {
		t.Errorf("perft output %q", out)
	}
	if !strings.Contains(out, "g1f3: 1") || !strings.Contains(out, "Nodes: 20") {
		t.Errorf("divide output %q", out)
	}
}

func TestMovesAndErrors(t *testing.T) {
	_, out := run(t, "moves\nperft\nperft x\nbogus\nposition fen 8/8\nquit\nd\n")
	for _, want := range []string{
		"pseudo-legal: 20 legal: 20",
		"error: missing depth",
		`error: invalid depth "x"`,
		`error: unknown command "bogus"`,
		"error: invalid FEN",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "a b c d e f g h") {
		t.Error("commands after quit were processed")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(strings.NewReader("isready\n"), &bytes.Buffer{}, nil)
	if err := c.Run(ctx); err == nil {
		t.Error("Run ignored a cancelled context")
	}
}

func TestCrowdedPosition(t *testing.T) {
	_, out := run(t, "position fen Q1QQQ1QQ/QQ3Q2/3Q3Q/Q6Q/Q6Q/3Q3Q/QQ4Q1/k1QQQQQK w - - 0 1\nmoves\nperft 1\n")
	if !strings.Contains(out, "pseudo-legal: ") || !strings.Contains(out, "Nodes: ") {
		t.Errorf("output %q", out)
	}
}
