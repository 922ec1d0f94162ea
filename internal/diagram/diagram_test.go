package diagram

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/M1Va1/Stockdoge/internal/board"
)

func startingBoard(t *testing.T) *board.Board {
	t.Helper()
	b, _, err := board.ParseFEN(board.StartFEN, nil)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, startingBoard(t), Options{Coordinates: true}); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `viewBox="0 0 480 480"`) {
		t.Error("missing 480px view box")
	}
	if n := strings.Count(out, "<rect"); n != 64 {
		t.Errorf("%d squares, want 64", n)
	}
	// 32 pieces, kings carry a second polygon for the cross.
	if n := strings.Count(out, "<polygon"); n != 34 {
		t.Errorf("%d polygons, want 34", n)
	}
	if n := strings.Count(out, "<text"); n != 16 {
		t.Errorf("%d labels, want 16", n)
	}
}

func TestWriteSVGEmptyBoard(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, board.NewBoard(nil), Options{SquareSize: 20}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<polygon") {
		t.Error("empty board drew pieces")
	}
	if strings.Contains(buf.String(), "<text") {
		t.Error("labels drawn without Coordinates")
	}
}

func TestOptionsRange(t *testing.T) {
	var buf bytes.Buffer
	for _, opts := range []Options{{SquareSize: 2}, {SquareSize: 1000}, {Size: -1}} {
		if err := WriteSVG(&buf, board.NewBoard(nil), opts); err == nil {
			t.Errorf("WriteSVG(%+v) accepted", opts)
		}
		if err := WritePNG(&buf, board.NewBoard(nil), opts); err == nil {
			t.Errorf("WritePNG(%+v) accepted", opts)
		}
	}
}

func TestWritePNG(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"default", Options{}, 480},
		{"square size", Options{SquareSize: 32}, 256},
		{"scaled", Options{SquareSize: 40, Size: 200}, 200},
		{"flipped with labels", Options{Flip: true, Coordinates: true}, 480},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WritePNG(&buf, startingBoard(t), tc.opts); err != nil {
				t.Fatalf("WritePNG: %v", err)
			}
			img, err := png.Decode(&buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != tc.want || b.Dy() != tc.want {
				t.Errorf("size %dx%d, want %d", b.Dx(), b.Dy(), tc.want)
			}
		})
	}
}

func TestRenderSquareColors(t *testing.T) {
	img, err := Render(startingBoard(t), Options{SquareSize: 40})
	if err != nil {
		t.Fatal(err)
	}
	// a3 is an empty dark square, b3 an empty light one.
	dark := img.RGBAAt(20, 5*40+20)
	light := img.RGBAAt(60, 5*40+20)
	if !near(dark, 0xb5, 0x88, 0x63) {
		t.Errorf("a3 = %v, want dark square color", dark)
	}
	if !near(light, 0xf0, 0xd9, 0xb5) {
		t.Errorf("b3 = %v, want light square color", light)
	}

	flipped, err := Render(startingBoard(t), Options{SquareSize: 40, Flip: true})
	if err != nil {
		t.Fatal(err)
	}
	// Flipped, a3 sits in the rightmost column, third row from the top.
	if got := flipped.RGBAAt(7*40+20, 2*40+20); !near(got, 0xb5, 0x88, 0x63) {
		t.Errorf("flipped a3 = %v, want dark square color", got)
	}
}

func near(c color.RGBA, r, g, b uint8) bool {
	d := func(x, y uint8) bool { return x-y <= 2 || y-x <= 2 }
	return d(c.R, r) && d(c.G, g) && d(c.B, b) && c.A == 0xff
}

func TestHighlight(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Highlight: board.SquareBB(board.E2) | board.SquareBB(board.E4)}
	if err := WriteSVG(&buf, startingBoard(t), opts); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), darkHighlightColor) + strings.Count(buf.String(), lightHighlightColor); n != 2 {
		t.Errorf("%d highlighted squares, want 2", n)
	}
}
