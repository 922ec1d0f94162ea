// Package diagram draws board positions as SVG or PNG images.
package diagram

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/M1Va1/Stockdoge/internal/board"
)

// PieceReader is the only board access a diagram needs.
type PieceReader interface {
	PieceOnSquare(sq board.Square) board.Piece
}

// Options controls the drawing.
type Options struct {
	SquareSize  int            // pixels per square, default 60
	Size        int            // PNG output edge in pixels, 0 keeps 8*SquareSize
	Flip        bool           // draw from black's side
	Coordinates bool           // file and rank labels
	Highlight   board.Bitboard // squares drawn in the highlight color
}

const (
	defaultSquareSize = 60
	maxSize           = 4096
)

const (
	lightColor          = "#f0d9b5"
	darkColor           = "#b58863"
	lightHighlightColor = "#f6f669"
	darkHighlightColor  = "#baca44"
	whitePieceColor     = "#ffffff"
	blackPieceColor     = "#262626"
	outlineColor        = "#000000"
)

func (o Options) normalized() (Options, error) {
	if o.SquareSize == 0 {
		o.SquareSize = defaultSquareSize
	}
	if o.SquareSize < 8 || 8*o.SquareSize > maxSize {
		return o, fmt.Errorf("diagram: square size %d out of range", o.SquareSize)
	}
	if o.Size < 0 || o.Size > maxSize {
		return o, fmt.Errorf("diagram: size %d out of range", o.Size)
	}
	return o, nil
}

// origin returns the top-left pixel of sq.
func (o Options) origin(sq board.Square) (int, int) {
	file, rank := sq.File(), 7-sq.Rank()
	if o.Flip {
		file, rank = 7-file, 7-rank
	}
	return file * o.SquareSize, rank * o.SquareSize
}

func isDark(sq board.Square) bool {
	return (sq.File()+sq.Rank())%2 == 0
}

// WriteSVG writes the position as an SVG document.
func WriteSVG(w io.Writer, b PieceReader, opts Options) error {
	opts, err := opts.normalized()
	if err != nil {
		return err
	}
	s := opts.SquareSize
	side := 8 * s

	canvas := svg.New(w)
	canvas.Startview(side, side, 0, 0, side, side)

	canvas.Gid("squares")
	for sq := board.A1; sq <= board.H8; sq++ {
		x, y := opts.origin(sq)
		canvas.Rect(x, y, s, s, "fill:"+squareColor(sq, opts.Highlight.IsSet(sq)))
	}
	canvas.Gend()

	canvas.Gid("pieces")
	stroke := max(1, s/30)
	for sq := board.A1; sq <= board.H8; sq++ {
		p := b.PieceOnSquare(sq)
		if p.IsNone() {
			continue
		}
		x, y := opts.origin(sq)
		fill := whitePieceColor
		if p.Color == board.Black {
			fill = blackPieceColor
		}
		style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d", fill, outlineColor, stroke)
		g := glyphs[p.Type]
		for _, pg := range g.polygons {
			xs, ys := make([]int, len(pg)), make([]int, len(pg))
			for i, pt := range pg {
				xs[i] = x + pt.x*s/100
				ys[i] = y + pt.y*s/100
			}
			canvas.Polygon(xs, ys, style)
		}
		for _, c := range g.circles {
			canvas.Circle(x+c.x*s/100, y+c.y*s/100, max(1, c.r*s/100), style)
		}
	}
	canvas.Gend()

	if opts.Coordinates {
		canvas.Gid("coordinates")
		fontSize := max(8, s/5)
		for i := 0; i < 8; i++ {
			file := board.NewSquare(i, 0)
			rank := board.NewSquare(0, i)
			if opts.Flip {
				file = board.NewSquare(i, 7)
				rank = board.NewSquare(7, i)
			}
			x, y := opts.origin(file)
			canvas.Text(x+s-fontSize/2-2, y+s-3, string(rune('a'+i)), labelStyle(file, fontSize))
			x, y = opts.origin(rank)
			canvas.Text(x+2, y+fontSize, string(rune('1'+i)), labelStyle(rank, fontSize))
		}
		canvas.Gend()
	}

	canvas.End()
	return nil
}

func squareColor(sq board.Square, highlighted bool) string {
	switch {
	case isDark(sq) && highlighted:
		return darkHighlightColor
	case isDark(sq):
		return darkColor
	case highlighted:
		return lightHighlightColor
	default:
		return lightColor
	}
}

// Labels take the color of the opposite square shade.
func labelStyle(sq board.Square, size int) string {
	c := darkColor
	if isDark(sq) {
		c = lightColor
	}
	return fmt.Sprintf("font-family:sans-serif;font-size:%dpx;fill:%s", size, c)
}

// Render rasterizes the position.
func Render(b PieceReader, opts Options) (*image.RGBA, error) {
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	// oksvg does not draw text, labels are added after rasterizing.
	var buf bytes.Buffer
	shapes := opts
	shapes.Coordinates = false
	if err := WriteSVG(&buf, b, shapes); err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(&buf)
	if err != nil {
		return nil, fmt.Errorf("diagram: parse svg: %w", err)
	}

	side := 8 * opts.SquareSize
	icon.SetTarget(0, 0, float64(side), float64(side))
	rgba := image.NewRGBA(image.Rect(0, 0, side, side))
	scanner := rasterx.NewScannerGV(side, side, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(side, side, scanner)
	icon.Draw(raster, 1.0)

	if opts.Coordinates {
		drawLabels(rgba, opts)
	}

	if opts.Size == 0 || opts.Size == side {
		return rgba, nil
	}
	scaled := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), rgba, rgba.Bounds(), xdraw.Over, nil)
	return scaled, nil
}

func drawLabels(img *image.RGBA, opts Options) {
	s := opts.SquareSize
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Face: face}

	for i := 0; i < 8; i++ {
		file := board.NewSquare(i, 0)
		rank := board.NewSquare(0, i)
		if opts.Flip {
			file = board.NewSquare(i, 7)
			rank = board.NewSquare(7, i)
		}

		x, y := opts.origin(file)
		d.Src = image.NewUniform(labelColor(file))
		d.Dot = fixed.P(x+s-face.Advance-2, y+s-3)
		d.DrawString(string(rune('a' + i)))

		x, y = opts.origin(rank)
		d.Src = image.NewUniform(labelColor(rank))
		d.Dot = fixed.P(x+2, y+face.Ascent+1)
		d.DrawString(string(rune('1' + i)))
	}
}

func labelColor(sq board.Square) color.RGBA {
	if isDark(sq) {
		return color.RGBA{0xf0, 0xd9, 0xb5, 0xff}
	}
	return color.RGBA{0xb5, 0x88, 0x63, 0xff}
}

// WritePNG writes the position as a PNG image.
func WritePNG(w io.Writer, b PieceReader, opts Options) error {
	img, err := Render(b, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
