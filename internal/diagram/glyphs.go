package diagram

import "github.com/M1Va1/Stockdoge/internal/board"

// A glyph is drawn in a 100x100 box placed over one square.
type glyph struct {
	polygons [][]point
	circles  []circle
}

type point struct{ x, y int }

type circle struct{ x, y, r int }

func poly(coords ...int) []point {
	p := make([]point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		p = append(p, point{coords[i], coords[i+1]})
	}
	return p
}

var glyphs = [board.PieceTypeCount]glyph{
	board.Pawn: {
		polygons: [][]point{poly(30, 85, 70, 85, 62, 52, 38, 52)},
		circles:  []circle{{50, 38, 13}},
	},
	board.Knight: {
		polygons: [][]point{poly(25, 85, 75, 85, 72, 45, 60, 22, 50, 15, 44, 24, 24, 44, 28, 56, 46, 48, 34, 72, 28, 76)},
	},
	board.Bishop: {
		polygons: [][]point{poly(28, 85, 72, 85, 60, 70, 66, 46, 50, 22, 34, 46, 40, 70)},
		circles:  []circle{{50, 16, 6}},
	},
	board.Rook: {
		polygons: [][]point{poly(
			25, 85, 75, 85, 75, 75, 66, 75, 66, 40, 75, 40, 75, 18, 65, 18, 65, 27,
			55, 27, 55, 18, 45, 18, 45, 27, 35, 27, 35, 18, 25, 18, 25, 40, 34, 40,
			34, 75, 25, 75)},
	},
	board.Queen: {
		polygons: [][]point{poly(25, 85, 75, 85, 82, 30, 65, 55, 58, 22, 50, 55, 42, 22, 35, 55, 18, 30)},
		circles:  []circle{{18, 26, 5}, {42, 18, 5}, {58, 18, 5}, {82, 26, 5}},
	},
	board.King: {
		polygons: [][]point{
			poly(28, 85, 72, 85, 68, 45, 32, 45),
			poly(46, 8, 54, 8, 54, 18, 64, 18, 64, 26, 54, 26, 54, 45, 46, 45, 46, 26, 36, 26, 36, 18, 46, 18),
		},
	},
}
