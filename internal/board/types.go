// Package board implements the bitboard position and pseudo-legal move generator.
package board

import "fmt"

// Square is a board square 0-63, rank*8+file (A1=0, H1=7, A8=56, H8=63).
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// File returns the file of the square (0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank of the square (0=1st, 7=8th).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// String returns the algebraic name of the square, e.g. "e4".
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare parses algebraic notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// Color is the side owning a piece.
type Color uint8

const (
	White Color = iota
	Black

	ColorCount = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// ParseColor accepts "white", "black" or the FEN letters "w" and "b".
func ParseColor(s string) (Color, error) {
	switch s {
	case "w", "white":
		return White, nil
	case "b", "black":
		return Black, nil
	}
	return White, fmt.Errorf("invalid color %q", s)
}

// PieceType is a colorless piece kind. NoPieceType doubles as the index of
// the empty-squares bitboard on a Board.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	PieceTypeCount = 7
)

// pieceLetters is indexed by PieceType.
const pieceLetters = ".pnbrqk"

// Letter returns the lowercase FEN letter of the piece type, '.' for none.
func (pt PieceType) Letter() byte {
	if pt >= PieceTypeCount {
		return '?'
	}
	return pieceLetters[pt]
}

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Piece is a read-only query result pairing a type with its color.
// An empty square reports Piece{NoPieceType, White}.
type Piece struct {
	Type  PieceType
	Color Color
}

// NoPiece is returned for empty squares.
var NoPiece = Piece{Type: NoPieceType, Color: White}

// IsNone reports whether the piece denotes an empty square.
func (p Piece) IsNone() bool {
	return p.Type == NoPieceType
}

// Letter returns the FEN letter, uppercase for white.
func (p Piece) Letter() byte {
	l := p.Type.Letter()
	if p.Color == White && p.Type != NoPieceType {
		return l - 'a' + 'A'
	}
	return l
}

func (p Piece) String() string {
	return string(p.Letter())
}

// PieceFromLetter converts a FEN letter to a piece.
func PieceFromLetter(c byte) (Piece, bool) {
	color := Black
	if c >= 'A' && c <= 'Z' {
		color = White
		c = c - 'A' + 'a'
	}
	for pt := Pawn; pt <= King; pt++ {
		if pieceLetters[pt] == c {
			return Piece{Type: pt, Color: color}, true
		}
	}
	return NoPiece, false
}
