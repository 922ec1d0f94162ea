package board

import (
	"fmt"
	"strings"
)

// DebugChecks turns precondition violations into panics: placing a piece on
// an occupied square, removing from or moving out of an empty one, and
// building a move whose from and to squares coincide. Off by default since
// the checks sit on the move generation hot path.
var DebugChecks = false

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// String returns the FEN castling field.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, c := range "KQkq" {
		if cr&(1<<i) != 0 {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// castlingSpoilers lists, per square, the rights lost when a move starts or
// ends there.
var castlingSpoilers = [64]CastlingRights{
	A1: WhiteQueenSide,
	E1: WhiteKingSide | WhiteQueenSide,
	H1: WhiteKingSide,
	A8: BlackQueenSide,
	E8: BlackKingSide | BlackQueenSide,
	H8: BlackKingSide,
}

// Board is a position as a set of bitboards. The zero value is not usable;
// create boards with NewBoard or ParseFEN. Boards are plain values: Copy
// one per search worker, the Magics they point to are shared read-only.
type Board struct {
	// pieces[NoPieceType] holds the empty squares, the rest hold the
	// squares of that type for both colors.
	pieces [PieceTypeCount]Bitboard
	colors [ColorCount]Bitboard

	// attackMap holds the squares attacked by attackColor, the side that
	// made lastMove. Direct edits invalidate it.
	attackMap   Bitboard
	attackColor Color
	attackValid bool

	lastMove Move
	castling CastlingRights
	magics   *Magics
}

// NewBoard returns an empty board using the given attack tables.
func NewBoard(m *Magics) *Board {
	if m == nil {
		m = MustDefaultMagics()
	}
	b := &Board{magics: m}
	b.pieces[NoPieceType] = Universe
	return b
}

// Copy returns an independent copy sharing the same attack tables.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// Magics returns the attack tables the board uses.
func (b *Board) Magics() *Magics {
	return b.magics
}

// Pieces returns the squares holding pieces of type pt and color c.
func (b *Board) Pieces(c Color, pt PieceType) Bitboard {
	return b.pieces[pt] & b.colors[c]
}

// EmptySquares returns the squares with no piece.
func (b *Board) EmptySquares() Bitboard {
	return b.pieces[NoPieceType]
}

// Occupied returns every occupied square.
func (b *Board) Occupied() Bitboard {
	return ^b.pieces[NoPieceType]
}

// LastMove returns the most recent move passed to MakeMove.
func (b *Board) LastMove() Move {
	return b.lastMove
}

// SetLastMove records m as the previous move without applying it. Importers
// use it to restore en passant eligibility.
func (b *Board) SetLastMove(m Move) {
	b.lastMove = m
}

// CastlingRights returns the rights the generator honours.
func (b *Board) CastlingRights() CastlingRights {
	return b.castling
}

// SetCastlingRights replaces the castling rights.
func (b *Board) SetCastlingRights(cr CastlingRights) {
	b.castling = cr & AllCastling
}

// PieceOnSquare returns the piece on sq, NoPiece if the square is empty.
func (b *Board) PieceOnSquare(sq Square) Piece {
	bb := SquareBB(sq)
	if b.pieces[NoPieceType]&bb != 0 {
		return NoPiece
	}
	c := White
	if b.colors[Black]&bb != 0 {
		c = Black
	}
	for pt := Pawn; pt <= King; pt++ {
		if b.pieces[pt]&bb != 0 {
			return Piece{Type: pt, Color: c}
		}
	}
	return NoPiece
}

// SetPiece places a piece on sq. The square must be empty.
func (b *Board) SetPiece(pt PieceType, c Color, sq Square) {
	if DebugChecks {
		if pt == NoPieceType || pt >= PieceTypeCount || c >= ColorCount {
			panic(fmt.Sprintf("board: SetPiece(%v, %v, %v): not a piece", pt, c, sq))
		}
		if b.pieces[NoPieceType]&SquareBB(sq) == 0 {
			panic(fmt.Sprintf("board: SetPiece(%v, %v, %v): square holds %v", pt, c, sq, b.PieceOnSquare(sq)))
		}
	}
	b.put(pt, c, sq)
	b.attackValid = false
}

// RemovePiece clears sq and returns what stood there. On an empty square it
// returns NoPiece; callers must check before using the result.
func (b *Board) RemovePiece(sq Square) Piece {
	p := b.take(sq)
	if DebugChecks && p.IsNone() {
		panic(fmt.Sprintf("board: RemovePiece(%v): square is empty", sq))
	}
	b.attackValid = false
	return p
}

func (b *Board) put(pt PieceType, c Color, sq Square) {
	bb := SquareBB(sq)
	b.pieces[pt] |= bb
	b.colors[c] |= bb
	b.pieces[NoPieceType] &^= bb
}

func (b *Board) take(sq Square) Piece {
	p := b.PieceOnSquare(sq)
	if p.IsNone() {
		return p
	}
	bb := SquareBB(sq)
	b.pieces[p.Type] &^= bb
	b.colors[p.Color] &^= bb
	b.pieces[NoPieceType] |= bb
	return p
}

// MakeMove applies m: captures on the destination, relocates the mover,
// removes the en passant victim, swaps in the promotion piece or moves the
// castling rook. It then records m as the last move and refreshes the
// attack map for the side that moved.
func (b *Board) MakeMove(m Move) {
	from, to := m.From(), m.To()
	mover := b.take(from)
	if mover.IsNone() {
		if DebugChecks {
			panic(fmt.Sprintf("board: MakeMove(%v): no piece on %v", m, from))
		}
		return
	}
	b.take(to)

	placed := mover.Type
	switch m.Type() {
	case EnPassant:
		// The captured pawn stands beside the origin, on the destination file.
		b.take(NewSquare(to.File(), from.Rank()))
	case Promotion:
		placed = m.Promotion()
	case Castling:
		rank := from.Rank()
		rookFrom, rookTo := NewSquare(7, rank), NewSquare(5, rank)
		if to < from {
			rookFrom, rookTo = NewSquare(0, rank), NewSquare(3, rank)
		}
		if rook := b.take(rookFrom); !rook.IsNone() {
			b.put(rook.Type, rook.Color, rookTo)
		}
	}
	b.put(placed, mover.Color, to)

	b.castling &^= castlingSpoilers[from] | castlingSpoilers[to]
	b.lastMove = m
	b.attackMap = b.AttacksBy(mover.Color)
	b.attackColor = mover.Color
	b.attackValid = true
}

// IsDoublePush reports whether m is a pawn advancing two ranks on one file.
// It holds before m is applied (a pawn on from) and after (a pawn on to,
// from vacated).
func (b *Board) IsDoublePush(m Move) bool {
	if m == NoMove || m.Type() != Normal {
		return false
	}
	from, to := m.From(), m.To()
	if from.File() != to.File() {
		return false
	}
	if d := from.Rank() - to.Rank(); d != 2 && d != -2 {
		return false
	}
	if b.pieces[Pawn].IsSet(from) {
		return true
	}
	// Already applied: the pawn stands on to and from was vacated.
	return b.pieces[Pawn].IsSet(to) && b.pieces[NoPieceType].IsSet(from)
}

// EnPassantTarget returns the square an opposing pawn may capture onto
// after the last move, or NoSquare.
func (b *Board) EnPassantTarget() Square {
	m := b.lastMove
	if !b.IsDoublePush(m) || b.pieces[Pawn]&SquareBB(m.To()) == 0 {
		return NoSquare
	}
	return NewSquare(m.To().File(), (m.From().Rank()+m.To().Rank())/2)
}

// Validate checks the partition invariants of the bitboards.
func (b *Board) Validate() error {
	var union Bitboard
	for pt := Pawn; pt <= King; pt++ {
		if overlap := union & b.pieces[pt]; overlap != 0 {
			return fmt.Errorf("board: %v bitboard overlaps another type on %v", pt, overlap.LSB())
		}
		union |= b.pieces[pt]
	}
	if overlap := b.colors[White] & b.colors[Black]; overlap != 0 {
		return fmt.Errorf("board: %v is both white and black", overlap.LSB())
	}
	if colors := b.colors[White] | b.colors[Black]; colors != union {
		return fmt.Errorf("board: color union %#x differs from piece union %#x", uint64(colors), uint64(union))
	}
	if b.pieces[NoPieceType] != ^union {
		return fmt.Errorf("board: empty-square bitboard is not the complement of occupancy")
	}
	return nil
}

// String draws the board with FEN letters, rank 8 on top.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			sb.WriteByte(b.PieceOnSquare(NewSquare(file, rank)).Letter())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
