package board

import (
	"fmt"
	"slices"
)

// Move packs a move into 16 bits:
// bits 0-5:   from square
// bits 6-11:  to square
// bits 12-13: move type (normal, promotion, en passant, castling)
// bits 14-15: promotion piece (0=knight, 1=bishop, 2=rook, 3=queen)
type Move uint16

// MoveType tags how a move is applied.
type MoveType uint8

const (
	Normal MoveType = iota
	Promotion
	EnPassant
	Castling
)

func (t MoveType) String() string {
	switch t {
	case Promotion:
		return "promotion"
	case EnPassant:
		return "en-passant"
	case Castling:
		return "castling"
	default:
		return "normal"
	}
}

const (
	moveSquareMask = 0x3F
	moveToShift    = 6
	moveTypeShift  = 12
	movePromoShift = 14
)

// NoMove is the zero move. It never equals a generated move since from == to.
const NoMove Move = 0

// NewTypedMove packs from, to and a move type. It performs no validation
// beyond the from != to debug assertion.
func NewTypedMove(from, to Square, t MoveType) Move {
	if DebugChecks && from == to {
		panic(fmt.Sprintf("board: move from %v to itself", from))
	}
	return Move(from) | Move(to)<<moveToShift | Move(t)<<moveTypeShift
}

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return NewTypedMove(from, to, Normal)
}

// NewPromotion creates a promotion to knight, bishop, rook or queen.
func NewPromotion(from, to Square, promo PieceType) Move {
	if DebugChecks && (promo < Knight || promo > Queen) {
		panic(fmt.Sprintf("board: cannot promote to %v", promo))
	}
	return NewTypedMove(from, to, Promotion) | Move(promo-Knight)<<movePromoShift
}

// NewEnPassant creates an en passant capture; to is the square the pawn lands on.
func NewEnPassant(from, to Square) Move {
	return NewTypedMove(from, to, EnPassant)
}

// NewCastling creates a castling move described by the king's movement.
func NewCastling(from, to Square) Move {
	return NewTypedMove(from, to, Castling)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & moveSquareMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> moveToShift) & moveSquareMask)
}

// Type returns the move type tag.
func (m Move) Type() MoveType {
	return MoveType((m >> moveTypeShift) & 3)
}

// Promotion returns the promotion piece; only meaningful for promotions.
func (m Move) Promotion() PieceType {
	return PieceType((m>>movePromoShift)&3) + Knight
}

// String returns the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.Type() == Promotion {
		s += string(m.Promotion().Letter())
	}
	return s
}

// MoveList is the move buffer filled by the generator. It starts with room
// for 256 moves and grows for contrived positions that exceed it.
type MoveList struct {
	moves []Move
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{moves: make([]Move, 0, 256)}
}

// Add appends a move.
func (ml *MoveList) Add(m Move) {
	ml.moves = append(ml.moves, m)
}

// Len returns the number of moves.
func (ml *MoveList) Len() int {
	return len(ml.moves)
}

// Clear empties the list, keeping its capacity.
func (ml *MoveList) Clear() {
	ml.moves = ml.moves[:0]
}

// Contains reports whether m is in the list.
func (ml *MoveList) Contains(m Move) bool {
	return slices.Contains(ml.moves, m)
}

// Slice returns the moves in generation order. The slice aliases the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves
}

// Find returns the generated move whose coordinate notation is s.
func (ml *MoveList) Find(s string) (Move, error) {
	for _, m := range ml.moves {
		if m.String() == s {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("move %q is not available", s)
}
