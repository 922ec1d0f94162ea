package board

import (
	"iter"
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, bit i standing for Square i.
type Bitboard uint64

// File masks
const (
	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = FileA << 1
	FileC Bitboard = FileA << 2
	FileD Bitboard = FileA << 3
	FileE Bitboard = FileA << 4
	FileF Bitboard = FileA << 5
	FileG Bitboard = FileA << 6
	FileH Bitboard = FileA << 7
)

// Rank masks
const (
	Rank1 Bitboard = 0xFF
	Rank2 Bitboard = Rank1 << (8 * 1)
	Rank3 Bitboard = Rank1 << (8 * 2)
	Rank4 Bitboard = Rank1 << (8 * 3)
	Rank5 Bitboard = Rank1 << (8 * 4)
	Rank6 Bitboard = Rank1 << (8 * 5)
	Rank7 Bitboard = Rank1 << (8 * 6)
	Rank8 Bitboard = Rank1 << (8 * 7)
)

const (
	Empty    Bitboard = 0
	Universe Bitboard = ^Empty

	NotFileA Bitboard = ^FileA
	NotFileH Bitboard = ^FileH
	Edges    Bitboard = FileA | FileH | Rank1 | Rank8
)

// FileMask is indexed by file (0-7).
var FileMask = [8]Bitboard{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}

// RankMask is indexed by rank (0-7).
var RankMask = [8]Bitboard{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}

// SquareBB returns the singleton bitboard of sq.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// IsSet reports whether sq is in the set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// PopCount returns the number of squares in the set.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest square in the set, NoSquare when empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the lowest square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Squares yields the members of b in increasing order. The sequence can be
// ranged over any number of times.
func (b Bitboard) Squares() iter.Seq[Square] {
	return func(yield func(Square) bool) {
		for bb := b; bb != 0; bb &= bb - 1 {
			if !yield(Square(bits.TrailingZeros64(uint64(bb)))) {
				return
			}
		}
	}
}

// Direction is the signed index offset of a one-square step.
type Direction int8

const (
	North     Direction = 8
	South     Direction = -8
	East      Direction = 1
	West      Direction = -1
	NorthEast Direction = 9
	NorthWest Direction = 7
	SouthEast Direction = -7
	SouthWest Direction = -9
)

// Directions lists the eight compass directions.
var Directions = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// origin returns the squares from which a step in d stays on the board.
func (d Direction) origin() Bitboard {
	switch d {
	case North:
		return ^Rank8
	case South:
		return ^Rank1
	case East:
		return NotFileH
	case West:
		return NotFileA
	case NorthEast:
		return ^(Rank8 | FileH)
	case NorthWest:
		return ^(Rank8 | FileA)
	case SouthEast:
		return ^(Rank1 | FileH)
	case SouthWest:
		return ^(Rank1 | FileA)
	}
	return Empty
}

// Step moves every square of b one step in d. Squares that would cross the
// board edge are dropped instead of wrapping to the opposite side.
func (b Bitboard) Step(d Direction) Bitboard {
	b &= d.origin()
	if d > 0 {
		return b << uint(d)
	}
	return b >> uint(-d)
}

// StepInDirection is the function form of Bitboard.Step.
func StepInDirection(b Bitboard, d Direction) Bitboard {
	return b.Step(d)
}

// StepSequence applies dirs in order. If any step would take a square off the
// board it returns b unchanged and false.
func StepSequence(b Bitboard, dirs ...Direction) (Bitboard, bool) {
	cur := b
	for _, d := range dirs {
		if cur&^d.origin() != 0 {
			return b, false
		}
		cur = cur.Step(d)
	}
	return cur, true
}

// North shifts one rank up.
func (b Bitboard) North() Bitboard {
	return b << 8
}

// South shifts one rank down.
func (b Bitboard) South() Bitboard {
	return b >> 8
}

// NorthEast shifts toward h8.
func (b Bitboard) NorthEast() Bitboard {
	return (b << 9) & NotFileA
}

// NorthWest shifts toward a8.
func (b Bitboard) NorthWest() Bitboard {
	return (b << 7) & NotFileH
}

// SouthEast shifts toward h1.
func (b Bitboard) SouthEast() Bitboard {
	return (b >> 7) & NotFileA
}

// SouthWest shifts toward a1.
func (b Bitboard) SouthWest() Bitboard {
	return (b >> 9) & NotFileH
}

// String draws the set as an 8x8 grid, rank 8 on top.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		row := b & RankMask[rank]
		for file := 0; file < 8; file++ {
			if row&FileMask[file] != 0 {
				sb.WriteString(" 1")
			} else {
				sb.WriteString(" .")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
