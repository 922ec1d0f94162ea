package board

// Pre-computed attack tables for the non-sliding pieces.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [ColorCount][64]Bitboard
)

// knightLeaps expresses each knight jump as orthogonal unit steps.
var knightLeaps = [8][3]Direction{
	{North, North, East},
	{North, North, West},
	{South, South, East},
	{South, South, West},
	{East, East, North},
	{East, East, South},
	{West, West, North},
	{West, West, South},
}

func init() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		for _, leap := range knightLeaps {
			if to, ok := StepSequence(bb, leap[:]...); ok {
				knightAttacks[sq] |= to
			}
		}

		for _, d := range Directions {
			kingAttacks[sq] |= bb.Step(d)
		}

		pawnAttacks[White][sq] = bb.Step(NorthEast) | bb.Step(NorthWest)
		pawnAttacks[Black][sq] = bb.Step(SouthEast) | bb.Step(SouthWest)
	}
}

// pawnAttacksOf returns the squares attacked by every pawn in pawns at once.
func pawnAttacksOf(pawns Bitboard, c Color) Bitboard {
	if c == White {
		return pawns.NorthEast() | pawns.NorthWest()
	}
	return pawns.SouthEast() | pawns.SouthWest()
}
