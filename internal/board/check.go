package board

// AttacksBy returns every square attacked by the pieces of color c.
func (b *Board) AttacksBy(c Color) Bitboard {
	occupied := b.Occupied()
	attacks := pawnAttacksOf(b.Pieces(c, Pawn), c)

	for sq := range b.Pieces(c, Knight).Squares() {
		attacks |= knightAttacks[sq]
	}
	for sq := range (b.Pieces(c, Bishop) | b.Pieces(c, Queen)).Squares() {
		attacks |= b.magics.BishopAttacks(sq, occupied)
	}
	for sq := range (b.Pieces(c, Rook) | b.Pieces(c, Queen)).Squares() {
		attacks |= b.magics.RookAttacks(sq, occupied)
	}
	for sq := range b.Pieces(c, King).Squares() {
		attacks |= kingAttacks[sq]
	}
	return attacks
}

// AttackersTo returns the pieces of color by that attack sq.
func (b *Board) AttackersTo(sq Square, by Color) Bitboard {
	occupied := b.Occupied()
	bishopsQueens := b.Pieces(by, Bishop) | b.Pieces(by, Queen)
	rooksQueens := b.Pieces(by, Rook) | b.Pieces(by, Queen)
	return (pawnAttacks[by.Other()][sq] & b.Pieces(by, Pawn)) |
		(knightAttacks[sq] & b.Pieces(by, Knight)) |
		(kingAttacks[sq] & b.Pieces(by, King)) |
		(b.magics.BishopAttacks(sq, occupied) & bishopsQueens) |
		(b.magics.RookAttacks(sq, occupied) & rooksQueens)
}

// IsSquareAttacked reports whether any piece of color by attacks sq.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.AttackersTo(sq, by) != 0
}

// AttackMap returns the cached attack map, the color it belongs to and
// whether it is current.
func (b *Board) AttackMap() (Bitboard, Color, bool) {
	return b.attackMap, b.attackColor, b.attackValid
}

// IsInCheck reports whether the king of color c is attacked. The cached
// attack map answers directly when the opponent made the last move;
// otherwise the opponent's attacks are recomputed. A board without a king of
// color c is never in check.
func (b *Board) IsInCheck(c Color) bool {
	king := b.Pieces(c, King)
	if king == 0 {
		return false
	}
	them := c.Other()
	if b.attackValid && b.attackColor == them {
		return b.attackMap&king != 0
	}
	return b.AttacksBy(them)&king != 0
}
