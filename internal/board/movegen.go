package board

// GenAllMoves returns the pseudo-legal moves of color c in generation order:
// pawns, knights, bishops, rooks, queens, king. Moves that leave the king in
// check are included; filter them with IsInCheck after MakeMove.
func (b *Board) GenAllMoves(c Color) *MoveList {
	ml := NewMoveList()
	b.GenPawnMoves(ml, c)
	b.GenKnightMoves(ml, c)
	b.GenBishopMoves(ml, c)
	b.GenRookMoves(ml, c)
	b.GenQueenMoves(ml, c)
	b.GenKingMoves(ml, c)
	return ml
}

// back returns the square one step behind sq against d.
func (sq Square) back(d Direction) Square {
	return Square(int(sq) - int(d))
}

// GenPawnMoves adds pushes, double pushes, captures, en passant captures and
// promotions of color us.
func (b *Board) GenPawnMoves(ml *MoveList, us Color) {
	them := us.Other()
	pawns := b.Pieces(us, Pawn)
	if pawns == 0 {
		return
	}
	empty := b.EmptySquares()
	enemies := b.colors[them]

	push, left, right := North, NorthWest, NorthEast
	advance := Bitboard.North
	doubleRank, lastRank := Rank3, Rank8
	if us == Black {
		push, left, right = South, SouthWest, SouthEast
		advance = Bitboard.South
		doubleRank, lastRank = Rank6, Rank1
	}

	single := advance(pawns) & empty
	double := advance(single&doubleRank) & empty

	addPawnMoves(ml, single, push, lastRank)
	for double != 0 {
		to := double.PopLSB()
		ml.Add(NewMove(to.back(push).back(push), to))
	}
	addPawnMoves(ml, pawns.Step(left)&enemies, left, lastRank)
	addPawnMoves(ml, pawns.Step(right)&enemies, right, lastRank)

	// En passant is only available right after an enemy double push.
	if ep := b.EnPassantTarget(); ep != NoSquare && empty.IsSet(ep) && enemies.IsSet(b.lastMove.To()) {
		attackers := pawnAttacks[them][ep] & pawns
		for attackers != 0 {
			ml.Add(NewEnPassant(attackers.PopLSB(), ep))
		}
	}
}

// addPawnMoves adds one move per target reached by stepping d, expanding
// targets on the last rank into the four promotions.
func addPawnMoves(ml *MoveList, targets Bitboard, d Direction, lastRank Bitboard) {
	quiet := targets &^ lastRank
	for quiet != 0 {
		to := quiet.PopLSB()
		ml.Add(NewMove(to.back(d), to))
	}
	promos := targets & lastRank
	for promos != 0 {
		to := promos.PopLSB()
		from := to.back(d)
		ml.Add(NewPromotion(from, to, Queen))
		ml.Add(NewPromotion(from, to, Rook))
		ml.Add(NewPromotion(from, to, Bishop))
		ml.Add(NewPromotion(from, to, Knight))
	}
}

// addTargets adds a normal move from sq to every square of targets.
func addTargets(ml *MoveList, from Square, targets Bitboard) {
	for targets != 0 {
		ml.Add(NewMove(from, targets.PopLSB()))
	}
}

// GenKnightMoves adds knight leaps onto empty or enemy squares.
func (b *Board) GenKnightMoves(ml *MoveList, us Color) {
	knights := b.Pieces(us, Knight)
	for knights != 0 {
		from := knights.PopLSB()
		addTargets(ml, from, knightAttacks[from]&^b.colors[us])
	}
}

// GenBishopMoves adds bishop moves using the magic lookup.
func (b *Board) GenBishopMoves(ml *MoveList, us Color) {
	occupied := b.Occupied()
	bishops := b.Pieces(us, Bishop)
	for bishops != 0 {
		from := bishops.PopLSB()
		addTargets(ml, from, b.magics.BishopAttacks(from, occupied)&^b.colors[us])
	}
}

// GenRookMoves adds rook moves using the magic lookup.
func (b *Board) GenRookMoves(ml *MoveList, us Color) {
	occupied := b.Occupied()
	rooks := b.Pieces(us, Rook)
	for rooks != 0 {
		from := rooks.PopLSB()
		addTargets(ml, from, b.magics.RookAttacks(from, occupied)&^b.colors[us])
	}
}

// GenQueenMoves adds queen moves, the union of both slider lookups.
func (b *Board) GenQueenMoves(ml *MoveList, us Color) {
	occupied := b.Occupied()
	queens := b.Pieces(us, Queen)
	for queens != 0 {
		from := queens.PopLSB()
		addTargets(ml, from, b.magics.QueenAttacks(from, occupied)&^b.colors[us])
	}
}

// castlingPath describes one castling option.
type castlingPath struct {
	right  CastlingRights
	king   Square
	kingTo Square
	rook   Square
	empty  Bitboard // squares between king and rook
	safe   Bitboard // squares the king stands on or crosses
}

var castlingPaths = [ColorCount][2]castlingPath{
	White: {
		{WhiteKingSide, E1, G1, H1, SquareBB(F1) | SquareBB(G1), SquareBB(E1) | SquareBB(F1) | SquareBB(G1)},
		{WhiteQueenSide, E1, C1, A1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), SquareBB(E1) | SquareBB(D1) | SquareBB(C1)},
	},
	Black: {
		{BlackKingSide, E8, G8, H8, SquareBB(F8) | SquareBB(G8), SquareBB(E8) | SquareBB(F8) | SquareBB(G8)},
		{BlackQueenSide, E8, C8, A8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), SquareBB(E8) | SquareBB(D8) | SquareBB(C8)},
	},
}

// GenKingMoves adds the king's single steps and any castling move whose
// right is held, whose king and rook stand on their home squares, whose
// path is empty and whose king squares are not attacked.
func (b *Board) GenKingMoves(ml *MoveList, us Color) {
	kings := b.Pieces(us, King)
	if kings == 0 {
		return
	}
	from := kings.LSB()
	addTargets(ml, from, kingAttacks[from]&^b.colors[us])

	var attacked Bitboard
	computed := false
	for _, path := range castlingPaths[us] {
		if b.castling&path.right == 0 || from != path.king || !b.Pieces(us, Rook).IsSet(path.rook) {
			continue
		}
		if b.Occupied()&path.empty != 0 {
			continue
		}
		if !computed {
			attacked = b.AttacksBy(us.Other())
			computed = true
		}
		if attacked&path.safe != 0 {
			continue
		}
		ml.Add(NewCastling(path.king, path.kingTo))
	}
}
