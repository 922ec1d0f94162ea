package board

import "testing"

func countType(ml *MoveList, t MoveType) int {
	n := 0
	for _, m := range ml.Slice() {
		if m.Type() == t {
			n++
		}
	}
	return n
}

func TestStartingPositionMoves(t *testing.T) {
	b := NewStartingBoard(nil)
	for _, c := range []Color{White, Black} {
		if n := b.GenAllMoves(c).Len(); n != 20 {
			t.Errorf("%v: %d moves, want 20", c, n)
		}
	}
}

func TestKnightMovesEmptyBoard(t *testing.T) {
	tests := []struct {
		sq   Square
		want int
	}{
		{D4, 8},
		{A1, 2},
		{H8, 2},
		{B1, 3},
		{G7, 4},
	}
	for _, tc := range tests {
		b := NewBoard(nil)
		b.SetPiece(Knight, White, tc.sq)
		ml := NewMoveList()
		b.GenKnightMoves(ml, White)
		if ml.Len() != tc.want {
			t.Errorf("knight %v: %d moves, want %d", tc.sq, ml.Len(), tc.want)
		}
	}
}

func TestSliderMovesStopAtPieces(t *testing.T) {
	b, _ := mustParse(t, "8/8/3p4/8/1P1R4/8/8/8 w - -")
	ml := NewMoveList()
	b.GenRookMoves(ml, White)

	// d5 d6(capture), c4, e4..h4, d3 d2 d1.
	if ml.Len() != 10 {
		t.Errorf("rook d4: %d moves, want 10: %v", ml.Len(), ml.Slice())
	}
	if !ml.Contains(NewMove(D4, D6)) || ml.Contains(NewMove(D4, D7)) || ml.Contains(NewMove(D4, B4)) {
		t.Errorf("rook d4 moves wrong: %v", ml.Slice())
	}
}

func TestGenerationOrder(t *testing.T) {
	b := NewStartingBoard(nil)
	moves := b.GenAllMoves(White).Slice()
	last := NoPieceType
	for _, m := range moves {
		pt := b.PieceOnSquare(m.From()).Type
		if pt < last {
			t.Fatalf("%v (%v) generated after a %v move", m, pt, last)
		}
		last = pt
	}
}

func TestPawnMoves(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		side Color
		want []Move
		deny []Move
	}{
		{
			name: "double push blocked on the third rank",
			fen:  "4k3/8/8/8/8/4n3/4P3/4K3 w - -",
			side: White,
			deny: []Move{NewMove(E2, E3), NewMove(E2, E4)},
		},
		{
			name: "double push blocked on the fourth rank",
			fen:  "4k3/8/8/8/4n3/8/4P3/4K3 w - -",
			side: White,
			want: []Move{NewMove(E2, E3)},
			deny: []Move{NewMove(E2, E4)},
		},
		{
			name: "no double push off the home rank",
			fen:  "4k3/8/8/8/8/4P3/8/4K3 w - -",
			side: White,
			want: []Move{NewMove(E3, E4)},
			deny: []Move{NewMove(E3, E5)},
		},
		{
			name: "black pushes and captures",
			fen:  "4k3/3p4/2P1P3/8/8/8/8/4K3 b - -",
			side: Black,
			want: []Move{NewMove(D7, D6), NewMove(D7, D5), NewMove(D7, C6), NewMove(D7, E6)},
		},
		{
			name: "no capture across the board edge",
			fen:  "4k3/8/8/p7/8/7P/8/4K3 w - -",
			side: White,
			want: []Move{NewMove(H3, H4)},
			deny: []Move{NewMove(H3, A5)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, _ := mustParse(t, tc.fen)
			ml := NewMoveList()
			b.GenPawnMoves(ml, tc.side)
			for _, m := range tc.want {
				if !ml.Contains(m) {
					t.Errorf("missing %v in %v", m, ml.Slice())
				}
			}
			for _, m := range tc.deny {
				if ml.Contains(m) {
					t.Errorf("unexpected %v", m)
				}
			}
		})
	}
}

func TestPromotions(t *testing.T) {
	b, _ := mustParse(t, "1n2k3/P7/8/8/8/8/8/4K3 w - -")
	ml := NewMoveList()
	b.GenPawnMoves(ml, White)

	// Four pieces for the push to a8 and four for the capture on b8.
	if n := countType(ml, Promotion); n != 8 || ml.Len() != 8 {
		t.Fatalf("%d promotions out of %d moves: %v", n, ml.Len(), ml.Slice())
	}
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		if !ml.Contains(NewPromotion(A7, A8, pt)) || !ml.Contains(NewPromotion(A7, B8, pt)) {
			t.Errorf("missing promotion to %v", pt)
		}
	}
}

func TestEnPassantAfterDoublePush(t *testing.T) {
	b, _ := mustParse(t, "4k3/3p4/8/4P3/8/8/8/4K3 b - -")
	b.MakeMove(NewMove(D7, D5))

	ml := b.GenAllMoves(White)
	if n := countType(ml, EnPassant); n != 1 {
		t.Fatalf("%d en passant moves, want 1: %v", n, ml.Slice())
	}
	if !ml.Contains(NewEnPassant(E5, D6)) {
		t.Errorf("missing e5d6 en passant")
	}

	// The opportunity lapses once another move intervenes.
	b.MakeMove(NewMove(E1, E2))
	b.MakeMove(NewMove(E8, E7))
	if n := countType(b.GenAllMoves(White), EnPassant); n != 0 {
		t.Errorf("%d en passant moves after an intervening move", n)
	}
}

func TestEnPassantFromFEN(t *testing.T) {
	b, side := mustParse(t, "4k3/8/8/2PpP3/8/8/8/4K3 w - d6 0 2")
	ml := b.GenAllMoves(side)
	if n := countType(ml, EnPassant); n != 2 {
		t.Errorf("%d en passant moves, want 2: %v", n, ml.Slice())
	}
}

func TestSingleStepIsNotEnPassant(t *testing.T) {
	b, _ := mustParse(t, "4k3/8/3p4/4P3/8/8/8/4K3 b - -")
	b.MakeMove(NewMove(D6, D5))
	if n := countType(b.GenAllMoves(White), EnPassant); n != 0 {
		t.Errorf("single step allowed %d en passant moves", n)
	}
}

func TestCastlingGeneration(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		side Color
		want []Move
		deny []Move
	}{
		{
			name: "both sides available",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w KQkq -",
			side: White,
			want: []Move{NewCastling(E1, G1), NewCastling(E1, C1)},
		},
		{
			name: "black both sides",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R b KQkq -",
			side: Black,
			want: []Move{NewCastling(E8, G8), NewCastling(E8, C8)},
		},
		{
			name: "no rights",
			fen:  "r3k2r/8/8/8/8/8/8/R3K2R w kq -",
			side: White,
			deny: []Move{NewCastling(E1, G1), NewCastling(E1, C1)},
		},
		{
			name: "path blocked",
			fen:  "r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq -",
			side: White,
			deny: []Move{NewCastling(E1, G1), NewCastling(E1, C1)},
		},
		{
			name: "king in check",
			fen:  "r3k2r/8/8/8/4r3/8/8/R3K2R w KQkq -",
			side: White,
			deny: []Move{NewCastling(E1, G1), NewCastling(E1, C1)},
		},
		{
			name: "crossing square attacked",
			fen:  "r3k2r/8/8/8/5r2/8/8/R3K2R w KQkq -",
			side: White,
			want: []Move{NewCastling(E1, C1)},
			deny: []Move{NewCastling(E1, G1)},
		},
		{
			name: "b-file attack does not stop queenside",
			fen:  "r3k2r/8/8/8/1r6/8/8/R3K2R w KQkq -",
			side: White,
			want: []Move{NewCastling(E1, C1), NewCastling(E1, G1)},
		},
		{
			name: "rook missing",
			fen:  "r3k2r/8/8/8/8/8/8/4K2R w KQkq -",
			side: White,
			want: []Move{NewCastling(E1, G1)},
			deny: []Move{NewCastling(E1, C1)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, _ := mustParse(t, tc.fen)
			ml := b.GenAllMoves(tc.side)
			for _, m := range tc.want {
				if !ml.Contains(m) {
					t.Errorf("missing %v", m)
				}
			}
			for _, m := range tc.deny {
				if ml.Contains(m) {
					t.Errorf("unexpected %v", m)
				}
			}
		})
	}
}

func TestPseudoLegalIncludesSelfCheck(t *testing.T) {
	// The e2 bishop is pinned; pseudo-legal generation still offers its moves.
	b, _ := mustParse(t, "4r1k1/8/8/8/8/8/4B3/4K3 w - -")
	ml := b.GenAllMoves(White)
	m := NewMove(E2, D3)
	if !ml.Contains(m) {
		t.Fatal("pinned bishop move missing")
	}
	child := b.Copy()
	child.MakeMove(m)
	if !child.IsInCheck(White) {
		t.Error("moving the pinned bishop should expose the king")
	}
}

func TestMoveListGrowsPast256(t *testing.T) {
	const fen = "Q1QQQ1QQ/QQ3Q2/3Q3Q/Q6Q/Q6Q/3Q3Q/QQ4Q1/k1QQQQQK w - - 0 1"
	b, side, err := ParseFEN(fen, nil)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	ml := b.GenAllMoves(side)
	want := 0
	own := b.colors[side]
	for sq := range b.Pieces(side, Queen).Squares() {
		want += (b.Magics().QueenAttacks(sq, b.Occupied()) &^ own).PopCount()
	}
	for sq := range b.Pieces(side, King).Squares() {
		want += (kingAttacks[sq] &^ own).PopCount()
	}
	if want <= 256 {
		t.Fatalf("position only has %d moves", want)
	}
	if ml.Len() != want || len(ml.Slice()) != want {
		t.Fatalf("Len() = %d, want %d", ml.Len(), want)
	}
	if last := ml.Slice()[ml.Len()-1]; last.From() != H1 {
		t.Errorf("last move %v, want a king move", last)
	}

	ml.Clear()
	if ml.Len() != 0 {
		t.Errorf("Len() after Clear = %d", ml.Len())
	}
}
