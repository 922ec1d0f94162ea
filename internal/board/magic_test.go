package board

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"
)

func testMagics(t testing.TB) *Magics {
	t.Helper()
	m, err := DefaultMagics()
	if err != nil {
		t.Fatalf("DefaultMagics: %v", err)
	}
	return m
}

func TestRelevantMaskExcludesRayEnds(t *testing.T) {
	m := testMagics(t)

	tests := []struct {
		name string
		mask Bitboard
		want int
	}{
		{"rook a1", m.RookMagic(A1).Mask, 12},
		{"rook d4", m.RookMagic(D4).Mask, 10},
		{"bishop a1", m.BishopMagic(A1).Mask, 6},
		{"bishop d4", m.BishopMagic(D4).Mask, 9},
	}
	for _, tc := range tests {
		if got := tc.mask.PopCount(); got != tc.want {
			t.Errorf("%s: %d relevant squares, want %d", tc.name, got, tc.want)
		}
	}
	if got := m.RookMagic(A1).Mask; got&(SquareBB(A8)|SquareBB(H1)|SquareBB(A1)) != 0 {
		t.Errorf("rook a1 mask includes a ray end or its own square")
	}
	for sq := A1; sq <= H8; sq++ {
		if mask := m.BishopMagic(sq).Mask; mask&Edges != 0 {
			t.Errorf("bishop %v mask reaches the edge: %#x", sq, uint64(mask))
		}
	}
}

func TestMagicShift(t *testing.T) {
	m := testMagics(t)
	for sq := A1; sq <= H8; sq++ {
		for _, mg := range []Magic{m.BishopMagic(sq), m.RookMagic(sq)} {
			if int(mg.Shift) != 64-mg.Mask.PopCount() {
				t.Fatalf("%v: shift %d for %d mask bits", sq, mg.Shift, mg.Mask.PopCount())
			}
		}
	}
}

// Random full-board occupancies, including bits outside the relevant mask,
// must agree with a ray cast.
func TestMagicRoundTrip(t *testing.T) {
	m := testMagics(t)
	rng := rand.New(rand.NewSource(42))

	for sq := A1; sq <= H8; sq++ {
		for i := 0; i < 200; i++ {
			occ := Bitboard(rng.Uint64() & rng.Uint64())
			if got, want := m.BishopAttacks(sq, occ), slidingAttacks(sq, occ, bishopDirections); got != want {
				t.Fatalf("bishop %v occ %#x: got %#x want %#x", sq, uint64(occ), uint64(got), uint64(want))
			}
			if got, want := m.RookAttacks(sq, occ), slidingAttacks(sq, occ, rookDirections); got != want {
				t.Fatalf("rook %v occ %#x: got %#x want %#x", sq, uint64(occ), uint64(got), uint64(want))
			}
			if got := m.QueenAttacks(sq, occ); got != m.BishopAttacks(sq, occ)|m.RookAttacks(sq, occ) {
				t.Fatalf("queen %v is not the union of both sliders", sq)
			}
		}
	}
}

func TestMagicRoundTripAllSubsets(t *testing.T) {
	m := testMagics(t)

	sliders := []struct {
		name   string
		magic  func(Square) Magic
		lookup func(Square, Bitboard) Bitboard
		dirs   []Direction
	}{
		{"bishop", m.BishopMagic, m.BishopAttacks, bishopDirections},
		{"rook", m.RookMagic, m.RookAttacks, rookDirections},
	}
	for _, sl := range sliders {
		lookups := 0
		for sq := A1; sq <= H8; sq++ {
			mask := sl.magic(sq).Mask
			sub := Empty
			for {
				if got, want := sl.lookup(sq, sub), slidingAttacks(sq, sub, sl.dirs); got != want {
					t.Fatalf("%s %v occ %#x: got %#x want %#x", sl.name, sq, uint64(sub), uint64(got), uint64(want))
				}
				lookups++
				sub = (sub - mask) & mask
				if sub == 0 {
					break
				}
			}
		}
		want := 5248
		if sl.name == "rook" {
			want = 102400
		}
		if lookups != want {
			t.Errorf("%s: checked %d subsets, want %d", sl.name, lookups, want)
		}
	}
}

func TestSliderExamples(t *testing.T) {
	m := testMagics(t)

	if got := m.RookAttacks(A1, Empty).PopCount(); got != 14 {
		t.Errorf("rook a1 on empty board: %d squares, want 14", got)
	}
	if got := m.BishopAttacks(D4, Empty).PopCount(); got != 13 {
		t.Errorf("bishop d4 on empty board: %d squares, want 13", got)
	}

	// A blocker is attacked but nothing beyond it.
	occ := SquareBB(D6)
	got := m.RookAttacks(D4, occ)
	if !got.IsSet(D6) || got.IsSet(D7) || !got.IsSet(D5) {
		t.Errorf("rook d4 with blocker d6: %v", got)
	}
}

func TestBuildMagicsReusesKnownNumbers(t *testing.T) {
	m := testMagics(t)
	cfg := DefaultMagicConfig()
	cfg.Known = m.Numbers()

	rebuilt, err := BuildMagics(cfg)
	if err != nil {
		t.Fatalf("BuildMagics: %v", err)
	}
	if rebuilt.Searched() != 0 {
		t.Errorf("searched %d squares despite known numbers", rebuilt.Searched())
	}
	if rebuilt.TableSize() != m.TableSize() {
		t.Errorf("table size %d, want %d", rebuilt.TableSize(), m.TableSize())
	}
	if rebuilt.RookAttacks(E4, SquareBB(E6)) != m.RookAttacks(E4, SquareBB(E6)) {
		t.Error("rebuilt tables disagree")
	}
}

func TestBuildMagicsRejectsBadKnownNumber(t *testing.T) {
	cfg := DefaultMagicConfig()
	cfg.Known.Rook[A1] = 1 // maps every subset to index 0

	m, err := BuildMagics(cfg)
	if err != nil {
		t.Fatalf("BuildMagics: %v", err)
	}
	if m.Searched() == 0 {
		t.Error("bad known number was accepted without a search")
	}
	if m.RookMagic(A1).Magic == 1 {
		t.Error("bad known number kept")
	}
}

func TestBuildMagicsBudgetExhausted(t *testing.T) {
	_, err := BuildMagics(MagicConfig{Seed: 1, MaxAttempts: 1})
	if !errors.Is(err, ErrMagicNotFound) {
		t.Fatalf("err = %v, want ErrMagicNotFound", err)
	}
}
