package board

// Magic bitboards for sliding piece attacks. Multipliers are found at
// startup by a bounded random search and verified against ray-cast attacks
// for every occupancy subset.

import (
	"errors"
	"fmt"
	"math/bits"
	"sync"

	"golang.org/x/exp/rand"
)

// ErrMagicNotFound is returned when the multiplier search exhausts its budget.
var ErrMagicNotFound = errors.New("board: no magic multiplier found")

// Magic holds the lookup data of one slider on one square.
type Magic struct {
	Mask   Bitboard // relevant occupancy, ray ends and own square excluded
	Magic  uint64   // multiplier
	Shift  uint8    // 64 - popcount(Mask)
	Offset uint32   // start of this square's slice in the attack table
}

func (m *Magic) index(occupied Bitboard) uint32 {
	return m.Offset + uint32((uint64(occupied&m.Mask)*m.Magic)>>m.Shift)
}

// MagicNumbers are the multipliers of both sliders, indexed by square.
// A zero entry means "unknown, search for one".
type MagicNumbers struct {
	Bishop [64]uint64
	Rook   [64]uint64
}

// MagicConfig bounds the multiplier search.
type MagicConfig struct {
	Seed        uint64
	MaxAttempts int // candidate multipliers tried per square
	Known       MagicNumbers
}

// DefaultMagicConfig returns the seed and budget used by DefaultMagics.
func DefaultMagicConfig() MagicConfig {
	return MagicConfig{
		Seed:        0x9E3779B97F4A7C15,
		MaxAttempts: 1 << 22,
	}
}

// Magics is the read-only attack lookup shared by every Board.
type Magics struct {
	bishop      [64]Magic
	rook        [64]Magic
	bishopTable []Bitboard
	rookTable   []Bitboard
	searched    int
}

var (
	bishopDirections = []Direction{NorthEast, NorthWest, SouthEast, SouthWest}
	rookDirections   = []Direction{North, South, East, West}
)

// BuildMagics computes masks, multipliers and attack tables for both sliders.
// Known multipliers are verified and reused; the rest are searched.
func BuildMagics(cfg MagicConfig) (*Magics, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMagicConfig().MaxAttempts
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	m := &Magics{}

	var err error
	var n int
	m.bishopTable, n, err = buildSlider(&m.bishop, bishopDirections, &cfg.Known.Bishop, rng, cfg.MaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("bishop: %w", err)
	}
	m.searched += n
	m.rookTable, n, err = buildSlider(&m.rook, rookDirections, &cfg.Known.Rook, rng, cfg.MaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("rook: %w", err)
	}
	m.searched += n
	return m, nil
}

// buildSlider fills magics for one slider and returns its attack table and
// the number of squares whose multiplier had to be searched.
func buildSlider(magics *[64]Magic, dirs []Direction, known *[64]uint64, rng *rand.Rand, budget int) ([]Bitboard, int, error) {
	var (
		table     []Bitboard
		occupancy [4096]Bitboard
		reference [4096]Bitboard
		used      [4096]Bitboard
		epoch     [4096]int
		current   int
		searched  int
	)

	for sq := A1; sq <= H8; sq++ {
		mask := relevantMask(sq, dirs)
		shift := uint8(64 - mask.PopCount())

		// Carry-rippler: walk every subset of mask, starting from the empty one.
		n := 0
		for sub := Empty; ; {
			occupancy[n] = sub
			reference[n] = slidingAttacks(sq, sub, dirs)
			n++
			sub = (sub - mask) & mask
			if sub == 0 {
				break
			}
		}

		// Subsets may share an index only when their attacks agree.
		verify := func(magic uint64) bool {
			current++
			for i := 0; i < n; i++ {
				idx := (uint64(occupancy[i]) * magic) >> shift
				if epoch[idx] != current {
					epoch[idx] = current
					used[idx] = reference[i]
				} else if used[idx] != reference[i] {
					return false
				}
			}
			return true
		}

		magic := known[sq]
		if magic == 0 || !verify(magic) {
			searched++
			found := false
			for attempt := 0; attempt < budget; attempt++ {
				magic = rng.Uint64() & rng.Uint64() & rng.Uint64()
				if bits.OnesCount64((uint64(mask)*magic)>>56) < 6 {
					continue
				}
				if verify(magic) {
					found = true
					break
				}
			}
			if !found {
				return nil, searched, fmt.Errorf("%w: square %v after %d attempts", ErrMagicNotFound, sq, budget)
			}
		}

		magics[sq] = Magic{Mask: mask, Magic: magic, Shift: shift, Offset: uint32(len(table))}
		table = append(table, make([]Bitboard, 1<<(64-int(shift)))...)
		for i := 0; i < n; i++ {
			table[magics[sq].index(occupancy[i])] = reference[i]
		}
	}
	return table, searched, nil
}

// relevantMask collects the squares a slider passes through, leaving out the
// last square of every ray since nothing lies beyond it to block.
func relevantMask(sq Square, dirs []Direction) Bitboard {
	var mask Bitboard
	for _, d := range dirs {
		for bb := SquareBB(sq).Step(d); bb.Step(d) != 0; bb = bb.Step(d) {
			mask |= bb
		}
	}
	return mask
}

// slidingAttacks ray-casts from sq, stopping on (and including) the first
// occupied square of each ray.
func slidingAttacks(sq Square, occupied Bitboard, dirs []Direction) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		for bb := SquareBB(sq).Step(d); bb != 0; bb = bb.Step(d) {
			attacks |= bb
			if bb&occupied != 0 {
				break
			}
		}
	}
	return attacks
}

// BishopAttacks returns the squares a bishop on sq attacks given occupancy.
func (m *Magics) BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return m.bishopTable[m.bishop[sq].index(occupied)]
}

// RookAttacks returns the squares a rook on sq attacks given occupancy.
func (m *Magics) RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return m.rookTable[m.rook[sq].index(occupied)]
}

// QueenAttacks is the union of the bishop and rook lookups.
func (m *Magics) QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return m.BishopAttacks(sq, occupied) | m.RookAttacks(sq, occupied)
}

// BishopMagic returns the bishop lookup entry of sq.
func (m *Magics) BishopMagic(sq Square) Magic {
	return m.bishop[sq]
}

// RookMagic returns the rook lookup entry of sq.
func (m *Magics) RookMagic(sq Square) Magic {
	return m.rook[sq]
}

// Numbers returns the multipliers in use, suitable for MagicConfig.Known.
func (m *Magics) Numbers() MagicNumbers {
	var n MagicNumbers
	for sq := A1; sq <= H8; sq++ {
		n.Bishop[sq] = m.bishop[sq].Magic
		n.Rook[sq] = m.rook[sq].Magic
	}
	return n
}

// Searched returns how many squares needed a fresh multiplier search.
func (m *Magics) Searched() int {
	return m.searched
}

// TableSize returns the number of attack entries across both sliders.
func (m *Magics) TableSize() int {
	return len(m.bishopTable) + len(m.rookTable)
}

var defaultMagics = sync.OnceValues(func() (*Magics, error) {
	return BuildMagics(DefaultMagicConfig())
})

// DefaultMagics builds the process-wide tables on first use.
func DefaultMagics() (*Magics, error) {
	return defaultMagics()
}

// MustDefaultMagics is DefaultMagics for startup paths that cannot continue
// without attack tables.
func MustDefaultMagics() *Magics {
	m, err := DefaultMagics()
	if err != nil {
		panic(err)
	}
	return m
}
