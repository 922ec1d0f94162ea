// Package perft counts legal move paths, the standard correctness check for
// a move generator.
package perft

import (
	"sort"

	"github.com/M1Va1/Stockdoge/internal/board"
)

// LegalMoves filters the pseudo-legal moves of side down to those that do
// not leave its king attacked.
func LegalMoves(b *board.Board, side board.Color) []board.Move {
	pseudo := b.GenAllMoves(side)
	legal := make([]board.Move, 0, pseudo.Len())
	for _, m := range pseudo.Slice() {
		child := b.Copy()
		child.MakeMove(m)
		if !child.IsInCheck(side) {
			legal = append(legal, m)
		}
	}
	return legal
}

// Count returns the number of legal move sequences of length depth.
func Count(b *board.Board, side board.Color, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenAllMoves(side).Slice() {
		child := b.Copy()
		child.MakeMove(m)
		if child.IsInCheck(side) {
			continue
		}
		if depth == 1 {
			nodes++
			continue
		}
		nodes += Count(child, side.Other(), depth-1)
	}
	return nodes
}

// Entry is one root move of a divide run with the nodes beneath it.
type Entry struct {
	Move  string `json:"move"`
	Nodes uint64 `json:"nodes"`
}

// Divide runs Count below every legal root move and returns the entries
// sorted by move text. progress, if not nil, is called after each root move.
func Divide(b *board.Board, side board.Color, depth int, progress func(done, total int)) []Entry {
	if depth < 1 {
		return nil
	}
	roots := LegalMoves(b, side)
	entries := make([]Entry, 0, len(roots))
	for i, m := range roots {
		child := b.Copy()
		child.MakeMove(m)
		entries = append(entries, Entry{Move: m.String(), Nodes: Count(child, side.Other(), depth-1)})
		if progress != nil {
			progress(i+1, len(roots))
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Move < entries[j].Move })
	return entries
}

// Total sums the nodes of a divide run.
func Total(entries []Entry) uint64 {
	var n uint64
	for _, e := range entries {
		n += e.Nodes
	}
	return n
}
