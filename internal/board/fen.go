package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFEN is wrapped by every ParseFEN failure.
var ErrInvalidFEN = errors.New("invalid FEN")

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewStartingBoard returns the initial position.
func NewStartingBoard(m *Magics) *Board {
	b, _, err := ParseFEN(StartFEN, m)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseFEN builds a board from a FEN string and returns it with the side to
// move. Only the placement field is required; missing fields default to
// white to move, no castling and no en passant. Clock fields are checked
// for syntax and otherwise ignored. An en passant target is stored as the
// double push that produced it.
func ParseFEN(fen string, m *Magics) (*Board, Color, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 || len(parts) > 6 {
		return nil, White, fmt.Errorf("%w: need 1 to 6 fields, got %d", ErrInvalidFEN, len(parts))
	}

	b := NewBoard(m)
	if err := parsePlacement(b, parts[0]); err != nil {
		return nil, White, err
	}

	side := White
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
		case "b":
			side = Black
		default:
			return nil, White, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, parts[1])
		}
	}

	if len(parts) > 2 && parts[2] != "-" {
		for _, c := range parts[2] {
			i := strings.IndexRune("KQkq", c)
			if i < 0 {
				return nil, White, fmt.Errorf("%w: castling letter %q", ErrInvalidFEN, c)
			}
			b.castling |= 1 << i
		}
	}

	if len(parts) > 3 && parts[3] != "-" {
		ep, err := ParseSquare(parts[3])
		if err != nil {
			return nil, White, fmt.Errorf("%w: en passant square: %v", ErrInvalidFEN, err)
		}
		last, err := doublePushTo(b, ep, side)
		if err != nil {
			return nil, White, err
		}
		b.SetLastMove(last)
	}

	for _, field := range parts[min(len(parts), 4):] {
		if n, err := strconv.Atoi(field); err != nil || n < 0 {
			return nil, White, fmt.Errorf("%w: move counter %q", ErrInvalidFEN, field)
		}
	}
	return b, side, nil
}

func parsePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			p, ok := PieceFromLetter(c)
			if !ok {
				return fmt.Errorf("%w: piece letter %q", ErrInvalidFEN, c)
			}
			if file > 7 {
				return fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, rank+1)
			}
			b.put(p.Type, p.Color, NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, rank+1, file)
		}
	}
	return nil
}

// doublePushTo returns the opponent double push that makes ep capturable
// by side.
func doublePushTo(b *Board, ep Square, side Color) (Move, error) {
	fromRank, toRank := 6, 4
	if side == Black {
		fromRank, toRank = 1, 3
	}
	if ep.Rank() != (fromRank+toRank)/2 {
		return NoMove, fmt.Errorf("%w: en passant square %v on the wrong rank", ErrInvalidFEN, ep)
	}
	from, to := NewSquare(ep.File(), fromRank), NewSquare(ep.File(), toRank)
	if !b.Pieces(side.Other(), Pawn).IsSet(to) {
		return NoMove, fmt.Errorf("%w: no pawn in front of en passant square %v", ErrInvalidFEN, ep)
	}
	if b.Occupied()&(SquareBB(from)|SquareBB(ep)) != 0 {
		return NoMove, fmt.Errorf("%w: en passant square %v is blocked", ErrInvalidFEN, ep)
	}
	return NewMove(from, to), nil
}

// FEN returns the position as a FEN string with side to move. Clock fields
// are not tracked and always read "0 1".
func (b *Board) FEN(side Color) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.PieceOnSquare(NewSquare(file, rank))
			if p.IsNone() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if side == Black {
		sb.WriteString(" b ")
	} else {
		sb.WriteString(" w ")
	}
	sb.WriteString(b.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(b.EnPassantTarget().String())
	sb.WriteString(" 0 1")
	return sb.String()
}
