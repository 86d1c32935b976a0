package game

import (
	"errors"
	"fmt"
)

// ErrInvalidMove is returned by Put when the move is not legal for the color.
var ErrInvalidMove = errors.New("invalid move")

const (
	fileA    Bitboard = 0x0101010101010101
	fileH    Bitboard = 0x8080808080808080
	notFileA          = ^fileA
	notFileH          = ^fileH
)

// direction shifts a bitboard one cell along a ray. The mask drops bits that
// wrapped from one edge file onto the opposite one.
type direction struct {
	left  bool
	shift uint
	mask  Bitboard
}

func (d direction) step(bb Bitboard) Bitboard {
	if d.left {
		return (bb << d.shift) & d.mask
	}
	return (bb >> d.shift) & d.mask
}

var directions = [8]direction{
	{left: false, shift: 8, mask: ^Bitboard(0)}, // N
	{left: true, shift: 8, mask: ^Bitboard(0)},  // S
	{left: false, shift: 1, mask: notFileH},     // W
	{left: true, shift: 1, mask: notFileA},      // E
	{left: false, shift: 9, mask: notFileH},     // NW
	{left: false, shift: 7, mask: notFileA},     // NE
	{left: true, shift: 7, mask: notFileH},      // SW
	{left: true, shift: 9, mask: notFileA},      // SE
}

// ValidMoveMask returns the empty cells where c captures at least one line.
func ValidMoveMask(b Board, c Color) Bitboard {
	if !c.Valid() {
		return 0
	}
	own, opp := b.sides(c)
	empty := b.Empty()

	var moves Bitboard
	for _, d := range directions {
		// An opponent run is at most 6 cells long on an 8-wide board.
		run := d.step(own) & opp
		run |= d.step(run) & opp
		run |= d.step(run) & opp
		run |= d.step(run) & opp
		run |= d.step(run) & opp
		run |= d.step(run) & opp
		moves |= d.step(run) & empty
	}
	return moves
}

// ValidMoves lists the legal moves of c in ascending cell order. It returns
// nil when c has to pass.
func ValidMoves(b Board, c Color) []Move {
	return ValidMoveMask(b, c).Moves()
}

// ValidBoard marks the legal moves of c on an 8x8 grid indexed [row][col].
func ValidBoard(b Board, c Color) [Size][Size]bool {
	return ValidMoveMask(b, c).Grid()
}

func (b Board) ValidMoves(c Color) []Move {
	return ValidMoves(b, c)
}

// HasMoves reports whether c has at least one legal move.
func (b Board) HasMoves(c Color) bool {
	return ValidMoveMask(b, c) != 0
}

// Flips returns the opponent discs that c would capture by playing m. It is
// empty when m is occupied, out of range or captures nothing.
func Flips(b Board, c Color, m Move) Bitboard {
	if !c.Valid() || !m.Valid() || b.Occupied().Has(m) {
		return 0
	}
	own, opp := b.sides(c)
	origin := m.Bit()

	var flips Bitboard
	for _, d := range directions {
		var line Bitboard
		cell := d.step(origin)
		for cell&opp != 0 {
			line |= cell
			cell = d.step(cell)
		}
		// The run only counts when it is closed by one of the mover's discs
		if cell&own != 0 {
			flips |= line
		}
	}
	return flips
}

// Put plays m for c and returns the resulting board. The input board is left
// untouched. Moves that capture nothing are rejected with ErrInvalidMove.
func Put(b Board, c Color, m Move) (Board, error) {
	if !c.Valid() {
		return Board{}, fmt.Errorf("%w: unknown color %d", ErrInvalidMove, uint8(c))
	}
	if !m.Valid() {
		return Board{}, fmt.Errorf("%w: cell %d out of range", ErrInvalidMove, uint8(m))
	}
	if b.Occupied().Has(m) {
		return Board{}, fmt.Errorf("%w: %s is occupied", ErrInvalidMove, m)
	}
	flips := Flips(b, c, m)
	if flips == 0 {
		return Board{}, fmt.Errorf("%w: %s flips nothing for %s", ErrInvalidMove, m, c)
	}
	return apply(b, c, m, flips), nil
}

func apply(b Board, c Color, m Move, flips Bitboard) Board {
	placed := m.Bit() | flips
	if c == Black {
		return Board{Black: b.Black | placed, White: b.White &^ flips}
	}
	return Board{Black: b.Black &^ flips, White: b.White | placed}
}
