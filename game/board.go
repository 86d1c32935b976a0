package game

import (
	"fmt"
	"math/bits"
	"strings"
)

const (
	Size  = 8
	Cells = Size * Size
)

// Bitboard holds one bit per cell. Bit row*8+col is set when the cell is
// part of the set, so (0,0) is bit 0 and (7,7) is bit 63.
type Bitboard uint64

func (bb Bitboard) Count() int {
	return bits.OnesCount64(uint64(bb))
}

func (bb Bitboard) Has(m Move) bool {
	return bb&m.Bit() != 0
}

// Moves lists the set cells in ascending order.
func (bb Bitboard) Moves() []Move {
	if bb == 0 {
		return nil
	}
	moves := make([]Move, 0, bb.Count())
	for bb != 0 {
		moves = append(moves, Move(bits.TrailingZeros64(uint64(bb))))
		bb &= bb - 1
	}
	return moves
}

// Grid expands the set into an 8x8 grid indexed [row][col].
func (bb Bitboard) Grid() [Size][Size]bool {
	var grid [Size][Size]bool
	for bb != 0 {
		i := bits.TrailingZeros64(uint64(bb))
		grid[i/Size][i%Size] = true
		bb &= bb - 1
	}
	return grid
}

// Move is a cell index in [0,63].
type Move uint8

func NewMove(row, col int) Move {
	return Move(row*Size + col)
}

// ParseMove reads algebraic notation, column letter then row digit ("a1" is
// row 0, col 0).
func ParseMove(s string) (Move, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid move notation %q", s)
	}
	col := int(strings.ToLower(s)[0] - 'a')
	row := int(s[1] - '1')
	if col < 0 || col >= Size || row < 0 || row >= Size {
		return 0, fmt.Errorf("invalid move notation %q", s)
	}
	return NewMove(row, col), nil
}

func (m Move) Row() int { return int(m) / Size }
func (m Move) Col() int { return int(m) % Size }

func (m Move) Valid() bool {
	return m < Cells
}

func (m Move) Bit() Bitboard {
	if !m.Valid() {
		return 0
	}
	return Bitboard(1) << m
}

func (m Move) String() string {
	if !m.Valid() {
		return fmt.Sprintf("invalid(%d)", uint8(m))
	}
	return string([]byte{byte('a' + m.Col()), byte('1' + m.Row())})
}

// Board is an immutable position: one bitboard per color. Operations on a
// Board always return a new value.
type Board struct {
	Black Bitboard
	White Bitboard
}

// InitialBoard returns the starting position: black on (3,3) and (4,4),
// white on (3,4) and (4,3).
func InitialBoard() Board {
	return Board{
		Black: NewMove(3, 3).Bit() | NewMove(4, 4).Bit(),
		White: NewMove(3, 4).Bit() | NewMove(4, 3).Bit(),
	}
}

// Valid reports whether no cell is owned by both colors.
func (b Board) Valid() bool {
	return b.Black&b.White == 0
}

func (b Board) Occupied() Bitboard {
	return b.Black | b.White
}

func (b Board) Empty() Bitboard {
	return ^b.Occupied()
}

// Discs returns the cells owned by c.
func (b Board) Discs(c Color) Bitboard {
	if c == Black {
		return b.Black
	}
	return b.White
}

// sides returns the mover's and opponent's bitboards.
func (b Board) sides(c Color) (own, opp Bitboard) {
	if c == Black {
		return b.Black, b.White
	}
	return b.White, b.Black
}

// At returns the color on (row, col), or false if the cell is empty.
func (b Board) At(row, col int) (Color, bool) {
	bit := NewMove(row, col).Bit()
	switch {
	case b.Black&bit != 0:
		return Black, true
	case b.White&bit != 0:
		return White, true
	default:
		return 0, false
	}
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			c, ok := b.At(row, col)
			switch {
			case !ok:
				sb.WriteByte('.')
			case c == Black:
				sb.WriteByte('X')
			default:
				sb.WriteByte('O')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DiscCount is the number of discs per color.
type DiscCount struct {
	Black int
	White int
}

func CountDiscs(b Board) DiscCount {
	return DiscCount{Black: b.Black.Count(), White: b.White.Count()}
}

// Of returns the count of color c.
func (d DiscCount) Of(c Color) int {
	if c == Black {
		return d.Black
	}
	return d.White
}

func (d DiscCount) Total() int {
	return d.Black + d.White
}

// Outcome compares the counts: more discs wins, equal counts draw.
func (d DiscCount) Outcome() Outcome {
	switch {
	case d.Black > d.White:
		return BlackWins
	case d.White > d.Black:
		return WhiteWins
	default:
		return Draw
	}
}
