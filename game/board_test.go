package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// slowFlips walks each ray cell by cell with explicit bounds checks.
func slowFlips(b Board, c Color, m Move) Bitboard {
	if b.Occupied().Has(m) {
		return 0
	}
	own, opp := b.sides(c)
	var flips Bitboard
	for _, d := range [8][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		var line Bitboard
		r, col := m.Row()+d[0], m.Col()+d[1]
		for r >= 0 && r < Size && col >= 0 && col < Size && opp.Has(NewMove(r, col)) {
			line |= NewMove(r, col).Bit()
			r, col = r+d[0], col+d[1]
		}
		if r >= 0 && r < Size && col >= 0 && col < Size && own.Has(NewMove(r, col)) {
			flips |= line
		}
	}
	return flips
}

func slowValidMoves(b Board, c Color) Bitboard {
	var moves Bitboard
	for i := 0; i < Cells; i++ {
		if slowFlips(b, c, Move(i)) != 0 {
			moves |= Move(i).Bit()
		}
	}
	return moves
}

func TestInitialBoard(t *testing.T) {
	b := InitialBoard()

	require.True(t, b.Valid(), "Initial board should not overlap")
	require.Equal(t, DiscCount{Black: 2, White: 2}, CountDiscs(b))

	moves := ValidMoves(b, Black)
	require.Equal(t, []Move{NewMove(2, 4), NewMove(3, 5), NewMove(4, 2), NewMove(5, 3)}, moves,
		"Black should have the four opening moves in cell order")
	require.Len(t, ValidMoves(b, White), 4)

	color, ok := b.At(3, 3)
	require.True(t, ok)
	require.Equal(t, Black, color)
	color, ok = b.At(3, 4)
	require.True(t, ok)
	require.Equal(t, White, color)
	_, ok = b.At(0, 0)
	require.False(t, ok)
}

func TestValidBoardMatchesValidMoves(t *testing.T) {
	b := InitialBoard()
	for _, c := range []Color{Black, White} {
		grid := ValidBoard(b, c)
		mask := ValidMoveMask(b, c)
		for row := 0; row < Size; row++ {
			for col := 0; col < Size; col++ {
				require.Equal(t, mask.Has(NewMove(row, col)), grid[row][col],
					"Grid and move list should agree on (%d,%d)", row, col)
			}
		}
	}
}

func TestPut(t *testing.T) {
	t.Run("canonical opening flips the central disc", func(t *testing.T) {
		b := InitialBoard()
		next, err := Put(b, Black, NewMove(2, 4))

		require.NoError(t, err)
		require.Equal(t, DiscCount{Black: 4, White: 1}, CountDiscs(next))
		require.Equal(t, InitialBoard(), b, "Input board should not change")
		color, _ := next.At(3, 4)
		require.Equal(t, Black, color, "Disc between placed and anchor should flip")
	})

	t.Run("rejects occupied cell", func(t *testing.T) {
		_, err := Put(InitialBoard(), Black, NewMove(3, 3))
		require.ErrorIs(t, err, ErrInvalidMove)
	})

	t.Run("rejects move that flips nothing", func(t *testing.T) {
		_, err := Put(InitialBoard(), Black, NewMove(0, 0))
		require.ErrorIs(t, err, ErrInvalidMove)
	})

	t.Run("rejects out of range cell and unknown color", func(t *testing.T) {
		_, err := Put(InitialBoard(), Black, Move(64))
		require.ErrorIs(t, err, ErrInvalidMove)
		_, err = Put(InitialBoard(), Color(0), NewMove(2, 4))
		require.ErrorIs(t, err, ErrInvalidMove)
	})

	t.Run("flips several directions at once", func(t *testing.T) {
		// Black at the ends of a horizontal and a vertical run through (3,3)
		b := Board{
			Black: NewMove(3, 0).Bit() | NewMove(0, 3).Bit(),
			White: NewMove(3, 1).Bit() | NewMove(3, 2).Bit() | NewMove(1, 3).Bit() | NewMove(2, 3).Bit(),
		}
		flips := Flips(b, Black, NewMove(3, 3))
		require.Equal(t, 4, flips.Count())

		next, err := Put(b, Black, NewMove(3, 3))
		require.NoError(t, err)
		require.Equal(t, DiscCount{Black: 7, White: 0}, CountDiscs(next))
	})

	t.Run("run ending on an empty cell flips nothing", func(t *testing.T) {
		b := Board{
			Black: NewMove(0, 0).Bit(),
			White: NewMove(0, 1).Bit() | NewMove(0, 2).Bit(),
		}
		require.Zero(t, Flips(b, Black, NewMove(0, 4)))
		require.Equal(t, NewMove(0, 3).Bit(), ValidMoveMask(b, Black))
	})
}

func TestEdgeWrap(t *testing.T) {
	t.Run("horizontal run does not wrap between rows", func(t *testing.T) {
		// h1 is bit 7, a2 bit 8 and b2 bit 9: adjacent bits on different rows
		b := Board{Black: NewMove(1, 1).Bit(), White: NewMove(1, 0).Bit()}

		require.Zero(t, ValidMoveMask(b, Black), "Black should have no move across the edge")
		require.Zero(t, Flips(b, Black, NewMove(0, 7)))
		_, err := Put(b, Black, NewMove(0, 7))
		require.ErrorIs(t, err, ErrInvalidMove)
	})

	t.Run("westward run does not wrap onto the H file", func(t *testing.T) {
		b := Board{Black: NewMove(2, 6).Bit(), White: NewMove(2, 7).Bit()}
		require.Zero(t, ValidMoveMask(b, Black))
		require.Zero(t, Flips(b, Black, NewMove(3, 0)))
	})

	t.Run("diagonal runs do not wrap", func(t *testing.T) {
		// A north-east step from (4,7) is bit 32, which is (4,0)
		b := Board{Black: NewMove(3, 1).Bit(), White: NewMove(4, 0).Bit()}
		require.Zero(t, Flips(b, Black, NewMove(4, 7)))
		require.Zero(t, ValidMoveMask(b, Black))

		// A south-west step from (0,0) is bit 7, which is (0,7)
		b = Board{Black: NewMove(1, 6).Bit(), White: NewMove(0, 7).Bit()}
		require.Zero(t, Flips(b, Black, NewMove(0, 0)))
		require.Zero(t, ValidMoveMask(b, Black))
	})

	t.Run("captures along the edges are legal", func(t *testing.T) {
		b := Board{
			Black: NewMove(3, 7).Bit() | NewMove(7, 0).Bit(),
			White: NewMove(3, 6).Bit() | NewMove(6, 0).Bit(),
		}
		require.Equal(t, NewMove(3, 5).Bit()|NewMove(5, 0).Bit(), ValidMoveMask(b, Black))
		require.Equal(t, NewMove(3, 6).Bit(), Flips(b, Black, NewMove(3, 5)))
		require.Equal(t, NewMove(6, 0).Bit(), Flips(b, Black, NewMove(5, 0)))
	})

	t.Run("corner to corner diagonal", func(t *testing.T) {
		var white Bitboard
		for i := 1; i < 7; i++ {
			white |= NewMove(i, i).Bit()
		}
		b := Board{Black: NewMove(7, 7).Bit(), White: white}
		require.Equal(t, white, Flips(b, Black, NewMove(0, 0)), "A six disc run should flip entirely")
		require.True(t, ValidMoveMask(b, Black).Has(NewMove(0, 0)))
	})
}

func TestRandomGamesAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 200; game++ {
		s := NewState(InitialBoard(), Black)
		for !s.Over() {
			b, c := s.Board, s.Player
			require.True(t, b.Valid(), "Boards should never overlap")
			require.Equal(t, slowValidMoves(b, c), ValidMoveMask(b, c), "Move mask should match reference\n%s", b)

			before := CountDiscs(b)
			var err error
			s, err = s.Step(func(legal Bitboard) Move {
				moves := legal.Moves()
				m := moves[rng.Intn(len(moves))]
				flips := Flips(b, c, m)
				require.Equal(t, slowFlips(b, c, m), flips)
				require.NotZero(t, flips, "Every legal move should flip at least one disc")

				next, err := Put(b, c, m)
				require.NoError(t, err)
				require.Equal(t, before.Total()+1, CountDiscs(next).Total())
				require.Equal(t, before.Total()+1+flips.Count(), CountDiscs(next).Of(c)+before.Of(c.Opponent()),
					"Mover should gain the placed disc plus the flip set")
				return m
			})
			require.NoError(t, err)
			require.LessOrEqual(t, CountDiscs(s.Board).Total(), Cells)
		}
		require.True(t, IsTerminal(s.Board))
	}
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("e3")
	require.NoError(t, err)
	require.Equal(t, NewMove(2, 4), m)
	require.Equal(t, "e3", m.String())

	_, err = ParseMove("i9")
	require.Error(t, err)
	_, err = ParseMove("e")
	require.Error(t, err)
}
