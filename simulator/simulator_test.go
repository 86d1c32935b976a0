package simulator

import (
	"othello/experiments/metrics"
	"othello/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestSimulateGame(t *testing.T) {
	t.Run("non-positive playout count yields zero", func(t *testing.T) {
		require.Equal(t, 0.0, SimulateGame(game.InitialBoard(), game.Black, 0))
		require.Equal(t, 0.0, SimulateGame(game.InitialBoard(), game.Black, -5))
	})

	t.Run("single playout is a win, a loss or a half-credit draw", func(t *testing.T) {
		for seed := uint64(0); seed < 50; seed++ {
			p := SimulateGame(game.InitialBoard(), game.Black, 1, WithSeed(seed))
			require.Contains(t, []float64{0, 0.5, 1}, p)
			require.Equal(t, p, SimulateGame(game.InitialBoard(), game.Black, 1, WithSeed(seed)),
				"Same seed should replay the same playout")
		}
	})

	t.Run("no draw credit restricts a single playout to 0 or 1", func(t *testing.T) {
		for seed := uint64(0); seed < 50; seed++ {
			p := SimulateGame(game.InitialBoard(), game.Black, 1, WithSeed(seed), WithDrawPolicy(game.NoCredit))
			require.Contains(t, []float64{0, 1}, p)
		}
	})

	t.Run("seeded estimates are reproducible", func(t *testing.T) {
		options := []Option{WithSeed(42), WithGoroutines(4)}
		p1 := SimulateGame(game.InitialBoard(), game.White, 2000, options...)
		p2 := SimulateGame(game.InitialBoard(), game.White, 2000, options...)
		require.Equal(t, p1, p2)
	})

	t.Run("terminal boards are scored without playing", func(t *testing.T) {
		blackMajority := game.Board{Black: 0x00000000FFFFFFFF | 1<<32, White: 0xFFFFFFFE00000000}
		require.Equal(t, 1.0, SimulateGame(blackMajority, game.Black, 10))
		require.Equal(t, 0.0, SimulateGame(blackMajority, game.White, 10))

		even := game.Board{Black: 0x00000000FFFFFFFF, White: 0xFFFFFFFF00000000}
		require.Equal(t, 0.5, SimulateGame(even, game.Black, 10))
		require.Equal(t, 0.0, SimulateGame(even, game.Black, 10, WithDrawPolicy(game.NoCredit)))
	})

	t.Run("pass is played through", func(t *testing.T) {
		// White must pass, then black's only move captures the last white disc
		b := game.Board{Black: game.NewMove(0, 0).Bit(), White: game.NewMove(0, 1).Bit()}
		require.Equal(t, 1.0, Estimate(b, game.White, game.Black, 20))
		require.Equal(t, 0.0, SimulateGame(b, game.White, 20))
	})

	t.Run("random play from the symmetric start is balanced", func(t *testing.T) {
		if testing.Short() {
			t.Skip("long running")
		}
		p := SimulateGame(game.InitialBoard(), game.Black, 100000, WithSeed(1))
		require.InDelta(t, 0.5, p, 0.05)
	})
}

func TestEstimateMetrics(t *testing.T) {
	s := New(WithGoroutines(3), WithSeed(9), WithMetrics(metrics.NewCollector()))
	_, metric := s.Estimate(game.InitialBoard(), game.Black, game.Black, 100)

	require.Equal(t, 3, metric.Goroutines)
	require.Equal(t, 100, metric.Playouts)
	require.GreaterOrEqual(t, metric.Plies, 100*40, "Random games should fill most of the board")
	require.LessOrEqual(t, metric.Plies, 100*60)

	s = New(WithGoroutines(16), WithMetrics(metrics.NewCollector()))
	_, metric = s.Estimate(game.InitialBoard(), game.Black, game.Black, 5)
	require.Equal(t, 5, metric.Goroutines, "Workers should not outnumber playouts")
}

func TestPick(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	legal := game.NewMove(0, 0).Bit() | game.NewMove(3, 5).Bit() | game.NewMove(7, 7).Bit()
	seen := map[game.Move]int{}
	for i := 0; i < 3000; i++ {
		m := pick(legal, rng)
		require.True(t, legal.Has(m))
		seen[m]++
	}
	require.Len(t, seen, 3)
	for _, n := range seen {
		require.InDelta(t, 1000, n, 150, "Moves should be picked uniformly")
	}
}

func TestSeeds(t *testing.T) {
	t.Run("seeded workers use consecutive streams", func(t *testing.T) {
		require.Equal(t, []uint64{7, 8, 9}, New(WithSeed(7)).seeds(3))
	})

	t.Run("unseeded simulators draw fresh streams", func(t *testing.T) {
		a := New().seeds(4)
		b := New().seeds(4)
		require.NotEqual(t, a, b, "Two unseeded simulators should not share worker seeds")
		require.Len(t, map[uint64]bool{a[0]: true, a[1]: true, a[2]: true, a[3]: true}, 4,
			"Workers of one estimate should not share a stream")
	})

	t.Run("new seeds differ between calls", func(t *testing.T) {
		seen := map[uint64]bool{}
		for i := 0; i < 100; i++ {
			seen[NewSeed()] = true
		}
		require.Len(t, seen, 100)
	})
}
