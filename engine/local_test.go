package engine

import (
	"othello/agent"
	"othello/codec"
	"othello/game"
	"othello/simulator"
	"testing"

	"github.com/stretchr/testify/require"
)

type fixedAgent struct {
	move game.Move
	ok   bool
}

func (a fixedAgent) FindMove(game.Board, game.Color) (game.Move, bool) {
	return a.move, a.ok
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("random game reaches a terminal position", func(t *testing.T) {
		e := LocalEngine(agent.NewRandomAgent(1), agent.NewRandomAgent(2))
		g, err := e.Run()

		require.NoError(t, err)
		require.True(t, game.IsTerminal(g.Final))
		require.True(t, e.State.Over())
		require.Equal(t, 4+len(g.Steps), game.CountDiscs(g.Final).Total(),
			"Every step should add exactly one disc")
		require.Equal(t, game.Result(g.Final), g.Outcome)
		require.Equal(t, len(g.Steps), g.Metric.TotalMoves)

		for _, s := range g.Steps {
			require.True(t, game.ValidMoveMask(s.Board, s.Player).Has(s.Move), "Step %d should be legal", s.Ply)
			require.Equal(t, -1.0, s.Value, "Unevaluated steps should carry -1")
		}

		replayed, _, err := codec.ParseTranscript(codec.FormatTranscript(g.Moves()))
		require.NoError(t, err)
		require.Equal(t, g.Final, replayed, "Transcript should replay to the final board")
	})

	t.Run("evaluation annotates every step", func(t *testing.T) {
		e := LocalEngine(agent.NewRandomAgent(3), agent.NewRandomAgent(4),
			WithEvaluation(20, simulator.WithSeed(1), simulator.WithGoroutines(2)))
		g, err := e.Run()

		require.NoError(t, err)
		require.NotEmpty(t, g.Steps)
		for _, s := range g.Steps {
			require.GreaterOrEqual(t, s.Value, 0.0)
			require.LessOrEqual(t, s.Value, 1.0)
		}
	})

	t.Run("terminal start plays nothing", func(t *testing.T) {
		full := game.Board{Black: 0x00000000FFFFFFFF, White: 0xFFFFFFFF00000000}
		e := LocalEngine(agent.NewRandomAgent(1), agent.NewRandomAgent(2), WithStart(full, game.White))
		g, err := e.Run()

		require.NoError(t, err)
		require.Empty(t, g.Steps)
		require.Equal(t, 1, g.Passes, "Only the first side records a pass before termination")
		require.Equal(t, game.Draw, g.Outcome)
	})

	t.Run("illegal agent move is an error", func(t *testing.T) {
		e := LocalEngine(fixedAgent{move: game.NewMove(0, 0), ok: true}, agent.NewRandomAgent(2))
		_, err := e.Run()
		require.ErrorIs(t, err, game.ErrInvalidMove)
	})

	t.Run("agent refusing to move is an error", func(t *testing.T) {
		e := LocalEngine(fixedAgent{}, agent.NewRandomAgent(2))
		_, err := e.Run()
		require.ErrorIs(t, err, errNoMove)
	})

	t.Run("stopping at the ply limit is an error", func(t *testing.T) {
		e := LocalEngine(agent.NewRandomAgent(1), agent.NewRandomAgent(2), WithMaxPlies(10))
		g, err := e.Run()

		require.ErrorIs(t, err, errPlyLimit)
		require.False(t, e.State.Over())
		require.Equal(t, 10, len(g.Steps)+g.Passes, "Every turn should be a move or a pass")
	})

	t.Run("panics without agents", func(t *testing.T) {
		require.Panics(t, func() {
			LocalEngine(nil, agent.NewRandomAgent(1))
		})
	})
}

func TestMonteCarloBeatsRandom(t *testing.T) {
	if testing.Short() {
		t.Skip("long running")
	}
	wins := 0
	const games = 10
	for i := 0; i < games; i++ {
		mc := agent.NewMonteCarloAgent(agent.WithPlayouts(200),
			agent.WithSimulatorOptions(simulator.WithSeed(uint64(i))))
		e := LocalEngine(mc, agent.NewRandomAgent(uint64(i)))
		g, err := e.Run()
		require.NoError(t, err)
		if g.Outcome == game.BlackWins {
			wins++
		}
	}
	require.GreaterOrEqual(t, wins, 6, "Simulation-guided play should beat random play")
}
