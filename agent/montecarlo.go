package agent

import (
	"math"
	"othello/game"
	"othello/meta"
	"othello/simulator"

	"golang.org/x/exp/rand"
)

type Option func(a *monteCarloAgent)

// monteCarloAgent scores every legal move by the simulated win probability of
// the position it leads to.
type monteCarloAgent struct {
	playouts    int
	temperature float64
	rng         *rand.Rand
	options     []simulator.Option
}

func WithPlayouts(playouts int) Option {
	return func(a *monteCarloAgent) {
		if playouts > 0 {
			a.playouts = playouts
		}
	}
}

// WithTemperature makes the agent sample moves in proportion to
// estimate^(1/temperature) instead of always taking the best one.
func WithTemperature(temperature float64, seed uint64) Option {
	return func(a *monteCarloAgent) {
		if temperature > 0 {
			a.temperature = temperature
			a.rng = rand.New(rand.NewSource(seed))
		}
	}
}

func WithSimulatorOptions(options ...simulator.Option) Option {
	return func(a *monteCarloAgent) {
		a.options = append(a.options, options...)
	}
}

func NewMonteCarloAgent(options ...Option) Agent {
	a := &monteCarloAgent{playouts: meta.MOVE_PLAYOUTS}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *monteCarloAgent) FindMove(b game.Board, c game.Color) (game.Move, bool) {
	moves := game.ValidMoves(b, c)
	if len(moves) == 0 {
		return 0, false
	}
	estimates := a.Evaluate(b, c, moves)
	if a.temperature > 0 {
		return moves[sample(adjustTemperature(estimates, a.temperature), a.rng)], true
	}
	return moves[findMax(estimates)], true
}

// Evaluate returns, for each move, the probability that c wins after playing it.
func (a *monteCarloAgent) Evaluate(b game.Board, c game.Color, moves []game.Move) []float64 {
	sim := simulator.New(a.options...)
	estimates := make([]float64, len(moves))
	for i, m := range moves {
		next, err := game.Put(b, c, m)
		if err != nil {
			panic(err) // moves come from ValidMoves
		}
		estimates[i], _ = sim.Estimate(next, c.Opponent(), c, a.playouts)
	}
	return estimates
}

func findMax(estimates []float64) int {
	best := 0
	for i, v := range estimates {
		if v > estimates[best] {
			best = i
		}
	}
	return best
}

func adjustTemperature(estimates []float64, temperature float64) []float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(estimates))
	for i, v := range estimates {
		adjusted[i] = math.Pow(v, exponent)
		sum += adjusted[i]
	}
	if sum == 0 {
		// Every move loses in every playout: fall back to uniform
		for i := range adjusted {
			adjusted[i] = 1 / float64(len(adjusted))
		}
		return adjusted
	}
	// Normalize
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample(policy []float64, rng *rand.Rand) int {
	sampled := rng.Float64()
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(policy) - 1 // Fallback in case of rounding errors
}
