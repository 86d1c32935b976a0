package simulator

import (
	"math/bits"
	"othello/experiments/metrics"
	"othello/game"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(s *Simulator)

// Simulator estimates win probabilities with uniformly random playouts.
// Playouts are split evenly over a fixed set of goroutines; every goroutine
// owns its own board copies and random stream, and only the per-worker
// partial sums are merged at the end.
type Simulator struct {
	goroutines int
	seed       uint64
	seeded     bool
	policy     game.DrawPolicy
	metrics    metrics.Collector
}

func WithGoroutines(goroutines int) Option {
	return func(s *Simulator) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

// WithSeed makes the estimate reproducible for a fixed worker count: worker i
// draws from a stream seeded with seed+i.
func WithSeed(seed uint64) Option {
	return func(s *Simulator) {
		s.seed = seed
		s.seeded = true
	}
}

func WithDrawPolicy(policy game.DrawPolicy) Option {
	return func(s *Simulator) {
		s.policy = policy
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *Simulator) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

func New(options ...Option) *Simulator {
	s := &Simulator{ // Default values
		goroutines: runtime.NumCPU(),
		policy:     game.HalfCredit,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// SimulateGame returns the estimated probability that c wins from b with c to
// move, over the given number of random playouts. Draws are weighted by the
// draw policy (half credit unless configured otherwise). A non-positive
// playout count yields 0.
func SimulateGame(b game.Board, c game.Color, playouts int, options ...Option) float64 {
	p, _ := New(options...).Estimate(b, c, c, playouts)
	return p
}

// Estimate is SimulateGame with the side to move and the side credited with
// wins given separately.
func Estimate(b game.Board, toMove, perspective game.Color, playouts int, options ...Option) float64 {
	p, _ := New(options...).Estimate(b, toMove, perspective, playouts)
	return p
}

type partial struct {
	credit float64
	plies  int
	passes int
	draws  int
}

func (s *Simulator) Estimate(b game.Board, toMove, perspective game.Color, playouts int) (float64, metrics.SimulationMetric) {
	if playouts <= 0 || !toMove.Valid() || !perspective.Valid() {
		return 0, metrics.SimulationMetric{}
	}

	workers := min(s.goroutines, playouts)
	s.metrics.Start(workers)

	seeds := s.seeds(workers)

	partials := make([]partial, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		n := playouts / workers
		if i < playouts%workers {
			n++
		}
		wg.Add(1)
		go func(i, n int) {
			defer wg.Done()
			partials[i] = s.work(b, toMove, perspective, n, seeds[i])
		}(i, n)
	}
	wg.Wait()

	var credit float64
	for _, p := range partials {
		credit += p.credit
	}
	metric := s.metrics.Complete()
	estimate := credit / float64(playouts)

	log.Debug().
		Int("playouts", playouts).
		Int("goroutines", workers).
		Str("perspective", perspective.String()).
		Float64("estimate", estimate).
		Msg("simulation complete")

	return estimate, metric
}

// seeds returns one stream seed per worker: seed+i when seeded, otherwise
// fresh values from the process entropy source.
func (s *Simulator) seeds(workers int) []uint64 {
	seeds := make([]uint64, workers)
	for i := range seeds {
		if s.seeded {
			seeds[i] = s.seed + uint64(i)
		} else {
			seeds[i] = NewSeed()
		}
	}
	return seeds
}

func (s *Simulator) work(b game.Board, toMove, perspective game.Color, n int, seed uint64) partial {
	rng := rand.New(rand.NewSource(seed))
	choose := func(legal game.Bitboard) game.Move {
		return pick(legal, rng)
	}

	var p partial
	for i := 0; i < n; i++ {
		out := rollout(game.NewState(b, toMove), choose)
		p.credit += out.outcome.Credit(perspective, s.policy)
		p.plies += out.plies
		p.passes += out.passes
		if out.outcome == game.Draw {
			p.draws++
		}
	}
	s.metrics.Add(n, p.plies, p.passes, p.draws)
	return p
}

type result struct {
	outcome game.Outcome
	plies   int
	passes  int
}

// rollout drives the turn state machine until it reaches Terminal.
func rollout(state game.State, choose func(game.Bitboard) game.Move) result {
	var r result
	for !state.Over() {
		next, err := state.Step(choose)
		if err != nil {
			panic(err) // choose only returns members of the legal mask
		}
		switch next.Phase {
		case game.ToMove:
			r.plies++
		case game.Passed:
			r.passes++
		}
		state = next
	}
	r.outcome = state.Outcome()
	return r
}

// pick returns a uniformly random set bit of a non-empty mask.
func pick(legal game.Bitboard, rng *rand.Rand) game.Move {
	for k := rng.Intn(legal.Count()); k > 0; k-- {
		legal &= legal - 1
	}
	return game.Move(bits.TrailingZeros64(uint64(legal)))
}
