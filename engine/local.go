package engine

import (
	"errors"
	"fmt"
	"othello/agent"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"othello/simulator"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	errNoMove   = errors.New("agent returned no move although legal moves exist")
	errPlyLimit = errors.New("ply limit reached before the game ended")
)

type Option func(e *Engine)

type Engine struct {
	State    game.State
	Agents   [2]agent.Agent // Indexed by color: black first
	playouts int
	simOpts  []simulator.Option
	maxPlies int
}

// WithStart replaces the initial position and side to move.
func WithStart(b game.Board, c game.Color) Option {
	return func(e *Engine) {
		e.State = game.NewState(b, c)
	}
}

// WithEvaluation estimates the mover's win probability before every move.
func WithEvaluation(playouts int, options ...simulator.Option) Option {
	return func(e *Engine) {
		if playouts > 0 {
			e.playouts = playouts
			e.simOpts = options
		}
	}
}

// WithMaxPlies bounds the number of turns, passes included.
func WithMaxPlies(plies int) Option {
	return func(e *Engine) {
		if plies > 0 {
			e.maxPlies = plies
		}
	}
}

func LocalEngine(black, white agent.Agent, options ...Option) *Engine {
	if black == nil || white == nil {
		panic("need an agent for both colors")
	}
	e := &Engine{
		State:  game.NewState(game.InitialBoard(), game.Black),
		Agents:   [2]agent.Agent{black, white},
		maxPlies: meta.MAX_PLIES,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Engine) agentFor(c game.Color) agent.Agent {
	if c == game.Black {
		return e.Agents[0]
	}
	return e.Agents[1]
}

// Run plays the game until neither side can move.
func (e *Engine) Run() (Game, error) {
	var g Game
	g.Metric = metrics.GameMetric{
		StartingPlayer: e.State.Player.String(),
		StartTime:      time.Now(),
	}

	var sim *simulator.Simulator
	if e.playouts > 0 {
		sim = simulator.New(e.simOpts...)
	}

	log.Info().Msgf("%s is starting", e.State.Player)

	for ply := 1; !e.State.Over() && ply <= e.maxPlies; ply++ {
		board, player := e.State.Board, e.State.Player
		step := Step{Ply: len(g.Steps) + 1, Board: board, Player: player, Value: -1}

		var agentErr error
		next, err := e.State.Step(func(legal game.Bitboard) game.Move {
			if sim != nil {
				step.Value, _ = sim.Estimate(board, player, player, e.playouts)
				log.Debug().Msgf("ply %d: %s win %.2f%%", step.Ply, player, step.Value*100)
			}
			m, ok := e.agentFor(player).FindMove(board, player)
			if !ok {
				agentErr = errNoMove
			}
			step.Move = m
			return m
		})
		if agentErr != nil {
			return g, fmt.Errorf("%s at ply %d: %w", player, step.Ply, agentErr)
		}
		if err != nil {
			return g, fmt.Errorf("%s at ply %d: %w", player, step.Ply, err)
		}

		if next.Phase == game.ToMove {
			g.Steps = append(g.Steps, step)
			log.Debug().Msgf("%s played %s", player, step.Move)
		} else if next.Phase == game.Passed {
			g.Passes++
			log.Debug().Msgf("%s passes", player)
		}
		e.State = next
	}

	g.Final = e.State.Board
	if !e.State.Over() {
		log.Warn().Msgf("stopped after %d plies without a result", e.maxPlies)
		return g, fmt.Errorf("%w: %d plies", errPlyLimit, e.maxPlies)
	}
	g.Outcome = game.Result(g.Final)
	g.Metric.EndTime = time.Now()
	g.Metric.Duration = g.Metric.EndTime.Sub(g.Metric.StartTime)
	g.Metric.TotalMoves = len(g.Steps)
	g.Metric.Winner = g.Outcome.String()

	count := game.CountDiscs(g.Final)
	log.Info().Msgf("game over after %d moves with winner: %s (%d-%d)", len(g.Steps), g.Outcome, count.Black, count.White)
	return g, nil
}
