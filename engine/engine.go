package engine

import (
	"othello/experiments/metrics"
	"othello/game"
)

// Step is one placement: the board before it, who played and where.
type Step struct {
	Ply    int
	Board  game.Board
	Player game.Color
	Move   game.Move
	// Value is the mover's simulated win probability before the move, or -1
	// when the engine runs without evaluation.
	Value float64
}

// Game is the full record of a finished game.
type Game struct {
	Steps   []Step
	Final   game.Board
	Outcome game.Outcome
	Passes  int
	Metric  metrics.GameMetric
}

// Moves returns the placements in order, without passes.
func (g Game) Moves() []game.Move {
	moves := make([]game.Move, len(g.Steps))
	for i, s := range g.Steps {
		moves[i] = s.Move
	}
	return moves
}
