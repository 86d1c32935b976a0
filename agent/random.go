package agent

import (
	"othello/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays uniformly random legal moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(b game.Board, c game.Color) (game.Move, bool) {
	moves := game.ValidMoves(b, c)
	if len(moves) == 0 {
		return 0, false
	}
	return moves[a.rng.Intn(len(moves))], true
}
