package agent

import "othello/game"

type Agent interface {
	// FindMove returns the move to play for c, or false when c has to pass
	FindMove(b game.Board, c game.Color) (game.Move, bool)
}
