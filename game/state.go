package game

import "fmt"

// Phase is the position of a game in the turn state machine:
//
//	ToMove(c)  --c plays-->        ToMove(c')
//	ToMove(c)  --c cannot move-->  Passed(c')
//	Passed(c)  --c plays-->        ToMove(c')
//	Passed(c)  --c cannot move-->  Terminal
//
// where c' is the opponent of c.
type Phase uint8

const (
	ToMove Phase = iota
	Passed
	Terminal
)

func (p Phase) String() string {
	switch p {
	case ToMove:
		return "to-move"
	case Passed:
		return "passed"
	default:
		return "terminal"
	}
}

// State is a board plus the side to move and the phase of the turn machine.
type State struct {
	Board  Board
	Player Color
	Phase  Phase
}

func NewState(b Board, c Color) State {
	return State{Board: b, Player: c, Phase: ToMove}
}

func (s State) Over() bool {
	return s.Phase == Terminal
}

// Outcome scores the board. It is only meaningful once the state is over.
func (s State) Outcome() Outcome {
	return Result(s.Board)
}

// Step performs one transition. When the side to move has legal moves, choose
// picks one of them from the non-empty mask; otherwise the side passes.
// Stepping a terminal state returns it unchanged.
func (s State) Step(choose func(legal Bitboard) Move) (State, error) {
	if s.Phase == Terminal {
		return s, nil
	}
	legal := ValidMoveMask(s.Board, s.Player)
	if legal == 0 {
		return s.pass(), nil
	}
	m := choose(legal)
	if !legal.Has(m) {
		return s, fmt.Errorf("%w: %s is not legal for %s", ErrInvalidMove, m, s.Player)
	}
	return State{
		Board:  apply(s.Board, s.Player, m, Flips(s.Board, s.Player, m)),
		Player: s.Player.Opponent(),
		Phase:  ToMove,
	}, nil
}

func (s State) pass() State {
	if s.Phase == Passed {
		return State{Board: s.Board, Player: s.Player, Phase: Terminal}
	}
	return State{Board: s.Board, Player: s.Player.Opponent(), Phase: Passed}
}
