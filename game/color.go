package game

// Color identifies the side owning a disc or the side to move.
type Color uint8

const (
	Black Color = iota + 1
	White
)

// Opponent returns the other color.
func (c Color) Opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

// ChangeTurn returns the color that moves after c.
func ChangeTurn(c Color) Color {
	return c.Opponent()
}

func (c Color) Valid() bool {
	return c == Black || c == White
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "invalid"
	}
}

// Outcome is the result of a finished game.
type Outcome uint8

const (
	Draw Outcome = iota
	BlackWins
	WhiteWins
)

// DrawPolicy decides how much a drawn game is worth to either side.
type DrawPolicy uint8

const (
	HalfCredit DrawPolicy = iota // A draw is worth 0.5 to both sides
	NoCredit                     // A draw is worth nothing, like a loss
)

// Winner returns the winning color, or false on a draw.
func (o Outcome) Winner() (Color, bool) {
	switch o {
	case BlackWins:
		return Black, true
	case WhiteWins:
		return White, true
	default:
		return 0, false
	}
}

// Credit returns the reward of the outcome for player c: 1 for a win, 0 for a
// loss and a policy-dependent value for a draw.
func (o Outcome) Credit(c Color, policy DrawPolicy) float64 {
	winner, ok := o.Winner()
	if !ok {
		if policy == HalfCredit {
			return 0.5
		}
		return 0
	}
	if winner == c {
		return 1
	}
	return 0
}

func (o Outcome) String() string {
	switch o {
	case BlackWins:
		return "black"
	case WhiteWins:
		return "white"
	default:
		return "draw"
	}
}
