package game

// NextToMove applies the pass rule. It returns c when c can move, the
// opponent when only the opponent can move, and false when the game is over.
func NextToMove(b Board, c Color) (Color, bool) {
	if b.HasMoves(c) {
		return c, true
	}
	if opp := c.Opponent(); b.HasMoves(opp) {
		return opp, true
	}
	return 0, false
}

// IsTerminal reports whether neither side has a legal move.
func IsTerminal(b Board) bool {
	return !b.HasMoves(Black) && !b.HasMoves(White)
}

// Result scores the board by disc count.
func Result(b Board) Outcome {
	return CountDiscs(b).Outcome()
}
