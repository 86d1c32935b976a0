package codec

import (
	"fmt"
	"othello/game"
	"strings"
)

// ParseTranscript replays a move list in algebraic notation ("f5d6c3...")
// from the initial board with black to move. Passes are implicit: when the
// side to move has no legal move the turn goes to the opponent. It returns the
// final board and the side to move next.
func ParseTranscript(transcript string) (game.Board, game.Color, error) {
	s := strings.Join(strings.Fields(transcript), "")
	if len(s)%2 != 0 {
		return game.Board{}, 0, &FormatError{Reason: fmt.Sprintf("odd transcript length %d", len(s))}
	}

	b, c := game.InitialBoard(), game.Black
	for i := 0; i < len(s); i += 2 {
		m, err := game.ParseMove(s[i : i+2])
		if err != nil {
			return game.Board{}, 0, &FormatError{Reason: fmt.Sprintf("ply %d", i/2+1), Err: err}
		}
		next, ok := game.NextToMove(b, c)
		if !ok {
			return game.Board{}, 0, &FormatError{Reason: fmt.Sprintf("ply %d after game end", i/2+1)}
		}
		b, err = game.Put(b, next, m)
		if err != nil {
			return game.Board{}, 0, &FormatError{Reason: fmt.Sprintf("ply %d", i/2+1), Err: err}
		}
		c = next.Opponent()
	}
	if next, ok := game.NextToMove(b, c); ok {
		c = next
	}
	return b, c, nil
}

// FormatTranscript writes moves in the notation read by ParseTranscript.
func FormatTranscript(moves []game.Move) string {
	var sb strings.Builder
	sb.Grow(2 * len(moves))
	for _, m := range moves {
		sb.WriteString(m.String())
	}
	return sb.String()
}
