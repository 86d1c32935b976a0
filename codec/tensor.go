package codec

import (
	"encoding/binary"
	"math"
	"othello/game"
)

const (
	Channels      = 3
	BytesPerFloat = 4
	TensorSize    = Channels * game.Size * game.Size
)

// Tensor is the network input for one position, shaped
// (batch, channel, height, width) = (1, 3, 8, 8).
//
// Channel 0 holds the discs of the side to move, channel 1 the opponent's
// discs and channel 2 is filled with 1 when black is to move and 0 otherwise.
type Tensor [1][Channels][game.Size][game.Size]float32

func ProcBoard(b game.Board, c game.Color) Tensor {
	var t Tensor
	own, opp := b.Discs(c), b.Discs(c.Opponent())
	turn := float32(0)
	if c == game.Black {
		turn = 1
	}
	for row := 0; row < game.Size; row++ {
		for col := 0; col < game.Size; col++ {
			m := game.NewMove(row, col)
			if own.Has(m) {
				t[0][0][row][col] = 1
			}
			if opp.Has(m) {
				t[0][1][row][col] = 1
			}
			t[0][2][row][col] = turn
		}
	}
	return t
}

// Flat returns the values in channel-major order.
func (t *Tensor) Flat() []float32 {
	out := make([]float32, 0, TensorSize)
	for ch := 0; ch < Channels; ch++ {
		for row := 0; row < game.Size; row++ {
			out = append(out, t[0][ch][row][:]...)
		}
	}
	return out
}

// Bytes returns Flat as little-endian float32s.
func (t *Tensor) Bytes() []byte {
	data := make([]byte, TensorSize*BytesPerFloat)
	for i, v := range t.Flat() {
		binary.LittleEndian.PutUint32(data[i*BytesPerFloat:], math.Float32bits(v))
	}
	return data
}
