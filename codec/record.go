package codec

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"othello/game"
)

// ErrFormat matches every *FormatError.
var ErrFormat = errors.New("malformed record")

// FormatError reports a record that cannot be decoded into a valid position.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrFormat, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrFormat, e.Reason)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// RecordSize is the length of an encoded record: the black and white
// bitboards as big-endian uint64s followed by one byte for the side to move.
const RecordSize = 17

// Record is the compact binary form of a position and the side to move.
type Record []byte

// EncodeRecord packs a board and the side to move. DecodeRecord is its inverse.
func EncodeRecord(b game.Board, c game.Color) Record {
	r := make(Record, RecordSize)
	binary.BigEndian.PutUint64(r[0:8], uint64(b.Black))
	binary.BigEndian.PutUint64(r[8:16], uint64(b.White))
	r[16] = byte(c)
	return r
}

// DecodeRecord unpacks a record. Wrong length, an unknown color byte or a
// cell owned by both colors yield a *FormatError and no board.
func DecodeRecord(r Record) (game.Board, game.Color, error) {
	if len(r) != RecordSize {
		return game.Board{}, 0, &FormatError{Reason: fmt.Sprintf("length %d, want %d", len(r), RecordSize)}
	}
	c := game.Color(r[16])
	if !c.Valid() {
		return game.Board{}, 0, &FormatError{Reason: fmt.Sprintf("color byte %d", r[16])}
	}
	b := game.Board{
		Black: game.Bitboard(binary.BigEndian.Uint64(r[0:8])),
		White: game.Bitboard(binary.BigEndian.Uint64(r[8:16])),
	}
	if !b.Valid() {
		return game.Board{}, 0, &FormatError{Reason: fmt.Sprintf("cells %016x owned by both colors", uint64(b.Black&b.White))}
	}
	return b, c, nil
}

func (r Record) String() string {
	return hex.EncodeToString(r)
}

// ParseRecord reads the hex form produced by Record.String.
func ParseRecord(s string) (Record, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, &FormatError{Reason: "hex", Err: err}
	}
	return Record(raw), nil
}
