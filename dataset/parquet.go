package dataset

import (
	"fmt"
	"os"
	"othello/codec"
	"othello/engine"
	"othello/game"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// Row is a single supervised training sample: one placement of a self-play
// game seen from the side that made it.
//
// Tensor is codec.ProcBoard of the position before the move, stored as
// little-endian float32 in channel-major order.
// Value is the simulated win probability of the mover before the move, or -1
// when the game was played without evaluation.
// Outcome is the final result from the mover's perspective: 1 win, 0.5 draw,
// 0 loss.
type Row struct {
	GameID  string  `parquet:"game_id,dict"`
	Ply     int32   `parquet:"ply"`
	Player  string  `parquet:"player,dict"`
	Black   uint64  `parquet:"black"`
	White   uint64  `parquet:"white"`
	Tensor  []byte  `parquet:"tensor"`
	Move    int32   `parquet:"move"`
	Value   float32 `parquet:"value"`
	Outcome float32 `parquet:"outcome"`
}

// FromGame turns every placement of g into a row.
func FromGame(gameID string, g engine.Game) []Row {
	rows := make([]Row, 0, len(g.Steps))
	for _, s := range g.Steps {
		tensor := codec.ProcBoard(s.Board, s.Player)
		rows = append(rows, Row{
			GameID:  gameID,
			Ply:     int32(s.Ply),
			Player:  s.Player.String(),
			Black:   uint64(s.Board.Black),
			White:   uint64(s.Board.White),
			Tensor:  tensor.Bytes(),
			Move:    int32(s.Move),
			Value:   float32(s.Value),
			Outcome: float32(g.Outcome.Credit(s.Player, game.HalfCredit)),
		})
	}
	return rows
}

// Write stores rows as a zstd-compressed parquet file. The file is written
// next to its destination and renamed, so readers never observe a partial file.
func Write(outPath string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.SkipPageBounds("tensor"),
		parquet.KeyValueMetadata("schema", "othello_selfplay_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// WriteBatch writes rows to a new timestamped file in outDir and returns its path.
func WriteBatch(outDir string, rows []Row) (string, error) {
	name := fmt.Sprintf("batch_%d.parquet", time.Now().UnixNano())
	outPath := filepath.Join(outDir, name)
	if err := Write(outPath, rows); err != nil {
		return "", err
	}
	return outPath, nil
}

func Read(path string) ([]Row, error) {
	rows, err := parquet.ReadFile[Row](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}
