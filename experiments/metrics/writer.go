package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ThroughputRecord is one timed batch of playouts at a fixed worker count.
type ThroughputRecord struct {
	ID       int
	Estimate float64
	SimulationMetric
}

type GameRecord struct {
	ID    int
	Black string // Agent name
	White string // Agent name
	GameMetric
}

type MoveRecord struct {
	Game  int // GameRecord.ID
	Value float64
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> and writes every file there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteThroughputRecords(records []ThroughputRecord) error {
	header := []string{"id", "goroutines", "playouts", "plies", "passes", "draws", "duration", "playouts_per_second", "estimate"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Goroutines),
			strconv.Itoa(record.Playouts),
			strconv.Itoa(record.Plies),
			strconv.Itoa(record.Passes),
			strconv.Itoa(record.Draws),
			record.Duration.String(),
			strconv.FormatFloat(record.PlayoutsPerSecond(), 'f', 1, 64),
			strconv.FormatFloat(record.Estimate, 'f', 4, 64),
		}
	}
	return w.write("throughput.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "black", "white", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			record.Black,
			record.White,
			record.StartingPlayer,
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		}
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "ply", "player", "value"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Ply),
			record.Player,
			strconv.FormatFloat(record.Value, 'f', 4, 64),
		}
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) (err error) {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", file, closeErr)
		}
	}()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}
