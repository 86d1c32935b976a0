package experiments

import (
	"fmt"
	"othello/experiments/metrics"
	"othello/game"
	"othello/simulator"

	"github.com/rs/zerolog/log"
)

// DefaultWorkerCounts are the worker counts timed by the throughput experiment.
var DefaultWorkerCounts = []int{1, 2, 4, 8, 16, 32}

// RunThroughput times an estimate of the initial position at each worker
// count and stores the results as CSV under root. It returns one record per
// worker count.
func RunThroughput(root string, workerCounts []int, playouts int, seed uint64) ([]metrics.ThroughputRecord, error) {
	if playouts <= 0 {
		return nil, fmt.Errorf("playouts must be positive, got %d", playouts)
	}

	log.Info().Msgf("starting throughput experiment with %d playouts...", playouts)

	records := make([]metrics.ThroughputRecord, 0, len(workerCounts))
	board := game.InitialBoard()
	for i, goroutines := range workerCounts {
		sim := simulator.New(
			simulator.WithGoroutines(goroutines),
			simulator.WithSeed(seed),
			simulator.WithMetrics(metrics.NewCollector()),
		)
		estimate, metric := sim.Estimate(board, game.Black, game.Black, playouts)
		records = append(records, metrics.ThroughputRecord{
			ID:               i + 1,
			Estimate:         estimate,
			SimulationMetric: metric,
		})
		log.Info().Msgf("%d goroutines: %.0f playouts/s, estimate %.4f", metric.Goroutines, metric.PlayoutsPerSecond(), estimate)
	}

	log.Info().Msg("completed throughput experiment")

	writer, err := metrics.NewWriter(root, "throughput")
	if err != nil {
		return records, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	err = writer.WriteThroughputRecords(records)
	if err != nil {
		return records, fmt.Errorf("failed to store throughput records: %w", err)
	}
	log.Info().Msgf("stored throughput records in %s", writer.Dir())
	return records, nil
}
