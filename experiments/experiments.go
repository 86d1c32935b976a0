package experiments

import (
	"fmt"
	"othello/agent"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/simulator"

	"github.com/rs/zerolog/log"
)

// Contestant names an agent constructor so both colors get a fresh agent
// every game.
type Contestant struct {
	Name string
	New  func(game int) agent.Agent
}

type SelfPlayConfig struct {
	Black     Contestant
	White     Contestant
	Games     int
	Alternate bool // Swap colors every other game
	// EvalPlayouts enables per-ply evaluation when positive.
	EvalPlayouts int
	// SimOptions configure the per-ply evaluation.
	SimOptions []simulator.Option
	// Root is the CSV output directory. Empty skips writing.
	Root string
}

type SelfPlayResult struct {
	Games []engine.Game
	// Wins counts won games per contestant name. Draws are not counted.
	Wins  map[string]int
	Draws int
}

// RunSelfPlay plays a series of games between two contestants.
func RunSelfPlay(cfg SelfPlayConfig) (SelfPlayResult, error) {
	result := SelfPlayResult{Wins: map[string]int{}}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting self-play between black=%s and white=%s...", cfg.Black.Name, cfg.White.Name)

	for i := 0; i < cfg.Games; i++ {
		black, white := cfg.Black, cfg.White
		if cfg.Alternate && i%2 == 1 {
			black, white = white, black
		}
		log.Info().Msgf("starting game %d of %d...", i+1, cfg.Games)

		var options []engine.Option
		if cfg.EvalPlayouts > 0 {
			options = append(options, engine.WithEvaluation(cfg.EvalPlayouts, cfg.SimOptions...))
		}
		e := engine.LocalEngine(black.New(i), white.New(i), options...)
		g, err := e.Run()
		if err != nil {
			return result, fmt.Errorf("game %d: %w", i+1, err)
		}
		result.Games = append(result.Games, g)

		switch g.Outcome {
		case game.BlackWins:
			result.Wins[black.Name]++
		case game.WhiteWins:
			result.Wins[white.Name]++
		default:
			result.Draws++
		}

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i + 1,
			Black:      black.Name,
			White:      white.Name,
			GameMetric: g.Metric,
		})
		for _, s := range g.Steps {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       i + 1,
				Value:      s.Value,
				MoveMetric: metrics.MoveMetric{Ply: s.Ply, Player: s.Player.String()},
			})
		}

		log.Info().Msgf("completed game %d with winner: %s", i+1, g.Outcome)
	}

	log.Info().Msgf("completed self-play: %v, %d draws", result.Wins, result.Draws)

	if cfg.Root == "" {
		return result, nil
	}
	writer, err := metrics.NewWriter(cfg.Root, "selfplay")
	if err != nil {
		return result, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return result, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return result, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return result, nil
}
