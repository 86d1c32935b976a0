package main

import (
	"flag"
	"fmt"
	"os"
	"othello/agent"
	"othello/codec"
	"othello/config"
	"othello/dataset"
	"othello/experiments"
	"othello/game"
	"othello/simulator"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: othello <command> [flags]

commands:
  simulate    estimate the win probability of a position
  selfplay    play Monte Carlo against random and export the games
  throughput  time simulations at several worker counts
`

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "simulate":
		err = runSimulate(os.Args[2:])
	case "selfplay":
		err = runSelfPlay(os.Args[2:])
	case "throughput":
		err = runThroughput(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", os.Args[1])
	}
}

// commonFlags registers the flags every command shares and returns a function
// that resolves the final config once the set is parsed.
func commonFlags(fs *flag.FlagSet) func() (config.Config, error) {
	path := fs.String("config", "", "YAML config file")
	level := fs.String("log-level", "", "Log level (overrides config)")
	goroutines := fs.Int("goroutines", -1, "Playout workers, 0 for one per CPU (overrides config)")
	seed := fs.Uint64("seed", 0, "Seed for reproducible runs (overrides config)")

	return func() (config.Config, error) {
		cfg, err := config.Load(*path)
		if err != nil {
			return cfg, err
		}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "log-level":
				cfg.LogLevel = *level
			case "goroutines":
				cfg.Goroutines = *goroutines
			case "seed":
				cfg.Seed = *seed
				cfg.Seeded = true
			}
		})
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
		zerolog.SetGlobalLevel(cfg.Level())
		cfg.FillSeed()
		log.Debug().Msgf("using seed %d", cfg.Seed)
		return cfg, nil
	}
}

func simulatorOptions(cfg config.Config) []simulator.Option {
	options := []simulator.Option{simulator.WithGoroutines(cfg.Goroutines)}
	if cfg.Seeded {
		options = append(options, simulator.WithSeed(cfg.Seed))
	}
	if cfg.DrawPolicy == "none" {
		options = append(options, simulator.WithDrawPolicy(game.NoCredit))
	}
	return options
}

func runSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	resolve := commonFlags(fs)
	record := fs.String("record", "", "Position as a hex record")
	transcript := fs.String("transcript", "", "Position as a move list from the start, e.g. f5d6c3")
	playouts := fs.Int("playouts", 0, "Number of playouts (overrides config)")
	fs.Parse(args)

	cfg, err := resolve()
	if err != nil {
		return err
	}
	if *playouts > 0 {
		cfg.Playouts = *playouts
	}

	b, c := game.InitialBoard(), game.Black
	switch {
	case *record != "" && *transcript != "":
		return fmt.Errorf("use either -record or -transcript")
	case *record != "":
		r, err := codec.ParseRecord(*record)
		if err != nil {
			return err
		}
		if b, c, err = codec.DecodeRecord(r); err != nil {
			return err
		}
	case *transcript != "":
		if b, c, err = codec.ParseTranscript(*transcript); err != nil {
			return err
		}
	}

	sim := simulator.New(simulatorOptions(cfg)...)
	p, metric := sim.Estimate(b, c, c, cfg.Playouts)
	count := game.CountDiscs(b)
	fmt.Printf("%s\n%s to move, %d-%d\n", b, c, count.Black, count.White)
	fmt.Printf("win probability: %.2f%% over %d playouts\n", p*100, cfg.Playouts)
	log.Debug().Msgf("%+v", metric)
	return nil
}

func runSelfPlay(args []string) error {
	fs := flag.NewFlagSet("selfplay", flag.ExitOnError)
	resolve := commonFlags(fs)
	games := fs.Int("games", 0, "Number of games (overrides config)")
	movePlayouts := fs.Int("move-playouts", 0, "Playouts per candidate move (overrides config)")
	evaluate := fs.Bool("evaluate", false, "Estimate the mover's win probability at every ply")
	out := fs.String("out", "", "Output directory (overrides config)")
	parquetOut := fs.Bool("parquet", true, "Write the games as a parquet dataset")
	fs.Parse(args)

	cfg, err := resolve()
	if err != nil {
		return err
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *movePlayouts > 0 {
		cfg.MovePlayouts = *movePlayouts
	}
	if *out != "" {
		cfg.OutDir = *out
	}

	simOpts := simulatorOptions(cfg)
	mc := experiments.Contestant{Name: "montecarlo", New: func(i int) agent.Agent {
		options := []agent.Option{
			agent.WithPlayouts(cfg.MovePlayouts),
			agent.WithSimulatorOptions(simOpts...),
		}
		if cfg.Temperature > 0 {
			options = append(options, agent.WithTemperature(cfg.Temperature, cfg.Seed+uint64(i)))
		}
		return agent.NewMonteCarloAgent(options...)
	}}
	random := experiments.Contestant{Name: "random", New: func(i int) agent.Agent {
		return agent.NewRandomAgent(cfg.Seed + uint64(i))
	}}

	selfPlay := experiments.SelfPlayConfig{
		Black:     mc,
		White:     random,
		Games:     cfg.Games,
		Alternate: true,
		Root:      cfg.OutDir,
	}
	if *evaluate {
		selfPlay.EvalPlayouts = cfg.Playouts
		selfPlay.SimOptions = simOpts
	}
	result, err := experiments.RunSelfPlay(selfPlay)
	if err != nil {
		return err
	}
	fmt.Printf("montecarlo %d, random %d, draws %d\n", result.Wins[mc.Name], result.Wins[random.Name], result.Draws)
	for i, g := range result.Games {
		log.Debug().Msgf("game %d: %s", i+1, codec.FormatTranscript(g.Moves()))
	}

	if !*parquetOut || cfg.OutDir == "" {
		return nil
	}
	var rows []dataset.Row
	for _, g := range result.Games {
		rows = append(rows, dataset.FromGame(uuid.NewString(), g)...)
	}
	path, err := dataset.WriteBatch(cfg.OutDir, rows)
	if err != nil {
		return err
	}
	log.Info().Msgf("wrote %d rows to %s", len(rows), path)
	return nil
}

func runThroughput(args []string) error {
	fs := flag.NewFlagSet("throughput", flag.ExitOnError)
	resolve := commonFlags(fs)
	playouts := fs.Int("playouts", 0, "Playouts per worker count (overrides config)")
	workers := fs.String("workers", "", "Comma separated worker counts")
	out := fs.String("out", "", "Output directory (overrides config)")
	fs.Parse(args)

	cfg, err := resolve()
	if err != nil {
		return err
	}
	if *playouts > 0 {
		cfg.Playouts = *playouts
	}
	if *out != "" {
		cfg.OutDir = *out
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "experiments"
	}

	counts := experiments.DefaultWorkerCounts
	if *workers != "" {
		counts = nil
		for _, field := range strings.Split(*workers, ",") {
			var n int
			if _, err := fmt.Sscanf(strings.TrimSpace(field), "%d", &n); err != nil || n <= 0 {
				return fmt.Errorf("invalid worker count %q", field)
			}
			counts = append(counts, n)
		}
	}

	_, err = experiments.RunThroughput(cfg.OutDir, counts, cfg.Playouts, cfg.Seed)
	return err
}
