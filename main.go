package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"shapelinks/agent"
	"shapelinks/engine"
	"shapelinks/experiments"
	"shapelinks/meta"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "match", "What to run: match or experiment")
	white := flag.String("white", "depth=4 deepening=true", "White agent: thinker config or random")
	red := flag.String("red", "random", "Red agent: thinker config or random")
	budget := flag.Duration("budget", meta.TIME_BUDGET, "Thinking time per move")
	config := flag.String("config", "experiments/configs/tournament.yaml", "Experiment config file")
	debug := flag.Bool("debug", false, "Log every move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch *mode {
	case "match":
		err = runMatch(ctx, *white, *red, *budget)
	case "experiment":
		err = runExperiment(ctx, *config)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed")
	}
}

func runMatch(ctx context.Context, white, red string, budget time.Duration) error {
	e := engine.NewLocalEngine(agent.New(white), agent.New(red), engine.WithBudget(budget))
	record, err := e.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(e.Board())
	fmt.Printf("%v after %d moves (%v)\n", record.Outcome, record.Game.TotalMoves, record.Game.Duration.Round(time.Millisecond))
	return nil
}

func runExperiment(ctx context.Context, path string) error {
	config, err := experiments.LoadConfig(path)
	if err != nil {
		return err
	}
	return experiments.Run(ctx, config)
}
