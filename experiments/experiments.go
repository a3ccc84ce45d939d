package experiments

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"shapelinks/agent"
	"shapelinks/engine"
	"shapelinks/experiments/metrics"
	"shapelinks/game"
	"shapelinks/meta"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	NUM_GAMES  = 10 // Per match up
	OUTPUT_DIR = "results"
)

type BoardConfig struct {
	Rows     int `yaml:"rows"`
	Cols     int `yaml:"cols"`
	Sequence int `yaml:"sequence"`
	Round    int `yaml:"round"`
	Square   int `yaml:"square"`
}

func (b BoardConfig) options() []game.BoardOption {
	options := []game.BoardOption{}
	if b.Rows > 0 || b.Cols > 0 {
		options = append(options, game.WithSize(lo.Ternary(b.Rows > 0, b.Rows, meta.ROWS), lo.Ternary(b.Cols > 0, b.Cols, meta.COLS)))
	}
	if b.Sequence > 0 {
		options = append(options, game.WithSequence(b.Sequence))
	}
	if b.Round > 0 || b.Square > 0 {
		options = append(options, game.WithPieces(lo.Ternary(b.Round > 0, b.Round, meta.ROUND_PIECES), lo.Ternary(b.Square > 0, b.Square, meta.SQUARE_PIECES)))
	}
	return options
}

// Config describes an experiment: a tournament between agents, a pruning
// comparison between search variants, or both.
type Config struct {
	Name      string                `yaml:"name"`
	Output    string                `yaml:"output"`
	Games     int                   `yaml:"games"` // per match up
	Budget    time.Duration         `yaml:"budget"`
	Parallel  int                   `yaml:"parallel"`
	Alternate bool                  `yaml:"alternate"` // swap colors every other game
	Board     BoardConfig           `yaml:"board"`
	Agents    []metrics.AgentConfig `yaml:"agents"`
	MatchUps  [][]int               `yaml:"matchups"` // agent ids, white first
	Pruning   *PruningConfig        `yaml:"pruning"`
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read experiment config: %w", err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse experiment config %s: %w", path, err)
	}
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid experiment config %s: %w", path, err)
	}
	return config, nil
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = "experiment"
	}
	if c.Output == "" {
		c.Output = OUTPUT_DIR
	}
	if c.Games == 0 {
		c.Games = NUM_GAMES
	}
	if c.Budget == 0 {
		c.Budget = meta.TIME_BUDGET
	}
	if c.Parallel == 0 {
		c.Parallel = runtime.NumCPU()
	}
	if c.Pruning != nil {
		pruning := c.Pruning.withDefaults()
		c.Pruning = &pruning
	}
	return c
}

// Validate reports every problem of the config at once.
func (c Config) Validate() error {
	var result *multierror.Error
	if c.Games < 0 {
		result = multierror.Append(result, fmt.Errorf("games must be positive, got %d", c.Games))
	}
	if c.Budget < 0 {
		result = multierror.Append(result, fmt.Errorf("budget must be positive, got %v", c.Budget))
	}
	if c.Parallel < 0 {
		result = multierror.Append(result, fmt.Errorf("parallel must be positive, got %d", c.Parallel))
	}
	if c.Board.Rows < 0 || c.Board.Cols < 0 || c.Board.Round < 0 || c.Board.Square < 0 {
		result = multierror.Append(result, fmt.Errorf("board sizes must not be negative: %+v", c.Board))
	}
	if c.Board.Sequence == 1 || c.Board.Sequence < 0 {
		result = multierror.Append(result, fmt.Errorf("board sequence must be at least 2, got %d", c.Board.Sequence))
	}

	ids := lo.Map(c.Agents, func(a metrics.AgentConfig, _ int) int { return a.ID })
	for _, id := range lo.FindDuplicates(ids) {
		result = multierror.Append(result, fmt.Errorf("duplicate agent id %d", id))
	}
	for i, matchUp := range c.MatchUps {
		if len(matchUp) != 2 {
			result = multierror.Append(result, fmt.Errorf("match up %d needs two agents, got %d", i+1, len(matchUp)))
			continue
		}
		for _, id := range matchUp {
			if !lo.Contains(ids, id) {
				result = multierror.Append(result, fmt.Errorf("match up %d uses unknown agent %d", i+1, id))
			}
		}
	}
	if len(c.MatchUps) == 0 && c.Pruning == nil {
		result = multierror.Append(result, fmt.Errorf("nothing to run: no match ups and no pruning experiment"))
	}
	if c.Pruning != nil {
		if err := c.Pruning.validate(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Run runs the experiments of the config and writes their records under the
// output folder.
func Run(ctx context.Context, config Config) error {
	writer, err := metrics.NewWriter(config.Output, config.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if len(config.MatchUps) > 0 {
		summaries, err := RunTournament(ctx, config, writer)
		if err != nil {
			return err
		}
		for _, s := range summaries {
			log.Info().
				Int("agent", s.Agent).
				Int("games", s.Games).
				Int("wins", s.Wins).
				Int("draws", s.Draws).
				Int("losses", s.Losses).
				Float64("nodes_mean", s.NodesMean).
				Float64("nodes_std", s.NodesStd).
				Float64("move_ms_mean", s.MoveMillisMean).
				Int("fallbacks", s.Fallbacks).
				Msg(s.Config)
		}
	}

	if config.Pruning != nil {
		records, err := RunPruning(ctx, *config.Pruning, config.Board.options()...)
		if err != nil {
			return err
		}
		if err := writer.WritePruningRecords(records); err != nil {
			return fmt.Errorf("failed to write pruning records: %w", err)
		}
		log.Info().Msg("stored pruning records")
	}

	log.Info().Str("dir", writer.Dir()).Msgf("completed %s experiment", config.Name)
	return nil
}

type job struct {
	id         int
	white, red metrics.AgentConfig
}

// RunTournament plays every match up the configured number of times, running
// games concurrently.
func RunTournament(ctx context.Context, config Config, writer *metrics.Writer) ([]Summary, error) {
	agents := lo.KeyBy(config.Agents, func(a metrics.AgentConfig) int { return a.ID })
	jobs := []job{}
	for _, matchUp := range config.MatchUps {
		white, red := agents[matchUp[0]], agents[matchUp[1]]
		for i := 0; i < config.Games; i++ {
			if config.Alternate && i%2 == 1 {
				jobs = append(jobs, job{id: len(jobs) + 1, white: red, red: white})
			} else {
				jobs = append(jobs, job{id: len(jobs) + 1, white: white, red: red})
			}
		}
	}

	log.Info().Msgf("starting %s tournament: %d games...", config.Name, len(jobs))

	records := make([]engine.Record, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(config.Parallel, 1))
	for i, j := range jobs {
		g.Go(func() error {
			e := engine.NewLocalEngine(agent.New(j.white.Config), agent.New(j.red.Config),
				engine.WithBudget(config.Budget), engine.WithBoard(config.Board.options()...))
			record, err := e.Run(ctx)
			if err != nil {
				return fmt.Errorf("game %d: %w", j.id, err)
			}
			records[i] = record
			log.Info().Msgf("completed game %d of %d: %v", j.id, len(jobs), record.Outcome)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed %s tournament", config.Name)

	gameRecords := make([]metrics.GameRecord, 0, len(jobs))
	moveRecords := []metrics.MoveRecord{}
	for i, j := range jobs {
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         j.id,
			White:      j.white.ID,
			Red:        j.red.ID,
			GameMetric: records[i].Game,
		})
		for _, mm := range records[i].Moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       j.id,
				MoveMetric: mm,
			})
		}
	}

	// Store experiment metadata
	if err := writer.WriteAgentConfigs(config.Agents); err != nil {
		return nil, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return nil, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return nil, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return Summarize(config.Agents, gameRecords, moveRecords), nil
}
