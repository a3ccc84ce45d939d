package agent

import (
	"context"
	"fmt"
	"shapelinks/experiments/metrics"
	"shapelinks/game"
	"shapelinks/searcher"

	"github.com/chewxy/math32"
	"github.com/rs/zerolog/log"
)

// Thinker picks moves with a negamax search of the configured depth.
type Thinker struct {
	config   Config
	searcher *searcher.Negamax
	metrics  metrics.Collector
}

func NewThinker(config string) *Thinker {
	t := &Thinker{metrics: metrics.NewCollector()}
	t.Setup(config)
	return t
}

// Setup replaces the configuration. Invalid options fall back to defaults.
func (t *Thinker) Setup(config string) {
	t.config = ParseConfig(config)
	options := []searcher.Option{
		searcher.WithDepth(t.config.Depth),
		searcher.WithVariant(t.config.Variant),
	}
	if t.config.Table > 0 {
		options = append(options, searcher.WithTranspositions(t.config.Table))
	}
	t.searcher = searcher.NewNegamax(t.config.Heuristic, options...)
	log.Debug().Str("thinker", t.Name()).Msg("thinker configured")
}

func (t *Thinker) Config() Config {
	return t.config
}

func (t *Thinker) Name() string {
	return fmt.Sprintf("negamax(%v)", t.config)
}

// FindMove searches until the configured depth or until ctx is done. A
// cancelled search falls back to the move of the deepest completed iteration,
// or to the first legal move when no iteration completed.
func (t *Thinker) FindMove(ctx context.Context, state game.State) (move game.Move, metric metrics.SearchMetric) {
	t.metrics.Start(t.Name(), t.config.Depth)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err, ok := r.(*searcher.InvariantError)
		if !ok || t.config.Strict {
			panic(r)
		}
		log.Error().Err(err).Str("thinker", t.Name()).Msg("search failed, playing the first legal move")
		move = firstLegal(state)
		t.metrics.SetFallback()
		metric = t.metrics.Complete()
	}()

	move = game.NoMove
	first := t.config.Depth
	if t.config.Deepening {
		first = 1
	}
	win := t.config.Heuristic.WinScore()
	for depth := first; depth <= t.config.Depth; depth++ {
		t.searcher.SetDepth(depth)
		result := t.searcher.Search(ctx, state)
		counters := metrics.Counters(t.searcher.Stats())
		if result.Cancelled() {
			t.metrics.AddCounters(counters)
			t.metrics.SetCancelled()
			break
		}
		t.metrics.AddIteration(depth, counters)
		t.metrics.SetScore(result.Score)
		move = result.Move
		// A decided game does not change with more depth
		if math32.Abs(result.Score) == win {
			break
		}
	}

	if move == game.NoMove {
		move = firstLegal(state)
		t.metrics.SetFallback()
	}
	metric = t.metrics.Complete()
	log.Debug().
		Str("thinker", t.Name()).
		Str("move", move.String()).
		Float32("score", metric.Score).
		Int("depth", metric.Depth).
		Int64("nodes", metric.Nodes).
		Bool("cancelled", metric.Cancelled).
		Dur("duration", metric.Duration).
		Msg("move found")
	return move, metric
}
