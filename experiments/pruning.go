package experiments

import (
	"context"
	"fmt"
	"shapelinks/experiments/metrics"
	"shapelinks/game"
	"shapelinks/meta"
	"shapelinks/searcher"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// PruningConfig compares the effort of the search variants on random
// positions searched to the same depth.
type PruningConfig struct {
	Positions int    `yaml:"positions"`
	Plies     int    `yaml:"plies"` // random moves played to reach each position
	Depth     int    `yaml:"depth"`
	Heuristic string `yaml:"heuristic"`
	Table     int    `yaml:"table"` // entries of the table variants
	Seed      uint64 `yaml:"seed"`
}

func (p PruningConfig) withDefaults() PruningConfig {
	if p.Positions == 0 {
		p.Positions = 20
	}
	if p.Plies == 0 {
		p.Plies = 8
	}
	if p.Depth == 0 {
		p.Depth = 4
	}
	if p.Heuristic == "" {
		p.Heuristic = meta.DEFAULT_HEURISTIC
	}
	if p.Table == 0 {
		p.Table = searcher.TABLE_ENTRIES
	}
	return p
}

func (p PruningConfig) validate() error {
	if p.Positions < 0 || p.Plies < 0 || p.Table < 0 {
		return fmt.Errorf("pruning positions, plies and table must not be negative: %+v", p)
	}
	if p.Depth < 1 || p.Depth > meta.MAX_DEPTH {
		return fmt.Errorf("pruning depth must be between 1 and %d, got %d", meta.MAX_DEPTH, p.Depth)
	}
	if _, ok := game.LookupHeuristic(p.Heuristic); !ok {
		return fmt.Errorf("unknown pruning heuristic %q, known: %v", p.Heuristic, game.HeuristicNames())
	}
	return nil
}

type variant struct {
	name    string
	options []searcher.Option
}

func (p PruningConfig) variants() []variant {
	return []variant{
		{"negamax", []searcher.Option{searcher.WithVariant(searcher.FullWidth)}},
		{"alphabeta", []searcher.Option{searcher.WithVariant(searcher.AlphaBeta)}},
		{"negascout", []searcher.Option{searcher.WithVariant(searcher.NegaScout)}},
		{"alphabeta+tt", []searcher.Option{searcher.WithVariant(searcher.AlphaBeta), searcher.WithTranspositions(p.Table)}},
		{"negascout+tt", []searcher.Option{searcher.WithVariant(searcher.NegaScout), searcher.WithTranspositions(p.Table)}},
	}
}

// RunPruning searches every position with every variant. Variants must agree
// with full width negamax on the move and the score; a disagreement is
// returned as an error.
func RunPruning(ctx context.Context, config PruningConfig, options ...game.BoardOption) ([]metrics.PruningRecord, error) {
	heuristic, _ := game.LookupHeuristic(config.Heuristic)
	rng := rand.New(rand.NewSource(config.Seed))
	variants := config.variants()

	log.Info().Msgf("starting pruning experiment: %d positions at depth %d...", config.Positions, config.Depth)

	records := []metrics.PruningRecord{}
	for position := 1; position <= config.Positions; position++ {
		board := randomPosition(rng, config.Plies, options...)
		var reference searcher.Result
		for i, v := range variants {
			n := searcher.NewNegamax(heuristic, append([]searcher.Option{searcher.WithDepth(config.Depth)}, v.options...)...)
			start := time.Now()
			result := n.Search(ctx, board)
			duration := time.Since(start)
			if result.Cancelled() {
				return records, fmt.Errorf("pruning experiment cancelled at position %d: %w", position, ctx.Err())
			}
			if i == 0 {
				reference = result
			} else if result != reference {
				return records, fmt.Errorf("position %d: %s chose %v (%v), negamax chose %v (%v)\n%v",
					position, v.name, result.Move, result.Score, reference.Move, reference.Score, board)
			}

			records = append(records, metrics.PruningRecord{
				Position: position,
				Placed:   board.Placed(),
				Variant:  v.name,
				Depth:    config.Depth,
				Move:     result.Move.String(),
				Score:    result.Score,
				Duration: duration,
				Counters: metrics.Counters(n.Stats()),
			})
		}
		log.Debug().Int("position", position).Str("move", reference.Move.String()).Msg("position searched")
	}

	log.Info().Msg("completed pruning experiment")
	return records, nil
}

// randomPosition plays random moves from an empty board, stopping before any
// move that would end the game.
func randomPosition(rng *rand.Rand, plies int, options ...game.BoardOption) *game.Board {
	board := game.NewBoard(options...)
	for i := 0; i < plies; i++ {
		moves := board.LegalMoves()
		rng.Shuffle(len(moves), func(a, b int) { moves[a], moves[b] = moves[b], moves[a] })
		played := false
		for _, move := range moves {
			board.DoMove(move)
			if !board.CheckOutcome().IsTerminal() {
				played = true
				break
			}
			board.UndoMove()
		}
		if !played {
			break
		}
	}
	return board
}
