package agent

import (
	"context"
	"shapelinks/experiments/metrics"
	"shapelinks/game"
	"strconv"
	"strings"
	"time"
)

type Agent interface {
	Name() string
	// FindMove returns a move for the side to move and the metrics of the search.
	// The state must be restored by the time FindMove returns.
	FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric)
}

// New builds an agent from its configuration: "random" (optionally with
// "seed=N") or a thinker configuration.
func New(config string) Agent {
	fields := tokenize(strings.ToLower(config))
	if len(fields) == 0 || fields[0] != "random" {
		return NewThinker(config)
	}
	seed := uint64(time.Now().UnixNano())
	for _, field := range fields[1:] {
		if value, ok := strings.CutPrefix(field, "seed="); ok {
			if s, err := strconv.ParseUint(value, 10, 64); err == nil {
				seed = s
			}
		}
	}
	return NewRandomAgent(seed)
}

// firstLegal is the safe default when a search produced no usable move.
func firstLegal(state game.State) game.Move {
	for move := range game.Candidates(state) {
		return move
	}
	return game.NoMove
}
