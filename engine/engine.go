package engine

import (
	"context"
	"shapelinks/experiments/metrics"
	"shapelinks/game"
)

type Record struct {
	Outcome game.Outcome
	Game    metrics.GameMetric
	Moves   []metrics.MoveMetric
}

type Engine interface {
	// Run plays a game till it is decided or ctx is done
	Run(ctx context.Context) (Record, error)
}
