package agent

import (
	"context"
	"shapelinks/experiments/metrics"
	"shapelinks/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng     *rand.Rand
	metrics metrics.Collector
}

// NewRandomAgent returns a baseline agent playing uniformly random legal moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{
		rng:     rand.New(rand.NewSource(seed)),
		metrics: metrics.NewDummyCollector(),
	}
}

func (a *randomAgent) Name() string {
	return "random"
}

func (a *randomAgent) FindMove(_ context.Context, state game.State) (game.Move, metrics.SearchMetric) {
	a.metrics.Start(a.Name(), 0)
	moves := game.LegalMoves(state)
	if len(moves) == 0 {
		return game.NoMove, a.metrics.Complete()
	}
	return moves[a.rng.Intn(len(moves))], a.metrics.Complete()
}
