package searcher

import (
	"context"
	"shapelinks/game"
)

// fullWidth is negamax without pruning: every candidate is searched and the
// window is ignored. It never uses the transposition table.
func (n *Negamax) fullWidth(ctx context.Context, state game.State, depth int, _, _ float32) Result {
	if result, done := n.enter(ctx, state, depth); done {
		return result
	}

	best := Result{Move: game.NoMove}
	explored := false
	for move := range game.Candidates(state) {
		score := n.child(ctx, state, move, depth, FULL_ALPHA, FULL_BETA, n.fullWidth)
		if isCancelled(score) {
			return cancelled()
		}
		if improves(explored, score, best) {
			best = Result{Move: move, Score: score}
		}
		explored = true
	}
	if !explored {
		n.invariant(state, depth)
	}
	return best
}
