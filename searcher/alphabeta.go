package searcher

import (
	"context"
	"shapelinks/game"
)

// alphaBeta is fail-soft negamax with alpha-beta pruning. Scores outside
// (alpha, beta) are bounds on the true value, scores inside are exact.
func (n *Negamax) alphaBeta(ctx context.Context, state game.State, depth int, alpha, beta float32) Result {
	if result, done := n.enter(ctx, state, depth); done {
		return result
	}
	hash := state.Hash()
	if result, ok := n.probe(hash, depth, alpha, beta); ok {
		return result
	}

	window := alpha
	best := Result{Move: game.NoMove}
	explored := false
	for move := range game.Candidates(state) {
		score := n.child(ctx, state, move, depth, alpha, beta, n.alphaBeta)
		if isCancelled(score) {
			return cancelled()
		}
		if improves(explored, score, best) {
			best = Result{Move: move, Score: score}
		}
		explored = true
		if best.Score > alpha {
			alpha = best.Score
		}
		if alpha >= beta {
			n.stats.Cutoffs++
			break
		}
	}
	if !explored {
		n.invariant(state, depth)
	}

	n.record(hash, depth, window, beta, best)
	return best
}
