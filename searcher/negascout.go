package searcher

import (
	"context"
	"math"
	"shapelinks/game"
)

// negaScout searches the first candidate with the full window and every later
// one with a null window just above the best score so far. A probe that lands
// strictly inside the window is searched again with the full window.
func (n *Negamax) negaScout(ctx context.Context, state game.State, depth int, alpha, beta float32) Result {
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
	testBeta := beta
	for move := range game.Candidates(state) {
		score := n.child(ctx, state, move, depth, alpha, testBeta, n.negaScout)
		if isCancelled(score) {
			return cancelled()
		}
		if explored && score > alpha && score < beta {
			n.stats.ReSearches++
			score = n.child(ctx, state, move, depth, alpha, beta, n.negaScout)
			if isCancelled(score) {
				return cancelled()
			}
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
		// Scores have no unit step, the narrowest window above alpha ends at
		// the next representable float.
		testBeta = math.Nextafter32(alpha, FULL_BETA)
	}
	if !explored {
		n.invariant(state, depth)
	}

	n.record(hash, depth, window, beta, best)
	return best
}
