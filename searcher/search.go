package searcher

import (
	"context"
	"shapelinks/game"
	"shapelinks/meta"

	"github.com/chewxy/math32"
)

type Option func(n *Negamax)

// Negamax searches a fixed number of plies below the position it is given.
// It is not safe for concurrent use.
type Negamax struct {
	maxDepth  int
	heuristic game.Heuristic
	variant   Variant
	table     *table
	stats     Stats
}

type searchFn func(ctx context.Context, state game.State, depth int, alpha, beta float32) Result

func WithDepth(depth int) Option {
	return func(n *Negamax) {
		if depth > 0 && depth <= meta.MAX_DEPTH {
			n.maxDepth = depth
		}
	}
}

func WithVariant(variant Variant) Option {
	return func(n *Negamax) {
		n.variant = variant
	}
}

// WithTranspositions memoizes nodes by board identity. Non-positive sizes use
// TABLE_ENTRIES.
func WithTranspositions(entries int) Option {
	return func(n *Negamax) {
		if entries <= 0 {
			entries = TABLE_ENTRIES
		}
		n.table = newTable(entries)
	}
}

func NewNegamax(heuristic game.Heuristic, options ...Option) *Negamax {
	if heuristic == nil {
		panic("Must specify a heuristic")
	}
	n := &Negamax{ // Default values
		maxDepth:  meta.DEFAULT_DEPTH,
		heuristic: heuristic,
		variant:   AlphaBeta,
	}
	for _, option := range options {
		option(n)
	}
	return n
}

func (n *Negamax) Depth() int                { return n.maxDepth }
func (n *Negamax) Heuristic() game.Heuristic { return n.heuristic }
func (n *Negamax) Variant() Variant          { return n.variant }

// Stats returns the counters of the last search.
func (n *Negamax) Stats() Stats { return n.stats }

// SetDepth changes the depth of the next searches, ignoring values out of range.
func (n *Negamax) SetDepth(depth int) {
	WithDepth(depth)(n)
}

// Search returns the best move for the side to move with the full window.
// The state is mutated during the search and restored before returning, even
// when the search is cancelled or panics.
func (n *Negamax) Search(ctx context.Context, state game.State) Result {
	return n.SearchWindow(ctx, state, FULL_ALPHA, FULL_BETA)
}

// SearchWindow searches the root with the window (alpha, beta). The returned
// move matches the full window search whenever the window contains the
// position's value.
func (n *Negamax) SearchWindow(ctx context.Context, state game.State, alpha, beta float32) Result {
	n.stats = Stats{}
	if n.table != nil {
		n.table.clear()
	}
	switch n.variant {
	case NegaScout:
		return n.negaScout(ctx, state, 0, alpha, beta)
	case FullWidth:
		return n.fullWidth(ctx, state, 0, alpha, beta)
	default:
		return n.alphaBeta(ctx, state, 0, alpha, beta)
	}
}

// enter runs the checks every node starts with, in order: cancellation,
// terminal outcome, depth limit. It reports whether the node is resolved
// without looking at children.
func (n *Negamax) enter(ctx context.Context, state game.State, depth int) (Result, bool) {
	select {
	case <-ctx.Done():
		return cancelled(), true
	default:
	}
	n.stats.Nodes++

	mover := state.Turn()
	switch outcome := state.CheckOutcome(); outcome {
	case game.Undecided:
	case game.Draw:
		return Result{Move: game.NoMove, Score: 0}, true
	default:
		return Result{Move: game.NoMove, Score: n.terminalScore(outcome, mover)}, true
	}

	if depth >= n.maxDepth {
		n.stats.Evaluations++
		return Result{Move: game.NoMove, Score: n.heuristic.Evaluate(state, mover)}, true
	}
	return Result{}, false
}

func (n *Negamax) terminalScore(outcome game.Outcome, mover game.Color) float32 {
	winner, _ := outcome.Winner()
	if winner == mover {
		return n.heuristic.WinScore()
	}
	return -n.heuristic.WinScore()
}

// child searches the position after move and returns its score for the side
// that played it.
func (n *Negamax) child(ctx context.Context, state game.State, move game.Move, depth int, alpha, beta float32, search searchFn) float32 {
	defer play(state, move).release()
	return -search(ctx, state, depth+1, -beta, -alpha).Score
}

// token is a move applied to a state. Releasing it takes the move back.
type token struct {
	state game.State
}

func play(state game.State, move game.Move) token {
	state.DoMove(move)
	return token{state: state}
}

func (t token) release() {
	t.state.UndoMove()
}

func (n *Negamax) invariant(state game.State, depth int) {
	panic(&InvariantError{Depth: depth, Turn: state.Turn(), Hash: state.Hash()})
}

// improves reports whether score replaces the best so far. The first
// candidate is always taken; after that only strictly greater scores are, so
// ties keep the earliest move in enumeration order.
func improves(explored bool, score float32, best Result) bool {
	return !explored || score > best.Score
}

func isCancelled(score float32) bool {
	return math32.IsNaN(score)
}
