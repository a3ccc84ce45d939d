package searcher

import (
	"context"
	"fmt"
	"shapelinks/game"
	"strings"

	"github.com/chewxy/math32"
)

type Searcher interface {
	Search(ctx context.Context, state game.State) Result
}

// Result is a move and its score from the point of view of the side to move.
// A NaN score means the search was cancelled and the move must not be used.
type Result struct {
	Move  game.Move
	Score float32
}

func (r Result) Cancelled() bool {
	return math32.IsNaN(r.Score)
}

func cancelled() Result {
	return Result{Move: game.NoMove, Score: math32.NaN()}
}

type Variant uint8

const (
	AlphaBeta Variant = iota
	NegaScout
	FullWidth // plain negamax, no pruning
)

func (v Variant) String() string {
	switch v {
	case NegaScout:
		return "negascout"
	case FullWidth:
		return "negamax"
	default:
		return "alphabeta"
	}
}

func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "alphabeta", "ab":
		return AlphaBeta, nil
	case "negascout", "pvs":
		return NegaScout, nil
	case "negamax", "minimax":
		return FullWidth, nil
	}
	return AlphaBeta, fmt.Errorf("unknown search variant %q", name)
}

// InvariantError reports a non-terminal node without a single playable move,
// which a correct rules implementation never produces.
type InvariantError struct {
	Depth int
	Turn  game.Color
	Hash  game.StateHash
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("no candidate move at undecided node (depth %d, %v to move, hash %#x)", e.Depth, e.Turn, e.Hash)
}
