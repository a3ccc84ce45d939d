package searcher

import (
	"context"
	"shapelinks/game"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/*
Tests negamax search variants
- decisions:
	- alpha-beta, negascout and their table versions match full width negamax (move and score)
	- windows containing the value give the full window move and score
	- root score is the max of negated child scores
	- empty board at depth 2 with the center heuristic -> center column, round
	- one move from a win -> that move, WinScore, at every depth
	- terminal root -> terminal score without evaluation
- effort:
	- one outcome check per node
	- counters reset per search
	- pruning visits fewer nodes than full width
- failures:
	- cancelled before the first node -> (NoMove, NaN), board untouched
	- cancelled mid search -> (NoMove, NaN), every move undone
	- no candidate at an undecided node -> InvariantError panic, board restored
*/

type variantCase struct {
	name    string
	options []Option
}

var variants = []variantCase{
	{"alphabeta", []Option{WithVariant(AlphaBeta)}},
	{"negascout", []Option{WithVariant(NegaScout)}},
	{"negamax", []Option{WithVariant(FullWidth)}},
	{"alphabeta with table", []Option{WithVariant(AlphaBeta), WithTranspositions(1 << 12)}},
	{"negascout with table", []Option{WithVariant(NegaScout), WithTranspositions(1 << 12)}},
}

func newSearcher(h game.Heuristic, depth int, options ...Option) *Negamax {
	return NewNegamax(h, append([]Option{WithDepth(depth)}, options...)...)
}

func heuristics() []game.Heuristic {
	return []game.Heuristic{game.NewCenterHeuristic(), game.NewShapeHeuristic()}
}

func TestNewNegamax(t *testing.T) {
	t.Run("applying defaults", func(t *testing.T) {
		n := NewNegamax(game.NewCenterHeuristic())

		require.Equal(t, 2, n.Depth(), "Default depth should be 2 plies")
		require.Equal(t, AlphaBeta, n.Variant(), "Default variant should be alpha-beta")
		require.Nil(t, n.table, "Table should be off by default")
	})

	t.Run("ignoring depths out of range", func(t *testing.T) {
		n := NewNegamax(game.NewCenterHeuristic(), WithDepth(0))
		require.Equal(t, 2, n.Depth())

		n.SetDepth(-3)
		require.Equal(t, 2, n.Depth())

		n.SetDepth(5)
		require.Equal(t, 5, n.Depth())
	})

	t.Run("panics without a heuristic", func(t *testing.T) {
		require.Panics(t, func() { NewNegamax(nil) })
	})
}

func TestParseVariant(t *testing.T) {
	for name, expected := range map[string]Variant{
		"alphabeta": AlphaBeta,
		"NegaScout": NegaScout,
		"pvs":       NegaScout,
		" negamax ": FullWidth,
	} {
		got, err := ParseVariant(name)
		require.NoError(t, err, "%q should parse", name)
		require.Equal(t, expected, got)
		require.Equal(t, got, must(ParseVariant(got.String())), "String should round trip")
	}

	_, err := ParseVariant("mcts")
	require.Error(t, err)
}

func must(v Variant, err error) Variant {
	if err != nil {
		panic(err)
	}
	return v
}

func TestSearchMatchesFullWidth(t *testing.T) {
	for _, h := range heuristics() {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 12; i++ {
			board := randomBoard(rng, rng.Intn(16))
			for depth := 1; depth <= 3; depth++ {
				oracle := newSearcher(h, depth, WithVariant(FullWidth)).Search(context.Background(), board)
				require.False(t, oracle.Cancelled())

				for _, v := range variants {
					before := board.Copy()
					got := newSearcher(h, depth, v.options...).Search(context.Background(), board)

					require.Equal(t, oracle, got, "%s with %s at depth %d should match negamax on\n%v", v.name, h.Name(), depth, board)
					require.True(t, before.Equal(board), "%s should restore the board", v.name)
				}
			}
		}
	}
}

func TestSearchWindow(t *testing.T) {
	t.Run("windows containing the value keep the decision", func(t *testing.T) {
		h := game.NewCenterHeuristic()
		rng := rand.New(rand.NewSource(11))
		for i := 0; i < 12; i++ {
			board := randomBoard(rng, rng.Intn(12))
			expected := newSearcher(h, 3).Search(context.Background(), board)
			v := expected.Score
			if math32.Abs(v) >= h.WinScore() {
				continue
			}

			windows := [][2]float32{{v - 1, v + 1}, {v - 0.5, FULL_BETA}, {FULL_ALPHA, v + 0.25}, {v - 100, v + 100}}
			for _, variant := range variants {
				n := newSearcher(h, 3, variant.options...)
				for _, w := range windows {
					got := n.SearchWindow(context.Background(), board, w[0], w[1])
					require.Equal(t, expected, got, "%s with window (%v, %v)", variant.name, w[0], w[1])
				}
			}
		}
	})
}

func TestNegation(t *testing.T) {
	t.Run("root score is the best negated child score", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		for _, h := range heuristics() {
			for i := 0; i < 8; i++ {
				board := randomBoard(rng, rng.Intn(14))
				root := newSearcher(h, 3).Search(context.Background(), board)

				best := FULL_ALPHA
				for _, move := range board.LegalMoves() {
					board.DoMove(move)
					child := newSearcher(h, 2).Search(context.Background(), board)
					board.UndoMove()
					best = max(best, -child.Score)
				}

				require.Equal(t, best, root.Score, "Root should maximize negated child scores on\n%v", board)
			}
		}
	})
}

func TestSearchDecisions(t *testing.T) {
	t.Run("choosing the center on an empty board", func(t *testing.T) {
		for _, v := range variants {
			board := game.NewBoard()

			got := newSearcher(game.NewCenterHeuristic(), 2, v.options...).Search(context.Background(), board)

			require.Equal(t, game.Move{Column: 3, Shape: game.Round}, got.Move, "%s should pick the center round piece", v.name)
			require.Zero(t, got.Score, "%s: red answers with a center square", v.name)
		}
	})

	t.Run("taking a one move win at every depth", func(t *testing.T) {
		board := setup(t, game.NewBoard(),
			game.Move{Column: 0, Shape: game.Round}, game.Move{Column: 6, Shape: game.Square},
			game.Move{Column: 0, Shape: game.Round}, game.Move{Column: 6, Shape: game.Square},
			game.Move{Column: 0, Shape: game.Round}, game.Move{Column: 5, Shape: game.Square})

		for _, h := range heuristics() {
			for _, v := range variants {
				for depth := 1; depth <= 4; depth++ {
					got := newSearcher(h, depth, v.options...).Search(context.Background(), board)

					require.Equal(t, game.Move{Column: 0, Shape: game.Round}, got.Move, "%s at depth %d", v.name, depth)
					require.Equal(t, h.WinScore(), got.Score, "A win should score exactly WinScore")
				}
			}
		}
	})

	t.Run("finding a win that is not enumerated first", func(t *testing.T) {
		board := setup(t, game.NewBoard(),
			game.Move{Column: 2, Shape: game.Round}, game.Move{Column: 6, Shape: game.Square},
			game.Move{Column: 2, Shape: game.Round}, game.Move{Column: 6, Shape: game.Square},
			game.Move{Column: 2, Shape: game.Round}, game.Move{Column: 5, Shape: game.Square})

		for _, v := range variants {
			for depth := 1; depth <= 2; depth++ {
				n := newSearcher(game.NewCenterHeuristic(), depth, v.options...)

				got := n.Search(context.Background(), board)

				require.Equal(t, game.Move{Column: 2, Shape: game.Round}, got.Move, "%s at depth %d", v.name, depth)
				require.Equal(t, n.Heuristic().WinScore(), got.Score)
			}
		}
	})

	t.Run("scoring a decided root without evaluating", func(t *testing.T) {
		board := setup(t, game.NewBoard(),
			game.Move{Column: 0, Shape: game.Round}, game.Move{Column: 6, Shape: game.Square},
			game.Move{Column: 0, Shape: game.Round}, game.Move{Column: 6, Shape: game.Square},
			game.Move{Column: 0, Shape: game.Round}, game.Move{Column: 6, Shape: game.Round},
			game.Move{Column: 0, Shape: game.Round})
		require.Equal(t, game.WhiteWins, board.CheckOutcome())

		for _, v := range variants {
			n := newSearcher(game.NewCenterHeuristic(), 1, v.options...)

			got := n.Search(context.Background(), board)

			require.Equal(t, game.NoMove, got.Move)
			require.Equal(t, -n.Heuristic().WinScore(), got.Score, "Red to move has lost")
			require.Equal(t, int64(1), n.Stats().Nodes)
			require.Zero(t, n.Stats().Evaluations, "Terminal nodes should never be evaluated")
		}
	})

	t.Run("scoring a drawn root as zero", func(t *testing.T) {
		board := setup(t, game.NewBoard(game.WithSize(1, 2)),
			game.Move{Column: 0, Shape: game.Round}, game.Move{Column: 1, Shape: game.Square})

		got := NewNegamax(game.NewCenterHeuristic()).Search(context.Background(), board)

		require.Equal(t, Result{Move: game.NoMove, Score: 0}, got)
	})
}

func TestSearchEffort(t *testing.T) {
	t.Run("checking the outcome once per node", func(t *testing.T) {
		rng := rand.New(rand.NewSource(9))
		for _, v := range variants {
			state := newMockState(randomBoard(rng, 6))
			n := newSearcher(game.NewCenterHeuristic(), 3, v.options...)

			n.Search(context.Background(), state)

			require.Equal(t, int64(state.outcomeChecks), n.Stats().Nodes, "%s should check each node once", v.name)
			require.Equal(t, state.played, state.undone, "%s should undo every move", v.name)
		}
	})

	t.Run("resetting counters on every search", func(t *testing.T) {
		board := game.NewBoard()
		n := newSearcher(game.NewCenterHeuristic(), 3)

		n.Search(context.Background(), board)
		first := n.Stats()
		n.Search(context.Background(), board)

		require.Equal(t, first, n.Stats())
		require.Positive(t, first.Nodes)
	})

	t.Run("pruning visits fewer nodes", func(t *testing.T) {
		board := game.NewBoard()
		full := newSearcher(game.NewCenterHeuristic(), 3, WithVariant(FullWidth))
		pruned := newSearcher(game.NewCenterHeuristic(), 3, WithVariant(AlphaBeta))

		full.Search(context.Background(), board)
		pruned.Search(context.Background(), board)

		require.Equal(t, int64(1+14+14*14+14*14*14), full.Stats().Nodes, "Full width should visit every node")
		require.Positive(t, pruned.Stats().Cutoffs)
		require.Less(t, pruned.Stats().Nodes, full.Stats().Nodes)
	})
}

func TestSearchCancellation(t *testing.T) {
	t.Run("cancelled before the first node", func(t *testing.T) {
		for _, v := range variants {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			state := newMockState(game.NewBoard())
			before := state.Board.Copy()
			n := newSearcher(game.NewCenterHeuristic(), 4, v.options...)

			got := n.Search(ctx, state)

			require.True(t, got.Cancelled(), "%s should report cancellation", v.name)
			require.Equal(t, game.NoMove, got.Move)
			require.Zero(t, state.played, "No move should be applied")
			require.Zero(t, n.Stats().Nodes)
			require.True(t, before.Equal(state.Board))
		}
	})

	t.Run("cancelled in the middle of the tree", func(t *testing.T) {
		for _, v := range variants {
			ctx, cancel := context.WithCancel(context.Background())
			state := newMockState(game.NewBoard())
			state.cancel, state.cancelAfter = cancel, 20
			before := state.Board.Copy()
			n := newSearcher(game.NewCenterHeuristic(), 4, v.options...)

			got := n.Search(ctx, state)

			require.True(t, got.Cancelled(), "%s should report cancellation", v.name)
			require.Equal(t, game.NoMove, got.Move)
			require.Equal(t, 20, state.played, "%s should stop applying moves once cancelled", v.name)
			require.Equal(t, state.played, state.undone)
			require.True(t, before.Equal(state.Board))
			cancel()
		}
	})
}

func requireInvariantPanic(t *testing.T, depth int, search func()) {
	t.Helper()
	defer func() {
		err, ok := recover().(*InvariantError)
		require.True(t, ok, "Search should panic with an invariant error")
		require.Equal(t, depth, err.Depth)
		require.Contains(t, err.Error(), "no candidate move")
	}()
	search()
}

func TestSearchInvariant(t *testing.T) {
	t.Run("undecided root without moves", func(t *testing.T) {
		for _, v := range variants {
			state := newMockState(setup(t, game.NewBoard(game.WithSize(1, 2)),
				game.Move{Column: 0, Shape: game.Round}, game.Move{Column: 1, Shape: game.Square}))
			state.undecided = true
			n := newSearcher(game.NewCenterHeuristic(), 2, v.options...)

			requireInvariantPanic(t, 0, func() { n.Search(context.Background(), state) })
		}
	})

	t.Run("undecided child without moves restores the board", func(t *testing.T) {
		for _, v := range variants {
			state := newMockState(setup(t, game.NewBoard(game.WithSize(1, 2)),
				game.Move{Column: 0, Shape: game.Round}))
			state.undecided = true
			before := state.Board.Copy()
			n := newSearcher(game.NewCenterHeuristic(), 2, v.options...)

			requireInvariantPanic(t, 1, func() { n.Search(context.Background(), state) })

			require.Equal(t, 1, state.played)
			require.Equal(t, 1, state.undone, "%s should undo the move on the way out", v.name)
			require.True(t, before.Equal(state.Board))
		}
	})
}
