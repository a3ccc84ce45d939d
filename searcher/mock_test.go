package searcher

import (
	"context"
	"shapelinks/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// mockState wraps a real board and records how the search drives it.
type mockState struct {
	*game.Board
	outcomeChecks int
	played        int
	undone        int
	undecided     bool // CheckOutcome always reports Undecided
	cancelAfter   int  // cancel once this many moves have been played
	cancel        context.CancelFunc
}

func newMockState(board *game.Board) *mockState {
	return &mockState{Board: board}
}

func (m *mockState) DoMove(move game.Move) int {
	m.played++
	if m.cancel != nil && m.played == m.cancelAfter {
		m.cancel()
	}
	return m.Board.DoMove(move)
}

func (m *mockState) UndoMove() game.Move {
	m.undone++
	return m.Board.UndoMove()
}

func (m *mockState) CheckOutcome() game.Outcome {
	m.outcomeChecks++
	if m.undecided {
		return game.Undecided
	}
	return m.Board.CheckOutcome()
}

// randomBoard plays up to moves random moves, stopping before the game ends.
func randomBoard(rng *rand.Rand, moves int, options ...game.BoardOption) *game.Board {
	b := game.NewBoard(options...)
	for i := 0; i < moves; i++ {
		legal := b.LegalMoves()
		b.DoMove(legal[rng.Intn(len(legal))])
		if b.CheckOutcome().IsTerminal() {
			b.UndoMove()
			break
		}
	}
	return b
}

func setup(t *testing.T, b *game.Board, moves ...game.Move) *game.Board {
	t.Helper()
	for _, move := range moves {
		require.NoError(t, b.Play(move), "Setup move %v should be legal", move)
	}
	return b
}
