package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckOutcome(t *testing.T) {
	t.Run("empty board is undecided", func(t *testing.T) {
		require.Equal(t, Undecided, NewBoard().CheckOutcome())
	})

	t.Run("a line of one color wins for that color", func(t *testing.T) {
		b := NewBoard()
		playAll(t, b,
			Move{0, Square}, Move{6, Square},
			Move{1, Round}, Move{6, Square},
			Move{2, Square}, Move{6, Square},
			Move{3, Round})

		require.Equal(t, WhiteWins, b.CheckOutcome(), "Mixed white pieces in a row")
	})

	t.Run("a shape line takes precedence over a color line", func(t *testing.T) {
		b := NewBoard()
		playAll(t, b,
			Move{0, Square}, Move{6, Round},
			Move{1, Square}, Move{6, Round},
			Move{2, Square}, Move{6, Round},
			Move{3, Square})

		require.Equal(t, RedWins, b.CheckOutcome(), "Four white squares form a square line, which belongs to red")
	})

	t.Run("a shape line wins for its owner whoever completes it", func(t *testing.T) {
		b := NewBoard()
		playAll(t, b,
			Move{0, Round}, Move{1, Round},
			Move{2, Round}, Move{3, Round})

		outcome := b.CheckOutcome()

		require.Equal(t, WhiteWins, outcome, "Red completed a round line")
		winner, ok := outcome.Winner()
		require.True(t, ok)
		require.Equal(t, White, winner)
	})

	t.Run("diagonal lines count", func(t *testing.T) {
		b := NewBoard(WithSequence(3))
		playAll(t, b,
			Move{0, Round}, Move{1, Square},
			Move{1, Round}, Move{2, Square},
			Move{2, Square}, Move{4, Square})
		require.Equal(t, Undecided, b.CheckOutcome())

		playAll(t, b, Move{2, Round})

		require.Equal(t, WhiteWins, b.CheckOutcome())
	})

	t.Run("a full board without a line is a draw", func(t *testing.T) {
		b := NewBoard(WithSize(1, 2), WithSequence(2))
		playAll(t, b, Move{0, Round}, Move{1, Square})

		outcome := b.CheckOutcome()

		require.Equal(t, Draw, outcome)
		require.True(t, outcome.IsTerminal())
		_, ok := outcome.Winner()
		require.False(t, ok, "A draw has no winner")
	})

	t.Run("the side to move without pieces draws", func(t *testing.T) {
		b := NewBoard(WithPieces(1, 0))
		playAll(t, b, Move{0, Round}, Move{6, Round})

		require.Equal(t, Draw, b.CheckOutcome(), "White has nothing left to play")
	})

	t.Run("checking twice gives the same answer", func(t *testing.T) {
		b := NewBoard()
		playAll(t, b, Move{0, Round}, Move{1, Round}, Move{2, Round}, Move{3, Round})

		first := b.CheckOutcome()
		second := b.CheckOutcome()

		require.Equal(t, first, second)
		require.Equal(t, 4, b.Placed(), "Checking should not touch the board")
	})
}
