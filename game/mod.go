package game

import (
	"iter"
	"slices"
)

type StateHash uint64

// State is the board contract the searcher depends on. DoMove and UndoMove
// must keep strict stack discipline: UndoMove reverses exactly the last
// applied move, restoring the previous state bit for bit.
type State interface {
	Rows() int
	Cols() int
	// At returns Empty for cells outside the board.
	At(row, col int) Piece
	Turn() Color
	Remaining(color Color, shape Shape) int
	IsColumnFull(col int) bool
	DoMove(move Move) (row int)
	UndoMove() Move
	// CheckOutcome is pure: calling it twice without a move in between
	// returns the same outcome.
	CheckOutcome() Outcome
	Hash() StateHash
}

// Heuristic scores a non-terminal position from the perspective of one side.
// Evaluate must not mutate the state and must be symmetric:
// Evaluate(s, White) == -Evaluate(s, Red).
type Heuristic interface {
	Name() string
	// WinScore is the exact score of a decided game, strictly greater than
	// any value Evaluate can return.
	WinScore() float32
	Evaluate(state State, perspective Color) float32
}

// Candidates yields the playable moves of the side to move: columns left to
// right, Round before Square, skipping full columns and exhausted shapes.
// The state may be mutated between yields as long as every change is undone
// before the next one is requested.
func Candidates(state State) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		mover := state.Turn()
		for col := 0; col < state.Cols(); col++ {
			if state.IsColumnFull(col) {
				continue
			}
			for _, shape := range Shapes {
				if state.Remaining(mover, shape) == 0 {
					continue
				}
				if !yield(Move{Column: col, Shape: shape}) {
					return
				}
			}
		}
	}
}

// LegalMoves lists the candidates of the side to move in search order.
func LegalMoves(state State) []Move {
	return slices.Collect(Candidates(state))
}
