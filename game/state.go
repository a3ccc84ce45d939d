package game

import (
	"fmt"
	"shapelinks/meta"
	"strings"
)

type BoardOption func(b *Board)

// WithSize sets the number of rows and columns.
func WithSize(rows, cols int) BoardOption {
	return func(b *Board) {
		if rows > 0 && cols > 0 {
			b.rows, b.cols = rows, cols
		}
	}
}

// WithSequence sets how many aligned pieces win.
func WithSequence(n int) BoardOption {
	return func(b *Board) {
		if n > 1 {
			b.sequence = n
		}
	}
}

// WithPieces sets the per-player budget of round and square pieces.
func WithPieces(round, square int) BoardOption {
	return func(b *Board) {
		if round >= 0 && square >= 0 && round+square > 0 {
			b.round, b.square = round, square
		}
	}
}

type placement struct {
	move Move
	row  int
}

// Board is a mutable ColorShapeLinks position. Row 0 is the bottom row.
// A Board is not safe for concurrent use.
type Board struct {
	rows, cols, sequence int
	round, square        int
	cells                []Piece
	heights              []int
	budget               [2][2]int // [Color][Shape]
	turn                 Color
	history              []placement
	hash                 StateHash
	keys                 *zobrist
}

// NewBoard initializes an empty board with White to move.
func NewBoard(options ...BoardOption) *Board {
	b := &Board{ // Default values
		rows:     meta.ROWS,
		cols:     meta.COLS,
		sequence: meta.PIECES_IN_SEQUENCE,
		round:    meta.ROUND_PIECES,
		square:   meta.SQUARE_PIECES,
	}
	for _, option := range options {
		option(b)
	}
	b.cells = make([]Piece, b.rows*b.cols)
	b.heights = make([]int, b.cols)
	for _, color := range [...]Color{White, Red} {
		b.budget[color][Round] = b.round
		b.budget[color][Square] = b.square
	}
	b.turn = White
	b.keys = zobristFor(b.rows, b.cols)
	return b
}

func (b *Board) Rows() int             { return b.rows }
func (b *Board) Cols() int             { return b.cols }
func (b *Board) PiecesInSequence() int { return b.sequence }
func (b *Board) Turn() Color           { return b.turn }
func (b *Board) Hash() StateHash       { return b.hash }

// At returns the piece at the given cell, Empty when out of bounds.
func (b *Board) At(row, col int) Piece {
	if !b.inside(row, col) {
		return Empty
	}
	return b.cells[b.index(row, col)]
}

func (b *Board) Remaining(color Color, shape Shape) int {
	return b.budget[color][shape]
}

func (b *Board) IsColumnFull(col int) bool {
	return b.heights[col] >= b.rows
}

// Placed returns the number of pieces on the board.
func (b *Board) Placed() int {
	return len(b.history)
}

// IsLegal reports whether the side to move can structurally play the move.
// It does not check whether the game is already over.
func (b *Board) IsLegal(move Move) bool {
	if move.Column < 0 || move.Column >= b.cols || move.Shape > Square {
		return false
	}
	return !b.IsColumnFull(move.Column) && b.budget[b.turn][move.Shape] > 0
}

// DoMove drops a piece of the side to move and passes the turn. It panics on
// a structurally illegal move; callers validating untrusted input use Play.
func (b *Board) DoMove(move Move) int {
	if !b.IsLegal(move) {
		panic(fmt.Sprintf("illegal move %v for %v", move, b.turn))
	}
	row := b.heights[move.Column]
	piece := NewPiece(b.turn, move.Shape)
	index := b.index(row, move.Column)

	b.cells[index] = piece
	b.heights[move.Column]++
	b.budget[b.turn][move.Shape]--
	b.hash ^= b.keys.piece(index, piece) ^ b.keys.side
	b.history = append(b.history, placement{move: move, row: row})
	b.turn = b.turn.Other()
	return row
}

// UndoMove takes back the last move and returns it.
func (b *Board) UndoMove() Move {
	if len(b.history) == 0 {
		panic("no move to undo")
	}
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]

	b.turn = b.turn.Other()
	index := b.index(last.row, last.move.Column)
	piece := b.cells[index]

	b.hash ^= b.keys.piece(index, piece) ^ b.keys.side
	b.budget[b.turn][last.move.Shape]++
	b.heights[last.move.Column]--
	b.cells[index] = Empty
	return last.move
}

// Play validates and applies a move.
func (b *Board) Play(move Move) error {
	if outcome := b.CheckOutcome(); outcome != Undecided {
		return fmt.Errorf("cannot play %v: game is over (%v)", move, outcome)
	}
	if !b.IsLegal(move) {
		return fmt.Errorf("illegal move %v for %v", move, b.turn)
	}
	b.DoMove(move)
	return nil
}

// LegalMoves lists the moves of the side to move in search order.
func (b *Board) LegalMoves() []Move {
	return LegalMoves(b)
}

// Copy returns an independent copy of the board, history included.
func (b *Board) Copy() *Board {
	c := *b
	c.cells = append([]Piece(nil), b.cells...)
	c.heights = append([]int(nil), b.heights...)
	c.history = append([]placement(nil), b.history...)
	return &c
}

// Equal reports whether both boards hold the same position: cells, piece
// budgets, side to move and hash.
func (b *Board) Equal(other *Board) bool {
	if b.rows != other.rows || b.cols != other.cols || b.sequence != other.sequence {
		return false
	}
	if b.turn != other.turn || b.budget != other.budget || b.hash != other.hash {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	for i := range b.heights {
		if b.heights[i] != other.heights[i] {
			return false
		}
	}
	return true
}

// String renders the board top row first, for logs.
func (b *Board) String() string {
	var sb strings.Builder
	for row := b.rows - 1; row >= 0; row-- {
		for col := 0; col < b.cols; col++ {
			sb.WriteRune(b.At(row, col).Rune())
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "%v to move", b.turn)
	return sb.String()
}

func (b *Board) inside(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

func (b *Board) index(row, col int) int {
	return row*b.cols + col
}
