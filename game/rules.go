package game

// Outcome is the result of a terminal check.
type Outcome uint8

const (
	Undecided Outcome = iota
	WhiteWins
	RedWins
	Draw
)

func winFor(color Color) Outcome {
	if color == White {
		return WhiteWins
	}
	return RedWins
}

// Winner returns the winning side of a decided game.
func (o Outcome) Winner() (Color, bool) {
	switch o {
	case WhiteWins:
		return White, true
	case RedWins:
		return Red, true
	default:
		return White, false
	}
}

func (o Outcome) IsTerminal() bool {
	return o != Undecided
}

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "white wins"
	case RedWins:
		return "red wins"
	case Draw:
		return "draw"
	default:
		return "undecided"
	}
}

var directions = [...][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// CheckOutcome decides the game from the last placed piece. A line of its
// shape wins for the shape's owner and takes precedence over a line of its
// color. Without a line, the game is drawn once the board is full or the side
// to move has run out of pieces.
func (b *Board) CheckOutcome() Outcome {
	if n := len(b.history); n > 0 {
		last := b.history[n-1]
		piece := b.At(last.row, last.move.Column)
		shapeLine, colorLine := b.linesThrough(last.row, last.move.Column, piece)
		if shapeLine {
			return winFor(piece.Shape().Owner())
		}
		if colorLine {
			return winFor(piece.Color())
		}
	}
	if len(b.history) == len(b.cells) {
		return Draw
	}
	if b.budget[b.turn][Round]+b.budget[b.turn][Square] == 0 {
		return Draw
	}
	return Undecided
}

func (b *Board) linesThrough(row, col int, piece Piece) (shape, color bool) {
	sameShape := func(p Piece) bool { return p.Shape() == piece.Shape() }
	sameColor := func(p Piece) bool { return p.Color() == piece.Color() }
	for _, d := range directions {
		if !shape && b.run(row, col, d[0], d[1], sameShape) >= b.sequence {
			shape = true
		}
		if !color && b.run(row, col, d[0], d[1], sameColor) >= b.sequence {
			color = true
		}
	}
	return shape, color
}

// run counts the pieces matching through (row, col) along a direction, both ways.
func (b *Board) run(row, col, dr, dc int, match func(Piece) bool) int {
	n := 1
	for r, c := row+dr, col+dc; b.inside(r, c); r, c = r+dr, c+dc {
		if p := b.At(r, c); p.IsEmpty() || !match(p) {
			break
		}
		n++
	}
	for r, c := row-dr, col-dc; b.inside(r, c); r, c = r-dr, c-dc {
		if p := b.At(r, c); p.IsEmpty() || !match(p) {
			break
		}
		n++
	}
	return n
}
