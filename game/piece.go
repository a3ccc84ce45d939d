package game

// Color identifies a player. White moves first.
type Color uint8

const (
	White Color = iota
	Red
)

func (c Color) Other() Color {
	return c ^ 1
}

// Shape returns the shape owned by the player: White owns Round, Red owns Square.
func (c Color) Shape() Shape {
	if c == White {
		return Round
	}
	return Square
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "red"
}

type Shape uint8

const (
	Round Shape = iota
	Square
)

// Shapes lists the piece variants in move enumeration order.
var Shapes = [...]Shape{Round, Square}

// Owner returns the player a line of this shape wins for.
func (s Shape) Owner() Color {
	if s == Round {
		return White
	}
	return Red
}

func (s Shape) String() string {
	if s == Round {
		return "round"
	}
	return "square"
}

// Piece is the content of a board cell. The zero value is an empty cell.
type Piece uint8

const Empty Piece = 0

func NewPiece(color Color, shape Shape) Piece {
	return Piece(1 + (uint8(color)<<1 | uint8(shape)))
}

func (p Piece) IsEmpty() bool {
	return p == Empty
}

func (p Piece) Color() Color {
	return Color((p - 1) >> 1)
}

func (p Piece) Shape() Shape {
	return Shape((p - 1) & 1)
}

// Is reports whether the piece has the given color and shape.
func (p Piece) Is(color Color, shape Shape) bool {
	return !p.IsEmpty() && p.Color() == color && p.Shape() == shape
}

// Rune renders a piece as a single character: lower case for round pieces,
// upper case for square ones.
func (p Piece) Rune() rune {
	switch p {
	case NewPiece(White, Round):
		return 'w'
	case NewPiece(White, Square):
		return 'W'
	case NewPiece(Red, Round):
		return 'r'
	case NewPiece(Red, Square):
		return 'R'
	default:
		return '.'
	}
}
