package game

import "fmt"

// Move drops a piece of the given shape into a column.
type Move struct {
	Column int
	Shape  Shape
}

// NoMove means no move was chosen (terminal position or cancelled search).
var NoMove = Move{Column: -1}

func (m Move) String() string {
	if m == NoMove {
		return "none"
	}
	return fmt.Sprintf("%d:%s", m.Column, m.Shape)
}
