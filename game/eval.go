package game

import (
	"sort"
	"strings"

	"github.com/chewxy/math32"
	"github.com/samber/lo"
)

var heuristics = map[string]func() Heuristic{
	"center": NewCenterHeuristic,
	"shape":  NewShapeHeuristic,
}

// LookupHeuristic returns the heuristic registered under the exact (case
// insensitive) name.
func LookupHeuristic(name string) (Heuristic, bool) {
	create, ok := heuristics[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return create(), true
}

func HeuristicNames() []string {
	names := lo.Keys(heuristics)
	sort.Strings(names)
	return names
}

type centerHeuristic struct{}

// NewCenterHeuristic is the reference strategy: every piece is worth its
// proximity to the central column, counted for or against the perspective once
// for its color and once for its shape.
func NewCenterHeuristic() Heuristic {
	return centerHeuristic{}
}

func (centerHeuristic) Name() string { return "center" }

func (centerHeuristic) WinScore() float32 { return math32.MaxFloat32 }

func (centerHeuristic) Evaluate(state State, perspective Color) float32 {
	half := float32(state.Cols()) / 2
	var h float32
	for row := 0; row < state.Rows(); row++ {
		for col := 0; col < state.Cols(); col++ {
			piece := state.At(row, col)
			if piece.IsEmpty() {
				continue
			}
			weight := half - math32.Abs(float32(col)+0.5-half)
			h += affinity(piece, perspective) * weight
		}
	}
	return h
}

// affinity is +2 for a piece of our color and shape, -2 for the opponent's,
// and 0 for mixed pieces.
func affinity(piece Piece, perspective Color) float32 {
	var a float32
	if piece.Color() == perspective {
		a++
	} else {
		a--
	}
	if piece.Shape() == perspective.Shape() {
		a++
	} else {
		a--
	}
	return a
}

type shapeHeuristic struct{}

// NewShapeHeuristic rewards pieces near the center of the board, weighting
// shapes above colors, and penalizes own pieces hemmed in by opponent pieces.
func NewShapeHeuristic() Heuristic {
	return shapeHeuristic{}
}

func (shapeHeuristic) Name() string { return "shape" }

func (shapeHeuristic) WinScore() float32 { return math32.Inf(1) }

func (h shapeHeuristic) Evaluate(state State, perspective Color) float32 {
	return h.score(state, perspective) - h.score(state, perspective.Other())
}

func (shapeHeuristic) score(state State, color Color) float32 {
	centerRow := float32(state.Rows()-1) / 2
	centerCol := float32(state.Cols()-1) / 2
	maxPoints := math32.Hypot(centerRow, centerCol)

	var h float32
	for row := 0; row < state.Rows(); row++ {
		for col := 0; col < state.Cols(); col++ {
			piece := state.At(row, col)
			if piece.IsEmpty() {
				continue
			}
			points := maxPoints - math32.Hypot(float32(row)-centerRow, float32(col)-centerCol)
			if piece.Shape() == color.Shape() {
				h += 2 * points
			}
			if piece.Color() != color {
				continue
			}
			h += points
			// Below, left and right neighbours held by the opponent
			for _, n := range [...][2]int{{row - 1, col}, {row, col - 1}, {row, col + 1}} {
				if p := state.At(n[0], n[1]); !p.IsEmpty() && p.Color() != color {
					h -= points / 2
				}
			}
		}
	}
	return h
}
