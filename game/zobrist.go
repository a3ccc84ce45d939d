package game

import (
	"sync"

	"golang.org/x/exp/rand"
)

// zobrist holds one random key per (cell, piece) plus the side-to-move key.
// Keys are generated from a fixed seed so hashes are stable across runs.
type zobrist struct {
	cells []StateHash
	side  StateHash
}

type zobristKey struct {
	rows, cols int
}

var zobristTables = struct {
	sync.Mutex
	tables map[zobristKey]*zobrist
}{tables: make(map[zobristKey]*zobrist)}

func zobristFor(rows, cols int) *zobrist {
	zobristTables.Lock()
	defer zobristTables.Unlock()

	key := zobristKey{rows: rows, cols: cols}
	if table, ok := zobristTables.tables[key]; ok {
		return table
	}
	rng := rand.New(rand.NewSource(0x9e3779b97f4a7c15 ^ uint64(rows)<<32 ^ uint64(cols)))
	table := &zobrist{cells: make([]StateHash, rows*cols*4)}
	for i := range table.cells {
		table.cells[i] = StateHash(rng.Uint64())
	}
	table.side = StateHash(rng.Uint64())
	zobristTables.tables[key] = table
	return table
}

func (z *zobrist) piece(index int, piece Piece) StateHash {
	return z.cells[index*4+int(piece-1)]
}

// ComputeHash hashes a position from scratch. Boards maintain the same value
// incrementally; this is the reference used to check them.
func ComputeHash(state State) StateHash {
	z := zobristFor(state.Rows(), state.Cols())
	var hash StateHash
	for row := 0; row < state.Rows(); row++ {
		for col := 0; col < state.Cols(); col++ {
			if piece := state.At(row, col); !piece.IsEmpty() {
				hash ^= z.piece(row*state.Cols()+col, piece)
			}
		}
	}
	if state.Turn() == Red {
		hash ^= z.side
	}
	return hash
}
