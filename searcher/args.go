package searcher

import "github.com/chewxy/math32"

// Hyperparameters for negamax

// Entries of the transposition table when enabled without an explicit size,
// rounded up to a power of two
const TABLE_ENTRIES = 1 << 16

// Window a top-level search starts with
var (
	FULL_ALPHA = math32.Inf(-1)
	FULL_BETA  = math32.Inf(1)
)

// TODO: prefer faster wins by discounting WinScore with the ply it is found at
