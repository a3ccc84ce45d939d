// meta/meta.go
package meta

import "time"

// ROWS and COLS define the default board size.
const ROWS = 6
const COLS = 7

// PIECES_IN_SEQUENCE defines how many aligned pieces win the game.
const PIECES_IN_SEQUENCE = 4

// ROUND_PIECES and SQUARE_PIECES define each player's piece budget per shape.
const ROUND_PIECES = 10
const SQUARE_PIECES = 11

// DEFAULT_DEPTH is used when a thinker config has no usable depth.
const DEFAULT_DEPTH = 2

// MAX_DEPTH bounds the search depth a thinker accepts.
const MAX_DEPTH = ROWS * COLS

// DEFAULT_HEURISTIC names the reference evaluation strategy.
const DEFAULT_HEURISTIC = "center"

// TIME_BUDGET defines the default thinking time per move.
const TIME_BUDGET = time.Second
