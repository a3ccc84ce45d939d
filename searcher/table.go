package searcher

import "shapelinks/game"

type bound uint8

const (
	exact bound = iota
	lower       // true value >= score
	upper       // true value <= score
)

type entry struct {
	hash      game.StateHash
	remaining int
	score     float32
	bound     bound
	move      game.Move
	used      bool
}

// table is a transposition table indexed by the low bits of the board hash.
// Entries are replaced unconditionally.
type table struct {
	entries []entry
	mask    uint64
}

func newTable(size int) *table {
	n := 1
	for n < size {
		n <<= 1
	}
	return &table{entries: make([]entry, n), mask: uint64(n - 1)}
}

func (t *table) len() int {
	return len(t.entries)
}

// lookup returns the entry stored for the exact hash and remaining depth.
func (t *table) lookup(hash game.StateHash, remaining int) (entry, bool) {
	e := t.entries[uint64(hash)&t.mask]
	if !e.used || e.hash != hash || e.remaining != remaining {
		return entry{}, false
	}
	return e, true
}

func (t *table) store(e entry) {
	e.used = true
	t.entries[uint64(e.hash)&t.mask] = e
}

func (t *table) clear() {
	clear(t.entries)
}

// probe answers a node from the table when the stored score settles it within
// the window. The root is always searched so its move comes from this search.
func (n *Negamax) probe(hash game.StateHash, depth int, alpha, beta float32) (Result, bool) {
	if n.table == nil || depth == 0 {
		return Result{}, false
	}
	e, ok := n.table.lookup(hash, n.maxDepth-depth)
	if !ok {
		return Result{}, false
	}
	switch {
	case e.bound == exact,
		e.bound == lower && e.score >= beta,
		e.bound == upper && e.score <= alpha:
		n.stats.TableHits++
		return Result{Move: e.move, Score: e.score}, true
	}
	return Result{}, false
}

// record stores a finished node. alpha is the window's lower bound as the node
// received it.
func (n *Negamax) record(hash game.StateHash, depth int, alpha, beta float32, best Result) {
	if n.table == nil || depth == 0 {
		return
	}
	kind := exact
	if best.Score <= alpha {
		kind = upper
	} else if best.Score >= beta {
		kind = lower
	}
	n.table.store(entry{
		hash:      hash,
		remaining: n.maxDepth - depth,
		score:     best.Score,
		bound:     kind,
		move:      best.Move,
	})
}
