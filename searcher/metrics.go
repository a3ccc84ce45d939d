package searcher

// Stats counts the work of one top-level search. The counters are for
// observability only; no search decision reads them.
type Stats struct {
	Nodes       int64 // every visited node: terminal, depth limit or internal
	Evaluations int64
	Cutoffs     int64
	ReSearches  int64
	TableHits   int64
}

func (s *Stats) Add(other Stats) {
	s.Nodes += other.Nodes
	s.Evaluations += other.Evaluations
	s.Cutoffs += other.Cutoffs
	s.ReSearches += other.ReSearches
	s.TableHits += other.TableHits
}
