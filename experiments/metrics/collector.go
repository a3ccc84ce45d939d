package metrics

import (
	"math"
	"sync/atomic"
	"time"
)

// Counters mirrors searcher.Stats so search counters convert directly.
type Counters struct {
	Nodes       int64
	Evaluations int64
	Cutoffs     int64
	ReSearches  int64
	TableHits   int64
}

type SearchMetric struct {
	Agent      string
	MaxDepth   int // configured depth
	Depth      int // deepest completed iteration
	Iterations int
	Duration   time.Duration
	Score      float32
	Cancelled  bool // an iteration was cut short by the time budget
	Fallback   bool // no completed iteration produced a move
	Counters
}

type MoveMetric struct {
	Step   int
	Player string // color
	Move   string
	SearchMetric
}

type GameMetric struct {
	White      string // agent name
	Red        string // agent name
	Outcome    string
	Winner     string // color, empty on a draw
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Rejected   int // illegal moves replaced by the engine
}

// AgentConfig identifies an agent in experiment files and records.
type AgentConfig struct {
	ID     int    `yaml:"id"`
	Config string `yaml:"config"`
}

type Collector interface {
	Start(agent string, maxDepth int)
	AddIteration(depth int, counters Counters)
	AddCounters(counters Counters)
	SetScore(score float32)
	SetCancelled()
	SetFallback()
	Complete() SearchMetric
}

type collector struct {
	agent       string
	maxDepth    int
	startTime   time.Time
	depth       atomic.Int32
	iterations  atomic.Int32
	score       atomic.Uint32
	nodes       atomic.Int64
	evaluations atomic.Int64
	cutoffs     atomic.Int64
	reSearches  atomic.Int64
	tableHits   atomic.Int64
	cancelled   atomic.Bool
	fallback    atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the collector for a new move.
func (m *collector) Start(agent string, maxDepth int) {
	m.agent = agent
	m.maxDepth = maxDepth
	m.startTime = time.Now()
	m.depth.Store(0)
	m.iterations.Store(0)
	m.score.Store(0)
	m.nodes.Store(0)
	m.evaluations.Store(0)
	m.cutoffs.Store(0)
	m.reSearches.Store(0)
	m.tableHits.Store(0)
	m.cancelled.Store(false)
	m.fallback.Store(false)
}

// AddIteration records a completed iteration and its counters.
func (m *collector) AddIteration(depth int, counters Counters) {
	m.depth.Store(int32(depth))
	m.iterations.Add(1)
	m.AddCounters(counters)
}

func (m *collector) AddCounters(counters Counters) {
	m.nodes.Add(counters.Nodes)
	m.evaluations.Add(counters.Evaluations)
	m.cutoffs.Add(counters.Cutoffs)
	m.reSearches.Add(counters.ReSearches)
	m.tableHits.Add(counters.TableHits)
}

func (m *collector) SetScore(score float32) {
	m.score.Store(math.Float32bits(score))
}

func (m *collector) SetCancelled() {
	m.cancelled.Store(true)
}

func (m *collector) SetFallback() {
	m.fallback.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Agent:      m.agent,
		MaxDepth:   m.maxDepth,
		Depth:      int(m.depth.Load()),
		Iterations: int(m.iterations.Load()),
		Duration:   time.Since(m.startTime),
		Score:      math.Float32frombits(m.score.Load()),
		Cancelled:  m.cancelled.Load(),
		Fallback:   m.fallback.Load(),
		Counters: Counters{
			Nodes:       m.nodes.Load(),
			Evaluations: m.evaluations.Load(),
			Cutoffs:     m.cutoffs.Load(),
			ReSearches:  m.reSearches.Load(),
			TableHits:   m.tableHits.Load(),
		},
	}
}

type dummyCollector struct {
	agent string
}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(agent string, maxDepth int)          { m.agent = agent }
func (m *dummyCollector) AddIteration(depth int, counters Counters) {}
func (m *dummyCollector) AddCounters(counters Counters)             {}
func (m *dummyCollector) SetScore(score float32)                    {}
func (m *dummyCollector) SetCancelled()                             {}
func (m *dummyCollector) SetFallback()                              {}
func (m *dummyCollector) Complete() SearchMetric                    { return SearchMetric{Agent: m.agent} }
