package experiments

import (
	"shapelinks/experiments/metrics"
	"shapelinks/game"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the games and moves of one agent in a tournament.
type Summary struct {
	Agent          int
	Config         string
	Games          int
	Wins           int
	Draws          int
	Losses         int
	Moves          int
	NodesMean      float64 // per move
	NodesStd       float64
	MoveMillisMean float64
	Fallbacks      int
	Cancelled      int
}

func Summarize(agents []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) []Summary {
	byGame := make(map[int]metrics.GameRecord, len(games))
	for _, g := range games {
		byGame[g.ID] = g
	}

	summaries := make([]Summary, 0, len(agents))
	for _, a := range agents {
		s := Summary{Agent: a.ID, Config: a.Config}
		for _, g := range games {
			color, ok := seat(g, a.ID)
			if !ok {
				continue
			}
			s.Games++
			switch g.Winner {
			case "":
				s.Draws++
			case color.String():
				s.Wins++
			default:
				s.Losses++
			}
		}

		var nodes, millis []float64
		for _, m := range moves {
			color, ok := seat(byGame[m.Game], a.ID)
			if !ok || m.Player != color.String() {
				continue
			}
			nodes = append(nodes, float64(m.Nodes))
			millis = append(millis, float64(m.Duration.Microseconds())/1000)
			if m.Fallback {
				s.Fallbacks++
			}
			if m.Cancelled {
				s.Cancelled++
			}
		}
		s.Moves = len(nodes)
		if len(nodes) > 0 {
			s.NodesMean, s.NodesStd = stat.MeanStdDev(nodes, nil)
			if len(nodes) == 1 {
				s.NodesStd = 0
			}
			s.MoveMillisMean = stat.Mean(millis, nil)
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// seat returns the color the agent played in the game. An agent playing
// itself is counted as white.
func seat(g metrics.GameRecord, id int) (game.Color, bool) {
	switch id {
	case g.White:
		return game.White, true
	case g.Red:
		return game.Red, true
	}
	return game.White, false
}
