package engine

import (
	"context"
	"fmt"
	"shapelinks/agent"
	"shapelinks/experiments/metrics"
	"shapelinks/game"
	"shapelinks/meta"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(e *LocalEngine)

// WithBudget sets the thinking time of every move.
func WithBudget(budget time.Duration) Option {
	return func(e *LocalEngine) {
		if budget > 0 {
			e.budget = budget
		}
	}
}

func WithBoard(options ...game.BoardOption) Option {
	return func(e *LocalEngine) {
		e.boardOptions = options
	}
}

// LocalEngine plays two in-process agents against each other.
type LocalEngine struct {
	agents       [2]agent.Agent // indexed by color
	budget       time.Duration
	boardOptions []game.BoardOption
	board        *game.Board
}

func NewLocalEngine(white, red agent.Agent, options ...Option) *LocalEngine {
	if white == nil || red == nil {
		panic("need an agent for each color")
	}
	e := &LocalEngine{ // Default values
		agents: [2]agent.Agent{game.White: white, game.Red: red},
		budget: meta.TIME_BUDGET,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Board returns the board of the last game.
func (e *LocalEngine) Board() *game.Board {
	return e.board
}

// Run plays a new game. Agents think on a copy of the board and are cancelled
// once the budget of their move runs out.
func (e *LocalEngine) Run(ctx context.Context) (Record, error) {
	e.board = game.NewBoard(e.boardOptions...)
	record := Record{
		Game: metrics.GameMetric{
			White:     e.agents[game.White].Name(),
			Red:       e.agents[game.Red].Name(),
			StartTime: time.Now(),
		},
	}

	log.Info().Msgf("%s (white) against %s (red)", record.Game.White, record.Game.Red)

	step := 1
	for record.Outcome = e.board.CheckOutcome(); record.Outcome == game.Undecided; record.Outcome = e.board.CheckOutcome() {
		if err := ctx.Err(); err != nil {
			return record, fmt.Errorf("game aborted after %d moves: %w", step-1, err)
		}

		player := e.board.Turn()
		move, metric := e.think(ctx, player)
		if !e.board.IsLegal(move) {
			log.Warn().Str("agent", e.agents[player].Name()).Str("move", move.String()).
				Msg("illegal move, playing the first legal move instead")
			legal := e.board.LegalMoves()
			if len(legal) == 0 {
				panic("no legal move in an undecided game")
			}
			move = legal[0]
			record.Game.Rejected++
		}
		e.board.DoMove(move)

		record.Moves = append(record.Moves, metrics.MoveMetric{
			Step:         step,
			Player:       player.String(),
			Move:         move.String(),
			SearchMetric: metric,
		})
		log.Debug().Int("step", step).Str("player", player.String()).Str("move", move.String()).Msg("move played")
		step++
	}

	record.Game.EndTime = time.Now()
	record.Game.Duration = record.Game.EndTime.Sub(record.Game.StartTime)
	record.Game.TotalMoves = len(record.Moves)
	record.Game.Outcome = record.Outcome.String()
	if winner, ok := record.Outcome.Winner(); ok {
		record.Game.Winner = winner.String()
	}

	log.Info().Msgf("game over after %d moves: %v", record.Game.TotalMoves, record.Outcome)
	return record, nil
}

func (e *LocalEngine) think(ctx context.Context, player game.Color) (game.Move, metrics.SearchMetric) {
	moveCtx, cancel := context.WithTimeout(ctx, e.budget)
	defer cancel()
	return e.agents[player].FindMove(moveCtx, e.board.Copy())
}
