package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GameRecord struct {
	ID    int
	White int // AgentConfig.ID
	Red   int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// PruningRecord is one search of one position by one search variant.
type PruningRecord struct {
	Position int
	Placed   int // pieces on the board
	Variant  string
	Depth    int
	Move     string
	Score    float32
	Duration time.Duration
	Counters
}

type Writer struct {
	baseDir string
}

// NewWriter creates a folder for the experiment under baseDir, named by the
// experiment and the current timestamp.
func NewWriter(baseDir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	dir := filepath.Join(baseDir, name, timestamp)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: dir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Config,
		})
	}
	return w.write("agent_configs.csv", []string{"id", "config"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "white", "red", "white_agent", "red_agent", "outcome", "winner",
		"start_time", "end_time", "duration", "total_moves", "rejected"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.White),
			strconv.Itoa(record.Red),
			record.GameMetric.White,
			record.GameMetric.Red,
			record.Outcome,
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Rejected),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "agent", "move", "score", "max_depth", "depth", "iterations",
		"duration", "nodes", "evaluations", "cutoffs", "re_searches", "table_hits", "cancelled", "fallback"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Agent,
			record.Move,
			formatScore(record.Score),
			strconv.Itoa(record.MaxDepth),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Iterations),
			record.Duration.String(),
			strconv.FormatInt(record.Nodes, 10),
			strconv.FormatInt(record.Evaluations, 10),
			strconv.FormatInt(record.Cutoffs, 10),
			strconv.FormatInt(record.ReSearches, 10),
			strconv.FormatInt(record.TableHits, 10),
			strconv.FormatBool(record.Cancelled),
			strconv.FormatBool(record.Fallback),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WritePruningRecords(records []PruningRecord) error {
	header := []string{"position", "placed", "variant", "depth", "move", "score", "duration",
		"nodes", "evaluations", "cutoffs", "re_searches", "table_hits"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Position),
			strconv.Itoa(record.Placed),
			record.Variant,
			strconv.Itoa(record.Depth),
			record.Move,
			formatScore(record.Score),
			record.Duration.String(),
			strconv.FormatInt(record.Nodes, 10),
			strconv.FormatInt(record.Evaluations, 10),
			strconv.FormatInt(record.Cutoffs, 10),
			strconv.FormatInt(record.ReSearches, 10),
			strconv.FormatInt(record.TableHits, 10),
		})
	}
	return w.write("pruning_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	// Write each row
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

func formatScore(score float32) string {
	return strconv.FormatFloat(float64(score), 'g', -1, 32)
}
