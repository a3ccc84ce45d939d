package agent

import (
	"fmt"
	"shapelinks/game"
	"shapelinks/meta"
	"shapelinks/searcher"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

// Config is a parsed thinker configuration.
type Config struct {
	Depth     int
	Heuristic game.Heuristic
	Variant   searcher.Variant
	Table     int // transposition table entries, 0 disables it
	Deepening bool
	Strict    bool // re-panic on invariant violations instead of falling back
}

func DefaultConfig() Config {
	heuristic, _ := game.LookupHeuristic(meta.DEFAULT_HEURISTIC)
	return Config{
		Depth:     meta.DEFAULT_DEPTH,
		Heuristic: heuristic,
		Variant:   searcher.AlphaBeta,
	}
}

// ParseConfig reads a thinker configuration. Tokens are separated by spaces or
// commas; a bare integer is the depth and a bare name is a heuristic, anything
// else is key=value. Invalid values are logged and replaced by their default,
// so parsing never fails.
func ParseConfig(s string) Config {
	config := DefaultConfig()
	for _, token := range tokenize(s) {
		key, value, found := strings.Cut(token, "=")
		if !found {
			if _, err := strconv.Atoi(token); err == nil {
				config.setDepth(token)
			} else if _, ok := game.LookupHeuristic(token); ok {
				config.setHeuristic(token)
			} else {
				log.Warn().Str("option", token).Msg("ignoring unknown thinker option")
			}
			continue
		}

		switch strings.ToLower(key) {
		case "depth":
			config.setDepth(value)
		case "heuristic":
			config.setHeuristic(value)
		case "search":
			variant, err := searcher.ParseVariant(value)
			if err != nil {
				log.Warn().Err(err).Msgf("using %v search", config.Variant)
				continue
			}
			config.Variant = variant
		case "tt":
			entries, err := strconv.Atoi(value)
			if err != nil || entries < 0 {
				log.Warn().Str("tt", value).Msg("invalid table size, table disabled")
				continue
			}
			config.Table = entries
		case "deepening":
			config.Deepening = parseBool("deepening", value, config.Deepening)
		case "strict":
			config.Strict = parseBool("strict", value, config.Strict)
		default:
			log.Warn().Str("option", token).Msg("ignoring unknown thinker option")
		}
	}
	return config
}

func (c *Config) setDepth(value string) {
	depth, err := strconv.Atoi(value)
	if err != nil || depth < 1 || depth > meta.MAX_DEPTH {
		log.Warn().Str("depth", value).Msgf("invalid depth, using %d", meta.DEFAULT_DEPTH)
		c.Depth = meta.DEFAULT_DEPTH
		return
	}
	c.Depth = depth
}

func (c *Config) setHeuristic(name string) {
	heuristic, ok := game.LookupHeuristic(name)
	if !ok {
		log.Warn().Str("heuristic", name).Strs("known", game.HeuristicNames()).
			Msgf("unknown heuristic, using %s", meta.DEFAULT_HEURISTIC)
		heuristic, _ = game.LookupHeuristic(meta.DEFAULT_HEURISTIC)
	}
	c.Heuristic = heuristic
}

func parseBool(key, value string, fallback bool) bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn().Str(key, value).Msgf("invalid %s flag, using %t", key, fallback)
		return fallback
	}
	return b
}

func (c Config) String() string {
	return fmt.Sprintf("depth=%d heuristic=%s search=%v tt=%d deepening=%t strict=%t",
		c.Depth, c.Heuristic.Name(), c.Variant, c.Table, c.Deepening, c.Strict)
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
}
