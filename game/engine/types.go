package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is one of the four moves a player can make
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"

	// Validation constants
	DefaultGridSize = 4
	MinGridSize     = 2
	MaxGridSize     = 16
	WinningTile     = 2048
	MaxBulkMoves    = 50

	// Spawn odds: a new tile is a 2 with this probability, otherwise a 4
	spawnTwoProbability = 0.9
)

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidSize      = errors.New("invalid grid size")
)

// Directions lists every valid direction in a stable order
var Directions = []Direction{Up, Down, Left, Right}

// Valid reports whether d is one of the four directions
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// ParseDirection converts user input into a Direction. Matching is case-insensitive.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	return d, nil
}

// Tile is a single placed tile
type Tile struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

// GameState is a snapshot of an engine. It owns its grid; changing it never affects the engine.
type GameState struct {
	Grid       [][]int `json:"grid"`
	Size       int     `json:"size"`
	Score      int     `json:"score"`
	GameOver   bool    `json:"game_over"`
	Won        bool    `json:"won"`
	MaxTile    int     `json:"max_tile"`
	EmptyCells int     `json:"empty_cells"`
	Moves      int     `json:"moves"`
	ConfigName string  `json:"config_name,omitempty"`
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	MoveNumber  int       `json:"move_number"`
	Direction   Direction `json:"direction"`
	Moved       bool      `json:"moved"`
	ScoreGained int       `json:"score_gained"`
	Score       int       `json:"score"`
	Spawned     *Tile     `json:"spawned,omitempty"`
	Timestamp   int64     `json:"timestamp"`
}

// Clone returns a copy of h that shares no memory with it
func (h MoveHistoryEntry) Clone() MoveHistoryEntry {
	if h.Spawned != nil {
		tile := *h.Spawned
		h.Spawned = &tile
	}
	return h
}

// GameConfig describes a game preset
type GameConfig struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	GridSize    int      `json:"grid_size" yaml:"grid_size"`
	Messages    Messages `json:"messages" yaml:"messages"`
}

// Messages are the player-facing texts of a preset. Empty values fall back to defaults.
type Messages struct {
	Welcome  string `json:"welcome,omitempty" yaml:"welcome,omitempty"`
	NoMove   string `json:"no_move,omitempty" yaml:"no_move,omitempty"`
	Won      string `json:"won,omitempty" yaml:"won,omitempty"`
	GameOver string `json:"game_over,omitempty" yaml:"game_over,omitempty"`
}
