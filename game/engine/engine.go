package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	Reset() *GameState
	IsGameOver() bool
	HasWon() bool
	GetScore() int
	Size() int

	// Movement operations
	Move(direction Direction) (bool, error)
	CanMove() bool
	GetPossibleMoves() []Direction

	// Configuration
	GetConfig() *GameConfig

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// Option customizes a GridEngine at construction
type Option func(*GridEngine)

// WithSource injects the randomness used for tile spawns
func WithSource(src Source) Option {
	return func(e *GridEngine) {
		if src != nil {
			e.rng = src
		}
	}
}

// WithSeed makes tile spawns reproducible
func WithSeed(seed int64) Option {
	return func(e *GridEngine) {
		e.rng = NewSeededSource(seed)
	}
}

// GridEngine implements the Engine interface
type GridEngine struct {
	size    int
	grid    [][]int
	score   int
	moves   int
	rng     Source
	config  *GameConfig
	history []MoveHistoryEntry
}

// New creates an engine with a size x size grid seeded with two random tiles
func New(size int, opts ...Option) (*GridEngine, error) {
	if size < MinGridSize || size > MaxGridSize {
		return nil, fmt.Errorf("%w: must be between %d and %d, got %d", ErrInvalidSize, MinGridSize, MaxGridSize, size)
	}

	e := &GridEngine{
		size:    size,
		history: []MoveHistoryEntry{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = newDefaultSource()
	}

	e.init()
	return e, nil
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig, opts ...Option) (*GridEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e, err := New(config.GridSize, opts...)
	if err != nil {
		return nil, err
	}
	e.config = config
	return e, nil
}

// NewEngineWithDefaults creates a classic 4x4 engine
func NewEngineWithDefaults(opts ...Option) *GridEngine {
	e, _ := NewEngine(DefaultConfig(), opts...)
	return e
}

// init clears the grid and score and seeds the two starting tiles
func (e *GridEngine) init() {
	e.grid = newGrid(e.size)
	e.score = 0
	e.moves = 0
	e.addRandomTile()
	e.addRandomTile()
}

// addRandomTile places a 2 (90%) or 4 (10%) in a uniformly chosen empty cell.
// It is a no-op on a full grid.
func (e *GridEngine) addRandomTile() *Tile {
	cells := emptyCells(e.grid)
	if len(cells) == 0 {
		return nil
	}

	pos := cells[e.rng.Intn(len(cells))]
	value := 4
	if e.rng.Float64() < spawnTwoProbability {
		value = 2
	}
	e.grid[pos[0]][pos[1]] = value

	return &Tile{Row: pos[0], Col: pos[1], Value: value}
}

// GetState returns a deep copy of the current game state
func (e *GridEngine) GetState() *GameState {
	state := &GameState{
		Grid:       cloneGrid(e.grid),
		Size:       e.size,
		Score:      e.score,
		GameOver:   !canMove(e.grid),
		Won:        hasWon(e.grid),
		MaxTile:    MaxTile(e.grid),
		EmptyCells: len(emptyCells(e.grid)),
		Moves:      e.moves,
	}
	if e.config != nil {
		state.ConfigName = e.config.Name
	}
	return state
}

// Reset reinitializes the grid and score, keeping the size and random source.
// Move history is cumulative and survives resets.
func (e *GridEngine) Reset() *GameState {
	e.init()
	return e.GetState()
}

// IsGameOver returns whether no move can change the grid
func (e *GridEngine) IsGameOver() bool {
	return !canMove(e.grid)
}

// HasWon returns whether some cell holds exactly 2048
func (e *GridEngine) HasWon() bool {
	return hasWon(e.grid)
}

// GetScore returns the current score
func (e *GridEngine) GetScore() int {
	return e.score
}

// Size returns the grid dimension
func (e *GridEngine) Size() int {
	return e.size
}

// Move shifts and merges every line toward direction. It reports whether the
// grid changed; a move that changes nothing leaves the state untouched.
func (e *GridEngine) Move(direction Direction) (bool, error) {
	if !direction.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}

	next := cloneGrid(e.grid)
	gained := slide(next, direction)
	moved := !gridsEqual(e.grid, next)

	var spawned *Tile
	if moved {
		e.grid = next
		e.score += gained
		e.moves++
		spawned = e.addRandomTile()
	} else {
		gained = 0
	}

	e.history = append(e.history, MoveHistoryEntry{
		MoveNumber:  len(e.history) + 1,
		Direction:   direction,
		Moved:       moved,
		ScoreGained: gained,
		Score:       e.score,
		Spawned:     spawned,
		Timestamp:   time.Now().Unix(),
	})

	return moved, nil
}

// CanMove reports whether at least one direction would change the grid
func (e *GridEngine) CanMove() bool {
	return canMove(e.grid)
}

// GetPossibleMoves returns every direction that would change the grid
func (e *GridEngine) GetPossibleMoves() []Direction {
	var possible []Direction
	for _, dir := range Directions {
		probe := cloneGrid(e.grid)
		slide(probe, dir)
		if !gridsEqual(e.grid, probe) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// GetConfig returns the preset the engine was built from, or nil
func (e *GridEngine) GetConfig() *GameConfig {
	return e.config
}

// GetMoveHistory returns a deep copy of the complete move history
func (e *GridEngine) GetMoveHistory() []MoveHistoryEntry {
	out := make([]MoveHistoryEntry, len(e.history))
	for i, entry := range e.history {
		out[i] = entry.Clone()
	}
	return out
}

// GetLastMove returns a copy of the last move made, or nil if no moves
func (e *GridEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	last := e.history[len(e.history)-1].Clone()
	return &last
}

// BulkMove executes moves in sequence, returning the moved flag for each.
// It stops at the first invalid direction or once the game is over.
func (e *GridEngine) BulkMove(moves []Direction) ([]bool, error) {
	results := make([]bool, 0, len(moves))

	for _, direction := range moves {
		if e.IsGameOver() {
			break
		}

		moved, err := e.Move(direction)
		if err != nil {
			return results, err
		}
		results = append(results, moved)
	}

	return results, nil
}
