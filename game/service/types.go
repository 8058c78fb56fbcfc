package service

import (
	"errors"
	"time"

	"github.com/wricardo/game2048/game/engine"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrConfigNotFound       = errors.New("configuration not found")
	ErrInvalidConfig        = errors.New("invalid configuration")
)

// Event types emitted by Move and BulkMove
const (
	EventMove     = "move"
	EventMerge    = "merge"
	EventNoMove   = "no_move"
	EventSpawn    = "spawn"
	EventWon      = "won"
	EventGameOver = "game_over"
	EventReset    = "reset"
)

// Stop reason codes reported by BulkMove
const (
	StopGameOver  = "game_over"
	StopCancelled = "cancelled"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	Seed           *int64             `json:"seed,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
	// Message greets the player; only set when the session is created
	Message        string             `json:"message,omitempty"`
}

// CreateSessionRequest selects the preset and, optionally, a fixed random seed
type CreateSessionRequest struct {
	ConfigName string `json:"config_name,omitempty"`
	Seed       *int64 `json:"seed,omitempty"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success   bool              `json:"success"` // true when the grid changed
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
	Step      *StepInfo         `json:"step,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	NoOpMoves      int               `json:"no_op_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // game_over|cancelled
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that was not run
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartScore int `json:"start_score"`
	EndScore   int `json:"end_score"`
	ScoreDelta int `json:"score_delta"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Final status aids
	GameOver      bool     `json:"game_over"`
	Won           bool     `json:"won"`
	Message       string   `json:"message,omitempty"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
}

// StepInfo is a compact record for each executed move
type StepInfo struct {
	Idx         int          `json:"idx"`
	Dir         string       `json:"dir"`
	Moved       bool         `json:"moved"`
	ScoreBefore int          `json:"score_before"`
	ScoreAfter  int          `json:"score_after"`
	ScoreGained int          `json:"score_gained"`
	Spawned     *engine.Tile `json:"spawned,omitempty"`
	GameOver    bool         `json:"game_over,omitempty"`
	Won         bool         `json:"won,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string       `json:"type"`
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
	Tile      *engine.Tile `json:"tile,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
}
