package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wricardo/game2048/game/engine"
	"go.uber.org/zap"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *zap.Logger
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return NewGameServiceWithLogger(sessions, configs, nil)
}

// NewGameServiceWithLogger creates a game service that logs session lifecycle events
func NewGameServiceWithLogger(sessions SessionManager, configs ConfigManager, logger *zap.Logger) GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logger,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if req.ConfigName != "" {
		config, err = s.configs.LoadConfig(req.ConfigName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, req.ConfigName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, req.ConfigName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", req.ConfigName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	var opts []engine.Option
	if req.Seed != nil {
		opts = append(opts, engine.WithSeed(*req.Seed))
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.Seed = req.Seed

	configID := req.ConfigName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	s.logger.Info("session created",
		zap.String("session_id", session.ID),
		zap.String("config", configID),
		zap.Int("grid_size", config.GridSize),
		zap.Bool("seeded", req.Seed != nil))

	info := s.sessionInfo(session)
	info.ConfigName = configID
	info.Message = messagesFor(session).Welcome
	return info, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	_ = s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions, oldest first
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.logger.Info("session deleted", zap.String("session_id", sessionID))
	return nil
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	_ = s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent())
	}

	before := sess.Engine.GetState()
	step, stepEvents, err := s.applyMove(sess, 1, dir, before)
	if err != nil {
		return nil, err
	}
	state := sess.Engine.GetState()

	return &MoveResult{
		Success:   step.Moved,
		GameState: state,
		Message:   moveMessage(messagesFor(sess), dir, before, state, step),
		Events:    append(events, stepEvents...),
		Step:      &step,
	}, nil
}

// BulkMove executes multiple moves in sequence. Every direction is parsed
// before any is applied; one bad direction rejects the whole batch.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	dirs := make([]engine.Direction, 0, len(moves))
	for i, move := range moves {
		dir, err := engine.ParseDirection(move)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		dirs = append(dirs, dir)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	_ = s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent())
	}

	// Limit moves to prevent abuse
	if len(dirs) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		dirs = dirs[:engine.MaxBulkMoves]
	}

	result.StartScore = sess.Engine.GetScore()

	for i, dir := range dirs {
		if err := ctx.Err(); err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("cancelled before move %d: %v", i+1, err)
			result.StopReasonCode = StopCancelled
			result.StoppedOnMove = i + 1
			break
		}
		if sess.Engine.IsGameOver() {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("game over before move %d", i+1)
			result.StopReasonCode = StopGameOver
			result.StoppedOnMove = i + 1
			break
		}

		before := sess.Engine.GetState()
		step, events, err := s.applyMove(sess, i+1, dir, before)
		if err != nil {
			return nil, err
		}

		result.MovesExecuted++
		if !step.Moved {
			result.NoOpMoves++
		}
		result.Steps = append(result.Steps, step)
		result.Events = append(result.Events, events...)
	}

	endState := sess.Engine.GetState()
	result.GameState = endState
	result.EndScore = endState.Score
	result.ScoreDelta = endState.Score - result.StartScore
	result.GameOver = endState.GameOver
	result.Won = endState.Won
	if result.GameOver && result.StopReasonCode == "" {
		result.StopReasonCode = StopGameOver
	}

	msgs := messagesFor(sess)
	switch {
	case endState.GameOver:
		result.Message = fmt.Sprintf(msgs.GameOver, endState.Score)
	case endState.Won:
		result.Message = fmt.Sprintf(msgs.Won, endState.Score)
	default:
		result.Message = fmt.Sprintf("Executed %d of %d moves (%d without effect). Score: %d",
			result.MovesExecuted, result.RequestedMoves, result.NoOpMoves, endState.Score)
	}

	for _, dir := range sess.Engine.GetPossibleMoves() {
		result.PossibleMoves = append(result.PossibleMoves, string(dir))
	}

	s.logger.Debug("bulk move",
		zap.String("session_id", sessionID),
		zap.Int("requested", result.RequestedMoves),
		zap.Int("executed", result.MovesExecuted),
		zap.Int("no_op", result.NoOpMoves),
		zap.String("stop_reason", result.StopReasonCode))

	return result, nil
}

// Reset resets a game session to initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	_ = s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.Reset(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	_ = s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = history[start:end]
	}

	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if err := s.configs.SaveConfig(configName, config); err != nil {
		return err
	}
	s.logger.Info("config saved", zap.String("config", configName))
	return nil
}

// sessionInfo snapshots sess. LastAccessedAt is owned by the session manager
// and only read through it.
func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	accessed, err := s.sessions.LastAccessed(sess.ID)
	if err != nil {
		accessed = sess.CreatedAt
	}
	info := &SessionInfo{
		ID:             sess.ID,
		Seed:           sess.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: accessed,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
	if sess.Config != nil {
		info.ConfigName = s.getConfigID(sess.Config.Name)
	}
	return info
}

// applyMove runs one move and describes it as a step plus events
func (s *gameServiceImpl) applyMove(sess *Session, idx int, dir engine.Direction, before *engine.GameState) (StepInfo, []GameEvent, error) {
	moved, err := sess.Engine.Move(dir)
	if err != nil {
		return StepInfo{}, nil, err
	}
	after := sess.Engine.GetState()

	step := StepInfo{
		Idx:         idx,
		Dir:         string(dir),
		Moved:       moved,
		ScoreBefore: before.Score,
		ScoreAfter:  after.Score,
		ScoreGained: after.Score - before.Score,
		GameOver:    after.GameOver,
		Won:         after.Won,
	}
	if last := sess.Engine.GetLastMove(); last != nil {
		step.Spawned = last.Spawned
	}

	return step, moveEvents(messagesFor(sess), dir, before, after, step), nil
}

// moveEvents describes the transition from before to after
func moveEvents(msgs engine.Messages, dir engine.Direction, before, after *engine.GameState, step StepInfo) []GameEvent {
	now := time.Now()

	if !step.Moved {
		return []GameEvent{{Type: EventNoMove, Message: msgs.NoMove, Timestamp: now}}
	}

	events := []GameEvent{{
		Type:      EventMove,
		Message:   fmt.Sprintf("Moved %s", dir),
		Timestamp: now,
	}}
	if step.ScoreGained > 0 {
		events = append(events, GameEvent{
			Type:      EventMerge,
			Message:   fmt.Sprintf("Merged tiles for +%d", step.ScoreGained),
			Timestamp: now,
		})
	}
	if step.Spawned != nil {
		events = append(events, GameEvent{
			Type:      EventSpawn,
			Message:   fmt.Sprintf("New %d tile at (%d,%d)", step.Spawned.Value, step.Spawned.Row, step.Spawned.Col),
			Timestamp: now,
			Tile:      step.Spawned,
		})
	}
	if after.Won && !before.Won {
		events = append(events, GameEvent{
			Type:      EventWon,
			Message:   fmt.Sprintf(msgs.Won, after.Score),
			Timestamp: now,
		})
	}
	if after.GameOver && !before.GameOver {
		events = append(events, GameEvent{
			Type:      EventGameOver,
			Message:   fmt.Sprintf(msgs.GameOver, after.Score),
			Timestamp: now,
		})
	}
	return events
}

// moveMessage picks the most relevant player-facing message for a single move
func moveMessage(msgs engine.Messages, dir engine.Direction, before, after *engine.GameState, step StepInfo) string {
	switch {
	case after.GameOver:
		return fmt.Sprintf(msgs.GameOver, after.Score)
	case after.Won && !before.Won:
		return fmt.Sprintf(msgs.Won, after.Score)
	case !step.Moved:
		return msgs.NoMove
	case step.ScoreGained > 0:
		return fmt.Sprintf("Moved %s. +%d points, score %d", dir, step.ScoreGained, after.Score)
	default:
		return fmt.Sprintf("Moved %s. Score %d", dir, after.Score)
	}
}

func messagesFor(sess *Session) engine.Messages {
	if sess.Config == nil {
		return engine.DefaultMessages()
	}
	return sess.Config.Messages.WithDefaults()
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      EventReset,
		Message:   "Game reset to initial state",
		Timestamp: time.Now(),
	}
}
