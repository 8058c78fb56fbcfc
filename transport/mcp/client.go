package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/game2048/game/engine"
	"github.com/wricardo/game2048/game/service"
	"go.uber.org/zap"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
	logger     *zap.Logger
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	return NewClientWithLogger(baseURL, nil)
}

// NewClientWithLogger creates an MCP client that logs failed API calls
func NewClientWithLogger(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"2048",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`2048 - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Slide numbered tiles on the grid. Equal tiles that collide merge into their sum.
Build a 2048 tile to win. The game ends when no move changes the grid.

AVAILABLE TOOLS:
- game_state: Get current grid and score
- move: Single move (up/down/left/right) - optional intent explanation
- bulk_move: Up to 50 moves at once - optional intent explanation
- reset_game: Start the session over with a fresh grid
- move_history: View past moves
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available presets (grid sizes)
- game_instructions: Get full rules and strategy notes
- describe_cell: Get the value of one grid cell

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional preset and seed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Preset to use (e.g. classic, mini, large). Defaults to the server default.",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Fixed random seed for a reproducible game",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Gameplay
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current grid, score and status of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide all tiles in one direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to slide",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: fmt.Sprintf("Execute up to %d moves in sequence. Stops early when the game is over.", engine.MaxBulkMoves),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right"},
					},
					"description": "Array of moves",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to a fresh grid. Move history is kept.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest first (asc) or newest first (desc, default)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get the value of a single grid cell and the tiles next to it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the cell (0-based, 0 is the top)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the cell (0-based, 0 is the left)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api call failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		c.logger.Debug("api error response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	}
	return 0, false
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configName, _ := args["config_name"].(string)

	body := map[string]interface{}{}
	if configName != "" {
		body["config_name"] = configName
	}
	if seed, ok := intArg(args, "seed"); ok {
		body["seed"] = seed
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	if session.Seed != nil {
		result += fmt.Sprintf("Seed: %d\n", *session.Seed)
	}
	if session.Message != "" {
		result += "\n" + session.Message + "\n"
	}
	result += "\n" + formatGameState(session.GameState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, http.MethodGet, "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		score, maxTile := 0, 0
		if s.GameState != nil {
			score, maxTile = s.GameState.Score, s.GameState.MaxTile
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Score: %d, Best tile: %d, Created: %s)\n",
			s.ID, s.ConfigName, score, maxTile, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.GameState
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	reset, _ := args["reset"].(bool)

	// intent is for the caller's own reasoning
	if intent, _ := args["intent"].(string); intent != "" {
		c.logger.Debug("move intent", zap.String("session_id", sessionID), zap.String("intent", intent))
	}

	body := map[string]interface{}{
		"direction": direction,
		"reset":     reset,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	movesRaw, _ := args["moves"].([]interface{})
	reset, _ := args["reset"].(bool)

	if intent, _ := args["intent"].(string); intent != "" {
		c.logger.Debug("bulk move intent", zap.String("session_id", sessionID), zap.String("intent", intent))
	}

	moves := make([]string, 0, len(movesRaw))
	for _, m := range movesRaw {
		if move, ok := m.(string); ok {
			moves = append(moves, move)
		}
	}
	if len(moves) == 0 {
		return mcp.NewToolResultError("moves must contain at least one direction"), nil
	}

	body := map[string]interface{}{
		"moves": moves,
		"reset": reset,
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/bulk-move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, &result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", strconv.Itoa(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", strconv.Itoa(limit))
	}
	if order, _ := args["order"].(string); order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, http.MethodGet, "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (config_name: %s)\n  %s\n  Grid: %dx%d\n\n",
			config.Name, config.ConfigID, config.Description, config.GridSize, config.GridSize)
	}

	return mcp.NewToolResultText(b.String()), nil
}

const gameInstructions = `2048 - Complete Instructions

GAME OBJECTIVE:
Slide the tiles on an N x N grid so that equal tiles merge. Build a tile with the value 2048 to win.

GAME MECHANICS:
• Every move slides ALL tiles as far as they go in one direction (up, down, left, right)
• Two equal tiles that meet merge into one tile holding their sum
• A tile produced by a merge cannot merge again in the same move
• When three equal tiles line up, the pair nearest the edge you slide toward merges first
• Each merge adds the new tile's value to your score
• After every move that changes the grid, a new tile appears on a random empty cell:
  a 2 (90% of the time) or a 4 (10% of the time)
• A move that changes nothing is a no-op: no tile spawns and it still counts in the history

GRID LEGEND:
• Numbers are tile values
• "." is an empty cell
• Row 0 is the top of the grid, column 0 is the left edge

VICTORY CONDITIONS:
- Any tile reaches 2048
- You may keep playing after winning to chase a higher score

GAME OVER CONDITIONS:
- The grid is full AND no two neighbouring tiles are equal
- At that point no direction changes the grid

STRATEGY NOTES:
- Keep your largest tile in a corner and build a chain of decreasing values next to it
- Favour two directions (for example left and down); use a third only when stuck
- Avoid the direction that pulls your corner tile out of its corner
- Keep empty cells available; a full grid with mismatched tiles ends the game quickly
- Check "Possible moves" after each call; directions not listed are no-ops

API USAGE BEST PRACTICES:
- Use bulk_move for efficiency (at most 50 moves per call; extra moves are ignored)
- Read the step trace of a bulk_move to see which moves were no-ops
- Use describe_cell when you need the exact value of one cell
- Create sessions with a seed to replay the same tile spawns

CONFIGURATION OPTIONS:
- Presets differ in grid size: mini (3x3) is hard, classic (4x4) is standard, large and huge are relaxed

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and configuration
- Resetting keeps the session's move history

Good luck reaching 2048!`

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameInstructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	row, okRow := intArg(args, "row")
	col, okCol := intArg(args, "col")
	if !okRow || !okCol {
		return mcp.NewToolResultError("row and col are required integers"), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	size := len(state.Grid)
	if row < 0 || row >= size || col < 0 || col >= size {
		return mcp.NewToolResultError(fmt.Sprintf("Coordinates (%d, %d) are out of bounds. Grid size is %dx%d (0-%d for both row and col)",
			row, col, size, size, size-1)), nil
	}

	return mcp.NewToolResultText(describeCell(&state, row, col)), nil
}

func describeCell(state *engine.GameState, row, col int) string {
	value := state.Grid[row][col]

	var b strings.Builder
	fmt.Fprintf(&b, "Cell at row %d, col %d:\n", row, col)
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━\n")
	if value == 0 {
		b.WriteString("Value: empty\n")
	} else {
		fmt.Fprintf(&b, "Value: %d\n", value)
	}

	neighbours := []struct {
		name     string
		row, col int
	}{
		{"up", row - 1, col},
		{"down", row + 1, col},
		{"left", row, col - 1},
		{"right", row, col + 1},
	}

	b.WriteString("Neighbours:\n")
	for _, n := range neighbours {
		if n.row < 0 || n.row >= len(state.Grid) || n.col < 0 || n.col >= len(state.Grid) {
			fmt.Fprintf(&b, "  %-5s edge\n", n.name)
			continue
		}
		v := state.Grid[n.row][n.col]
		switch {
		case v == 0:
			fmt.Fprintf(&b, "  %-5s empty\n", n.name)
		case value != 0 && v == value:
			fmt.Fprintf(&b, "  %-5s %d (can merge)\n", n.name, v)
		default:
			fmt.Fprintf(&b, "  %-5s %d\n", n.name, v)
		}
	}

	return b.String()
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	header := fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"))
	if session.Seed != nil {
		header += fmt.Sprintf("Seed: %d\n", *session.Seed)
	}
	return header + "\n" + formatGameState(session.GameState)
}

// formatGrid renders grid as an ASCII box with cells wide enough for the largest tile
func formatGrid(grid [][]int) string {
	if len(grid) == 0 {
		return ""
	}

	width := 1
	for _, row := range grid {
		for _, v := range row {
			if n := len(strconv.Itoa(v)); n > width {
				width = n
			}
		}
	}

	border := "+"
	for range grid[0] {
		border += strings.Repeat("-", width+2) + "+"
	}

	var b strings.Builder
	b.WriteString(border + "\n")
	for _, row := range grid {
		b.WriteString("|")
		for _, v := range row {
			cell := "."
			if v != 0 {
				cell = strconv.Itoa(v)
			}
			fmt.Fprintf(&b, " %*s |", width, cell)
		}
		b.WriteString("\n" + border + "\n")
	}
	return b.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d | Best tile: %d | Empty cells: %d | Moves: %d\n\n",
		state.Score, state.MaxTile, state.EmptyCells, state.Moves)

	b.WriteString(formatGrid(state.Grid))

	switch {
	case state.Won && state.GameOver:
		b.WriteString("\n🎉 2048 REACHED • 💀 GAME OVER")
	case state.Won:
		b.WriteString("\n🎉 2048 REACHED! Keep going for a higher score.")
	case state.GameOver:
		b.WriteString("\n💀 GAME OVER")
	}

	return b.String()
}

func formatEvents(b *strings.Builder, events []service.GameEvent) {
	if len(events) == 0 {
		return
	}
	b.WriteString("Events:\n")
	for _, event := range events {
		fmt.Fprintf(b, "- %s: %s\n", event.Type, event.Message)
	}
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Tiles moved\n")
	} else {
		b.WriteString("✗ Nothing moved\n")
	}
	if result.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", result.Message)
	}

	if s := result.Step; s != nil {
		b.WriteString(formatStepLine(s))
	}

	formatEvents(&b, result.Events)

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatStepLine(s *service.StepInfo) string {
	status := "✓"
	if !s.Moved {
		status = "✗ no-op"
	}
	line := fmt.Sprintf("Step %d: %s score %d→%d (+%d)", s.Idx, s.Dir, s.ScoreBefore, s.ScoreAfter, s.ScoreGained)
	if s.Spawned != nil {
		line += fmt.Sprintf(" spawn %d@(%d,%d)", s.Spawned.Value, s.Spawned.Row, s.Spawned.Col)
	}
	return line + " " + status + "\n"
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	size := 0
	configName := ""
	if result.GameState != nil {
		size = result.GameState.Size
		configName = result.GameState.ConfigName
	}
	fmt.Fprintf(&b, "Session: %s • Config: %s • Grid: %dx%d\n", sessionID, configName, size, size)

	fmt.Fprintf(&b, "Executed %d/%d moves (%d no-op)\n", result.MovesExecuted, result.RequestedMoves, result.NoOpMoves)
	if result.Truncated {
		fmt.Fprintf(&b, "Truncated to the first %d moves\n", result.Limit)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped: %s\n", result.StoppedReason)
	}
	fmt.Fprintf(&b, "Score: %d → %d (+%d)\n", result.StartScore, result.EndScore, result.ScoreDelta)
	if result.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", result.Message)
	}

	if len(result.Events) > 0 {
		b.WriteString("\n")
		formatEvents(&b, result.Events)
	}

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for i := range result.Steps {
			b.WriteString(formatStepLine(&result.Steps[i]))
		}
	}

	if len(result.PossibleMoves) > 0 {
		fmt.Fprintf(&b, "\nPossible moves: %s\n", strings.Join(result.PossibleMoves, ","))
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d, Total: %d moves)\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		status := "✓"
		if !move.Moved {
			status = "✗ no-op"
		}
		line := fmt.Sprintf("#%d %s score=%d (+%d)", move.MoveNumber, move.Direction, move.Score, move.ScoreGained)
		if move.Spawned != nil {
			line += fmt.Sprintf(" spawn %d@(%d,%d)", move.Spawned.Value, move.Spawned.Row, move.Spawned.Col)
		}
		b.WriteString(line + " " + status + "\n")
	}

	if history.HasPrevious || history.HasNext {
		b.WriteString("\n")
		if history.HasPrevious {
			b.WriteString("← previous page available ")
		}
		if history.HasNext {
			b.WriteString("next page available →")
		}
		b.WriteString("\n")
	}

	return b.String()
}
