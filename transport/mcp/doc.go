// Package mcp exposes the 2048 game to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call is translated into a request
// against the REST API served by package api, and the JSON response is
// rendered as plain text for the agent. The grid is drawn as an ASCII box,
// with "." for empty cells.
//
// MCP Tools:
//   - create_session: Create a session from a preset, optionally with a seed
//   - list_sessions: List all active sessions
//   - get_session: Get specific session details
//   - game_state: Get the grid, score and status
//   - move: Slide tiles in one direction
//   - bulk_move: Execute up to 50 moves in sequence
//   - reset_game: Start over with a fresh grid
//   - move_history: Retrieve move history with pagination
//   - list_configs: List available presets
//   - game_instructions: Rules and strategy notes
//   - describe_cell: Value of one cell and its neighbours
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
