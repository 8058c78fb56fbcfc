// Package service provides the business logic layer for the 2048 game server.
//
// The service package implements:
//   - Multi-session game management
//   - Move processing with per-step traces and events
//   - Bulk moves with truncation and early stop on game over
//   - Paginated move history
//
// Core Interfaces:
//
// GameService is the main service interface used by the REST, WebSocket and
// MCP transports. SessionManager stores sessions and ConfigManager loads
// board presets; both are satisfied by the session and config packages.
//
// Architecture:
//
// The service layer sits between the transports and the engine. Engines are
// not safe for concurrent use, so every engine call happens under the
// service's lock.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, service.CreateSessionRequest{ConfigName: "classic"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, info.ID, "left", false)
//
// Events:
//
// Move and BulkMove report what happened as GameEvents: move, merge, spawn,
// no_move, won, game_over and reset. Won and game_over fire only on the move
// that caused them.
package service
