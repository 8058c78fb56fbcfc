// Package websocket pushes live game updates to browser clients.
//
// A single Hub goroutine owns the client registry. Clients join a session by
// connecting to /ws?session=<id>; every state change made through the REST
// API is broadcast to the clients of that session as JSON:
//
//	{"session_id": "a1b2", "event": "state_update", "game_state": {...}}
//
// Game events (merges, spawns, won, game over) follow as a "game_events"
// message whose data is the event list.
//
// Usage:
//
//	hub := websocket.NewHubWithLogger(logger)
//	go hub.Run()
//	defer hub.Stop()
//
//	hub.BroadcastToSession(sessionID, state)
//
// Each client gets a UUID used only to correlate log lines. Incoming client
// messages are read and discarded so pong frames keep the connection alive.
// Broadcasts never block the caller; if the hub's queue is full the message
// is dropped and logged.
package websocket
