// Package api provides the HTTP REST API for the 2048 game server.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({"config_id": "classic", "seed": 42}, both optional)
//   - GET /api/sessions - List sessions (?sort=accessed|created|score&order=asc|desc&limit=N)
//   - GET /api/sessions/unified - Multi-session view (?sessionIds=a,b or ?configName=classic)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current grid, score and status
//   - POST /api/sessions/{id}/move - {"direction": "left", "reset": false}
//   - POST /api/sessions/{id}/bulk-move - {"moves": ["left", "up"], "reset": false}
//   - POST /api/sessions/{id}/reset - Start over on the same board size
//   - GET /api/sessions/{id}/history - Paginated moves (?page=1&limit=20&order=desc)
//
// Configuration:
//   - GET /api/configs - List board presets
//   - GET /api/configs/{name} - Get one preset
//   - POST /api/configs - Save a preset
//
// Other:
//   - GET /api/health - Liveness, version and session count
//   - GET /ws?session={id} - WebSocket stream of state updates
//
// Error Handling:
//
// Errors are returned as JSON: {"error": "message"}. Unknown sessions and
// presets map to 404, bad directions and invalid presets to 400.
//
// Move responses carry a step trace (score before/after, spawned tile) and
// events; bulk moves add requested/executed/no-op counts, the stop reason
// and the directions still available.
package api
