// Package session provides in-memory session management for the 2048 game server.
//
// Manager stores one engine per session, keyed by a case-insensitive ID.
// Generated IDs are four lowercase hex characters drawn from crypto/rand.
//
// Concurrency:
//
// The manager's map is guarded by a RWMutex, so sessions can be created,
// looked up and deleted from any goroutine. The engines themselves are not
// synchronized; callers serialize engine access (the service layer does).
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config, engine.WithSeed(42))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Cleanup:
//
// CleanupExpiredSessions drops sessions whose last access is older than the
// given age. The server runs it periodically.
package session
