// Package engine provides the core rules for the 2048 sliding-tile puzzle.
//
// The engine package implements the game mechanics including:
//   - Shifting and merging tiles in the four cardinal directions
//   - Random tile spawning after every move that changes the grid
//   - Score accounting for merged tiles
//   - Win (a 2048 tile) and game-over (no legal move) detection
//   - Preset validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GridEngine. GameState is an immutable snapshot handed out
// to callers, and GameConfig describes a preset (grid size and messages)
// loaded by the config package.
//
// Usage:
//
//	eng, err := engine.New(4, engine.WithSeed(42))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	moved, err := eng.Move(engine.Left)
//	if err != nil {
//		log.Fatal(err)
//	}
//	state := eng.GetState()
//
// Line Merging:
//
// Every direction reduces to MergeLine applied to each row or column, read
// in the order the tiles travel. Merges resolve in a single pass, so a tile
// created by a merge never merges again in the same move: [2 2 2] becomes
// [4 2] and [4 4 4 4] becomes [8 8].
//
// Concurrency:
//
// GridEngine is not safe for concurrent use. Callers sharing an engine
// between goroutines must hold an exclusive lock around it.
package engine
