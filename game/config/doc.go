// Package config loads and caches 2048 board presets.
//
// Presets live in a single directory as YAML (.yaml, .yml) or JSON (.json)
// files. Each preset names a grid size and may override the player-facing
// messages:
//
//	name: classic
//	description: Classic 4x4 board
//	grid_size: 4
//	messages:
//	  won: "You reached 2048! Score: %d"
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	preset, err := manager.LoadConfig("mini")
//	defaultPreset := manager.GetDefault()
//	infos, err := manager.ListConfigs()
//
// The default preset is "classic" when present, otherwise the first valid
// preset in the directory, otherwise the built-in 4x4 board.
//
// Watch keeps the cache in sync with the directory while a server runs.
package config
