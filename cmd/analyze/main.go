// Command analyze prints quick, human-readable facts about the presets in a
// config directory: board dimensions, the largest tile each board can hold,
// whether 2048 is reachable at all, and which messages are customised.
package main

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/wricardo/game2048/game/config"
	"github.com/wricardo/game2048/game/engine"
)

// BoardLimits are the theoretical bounds of an N x N board
type BoardLimits struct {
	Cells int
	// MaxTileExponent is e in 2^e, the largest tile the board can ever hold.
	// Every cell full with 4, 8, ... 2^(N*N) and one more spawned 4 chaining up
	// gives 2^(N*N+1).
	MaxTileExponent int
	WinReachable    bool
}

// limitsFor computes the bounds of a board with the given side length
func limitsFor(size int) BoardLimits {
	cells := size * size
	exp := cells + 1
	return BoardLimits{
		Cells:           cells,
		MaxTileExponent: exp,
		WinReachable:    exp >= winExponent(),
	}
}

// winExponent returns e with 2^e == engine.WinningTile
func winExponent() int {
	e := 0
	for v := engine.WinningTile; v > 1; v >>= 1 {
		e++
	}
	return e
}

// formatPowerOfTwo prints 2^exp in full, however large
func formatPowerOfTwo(exp int) string {
	return new(big.Int).Lsh(big.NewInt(1), uint(exp)).String()
}

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := analyzeDir(os.Stdout, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// analyzeDir reports on every valid preset in dir
func analyzeDir(w io.Writer, dir string) error {
	manager, err := config.NewManager(dir)
	if err != nil {
		return err
	}

	presets, err := manager.ListConfigs()
	if err != nil {
		return err
	}
	if len(presets) == 0 {
		return fmt.Errorf("no valid presets in %s", dir)
	}

	for _, info := range presets {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.Filename)

		cfg, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Fprintf(w, "Error loading preset: %v\n", err)
			continue
		}
		analyzeConfig(w, cfg)
	}
	return nil
}

func analyzeConfig(w io.Writer, cfg *engine.GameConfig) {
	limits := limitsFor(cfg.GridSize)

	fmt.Fprintf(w, "Name: %s\n", cfg.Name)
	fmt.Fprintf(w, "Description: %s\n", cfg.Description)
	fmt.Fprintf(w, "Grid Size: %d x %d (%d cells)\n", cfg.GridSize, cfg.GridSize, limits.Cells)
	fmt.Fprintf(w, "Largest possible tile: %s (2^%d)\n", formatPowerOfTwo(limits.MaxTileExponent), limits.MaxTileExponent)

	if limits.WinReachable {
		fmt.Fprintf(w, "✅ %d is reachable on this board\n", engine.WinningTile)
	} else {
		fmt.Fprintf(w, "⚠️  WARNING: %d can never appear on this board; the game cannot be won\n", engine.WinningTile)
	}

	custom := customMessages(cfg.Messages)
	if len(custom) == 0 {
		fmt.Fprintf(w, "Messages: all defaults\n")
		return
	}
	fmt.Fprintf(w, "Custom messages:\n")
	for _, name := range custom {
		fmt.Fprintf(w, "   %s\n", name)
	}
}

// customMessages lists which messages override the defaults
func customMessages(m engine.Messages) []string {
	var names []string
	d := engine.DefaultMessages()
	if m.Welcome != "" && m.Welcome != d.Welcome {
		names = append(names, "welcome")
	}
	if m.NoMove != "" && m.NoMove != d.NoMove {
		names = append(names, "no_move")
	}
	if m.Won != "" && m.Won != d.Won {
		names = append(names, "won")
	}
	if m.GameOver != "" && m.GameOver != d.GameOver {
		names = append(names, "game_over")
	}
	return names
}
