// Command validate provides a small CLI that validates game preset files
// (.yaml, .yml, .json) in a config directory. It checks:
//   - File structure, rejecting unknown fields
//   - Engine rules (name, description, grid size, score placeholders)
//   - That the name inside the file matches its file name
//   - That no two files share a config ID (e.g. classic.yaml and classic.json)
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/bits"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/game2048/game/config"
	"github.com/wricardo/game2048/game/engine"
	"gopkg.in/yaml.v3"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// decodeStrict parses data into cfg, failing on fields GameConfig does not know
func decodeStrict(path string, data []byte, cfg *engine.GameConfig) error {
	if strings.HasSuffix(path, ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

// presetID strips the preset extension from a file name
func presetID(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

// validateConfig loads and validates a single preset file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var strict engine.GameConfig
	if err := decodeStrict(filePath, data, &strict); err != nil {
		result.fail("Invalid structure: %v", err)
		return result
	}

	// The config manager's loader applies the engine rules
	cfg, err := config.ReadPresetFile(filePath)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	if id := presetID(filePath); cfg.Name != id {
		result.fail("name %q does not match file name %q", cfg.Name, id)
	}

	if result.Valid {
		result.info("Name: %s", cfg.Name)
		result.info("Grid: %dx%d", cfg.GridSize, cfg.GridSize)
		// The largest tile an N x N board can hold is 2^(N*N+1)
		if cfg.GridSize*cfg.GridSize+1 < bits.Len(uint(engine.WinningTile))-1 {
			result.info("Note: %d is unreachable on this board", engine.WinningTile)
		}
	}

	return result
}

// presetFiles lists preset files in dir in name order
func presetFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml", "*.json"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// validateDir validates every preset in dir and flags duplicate config IDs
func validateDir(dir string) ([]ValidationResult, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("config directory: %w", err)
	}

	files, err := presetFiles(dir)
	if err != nil {
		return nil, err
	}

	owners := make(map[string]string)
	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		result := validateConfig(file)

		id := presetID(file)
		if first, ok := owners[id]; ok {
			result.fail("config ID %q is also defined by %s", id, first)
		} else {
			owners[id] = result.File
		}

		results = append(results, result)
	}
	return results, nil
}

// main validates the presets in the directory given as the first argument
// (../configs by default), printing a concise report and exiting with non-zero
// status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	results, err := validateDir(configDir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Printf("No preset files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, result := range results {
		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
