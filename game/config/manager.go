package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/wricardo/game2048/game/engine"
	"github.com/wricardo/game2048/game/service"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = service.ErrInvalidConfig
)

// Extensions recognised as preset files, in lookup order
var presetExtensions = []string{".yaml", ".yml", ".json"}

// Manager handles game configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	logger        *zap.Logger
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	return NewManagerWithLogger(configDir, nil)
}

// NewManagerWithLogger creates a configuration manager that logs cache activity
func NewManagerWithLogger(configDir string, logger *zap.Logger) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
		logger:    logger,
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// LoadConfig loads a configuration by name. The name may carry a file extension.
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	id := configID(name)

	m.mu.RLock()
	if config, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[id]; exists {
		return config, nil
	}

	path, err := m.findPresetFile(name)
	if err != nil {
		return nil, err
	}

	config, err := readPresetFile(path)
	if err != nil {
		return nil, err
	}

	m.configs[id] = config
	return config, nil
}

// ListConfigs returns information about all available configurations
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	seen := make(map[string]bool)
	var configs []*service.ConfigInfo

	for _, entry := range entries {
		if entry.IsDir() || !isPresetFile(entry.Name()) {
			continue
		}

		id := configID(entry.Name())
		if seen[id] {
			continue
		}

		config, err := m.LoadConfig(id)
		if err != nil {
			// Skip invalid configs
			m.logger.Debug("skipping invalid preset", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		seen[id] = true

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			GridSize:    config.GridSize,
		})
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops all cached configurations and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.GameConfig)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// SaveConfig validates config and writes it to disk. Names ending in .json are
// written as JSON, everything else as YAML.
func (m *Manager) SaveConfig(name string, config *engine.GameConfig) error {
	if err := engine.ValidateGameConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	id := configID(name)
	if id == "" || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: invalid config name %q", ErrInvalidConfig, name)
	}

	var (
		data []byte
		err  error
		file string
	)
	if strings.HasSuffix(name, ".json") {
		file = id + ".json"
		data, err = json.MarshalIndent(config, "", "  ")
	} else {
		file = id + ".yaml"
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.configDir, file), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[id] = config
	m.mu.Unlock()

	return nil
}

// Watch drops the cache whenever a preset file in the config directory changes.
// It blocks until ctx is cancelled.
func (m *Manager) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(m.configDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", m.configDir, err)
	}

	// Editors write in bursts; coalesce events into one refresh
	const debounce = 200 * time.Millisecond
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isPresetFile(event.Name) {
				continue
			}
			m.logger.Debug("preset changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			pending = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			m.logger.Warn("preset watcher error", zap.Error(err))

		case <-pending:
			pending = nil
			if err := m.RefreshCache(); err != nil {
				m.logger.Warn("failed to refresh presets", zap.Error(err))
				continue
			}
			m.logger.Info("presets reloaded", zap.String("dir", m.configDir))
		}
	}
}

// loadDefaultConfig loads the default configuration
func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig("classic")
	if err != nil {
		// Try to load the first available config
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			config = engine.DefaultConfig()
		} else if config, err = m.LoadConfig(configs[0].ConfigID); err != nil {
			config = engine.DefaultConfig()
		}
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
	return nil
}

// findPresetFile resolves a config name to a file in the config directory
func (m *Manager) findPresetFile(name string) (string, error) {
	if isPresetFile(name) {
		path := filepath.Join(m.configDir, filepath.Base(name))
		if _, err := os.Stat(path); err != nil {
			return "", ErrConfigNotFound
		}
		return path, nil
	}

	for _, ext := range presetExtensions {
		path := filepath.Join(m.configDir, filepath.Base(name)+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrConfigNotFound
}

// ReadPresetFile parses and validates a single preset file
func ReadPresetFile(path string) (*engine.GameConfig, error) {
	return readPresetFile(path)
}

func readPresetFile(path string) (*engine.GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config engine.GameConfig
	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(data, &config)
	} else {
		err = yaml.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// configID strips any preset extension from name
func configID(name string) string {
	base := filepath.Base(name)
	for _, ext := range presetExtensions {
		if strings.HasSuffix(base, ext) {
			return strings.TrimSuffix(base, ext)
		}
	}
	return base
}

func isPresetFile(name string) bool {
	for _, ext := range presetExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
