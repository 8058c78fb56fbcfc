package config

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/game2048/game/engine"
	"gopkg.in/yaml.v3"
)

func createValidConfig(name string, size int) *engine.GameConfig {
	return &engine.GameConfig{
		Name:        name,
		Description: "Test configuration",
		GridSize:    size,
		Messages: engine.Messages{
			Welcome: "Welcome!",
			Won:     "Won with %d",
		},
	}
}

func writeYAML(t *testing.T, dir, file string, config *engine.GameConfig) {
	t.Helper()
	data, err := yaml.Marshal(config)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), data, 0644))
}

func writeJSON(t *testing.T, dir, file string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.Marshal(config)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), data, 0644))
}

func TestNewManager(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := NewManager(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("empty directory falls back to built-in default", func(t *testing.T) {
		m, err := NewManager(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, engine.DefaultConfig(), m.GetDefault())
	})

	t.Run("classic preferred", func(t *testing.T) {
		dir := t.TempDir()
		writeYAML(t, dir, "aaa.yaml", createValidConfig("aaa", 3))
		writeYAML(t, dir, "classic.yaml", createValidConfig("classic", 4))

		m, err := NewManager(dir)
		require.NoError(t, err)
		assert.Equal(t, "classic", m.GetDefault().Name)
	})

	t.Run("first valid preset without classic", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "aaa.yaml"), []byte("grid_size: [oops"), 0644))
		writeJSON(t, dir, "bbb.json", createValidConfig("bbb", 5))
		writeYAML(t, dir, "ccc.yaml", createValidConfig("ccc", 6))

		m, err := NewManager(dir)
		require.NoError(t, err)
		assert.Equal(t, "bbb", m.GetDefault().Name)
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "big.yaml", createValidConfig("big", 5))
	writeJSON(t, dir, "small.json", createValidConfig("small", 3))
	writeYAML(t, dir, "broken.yml", &engine.GameConfig{Name: "broken", Description: "x", GridSize: 1})

	m, err := NewManager(dir)
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		wantSize int
		wantErr  error
	}{
		{"yaml by id", "big", 5, nil},
		{"yaml with extension", "big.yaml", 5, nil},
		{"json by id", "small", 3, nil},
		{"json with extension", "small.json", 3, nil},
		{"missing", "nope", 0, ErrConfigNotFound},
		{"invalid grid size", "broken", 0, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := m.LoadConfig(tt.input)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSize, config.GridSize)
		})
	}
}

func TestManager_LoadConfigIsCached(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "big.yaml", createValidConfig("big", 5))

	m, err := NewManager(dir)
	require.NoError(t, err)

	first, err := m.LoadConfig("big")
	require.NoError(t, err)

	// A file change is invisible until the cache is refreshed
	writeYAML(t, dir, "big.yaml", createValidConfig("big", 7))
	second, err := m.LoadConfig("big")
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, m.RefreshCache())
	third, err := m.LoadConfig("big")
	require.NoError(t, err)
	assert.Equal(t, 7, third.GridSize)
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "classic.yaml", createValidConfig("classic", 4))
	writeJSON(t, dir, "mini.json", createValidConfig("mini", 3))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0755))

	m, err := NewManager(dir)
	require.NoError(t, err)

	configs, err := m.ListConfigs()
	require.NoError(t, err)
	require.Len(t, configs, 2)

	assert.Equal(t, "classic", configs[0].ConfigID)
	assert.Equal(t, "classic.yaml", configs[0].Filename)
	assert.Equal(t, 4, configs[0].GridSize)

	assert.Equal(t, "mini", configs[1].ConfigID)
	assert.Equal(t, "mini.json", configs[1].Filename)
	assert.Equal(t, "Test configuration", configs[1].Description)
}

func TestManager_SetDefault(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "classic.yaml", createValidConfig("classic", 4))
	writeYAML(t, dir, "large.yaml", createValidConfig("large", 5))

	m, err := NewManager(dir)
	require.NoError(t, err)

	require.NoError(t, m.SetDefault("large"))
	assert.Equal(t, "large", m.GetDefault().Name)

	assert.ErrorIs(t, m.SetDefault("missing"), ErrConfigNotFound)
	assert.Equal(t, "large", m.GetDefault().Name)
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)

	t.Run("yaml by default", func(t *testing.T) {
		require.NoError(t, m.SaveConfig("saved", createValidConfig("saved", 5)))
		assert.FileExists(t, filepath.Join(dir, "saved.yaml"))

		loaded, err := ReadPresetFile(filepath.Join(dir, "saved.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 5, loaded.GridSize)
		assert.Equal(t, "Won with %d", loaded.Messages.Won)
	})

	t.Run("json when requested", func(t *testing.T) {
		require.NoError(t, m.SaveConfig("saved2.json", createValidConfig("saved2", 3)))
		assert.FileExists(t, filepath.Join(dir, "saved2.json"))

		loaded, err := m.LoadConfig("saved2")
		require.NoError(t, err)
		assert.Equal(t, 3, loaded.GridSize)
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		err := m.SaveConfig("bad", &engine.GameConfig{Name: "bad"})
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.NoFileExists(t, filepath.Join(dir, "bad.yaml"))
	})

	t.Run("bad template rejected", func(t *testing.T) {
		config := createValidConfig("tmpl", 4)
		config.Messages.GameOver = "no placeholder"
		assert.ErrorIs(t, m.SaveConfig("tmpl", config), ErrInvalidConfig)
	})
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "classic.yaml", createValidConfig("classic", 4))
	writeJSON(t, dir, "mini.json", createValidConfig("mini", 3))

	m, err := NewManager(dir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 4 {
			case 0:
				_, _ = m.LoadConfig("classic")
			case 1:
				_, _ = m.ListConfigs()
			case 2:
				_ = m.GetDefault()
			case 3:
				_ = m.RefreshCache()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, "classic", m.GetDefault().Name)
}

func TestManager_Watch(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "classic.yaml", createValidConfig("classic", 4))

	m, err := NewManager(dir)
	require.NoError(t, err)
	_, err = m.LoadConfig("classic")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx) }()

	updated := createValidConfig("classic", 6)
	require.Eventually(t, func() bool {
		writeYAML(t, dir, "classic.yaml", updated)
		config, err := m.LoadConfig("classic")
		return err == nil && config.GridSize == 6
	}, 5*time.Second, 500*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestConfigID(t *testing.T) {
	assert.Equal(t, "classic", configID("classic"))
	assert.Equal(t, "classic", configID("classic.yaml"))
	assert.Equal(t, "mini", configID("mini.json"))
	assert.Equal(t, "x", configID("dir/x.yml"))
}
