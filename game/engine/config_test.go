package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateGameConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GameConfig)
		wantErr string
	}{
		{"valid", func(c *GameConfig) {}, ""},
		{"missing name", func(c *GameConfig) { c.Name = "" }, "name is required"},
		{"missing description", func(c *GameConfig) { c.Description = "" }, "description is required"},
		{"grid too small", func(c *GameConfig) { c.GridSize = 1 }, "grid_size must be between"},
		{"grid too large", func(c *GameConfig) { c.GridSize = MaxGridSize + 1 }, "grid_size must be between"},
		{"won without score", func(c *GameConfig) { c.Messages.Won = "You won!" }, "messages.won"},
		{"game over with two scores", func(c *GameConfig) { c.Messages.GameOver = "%d and %d" }, "messages.game_over"},
		{"empty messages allowed", func(c *GameConfig) { c.Messages = Messages{} }, ""},
		{"string verb beside score", func(c *GameConfig) { c.Messages.Won = "%s wins %d" }, `messages.won may only use %d, found "%s"`},
		{"value verb only", func(c *GameConfig) { c.Messages.GameOver = "%v" }, `messages.game_over may only use %d, found "%v"`},
		{"width flag on score", func(c *GameConfig) { c.Messages.Won = "Score: %5d" }, "messages.won may only use %d"},
		{"dangling percent", func(c *GameConfig) { c.Messages.GameOver = "Score %d at 100%" }, "messages.game_over ends with a dangling %"},
		{"escaped percent only", func(c *GameConfig) { c.Messages.Won = "100%% done, no score %%d" }, "messages.won must contain exactly one %d"},
		{"escaped percent beside score", func(c *GameConfig) { c.Messages.Won = "100%% done! Score: %d" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := ValidateGameConfig(config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateGameConfig_TemplatesFormatCleanly(t *testing.T) {
	for _, tmpl := range []string{DefaultWonMessage, DefaultGameOverMessage, "100%% done! Score: %d"} {
		config := DefaultConfig()
		config.Messages.Won = tmpl
		if assert.NoError(t, ValidateGameConfig(config), tmpl) {
			assert.NotContains(t, fmt.Sprintf(tmpl, 2048), "%!", tmpl)
		}
	}
}

func TestValidateGameConfig_Nil(t *testing.T) {
	assert.Error(t, ValidateGameConfig(nil))
}

func TestMessagesWithDefaults(t *testing.T) {
	m := Messages{Welcome: "Hi"}.WithDefaults()
	assert.Equal(t, "Hi", m.Welcome)
	assert.Equal(t, DefaultNoMoveMessage, m.NoMove)
	assert.Equal(t, DefaultWonMessage, m.Won)
	assert.Equal(t, DefaultGameOverMessage, m.GameOver)
}
