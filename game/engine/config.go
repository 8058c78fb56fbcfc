package engine

import "fmt"

// Default player-facing messages
const (
	DefaultWelcomeMessage  = "Join the tiles, get to the 2048 tile!"
	DefaultNoMoveMessage   = "Nothing moved. Try another direction."
	DefaultWonMessage      = "You reached 2048! Score: %d"
	DefaultGameOverMessage = "No moves left. Final score: %d"
)

// ValidateGameConfig validates a game configuration for correctness
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is required")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.GridSize < MinGridSize || config.GridSize > MaxGridSize {
		return fmt.Errorf("config validation: grid_size must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.GridSize)
	}

	if err := checkScoreTemplate("messages.won", config.Messages.Won); err != nil {
		return err
	}
	if err := checkScoreTemplate("messages.game_over", config.Messages.GameOver); err != nil {
		return err
	}

	return nil
}

// checkScoreTemplate accepts an empty template or one whose only verb is a
// single bare %d. %% is a literal percent sign.
func checkScoreTemplate(field, tmpl string) error {
	if tmpl == "" {
		return nil
	}
	scores := 0
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '%' {
			continue
		}
		if i+1 == len(tmpl) {
			return fmt.Errorf("config validation: %s ends with a dangling %%", field)
		}
		i++
		switch tmpl[i] {
		case '%':
		case 'd':
			scores++
		default:
			return fmt.Errorf("config validation: %s may only use %%d, found %q", field, tmpl[i-1:i+1])
		}
	}
	if scores != 1 {
		return fmt.Errorf("config validation: %s must contain exactly one %%d for score", field)
	}
	return nil
}

// DefaultConfig returns the classic 4x4 preset
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Classic 4x4 board",
		GridSize:    DefaultGridSize,
		Messages:    DefaultMessages(),
	}
}

// DefaultMessages returns the built-in message set
func DefaultMessages() Messages {
	return Messages{
		Welcome:  DefaultWelcomeMessage,
		NoMove:   DefaultNoMoveMessage,
		Won:      DefaultWonMessage,
		GameOver: DefaultGameOverMessage,
	}
}

// WithDefaults returns a copy of m where empty messages are filled from DefaultMessages
func (m Messages) WithDefaults() Messages {
	d := DefaultMessages()
	if m.Welcome == "" {
		m.Welcome = d.Welcome
	}
	if m.NoMove == "" {
		m.NoMove = d.NoMove
	}
	if m.Won == "" {
		m.Won = d.Won
	}
	if m.GameOver == "" {
		m.GameOver = d.GameOver
	}
	return m
}
