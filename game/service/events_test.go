package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wricardo/game2048/game/engine"
)

func TestMoveEvents(t *testing.T) {
	msgs := engine.DefaultMessages()
	spawn := &engine.Tile{Row: 1, Col: 2, Value: 4}

	tests := []struct {
		name   string
		before engine.GameState
		after  engine.GameState
		step   StepInfo
		want   []string
	}{
		{
			name: "no-op",
			step: StepInfo{Moved: false},
			want: []string{EventNoMove},
		},
		{
			name:  "slide without merge",
			after: engine.GameState{Score: 0},
			step:  StepInfo{Moved: true, Spawned: spawn},
			want:  []string{EventMove, EventSpawn},
		},
		{
			name:  "reaching 2048",
			after: engine.GameState{Score: 20000, Won: true},
			step:  StepInfo{Moved: true, ScoreGained: 2048, Spawned: spawn},
			want:  []string{EventMove, EventMerge, EventSpawn, EventWon},
		},
		{
			name:   "already won",
			before: engine.GameState{Won: true},
			after:  engine.GameState{Won: true},
			step:   StepInfo{Moved: true, ScoreGained: 8},
			want:   []string{EventMove, EventMerge},
		},
		{
			name:  "final move",
			after: engine.GameState{GameOver: true, Score: 100},
			step:  StepInfo{Moved: true, Spawned: spawn},
			want:  []string{EventMove, EventSpawn, EventGameOver},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := moveEvents(msgs, engine.Left, &tt.before, &tt.after, tt.step)
			var types []string
			for _, e := range events {
				types = append(types, e.Type)
			}
			assert.Equal(t, tt.want, types)
		})
	}
}

func TestMoveEvents_Messages(t *testing.T) {
	msgs := engine.Messages{Won: "Victory at %d!"}.WithDefaults()
	after := &engine.GameState{Score: 3000, Won: true}
	step := StepInfo{Moved: true, ScoreGained: 2048, Spawned: &engine.Tile{Value: 2}}

	events := moveEvents(msgs, engine.Up, &engine.GameState{}, after, step)
	assert.Equal(t, "Victory at 3000!", events[len(events)-1].Message)
	assert.Equal(t, step.Spawned, events[2].Tile)
	assert.Equal(t, "Moved up", events[0].Message)
}

func TestMoveMessage(t *testing.T) {
	msgs := engine.DefaultMessages()

	assert.Equal(t, "No moves left. Final score: 12",
		moveMessage(msgs, engine.Left, &engine.GameState{}, &engine.GameState{GameOver: true, Score: 12}, StepInfo{Moved: true}))
	assert.Equal(t, "You reached 2048! Score: 5000",
		moveMessage(msgs, engine.Left, &engine.GameState{}, &engine.GameState{Won: true, Score: 5000}, StepInfo{Moved: true}))
	assert.Equal(t, engine.DefaultNoMoveMessage,
		moveMessage(msgs, engine.Left, &engine.GameState{}, &engine.GameState{}, StepInfo{}))
	assert.Equal(t, "Moved down. Score 8",
		moveMessage(msgs, engine.Down, &engine.GameState{}, &engine.GameState{Score: 8}, StepInfo{Moved: true}))
}
