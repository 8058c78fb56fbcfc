package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays fixed values. When a script runs out Intn returns 0
// and Float64 returns 0, so spawns land on the first empty cell as a 2.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// newTestEngine builds an engine whose grid is replaced with grid
func newTestEngine(t *testing.T, grid [][]int) *GridEngine {
	t.Helper()
	e, err := New(len(grid), WithSource(&scriptedSource{}))
	require.NoError(t, err)
	e.grid = cloneGrid(grid)
	e.score = 0
	return e
}

func assertTileValues(t *testing.T, grid [][]int) {
	t.Helper()
	for i, row := range grid {
		for j, v := range row {
			if v != 0 && !IsPowerOfTwo(v) {
				t.Fatalf("cell (%d,%d) holds %d, not a power of two", i, j, v)
			}
		}
	}
}

func TestNew(t *testing.T) {
	e, err := New(DefaultGridSize)
	require.NoError(t, err)

	state := e.GetState()
	assert.Equal(t, 4, state.Size)
	assert.Len(t, state.Grid, 4)
	for _, row := range state.Grid {
		assert.Len(t, row, 4)
	}
	assert.Equal(t, 0, state.Score)
	assert.Equal(t, 2, CountTiles(state.Grid))
	assert.Equal(t, 14, state.EmptyCells)
	assert.False(t, state.GameOver)
	assert.False(t, state.Won)

	for _, row := range state.Grid {
		for _, v := range row {
			if v != 0 {
				assert.Contains(t, []int{2, 4}, v)
			}
		}
	}
}

func TestNew_InvalidSize(t *testing.T) {
	for _, size := range []int{-1, 0, 1, MaxGridSize + 1} {
		_, err := New(size)
		assert.ErrorIs(t, err, ErrInvalidSize, "size %d", size)
	}
}

func TestNew_SpawnUsesSource(t *testing.T) {
	src := &scriptedSource{
		ints:   []int{0, 0},
		floats: []float64{0.95, 0.1},
	}
	e, err := New(3, WithSource(src))
	require.NoError(t, err)

	want := [][]int{
		{4, 2, 0},
		{0, 0, 0},
		{0, 0, 0},
	}
	if diff := cmp.Diff(want, e.GetState().Grid); diff != "" {
		t.Errorf("unexpected grid (-want +got):\n%s", diff)
	}
}

func TestNew_Seeded(t *testing.T) {
	a, err := New(4, WithSeed(7))
	require.NoError(t, err)
	b, err := New(4, WithSeed(7))
	require.NoError(t, err)

	for _, dir := range []Direction{Left, Up, Right, Down, Left, Left, Up} {
		_, err := a.Move(dir)
		require.NoError(t, err)
		_, err = b.Move(dir)
		require.NoError(t, err)
	}
	assert.Equal(t, a.GetState().Grid, b.GetState().Grid)
	assert.Equal(t, a.GetScore(), b.GetScore())
}

func TestNewEngine(t *testing.T) {
	config := DefaultConfig()
	config.GridSize = 5

	e, err := NewEngine(config)
	require.NoError(t, err)
	assert.Equal(t, 5, e.Size())
	assert.Equal(t, config, e.GetConfig())
	assert.Equal(t, "classic", e.GetState().ConfigName)
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.Name = ""

	_, err := NewEngine(config)
	assert.Error(t, err)
}

func TestNewEngineWithDefaults(t *testing.T) {
	e := NewEngineWithDefaults()
	require.NotNil(t, e)
	assert.Equal(t, DefaultGridSize, e.Size())
	assert.Equal(t, 0, e.GetScore())
}

func TestEngine_MoveDirections(t *testing.T) {
	tests := []struct {
		name      string
		dir       Direction
		grid      [][]int
		want      [][]int
		wantScore int
	}{
		{
			name: "left merges toward the left edge",
			dir:  Left,
			grid: [][]int{
				{2, 2, 2, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			want: [][]int{
				{4, 2, 2, 0}, // spawn at (0,2)
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			wantScore: 4,
		},
		{
			name: "right pads with leading zeros",
			dir:  Right,
			grid: [][]int{
				{2, 2, 2, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			want: [][]int{
				{2, 0, 2, 4}, // spawn at (0,0)
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			wantScore: 4,
		},
		{
			name: "up merges columns top to bottom",
			dir:  Up,
			grid: [][]int{
				{2, 0, 0, 0},
				{2, 0, 0, 0},
				{4, 0, 0, 0},
				{4, 0, 0, 0},
			},
			want: [][]int{
				{4, 2, 0, 0}, // spawn at (0,1)
				{8, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			wantScore: 12,
		},
		{
			name: "down merges toward the bottom edge",
			dir:  Down,
			grid: [][]int{
				{2, 0, 0, 0},
				{2, 0, 0, 0},
				{2, 0, 0, 0},
				{0, 0, 0, 0},
			},
			want: [][]int{
				{2, 0, 0, 0}, // spawn at (0,0)
				{0, 0, 0, 0},
				{2, 0, 0, 0},
				{4, 0, 0, 0},
			},
			wantScore: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.grid)

			moved, err := e.Move(tt.dir)
			require.NoError(t, err)
			assert.True(t, moved)
			assert.Equal(t, tt.wantScore, e.GetScore())
			if diff := cmp.Diff(tt.want, e.GetState().Grid); diff != "" {
				t.Errorf("unexpected grid (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEngine_MoveWithoutChange(t *testing.T) {
	grid := [][]int{
		{2, 4, 0, 0},
		{8, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	e := newTestEngine(t, grid)
	e.score = 36

	moved, err := e.Move(Left)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 36, e.GetScore())
	assert.Equal(t, grid, e.GetState().Grid)
	assert.Equal(t, 0, e.GetState().Moves)

	last := e.GetLastMove()
	require.NotNil(t, last)
	assert.False(t, last.Moved)
	assert.Nil(t, last.Spawned)
	assert.Equal(t, 0, last.ScoreGained)
}

func TestEngine_MoveInvalidDirection(t *testing.T) {
	grid := [][]int{
		{2, 2},
		{0, 0},
	}
	e := newTestEngine(t, grid)

	moved, err := e.Move(Direction("diagonal"))
	assert.ErrorIs(t, err, ErrInvalidDirection)
	assert.False(t, moved)
	assert.Equal(t, grid, e.GetState().Grid)
	assert.Empty(t, e.GetMoveHistory())
}

func TestEngine_MoveOnFullGrid(t *testing.T) {
	grid := [][]int{
		{2, 2, 4, 4},
		{4, 8, 16, 32},
		{8, 16, 32, 64},
		{16, 32, 64, 128},
	}
	e := newTestEngine(t, grid)

	moved, err := e.Move(Left)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 12, e.GetScore())

	want := [][]int{
		{4, 8, 2, 0}, // two merges free two cells, one gets the spawn
		{4, 8, 16, 32},
		{8, 16, 32, 64},
		{16, 32, 64, 128},
	}
	assert.Equal(t, want, e.GetState().Grid)

	last := e.GetLastMove()
	require.NotNil(t, last)
	assert.Equal(t, &Tile{Row: 0, Col: 2, Value: 2}, last.Spawned)
}

func TestEngine_CanMove(t *testing.T) {
	tests := []struct {
		name string
		grid [][]int
		want bool
	}{
		{
			name: "deadlock",
			grid: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 4, 2},
			},
			want: false,
		},
		{
			name: "one empty cell",
			grid: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 0, 4},
				{4, 2, 4, 2},
			},
			want: true,
		},
		{
			name: "horizontal pair",
			grid: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 2, 8},
			},
			want: true,
		},
		{
			name: "vertical pair",
			grid: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 4, 4},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.grid)
			assert.Equal(t, tt.want, e.CanMove())
			assert.Equal(t, !tt.want, e.IsGameOver())
			assert.Equal(t, !tt.want, e.GetState().GameOver)
		})
	}
}

func TestEngine_DeadlockRejectsEveryMove(t *testing.T) {
	grid := [][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	e := newTestEngine(t, grid)

	assert.Empty(t, e.GetPossibleMoves())
	for _, dir := range Directions {
		moved, err := e.Move(dir)
		require.NoError(t, err)
		assert.False(t, moved, "direction %s", dir)
	}
	assert.Equal(t, grid, e.GetState().Grid)
}

func TestEngine_HasWon(t *testing.T) {
	tests := []struct {
		name string
		tile int
		want bool
	}{
		{"below winning tile", 1024, false},
		{"exactly 2048", 2048, true},
		{"past 2048 only", 4096, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, [][]int{
				{tt.tile, 0},
				{0, 2},
			})
			assert.Equal(t, tt.want, e.HasWon())
			assert.Equal(t, tt.want, e.GetState().Won)
		})
	}
}

func TestEngine_MergeToWin(t *testing.T) {
	e := newTestEngine(t, [][]int{
		{1024, 1024, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	require.False(t, e.HasWon())

	moved, err := e.Move(Left)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.True(t, e.HasWon())
	assert.Equal(t, 2048, e.GetScore())
	assert.Equal(t, 2048, e.GetState().MaxTile)
}

func TestEngine_GetStateIsDeepCopy(t *testing.T) {
	e := newTestEngine(t, [][]int{
		{2, 0},
		{0, 4},
	})

	state := e.GetState()
	state.Grid[0][0] = 1024
	state.Grid[1] = []int{8, 8}
	state.Score = 99

	fresh := e.GetState()
	assert.Equal(t, [][]int{{2, 0}, {0, 4}}, fresh.Grid)
	assert.Equal(t, 0, fresh.Score)
}

func TestEngine_Reset(t *testing.T) {
	e, err := New(4, WithSeed(1))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		_, err := e.Move(Directions[i%len(Directions)])
		require.NoError(t, err)
	}
	historyLen := len(e.GetMoveHistory())

	state := e.Reset()
	assert.Equal(t, 0, state.Score)
	assert.Equal(t, 0, state.Moves)
	assert.Equal(t, 4, state.Size)
	assert.Equal(t, 2, CountTiles(state.Grid))
	for _, row := range state.Grid {
		for _, v := range row {
			if v != 0 {
				assert.Contains(t, []int{2, 4}, v)
			}
		}
	}
	assert.Len(t, e.GetMoveHistory(), historyLen, "history is cumulative across resets")
}

func TestEngine_GetPossibleMoves(t *testing.T) {
	e := newTestEngine(t, [][]int{
		{2, 0},
		{0, 0},
	})
	assert.Equal(t, []Direction{Down, Right}, e.GetPossibleMoves())
}

func TestEngine_MoveHistory(t *testing.T) {
	e := newTestEngine(t, [][]int{
		{2, 2, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	assert.Nil(t, e.GetLastMove())

	_, err := e.Move(Left)
	require.NoError(t, err)
	_, err = e.Move(Left)
	require.NoError(t, err)

	history := e.GetMoveHistory()
	require.Len(t, history, 2)

	assert.Equal(t, 1, history[0].MoveNumber)
	assert.Equal(t, Left, history[0].Direction)
	assert.True(t, history[0].Moved)
	assert.Equal(t, 4, history[0].ScoreGained)
	assert.Equal(t, &Tile{Row: 0, Col: 1, Value: 2}, history[0].Spawned)

	// [4 2 0] cannot move further left
	assert.Equal(t, 2, history[1].MoveNumber)
	assert.False(t, history[1].Moved)
	assert.Equal(t, 4, history[1].Score)

	history[0].Score = 1000
	assert.Equal(t, 4, e.GetMoveHistory()[0].Score, "history is returned by copy")

	history[0].Spawned.Value = 1024
	assert.Equal(t, 2, e.GetMoveHistory()[0].Spawned.Value, "spawned tiles are copied too")
}

func TestEngine_GetLastMoveIsDetached(t *testing.T) {
	e := newTestEngine(t, [][]int{
		{2, 2},
		{0, 0},
	})
	_, err := e.Move(Left)
	require.NoError(t, err)

	last := e.GetLastMove()
	require.NotNil(t, last.Spawned)
	want := *last.Spawned

	last.Spawned.Value = 1024
	last.Spawned.Row = 9
	assert.Equal(t, want, *e.GetLastMove().Spawned)
	assert.Equal(t, want, *e.GetMoveHistory()[0].Spawned)
}

func TestMoveHistoryEntry_Clone(t *testing.T) {
	entry := MoveHistoryEntry{MoveNumber: 3, Spawned: &Tile{Row: 1, Col: 2, Value: 4}}
	clone := entry.Clone()
	assert.Equal(t, entry, clone)
	assert.NotSame(t, entry.Spawned, clone.Spawned)

	assert.Nil(t, MoveHistoryEntry{}.Clone().Spawned)
}

func TestEngine_BulkMove(t *testing.T) {
	e := newTestEngine(t, [][]int{
		{2, 2, 0},
		{0, 0, 0},
		{0, 0, 0},
	})

	results, err := e.BulkMove([]Direction{Left, Left, Right})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, results)

	results, err = e.BulkMove([]Direction{Up, Direction("sideways"), Down})
	assert.ErrorIs(t, err, ErrInvalidDirection)
	assert.Len(t, results, 1)
}

func TestEngine_BulkMoveStopsWhenGameOver(t *testing.T) {
	e := newTestEngine(t, [][]int{
		{2, 4},
		{4, 2},
	})

	results, err := e.BulkMove([]Direction{Left, Right})
	require.NoError(t, err)
	assert.Empty(t, results)
}
