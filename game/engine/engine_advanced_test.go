package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEngine_RandomPlayInvariants drives engines with random moves and checks
// the grid invariants after every step.
func TestEngine_RandomPlayInvariants(t *testing.T) {
	for _, size := range []int{2, 3, 4, 5, 6} {
		for seed := int64(1); seed <= 5; seed++ {
			e, err := New(size, WithSeed(seed))
			require.NoError(t, err)
			picker := rand.New(rand.NewSource(seed * 31))

			for step := 0; step < 400 && !e.IsGameOver(); step++ {
				dir := Directions[picker.Intn(len(Directions))]
				before := cloneGrid(e.grid)
				scoreBefore := e.GetScore()

				expected := cloneGrid(before)
				gained := slide(expected, dir)

				moved, err := e.Move(dir)
				require.NoError(t, err)

				after := e.GetState()
				require.Len(t, after.Grid, size)
				assertTileValues(t, after.Grid)
				require.GreaterOrEqual(t, after.Score, scoreBefore, "score never decreases")

				if !moved {
					require.Equal(t, before, after.Grid, "no-op move leaves grid untouched")
					require.Equal(t, scoreBefore, after.Score)
					continue
				}

				require.Equal(t, scoreBefore+gained, after.Score)
				require.Equal(t, CountTiles(expected)+1, CountTiles(after.Grid), "exactly one tile spawns")

				diffs := 0
				for i := range expected {
					for j := range expected[i] {
						if expected[i][j] != after.Grid[i][j] {
							diffs++
							require.Equal(t, 0, expected[i][j])
							require.Contains(t, []int{2, 4}, after.Grid[i][j])
						}
					}
				}
				require.Equal(t, 1, diffs)
			}
		}
	}
}

// TestEngine_SpawnDistribution checks the 90/10 split of spawned values.
func TestEngine_SpawnDistribution(t *testing.T) {
	e, err := New(4, WithSeed(99))
	require.NoError(t, err)

	twos, fours := 0, 0
	for i := 0; i < 5000; i++ {
		e.grid = newGrid(4)
		tile := e.addRandomTile()
		require.NotNil(t, tile)
		switch tile.Value {
		case 2:
			twos++
		case 4:
			fours++
		default:
			t.Fatalf("unexpected spawn value %d", tile.Value)
		}
	}

	ratio := float64(twos) / float64(twos+fours)
	require.InDelta(t, 0.9, ratio, 0.03)
}

func TestEngine_AddRandomTileOnFullGrid(t *testing.T) {
	grid := [][]int{
		{2, 4},
		{8, 16},
	}
	e := newTestEngine(t, grid)

	require.Nil(t, e.addRandomTile())
	require.Equal(t, grid, e.grid)
}
