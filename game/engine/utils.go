package engine

import (
	"math/rand"
	"time"
)

// Source supplies the randomness used to spawn tiles. *rand.Rand satisfies it.
type Source interface {
	// Intn returns a value in [0, n)
	Intn(n int) int
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
}

// NewSeededSource returns a math/rand backed Source seeded with seed
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

func newDefaultSource() Source {
	return NewSeededSource(time.Now().UnixNano())
}

// newGrid allocates an empty size x size grid
func newGrid(size int) [][]int {
	grid := make([][]int, size)
	for i := range grid {
		grid[i] = make([]int, size)
	}
	return grid
}

// cloneGrid returns a deep copy of grid
func cloneGrid(grid [][]int) [][]int {
	out := make([][]int, len(grid))
	for i, row := range grid {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// gridsEqual compares two grids cell by cell
func gridsEqual(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

// emptyCells returns the coordinates of all zero cells in row-major order
func emptyCells(grid [][]int) [][2]int {
	var cells [][2]int
	for i, row := range grid {
		for j, v := range row {
			if v == 0 {
				cells = append(cells, [2]int{i, j})
			}
		}
	}
	return cells
}

// CountTiles counts the non-empty cells in the grid
func CountTiles(grid [][]int) int {
	count := 0
	for _, row := range grid {
		for _, v := range row {
			if v != 0 {
				count++
			}
		}
	}
	return count
}

// MaxTile returns the largest value on the grid, or 0 for an empty grid
func MaxTile(grid [][]int) int {
	best := 0
	for _, row := range grid {
		for _, v := range row {
			if v > best {
				best = v
			}
		}
	}
	return best
}

// IsPowerOfTwo reports whether v is a positive power of two
func IsPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}
