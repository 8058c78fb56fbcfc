package engine

// MergeLine merges an ordered line of tiles toward its start and returns the
// merged tiles together with the points scored. Zeros are dropped first.
// Merges resolve left to right in one pass, so each tile merges at most once.
func MergeLine(values []int) ([]int, int) {
	tiles := make([]int, 0, len(values))
	for _, v := range values {
		if v != 0 {
			tiles = append(tiles, v)
		}
	}

	merged := make([]int, 0, len(tiles))
	score := 0
	for i := 0; i < len(tiles); {
		if i+1 < len(tiles) && tiles[i] == tiles[i+1] {
			v := tiles[i] * 2
			merged = append(merged, v)
			score += v
			i += 2
			continue
		}
		merged = append(merged, tiles[i])
		i++
	}

	return merged, score
}

// cellAt maps position k along line `line` to grid coordinates, where k=0 is
// the edge the tiles travel toward.
func cellAt(dir Direction, size, line, k int) (row, col int) {
	switch dir {
	case Left:
		return line, k
	case Right:
		return line, size - 1 - k
	case Up:
		return k, line
	default: // Down
		return size - 1 - k, line
	}
}

// slide applies the shift-and-merge transform for dir to grid in place and
// returns the points scored.
func slide(grid [][]int, dir Direction) int {
	size := len(grid)
	score := 0
	line := make([]int, size)

	for l := 0; l < size; l++ {
		for k := 0; k < size; k++ {
			r, c := cellAt(dir, size, l, k)
			line[k] = grid[r][c]
		}

		merged, gained := MergeLine(line)
		score += gained

		for k := 0; k < size; k++ {
			r, c := cellAt(dir, size, l, k)
			if k < len(merged) {
				grid[r][c] = merged[k]
			} else {
				grid[r][c] = 0
			}
		}
	}

	return score
}

// canMove reports whether any direction would change grid
func canMove(grid [][]int) bool {
	size := len(grid)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if grid[i][j] == 0 {
				return true
			}
		}
	}

	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			v := grid[i][j]
			if (i+1 < size && grid[i+1][j] == v) || (j+1 < size && grid[i][j+1] == v) {
				return true
			}
		}
	}

	return false
}

// hasWon reports whether some cell holds exactly WinningTile
func hasWon(grid [][]int) bool {
	for _, row := range grid {
		for _, v := range row {
			if v == WinningTile {
				return true
			}
		}
	}
	return false
}
