package domain

// CheckWinner returns the marker of the first complete line in Lines order,
// or Empty when there is none.
func CheckWinner(board *Board) Marker {
	for _, line := range Lines {
		first := board.At(line[0])
		if first == Empty {
			continue
		}
		if board.At(line[1]) == first && board.At(line[2]) == first {
			return first
		}
	}
	return Empty
}

func IsGameOver(board *Board) bool {
	return CheckWinner(board) != Empty
}

// CheckWin reports whether lastMove completes ToWin in a row for its marker
// on a rows x cols grid built from the position. Only lines passing through
// lastMove are checked.
func CheckWin(p Position, rows, cols int, lastMove MoveRecord) bool {
	grid := make([][]Marker, rows)
	for i := range grid {
		grid[i] = make([]Marker, cols)
	}
	for _, rec := range p {
		r, c := rec.Direction[0], rec.Direction[1]
		if r >= 0 && r < rows && c >= 0 && c < cols {
			grid[r][c] = rec.Content
		}
	}
	row, col := lastMove.Direction[0], lastMove.Direction[1]
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return false
	}
	grid[row][col] = lastMove.Content

	directions := [][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // diagonal \
		{1, -1}, // diagonal /
	}
	for _, dir := range directions {
		count := 1 +
			countInDirection(grid, row, col, dir[0], dir[1], lastMove.Content) +
			countInDirection(grid, row, col, -dir[0], -dir[1], lastMove.Content)
		if count >= ToWin {
			return true
		}
	}
	return false
}

// this counts the number of markers in a specific direction
func countInDirection(grid [][]Marker, row, col, deltaRow, deltaCol int, m Marker) int {
	count := 0
	r, c := row+deltaRow, col+deltaCol
	for r >= 0 && r < len(grid) && c >= 0 && c < len(grid[r]) && grid[r][c] == m {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
