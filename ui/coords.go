package ui

import (
	"strconv"

	"goban-replay/types"
)

// Board coordinates as printed around the board:
// - Columns: A-Z skipping I, so A-T on 19x19. Wider boards continue with
//   two letters (AA, AB, ...).
// - Rows: counted from the bottom edge, starting at 1.
// - Example on 19x19: (3, 15) is D4, (15, 3) is Q16.

const columnLetters = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// ColumnLabel returns the label of board column x.
func ColumnLabel(x int) string {
	n := len(columnLetters)
	if x < n {
		return columnLetters[x : x+1]
	}
	return string([]byte{columnLetters[x/n-1], columnLetters[x%n]})
}

// RowLabel returns the label of board row y on a board of the given height.
func RowLabel(y, height int) string {
	return strconv.Itoa(height - y)
}

// PosLabel converts a board position to its display label, e.g. "Q16".
// Positions that are not on the board, such as NoPos, read "pass".
func PosLabel(pos types.BoardPos, width, height int) string {
	if !pos.Valid() || pos.X >= width || pos.Y >= height {
		return "pass"
	}
	return ColumnLabel(pos.X) + RowLabel(pos.Y, height)
}
