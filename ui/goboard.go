// Package ui specifies tview controls for watching replayed Go games in the terminal.
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"goban-replay/config"
	"goban-replay/types"
)

// BoardView draws a board snapshot with coordinates. It never changes the
// board; a new snapshot is handed in after every tick.
type BoardView struct {
	Box        *tview.Box
	BoardState types.BoardState
	cfg        *config.Config
	styles     []tcell.Color
}

func NewBoardView(c *config.Config) *BoardView {
	board := &BoardView{
		Box: tview.NewBox(),
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		state := &board.BoardState
		if state.Width() == 0 {
			return x, y, 1, 1
		}
		theme := board.cfg.Theme
		// 2 characters per cell for square appearance
		boardW, boardH := state.Width()*2, state.Height()

		for boardY := 0; boardY < state.Height(); boardY++ {
			for boardX := 0; boardX < state.Width(); boardX++ {
				stone := state.Board[boardY][boardX]
				i := int(stone)
				if !theme.DrawStoneBackground {
					i = 0
				}
				if (boardX%2 + boardY%2) == 1 {
					i += 3
				}

				var drawRune rune
				var fgColor tcell.Color
				switch {
				case stone == types.Black:
					drawRune = theme.Symbols.BlackStone
					fgColor = board.styles[types.Black]
				case stone == types.White:
					drawRune = theme.Symbols.WhiteStone
					fgColor = board.styles[types.White]
				case theme.UseGridLines:
					hoshi := isHoshiPoint(boardX, boardY, state.Width(), state.Height())
					drawRune = getGridRune(boardX, boardY, state.Width(), state.Height(), hoshi)
					fgColor = board.styles[7]
				default:
					drawRune = theme.Symbols.BoardSquare
					fgColor = board.styles[7]
				}
				if theme.DrawStoneBackground && stone != types.Empty {
					// Stone drawn as its own background, the glyph in the opposite color.
					fgColor = board.styles[stone.Opponent()]
				}

				if boardX == state.LastMove.X && boardY == state.LastMove.Y {
					if theme.DrawLastPlayedBackground {
						i = 6
					} else if stone == types.Empty && !theme.UseGridLines {
						drawRune = theme.Symbols.LastPlayed
					}
				}

				style := tcell.StyleDefault.Background(board.styles[i]).Foreground(fgColor)
				if theme.UseGridLines && stone == types.Empty {
					// Check if there's a stone to the right (no line should connect to it)
					hasStoneRight := false
					if boardX < state.Width()-1 {
						hasStoneRight = state.Board[boardY][boardX+1] != types.Empty
					}
					drawGridCell(screen, style, drawRune, boardX, boardY, x+4, y, state.Width(), hasStoneRight)
				} else {
					drawStoneCell(screen, style, drawRune, boardX, boardY, x+4, y)
				}
			}
		}
		drawCoordinates(screen, x, y, board)
		// Add offset for coordinate display
		return x, y, boardW + 4, boardH + 2
	})
	return board
}

// SetBoardState replaces the snapshot that is drawn.
func (b *BoardView) SetBoardState(state types.BoardState) {
	b.BoardState = state
}

func (b *BoardView) SetConfig(c *config.Config) {
	b.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),        // 0
		tcell.PaletteColor(c.Theme.Colors.BlackColor),        // 1
		tcell.PaletteColor(c.Theme.Colors.WhiteColor),        // 2
		tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),     // 3
		tcell.PaletteColor(c.Theme.Colors.BlackColorAlt),     // 4
		tcell.PaletteColor(c.Theme.Colors.WhiteColorAlt),     // 5
		tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG), // 6
		tcell.PaletteColor(c.Theme.Colors.LineColor),         // 7
	}
	b.cfg = c
}

// drawStoneCell draws a stone cell (2 characters wide)
func drawStoneCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r, nil, c)
	s.SetContent(l+x*2+1, t+y, ' ', nil, c)
}

// drawGridCell draws a cell using box-drawing characters for grid lines
func drawGridCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t, boardWidth int, hasStoneRight bool) {
	// 2-char cell: [intersection][right-line]
	s.SetContent(l+x*2, t+y, r, nil, c)

	rightConn := '─'
	if x == boardWidth-1 || hasStoneRight {
		rightConn = ' '
	}
	s.SetContent(l+x*2+1, t+y, rightConn, nil, c)
}

// getGridRune returns the appropriate box-drawing character for a grid position
func getGridRune(x, y, width, height int, isHoshi bool) rune {
	if isHoshi {
		return '◦' // Subtle star point marker
	}

	isTop := y == 0
	isBottom := y == height-1
	isLeft := x == 0
	isRight := x == width-1

	switch {
	case width == 1 && height == 1:
		return '┼'
	case isTop && isLeft:
		return '┌'
	case isTop && isRight:
		return '┐'
	case isBottom && isLeft:
		return '└'
	case isBottom && isRight:
		return '┘'
	case isTop:
		return '┬'
	case isBottom:
		return '┴'
	case isLeft:
		return '├'
	case isRight:
		return '┤'
	default:
		return '┼'
	}
}

// isHoshiPoint checks if a position is a hoshi (star point) on the board.
// Only the usual square sizes have them.
func isHoshiPoint(x, y, width, height int) bool {
	if width != height {
		return false
	}
	var hoshiPositions [][2]int

	switch width {
	case 9:
		hoshiPositions = [][2]int{
			{2, 2}, {2, 6},
			{4, 4},
			{6, 2}, {6, 6},
		}
	case 13:
		hoshiPositions = [][2]int{
			{3, 3}, {3, 9},
			{6, 6},
			{9, 3}, {9, 9},
		}
	case 19:
		hoshiPositions = [][2]int{
			{3, 3}, {3, 9}, {3, 15},
			{9, 3}, {9, 9}, {9, 15},
			{15, 3}, {15, 9}, {15, 15},
		}
	default:
		return false
	}

	for _, pos := range hoshiPositions {
		if x == pos[0] && y == pos[1] {
			return true
		}
	}
	return false
}

func drawCoordinates(s tcell.Screen, x, y int, b *BoardView) {
	state := &b.BoardState
	w, h := state.Width(), state.Height()

	style := tcell.StyleDefault
	lpHighlight := tcell.StyleDefault.Background(b.styles[6])

	for ix := 0; ix < w; ix++ {
		_style := style
		if ix == state.LastMove.X {
			_style = lpHighlight
		}
		label := []rune(ColumnLabel(ix))
		if b.cfg.Theme.FullWidthLetters && len(label) == 1 {
			label[0] += 'Ａ' - 'A'
		}
		// 2-char cells
		first, second := label[0], ' '
		if len(label) > 1 {
			second = label[1]
		}
		s.SetContent(x+4+(ix*2), y+h+1, first, nil, _style)
		s.SetContent(x+4+(ix*2)+1, y+h+1, second, nil, _style)
	}

	for iy := 0; iy < h; iy++ {
		_style := style
		if iy == state.LastMove.Y {
			_style = lpHighlight
		}
		label := []rune(RowLabel(iy, h))
		tensRune := ' '
		if len(label) > 1 {
			tensRune = label[0]
		}
		s.SetContent(x+1, y+iy, tensRune, nil, _style)
		s.SetContent(x+2, y+iy, label[len(label)-1], nil, _style)
	}
}
