// Package types contains shared data structures for goban-replay.
package types

import "github.com/goccy/go-json"

// Color is the content of a board cell: 0=empty, 1=black, 2=white.
type Color int

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the other player's color. Empty has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c Color) String() string {
	switch c {
	case Black:
		return "B"
	case White:
		return "W"
	}
	return "."
}

// BoardState is a read-only snapshot of a board, handed to renderers.
// Board is indexed as Board[y][x].
type BoardState struct {
	MoveNumber    int       `json:"move_number"`
	Board         [][]Color `json:"board"`
	BlackCaptures int       `json:"black_captures"` // stones captured by black
	WhiteCaptures int       `json:"white_captures"` // stones captured by white
	LastMove      BoardPos  `json:"last_move"`
}

// Height returns the board height.
func (b *BoardState) Height() int {
	return len(b.Board)
}

// Width returns the board width.
func (b *BoardState) Width() int {
	if b.Height() == 0 {
		return 0
	}
	return len(b.Board[0])
}

// Captures returns how many stones the given color has captured.
func (b *BoardState) Captures(c Color) int {
	if c == White {
		return b.WhiteCaptures
	}
	return b.BlackCaptures
}

// BoardPos represents a position on the board.
type BoardPos struct {
	X int
	Y int
}

// NoPos marks the absence of a position, e.g. no move played yet.
var NoPos = BoardPos{X: -1, Y: -1}

// Valid reports whether p refers to an actual position.
func (p BoardPos) Valid() bool {
	return p.X >= 0 && p.Y >= 0
}

// MarshalJSON encodes BoardPos as a JSON array [x, y].
func (p BoardPos) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON allows BoardPos to be unmarshaled from a JSON array [x, y].
func (p *BoardPos) UnmarshalJSON(data []byte) error {
	var v []float64
	err := json.Unmarshal(data, &v)
	if err != nil {
		return err
	}
	if len(v) != 2 {
		*p = NoPos
		return nil
	}
	p.X = int(v[0])
	p.Y = int(v[1])
	return nil
}

// NewBoardState creates a new empty board of the given size.
func NewBoardState(width, height int) *BoardState {
	board := make([][]Color, height)
	for i := range board {
		board[i] = make([]Color, width)
	}
	return &BoardState{
		MoveNumber: 0,
		Board:      board,
		LastMove:   NoPos,
	}
}
