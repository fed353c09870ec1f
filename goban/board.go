// Package goban implements a Go board with liberty-based captures.
package goban

import (
	"errors"
	"fmt"
	"strings"

	"goban-replay/types"
)

// MaxSize is the largest board axis a record can address.
const MaxSize = 52

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrInvalidSize = errors.New("invalid board size")
)

// MoveError reports a stone that could not be placed.
type MoveError struct {
	Stone  Stone
	Reason string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s: %s at (%d,%d) %s", ErrInvalidMove, e.Stone.Color, e.Stone.Pos.X, e.Stone.Pos.Y, e.Reason)
}

func (e *MoveError) Unwrap() error {
	return ErrInvalidMove
}

// Stone is a colored stone at a position.
type Stone struct {
	Pos   types.BoardPos
	Color types.Color
}

// NewStone creates a stone at (x, y).
func NewStone(x, y int, color types.Color) Stone {
	return Stone{Pos: types.BoardPos{X: x, Y: y}, Color: color}
}

// View is the read-only side of a Board, for renderers.
type View interface {
	Size() (width, height int)
	At(pos types.BoardPos) types.Color
	Stones() []Stone
	MoveNumber() int
	Captures(color types.Color) int
	Snapshot() types.BoardState
}

// Board is a width x height grid holding at most one stone per cell.
type Board struct {
	width      int
	height     int
	cells      []types.Color // row-major, cells[y*width+x]
	moveNumber int
	captures   [3]int // stones captured, indexed by capturing color
	lastMove   types.BoardPos
}

// New creates an empty board. Both axes must lie in [1, MaxSize].
func New(width, height int) (*Board, error) {
	if width < 1 || width > MaxSize || height < 1 || height > MaxSize {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Board{
		width:    width,
		height:   height,
		cells:    make([]types.Color, width*height),
		lastMove: types.NoPos,
	}, nil
}

// Size returns the board dimensions.
func (b *Board) Size() (width, height int) {
	return b.width, b.height
}

// At returns the color at pos; off-board positions are Empty.
func (b *Board) At(pos types.BoardPos) types.Color {
	if !b.inBounds(pos) {
		return types.Empty
	}
	return b.cells[b.index(pos)]
}

// MoveNumber returns the move counter.
func (b *Board) MoveNumber() int {
	return b.moveNumber
}

// Captures returns how many stones color has captured.
func (b *Board) Captures(color types.Color) int {
	if color != types.Black && color != types.White {
		return 0
	}
	return b.captures[color]
}

// Stones returns every stone on the board in row-major order.
func (b *Board) Stones() []Stone {
	var stones []Stone
	for i, c := range b.cells {
		if c != types.Empty {
			stones = append(stones, NewStone(i%b.width, i/b.width, c))
		}
	}
	return stones
}

// AddStone places a stone without counting a move, then resolves captures:
// first adjacent opponent groups without liberties, then the stone's own
// group. It fails with ErrInvalidMove if the cell is off-board or occupied.
func (b *Board) AddStone(s Stone) error {
	if s.Color != types.Black && s.Color != types.White {
		return &MoveError{Stone: s, Reason: "has no color"}
	}
	if !b.inBounds(s.Pos) {
		return &MoveError{Stone: s, Reason: "is off the board"}
	}
	idx := b.index(s.Pos)
	if b.cells[idx] != types.Empty {
		return &MoveError{Stone: s, Reason: "is occupied"}
	}
	b.cells[idx] = s.Color

	opponent := s.Color.Opponent()
	for _, n := range b.neighbors(idx) {
		if b.cells[n] == opponent {
			b.captures[s.Color] += b.captureIfDead(n)
		}
	}
	// Suicide
	b.captures[opponent] += b.captureIfDead(idx)
	return nil
}

// PlayStone is AddStone for a move: it also advances the move counter.
func (b *Board) PlayStone(s Stone) error {
	if err := b.AddStone(s); err != nil {
		return err
	}
	b.moveNumber++
	b.lastMove = s.Pos
	return nil
}

// ClearPoint removes any stone at pos.
func (b *Board) ClearPoint(pos types.BoardPos) {
	if b.inBounds(pos) {
		b.cells[b.index(pos)] = types.Empty
	}
}

// SetMoveNumber overwrites the move counter.
func (b *Board) SetMoveNumber(n int) {
	b.moveNumber = n
}

// Snapshot copies the board into a BoardState.
func (b *Board) Snapshot() types.BoardState {
	state := types.NewBoardState(b.width, b.height)
	for i, c := range b.cells {
		state.Board[i/b.width][i%b.width] = c
	}
	state.MoveNumber = b.moveNumber
	state.BlackCaptures = b.captures[types.Black]
	state.WhiteCaptures = b.captures[types.White]
	state.LastMove = b.lastMove
	return *state
}

// String draws the board one row per line: B, W or '.'.
func (b *Board) String() string {
	var s strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			s.WriteString(b.cells[y*b.width+x].String())
		}
		s.WriteString("\n")
	}
	return s.String()
}

// captureIfDead removes the group containing cell seed if it has no
// liberties and returns the number of stones removed.
func (b *Board) captureIfDead(seed int) int {
	group, alive := b.group(seed)
	if alive {
		return 0
	}
	for _, i := range group {
		b.cells[i] = types.Empty
	}
	return len(group)
}

// group flood-fills the same-colored group around seed. It stops as soon as
// a liberty is found, so the returned group is only complete when alive is
// false. Each cell is visited at most once.
func (b *Board) group(seed int) (group []int, alive bool) {
	color := b.cells[seed]
	if color == types.Empty {
		return nil, true
	}
	visited := make([]bool, len(b.cells))
	visited[seed] = true
	stack := []int{seed}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		group = append(group, i)
		for _, n := range b.neighbors(i) {
			switch {
			case b.cells[n] == types.Empty:
				return group, true
			case b.cells[n] == color && !visited[n]:
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}
	return group, false
}

// neighbors returns the on-board cells 4-adjacent to cell i.
func (b *Board) neighbors(i int) []int {
	x, y := i%b.width, i/b.width
	adj := make([]int, 0, 4)
	if y > 0 {
		adj = append(adj, i-b.width)
	}
	if y < b.height-1 {
		adj = append(adj, i+b.width)
	}
	if x > 0 {
		adj = append(adj, i-1)
	}
	if x < b.width-1 {
		adj = append(adj, i+1)
	}
	return adj
}

func (b *Board) inBounds(pos types.BoardPos) bool {
	return pos.X >= 0 && pos.X < b.width && pos.Y >= 0 && pos.Y < b.height
}

func (b *Board) index(pos types.BoardPos) int {
	return pos.Y*b.width + pos.X
}
