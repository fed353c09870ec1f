// Package walker steps through a collection of game records one node per
// tick, replaying each node onto a board. When a record's main line runs
// out it picks another record at random and starts over.
package walker

import (
	"errors"

	"goban-replay/goban"
	"goban-replay/sgf"
	"goban-replay/types"
)

// State is the walker's position in its replay cycle.
type State int

const (
	// StateNew: a record has been chosen and its empty board is ready.
	StateNew State = iota
	// StateOngoing: nodes of the record are being applied.
	StateOngoing
	// StateEnded: the record's main line is done; the next tick starts another.
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateOngoing:
		return "ongoing"
	case StateEnded:
		return "ended"
	}
	return "unknown"
}

// Rand picks record indices. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

var ErrNoRecords = errors.New("no game records")

// Walker owns a cursor into a record collection and the board it is
// replaying onto.
type Walker struct {
	records *sgf.Collection
	rng     Rand
	cursor  sgf.NodeID
	state   State
	board   *goban.Board
}

// New creates a walker over records with a randomly chosen first record.
func New(records *sgf.Collection, rng Rand) (*Walker, error) {
	if records == nil || records.Len() == 0 {
		return nil, ErrNoRecords
	}
	w := &Walker{records: records, rng: rng, state: StateNew}
	w.cursor = w.pickRecord()
	board, err := newBoard(w.Record())
	if err != nil {
		return nil, err
	}
	w.board = board
	return w, nil
}

// Node returns the node the cursor points at.
func (w *Walker) Node() sgf.Node {
	return w.records.Node(w.cursor)
}

// Record returns the root of the record being replayed.
func (w *Walker) Record() sgf.Node {
	return w.Node().Record()
}

// State returns the current state.
func (w *Walker) State() State {
	return w.state
}

// Board returns the board being replayed onto. In StateEnded it still shows
// the final position of the finished record.
func (w *Walker) Board() goban.View {
	return w.board
}

// Tick performs one step. In StateEnded it sets up a fresh board sized from
// the next record's SZ and moves to StateNew; in StateNew it moves to
// StateOngoing. In StateOngoing it applies the current node and advances. If
// applying fails the error is returned as is and the cursor stays on the
// failing node.
func (w *Walker) Tick() (State, error) {
	switch w.state {
	case StateEnded:
		board, err := newBoard(w.Record())
		if err != nil {
			return w.state, err
		}
		w.board = board
		w.state = StateNew
		return w.state, nil
	case StateNew:
		w.state = StateOngoing
		return w.state, nil
	}
	if err := w.apply(w.Node()); err != nil {
		return w.state, err
	}
	return w.Advance(), nil
}

// Advance moves the cursor to the main-line child without applying the
// current node. At a leaf the state becomes StateEnded and another record is
// picked. Outside StateOngoing it does nothing.
func (w *Walker) Advance() State {
	if w.state != StateOngoing {
		return w.state
	}
	if child, ok := w.Node().FirstChild(); ok {
		w.cursor = child.ID()
		return w.state
	}
	w.state = StateEnded
	w.cursor = w.pickRecord()
	return w.state
}

// apply plays a node onto the board: moves first, then AB/AW, then AE,
// then MN, regardless of the order they were written in.
func (w *Walker) apply(n sgf.Node) error {
	props := n.Properties()
	for _, p := range props {
		m, ok := p.(sgf.Move)
		if !ok || w.isPass(m) {
			continue
		}
		if err := w.board.PlayStone(goban.Stone{Pos: m.Point.Pos(), Color: m.Color}); err != nil {
			return err
		}
	}
	for _, p := range props {
		s, ok := p.(sgf.Setup)
		if !ok || s.Color == types.Empty {
			continue
		}
		for _, pt := range s.Points {
			if err := w.board.AddStone(goban.Stone{Pos: pt.Pos(), Color: s.Color}); err != nil {
				return err
			}
		}
	}
	for _, p := range props {
		if s, ok := p.(sgf.Setup); ok && s.Color == types.Empty {
			for _, pt := range s.Points {
				w.board.ClearPoint(pt.Pos())
			}
		}
	}
	for _, p := range props {
		if num, ok := p.(sgf.Number); ok && num.ID == "MN" {
			w.board.SetMoveNumber(int(num.Value))
		}
	}
	return nil
}

// isPass reports whether m is a pass: either B[]/W[], or the old "tt"
// encoding on boards too small for tt to be a real point.
func (w *Walker) isPass(m sgf.Move) bool {
	if m.Pass {
		return true
	}
	width, height := w.board.Size()
	return m.Point == sgf.Point{X: 19, Y: 19} && width < 20 && height < 20
}

func (w *Walker) pickRecord() sgf.NodeID {
	return w.records.Root(w.rng.Intn(w.records.Len())).ID()
}

func newBoard(root sgf.Node) (*goban.Board, error) {
	width, height := sgf.DefaultSize, sgf.DefaultSize
	if p, ok := root.Property("SZ"); ok {
		if size, ok := p.(sgf.Size); ok {
			width, height = size.Width, size.Height
		}
	}
	return goban.New(width, height)
}
