package walker

import (
	"errors"
	"testing"

	"goban-replay/goban"
	"goban-replay/sgf"
	"goban-replay/types"
)

// seqRand returns its values in order, then repeats the last one.
type seqRand struct {
	values []int
	calls  int
}

func (r *seqRand) Intn(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	i := r.calls
	if i >= len(r.values) {
		i = len(r.values) - 1
	}
	r.calls++
	return r.values[i] % n
}

func mustWalker(t *testing.T, text string, rng Rand) *Walker {
	t.Helper()
	coll, err := sgf.Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w, err := New(coll, rng)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func tick(t *testing.T, w *Walker, want State) {
	t.Helper()
	got, err := w.Tick()
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if got != want {
		t.Fatalf("Tick() = %v, want %v", got, want)
	}
}

func at(w *Walker, x, y int) types.Color {
	return w.Board().At(types.BoardPos{X: x, Y: y})
}

func TestNewNoRecords(t *testing.T) {
	if _, err := New(&sgf.Collection{}, &seqRand{}); !errors.Is(err, ErrNoRecords) {
		t.Errorf("New(empty) error = %v, want ErrNoRecords", err)
	}
	if _, err := New(nil, &seqRand{}); !errors.Is(err, ErrNoRecords) {
		t.Errorf("New(nil) error = %v, want ErrNoRecords", err)
	}
}

func TestTreeTraversal(t *testing.T) {
	w := mustWalker(t, "(;B[aa](;W[bb])(;W[cc]))", &seqRand{})
	if w.State() != StateNew {
		t.Fatalf("State() = %v, want new", w.State())
	}

	tick(t, w, StateOngoing) // start the record
	tick(t, w, StateOngoing) // B[aa]
	tick(t, w, StateEnded)   // W[bb], a leaf

	if got := at(w, 0, 0); got != types.Black {
		t.Errorf("(0,0) = %v, want black", got)
	}
	if got := at(w, 1, 1); got != types.White {
		t.Errorf("(1,1) = %v, want white", got)
	}
	if got := at(w, 2, 2); got != types.Empty {
		t.Errorf("(2,2) = %v, want empty: second variation must not be played", got)
	}
	if !w.Node().IsRoot() {
		t.Error("after the record ends the cursor should be on a record root")
	}

	tick(t, w, StateNew)
	if got := len(w.Board().Stones()); got != 0 {
		t.Errorf("restarted board has %d stones, want 0", got)
	}
	tick(t, w, StateOngoing)
}

func TestStateCycle(t *testing.T) {
	w := mustWalker(t, "(;SZ[9];B[aa])", &seqRand{})
	for i, want := range []State{StateOngoing, StateOngoing, StateEnded, StateNew, StateOngoing} {
		got, err := w.Tick()
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if got != want || w.State() != want {
			t.Errorf("tick %d: Tick() = %v, State() = %v, want %v", i, got, w.State(), want)
		}
	}
	if got := w.Board().MoveNumber(); got != 0 {
		t.Errorf("MoveNumber() = %d, want 0 on the fresh board", got)
	}
}

func TestBoardSizeFromRoot(t *testing.T) {
	tests := []struct {
		text          string
		width, height int
	}{
		{"(;GM[1])", 19, 19},
		{"(;SZ[9])", 9, 9},
		{"(;SZ[19:13])", 19, 13},
	}
	for _, tt := range tests {
		w := mustWalker(t, tt.text, &seqRand{})
		tick(t, w, StateOngoing)
		width, height := w.Board().Size()
		if width != tt.width || height != tt.height {
			t.Errorf("%s: board is %dx%d, want %dx%d", tt.text, width, height, tt.width, tt.height)
		}
	}
}

func TestPassHandling(t *testing.T) {
	t.Run("19x19", func(t *testing.T) {
		w := mustWalker(t, "(;SZ[19];B[tt];W[];B[aa])", &seqRand{})
		tick(t, w, StateOngoing)
		tick(t, w, StateOngoing) // root
		tick(t, w, StateOngoing) // B[tt] is a pass
		tick(t, w, StateOngoing) // W[]
		if got := len(w.Board().Stones()); got != 0 {
			t.Errorf("passes placed %d stones, want 0", got)
		}
		if got := w.Board().MoveNumber(); got != 0 {
			t.Errorf("MoveNumber() = %d, want 0 after passes", got)
		}
		tick(t, w, StateEnded)
		if got := w.Board().MoveNumber(); got != 1 {
			t.Errorf("MoveNumber() = %d, want 1", got)
		}
	})

	t.Run("20x20", func(t *testing.T) {
		w := mustWalker(t, "(;SZ[20];B[tt])", &seqRand{})
		tick(t, w, StateOngoing)
		tick(t, w, StateOngoing)
		tick(t, w, StateEnded)
		if got := at(w, 19, 19); got != types.Black {
			t.Errorf("(19,19) = %v, want black on a 20x20 board", got)
		}
	})
}

func TestApplyOrder(t *testing.T) {
	// Written out of order: MN, AE, AW, B. The move lands first, then the
	// setup stone, then AE clears the move, then MN overrides the counter.
	w := mustWalker(t, "(;SZ[9];MN[7]AE[aa]AW[bb]B[aa])", &seqRand{})
	tick(t, w, StateOngoing)
	tick(t, w, StateOngoing)
	tick(t, w, StateEnded)

	if got := at(w, 0, 0); got != types.Empty {
		t.Errorf("(0,0) = %v, want empty", got)
	}
	if got := at(w, 1, 1); got != types.White {
		t.Errorf("(1,1) = %v, want white", got)
	}
	if got := w.Board().MoveNumber(); got != 7 {
		t.Errorf("MoveNumber() = %d, want 7", got)
	}
}

func TestSetupCapture(t *testing.T) {
	w := mustWalker(t, "(;SZ[9]AW[aa];AB[ba][ab])", &seqRand{})
	tick(t, w, StateOngoing)
	tick(t, w, StateOngoing)
	tick(t, w, StateEnded)
	if got := at(w, 0, 0); got != types.Empty {
		t.Errorf("(0,0) = %v, want captured", got)
	}
	if got := w.Board().Captures(types.Black); got != 1 {
		t.Errorf("Captures(Black) = %d, want 1", got)
	}
	if got := w.Board().MoveNumber(); got != 0 {
		t.Errorf("MoveNumber() = %d, want 0 for setup stones", got)
	}
}

func TestTickErrorKeepsCursor(t *testing.T) {
	w := mustWalker(t, "(;SZ[9];B[aa];W[aa];B[bb])", &seqRand{})
	tick(t, w, StateOngoing)
	tick(t, w, StateOngoing)
	tick(t, w, StateOngoing)

	failing := w.Node().ID()
	state, err := w.Tick()
	if !errors.Is(err, goban.ErrInvalidMove) {
		t.Fatalf("Tick error = %v, want ErrInvalidMove", err)
	}
	if state != StateOngoing {
		t.Errorf("state = %v, want ongoing", state)
	}
	if w.Node().ID() != failing {
		t.Errorf("cursor moved to %d, want %d", w.Node().ID(), failing)
	}

	if got := w.Advance(); got != StateOngoing {
		t.Fatalf("Advance() = %v, want ongoing", got)
	}
	tick(t, w, StateEnded)
	if got := at(w, 1, 1); got != types.Black {
		t.Errorf("(1,1) = %v, want black", got)
	}
}

func TestAdvanceOutsideOngoing(t *testing.T) {
	w := mustWalker(t, "(;B[aa])", &seqRand{})
	before := w.Node().ID()
	if got := w.Advance(); got != StateNew {
		t.Errorf("Advance() = %v, want new", got)
	}
	if w.Node().ID() != before {
		t.Error("Advance moved the cursor in state new")
	}
}

func TestRecordSelection(t *testing.T) {
	text := "(;GN[zero];B[aa])(;GN[one]SZ[9];W[bb])(;GN[two];B[cc])"
	rng := &seqRand{values: []int{1, 2}}
	w := mustWalker(t, text, rng)

	name := func() string {
		p, ok := w.Record().Property("GN")
		if !ok {
			t.Fatal("record has no GN")
		}
		return p.(sgf.Text).Value
	}

	if got := name(); got != "one" {
		t.Fatalf("first record = %q, want one", got)
	}
	tick(t, w, StateOngoing)
	tick(t, w, StateOngoing)
	tick(t, w, StateEnded)
	if got := name(); got != "two" {
		t.Errorf("next record = %q, want two", got)
	}
	// The finished board stays visible until the next tick.
	if width, _ := w.Board().Size(); width != 9 {
		t.Errorf("board width = %d, want 9 until restart", width)
	}
	tick(t, w, StateNew)
	if width, _ := w.Board().Size(); width != 19 {
		t.Errorf("board width = %d, want 19 after restart", width)
	}
}
