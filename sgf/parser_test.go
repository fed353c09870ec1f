package sgf

import (
	"errors"
	"testing"

	"goban-replay/types"
)

func mustParse(t *testing.T, text string) *Collection {
	t.Helper()
	c, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return c
}

func TestParseSequence(t *testing.T) {
	c := mustParse(t, "(;GM[1]SZ[9];B[ee];W[cc];B[gg])")
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	if c.NodeCount() != 4 {
		t.Fatalf("NodeCount() = %d, want 4", c.NodeCount())
	}

	n := c.Root(0)
	var moves []Move
	for {
		if p, ok := n.Property("B"); ok {
			moves = append(moves, p.(Move))
		}
		if p, ok := n.Property("W"); ok {
			moves = append(moves, p.(Move))
		}
		next, ok := n.FirstChild()
		if !ok {
			break
		}
		if len(n.Children()) != 1 {
			t.Fatalf("node %d has %d children, want 1", n.ID(), len(n.Children()))
		}
		n = next
	}

	want := []Move{
		{Color: types.Black, Point: Point{4, 4}},
		{Color: types.White, Point: Point{2, 2}},
		{Color: types.Black, Point: Point{6, 6}},
	}
	if len(moves) != len(want) {
		t.Fatalf("got %d moves, want %d", len(moves), len(want))
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("move %d = %+v, want %+v", i, moves[i], want[i])
		}
	}
}

func TestParseVariations(t *testing.T) {
	c := mustParse(t, "(;B[aa](;W[bb];B[dd])(;W[cc]))")
	root := c.Root(0)
	children := root.Children()
	if len(children) != 2 {
		t.Fatalf("root has %d children, want 2", len(children))
	}
	first, _ := children[0].Property("W")
	second, _ := children[1].Property("W")
	if first.Values()[0] != "bb" || second.Values()[0] != "cc" {
		t.Errorf("variations = %v, %v; want bb, cc", first.Values(), second.Values())
	}
	if children[1].VariationIndex() != 1 {
		t.Errorf("VariationIndex() = %d, want 1", children[1].VariationIndex())
	}
	leaf, ok := children[0].FirstChild()
	if !ok {
		t.Fatal("first variation should continue")
	}
	if leaf.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", leaf.Depth())
	}
	if leaf.Record().ID() != root.ID() {
		t.Errorf("Record() = %d, want root %d", leaf.Record().ID(), root.ID())
	}
}

func TestParseCollection(t *testing.T) {
	c := mustParse(t, "  (;GN[a])\n\n(;GN[b];B[aa])\t(;GN[c])\n")
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	for i, want := range []string{"a", "b", "c"} {
		p, ok := c.Root(i).Property("GN")
		if !ok || p.(Text).Value != want {
			t.Errorf("record %d GN = %v, want %q", i, p, want)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	c := mustParse(t, " \n ")
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestParseWhitespace(t *testing.T) {
	c := mustParse(t, "( ;\n B [aa]\n C[hi] ; W[bb] )")
	if c.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", c.NodeCount())
	}
	if _, ok := c.Root(0).Property("C"); !ok {
		t.Error("root should carry C")
	}
}

func TestParseEscapes(t *testing.T) {
	c := mustParse(t, `(;C[\]ab\\c])`)
	p, ok := c.Root(0).Property("C")
	if !ok {
		t.Fatal("missing C")
	}
	if got := p.(Text).Value; got != `]ab\c` {
		t.Errorf("C = %q, want %q", got, `]ab\c`)
	}
}

func TestParseKeepsDuplicates(t *testing.T) {
	c := mustParse(t, "(;C[first]C[second]XX[a])")
	props := c.Root(0).Properties()
	if len(props) != 3 {
		t.Fatalf("got %d properties, want 3", len(props))
	}
	p, _ := c.Root(0).Property("C")
	if got := p.(Text).Value; got != "first" {
		t.Errorf("Property(C) = %q, want first", got)
	}
	if u, ok := props[2].(Unknown); !ok || u.Ident() != "XX" {
		t.Errorf("props[2] = %#v, want Unknown XX", props[2])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind error
		line int
		col  int
	}{
		{"text before tree", "x(;B[aa])", ErrInvalidSgf, 1, 1},
		{"no node", "()", ErrInvalidGameTree, 1, 2},
		{"unclosed tree", "(;B[aa]", ErrInvalidGameTree, 1, 8},
		{"node after variation", "(;B[aa](;W[bb]);B[cc])", ErrInvalidGameTree, 1, 16},
		{"lowercase ident", "(;b[aa])", ErrInvalidNode, 1, 3},
		{"missing value", "(;B;W[aa])", ErrInvalidProperty, 1, 4},
		{"unterminated value", "(;C[abc", ErrInvalidProperty, 1, 5},
		{"two moves", "(;B[aa][bb])", ErrInvalidProperty, 1, 3},
		{"flag with value", "(;KO[x])", ErrInvalidProperty, 1, 3},
		{"bad point", "(;\nW[a])", ErrInvalidProperty, 2, 1},
		{"bad size", "(;SZ[0])", ErrInvalidProperty, 1, 3},
		{"not utf-8", "(;C[\xff])", ErrInvalidString, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("Parse error = %v, want %v", err, tt.kind)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %T is not a *ParseError", err)
			}
			if perr.Line != tt.line || perr.Col != tt.col {
				t.Errorf("position = %d:%d, want %d:%d", perr.Line, perr.Col, tt.line, tt.col)
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse("(;B[aa][bb])")
	if err == nil {
		t.Fatal("expected error")
	}
	want := "1:3: invalid property B: want exactly one value, got 2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
