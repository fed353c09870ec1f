package ui

import (
	"testing"

	"goban-replay/types"
)

func TestPosLabel(t *testing.T) {
	tests := []struct {
		x, y, size int
		want       string
	}{
		{0, 18, 19, "A1"},
		{3, 15, 19, "D4"},
		{15, 3, 19, "Q16"},
		{8, 0, 19, "J19"}, // I is skipped
		{18, 18, 19, "T1"},
		{4, 4, 9, "E5"},
		{-1, -1, 19, "pass"},
		{19, 0, 19, "pass"},
	}
	for _, tt := range tests {
		got := PosLabel(types.BoardPos{X: tt.x, Y: tt.y}, tt.size, tt.size)
		if got != tt.want {
			t.Errorf("PosLabel(%d, %d, %d) = %q, want %q", tt.x, tt.y, tt.size, got, tt.want)
		}
	}
}

func TestColumnLabel(t *testing.T) {
	tests := []struct {
		x    int
		want string
	}{
		{0, "A"},
		{7, "H"},
		{8, "J"},
		{24, "Z"},
		{25, "AA"},
		{51, "BB"},
	}
	for _, tt := range tests {
		if got := ColumnLabel(tt.x); got != tt.want {
			t.Errorf("ColumnLabel(%d) = %q, want %q", tt.x, got, tt.want)
		}
	}
}

func TestRowLabel(t *testing.T) {
	if got := RowLabel(0, 13); got != "13" {
		t.Errorf("RowLabel(0, 13) = %q, want 13", got)
	}
	if got := RowLabel(12, 13); got != "1" {
		t.Errorf("RowLabel(12, 13) = %q, want 1", got)
	}
}
