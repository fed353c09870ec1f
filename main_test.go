package main

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"goban-replay/player"
	"goban-replay/sgf"
	"goban-replay/types"
	"goban-replay/walker"
)

func TestRunHeadless(t *testing.T) {
	c, err := sgf.Parse("(;SZ[5]PB[Shusaku]PW[Gennan];B[aa];W[bb])")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w, err := walker.New(c, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("walker.New: %v", err)
	}
	log := zap.NewNop().Sugar()
	p := player.New(w, player.Options{MoveDelay: time.Millisecond, EndDelay: time.Millisecond}, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	if err := runHeadless(ctx, p, &out, 1, time.Millisecond, log); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("runHeadless did not stop after one record")
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d frames, want 3:\n%s", len(lines), out.String())
	}
	var last headlessFrame
	if err := json.Unmarshal([]byte(lines[2]), &last); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if last.Black != "Shusaku" || last.White != "Gennan" {
		t.Errorf("players = %q/%q, want Shusaku/Gennan", last.Black, last.White)
	}
	if last.Node != ";W[bb]" {
		t.Errorf("node = %q, want ;W[bb]", last.Node)
	}
	if last.Board.MoveNumber != 2 {
		t.Errorf("move number = %d, want 2", last.Board.MoveNumber)
	}
	if last.Board.Board[1][1] != types.White || last.Board.Board[0][0] != types.Black {
		t.Errorf("board = %v, want B at aa and W at bb", last.Board.Board)
	}
}

func TestPollInterval(t *testing.T) {
	tests := []struct {
		delay time.Duration
		want  time.Duration
	}{
		{5 * time.Second, 100 * time.Millisecond},
		{20 * time.Millisecond, 20 * time.Millisecond},
		{time.Microsecond, time.Millisecond},
	}
	for _, tt := range tests {
		if got := pollInterval(player.Options{MoveDelay: tt.delay}); got != tt.want {
			t.Errorf("pollInterval(%v) = %v, want %v", tt.delay, got, tt.want)
		}
	}
}

func TestStatusLine(t *testing.T) {
	e := player.Event{Board: *types.NewBoardState(9, 9)}
	e.Info.PlayerBlack = "Lee"
	e.Board.MoveNumber = 78
	got := statusLine(e)
	if !strings.Contains(got, "Lee vs ? · move 78") {
		t.Errorf("statusLine = %q", got)
	}
}
