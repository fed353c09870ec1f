package player

import (
	"fmt"
	"strings"
	"time"
)

// Policy decides what happens when a node cannot be applied to the board.
type Policy int

const (
	// Skip logs the failing node and moves on to its main-line child.
	Skip Policy = iota
	// Abort stops playback and returns the error.
	Abort
)

func (p Policy) String() string {
	if p == Abort {
		return "abort"
	}
	return "skip"
}

// ParsePolicy reads "skip" or "abort", ignoring case.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip", "":
		return Skip, nil
	case "abort":
		return Abort, nil
	}
	return Skip, fmt.Errorf("unknown error policy %q", s)
}

// Options holds the playback timing and error policy.
type Options struct {
	MoveDelay time.Duration // between nodes of a record
	EndDelay  time.Duration // after the last node, before the next record
	Policy    Policy
}

// DefaultOptions returns the standard playback pace.
func DefaultOptions() Options {
	return Options{
		MoveDelay: 5 * time.Second,
		EndDelay:  10 * time.Second,
		Policy:    Skip,
	}
}
