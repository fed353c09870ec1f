package sgf

import (
	"strings"

	"goban-replay/types"
)

// Result is a decoded RE value.
type Result struct {
	Winner types.Color // Empty for draws, voids and unknown results
	Margin string      // "5.5", "R", "T", "F", "?" or "" for draws
	Raw    string
}

// ParseResult decodes an RE value such as "W+5.5", "B+R", "Jigo" or "0".
// Values it does not recognise yield an unknown result that keeps Raw.
func ParseResult(s string) Result {
	o := strings.TrimSpace(s)
	r := Result{Raw: s}
	if !isValidSGFResult(o) || len(o) < 3 || o[1] != '+' {
		return r
	}
	switch o[0] {
	case 'B':
		r.Winner = types.Black
	case 'W':
		r.Winner = types.White
	}
	r.Margin = o[2:]
	return r
}

// IsDraw reports whether the result is a draw.
func (r Result) IsDraw() bool {
	o := strings.TrimSpace(r.Raw)
	return o == "0" || o == "Draw" || o == "Jigo"
}

// String describes the result for display, e.g. "White wins by 5.5 points".
func (r Result) String() string {
	if r.IsDraw() {
		return "Draw"
	}
	if r.Winner == types.Empty {
		switch strings.TrimSpace(r.Raw) {
		case "", "?":
			return "Unknown"
		case "Void":
			return "Void"
		}
		return r.Raw
	}
	winner := "Black"
	if r.Winner == types.White {
		winner = "White"
	}
	switch r.Margin {
	case "R", "Resign":
		return winner + " wins by resignation"
	case "T", "Time":
		return winner + " wins on time"
	case "F", "Forfeit":
		return winner + " wins by forfeit"
	case "?":
		return winner + " wins"
	}
	return winner + " wins by " + r.Margin + " points"
}

// isValidSGFResult checks if a string is a well-formed SGF result.
func isValidSGFResult(s string) bool {
	if s == "?" || s == "Jigo" || s == "Draw" || s == "Void" || s == "0" {
		return true
	}
	if len(s) < 3 {
		return false
	}
	if (s[0] != 'B' && s[0] != 'W') || s[1] != '+' {
		return false
	}
	rest := s[2:]
	switch rest {
	case "R", "Resign", "T", "Time", "F", "Forfeit", "?":
		return true
	}
	// Check for numeric score
	dotSeen := false
	for _, ch := range rest {
		if ch == '.' {
			if dotSeen {
				return false
			}
			dotSeen = true
		} else if ch < '0' || ch > '9' {
			return false
		}
	}
	return len(rest) > 0
}
