package sgf

import (
	"fmt"
	"strings"

	"goban-replay/types"
)

// MaxAxis is the number of distinct values a point axis can encode.
const MaxAxis = 52

// Point is a coordinate pair as encoded in a record: 'a'-'z' map to 0-25 and
// 'A'-'Z' to 26-51 on each axis.
type Point struct {
	X int
	Y int
}

// Pos converts the point to a board position.
func (p Point) Pos() types.BoardPos {
	return types.BoardPos{X: p.X, Y: p.Y}
}

// String returns the two-letter encoding, e.g. (3,4) -> "de".
func (p Point) String() string {
	return string([]byte{axisLetter(p.X), axisLetter(p.Y)})
}

// ParsePoint decodes a two-letter point value.
func ParsePoint(s string) (Point, error) {
	if len(s) != 2 {
		return Point{}, fmt.Errorf("point %q: want two letters", s)
	}
	x, ok := letterAxis(s[0])
	if !ok {
		return Point{}, fmt.Errorf("point %q: bad letter %q", s, s[0])
	}
	y, ok := letterAxis(s[1])
	if !ok {
		return Point{}, fmt.Errorf("point %q: bad letter %q", s, s[1])
	}
	return Point{X: x, Y: y}, nil
}

// parsePointList decodes a list of point values, expanding compressed
// rectangles ("aa:cc") into every point they cover.
func parsePointList(values []string) ([]Point, error) {
	var points []Point
	for _, v := range values {
		from, to, composed := strings.Cut(v, ":")
		if !composed {
			p, err := ParsePoint(v)
			if err != nil {
				return nil, err
			}
			points = append(points, p)
			continue
		}
		a, err := ParsePoint(from)
		if err != nil {
			return nil, err
		}
		b, err := ParsePoint(to)
		if err != nil {
			return nil, err
		}
		// Either pair of opposite corners may be given.
		if a.X > b.X {
			a.X, b.X = b.X, a.X
		}
		if a.Y > b.Y {
			a.Y, b.Y = b.Y, a.Y
		}
		for y := a.Y; y <= b.Y; y++ {
			for x := a.X; x <= b.X; x++ {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points, nil
}

func letterAxis(c byte) (int, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 26, true
	}
	return 0, false
}

func axisLetter(n int) byte {
	if n < 26 {
		return byte('a' + n)
	}
	return byte('A' + n - 26)
}
