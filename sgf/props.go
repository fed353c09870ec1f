package sgf

import (
	"math"
	"strconv"
	"strings"

	"goban-replay/types"
)

// Property is one typed, identifier-tagged datum of a node. The set of
// implementations is closed: Move, Setup, Turn, Flag, Emphasis, Text, Number,
// Real, Size, Markup, Labels and Unknown.
type Property interface {
	// Ident returns the property identifier, e.g. "B" or "SZ".
	Ident() string
	// Values returns the raw value strings the property serializes to.
	Values() []string

	isProperty()
}

// Double is an emphasis value: 1 is normal, 2 is emphasized.
type Double int

const (
	DoubleNormal     Double = 1
	DoubleEmphasized Double = 2
)

func (d Double) String() string {
	return strconv.Itoa(int(d))
}

// Move is a B or W move. Pass is set for the empty value B[].
type Move struct {
	Color types.Color
	Point Point
	Pass  bool
}

func (m Move) Ident() string { return m.Color.String() }

func (m Move) Values() []string {
	if m.Pass {
		return []string{""}
	}
	return []string{m.Point.String()}
}

// Setup places (AB, AW) or removes (AE, Color Empty) stones.
type Setup struct {
	Color  types.Color
	Points []Point
}

func (s Setup) Ident() string {
	switch s.Color {
	case types.Black:
		return "AB"
	case types.White:
		return "AW"
	}
	return "AE"
}

func (s Setup) Values() []string { return pointValues(s.Points) }

// Turn is PL, the player to move next.
type Turn struct {
	Color types.Color
}

func (Turn) Ident() string      { return "PL" }
func (t Turn) Values() []string { return []string{t.Color.String()} }

// Flag is a property that carries no value: KO, DO or IT.
type Flag struct {
	ID string
}

func (f Flag) Ident() string  { return f.ID }
func (Flag) Values() []string { return []string{""} }

// Emphasis is a Double-valued annotation such as TE, BM or GB.
type Emphasis struct {
	ID    string
	Value Double
}

func (e Emphasis) Ident() string    { return e.ID }
func (e Emphasis) Values() []string { return []string{e.Value.String()} }

// Text is a free-text property such as C, PB or RE.
type Text struct {
	ID    string
	Value string
}

func (t Text) Ident() string    { return t.ID }
func (t Text) Values() []string { return []string{t.Value} }

// Number is an integer property such as MN, HA or FF.
type Number struct {
	ID    string
	Value int64
}

func (n Number) Ident() string    { return n.ID }
func (n Number) Values() []string { return []string{strconv.FormatInt(n.Value, 10)} }

// Real is a floating point property such as KM, TM or BL.
type Real struct {
	ID    string
	Value float64
}

func (r Real) Ident() string    { return r.ID }
func (r Real) Values() []string { return []string{strconv.FormatFloat(r.Value, 'f', -1, 64)} }

// Size is SZ, the board dimensions.
type Size struct {
	Width  int
	Height int
}

func (Size) Ident() string { return "SZ" }

func (s Size) Values() []string {
	if s.Width == s.Height {
		return []string{strconv.Itoa(s.Width)}
	}
	return []string{strconv.Itoa(s.Width) + ":" + strconv.Itoa(s.Height)}
}

// Markup is a point-list property that does not touch the board: CR, MA, SL,
// SQ, TR, DD and VW. DD and VW may be empty.
type Markup struct {
	ID     string
	Points []Point
}

func (m Markup) Ident() string { return m.ID }

func (m Markup) Values() []string {
	if len(m.Points) == 0 {
		return []string{""}
	}
	return pointValues(m.Points)
}

// Label is one LB entry.
type Label struct {
	Point Point
	Text  string
}

// Labels is LB, text labels placed on points.
type Labels struct {
	Labels []Label
}

func (Labels) Ident() string { return "LB" }

func (l Labels) Values() []string {
	values := make([]string, len(l.Labels))
	for i, lb := range l.Labels {
		values[i] = lb.Point.String() + ":" + lb.Text
	}
	return values
}

// Unknown keeps an unrecognized property verbatim.
type Unknown struct {
	ID  string
	Raw []string
}

func (u Unknown) Ident() string    { return u.ID }
func (u Unknown) Values() []string { return append([]string(nil), u.Raw...) }

func (Move) isProperty()     {}
func (Setup) isProperty()    {}
func (Turn) isProperty()     {}
func (Flag) isProperty()     {}
func (Emphasis) isProperty() {}
func (Text) isProperty()     {}
func (Number) isProperty()   {}
func (Real) isProperty()     {}
func (Size) isProperty()     {}
func (Markup) isProperty()   {}
func (Labels) isProperty()   {}
func (Unknown) isProperty()  {}

type decoder func(ident string, values []string) (Property, error)

var decoders = map[string]decoder{
	// Move properties
	"B":  decodeMove(types.Black),
	"W":  decodeMove(types.White),
	"KO": decodeFlag,
	"MN": decodeNumber(math.MinInt64, math.MaxInt64),

	// Setup properties
	"AB": decodeSetup(types.Black),
	"AW": decodeSetup(types.White),
	"AE": decodeSetup(types.Empty),
	"PL": decodeTurn,

	// Node annotation properties
	"C":  decodeText,
	"DM": decodeEmphasis,
	"GB": decodeEmphasis,
	"GW": decodeEmphasis,
	"HO": decodeEmphasis,
	"N":  decodeText,
	"UC": decodeEmphasis,
	"V":  decodeReal,

	// Move annotation properties
	"BM": decodeEmphasis,
	"DO": decodeFlag,
	"IT": decodeFlag,
	"TE": decodeEmphasis,

	// Markup properties
	"CR": decodeMarkup(false),
	"MA": decodeMarkup(false),
	"SL": decodeMarkup(false),
	"SQ": decodeMarkup(false),
	"TR": decodeMarkup(false),
	"DD": decodeMarkup(true),
	"LB": decodeLabels,

	// Root properties
	"AP": decodeText,
	"CA": decodeText,
	"FF": decodeNumber(1, 4),
	"GM": decodeNumber(1, 1), // only Go
	"ST": decodeNumber(0, 3),
	"SZ": decodeSize,

	// Game info properties
	"HA": decodeNumber(2, math.MaxInt64),
	"KM": decodeReal,
	"AN": decodeText,
	"BR": decodeText,
	"BT": decodeText,
	"CP": decodeText,
	"DT": decodeText,
	"EV": decodeText,
	"GN": decodeText,
	"GC": decodeText,
	"ON": decodeText,
	"OT": decodeText,
	"PB": decodeText,
	"PC": decodeText,
	"PW": decodeText,
	"RE": decodeText,
	"RO": decodeText,
	"RU": decodeText,
	"SO": decodeText,
	"TM": decodeReal,
	"US": decodeText,
	"WR": decodeText,
	"WT": decodeText,

	// Timing properties
	"BL": decodeReal,
	"OB": decodeNumber(math.MinInt64, math.MaxInt64),
	"OW": decodeNumber(math.MinInt64, math.MaxInt64),
	"WL": decodeReal,

	// Miscellaneous properties
	"PM": decodeNumber(1, 2),
	"VW": decodeMarkup(true),
}

// NewProperty builds a typed property from an identifier and its raw values,
// checking arity and value domain. Unrecognized identifiers never fail.
func NewProperty(ident string, values []string) (Property, error) {
	decode, ok := decoders[ident]
	if !ok {
		return Unknown{ID: ident, Raw: append([]string(nil), values...)}, nil
	}
	return decode(ident, values)
}

func singleValue(ident string, values []string) (string, error) {
	if len(values) != 1 {
		return "", propertyError(ident, "want exactly one value, got %d", len(values))
	}
	return values[0], nil
}

// noValue accepts both an absent value and the single empty value "[]",
// which is how a valueless property is written.
func noValue(ident string, values []string) error {
	if len(values) == 0 || (len(values) == 1 && values[0] == "") {
		return nil
	}
	return propertyError(ident, "takes no value")
}

func decodeMove(color types.Color) decoder {
	return func(ident string, values []string) (Property, error) {
		v, err := singleValue(ident, values)
		if err != nil {
			return nil, err
		}
		if v == "" {
			return Move{Color: color, Pass: true}, nil
		}
		p, err := ParsePoint(v)
		if err != nil {
			return nil, propertyError(ident, "%v", err)
		}
		return Move{Color: color, Point: p}, nil
	}
}

func decodeSetup(color types.Color) decoder {
	return func(ident string, values []string) (Property, error) {
		if len(values) == 0 {
			return nil, propertyError(ident, "want at least one point")
		}
		points, err := parsePointList(values)
		if err != nil {
			return nil, propertyError(ident, "%v", err)
		}
		return Setup{Color: color, Points: points}, nil
	}
}

func decodeMarkup(allowEmpty bool) decoder {
	return func(ident string, values []string) (Property, error) {
		if allowEmpty && noValue(ident, values) == nil {
			return Markup{ID: ident}, nil
		}
		if len(values) == 0 {
			return nil, propertyError(ident, "want at least one point")
		}
		points, err := parsePointList(values)
		if err != nil {
			return nil, propertyError(ident, "%v", err)
		}
		return Markup{ID: ident, Points: points}, nil
	}
}

func decodeLabels(ident string, values []string) (Property, error) {
	if len(values) == 0 {
		return nil, propertyError(ident, "want at least one label")
	}
	labels := make([]Label, 0, len(values))
	for _, v := range values {
		pt, text, ok := strings.Cut(v, ":")
		if !ok {
			return nil, propertyError(ident, "label %q has no text", v)
		}
		p, err := ParsePoint(pt)
		if err != nil {
			return nil, propertyError(ident, "%v", err)
		}
		labels = append(labels, Label{Point: p, Text: text})
	}
	return Labels{Labels: labels}, nil
}

func decodeTurn(ident string, values []string) (Property, error) {
	v, err := singleValue(ident, values)
	if err != nil {
		return nil, err
	}
	switch v {
	case "B":
		return Turn{Color: types.Black}, nil
	case "W":
		return Turn{Color: types.White}, nil
	}
	return nil, propertyError(ident, "color %q", v)
}

func decodeFlag(ident string, values []string) (Property, error) {
	if err := noValue(ident, values); err != nil {
		return nil, err
	}
	return Flag{ID: ident}, nil
}

func decodeEmphasis(ident string, values []string) (Property, error) {
	v, err := singleValue(ident, values)
	if err != nil {
		return nil, err
	}
	switch v {
	case "1":
		return Emphasis{ID: ident, Value: DoubleNormal}, nil
	case "2":
		return Emphasis{ID: ident, Value: DoubleEmphasized}, nil
	}
	return nil, propertyError(ident, "double must be 1 or 2, got %q", v)
}

func decodeText(ident string, values []string) (Property, error) {
	v, err := singleValue(ident, values)
	if err != nil {
		return nil, err
	}
	return Text{ID: ident, Value: v}, nil
}

func decodeNumber(min, max int64) decoder {
	return func(ident string, values []string) (Property, error) {
		v, err := singleValue(ident, values)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, propertyError(ident, "number %q", v)
		}
		if n < min || n > max {
			return nil, propertyError(ident, "%d out of range [%d,%d]", n, min, max)
		}
		return Number{ID: ident, Value: n}, nil
	}
}

func decodeReal(ident string, values []string) (Property, error) {
	v, err := singleValue(ident, values)
	if err != nil {
		return nil, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, propertyError(ident, "real %q", v)
	}
	return Real{ID: ident, Value: f}, nil
}

func decodeSize(ident string, values []string) (Property, error) {
	v, err := singleValue(ident, values)
	if err != nil {
		return nil, err
	}
	w, h, composed := strings.Cut(v, ":")
	if !composed {
		h = w
	}
	width, err := sizeAxis(w)
	if err != nil {
		return nil, propertyError(ident, "%v", err)
	}
	height, err := sizeAxis(h)
	if err != nil {
		return nil, propertyError(ident, "%v", err)
	}
	return Size{Width: width, Height: height}, nil
}

func sizeAxis(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 1 || n > MaxAxis {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func pointValues(points []Point) []string {
	values := make([]string, len(points))
	for i, p := range points {
		values[i] = p.String()
	}
	return values
}
