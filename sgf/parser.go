package sgf

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// parser holds the state of a single left-to-right scan.
type parser struct {
	text string
	pos  int
	coll *Collection
}

// Parse reads a collection of game records. Any structural mismatch aborts
// the whole text with a *ParseError.
func Parse(text string) (*Collection, error) {
	p := &parser{text: text, coll: &Collection{}}
	for {
		p.skipWhitespace()
		if p.eof() {
			break
		}
		if p.text[p.pos] != '(' {
			return nil, p.errorf(ErrInvalidSgf, nil)
		}
		p.pos++
		if err := p.parseGameTree(NoNode); err != nil {
			return nil, err
		}
	}
	return p.coll, nil
}

// parseGameTree reads a sequence and its variations up to the closing ')'.
// The opening '(' has been consumed.
func (p *parser) parseGameTree(parent NodeID) error {
	p.skipWhitespace()
	if p.eof() || p.text[p.pos] != ';' {
		return p.errorf(ErrInvalidGameTree, nil)
	}
	p.pos++
	last, err := p.parseNode(parent)
	if err != nil {
		return err
	}

	variations := false
	for {
		p.skipWhitespace()
		if p.eof() {
			return p.errorf(ErrInvalidGameTree, fmt.Errorf("unclosed game tree"))
		}
		switch p.text[p.pos] {
		case ')':
			p.pos++
			return nil
		case ';':
			if variations {
				return p.errorf(ErrInvalidGameTree, fmt.Errorf("node after variation"))
			}
			p.pos++
			if last, err = p.parseNode(last); err != nil {
				return err
			}
		case '(':
			variations = true
			p.pos++
			if err := p.parseGameTree(last); err != nil {
				return err
			}
		default:
			return p.errorf(ErrInvalidGameTree, nil)
		}
	}
}

// parseNode reads the properties following a ';' and attaches the node to
// parent.
func (p *parser) parseNode(parent NodeID) (NodeID, error) {
	var props []Property
	for {
		p.skipWhitespace()
		if p.eof() {
			break
		}
		c := p.text[p.pos]
		if isUpper(c) {
			prop, err := p.parseProperty()
			if err != nil {
				return NoNode, err
			}
			props = append(props, prop)
			continue
		}
		if c == ';' || c == '(' || c == ')' {
			break
		}
		return NoNode, p.errorf(ErrInvalidNode, fmt.Errorf("unexpected %q", c))
	}
	return p.coll.addNode(parent, props), nil
}

func (p *parser) parseProperty() (Property, error) {
	start := p.pos
	for !p.eof() && isUpper(p.text[p.pos]) {
		p.pos++
	}
	ident := p.text[start:p.pos]

	var values []string
	for {
		p.skipWhitespace()
		if p.eof() || p.text[p.pos] != '[' {
			break
		}
		p.pos++
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, p.errorf(ErrInvalidProperty, fmt.Errorf("%s has no value", ident))
	}

	prop, err := NewProperty(ident, values)
	if err != nil {
		return nil, p.errorAt(start, ErrInvalidProperty, err)
	}
	return prop, nil
}

// parseValue reads up to the first unescaped ']'. The opening '[' has been
// consumed.
func (p *parser) parseValue() (string, error) {
	start := p.pos
	var b strings.Builder
	escaped := false
	for ; !p.eof(); p.pos++ {
		c := p.text[p.pos]
		switch {
		case escaped:
			escaped = false
			b.WriteByte(c)
		case c == '\\':
			escaped = true
		case c == ']':
			p.pos++
			v := b.String()
			if !utf8.ValidString(v) {
				return "", p.errorAt(start, ErrInvalidString, nil)
			}
			return v, nil
		default:
			b.WriteByte(c)
		}
	}
	return "", p.errorAt(start, ErrInvalidProperty, fmt.Errorf("unterminated value"))
}

func (p *parser) eof() bool {
	return p.pos >= len(p.text)
}

func (p *parser) skipWhitespace() {
	for !p.eof() {
		switch p.text[p.pos] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) errorf(kind, detail error) error {
	return p.errorAt(p.pos, kind, detail)
}

// errorAt builds a ParseError with the line and column of byte offset pos.
func (p *parser) errorAt(pos int, kind, detail error) error {
	if pos > len(p.text) {
		pos = len(p.text)
	}
	before := p.text[:pos]
	line := strings.Count(before, "\n") + 1
	col := pos - strings.LastIndexByte(before, '\n')
	return &ParseError{Kind: kind, Line: line, Col: col, Err: detail}
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
