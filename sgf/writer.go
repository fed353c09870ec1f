// Package sgf implements SGF FF[4] reading and writing for Go game records.
package sgf

import (
	"io"
	"strings"
)

// Write serializes every record of c, one record per line.
func Write(w io.Writer, c *Collection) error {
	_, err := io.WriteString(w, Serialize(c))
	return err
}

// Serialize returns the text form of every record of c. Parsing the result
// yields a collection equal to c.
func Serialize(c *Collection) string {
	var b strings.Builder
	for _, root := range c.Roots() {
		writeTree(&b, root)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatNode returns the text form of a single node, e.g. ";B[pd]C[hane]".
func FormatNode(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

// writeTree writes the sequence starting at n; a node with several children
// closes the sequence and opens one variation per child.
func writeTree(b *strings.Builder, n Node) {
	b.WriteString("(")
	for {
		writeNode(b, n)
		children := n.Children()
		if len(children) == 1 {
			n = children[0]
			continue
		}
		for _, child := range children {
			writeTree(b, child)
		}
		break
	}
	b.WriteString(")")
}

func writeNode(b *strings.Builder, n Node) {
	b.WriteString(";")
	for _, p := range n.Properties() {
		b.WriteString(p.Ident())
		for _, v := range p.Values() {
			b.WriteString("[")
			b.WriteString(escapeValue(v))
			b.WriteString("]")
		}
	}
}

var valueEscaper = strings.NewReplacer(`\`, `\\`, `]`, `\]`)

func escapeValue(v string) string {
	return valueEscaper.Replace(v)
}
