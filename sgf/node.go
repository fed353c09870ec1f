package sgf

// NodeID indexes a node in its Collection.
type NodeID int

// NoNode is returned where a node is absent, e.g. the parent of a root.
const NoNode NodeID = -1

type nodeData struct {
	props    []Property
	parent   NodeID
	children []NodeID
}

// Collection is a parsed forest of game records. All nodes of all records
// live in one flat table; children and cursors are indices into it. A
// Collection is not modified once parsing returns, except by Extend.
type Collection struct {
	nodes []nodeData
	roots []NodeID
}

// Len returns the number of records in the collection.
func (c *Collection) Len() int {
	return len(c.roots)
}

// NodeCount returns the number of nodes across all records.
func (c *Collection) NodeCount() int {
	return len(c.nodes)
}

// Roots returns the root node of every record, in input order.
func (c *Collection) Roots() []Node {
	roots := make([]Node, len(c.roots))
	for i, id := range c.roots {
		roots[i] = Node{c: c, id: id}
	}
	return roots
}

// Root returns the root node of record i.
func (c *Collection) Root(i int) Node {
	return Node{c: c, id: c.roots[i]}
}

// Node returns the node with the given id.
func (c *Collection) Node(id NodeID) Node {
	return Node{c: c, id: id}
}

// Extend appends every record of o to c. Node ids of o are rebased, so
// nodes taken from o before the call must be looked up again in c.
func (c *Collection) Extend(o *Collection) {
	base := NodeID(len(c.nodes))
	rebase := func(id NodeID) NodeID {
		if id == NoNode {
			return NoNode
		}
		return id + base
	}
	for _, n := range o.nodes {
		children := make([]NodeID, len(n.children))
		for i, child := range n.children {
			children[i] = rebase(child)
		}
		c.nodes = append(c.nodes, nodeData{
			props:    n.props,
			parent:   rebase(n.parent),
			children: children,
		})
	}
	for _, root := range o.roots {
		c.roots = append(c.roots, rebase(root))
	}
}

// addNode appends a node below parent (NoNode for a record root).
func (c *Collection) addNode(parent NodeID, props []Property) NodeID {
	id := NodeID(len(c.nodes))
	c.nodes = append(c.nodes, nodeData{props: props, parent: parent})
	if parent == NoNode {
		c.roots = append(c.roots, id)
	} else {
		c.nodes[parent].children = append(c.nodes[parent].children, id)
	}
	return id
}

// Node is a read-only view of one position in a record.
type Node struct {
	c  *Collection
	id NodeID
}

// ID returns the node's index in its collection.
func (n Node) ID() NodeID {
	return n.id
}

func (n Node) data() *nodeData {
	return &n.c.nodes[n.id]
}

// Properties returns the node's properties in parse order.
func (n Node) Properties() []Property {
	return append([]Property(nil), n.data().props...)
}

// Property returns the first property with the given identifier.
func (n Node) Property(ident string) (Property, bool) {
	for _, p := range n.data().props {
		if p.Ident() == ident {
			return p, true
		}
	}
	return nil, false
}

// Children returns the node's children; the first child is the main line.
func (n Node) Children() []Node {
	ids := n.data().children
	children := make([]Node, len(ids))
	for i, id := range ids {
		children[i] = Node{c: n.c, id: id}
	}
	return children
}

// HasChildren returns true if the node has any children.
func (n Node) HasChildren() bool {
	return len(n.data().children) > 0
}

// FirstChild returns the main-line continuation. Returns false at a leaf.
func (n Node) FirstChild() (Node, bool) {
	ids := n.data().children
	if len(ids) == 0 {
		return Node{}, false
	}
	return Node{c: n.c, id: ids[0]}, true
}

// Parent returns the node's parent. Returns false at a record root.
func (n Node) Parent() (Node, bool) {
	p := n.data().parent
	if p == NoNode {
		return Node{}, false
	}
	return Node{c: n.c, id: p}, true
}

// IsRoot reports whether the node starts a record.
func (n Node) IsRoot() bool {
	return n.data().parent == NoNode
}

// Record returns the root of the record the node belongs to.
func (n Node) Record() Node {
	for !n.IsRoot() {
		n, _ = n.Parent()
	}
	return n
}

// VariationIndex returns which child of its parent the node is (0-based).
// Returns -1 at a root.
func (n Node) VariationIndex() int {
	parent, ok := n.Parent()
	if !ok {
		return -1
	}
	for i, id := range parent.data().children {
		if id == n.id {
			return i
		}
	}
	return -1
}

// Depth returns the number of nodes between the record root and n.
func (n Node) Depth() int {
	depth := 0
	for !n.IsRoot() {
		n, _ = n.Parent()
		depth++
	}
	return depth
}
