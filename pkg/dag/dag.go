package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Node is a vertex with an assigned row (layer) and a position inside it.
// Row and Order are -1 until [DAG.SetRows] places the node.
type Node struct {
	ID    string
	Row   int
	Order int
}

// Edge is a directed connection between two node IDs.
type Edge struct {
	From string
	To   string
}

// DAG is a directed graph indexed by rows for layered layouts.
//
// Unlike a strict DAG it tolerates cycles: diagrams routinely contain
// feedback loops and the layering treats them with a root fallback.
// All accessors return nodes in insertion order, so every traversal is
// deterministic. The zero value is not usable; use [New].
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	order    []*Node
	outgoing map[string][]string // nodeID -> children IDs
	incoming map[string]int      // nodeID -> number of incoming edges
	rows     [][]*Node
}

// New creates an empty graph.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string]int),
	}
}

// AddNode appends a node with the given ID.
func (d *DAG) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[id]; exists {
		return ErrDuplicateNodeID
	}
	n := &Node{ID: id, Row: -1, Order: -1}
	d.nodes[id] = n
	d.order = append(d.order, n)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Parallel edges and self-loops are allowed.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To]++
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not found.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// graph's own nodes.
func (d *DAG) Nodes() []*Node { return slices.Clone(d.order) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.order) }

// Children returns the targets of the node's outgoing edges in edge order.
// The returned slice should not be modified.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// InDegree returns the number of incoming edges to the node.
func (d *DAG) InDegree(id string) int { return d.incoming[id] }

// Sources returns nodes with no incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, n := range d.order {
		if d.InDegree(n.ID) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// SetRows replaces the row index. rows[i] lists the IDs of row i in their
// within-row order; unknown IDs are ignored. Nodes not listed keep Row and
// Order at -1.
func (d *DAG) SetRows(rows [][]string) {
	for _, n := range d.order {
		n.Row, n.Order = -1, -1
	}
	d.rows = make([][]*Node, len(rows))
	for r, ids := range rows {
		for _, id := range ids {
			n, ok := d.nodes[id]
			if !ok {
				continue
			}
			n.Row, n.Order = r, len(d.rows[r])
			d.rows[r] = append(d.rows[r], n)
		}
	}
}

// NodesInRow returns the nodes of a row in within-row order, or nil when
// the row does not exist.
func (d *DAG) NodesInRow(row int) []*Node {
	if row < 0 || row >= len(d.rows) {
		return nil
	}
	return d.rows[row]
}

// RowCount returns the number of rows set by [DAG.SetRows].
func (d *DAG) RowCount() int { return len(d.rows) }

// HasCycle reports whether the graph contains a directed cycle, using
// depth-first search with white/gray/black coloring.
func (d *DAG) HasCycle() bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				if visit(child) {
					return true
				}
			case gray:
				return true
			}
		}
		color[id] = black
		return false
	}

	for _, n := range d.order {
		if color[n.ID] == white && visit(n.ID) {
			return true
		}
	}
	return false
}

// NodeIDs extracts the ID from each node in a slice.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
