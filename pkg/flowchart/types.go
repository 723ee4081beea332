package flowchart

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrDuplicateNodeID is returned by [Graph.AddNode] and [Graph.Validate]
	// when two nodes share an identifier.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidNodeID is returned by [Graph.AddNode] for an empty identifier.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrUnknownEdgeEndpoint is returned by [Graph.Validate] when an edge
	// references a node that is not in the graph.
	ErrUnknownEdgeEndpoint = errors.New("edge endpoint not in node set")

	// ErrUnknownMember is returned by [Graph.Validate] when a subgraph lists
	// a node that is not in the graph.
	ErrUnknownMember = errors.New("subgraph member not in node set")

	// ErrSubgraphIDCollision is returned by [Graph.Validate] when a subgraph
	// ID equals a node ID or another subgraph ID.
	ErrSubgraphIDCollision = errors.New("subgraph ID collides with another identifier")
)

// =============================================================================
// Direction
// =============================================================================

// Direction is the document-wide flow orientation.
type Direction string

const (
	TopDown   Direction = "TD"
	TopBottom Direction = "TB"
	LeftRight Direction = "LR"
	RightLeft Direction = "RL"
	BottomTop Direction = "BT"

	// DefaultDirection applies when the document declares none.
	DefaultDirection = TopDown
)

// ParseDirection normalizes s (any case) to a Direction.
// The second result is false if s is not one of the five tokens.
func ParseDirection(s string) (Direction, bool) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	return d, d.Valid()
}

// Valid reports whether d is one of the five known directions.
func (d Direction) Valid() bool {
	switch d {
	case TopDown, TopBottom, LeftRight, RightLeft, BottomTop:
		return true
	}
	return false
}

// IsHorizontal reports whether layers advance along the x axis.
func (d Direction) IsHorizontal() bool { return d == LeftRight || d == RightLeft }

// IsReversed reports whether the layer axis is mirrored.
func (d Direction) IsReversed() bool { return d == RightLeft || d == BottomTop }

// =============================================================================
// Shapes and line styles
// =============================================================================

// Shape is the visual kind of a node, derived from its bracket pair.
type Shape string

const (
	ShapeRectangle  Shape = "rectangle"  // A[text]
	ShapeStadium    Shape = "stadium"    // A(text)
	ShapeDiamond    Shape = "diamond"    // A{text}
	ShapeCircle     Shape = "circle"     // A((text))
	ShapeSubroutine Shape = "subroutine" // A[[text]]
	ShapeCylinder   Shape = "cylinder"   // A[(text)]
	ShapeHexagon    Shape = "hexagon"    // A{{text}}
	ShapeAsymmetric Shape = "asymmetric" // A>text]
)

// LineStyle is the stroke of an edge, derived from its arrow token.
type LineStyle string

const (
	StyleSolid  LineStyle = "solid"
	StyleDotted LineStyle = "dotted"
	StyleThick  LineStyle = "thick"
)

// =============================================================================
// Node, Edge, Subgraph
// =============================================================================

// Node is a declared or auto-created diagram vertex. Geometry fields are
// zero until the layout engine assigns them.
type Node struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Type   Shape   `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Edge is a directed connection between two node IDs.
type Edge struct {
	From  string    `json:"from"`
	To    string    `json:"to"`
	Label string    `json:"label"`
	Style LineStyle `json:"style"`
}

// Subgraph is a flat grouping region. Nodes lists member IDs in first-seen
// order without duplicates. The bounding box is zero for regions without
// members.
type Subgraph struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Nodes  []string `json:"nodes"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
}

// HasBounds reports whether layout assigned a bounding box.
func (s *Subgraph) HasBounds() bool { return s.Width > 0 && s.Height > 0 }

func (s *Subgraph) addMember(id string) {
	if !slices.Contains(s.Nodes, id) {
		s.Nodes = append(s.Nodes, id)
	}
}

// =============================================================================
// Graph
// =============================================================================

// Graph is the typed result of parsing one diagram document.
//
// Nodes are kept in insertion order; the layout engine depends on that order
// for its root fallback and for disconnected nodes. Graph is not safe for
// concurrent mutation.
type Graph struct {
	Direction Direction   `json:"direction"`
	Nodes     []*Node     `json:"nodes"`
	Edges     []Edge      `json:"edges"`
	Subgraphs []*Subgraph `json:"subgraphs"`

	index map[string]*Node
}

// New returns an empty graph with the default direction.
func New() *Graph {
	return &Graph{
		Direction: DefaultDirection,
		Nodes:     []*Node{},
		Edges:     []Edge{},
		Subgraphs: []*Subgraph{},
		index:     make(map[string]*Node),
	}
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	g.ensureIndex()
	n, ok := g.index[id]
	return n, ok
}

// AddNode appends n. It fails on an empty or already used ID.
func (g *Graph) AddNode(n *Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	g.ensureIndex()
	if _, exists := g.index[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	g.Nodes = append(g.Nodes, n)
	g.index[n.ID] = n
	return nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Direction: g.Direction,
		Nodes:     make([]*Node, len(g.Nodes)),
		Edges:     slices.Clone(g.Edges),
		Subgraphs: make([]*Subgraph, len(g.Subgraphs)),
		index:     make(map[string]*Node, len(g.Nodes)),
	}
	if c.Edges == nil {
		c.Edges = []Edge{}
	}
	for i, n := range g.Nodes {
		cp := *n
		c.Nodes[i] = &cp
		c.index[cp.ID] = &cp
	}
	for i, s := range g.Subgraphs {
		cp := *s
		cp.Nodes = slices.Clone(s.Nodes)
		if cp.Nodes == nil {
			cp.Nodes = []string{}
		}
		c.Subgraphs[i] = &cp
	}
	return c
}

// Validate checks the structural invariants a parsed graph guarantees:
// unique node IDs, edge endpoints and subgraph members inside the node set,
// and subgraph IDs disjoint from node IDs and from each other.
func (g *Graph) Validate() error {
	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return ErrInvalidNodeID
		}
		if seen[n.ID] {
			return ErrDuplicateNodeID
		}
		seen[n.ID] = true
	}
	for _, e := range g.Edges {
		if !seen[e.From] || !seen[e.To] {
			return ErrUnknownEdgeEndpoint
		}
	}
	sgIDs := make(map[string]bool, len(g.Subgraphs))
	for _, s := range g.Subgraphs {
		if seen[s.ID] || sgIDs[s.ID] {
			return ErrSubgraphIDCollision
		}
		sgIDs[s.ID] = true
		for _, id := range s.Nodes {
			if !seen[id] {
				return ErrUnknownMember
			}
		}
	}
	return nil
}

// Reindex rebuilds the ID lookup after Nodes was replaced wholesale,
// for example by JSON decoding.
func (g *Graph) Reindex() {
	g.index = make(map[string]*Node, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := g.index[n.ID]; !dup {
			g.index[n.ID] = n
		}
	}
}

func (g *Graph) ensureIndex() {
	if g.index == nil || len(g.index) != len(g.Nodes) {
		g.Reindex()
	}
}
