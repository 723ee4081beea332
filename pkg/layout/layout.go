package layout

import (
	"github.com/matzehuels/flowgrid/pkg/dag"
	"github.com/matzehuels/flowgrid/pkg/flowchart"
)

// Compute lays out g with [DefaultConfig] and returns it.
func Compute(g *flowchart.Graph) *flowchart.Graph {
	_ = Apply(g, DefaultConfig())
	return g
}

// Apply assigns coordinates and sizes to every node of g and bounding boxes
// to every subgraph with members. g is modified in place; node, edge and
// subgraph identities are preserved. The only error is an invalid cfg, in
// which case g is left untouched.
//
// Apply must not run concurrently with other access to g.
func Apply(g *flowchart.Graph, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	d := Layering(g)
	placeNodes(g, d, cfg)
	placeSubgraphs(g, cfg)
	return nil
}

// Layers returns the node IDs of g grouped by BFS depth, each layer in
// first-discovery order. Nodes unreachable from the roots are appended to
// the last layer in insertion order.
func Layers(g *flowchart.Graph) [][]string {
	d := Layering(g)
	if d.RowCount() == 0 {
		return nil
	}
	out := make([][]string, d.RowCount())
	for r := range out {
		out[r] = dag.NodeIDs(d.NodesInRow(r))
	}
	return out
}

// Layering mirrors g into a [dag.DAG] whose rows hold the layers computed
// by [Layers]. g is not modified.
func Layering(g *flowchart.Graph) *dag.DAG {
	d := buildDAG(g)
	d.SetRows(layers(d))
	return d
}

// buildDAG mirrors g into an adjacency structure. Duplicate node IDs keep
// their first occurrence and edges with unknown endpoints are skipped.
func buildDAG(g *flowchart.Graph) *dag.DAG {
	d := dag.New()
	for _, n := range g.Nodes {
		_ = d.AddNode(n.ID)
	}
	for _, e := range g.Edges {
		_ = d.AddEdge(dag.Edge{From: e.From, To: e.To})
	}
	return d
}

func layers(d *dag.DAG) [][]string {
	nodes := d.Nodes()
	if len(nodes) == 0 {
		return nil
	}

	roots := dag.NodeIDs(d.Sources())
	if len(roots) == 0 {
		roots = []string{nodes[0].ID}
	}

	assigned := make(map[string]bool, len(nodes))
	for _, id := range roots {
		assigned[id] = true
	}

	out := [][]string{roots}
	for current := roots; ; {
		var next []string
		for _, id := range current {
			for _, child := range d.Children(id) {
				if !assigned[child] {
					assigned[child] = true
					next = append(next, child)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		out = append(out, next)
		current = next
	}

	last := len(out) - 1
	for _, n := range nodes {
		if !assigned[n.ID] {
			out[last] = append(out[last], n.ID)
		}
	}
	return out
}

func placeNodes(g *flowchart.Graph, d *dag.DAG, cfg Config) {
	total := d.RowCount()
	stepX := cfg.NodeWidth + cfg.HorizontalGap
	stepY := cfg.NodeHeight + cfg.VerticalGap

	for _, n := range g.Nodes {
		dn, ok := d.Node(n.ID)
		if !ok || dn.Row < 0 {
			continue
		}
		layer := dn.Row
		if g.Direction.IsReversed() {
			layer = total - 1 - dn.Row
		}

		if g.Direction.IsHorizontal() {
			n.X = float64(layer) * stepX
			n.Y = float64(dn.Order) * stepY
		} else {
			n.X = float64(dn.Order) * stepX
			n.Y = float64(layer) * stepY
		}
		n.Width = cfg.NodeWidth
		n.Height = cfg.NodeHeight
	}
}

func placeSubgraphs(g *flowchart.Graph, cfg Config) {
	for _, s := range g.Subgraphs {
		var box Rect
		for _, id := range s.Nodes {
			if n, ok := g.Node(id); ok {
				box = box.Union(nodeRect(n))
			}
		}
		if box.Empty() {
			s.X, s.Y, s.Width, s.Height = 0, 0, 0, 0
			continue
		}
		box = box.Expand(cfg.Padding)
		s.X, s.Y, s.Width, s.Height = box.X, box.Y, box.Width, box.Height
	}
}

// Bounds returns the extent covering every placed node and subgraph box.
// It is the zero Rect for a graph without geometry.
func Bounds(g *flowchart.Graph) Rect {
	var r Rect
	for _, n := range g.Nodes {
		r = r.Union(nodeRect(n))
	}
	for _, s := range g.Subgraphs {
		if s.HasBounds() {
			r = r.Union(Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height})
		}
	}
	return r
}

func nodeRect(n *flowchart.Node) Rect {
	return Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}
