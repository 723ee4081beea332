package dot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flowgrid/pkg/flowchart"
)

// ErrInvalidDOT is returned when Graphviz cannot parse generated DOT.
var ErrInvalidDOT = errors.New("invalid DOT")

// Options configures DOT generation.
type Options struct {
	// Pinned emits each node's computed position as a pinned pos attribute,
	// so Graphviz engines that honor it (neato, fdp) reproduce the grid.
	// Positions are converted to points with the y axis flipped.
	Pinned bool
}

var shapes = map[flowchart.Shape][]string{
	flowchart.ShapeRectangle:  {"shape=box"},
	flowchart.ShapeStadium:    {"shape=box", `style="rounded"`},
	flowchart.ShapeDiamond:    {"shape=diamond"},
	flowchart.ShapeCircle:     {"shape=circle"},
	flowchart.ShapeSubroutine: {"shape=box", "peripheries=2"},
	flowchart.ShapeCylinder:   {"shape=cylinder"},
	flowchart.ShapeHexagon:    {"shape=hexagon"},
	flowchart.ShapeAsymmetric: {"shape=cds"},
}

var rankdirs = map[flowchart.Direction]string{
	flowchart.TopDown:   "TB",
	flowchart.TopBottom: "TB",
	flowchart.LeftRight: "LR",
	flowchart.RightLeft: "RL",
	flowchart.BottomTop: "BT",
}

// ToDOT converts a flowchart graph to Graphviz DOT.
//
// Subgraphs become clusters named cluster_<index>. A node listed in
// several subgraphs is emitted in the first one only, since DOT clusters
// cannot share nodes.
func ToDOT(g *flowchart.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir(g.Direction))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	placed := make(map[string]bool, len(g.Nodes))
	for i, s := range g.Subgraphs {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", s.Title)
		for _, id := range s.Nodes {
			n, ok := g.Node(id)
			if !ok || placed[id] {
				continue
			}
			placed[id] = true
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
		}
		buf.WriteString("  }\n")
	}

	for _, n := range g.Nodes {
		if placed[n.ID] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if attrs := edgeAttrs(e); len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func rankdir(d flowchart.Direction) string {
	if r, ok := rankdirs[d]; ok {
		return r
	}
	return "TB"
}

func nodeAttrs(n *flowchart.Node, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", n.Text)}
	if s, ok := shapes[n.Type]; ok {
		attrs = append(attrs, s...)
	} else {
		attrs = append(attrs, shapes[flowchart.ShapeRectangle]...)
	}
	if opts.Pinned && n.Width > 0 {
		// width and height are in inches; the y axis points up.
		cx := n.X + n.Width/2
		cy := -(n.Y + n.Height/2)
		attrs = append(attrs,
			fmt.Sprintf(`pos="%g,%g!"`, cx, cy),
			fmt.Sprintf("width=%g", n.Width/72),
			fmt.Sprintf("height=%g", n.Height/72),
			"fixedsize=true",
		)
	}
	return attrs
}

func edgeAttrs(e flowchart.Edge) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	switch e.Style {
	case flowchart.StyleDotted:
		attrs = append(attrs, "style=dotted")
	case flowchart.StyleThick:
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

// Marshal returns [ToDOT] of g after Graphviz has parsed it. Output that
// Graphviz rejects is reported as ErrInvalidDOT instead of being returned.
func Marshal(ctx context.Context, g *flowchart.Graph, opts Options) ([]byte, error) {
	text := ToDOT(g, opts)
	if err := check(ctx, text); err != nil {
		return nil, err
	}
	return []byte(text), nil
}

func check(ctx context.Context, text string) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(text))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDOT, err)
	}
	return g.Close()
}
