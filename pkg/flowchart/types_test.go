package flowchart

import (
	"errors"
	"testing"
)

func TestDirectionAxes(t *testing.T) {
	tests := []struct {
		dir        Direction
		horizontal bool
		reversed   bool
	}{
		{TopDown, false, false},
		{TopBottom, false, false},
		{LeftRight, true, false},
		{RightLeft, true, true},
		{BottomTop, false, true},
	}

	for _, tt := range tests {
		if got := tt.dir.IsHorizontal(); got != tt.horizontal {
			t.Errorf("%s.IsHorizontal() = %v, want %v", tt.dir, got, tt.horizontal)
		}
		if got := tt.dir.IsReversed(); got != tt.reversed {
			t.Errorf("%s.IsReversed() = %v, want %v", tt.dir, got, tt.reversed)
		}
	}
}

func TestParseDirectionToken(t *testing.T) {
	if d, ok := ParseDirection(" rl "); !ok || d != RightLeft {
		t.Errorf("ParseDirection(rl) = %q, %v", d, ok)
	}
	if _, ok := ParseDirection("DOWN"); ok {
		t.Error("ParseDirection(DOWN) should fail")
	}
}

func TestAddNode(t *testing.T) {
	g := New()
	if err := g.AddNode(&Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode() = %v", err)
	}
	if err := g.AddNode(&Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate AddNode() = %v, want ErrDuplicateNodeID", err)
	}
	if err := g.AddNode(&Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty AddNode() = %v, want ErrInvalidNodeID", err)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Graph {
		g := New()
		_ = g.AddNode(&Node{ID: "a"})
		_ = g.AddNode(&Node{ID: "b"})
		g.Edges = append(g.Edges, Edge{From: "a", To: "b"})
		g.Subgraphs = append(g.Subgraphs, &Subgraph{ID: "sg-1", Nodes: []string{"a"}})
		return g
	}

	tests := []struct {
		name   string
		mutate func(*Graph)
		want   error
	}{
		{"valid", func(*Graph) {}, nil},
		{"duplicate node", func(g *Graph) { g.Nodes = append(g.Nodes, &Node{ID: "a"}) }, ErrDuplicateNodeID},
		{"dangling edge", func(g *Graph) { g.Edges = append(g.Edges, Edge{From: "a", To: "zz"}) }, ErrUnknownEdgeEndpoint},
		{"unknown member", func(g *Graph) { g.Subgraphs[0].Nodes = append(g.Subgraphs[0].Nodes, "zz") }, ErrUnknownMember},
		{"subgraph id is node id", func(g *Graph) { g.Subgraphs[0].ID = "b" }, ErrSubgraphIDCollision},
		{"repeated subgraph id", func(g *Graph) {
			g.Subgraphs = append(g.Subgraphs, &Subgraph{ID: "sg-1"})
		}, ErrSubgraphIDCollision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := base()
			tt.mutate(g)
			if err := g.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestClone(t *testing.T) {
	g := Parse("subgraph s\nA[Alpha] --> B\nend")
	c := g.Clone()

	c.Nodes[0].X = 99
	c.Nodes[0].Text = "changed"
	c.Subgraphs[0].Nodes[0] = "B"
	c.Edges[0].Label = "x"

	if n, _ := g.Node("A"); n.X != 0 || n.Text != "Alpha" {
		t.Errorf("clone mutation leaked into node: %+v", n)
	}
	if g.Subgraphs[0].Nodes[0] != "A" {
		t.Error("clone mutation leaked into subgraph members")
	}
	if g.Edges[0].Label != "" {
		t.Error("clone mutation leaked into edges")
	}
	if n, ok := c.Node("A"); !ok || n.X != 99 {
		t.Error("clone index should point at cloned nodes")
	}
}

func TestNodeLookupAfterReplace(t *testing.T) {
	g := New()
	g.Nodes = []*Node{{ID: "x"}, {ID: "y"}}
	if _, ok := g.Node("y"); !ok {
		t.Error("Node() should reindex after Nodes is replaced")
	}
}
