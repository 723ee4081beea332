package dag

import (
	"errors"
	"slices"
	"testing"
)

func build(t *testing.T, ids []string, edges ...Edge) *DAG {
	t.Helper()
	g := New()
	for _, id := range ids {
		if err := g.AddNode(id); err != nil {
			t.Fatalf("AddNode(%q) = %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%v) = %v", e, err)
		}
	}
	return g
}

func TestAddNodeErrors(t *testing.T) {
	g := New()
	if err := g.AddNode(""); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(\"\") = %v, want ErrInvalidNodeID", err)
	}
	_ = g.AddNode("a")
	if err := g.AddNode("a"); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(dup) = %v, want ErrDuplicateNodeID", err)
	}
}

func TestAddEdgeErrors(t *testing.T) {
	g := build(t, []string{"a"})
	if err := g.AddEdge(Edge{From: "x", To: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge(unknown from) = %v", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge(unknown to) = %v", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "a"}); err != nil {
		t.Errorf("self-loop AddEdge() = %v, want nil", err)
	}
}

func TestInsertionOrder(t *testing.T) {
	ids := []string{"z", "m", "a", "q"}
	g := build(t, ids, Edge{From: "q", To: "m"}, Edge{From: "q", To: "z"})

	if got := NodeIDs(g.Nodes()); !slices.Equal(got, ids) {
		t.Errorf("Nodes() = %v, want %v", got, ids)
	}
	if got := NodeIDs(g.Sources()); !slices.Equal(got, []string{"a", "q"}) {
		t.Errorf("Sources() = %v, want [a q]", got)
	}
	if got := g.Children("q"); !slices.Equal(got, []string{"m", "z"}) {
		t.Errorf("Children(q) = %v, want [m z]", got)
	}
	if g.InDegree("z") != 1 || g.InDegree("q") != 0 {
		t.Errorf("degrees: in(z)=%d in(q)=%d", g.InDegree("z"), g.InDegree("q"))
	}
}

func TestSetRows(t *testing.T) {
	g := build(t, []string{"a", "b", "c", "d"})
	g.SetRows([][]string{{"a"}, {"c", "b", "ghost"}})

	if g.RowCount() != 2 {
		t.Fatalf("RowCount() = %d, want 2", g.RowCount())
	}
	if got := NodeIDs(g.NodesInRow(1)); !slices.Equal(got, []string{"c", "b"}) {
		t.Errorf("NodesInRow(1) = %v, want [c b]", got)
	}
	b, _ := g.Node("b")
	if b.Row != 1 || b.Order != 1 {
		t.Errorf("b = row %d order %d, want 1, 1", b.Row, b.Order)
	}
	d, _ := g.Node("d")
	if d.Row != -1 || d.Order != -1 {
		t.Errorf("unplaced d = row %d order %d, want -1, -1", d.Row, d.Order)
	}
	if g.NodesInRow(5) != nil || g.NodesInRow(-1) != nil {
		t.Error("NodesInRow out of range should be nil")
	}
}

func TestHasCycle(t *testing.T) {
	tests := []struct {
		name  string
		edges []Edge
		want  bool
	}{
		{"empty", nil, false},
		{"chain", []Edge{{"a", "b"}, {"b", "c"}}, false},
		{"diamond", []Edge{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}, false},
		{"loop", []Edge{{"a", "b"}, {"b", "c"}, {"c", "a"}}, true},
		{"self", []Edge{{"d", "d"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, []string{"a", "b", "c", "d"}, tt.edges...)
			if got := g.HasCycle(); got != tt.want {
				t.Errorf("HasCycle() = %v, want %v", got, tt.want)
			}
		})
	}
}
