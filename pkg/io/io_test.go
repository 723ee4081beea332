package io

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/flowgrid/pkg/flowchart"
	"github.com/matzehuels/flowgrid/pkg/layout"
)

const sample = `graph LR
subgraph Backend
  API[API] --> DB[(Store)]
end
Client((User)) -.->|calls| API`

func TestRoundTrip(t *testing.T) {
	g := layout.Compute(flowchart.Parse(sample))

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() = %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() = %v", err)
	}

	a, _ := MarshalGraph(g)
	b, _ := MarshalGraph(got)
	if !bytes.Equal(a, b) {
		t.Errorf("round trip changed record:\n%s\n%s", a, b)
	}
	if n, ok := got.Node("DB"); !ok || n.Type != flowchart.ShapeCylinder {
		t.Errorf("Node(DB) = %+v, %v", n, ok)
	}
}

func TestWriteJSONEmptyCollections(t *testing.T) {
	g := &flowchart.Graph{Direction: flowchart.TopDown}

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"direction":"TD","nodes":[],"edges":[],"subgraphs":[]}`
	if string(data) != want {
		t.Errorf("MarshalGraph() = %s, want %s", data, want)
	}
	if g.Nodes != nil {
		t.Error("MarshalGraph modified its input")
	}
}

func TestMarshalGraphFields(t *testing.T) {
	g := layout.Compute(flowchart.Parse("graph TD\nA[Start] -->|go| B"))

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`"id":"A","text":"Start","type":"rectangle","x":0,"y":0,"width":150,"height":60`,
		`"from":"A","to":"B","label":"go","style":"solid"`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("record missing %s:\n%s", want, data)
		}
	}
}

func TestReadJSONDefaults(t *testing.T) {
	g, err := UnmarshalGraph([]byte(`{"nodes":[{"id":"a"}],"subgraphs":[{"id":"s-1","title":"S"}]}`))
	if err != nil {
		t.Fatalf("UnmarshalGraph() = %v", err)
	}
	if g.Direction != flowchart.DefaultDirection {
		t.Errorf("Direction = %q, want TD", g.Direction)
	}
	if g.Edges == nil || g.Subgraphs[0].Nodes == nil {
		t.Error("nil collections were not normalized")
	}
	if _, ok := g.Node("a"); !ok {
		t.Error("node index not rebuilt")
	}
}

func TestReadJSONLowercaseDirection(t *testing.T) {
	g, err := UnmarshalGraph([]byte(`{"direction":"rl","nodes":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	if g.Direction != flowchart.RightLeft {
		t.Errorf("Direction = %q, want RL", g.Direction)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"malformed", `{"nodes":`, nil},
		{"bad direction", `{"direction":"XY"}`, ErrInvalidDirection},
		{"duplicate", `{"nodes":[{"id":"a"},{"id":"a"}]}`, flowchart.ErrDuplicateNodeID},
		{"empty id", `{"nodes":[{"id":""}]}`, flowchart.ErrInvalidNodeID},
		{"null node", `{"nodes":[null]}`, flowchart.ErrInvalidNodeID},
		{"null subgraph", `{"subgraphs":[null]}`, ErrNullSubgraph},
		{"dangling edge", `{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":"b"}]}`, flowchart.ErrUnknownEdgeEndpoint},
		{"unknown member", `{"nodes":[{"id":"a"}],"subgraphs":[{"id":"s","nodes":["b"]}]}`, flowchart.ErrUnknownMember},
		{"id collision", `{"nodes":[{"id":"a"}],"subgraphs":[{"id":"a"}]}`, flowchart.ErrSubgraphIDCollision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.data))
			if err == nil {
				t.Fatal("ReadJSON() = nil, want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("ReadJSON() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUnmarshalGraph(t *testing.T) {
	g := layout.Compute(flowchart.Parse(sample))
	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph() = %v", err)
	}

	got, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph() = %v", err)
	}
	if got.NodeCount() != g.NodeCount() || got.EdgeCount() != g.EdgeCount() {
		t.Errorf("decoded %d nodes %d edges, want %d %d",
			got.NodeCount(), got.EdgeCount(), g.NodeCount(), g.EdgeCount())
	}
	if _, ok := got.Node("API"); !ok {
		t.Error("node index not rebuilt")
	}

	if _, err := UnmarshalGraph([]byte(`{"direction":"UP"}`)); err == nil {
		t.Error("UnmarshalGraph(bad direction) = nil, want error")
	}
}
