package dot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/flowgrid/pkg/flowchart"
	"github.com/matzehuels/flowgrid/pkg/layout"
)

func TestToDOT(t *testing.T) {
	g := flowchart.Parse(`graph LR
subgraph Storage
  DB[(Postgres)]
end
A[Start] -->|ok| B{Check}
B -.-> DB
B ==> C((Done))`)

	out := ToDOT(g, Options{})
	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		"subgraph cluster_0 {",
		`label="Storage";`,
		`"DB" [label="Postgres", shape=cylinder];`,
		`"A" [label="Start", shape=box];`,
		`"B" [label="Check", shape=diamond];`,
		`"C" [label="Done", shape=circle];`,
		`"A" -> "B" [label="ok"];`,
		`"B" -> "DB" [style=dotted];`,
		`"B" -> "C" [penwidth=3];`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, out)
		}
	}
	if strings.Count(out, `"DB" [`) != 1 {
		t.Errorf("DB declared more than once:\n%s", out)
	}
}

func TestToDOTRankdir(t *testing.T) {
	tests := map[flowchart.Direction]string{
		flowchart.TopDown:   "TB",
		flowchart.TopBottom: "TB",
		flowchart.LeftRight: "LR",
		flowchart.RightLeft: "RL",
		flowchart.BottomTop: "BT",
		"":                  "TB",
	}
	for dir, want := range tests {
		g := flowchart.New()
		g.Direction = dir
		if out := ToDOT(g, Options{}); !strings.Contains(out, "rankdir="+want+";") {
			t.Errorf("direction %q: missing rankdir=%s", dir, want)
		}
	}
}

func TestToDOTQuoting(t *testing.T) {
	g := flowchart.Parse(`graph TD
A[say "hi"] --> B`)
	out := ToDOT(g, Options{})
	if !strings.Contains(out, `label="say \"hi\""`) {
		t.Errorf("label not escaped:\n%s", out)
	}
}

func TestToDOTPinned(t *testing.T) {
	g := layout.Compute(flowchart.Parse("graph TD\nA-->B"))
	out := ToDOT(g, Options{Pinned: true})
	for _, want := range []string{`pos="75,-30!"`, `pos="75,-190!"`, "fixedsize=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("ToDOT(pinned) missing %q\n%s", want, out)
		}
	}

	if out := ToDOT(flowchart.Parse("graph TD\nA-->B"), Options{Pinned: true}); strings.Contains(out, "pos=") {
		t.Error("unplaced nodes should not be pinned")
	}
}

func TestMarshal(t *testing.T) {
	ctx := context.Background()
	g := layout.Compute(flowchart.Parse("graph TD\nsubgraph S\nA-->B\nend\nB-.->|x| C"))

	for _, pinned := range []bool{false, true} {
		out, err := Marshal(ctx, g, Options{Pinned: pinned})
		if err != nil {
			t.Fatalf("Marshal(pinned=%v) = %v", pinned, err)
		}
		if string(out) != ToDOT(g, Options{Pinned: pinned}) {
			t.Errorf("Marshal(pinned=%v) differs from ToDOT", pinned)
		}
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"valid", "digraph G { a -> b; }", nil},
		{"truncated", "digraph { a -> ", ErrInvalidDOT},
		{"unbalanced", "digraph G { a -> b; ", ErrInvalidDOT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := check(context.Background(), tt.text)
			if !errors.Is(err, tt.want) {
				t.Errorf("check() = %v, want %v", err, tt.want)
			}
		})
	}
}
