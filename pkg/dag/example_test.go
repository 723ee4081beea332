package dag_test

import (
	"fmt"

	"github.com/matzehuels/flowgrid/pkg/dag"
)

func ExampleDAG_SetRows() {
	g := dag.New()
	_ = g.AddNode("app")
	_ = g.AddNode("auth")
	_ = g.AddNode("cache")
	_ = g.AddEdge(dag.Edge{From: "app", To: "auth"})
	_ = g.AddEdge(dag.Edge{From: "app", To: "cache"})

	g.SetRows([][]string{{"app"}, g.Children("app")})

	fmt.Println("Rows:", g.RowCount())
	fmt.Println("Row 1:", dag.NodeIDs(g.NodesInRow(1)))
	// Output:
	// Rows: 2
	// Row 1: [auth cache]
}
