// Package dag provides a directed graph organized into rows (layers) for
// layered diagram layouts.
//
// # Overview
//
// The layout engine copies a parsed flowchart's adjacency into a [DAG],
// computes a layering, and records it with [DAG.SetRows]. Each node then
// carries its row and its position inside that row.
//
//	g := dag.New()
//	_ = g.AddNode("app")
//	_ = g.AddNode("lib")
//	_ = g.AddEdge(dag.Edge{From: "app", To: "lib"})
//	g.SetRows([][]string{{"app"}, {"lib"}})
//
// # Ordering
//
// Everything is insertion ordered: [DAG.Nodes], [DAG.Sources],
// [DAG.Children] and [DAG.NodesInRow] never depend on map iteration, which
// keeps layouts reproducible.
//
// # Cycles
//
// The name is historical. Flowcharts contain loops, so [DAG.AddEdge] accepts
// any edge between existing nodes and [DAG.HasCycle] reports whether the
// graph contains a directed cycle.
package dag
