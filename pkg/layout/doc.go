// Package layout places a parsed flowchart on a layered grid.
//
// # Algorithm
//
// Nodes are grouped into layers by breadth-first depth from the roots, the
// nodes without incoming edges. A graph without roots (one big cycle)
// starts from its first node instead, so layering always terminates. Within
// a layer nodes keep the order in which the search discovered them. Nodes
// the search never reaches are appended to the last layer.
//
// Every node occupies a cell of [Config.NodeWidth] x [Config.NodeHeight],
// and cells are separated by the horizontal and vertical gaps. For TD and
// TB layers advance down the y axis; for LR and RL they advance along x.
// RL and BT mirror the layer axis only, never the order within a layer.
//
//	graph TD          A (0,0)
//	  A --> B         B (0,160)   C (230,160)
//	  A --> C
//
// Subgraphs with members get the smallest box covering their members,
// expanded by [Config.Padding] on every side.
//
// # Determinism
//
// The output depends only on node insertion order and edge order; no map
// iteration reaches the coordinates, so the same graph always produces the
// same numbers.
package layout
