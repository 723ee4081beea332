// Package flowchart parses Mermaid-style flowchart source into a typed graph.
//
// # Overview
//
// [Parse] reads a document line by line and extracts the declared direction,
// node declarations, edges and flat grouping regions ("subgraphs"). It is
// deliberately forgiving: statements it does not understand are skipped and
// never produce an error, because the resulting [Graph] is the only input a
// downstream renderer receives.
//
//	g := flowchart.Parse("graph LR\n  A[Start] --> B{Check}\n  B -->|yes| C((Done))")
//	fmt.Println(g.Direction, g.NodeCount(), g.EdgeCount()) // LR 3 2
//
// # Syntax
//
// Bracket pairs select the node shape:
//
//	A[text]    rectangle      A[[text]]  subroutine
//	A(text)    stadium        A[(text)]  cylinder
//	A{text}    diamond        A{{text}}  hexagon
//	A((text))  circle         A>text]    asymmetric
//
// Arrows select the edge style: -->, --- (solid), -.-> (dotted), ==> (thick).
// Labels are written as A -->|label| B or inline as A -- label --> B.
// Lines starting with %% are comments, and ; separates statements.
//
// # Forgiving rules
//
// Edges may reference identifiers that were never declared; the missing
// endpoints become rectangles whose text is their ID. A later declaration
// replaces a node's text and shape only when its text is non-empty and
// differs from the ID, so a bare re-reference never erases a label.
//
// Regions are flat. "subgraph" opens a region that receives every node
// created or updated until "end"; opening another region before "end" moves
// membership to the new region.
package flowchart
