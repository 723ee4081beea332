// Package dot exports flowchart graphs as Graphviz DOT.
//
// [ToDOT] maps the flowchart direction to rankdir, node shapes to the
// closest Graphviz shape, edge styles to style or penwidth attributes and
// subgraphs to clusters:
//
//	rectangle  box              subroutine  box, peripheries=2
//	stadium    box, rounded     cylinder    cylinder
//	diamond    diamond          hexagon     hexagon
//	circle     circle           asymmetric  cds
//
// With [Options.Pinned] the computed layout is carried along as pinned
// node positions. [Marshal] additionally parses the output with the
// Graphviz build from [github.com/goccy/go-graphviz] before handing it out.
package dot
