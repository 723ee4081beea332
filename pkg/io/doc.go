// Package io reads and writes the laid-out diagram record as JSON.
//
// # Overview
//
// The record is the only contract between this module and a renderer. It
// mirrors [flowchart.Graph] field for field:
//
//	{
//	  "direction": "LR",
//	  "nodes": [
//	    {"id": "A", "text": "Start", "type": "rectangle",
//	     "x": 0, "y": 0, "width": 150, "height": 60}
//	  ],
//	  "edges": [
//	    {"from": "A", "to": "B", "label": "", "style": "solid"}
//	  ],
//	  "subgraphs": [
//	    {"id": "3f0c...", "title": "Backend", "nodes": ["A"],
//	     "x": -30, "y": -30, "width": 210, "height": 120}
//	  ]
//	}
//
// Empty collections are always written as [] rather than null, and a
// subgraph without members carries a zero box.
//
// # Import
//
// [ReadJSON] and [UnmarshalGraph] decode a record and check the same
// invariants the parser guarantees (unique node IDs, edge endpoints and
// subgraph members in the node set). A missing direction falls back to TD.
//
// # Export
//
// [WriteJSON] writes indented JSON. [MarshalGraph] returns
// the compact encoding used for cache entries.
//
// [flowchart.Graph]: github.com/matzehuels/flowgrid/pkg/flowchart.Graph
package io
