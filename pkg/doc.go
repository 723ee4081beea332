// Package pkg provides the core libraries of flowgrid.
//
// # Overview
//
// Flowgrid turns Mermaid-style flowchart text into a typed graph and places
// every node on a layered grid. The pkg directory is organized by stage:
//
//  1. [flowchart] - Parsing and the diagram data model
//  2. [dag] and [layout] - Breadth-first layering and coordinate assignment
//  3. [io] and [dot] - Record encoding (JSON) and Graphviz DOT export
//  4. [pipeline] - Orchestration (parse → layout → render) with caching
//
// # Architecture
//
//	Flowchart text
//	      ↓
//	 [flowchart] (Parse: nodes, edges, subgraphs, direction)
//	      ↓
//	 [dag] (insertion-ordered adjacency, rows)
//	      ↓
//	 [layout] (BFS layers, node positions, subgraph boxes)
//	      ↓
//	 JSON record or DOT
//
// # Quick Start
//
//	import (
//	    "os"
//
//	    "github.com/matzehuels/flowgrid/pkg/flowchart"
//	    flowio "github.com/matzehuels/flowgrid/pkg/io"
//	    "github.com/matzehuels/flowgrid/pkg/layout"
//	)
//
//	g := flowchart.Parse("graph LR\n  A[Start] --> B{Check}\n  B -->|yes| C((Done))")
//	layout.Compute(g)
//	_ = flowio.WriteJSON(g, os.Stdout)
//
// # Supporting Packages
//
// [cache] - Layout cache backends: FileCache (CLI), RedisCache (shared
// deployments) and NullCache (disabled), keyed by source hash and layout
// settings.
//
// [observability] - Hooks for pipeline, cache and HTTP events with no-op
// defaults.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./pkg/...
//	FLOWGRID_TEST_REDIS=redis://localhost:6379/15 go test ./pkg/cache/
//
// [flowchart]: https://pkg.go.dev/github.com/matzehuels/flowgrid/pkg/flowchart
// [dag]: https://pkg.go.dev/github.com/matzehuels/flowgrid/pkg/dag
// [layout]: https://pkg.go.dev/github.com/matzehuels/flowgrid/pkg/layout
// [io]: https://pkg.go.dev/github.com/matzehuels/flowgrid/pkg/io
// [dot]: https://pkg.go.dev/github.com/matzehuels/flowgrid/pkg/dot
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flowgrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flowgrid/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/flowgrid/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/flowgrid/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/flowgrid/pkg/buildinfo
package pkg
