package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/flowgrid/pkg/flowchart"
)

// ReadJSON decodes a diagram record from r.
//
// The returned graph has its node index rebuilt and nil collections
// replaced by empty ones. ReadJSON returns an error if:
//   - The JSON is malformed
//   - The direction is not one of TD, TB, LR, RL, BT
//   - The graph violates [flowchart.Graph.Validate]
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*flowchart.Graph, error) {
	g := flowchart.New()
	g.Direction = ""
	if err := json.NewDecoder(r).Decode(g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return finish(g)
}

// UnmarshalGraph is the []byte counterpart of [ReadJSON].
func UnmarshalGraph(data []byte) (*flowchart.Graph, error) {
	return ReadJSON(bytes.NewReader(data))
}

func finish(g *flowchart.Graph) (*flowchart.Graph, error) {
	if g.Direction == "" {
		g.Direction = flowchart.DefaultDirection
	}
	d, ok := flowchart.ParseDirection(string(g.Direction))
	if !ok {
		return nil, fmt.Errorf("direction %q: %w", g.Direction, ErrInvalidDirection)
	}
	g.Direction = d

	if g.Nodes == nil {
		g.Nodes = []*flowchart.Node{}
	}
	if g.Edges == nil {
		g.Edges = []flowchart.Edge{}
	}
	if g.Subgraphs == nil {
		g.Subgraphs = []*flowchart.Subgraph{}
	}
	for i, n := range g.Nodes {
		if n == nil {
			return nil, fmt.Errorf("node %d: %w", i, flowchart.ErrInvalidNodeID)
		}
	}
	for i, s := range g.Subgraphs {
		if s == nil {
			return nil, fmt.Errorf("subgraph %d: %w", i, ErrNullSubgraph)
		}
		if s.Nodes == nil {
			s.Nodes = []string{}
		}
	}

	g.Reindex()
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return g, nil
}
