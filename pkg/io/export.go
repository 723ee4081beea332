package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/flowgrid/pkg/flowchart"
)

// WriteJSON encodes g as an indented record and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *flowchart.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalGraph returns the compact JSON record of g.
func MarshalGraph(g *flowchart.Graph) ([]byte, error) {
	data, err := json.Marshal(normalize(g))
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// normalize returns g, or a deep copy when a collection is nil, so that
// empty collections always encode as [].
func normalize(g *flowchart.Graph) *flowchart.Graph {
	if g.Nodes == nil || g.Edges == nil || g.Subgraphs == nil {
		return g.Clone()
	}
	for _, s := range g.Subgraphs {
		if s.Nodes == nil {
			return g.Clone()
		}
	}
	return g
}
