package io

import "errors"

var (
	// ErrInvalidDirection is returned when a record names an unknown direction.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrNullSubgraph is returned when a record contains a null subgraph entry.
	ErrNullSubgraph = errors.New("null subgraph")
)
