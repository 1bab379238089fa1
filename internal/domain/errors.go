package domain

import "errors"

var (
	// ErrInvalidCoordinate is returned when a latitude or longitude is out of range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidGeometry is returned for boundaries that are not simple polygons
	// with at least three distinct vertices.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrNotFound is returned when no zone has the requested name.
	ErrNotFound = errors.New("hazard zone not found")

	// ErrInvalidDataset is returned for dataset-level problems such as duplicate
	// names or unknown risk levels.
	ErrInvalidDataset = errors.New("invalid dataset")
)
