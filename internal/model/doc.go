// Package model provides the extracted domain model for CK-Tile tensor
// entities: dimension transforms, descriptors, coordinates, containers,
// and tile-distribution encodings.
//
// This package contains type definitions and pure validation only. All
// other internal packages import model; model imports no internal
// package, keeping it the foundational layer with no cycles.
//
// Everything here is transient: instances are built per inspection
// request and discarded after rendering. Nothing is cached across calls.
package model
