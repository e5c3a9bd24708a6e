// Package render turns live CK-Tile values into the fixed text forms the
// inspection commands emit.
//
// Dispatch is an ordered pattern table: each entry is a substring matched
// against the full type string, first match wins, and a miss falls back
// to a raw dump so rendering always produces output. Order carries the
// specificity: tile_window_with_static_lengths contains tensor_view,
// tensor_view contains tensor_descriptor, so the wider patterns sit
// later. Registration rejects an entry that a previously registered
// pattern would always shadow.
package render
