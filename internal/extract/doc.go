// Package extract recovers the domain model from live CK-Tile values.
//
// Extraction combines two sources. The transform chain's SHAPE (kinds and
// lower/upper dimension ids) lives entirely in the type signature: a
// descriptor or adaptor template carries three tuples (transforms, lower
// id sequences, upper id sequences) followed by the bottom/top dimension
// id sequences. The chain's runtime PARAMETERS (up_lengths, coefficients,
// pad lengths) live in the transforms_ member, when the debugger can
// still read it.
//
// Failure policy: one unreadable field never aborts its siblings, and one
// bad transform never aborts its descriptor — the bad entry becomes a
// KindUnknown placeholder and extraction continues. Shape/kind mismatches
// are logged at debug level, not surfaced.
package extract
