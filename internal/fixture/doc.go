// Package fixture compiles CUE descriptions of captured values into
// snapshots the renderers can walk. Fixtures stand in for a live
// debugger session in the CLI and in tests.
package fixture
