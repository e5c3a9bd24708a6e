// Package harness runs YAML-described inspection scenarios against CUE
// fixtures and checks their rendered output against golden files. Each
// scenario names a fixture and a list of steps; a step either prints
// the value through the dispatch table or emits a transform-flow
// diagram for it.
package harness
