// Package diagram builds dimension-flow graphs from transform chains
// and serializes them as mermaid flowcharts.
package diagram
