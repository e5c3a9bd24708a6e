package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cktools/tileinspect/internal/typetree"
	"github.com/cktools/tileinspect/internal/value"
)

// Renderer produces the text form of one value. The registry is passed
// through so container renderers can dispatch their elements.
type Renderer func(r *Registry, v value.Value) string

// ShadowError reports a Register call whose pattern an earlier entry
// would always match first.
type ShadowError struct {
	Pattern  string
	Shadowed string
}

func (e *ShadowError) Error() string {
	return fmt.Sprintf("render: pattern %q is unreachable: earlier entry %q matches every type it would", e.Pattern, e.Shadowed)
}

// Entry describes one dispatch table row, for listing.
type Entry struct {
	Pattern string
	Name    string
}

// Registry is an ordered dispatch table from type-string patterns to
// renderers. Resolution is substring match against the outermost template
// head of the type string, first entry wins.
type Registry struct {
	entries  []regEntry
	fallback Renderer
}

type regEntry struct {
	pattern string
	name    string
	render  Renderer
}

// New returns an empty registry with the raw-dump fallback.
func New() *Registry {
	return &Registry{fallback: Fallback}
}

// Register appends an entry. Any earlier pattern that is a substring of
// the new one would match first on every type string containing the new
// pattern, making the entry dead; that is rejected at registration
// instead of silently never firing.
func (r *Registry) Register(pattern, name string, fn Renderer) error {
	for _, e := range r.entries {
		if strings.Contains(pattern, e.pattern) {
			return &ShadowError{Pattern: pattern, Shadowed: e.pattern}
		}
	}
	r.entries = append(r.entries, regEntry{pattern: pattern, name: name, render: fn})
	return nil
}

// Resolve returns the first matching entry's name and renderer, or
// ("", fallback) on a miss. Patterns match the head only, so a container
// dispatches by its own type, not by whatever it happens to contain.
func (r *Registry) Resolve(typeStr string) (string, Renderer) {
	head := typetree.Head(typeStr)
	for _, e := range r.entries {
		if strings.Contains(head, e.pattern) {
			return e.name, e.render
		}
	}
	return "", r.fallback
}

// Render dispatches v through the table. It always returns output.
func (r *Registry) Render(v value.Value) string {
	_, fn := r.Resolve(v.TypeString())
	return fn(r, v)
}

// Entries lists the table rows in resolution order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = Entry{Pattern: e.pattern, Name: e.name}
	}
	return out
}

var defaultRegistry = sync.OnceValue(buildDefault)

// Default returns the shared dispatch table covering every supported
// CK-Tile type. It is built once and must not be mutated.
func Default() *Registry {
	return defaultRegistry()
}

func buildDefault() *Registry {
	r := New()
	for _, e := range []struct {
		pattern, name string
		fn            Renderer
	}{
		{"tile_window_with_static_distribution<", "tile_window_with_static_distribution", renderTileWindow},
		{"tile_window_with_static_lengths<", "tile_window_with_static_lengths", renderTileWindow},
		{"tile_window<", "tile_window", renderTileWindow},
		{"static_distributed_tensor<", "static_distributed_tensor", renderStaticDistributedTensor},
		{"tensor_view<", "tensor_view", renderView},
		{"tensor_adaptor_coordinate<", "tensor_adaptor_coordinate", renderAdaptorCoordinate},
		{"tensor_coordinate<", "tensor_coordinate", renderCoordinate},
		{"tensor_adaptor<", "tensor_adaptor", renderAdaptor},
		{"tensor_descriptor<", "tensor_descriptor", renderDescriptor},
		{"tile_distribution_encoding<", "tile_distribution_encoding", renderEncoding},
		{"tile_distribution<", "tile_distribution", renderTileDistribution},
		{"thread_buffer<", "thread_buffer", renderThreadBuffer},
		{"multi_index<", "multi_index", renderMultiIndex},
		{"array<", "array", renderArray},
		{"tuple<", "tuple", renderTuple},
	} {
		if err := r.Register(e.pattern, e.name, e.fn); err != nil {
			panic(err)
		}
	}
	return r
}
