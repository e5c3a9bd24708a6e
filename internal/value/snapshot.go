package value

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Snapshot node conventions. A node is one of:
//   - map[string]any: a structured value. The "$type" key carries the
//     type signature; "$value" carries a scalar payload for wrapper types
//     like constant<N>; "$elements" carries ordered array elements;
//     "$deref" carries the pointee; "$unavailable": true marks a value the
//     debugger could not read. All other keys are member fields.
//   - []any: a bare element list.
//   - int64 / float64 / string / bool: a scalar.
const (
	keyType        = "$type"
	keyValue       = "$value"
	keyElements    = "$elements"
	keyDeref       = "$deref"
	keyUnavailable = "$unavailable"
)

// Snapshot implements Value over a decoded data tree. It is the engine's
// concrete value source for fixtures, the CLI, and tests; a debugger
// frontend would supply its own Value implementation instead.
type Snapshot struct {
	typeStr string
	data    any
}

// NewSnapshot wraps a data tree as a Value. typeStr overrides any "$type"
// present at the root; pass "" to use the tree's own type.
func NewSnapshot(typeStr string, data any) *Snapshot {
	s := &Snapshot{typeStr: typeStr, data: normalizeData(data)}
	if s.typeStr == "" {
		s.typeStr = nodeType(s.data)
	}
	return s
}

// DecodeJSON builds a Snapshot from a JSON document following the node
// conventions above. JSON numbers become int64 when integral.
func DecodeJSON(b []byte) (*Snapshot, error) {
	var data any
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return NewSnapshot("", data), nil
}

func (s *Snapshot) TypeString() string {
	return s.typeStr
}

func (s *Snapshot) Field(name string) (Value, error) {
	m, ok := s.data.(map[string]any)
	if !ok {
		return nil, &AccessFailure{Op: "field", Field: name, Type: s.typeStr, Reason: "value is not structured"}
	}
	if unavailable(m) {
		return nil, &AccessFailure{Op: "field", Field: name, Type: s.typeStr, Reason: "value unavailable"}
	}
	child, ok := m[name]
	if !ok {
		return nil, &AccessFailure{Op: "field", Field: name, Type: s.typeStr, Reason: "no such member (optimized out?)"}
	}
	if cm, ok := child.(map[string]any); ok && unavailable(cm) {
		return nil, &AccessFailure{Op: "field", Field: name, Type: s.typeStr, Reason: "member unavailable"}
	}
	return &Snapshot{typeStr: nodeType(child), data: child}, nil
}

func (s *Snapshot) Elements() ([]Value, error) {
	var list []any
	switch d := s.data.(type) {
	case []any:
		list = d
	case map[string]any:
		if unavailable(d) {
			return nil, &AccessFailure{Op: "elements", Type: s.typeStr, Reason: "value unavailable"}
		}
		elems, ok := d[keyElements].([]any)
		if !ok {
			return nil, &AccessFailure{Op: "elements", Type: s.typeStr, Reason: "value has no elements"}
		}
		list = elems
	default:
		return nil, &AccessFailure{Op: "elements", Type: s.typeStr, Reason: "value is not array-like"}
	}

	out := make([]Value, len(list))
	for i, e := range list {
		out[i] = &Snapshot{typeStr: nodeType(e), data: e}
	}
	return out, nil
}

func (s *Snapshot) Deref() (Value, error) {
	m, ok := s.data.(map[string]any)
	if !ok {
		return nil, &AccessFailure{Op: "deref", Type: s.typeStr, Reason: "value is not a pointer"}
	}
	child, ok := m[keyDeref]
	if !ok {
		return nil, &AccessFailure{Op: "deref", Type: s.typeStr, Reason: "pointee unavailable"}
	}
	return &Snapshot{typeStr: nodeType(child), data: child}, nil
}

func (s *Snapshot) Int() (int64, error) {
	switch d := s.data.(type) {
	case int64:
		return d, nil
	case float64:
		if d == math.Trunc(d) {
			return int64(d), nil
		}
	case bool:
		if d {
			return 1, nil
		}
		return 0, nil
	case map[string]any:
		if v, ok := d[keyValue]; ok {
			return (&Snapshot{data: v}).Int()
		}
	}
	return 0, &AccessFailure{Op: "int", Type: s.typeStr, Reason: "value is not an integer scalar"}
}

// Raw renders the underlying data literally, for fallback dumps. Struct
// fields print in sorted order so output is diff-stable.
func (s *Snapshot) Raw() string {
	return rawString(s.data)
}

func rawString(d any) string {
	switch v := d.(type) {
	case nil:
		return Unavailable
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		if v == math.Trunc(v) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case string:
		return v
	case bool:
		return fmt.Sprintf("%t", v)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = rawString(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		if unavailable(v) {
			return Unavailable
		}
		if inner, ok := v[keyValue]; ok {
			return rawString(inner)
		}
		if elems, ok := v[keyElements]; ok {
			return rawString(elems)
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			if strings.HasPrefix(k, "$") {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + rawString(v[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func nodeType(d any) string {
	switch v := d.(type) {
	case map[string]any:
		if t, ok := v[keyType].(string); ok {
			return t
		}
		return ""
	case int64, float64:
		return "long"
	case string:
		return "const char *"
	case bool:
		return "bool"
	default:
		return ""
	}
}

func unavailable(m map[string]any) bool {
	b, ok := m[keyUnavailable].(bool)
	return ok && b
}

// normalizeData converts JSON-decoded float64 values that are integral to
// int64, recursively, so fixture and JSON sources behave identically.
func normalizeData(d any) any {
	switch v := d.(type) {
	case float64:
		if v == math.Trunc(v) {
			return int64(v)
		}
		return v
	case int:
		return int64(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalizeData(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = normalizeData(e)
		}
		return out
	default:
		return v
	}
}
