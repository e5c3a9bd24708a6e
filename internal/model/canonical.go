package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces deterministic JSON for golden-file snapshots
// of extracted models and rendered inspection results.
//
// Properties:
//   - object keys sorted by UTF-16 code units
//   - no HTML escaping (< > & appear literally, which matters for type
//     signatures embedded in snapshots)
//   - strings NFC normalized
//   - no floats and no nulls (the model is integer-only; both are
//     rejected so a drifting fixture fails loudly)
func MarshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical snapshots")
	case string:
		return marshalCanonicalString(val)
	case int:
		return []byte(fmt.Sprintf("%d", val)), nil
	case int64:
		return []byte(fmt.Sprintf("%d", val)), nil
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case float32, float64:
		return nil, fmt.Errorf("floats are forbidden in canonical snapshots: %v", val)
	case []int:
		anyVals := make([]any, len(val))
		for i, n := range val {
			anyVals[i] = n
		}
		return marshalCanonicalArray(anyVals)
	case []int64:
		anyVals := make([]any, len(val))
		for i, n := range val {
			anyVals[i] = n
		}
		return marshalCanonicalArray(anyVals)
	case []any:
		return marshalCanonicalArray(val)
	case map[string]any:
		return marshalCanonicalObject(val)
	default:
		return nil, fmt.Errorf("unsupported type for canonical snapshot: %T", v)
	}
}

// Snapshot converts the descriptor to the plain tree MarshalCanonical
// accepts, dropping zero-valued optional fields the way the JSON tags do.
func (d *Descriptor) Snapshot() map[string]any {
	transforms := make([]any, len(d.Transforms))
	for i, t := range d.Transforms {
		m := map[string]any{
			"kind":  string(t.Kind),
			"lower": t.LowerDims,
			"upper": t.UpperDims,
		}
		if len(t.UpLengths) > 0 {
			m["up_lengths"] = t.UpLengths
		}
		if len(t.LowLengths) > 0 {
			m["low_lengths"] = t.LowLengths
		}
		if len(t.Coefficients) > 0 {
			m["coefficients"] = t.Coefficients
		}
		if t.LeftPad != 0 {
			m["left_pad_length"] = t.LeftPad
		}
		if t.RightPad != 0 {
			m["right_pad_length"] = t.RightPad
		}
		transforms[i] = m
	}

	out := map[string]any{
		"transforms":           transforms,
		"bottom_dimension_ids": d.BottomIDs,
		"top_dimension_ids":    d.TopIDs,
	}
	if d.NDimHidden != 0 {
		out["ndim_hidden"] = d.NDimHidden
	}
	if d.NDimTop != 0 {
		out["ndim_top"] = d.NDimTop
	}
	if d.NDimBottom != 0 {
		out["ndim_bottom"] = d.NDimBottom
	}
	if d.ElementSpaceSize != 0 {
		out["element_space_size"] = d.ElementSpaceSize
	}
	if d.Uninitialized {
		out["uninitialized"] = true
	}
	return out
}

func marshalCanonicalArray(vals []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := MarshalCanonical(v)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalObject(obj map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return lessUTF16(keys[i], keys[j])
	})

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalCanonicalString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := MarshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("object[%q]: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// lessUTF16 compares strings by UTF-16 code units, the canonical JSON key
// ordering (which differs from byte order for characters outside the BMP).
func lessUTF16(a, b string) bool {
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			return ua[i] < ub[i]
		}
	}
	return len(ua) < len(ub)
}

// marshalCanonicalString encodes an NFC-normalized string without HTML
// escaping.
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}
