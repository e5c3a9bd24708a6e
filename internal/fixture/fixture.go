package fixture

import (
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/cktools/tileinspect/internal/value"
)

// A fixture is a CUE document describing one captured value:
//
//	type: "ck_tile::tensor_descriptor<...>"
//	fields: {
//		element_space_size_: {type: "ck_tile::constant<64>", value: 64}
//		transforms_: {elements: [...]}
//	}
//
// Nodes nest with the same shape. The reserved keys are type, value,
// elements, fields and unavailable; any other key on a node is a member
// field directly, so flat fixtures can skip the fields wrapper.

// Load reads and compiles a fixture file.
func Load(path string) (*value.Snapshot, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	ctx := cuecontext.New()
	return Compile(ctx.CompileString(string(src), cue.Filename(path)))
}

// Compile turns a CUE value in the fixture shape into a value snapshot.
func Compile(v cue.Value) (*value.Snapshot, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return nil, &CompileError{
			Field:   "type",
			Message: "type is required",
			Pos:     v.Pos(),
		}
	}
	typeStr, err := typeVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	data, err := compileNode(v)
	if err != nil {
		return nil, err
	}
	return value.NewSnapshot(typeStr, data), nil
}

func compileNode(v cue.Value) (any, error) {
	switch v.IncompleteKind() {
	case cue.StructKind:
		return compileStruct(v)
	case cue.ListKind:
		return compileList(v)
	case cue.IntKind:
		return v.Int64()
	case cue.FloatKind, cue.NumberKind:
		return v.Float64()
	case cue.StringKind:
		return v.String()
	case cue.BoolKind:
		return v.Bool()
	case cue.NullKind:
		return nil, nil
	default:
		return nil, &CompileError{
			Field:   pathOf(v),
			Message: fmt.Sprintf("unsupported value kind: %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
}

func compileStruct(v cue.Value) (any, error) {
	out := map[string]any{}

	it, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for it.Next() {
		name := strings.Trim(it.Selector().String(), `"`)
		child := it.Value()

		switch name {
		case "type":
			s, err := child.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			out["$type"] = s
		case "value":
			node, err := compileNode(child)
			if err != nil {
				return nil, err
			}
			out["$value"] = node
		case "elements":
			list, err := compileList(child)
			if err != nil {
				return nil, err
			}
			out["$elements"] = list
		case "unavailable":
			b, err := child.Bool()
			if err != nil {
				return nil, formatCUEError(err)
			}
			out["$unavailable"] = b
		case "fields":
			if child.IncompleteKind() != cue.StructKind {
				return nil, &CompileError{
					Field:   pathOf(child),
					Message: "fields must be a struct",
					Pos:     child.Pos(),
				}
			}
			members, err := compileStruct(child)
			if err != nil {
				return nil, err
			}
			for k, mv := range members.(map[string]any) {
				out[k] = mv
			}
		default:
			node, err := compileNode(child)
			if err != nil {
				return nil, err
			}
			out[name] = node
		}
	}
	return out, nil
}

func compileList(v cue.Value) ([]any, error) {
	it, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []any
	for it.Next() {
		node, err := compileNode(it.Value())
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	if out == nil {
		out = []any{}
	}
	return out, nil
}

func pathOf(v cue.Value) string {
	if p := v.Path().String(); p != "" {
		return p
	}
	return "fixture"
}

// CompileError reports a malformed fixture with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
