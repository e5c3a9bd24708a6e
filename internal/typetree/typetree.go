package typetree

import (
	"fmt"
	"strings"
)

// Node is one level of a parsed generic type signature.
//
// Args is empty for non-generic leaf types. Generic distinguishes a
// zero-argument template instantiation ("tuple<>") from a plain leaf
// ("int") so that empty containers survive a parse/serialize round trip.
// Nodes are immutable once parsed.
type Node struct {
	// Name is the qualifier-stripped type name, namespace included
	// (e.g. "ck_tile::tensor_descriptor").
	Name string

	// Args are the template arguments in declaration order.
	Args []Node

	// Generic is true when the source had an argument list, even an
	// empty one.
	Generic bool
}

// Result is the outcome of parsing a type signature.
type Result struct {
	// Root is the parsed tree. Always non-nil when the error is nil,
	// even for truncated input.
	Root *Node

	// Complete is false when the signature was truncated (an opening
	// bracket never closed) and the tree is best-effort.
	Complete bool
}

// ParseError reports a signature that cannot be parsed even best-effort:
// empty input, or a closing bracket with no matching opener.
type ParseError struct {
	Input   string
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("parse type signature: %s", e.Message)
	}
	return fmt.Sprintf("parse type signature at offset %d: %s", e.Pos, e.Message)
}

// Parse parses a raw type signature string into a Node tree.
//
// Qualifiers (const, references, pointers) are stripped from names.
// A truncated signature yields a best-effort tree with Complete=false.
func Parse(s string) (Result, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Result{}, &ParseError{Input: s, Message: "empty signature"}
	}

	// Stray '>' with no opener poisons everything after it; that is the
	// one irrecoverable malformation besides empty input.
	depth := 0
	for i, r := range trimmed {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return Result{}, &ParseError{
					Input:   s,
					Pos:     i,
					Message: "unbalanced '>' without matching '<'",
				}
			}
		}
	}

	p := &parser{input: trimmed}
	root := p.parseNode(trimmed)
	return Result{Root: root, Complete: !p.truncated}, nil
}

type parser struct {
	input     string
	truncated bool
}

// parseNode parses a single type, generic or leaf.
func (p *parser) parseNode(s string) *Node {
	s = normalize(s)
	if s == "" {
		return &Node{}
	}

	open := indexTopLevel(s, '<')
	if open < 0 {
		return &Node{Name: s}
	}

	name := strings.TrimSpace(s[:open])
	closing := matchingBracket(s, open)
	var content string
	if closing < 0 {
		// Truncated by the debugger; take everything after '<'.
		p.truncated = true
		content = s[open+1:]
	} else {
		content = s[open+1 : closing]
	}

	node := &Node{Name: name, Generic: true}
	for _, arg := range SplitArgs(content) {
		node.Args = append(node.Args, *p.parseNode(arg))
	}
	return node
}

// String re-serializes the tree. Parsing the result yields an equal tree.
func (n *Node) String() string {
	if !n.Generic {
		return n.Name
	}
	args := make([]string, len(n.Args))
	for i := range n.Args {
		args[i] = n.Args[i].String()
	}
	return n.Name + "<" + strings.Join(args, ", ") + ">"
}

// Base returns the dispatch name: the last namespace segment of Name.
func (n *Node) Base() string {
	return BaseName(n.Name)
}

// normalize strips cv-qualifiers and reference/pointer suffixes without
// touching the base name used for dispatch.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	for {
		switch {
		case strings.HasPrefix(s, "const "):
			s = strings.TrimSpace(s[len("const "):])
		case strings.HasPrefix(s, "volatile "):
			s = strings.TrimSpace(s[len("volatile "):])
		case strings.HasSuffix(s, "&") || strings.HasSuffix(s, "*"):
			s = strings.TrimSpace(s[:len(s)-1])
		case strings.HasSuffix(s, " const"):
			s = strings.TrimSpace(s[:len(s)-len(" const")])
		default:
			return s
		}
	}
}

// BaseName strips qualifiers and leading namespace paths from a type name.
// The namespace split only considers "::" outside any bracket pair, so
// "ns::outer<other::inner>" yields "outer<other::inner>"'s base "outer".
func BaseName(name string) string {
	name = normalize(name)
	if open := indexTopLevel(name, '<'); open >= 0 {
		name = name[:open]
	}
	depth := 0
	last := 0
	for i := 0; i+1 < len(name); i++ {
		switch name[i] {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		case ':':
			if depth == 0 && name[i+1] == ':' {
				last = i + 2
			}
		}
	}
	return strings.TrimSpace(name[last:])
}

// indexTopLevel returns the index of the first occurrence of c outside any
// bracket or paren nesting, or -1.
func indexTopLevel(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			if c == '<' && depth == 0 {
				return i
			}
			depth++
		case '>':
			depth--
		case '(':
			depth++
		case ')':
			depth--
		default:
			if s[i] == c && depth == 0 {
				return i
			}
		}
	}
	return -1
}

// matchingBracket returns the index of the '>' matching the '<' at open,
// or -1 when the bracket never closes.
func matchingBracket(s string, open int) int {
	depth := 1
	for i := open + 1; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// SplitArgs splits a template argument list on top-level commas. Commas
// inside nested brackets or casts like "(ck_tile::address_space_enum)1"
// do not split. Whitespace around each argument is trimmed.
func SplitArgs(content string) []string {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	var args []string
	depth := 0
	start := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '<', '(':
			depth++
		case '>', ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(content[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(content[start:]))
	return args
}
