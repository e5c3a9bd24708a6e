package typetree

import (
	"strconv"
	"strings"
)

// Raw-string scanning helpers. Extraction frequently works on the original
// signature text rather than the parsed tree, because transform chains are
// positional (three tuples, then dimension-id sequences) and the positions
// are easiest to track with bracket counting on the source string.

// Head returns the segment naming the outermost template, opening bracket
// included. The first '<' in a signature always belongs to the outermost
// template; nested types only appear after it. A bracketless signature is
// its own head.
func Head(s string) string {
	if i := strings.IndexByte(s, '<'); i >= 0 {
		return s[:i+1]
	}
	return s
}

// TemplateContent returns the text between the angle brackets of the first
// occurrence of name< in s, and the index just past the closing '>'.
// Returns ok=false when the template is absent or its bracket never closes.
func TemplateContent(s, name string) (content string, end int, ok bool) {
	idx := strings.Index(s, name+"<")
	if idx < 0 {
		return "", 0, false
	}
	open := idx + len(name)
	closing := matchingBracket(s, open)
	if closing < 0 {
		return "", 0, false
	}
	return s[open+1 : closing], closing + 1, true
}

// Sequences returns the integer contents of every sequence<...> in s, in
// order of appearance. Empty sequences contribute an empty (non-nil) list,
// so callers can distinguish "sequence<>" from "no sequence at all".
func Sequences(s string) [][]int {
	var out [][]int
	pos := 0
	for {
		idx := strings.Index(s[pos:], "sequence<")
		if idx < 0 {
			return out
		}
		open := pos + idx + len("sequence")
		closing := matchingBracket(s, open)
		if closing < 0 {
			return out
		}
		out = append(out, ParseIntList(s[open+1:closing]))
		pos = closing + 1
	}
}

// ParseIntList parses a comma-separated integer list ("0, 1, 2" or "").
// Non-numeric entries are skipped, matching the tolerant behavior needed
// for debugger output. The result is never nil.
func ParseIntList(s string) []int {
	vals := []int{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		vals = append(vals, n)
	}
	return vals
}

// ConstantValue extracts N from the first constant<N> in s, tolerating
// integer literal suffixes (8192l, 4096UL). ok is false when s carries no
// constant<...> with a numeric argument.
func ConstantValue(s string) (int64, bool) {
	idx := strings.Index(s, "constant<")
	if idx < 0 {
		return 0, false
	}
	open := idx + len("constant")
	closing := matchingBracket(s, open)
	if closing < 0 {
		return 0, false
	}
	lit := strings.TrimSpace(s[open+1 : closing])
	lit = strings.TrimRight(lit, "uUlL")
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Constants extracts every constant<N> value in s, in order of
// appearance. Non-numeric constant arguments are skipped.
func Constants(s string) []int64 {
	var out []int64
	pos := 0
	for {
		idx := strings.Index(s[pos:], "constant<")
		if idx < 0 {
			return out
		}
		open := pos + idx + len("constant")
		closing := matchingBracket(s, open)
		if closing < 0 {
			return out
		}
		lit := strings.TrimRight(strings.TrimSpace(s[open+1:closing]), "uUlL")
		if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
			out = append(out, n)
		}
		pos = closing + 1
	}
}

// SkipTuples advances past count leading tuple<...> groups in content and
// returns the remainder with leading commas and spaces trimmed, plus the
// number of tuples actually skipped.
func SkipTuples(content string, count int) (rest string, skipped int) {
	pos := 0
	for skipped < count {
		idx := strings.Index(content[pos:], "tuple<")
		if idx < 0 {
			break
		}
		open := pos + idx + len("tuple")
		closing := matchingBracket(content, open)
		if closing < 0 {
			break
		}
		pos = closing + 1
		skipped++
	}
	return strings.TrimLeft(content[pos:], ", "), skipped
}
