// Package typetree parses C++ template type signatures into a structured
// tree form used for printer dispatch and transform extraction.
//
// Debugger-reported type strings are deeply nested generic signatures
// (tuple<tile_window<tensor_view<tensor_descriptor<...>>>>). The parser is
// a recursive descent over name<args...> where commas only split arguments
// at the top bracket level. Nesting depth is unbounded but finite;
// termination is guaranteed because every recursive call consumes a strict
// substring of its input.
//
// The parser is deliberately forgiving: debuggers truncate long signatures,
// so a signature with an unterminated '<' still yields a best-effort tree
// with Result.Complete=false. Only empty input and stray closing brackets
// (which make the remainder of the string meaningless) fail with ParseError.
package typetree
