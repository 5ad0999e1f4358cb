package scope

import (
	"fmt"
	"strings"
)

// ParseError reports a malformed field path (spec §6.3).
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("scope: invalid path %q: %s", e.Path, e.Reason)
}

// Parse parses a dot-separated field path into a Scope, following the
// grammar:
//
//	path        := segment ( "." segment )*
//	segment     := raw_ident | '"' quoted_char+ '"'
//	raw_ident   := [^."]+
//	quoted_char := any char except '"'
//
// Empty segments, a trailing dot, and an unterminated quote are all errors.
// Parsed segments are all Field kind; callers that need to address an
// array's element sub-schema append scope.Content() themselves, since the
// literal path grammar has no index syntax.
func Parse(path string) (Scope, error) {
	if path == "" {
		return Scope{}, &ParseError{Path: path, Reason: "path must not be empty"}
	}
	var segments []Segment
	i := 0
	for i < len(path) {
		var seg string
		if path[i] == '"' {
			end := strings.IndexByte(path[i+1:], '"')
			if end < 0 {
				return Scope{}, &ParseError{Path: path, Reason: "unterminated quote"}
			}
			seg = path[i+1 : i+1+end]
			i = i + 1 + end + 1
			if i < len(path) && path[i] != '.' {
				return Scope{}, &ParseError{Path: path, Reason: "expected '.' after closing quote"}
			}
		} else {
			end := strings.IndexByte(path[i:], '.')
			if end < 0 {
				seg = path[i:]
				i = len(path)
			} else {
				seg = path[i : i+end]
				i += end
			}
			if strings.ContainsRune(seg, '"') {
				return Scope{}, &ParseError{Path: path, Reason: "unexpected quote in raw segment"}
			}
		}
		if seg == "" {
			return Scope{}, &ParseError{Path: path, Reason: "empty segment"}
		}
		segments = append(segments, Segment{Kind: Field, Name: seg})
		if i < len(path) {
			if path[i] != '.' {
				return Scope{}, &ParseError{Path: path, Reason: "expected '.' between segments"}
			}
			i++
			if i == len(path) {
				return Scope{}, &ParseError{Path: path, Reason: "trailing dot"}
			}
		}
	}
	return Scope{segments: segments}, nil
}

// Format renders s back into the field-path grammar Parse accepts. Segments
// containing a dot are quoted; Index segments (array/tuple "content") are
// rendered using their literal name like any other segment, since the
// grammar does not distinguish field/index syntactically — callers that
// round-trip addresses obtained from Parse never produce Index segments in
// the first place, satisfying the parse(format(p)) == p round-trip property.
func Format(s Scope) string {
	if s.IsRoot() {
		return ""
	}
	parts := make([]string, len(s.segments))
	for i, seg := range s.segments {
		if strings.ContainsRune(seg.Name, '.') {
			parts[i] = `"` + seg.Name + `"`
		} else {
			parts[i] = seg.Name
		}
	}
	return strings.Join(parts, ".")
}
