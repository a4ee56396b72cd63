package fieldpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Name is a single path segment: either an object field or a sequence
// index. Exactly one of Field and Index is set; the zero Name is invalid.
type Name struct {
	Field *string
	Index *int
}

// FieldName returns a Name addressing an object field.
func FieldName(field string) Name {
	return Name{Field: &field}
}

// IndexName returns a Name addressing a sequence element.
func IndexName(index int) Name {
	return Name{Index: &index}
}

func (n Name) IsIndex() bool {
	return n.Index != nil
}

func (n Name) IsZero() bool {
	return n.Field == nil && n.Index == nil
}

// Key returns the canonical string form of the segment. Index segments
// render in decimal, so IndexName(0) and FieldName("0") share a key.
func (n Name) Key() string {
	if n.Index != nil {
		return strconv.Itoa(*n.Index)
	}
	if n.Field != nil {
		return *n.Field
	}
	return ""
}

// Equal compares by canonical key.
func (n Name) Equal(o Name) bool {
	return n.Key() == o.Key()
}

// String returns the segment in path syntax: "field", "'quoted field'",
// or "[index]".
func (n Name) String() string {
	if n.Index != nil {
		return "[" + strconv.Itoa(*n.Index) + "]"
	}
	if n.Field != nil {
		return quoteField(*n.Field)
	}
	return ""
}

// Path is an ordered sequence of Names identifying a location inside a
// tree-shaped value. The empty Path addresses the root.
type Path []Name

// Join returns a new Path with names appended. The receiver is never
// aliased, so child paths built during traversal stay independent.
func (p Path) Join(names ...Name) Path {
	res := make(Path, 0, len(p)+len(names))
	res = append(res, p...)
	return append(res, names...)
}

func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	res := make(Path, len(p))
	copy(res, p)
	return res
}

// Parent returns the path with the last segment removed, or nil for the
// root and single-segment paths.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return p[:len(p)-1].Clone()
}

// Last returns the final segment. It is the zero Name for the root path.
func (p Path) Last() Name {
	if len(p) == 0 {
		return Name{}
	}
	return p[len(p)-1]
}

// Equal reports whether two paths have equal length and pairwise-equal
// segments under canonical-key comparison.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if !p[i].Equal(q[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p begins with prefix. Every path has the root
// path as a prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if !p[i].Equal(prefix[i]) {
			return false
		}
	}
	return true
}

// Compare orders paths lexicographically by canonical segment key, with
// shorter prefixes first.
func (p Path) Compare(q Path) int {
	n := min(len(p), len(q))
	for i := 0; i < n; i++ {
		if c := strings.Compare(p[i].Key(), q[i].Key()); c != 0 {
			return c
		}
	}
	switch {
	case len(p) < len(q):
		return -1
	case len(p) > len(q):
		return 1
	}
	return 0
}

// String returns the path in parseable syntax, e.g. "items[0].id".
func (p Path) String() string {
	var b strings.Builder
	for i, n := range p {
		if n.Index != nil {
			b.WriteString(n.String())
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(n.String())
	}
	return b.String()
}

// Dotted returns the lossy dotted serialization used for external naming:
// canonical keys joined with dots, no quoting, no brackets. Two distinct
// paths can share a dotted name; use String for a faithful form.
func (p Path) Dotted() string {
	keys := make([]string, len(p))
	for i, n := range p {
		keys[i] = n.Key()
	}
	return strings.Join(keys, ".")
}

func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(d []byte) error {
	q, err := Parse(string(d))
	if err != nil {
		return err
	}
	*p = q
	return nil
}

// Parse parses path syntax into a Path. The empty string parses to the
// root (nil) path.
//
//	a.b.c      three fields
//	a[0].b     field, index, field
//	'a.b'.c    quoted field containing a dot, then field
func Parse(s string) (Path, error) {
	var p Path
	rest := s
	first := true
	for rest != "" {
		switch rest[0] {
		case '.':
			if first {
				return nil, fmt.Errorf("path %q: unexpected leading '.'", s)
			}
			rest = rest[1:]
			if rest == "" {
				return nil, fmt.Errorf("path %q: trailing '.'", s)
			}
			if rest[0] == '[' {
				return nil, fmt.Errorf("path %q: '.' before '['", s)
			}
			field, r, err := parseField(rest)
			if err != nil {
				return nil, fmt.Errorf("path %q: %w", s, err)
			}
			p = append(p, FieldName(field))
			rest = r
		case '[':
			i := strings.IndexByte(rest[1:], ']')
			if i == -1 {
				return nil, fmt.Errorf("path %q: expected '[' <index> ']'", s)
			}
			index, err := strconv.ParseUint(rest[1:i+1], 10, 31)
			if err != nil {
				return nil, fmt.Errorf("path %q: bad index %q", s, rest[1:i+1])
			}
			p = append(p, IndexName(int(index)))
			rest = rest[i+2:]
		default:
			if !first {
				return nil, fmt.Errorf("path %q: expected '.' or '['", s)
			}
			field, r, err := parseField(rest)
			if err != nil {
				return nil, fmt.Errorf("path %q: %w", s, err)
			}
			p = append(p, FieldName(field))
			rest = r
		}
		first = false
	}
	return p, nil
}

// MustParse is Parse for trusted literal paths; it panics on error.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// parseField scans one field segment, stopping at '.' or '['. A segment
// starting with a quote runs to the matching unescaped close quote.
func parseField(frag string) (field, rest string, err error) {
	if frag == "" {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	quote := frag[0]
	if quote != '\'' && quote != '"' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	var b strings.Builder
	escaped := false
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch {
		case escaped:
			b.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == quote:
			return b.String(), frag[i+1:], nil
		default:
			b.WriteByte(c)
		}
	}
	return "", "", fmt.Errorf("unterminated quoted field")
}

func quoteField(field string) string {
	if field != "" && !strings.ContainsAny(field, ".[]'\" \t") {
		return field
	}
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c == '\'' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('\'')
	return b.String()
}
