package tree

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/formbind/go-formbind/fieldpath"
)

var ErrEmptyPath = errors.New("empty path")

// Accessor reads the child addressed by name from a container value.
// The second result is false when no child exists there.
type Accessor func(cur any, name fieldpath.Name) (any, bool)

// Setter writes the child addressed by name into a container value.
type Setter func(cur any, name fieldpath.Name, v any) error

// Access is the default Accessor over map[string]any and []any. Lookups
// on terminals, missing keys, and out-of-range indices report absence.
func Access(cur any, name fieldpath.Name) (any, bool) {
	switch c := cur.(type) {
	case map[string]any:
		v, ok := c[name.Key()]
		return v, ok
	case []any:
		i, err := seqIndex(name)
		if err != nil || i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	}
	return nil, false
}

// Assign is the default Setter over map[string]any and []any. Sequence
// writes require an existing index; maps accept any key.
func Assign(cur any, name fieldpath.Name, v any) error {
	switch c := cur.(type) {
	case map[string]any:
		c[name.Key()] = v
		return nil
	case []any:
		i, err := seqIndex(name)
		if err != nil {
			return err
		}
		if i < 0 || i >= len(c) {
			return fmt.Errorf("index %d out of range (len %d)", i, len(c))
		}
		c[i] = v
		return nil
	}
	return fmt.Errorf("cannot assign %q into %s value", name, KindOf(cur))
}

func seqIndex(name fieldpath.Name) (int, error) {
	if name.Index != nil {
		return *name.Index, nil
	}
	i, err := strconv.Atoi(name.Key())
	if err != nil {
		return 0, fmt.Errorf("segment %q does not address a sequence element", name)
	}
	return i, nil
}

// MakeMap is the usual intermediate-container factory for Set.
func MakeMap() any {
	return map[string]any{}
}

// Get walks path from root with the default accessor. The second result
// is false when any step lands on a missing child or a nil value before
// the path is exhausted.
func Get(root any, path fieldpath.Path) (any, bool) {
	return GetWith(root, path, Access)
}

// GetWith is Get with a caller-supplied accessor.
func GetWith(root any, path fieldpath.Path, acc Accessor) (any, bool) {
	cur := root
	for _, name := range path {
		if cur == nil {
			return nil, false
		}
		v, ok := acc(cur, name)
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// Set writes v at path under root, creating missing intermediate
// containers with makeDefault. See SetWith.
func Set(root any, path fieldpath.Path, v any, makeDefault func() any) error {
	return SetWith(root, path, v, makeDefault, Access, Assign)
}

// SetWith walks every segment but the last, synthesizing a fresh
// container from makeDefault wherever a child is absent, then writes v at
// the final segment. makeDefault chooses the intermediate container
// shape independent of the shapes already present, which lets callers
// with different node kinds share the walk. Writing through an existing
// non-container child surfaces as a Setter error.
func SetWith(root any, path fieldpath.Path, v any, makeDefault func() any, acc Accessor, set Setter) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	cur := root
	for _, name := range path[:len(path)-1] {
		child, ok := acc(cur, name)
		if !ok {
			child = makeDefault()
			if err := set(cur, name, child); err != nil {
				return err
			}
		}
		cur = child
	}
	return set(cur, path.Last(), v)
}

// Clone deep-copies the container spine of v. Terminals are shared.
func Clone(v any) any {
	switch c := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(c))
		for k, x := range c {
			m[k] = Clone(x)
		}
		return m
	case []any:
		s := make([]any, len(c))
		for i, x := range c {
			s[i] = Clone(x)
		}
		return s
	}
	return v
}
