// Package fieldsmap provides FieldsMap, a path-indexed trie storing one
// payload per path while supporting subtree and depth-bounded queries.
//
// A trie node holds an optional payload and a child map keyed by
// canonical segment strings, so a path can own a value while also being
// a prefix of longer paths, and no reserved key can ever collide with a
// user-supplied segment.
package fieldsmap

import (
	"maps"
	"slices"

	"github.com/formbind/go-formbind/fieldpath"
)

type node[V any] struct {
	payload  *V
	children map[string]*node[V]
}

// FieldsMap maps field paths to payloads. The zero value is not usable;
// call New. The empty path addresses the root node, so the whole-form
// payload lives alongside every field payload.
//
// FieldsMap is not safe for concurrent mutation; callers drive it from
// one event context.
type FieldsMap[V any] struct {
	root node[V]
}

func New[V any]() *FieldsMap[V] {
	return &FieldsMap[V]{}
}

// walk returns the node at path without creating anything.
func (m *FieldsMap[V]) walk(path fieldpath.Path) *node[V] {
	n := &m.root
	for _, name := range path {
		n = n.children[name.Key()]
		if n == nil {
			return nil
		}
	}
	return n
}

// Get returns the payload stored at exactly path.
func (m *FieldsMap[V]) Get(path fieldpath.Path) (V, bool) {
	n := m.walk(path)
	if n == nil || n.payload == nil {
		var zero V
		return zero, false
	}
	return *n.payload, true
}

// Has reports whether a payload is stored at exactly path.
func (m *FieldsMap[V]) Has(path fieldpath.Path) bool {
	_, ok := m.Get(path)
	return ok
}

// Set stores v at exactly path, creating intermediate nodes as needed.
// Payloads at ancestor and descendant paths are untouched.
func (m *FieldsMap[V]) Set(path fieldpath.Path, v V) {
	n := &m.root
	for _, name := range path {
		key := name.Key()
		if n.children == nil {
			n.children = map[string]*node[V]{}
		}
		child := n.children[key]
		if child == nil {
			child = &node[V]{}
			n.children[key] = child
		}
		n = child
	}
	n.payload = &v
}

// Keys returns the canonical segment keys of the immediate children
// recorded under path, sorted. Absent paths have no keys.
func (m *FieldsMap[V]) Keys(path fieldpath.Path) []string {
	n := m.walk(path)
	if n == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(n.children))
}

// GetAllNested collects every payload stored at path or beneath it,
// depth-first with children in key order. Absent paths collect nothing.
func (m *FieldsMap[V]) GetAllNested(path fieldpath.Path) []V {
	return m.GetAllNestedDepth(path, -1)
}

// GetAllNestedDepth is GetAllNested bounded to maxDepth levels below
// path; the payload at path itself is always included. A negative
// maxDepth means unbounded.
func (m *FieldsMap[V]) GetAllNestedDepth(path fieldpath.Path, maxDepth int) []V {
	n := m.walk(path)
	if n == nil {
		return nil
	}
	return n.collect(nil, maxDepth)
}

func (n *node[V]) collect(dst []V, depth int) []V {
	if n.payload != nil {
		dst = append(dst, *n.payload)
	}
	if depth == 0 {
		return dst
	}
	for _, key := range slices.Sorted(maps.Keys(n.children)) {
		dst = n.children[key].collect(dst, depth-1)
	}
	return dst
}

// Delete removes the entry for the last segment of path from its parent
// node, dropping the payload there and everything beneath it. It does
// nothing for the empty path or when the parent path is absent.
func (m *FieldsMap[V]) Delete(path fieldpath.Path) {
	if len(path) == 0 {
		return
	}
	parent := m.walk(path.Parent())
	if parent == nil {
		return
	}
	delete(parent.children, path.Last().Key())
}
