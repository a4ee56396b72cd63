// Package tree implements path-addressed traversal over plain tree-shaped
// values: nested map[string]any mappings and []any sequences, the shape
// produced by decoding YAML or JSON documents.
//
// Get and Set address locations with fieldpath.Path values. Set
// auto-creates intermediate containers through a caller-supplied factory,
// so writing a deep path never requires pre-creating its ancestors.
package tree
