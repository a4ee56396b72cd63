// Package fieldpath defines names and paths addressing locations inside
// tree-shaped form values.
//
// A Name is a single path segment: an object field or a sequence index.
// A Path is an ordered sequence of Names. Paths print and parse in a
// dotted syntax:
//
//	user.name
//	items[0].id
//	'field.with.dots'.x
//
// Index segments normalize to the same canonical key as their decimal
// string form, so items[0] and items.0 address the same location.
package fieldpath
