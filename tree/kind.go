package tree

import "reflect"

// Kind classifies a value for traversal. The classification runs on every
// read; it is never cached, since the underlying value can change between
// binding passes.
type Kind int

const (
	// Terminal values are returned as-is and are the unit of subscription.
	Terminal Kind = iota
	// Map values are plain string-keyed mappings; traversal recurses.
	Map
	// Sequence values are ordered slices; traversal recurses.
	Sequence
	// Func values are callable; they read as terminals.
	Func
)

func (k Kind) String() string {
	switch k {
	case Terminal:
		return "Terminal"
	case Map:
		return "Map"
	case Sequence:
		return "Sequence"
	case Func:
		return "Func"
	}
	return "<unknown kind>"
}

// IsContainer reports whether traversal recurses into values of this kind.
func (k Kind) IsContainer() bool {
	return k == Map || k == Sequence
}

// KindOf classifies v. Only map[string]any and []any count as containers;
// typed maps, slices of concrete element types, and struct values are
// opaque terminals.
func KindOf(v any) Kind {
	switch v.(type) {
	case map[string]any:
		return Map
	case []any:
		return Sequence
	case nil:
		return Terminal
	}
	if reflect.TypeOf(v).Kind() == reflect.Func {
		return Func
	}
	return Terminal
}

// IsPlainMap reports whether v is a plain string-keyed mapping.
func IsPlainMap(v any) bool {
	return KindOf(v) == Map
}

// IsSequence reports whether v is a plain ordered sequence.
func IsSequence(v any) bool {
	return KindOf(v) == Sequence
}

// IsCallable reports whether v is invocable.
func IsCallable(v any) bool {
	return KindOf(v) == Func
}
