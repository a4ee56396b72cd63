package facade

import (
	"fmt"
	"maps"
	"slices"

	"github.com/formbind/go-formbind/debug"
	"github.com/formbind/go-formbind/fieldpath"
	"github.com/formbind/go-formbind/tree"
)

// AccessLog accumulates the terminal paths read during one binding pass,
// in read order. Duplicates are kept; consumers dedup if they care.
type AccessLog struct {
	paths []fieldpath.Path
}

func NewLog() *AccessLog {
	return &AccessLog{}
}

func (l *AccessLog) Record(p fieldpath.Path) {
	if debug.Facade() {
		debug.Logf("facade: record %s\n", p)
	}
	l.paths = append(l.paths, p)
}

// Paths returns the recorded paths in read order. The result is a copy.
func (l *AccessLog) Paths() []fieldpath.Path {
	res := make([]fieldpath.Path, len(l.paths))
	copy(res, l.paths)
	return res
}

func (l *AccessLog) Len() int {
	return len(l.paths)
}

// DirectMutationError reports a write attempted through a view. Writes
// must go through the owning store's update entry point.
type DirectMutationError struct {
	Op   string
	Path fieldpath.Path
}

func (e *DirectMutationError) Error() string {
	return fmt.Sprintf("direct mutation (%s at %s): form views are read-only, write through the store", e.Op, e.Path)
}

// View is the read-only tracking face over a container inside a snapshot.
// Get returns a child View for container-valued children and the value
// itself for terminals, recording the terminal's full path. Set and
// Delete always fail with *DirectMutationError.
type View interface {
	Get(name fieldpath.Name) any
	Has(name fieldpath.Name) bool
	Names() []fieldpath.Name
	Len() int
	Set(name fieldpath.Name, v any) error
	Delete(name fieldpath.Name) error
}

// New returns a View over the value at prefix inside snapshot. The value
// there must be a container.
func New(snapshot any, prefix fieldpath.Path, log *AccessLog) (View, error) {
	v, ok := tree.Get(snapshot, prefix)
	if !ok {
		return nil, fmt.Errorf("no value at %q", prefix)
	}
	switch tree.KindOf(v) {
	case tree.Map:
		return &MapView{view{snapshot: snapshot, prefix: prefix, log: log}}, nil
	case tree.Sequence:
		return &SequenceView{view{snapshot: snapshot, prefix: prefix, log: log}}, nil
	}
	return nil, fmt.Errorf("value at %q is a %s, not a container", prefix, tree.KindOf(v))
}

// Resolve recovers the snapshot and path prefix a view was created over.
// This is how a binding layer tells "a view of the subtree at p" apart
// from a literal value, instead of mis-tracking it.
func Resolve(v any) (snapshot any, prefix fieldpath.Path, ok bool) {
	switch x := v.(type) {
	case *MapView:
		return x.snapshot, x.prefix.Clone(), true
	case *SequenceView:
		return x.snapshot, x.prefix.Clone(), true
	}
	return nil, nil, false
}

// view carries the shared state of both variants. Child views are built
// on demand per access, never cached, so every read classifies the live
// snapshot value.
type view struct {
	snapshot any
	prefix   fieldpath.Path
	log      *AccessLog
}

func (v *view) value() any {
	x, _ := tree.Get(v.snapshot, v.prefix)
	return x
}

func (v *view) get(name fieldpath.Name) any {
	childPath := v.prefix.Join(name)
	child, ok := tree.Get(v.snapshot, childPath)
	if !ok {
		// Absent children read as nil terminals and are still tracked,
		// so a subscriber sees the field appear later.
		v.log.Record(childPath)
		return nil
	}
	switch tree.KindOf(child) {
	case tree.Map:
		return &MapView{view{snapshot: v.snapshot, prefix: childPath, log: v.log}}
	case tree.Sequence:
		return &SequenceView{view{snapshot: v.snapshot, prefix: childPath, log: v.log}}
	}
	v.log.Record(childPath)
	return child
}

func (v *view) has(name fieldpath.Name) bool {
	_, ok := tree.Get(v.snapshot, v.prefix.Join(name))
	return ok
}

func (v *view) set(name fieldpath.Name, _ any) error {
	return &DirectMutationError{Op: "set", Path: v.prefix.Join(name)}
}

func (v *view) delete(name fieldpath.Name) error {
	return &DirectMutationError{Op: "delete", Path: v.prefix.Join(name)}
}

// MapView is the keyed view variant.
type MapView struct {
	view
}

func (m *MapView) Get(name fieldpath.Name) any  { return m.get(name) }
func (m *MapView) Has(name fieldpath.Name) bool { return m.has(name) }

func (m *MapView) Set(name fieldpath.Name, v any) error {
	return m.set(name, v)
}

func (m *MapView) Delete(name fieldpath.Name) error { return m.delete(name) }

// Field reads the named field, like Get with a field segment.
func (m *MapView) Field(field string) any {
	return m.get(fieldpath.FieldName(field))
}

func (m *MapView) Names() []fieldpath.Name {
	mv, _ := m.value().(map[string]any)
	keys := slices.Sorted(maps.Keys(mv))
	names := make([]fieldpath.Name, len(keys))
	for i, k := range keys {
		names[i] = fieldpath.FieldName(k)
	}
	return names
}

func (m *MapView) Len() int {
	mv, _ := m.value().(map[string]any)
	return len(mv)
}

// SequenceView is the indexed view variant.
type SequenceView struct {
	view
}

func (s *SequenceView) Get(name fieldpath.Name) any  { return s.get(name) }
func (s *SequenceView) Has(name fieldpath.Name) bool { return s.has(name) }

func (s *SequenceView) Set(name fieldpath.Name, v any) error {
	return s.set(name, v)
}

func (s *SequenceView) Delete(name fieldpath.Name) error { return s.delete(name) }

// At reads the element at index i, like Get with an index segment.
func (s *SequenceView) At(i int) any {
	return s.get(fieldpath.IndexName(i))
}

func (s *SequenceView) Names() []fieldpath.Name {
	sv, _ := s.value().([]any)
	names := make([]fieldpath.Name, len(sv))
	for i := range sv {
		names[i] = fieldpath.IndexName(i)
	}
	return names
}

func (s *SequenceView) Len() int {
	sv, _ := s.value().([]any)
	return len(sv)
}
