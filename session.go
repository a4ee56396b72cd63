package formbind

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/formbind/go-formbind/debug"
	"github.com/formbind/go-formbind/facade"
	"github.com/formbind/go-formbind/fieldpath"
	"github.com/formbind/go-formbind/tree"
)

// Session is one binding pass: a tracking view over the snapshot current
// at creation time plus its access record. The pass is closed by
// Register; an abandoned session writes nothing to the store.
type Session struct {
	store    *Store
	id       string
	snapshot any
	log      *facade.AccessLog
	root     facade.View
}

// NewSession starts a binding pass over the current snapshot.
func (s *Store) NewSession() (*Session, error) {
	snapshot := s.Form()
	log := facade.NewLog()
	root, err := facade.New(snapshot, nil, log)
	if err != nil {
		return nil, fmt.Errorf("form snapshot: %w", err)
	}
	sess := &Session{
		store:    s,
		id:       uuid.NewString(),
		snapshot: snapshot,
		log:      log,
		root:     root,
	}
	if debug.Session() {
		debug.Logf("session %s opened\n", sess.id)
	}
	return sess, nil
}

// Form returns the root tracking view for this pass.
func (sess *Session) Form() facade.View {
	return sess.root
}

// Paths returns the access record so far, in read order with duplicates.
func (sess *Session) Paths() []fieldpath.Path {
	return sess.log.Paths()
}

// Binding names a form field for an external control: the full path, the
// dotted name string, and the current value.
type Binding struct {
	Path  fieldpath.Path
	Name  string
	Value any
}

// Field correlates a value obtained from this session's view back to its
// path. Sub-views resolve directly (and their path is recorded, so the
// subscription covers them); terminal values match against the access
// record, newest read first, comparing with NaN-tolerant equality. A
// value that cannot be correlated, or whose snapshot value no longer
// matches, fails with *MisuseError.
func (sess *Session) Field(v any) (*Binding, error) {
	if _, prefix, ok := facade.Resolve(v); ok {
		cur, found := tree.Get(sess.snapshot, prefix)
		if !found {
			return nil, &MisuseError{Value: v, Path: prefix, Reason: "view path no longer present in snapshot"}
		}
		sess.log.Record(prefix)
		return &Binding{Path: prefix, Name: prefix.Dotted(), Value: cur}, nil
	}
	paths := sess.log.Paths()
	for i := len(paths) - 1; i >= 0; i-- {
		cur, found := tree.Get(sess.snapshot, paths[i])
		if !found {
			if v == nil {
				return &Binding{Path: paths[i], Name: paths[i].Dotted(), Value: nil}, nil
			}
			continue
		}
		if tree.Equal(cur, v) {
			return &Binding{Path: paths[i], Name: paths[i].Dotted(), Value: cur}, nil
		}
	}
	return nil, &MisuseError{Value: v, Reason: "value was not read through this session's form view"}
}

// Register closes the pass, associating the access record with
// onInvalidate in the store. The returned func unsubscribes.
func (sess *Session) Register(onInvalidate func(snapshot any)) func() {
	if debug.Session() {
		debug.Logf("session %s registering %d paths\n", sess.id, sess.log.Len())
	}
	return sess.store.Register(sess.log.Paths(), onInvalidate)
}
