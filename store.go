package formbind

import (
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/formbind/go-formbind/debug"
	"github.com/formbind/go-formbind/fieldpath"
	"github.com/formbind/go-formbind/fieldsmap"
	"github.com/formbind/go-formbind/tree"
)

type subscriber struct {
	id     string
	paths  []fieldpath.Path
	notify func(snapshot any)
}

type subscriberSet = map[*subscriber]struct{}

// Store owns the authoritative form snapshot and the path-indexed
// subscriber registry. Snapshots are replaced, never mutated in place:
// Update clones, applies the mutator to the clone, and swaps.
type Store struct {
	mu   sync.Mutex
	form any
	// subs indexes subscribers by observed path; all holds every live
	// subscriber, including ones with no observed paths, for Trigger.
	subs    *fieldsmap.FieldsMap[subscriberSet]
	all     subscriberSet
	derived []*derivedField
	log     *zap.Logger
}

type StoreOption func(*Store)

// WithLogger attaches a structured logger; the default discards.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

func NewStore(initial any, opts ...StoreOption) *Store {
	s := &Store{
		form: initial,
		subs: fieldsmap.New[subscriberSet](),
		all:  subscriberSet{},
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Form returns the current authoritative snapshot. Callers treat it as
// immutable; a binding pass wraps it in a facade view.
func (s *Store) Form() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Register associates the accessed paths of one completed binding pass
// with an invalidation callback. The returned func removes the
// association and is safe to call more than once.
func (s *Store) Register(paths []fieldpath.Path, onInvalidate func(snapshot any)) func() {
	sub := &subscriber{
		id:     uuid.NewString(),
		paths:  dedupPaths(paths),
		notify: onInvalidate,
	}
	s.mu.Lock()
	s.all[sub] = struct{}{}
	for _, p := range sub.paths {
		set, ok := s.subs.Get(p)
		if !ok {
			set = subscriberSet{}
			s.subs.Set(p, set)
		}
		set[sub] = struct{}{}
	}
	s.mu.Unlock()
	s.log.Debug("registered subscriber",
		zap.String("id", sub.id),
		zap.Int("paths", len(sub.paths)))

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.all, sub)
			for _, p := range sub.paths {
				if set, ok := s.subs.Get(p); ok {
					delete(set, sub)
				}
			}
			s.mu.Unlock()
			s.log.Debug("unsubscribed", zap.String("id", sub.id))
		})
	}
}

func dedupPaths(paths []fieldpath.Path) []fieldpath.Path {
	seen := make(map[string]struct{}, len(paths))
	res := make([]fieldpath.Path, 0, len(paths))
	for _, p := range paths {
		key := p.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		res = append(res, p)
	}
	return res
}

// UpdateOptions controls notification after a mutation. Notify false
// updates the store silently, with no re-binding.
type UpdateOptions struct {
	Notify bool
}

// Update applies mutator to a deep copy of the current snapshot, swaps
// the copy in, and, when opts.Notify is set, invalidates every
// subscriber whose observed paths intersect the changed leaves (at the
// path itself, an ancestor, or a descendant). The mutator may return a
// replacement root; returning nil keeps the mutated draft.
func (s *Store) Update(mutator func(draft any) any, opts UpdateOptions) error {
	s.mu.Lock()
	oldForm := s.form
	draft := tree.Clone(oldForm)
	if mutator != nil {
		if replaced := mutator(draft); replaced != nil {
			draft = replaced
		}
	}
	if err := s.applyDerived(draft); err != nil {
		s.mu.Unlock()
		return err
	}
	s.form = draft

	var targets []*subscriber
	changed := tree.ChangedLeaves(oldForm, draft)
	if opts.Notify {
		targets = s.affected(changed)
	}
	s.mu.Unlock()

	if debug.Invalidate() {
		for _, p := range changed {
			debug.Logf("update: changed %s\n", p)
		}
	}
	s.log.Debug("updated form",
		zap.Int("changed", len(changed)),
		zap.Int("notified", len(targets)),
		zap.Bool("notify", opts.Notify))
	for _, sub := range targets {
		sub.notify(draft)
	}
	return nil
}

// affected collects, in stable order, each subscriber registered at a
// changed path, beneath one, or on the path from the root to one.
// Callers hold s.mu.
func (s *Store) affected(changed []fieldpath.Path) []*subscriber {
	seen := map[*subscriber]struct{}{}
	var res []*subscriber
	add := func(set subscriberSet) {
		ordered := make([]*subscriber, 0, len(set))
		for sub := range set {
			ordered = append(ordered, sub)
		}
		sortSubscribers(ordered)
		for _, sub := range ordered {
			if _, ok := seen[sub]; ok {
				continue
			}
			seen[sub] = struct{}{}
			res = append(res, sub)
		}
	}
	for _, p := range changed {
		// Subscribers at p and every descendant of p.
		for _, set := range s.subs.GetAllNested(p) {
			add(set)
		}
		// Subscribers at strict ancestors of p.
		for i := 0; i < len(p); i++ {
			if set, ok := s.subs.Get(p[:i]); ok {
				add(set)
			}
		}
	}
	return res
}

func sortSubscribers(subs []*subscriber) {
	slices.SortFunc(subs, func(a, b *subscriber) int {
		return strings.Compare(a.id, b.id)
	})
}

// Trigger invalidates every current subscriber independent of any path
// change, for non-path-scoped signaling.
func (s *Store) Trigger() {
	s.mu.Lock()
	targets := make([]*subscriber, 0, len(s.all))
	for sub := range s.all {
		targets = append(targets, sub)
	}
	snapshot := s.form
	s.mu.Unlock()

	sortSubscribers(targets)
	s.log.Debug("trigger", zap.Int("notified", len(targets)))
	for _, sub := range targets {
		sub.notify(snapshot)
	}
}
