// Package formbind binds UI-facing form state to fine-grained
// subscriptions.
//
// A Store owns the authoritative form snapshot, a tree of nested
// map[string]any mappings and []any sequences. A binding pass opens a
// Session, reads fields through its read-only tracking view, and
// registers the recorded paths with a callback. A later Update diffs the
// old and new snapshots and invalidates only the subscribers whose
// observed paths (or their ancestors or descendants) actually changed.
//
//	store := formbind.NewStore(map[string]any{
//		"user": map[string]any{"name": "zoe"},
//	})
//	sess, _ := store.NewSession()
//	name := sess.Form().(*facade.MapView).Field("user").(*facade.MapView).Field("name")
//	unsubscribe := sess.Register(func(snapshot any) {
//		// re-render with the new snapshot
//	})
//
// All writes go through Store.Update (or ApplyPatch); writes attempted
// directly on a view fail with facade.DirectMutationError.
package formbind
