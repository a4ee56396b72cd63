// Package facade provides read-only, access-tracking views over a form
// snapshot.
//
// A view behaves like the value at a path prefix inside the snapshot.
// Reading a container-valued child returns a deeper view without
// recording anything; reading a terminal (or callable) child appends its
// full path to the pass's AccessLog and returns the value. Traversal is
// free, terminal reads are the unit of subscription.
//
// Views never cache: every read resolves fresh from the snapshot, so the
// classification of a child re-runs on each access. All mutating methods
// fail with *DirectMutationError; writes go through the owning store.
package facade
