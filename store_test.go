package formbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formbind/go-formbind/fieldpath"
	"github.com/formbind/go-formbind/tree"
)

func testForm() map[string]any {
	return map[string]any{
		"user": map[string]any{
			"name": "zoe",
			"age":  3,
		},
		"items": []any{
			map[string]any{"id": 1},
			map[string]any{"id": 2},
		},
		"title": "profile",
	}
}

func paths(ss ...string) []fieldpath.Path {
	res := make([]fieldpath.Path, len(ss))
	for i, s := range ss {
		res[i] = fieldpath.MustParse(s)
	}
	return res
}

func TestUpdateNotifiesExactPath(t *testing.T) {
	store := NewStore(testForm())
	hits := 0
	store.Register(paths("user.name"), func(any) { hits++ })

	err := store.Update(func(draft any) any {
		require.NoError(t, tree.Set(draft, fieldpath.MustParse("user.name"), "amy", tree.MakeMap))
		return nil
	}, UpdateOptions{Notify: true})
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
	assert.Equal(t, "amy", get(t, store, "user.name"))
}

func TestUpdateSkipsUntouchedSubscribers(t *testing.T) {
	store := NewStore(testForm())
	nameHits, titleHits := 0, 0
	store.Register(paths("user.name"), func(any) { nameHits++ })
	store.Register(paths("title"), func(any) { titleHits++ })

	err := store.Update(func(draft any) any {
		require.NoError(t, tree.Set(draft, fieldpath.MustParse("title"), "other", tree.MakeMap))
		return nil
	}, UpdateOptions{Notify: true})
	require.NoError(t, err)
	assert.Equal(t, 0, nameHits, "user.name subscriber must not fire for a title change")
	assert.Equal(t, 1, titleHits)
}

func TestAncestorAndDescendantInvalidation(t *testing.T) {
	store := NewStore(testForm())
	subtree, leaf := 0, 0
	// Subscribed to the container: any change beneath it invalidates.
	store.Register(paths("user"), func(any) { subtree++ })
	// Subscribed to a leaf: replacing the whole container invalidates.
	store.Register(paths("user.age"), func(any) { leaf++ })

	err := store.Update(func(draft any) any {
		require.NoError(t, tree.Set(draft, fieldpath.MustParse("user.name"), "amy", tree.MakeMap))
		return nil
	}, UpdateOptions{Notify: true})
	require.NoError(t, err)
	assert.Equal(t, 1, subtree, "ancestor subscriber should see descendant change")
	assert.Equal(t, 0, leaf)

	err = store.Update(func(draft any) any {
		require.NoError(t, tree.Set(draft, fieldpath.MustParse("user"), map[string]any{"name": "amy", "age": 4}, tree.MakeMap))
		return nil
	}, UpdateOptions{Notify: true})
	require.NoError(t, err)
	assert.Equal(t, 2, subtree)
	assert.Equal(t, 1, leaf, "descendant subscriber should see ancestor change")
}

func TestSilentUpdate(t *testing.T) {
	store := NewStore(testForm())
	hits := 0
	store.Register(paths("user.name"), func(any) { hits++ })

	err := store.Update(func(draft any) any {
		require.NoError(t, tree.Set(draft, fieldpath.MustParse("user.name"), "amy", tree.MakeMap))
		return nil
	}, UpdateOptions{Notify: false})
	require.NoError(t, err)
	assert.Equal(t, 0, hits)
	assert.Equal(t, "amy", get(t, store, "user.name"))
}

func TestSnapshotReplacedNotMutated(t *testing.T) {
	store := NewStore(testForm())
	before := store.Form()
	err := store.Update(func(draft any) any {
		require.NoError(t, tree.Set(draft, fieldpath.MustParse("user.name"), "amy", tree.MakeMap))
		return nil
	}, UpdateOptions{})
	require.NoError(t, err)
	v, _ := tree.Get(before, fieldpath.MustParse("user.name"))
	assert.Equal(t, "zoe", v, "old snapshot must stay intact")
	assert.NotEqual(t, before, store.Form())
}

func TestUnsubscribe(t *testing.T) {
	store := NewStore(testForm())
	hits := 0
	unsubscribe := store.Register(paths("user.name", "title"), func(any) { hits++ })
	unsubscribe()
	unsubscribe() // idempotent

	err := store.Update(func(draft any) any {
		require.NoError(t, tree.Set(draft, fieldpath.MustParse("user.name"), "amy", tree.MakeMap))
		return nil
	}, UpdateOptions{Notify: true})
	require.NoError(t, err)
	assert.Equal(t, 0, hits)
}

func TestSubscriberNotifiedOncePerUpdate(t *testing.T) {
	store := NewStore(testForm())
	hits := 0
	store.Register(paths("user.name", "user.age", "title"), func(any) { hits++ })

	err := store.Update(func(draft any) any {
		require.NoError(t, tree.Set(draft, fieldpath.MustParse("user.name"), "amy", tree.MakeMap))
		require.NoError(t, tree.Set(draft, fieldpath.MustParse("user.age"), 4, tree.MakeMap))
		return nil
	}, UpdateOptions{Notify: true})
	require.NoError(t, err)
	assert.Equal(t, 1, hits, "multiple changed paths collapse to one notification")
}

func TestTrigger(t *testing.T) {
	store := NewStore(testForm())
	a, b := 0, 0
	store.Register(paths("user.name"), func(any) { a++ })
	store.Register(paths("title"), func(any) { b++ })
	store.Trigger()
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

func TestTriggerReachesPathlessSubscriber(t *testing.T) {
	store := NewStore(testForm())
	hits := 0
	unsubscribe := store.Register(nil, func(any) { hits++ })

	store.Trigger()
	assert.Equal(t, 1, hits, "a subscriber with no observed paths is still a current subscriber")

	// Path changes still never reach it.
	err := store.Update(func(draft any) any {
		require.NoError(t, tree.Set(draft, fieldpath.MustParse("title"), "x", tree.MakeMap))
		return nil
	}, UpdateOptions{Notify: true})
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	unsubscribe()
	store.Trigger()
	assert.Equal(t, 1, hits)
}

func TestSequenceInvalidation(t *testing.T) {
	store := NewStore(testForm())
	hits := 0
	store.Register(paths("items[1].id"), func(any) { hits++ })

	err := store.Update(func(draft any) any {
		require.NoError(t, tree.Set(draft, fieldpath.MustParse("items[1].id"), 9, tree.MakeMap))
		return nil
	}, UpdateOptions{Notify: true})
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestApplyPatch(t *testing.T) {
	store := NewStore(testForm())
	hits := 0
	store.Register(paths("user.name"), func(any) { hits++ })

	patch := []byte(`[{"op": "replace", "path": "/user/name", "value": "amy"}]`)
	require.NoError(t, store.ApplyPatch(patch, UpdateOptions{Notify: true}))
	assert.Equal(t, "amy", get(t, store, "user.name"))
	assert.Equal(t, 1, hits)

	bad := []byte(`[{"op": "replace", "path": "/missing/field", "value": 1}]`)
	assert.Error(t, store.ApplyPatch(bad, UpdateOptions{}))
	assert.Equal(t, "amy", get(t, store, "user.name"), "failed patch must leave the snapshot intact")
	assert.Equal(t, 1, hits, "failed patch must not notify")
}

func TestApplyPatchComposesWithUpdates(t *testing.T) {
	store := NewStore(testForm())
	err := store.Update(func(draft any) any {
		require.NoError(t, tree.Set(draft, fieldpath.MustParse("user.age"), 4, tree.MakeMap))
		return nil
	}, UpdateOptions{})
	require.NoError(t, err)

	// The patch runs against the draft, so the preceding write survives.
	patch := []byte(`[{"op": "replace", "path": "/user/name", "value": "amy"}]`)
	require.NoError(t, store.ApplyPatch(patch, UpdateOptions{}))
	assert.Equal(t, "amy", get(t, store, "user.name"))
	assert.Equal(t, float64(4), get(t, store, "user.age"))
}

func TestDerive(t *testing.T) {
	store := NewStore(map[string]any{
		"user": map[string]any{"first": "ada", "last": "byron"},
	})
	require.NoError(t, store.Derive(fieldpath.MustParse("fullName"), `user.first + " " + user.last`))
	assert.Equal(t, "ada byron", get(t, store, "fullName"))

	err := store.Update(func(draft any) any {
		require.NoError(t, tree.Set(draft, fieldpath.MustParse("user.last"), "lovelace", tree.MakeMap))
		return nil
	}, UpdateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ada lovelace", get(t, store, "fullName"))

	assert.Error(t, store.Derive(fieldpath.MustParse("bad"), `1 +`), "compile error surfaces")
}

func TestParseYAML(t *testing.T) {
	doc := []byte("user:\n  name: zoe\n  pets:\n    - kind: cat\n")
	v, err := ParseYAML(doc)
	require.NoError(t, err)
	got, ok := tree.Get(v, fieldpath.MustParse("user.pets[0].kind"))
	require.True(t, ok)
	assert.Equal(t, "cat", got)

	out, err := EncodeYAML(v)
	require.NoError(t, err)
	back, err := ParseYAML(out)
	require.NoError(t, err)
	assert.True(t, tree.Equal(v, back))
}

func get(t *testing.T, store *Store, path string) any {
	t.Helper()
	v, ok := tree.Get(store.Form(), fieldpath.MustParse(path))
	require.True(t, ok, "path %s absent", path)
	return v
}
