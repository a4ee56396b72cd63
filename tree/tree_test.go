package tree

import (
	"math"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/formbind/go-formbind/fieldpath"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want Kind
	}{
		{"nil", nil, Terminal},
		{"string", "x", Terminal},
		{"int", 3, Terminal},
		{"plain map", map[string]any{}, Map},
		{"sequence", []any{1}, Sequence},
		{"func", func() {}, Func},
		{"typed map", map[string]int{}, Terminal},
		{"typed slice", []string{"a"}, Terminal},
		{"struct", struct{ X int }{}, Terminal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.v); got != tt.want {
				t.Errorf("KindOf(%v) = %s, want %s", tt.v, got, tt.want)
			}
		})
	}
}

func TestGet(t *testing.T) {
	root := map[string]any{
		"user": map[string]any{
			"name": "zoe",
			"pets": []any{
				map[string]any{"kind": "cat"},
			},
		},
		"gone": nil,
	}
	tests := []struct {
		path   string
		want   any
		wantOK bool
	}{
		{"", root, true},
		{"user.name", "zoe", true},
		{"user.pets[0].kind", "cat", true},
		{"user.pets.0.kind", "cat", true}, // digit field addresses the index
		{"user.age", nil, false},
		{"user.name.x", nil, false}, // through a terminal
		{"user.pets[3]", nil, false},
		{"gone", nil, true},
		{"gone.x", nil, false}, // short-circuit on nil
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := Get(root, fieldpath.MustParse(tt.path))
			if ok != tt.wantOK {
				t.Fatalf("Get(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Get(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestSetAutoVivify(t *testing.T) {
	root := map[string]any{}
	if err := Set(root, fieldpath.MustParse("a.b.c"), 1, MakeMap); err != nil {
		t.Fatalf("Set: %v", err)
	}
	want := map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("after Set (-want +got):\n%s", diff)
	}
}

func TestSetRoundTrip(t *testing.T) {
	// Siblings and disjoint subtrees only: once "a" holds a terminal,
	// writing beneath it is a refused write, covered by TestSetErrors.
	paths := []string{"a", "x.y.z", "x.y.w", "p.q"}
	root := map[string]any{}
	for i, p := range paths {
		path := fieldpath.MustParse(p)
		if err := Set(root, path, i, MakeMap); err != nil {
			t.Fatalf("Set(%q): %v", p, err)
		}
		got, ok := Get(root, path)
		if !ok || got != i {
			t.Errorf("Get(%q) = %v, %v after Set %d", p, got, ok, i)
		}
	}
}

func TestSetSequenceElement(t *testing.T) {
	root := map[string]any{"items": []any{map[string]any{"id": 1}, map[string]any{"id": 2}}}
	if err := Set(root, fieldpath.MustParse("items[1].id"), 9, MakeMap); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, _ := Get(root, fieldpath.MustParse("items[1].id"))
	if got != 9 {
		t.Errorf("items[1].id = %v, want 9", got)
	}
	if err := Set(root, fieldpath.MustParse("items[5]"), 0, MakeMap); err == nil {
		t.Errorf("out-of-range sequence write should fail")
	}
}

func TestSetErrors(t *testing.T) {
	root := map[string]any{"s": "terminal"}
	if err := Set(root, nil, 1, MakeMap); err != ErrEmptyPath {
		t.Errorf("empty path error = %v, want ErrEmptyPath", err)
	}
	// "s" exists as a terminal, so the walk must not overwrite it.
	if err := Set(root, fieldpath.MustParse("s.x"), 1, MakeMap); err == nil {
		t.Errorf("write through terminal should fail")
	}
	if root["s"] != "terminal" {
		t.Errorf("failed write mutated existing terminal: %v", root["s"])
	}
}

func TestEqual(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same string", "a", "a", true},
		{"diff string", "a", "b", false},
		{"int vs float", 1, 1.0, true},
		{"uint vs int", uint64(3), 3, true},
		{"NaN equals NaN", nan, nan, true},
		{"NaN vs number", nan, 1.0, false},
		{"nil vs nil", nil, nil, true},
		{"nil vs zero", nil, 0, false},
		{"equal maps", map[string]any{"a": 1}, map[string]any{"a": 1.0}, true},
		{"extra key", map[string]any{"a": 1}, map[string]any{"a": 1, "b": 2}, false},
		{"nested NaN", map[string]any{"x": nan}, map[string]any{"x": nan}, true},
		{"equal seqs", []any{1, "a"}, []any{1, "a"}, true},
		{"seq length", []any{1}, []any{1, 2}, false},
		{"map vs seq", map[string]any{}, []any{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestClone(t *testing.T) {
	root := map[string]any{"a": map[string]any{"b": []any{1, 2}}}
	dup := Clone(root).(map[string]any)
	if err := Set(dup, fieldpath.MustParse("a.b[0]"), 9, MakeMap); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := Get(root, fieldpath.MustParse("a.b[0]")); got != 1 {
		t.Errorf("clone aliased the original: a.b[0] = %v", got)
	}
}

func TestChangedLeaves(t *testing.T) {
	oldv := map[string]any{
		"user":  map[string]any{"name": "zoe", "age": 3},
		"items": []any{1, 2},
		"same":  "x",
	}
	newv := map[string]any{
		"user":  map[string]any{"name": "amy", "age": 3},
		"items": []any{1, 2, 3},
		"same":  "x",
	}
	got := ChangedLeaves(oldv, newv)
	var gotStrs []string
	for _, p := range got {
		gotStrs = append(gotStrs, p.String())
	}
	want := []string{"items[2]", "user.name"}
	if !reflect.DeepEqual(gotStrs, want) {
		t.Errorf("ChangedLeaves = %v, want %v", gotStrs, want)
	}
}

func TestChangedLeavesShapeChange(t *testing.T) {
	oldv := map[string]any{"a": map[string]any{"b": 1}}
	newv := map[string]any{"a": "terminal"}
	got := ChangedLeaves(oldv, newv)
	if len(got) != 1 || got[0].String() != "a" {
		t.Errorf("ChangedLeaves = %v, want [a]", got)
	}
	if diff := ChangedLeaves(oldv, oldv); len(diff) != 0 {
		t.Errorf("identical trees reported changes: %v", diff)
	}
}
