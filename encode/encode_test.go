package encode

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/formbind/go-formbind/fieldpath"
)

func TestEncodePlain(t *testing.T) {
	snapshot := map[string]any{
		"user": map[string]any{
			"name": "zoe",
			"age":  float64(41),
		},
		"items": []any{
			map[string]any{"id": "a"},
			"loose",
		},
		"ok":    true,
		"notes": nil,
		"empty": map[string]any{},
	}
	want := strings.Join([]string{
		"empty: {}",
		"items:",
		"  [0]:",
		"    id: a",
		"  [1]: loose",
		"notes: null",
		"ok: true",
		"user:",
		"  age: 41",
		"  name: zoe",
		"",
	}, "\n")
	if got := MustString(snapshot); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeScalarRoot(t *testing.T) {
	if got := MustString("hello"); got != "hello\n" {
		t.Errorf("got %q", got)
	}
}

func TestEncodeQuoting(t *testing.T) {
	snapshot := map[string]any{"a": "x: y", "b": " padded ", "c": ""}
	got := MustString(snapshot)
	for _, want := range []string{`a: "x: y"`, `b: " padded "`, `c: ""`} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestEncodeFunc(t *testing.T) {
	snapshot := map[string]any{"submit": func() {}}
	if got := MustString(snapshot); !strings.Contains(got, "submit: func()") {
		t.Errorf("got %q", got)
	}
}

func TestAccessedMarks(t *testing.T) {
	snapshot := map[string]any{
		"user": map[string]any{"name": "zoe", "age": float64(41)},
	}
	noColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = noColor }()

	colors := NewColors()
	accessed := colors.Get(FieldClass, AccessedColor)("name")
	got := MustString(snapshot,
		EncodeColors(colors),
		Accessed([]fieldpath.Path{fieldpath.MustParse("user.name")}))
	if !strings.Contains(got, accessed) {
		t.Errorf("accessed field not marked in %q", got)
	}
}
