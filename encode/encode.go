package encode

import (
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/formbind/go-formbind/fieldpath"
	"github.com/formbind/go-formbind/tree"
)

type EncState struct {
	depth, indent int

	accessed map[string]bool

	Color func(Class, ColorAttr, string) string
}

// Encode writes snapshot to w, one field per line, map fields in
// sorted order.
func Encode(snapshot any, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	switch tree.KindOf(snapshot) {
	case tree.Map, tree.Sequence:
		return encode(snapshot, nil, w, es)
	default:
		return writeString(w, es.scalar(snapshot)+"\n")
	}
}

func encode(v any, at fieldpath.Path, w io.Writer, es *EncState) error {
	switch tree.KindOf(v) {
	case tree.Map:
		mv := v.(map[string]any)
		for _, field := range slices.Sorted(maps.Keys(mv)) {
			child := at.Join(fieldpath.FieldName(field))
			label := es.label(FieldClass, field, child)
			if err := es.entry(w, label, mv[field], child); err != nil {
				return err
			}
		}
		return nil
	case tree.Sequence:
		for i, elt := range v.([]any) {
			child := at.Join(fieldpath.IndexName(i))
			label := es.label(IndexClass, "["+strconv.Itoa(i)+"]", child)
			if err := es.entry(w, label, elt, child); err != nil {
				return err
			}
		}
		return nil
	default:
		return writeString(w, es.scalar(v)+"\n")
	}
}

// entry writes one "label: ..." line and recurses into containers.
func (es *EncState) entry(w io.Writer, label string, v any, at fieldpath.Path) error {
	pad := strings.Repeat(strings.Repeat(" ", es.indent), es.depth)
	if err := writeString(w, pad+label+es.color(FieldClass, SepColor, ":")); err != nil {
		return err
	}
	switch tree.KindOf(v) {
	case tree.Map:
		if len(v.(map[string]any)) == 0 {
			return writeString(w, " {}\n")
		}
	case tree.Sequence:
		if len(v.([]any)) == 0 {
			return writeString(w, " []\n")
		}
	default:
		return writeString(w, " "+es.scalar(v)+"\n")
	}
	if err := writeString(w, "\n"); err != nil {
		return err
	}
	es.depth++
	defer func() { es.depth-- }()
	return encode(v, at, w, es)
}

func (es *EncState) label(class Class, text string, at fieldpath.Path) string {
	if es.accessed[at.String()] {
		return es.color(class, AccessedColor, text)
	}
	return es.color(class, FieldColor, text)
}

func (es *EncState) scalar(v any) string {
	var class Class
	var text string
	switch t := v.(type) {
	case nil:
		class, text = NullClass, "null"
	case bool:
		class, text = BoolClass, strconv.FormatBool(t)
	case string:
		class, text = StringClass, quoteIfNeeded(t)
	case float64:
		class, text = NumberClass, strconv.FormatFloat(t, 'g', -1, 64)
	case int:
		class, text = NumberClass, strconv.Itoa(t)
	case int64:
		class, text = NumberClass, strconv.FormatInt(t, 10)
	default:
		if tree.IsCallable(v) {
			class, text = FuncClass, "func()"
		} else {
			class, text = StringClass, quoteIfNeeded(asString(v))
		}
	}
	return es.color(class, ValueColor, text)
}

func (es *EncState) color(cl Class, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(cl, a, s)
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, ":#\n") ||
		s != strings.TrimSpace(s) {
		return strconv.Quote(s)
	}
	return s
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}
