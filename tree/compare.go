package tree

import (
	"maps"
	"math"
	"reflect"
	"slices"

	"github.com/formbind/go-formbind/fieldpath"
)

// Equal reports deep equality of two tree values. Numeric terminals
// compare by value across integer and float representations, and two NaN
// values compare equal, since NaN is not self-equal under ==.
func Equal(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, bok := toFloat(b)
		if !bok {
			return false
		}
		if math.IsNaN(af) && math.IsNaN(bf) {
			return true
		}
		return af == bf
	}
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, x := range av {
			y, ok := bv[k]
			if !ok || !Equal(x, y) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i, x := range av {
			if !Equal(x, bv[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// ChangedLeaves returns the paths where old and new diverge, walking both
// trees in parallel. Divergence below a shared container reports the
// deepest differing location; a container replaced by a terminal (or a
// key present on one side only) reports the path of the divergence point.
// An identical pair reports nothing; two different roots report the empty
// path.
func ChangedLeaves(oldv, newv any) []fieldpath.Path {
	return changedLeaves(nil, oldv, newv, nil)
}

func changedLeaves(prefix fieldpath.Path, oldv, newv any, dst []fieldpath.Path) []fieldpath.Path {
	switch ov := oldv.(type) {
	case map[string]any:
		nv, ok := newv.(map[string]any)
		if !ok {
			return append(dst, prefix.Clone())
		}
		seen := make(map[string]struct{}, len(ov)+len(nv))
		for k := range ov {
			seen[k] = struct{}{}
		}
		for k := range nv {
			seen[k] = struct{}{}
		}
		for _, k := range slices.Sorted(maps.Keys(seen)) {
			x, inOld := ov[k]
			y, inNew := nv[k]
			child := prefix.Join(fieldpath.FieldName(k))
			if !inOld || !inNew {
				dst = append(dst, child)
				continue
			}
			dst = changedLeaves(child, x, y, dst)
		}
		return dst
	case []any:
		nv, ok := newv.([]any)
		if !ok {
			return append(dst, prefix.Clone())
		}
		n := max(len(ov), len(nv))
		for i := 0; i < n; i++ {
			child := prefix.Join(fieldpath.IndexName(i))
			if i >= len(ov) || i >= len(nv) {
				dst = append(dst, child)
				continue
			}
			dst = changedLeaves(child, ov[i], nv[i], dst)
		}
		return dst
	}
	if Equal(oldv, newv) {
		return dst
	}
	return append(dst, prefix.Clone())
}
