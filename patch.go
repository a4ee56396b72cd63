package formbind

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

// ApplyPatch applies an RFC 6902 JSON patch to the snapshot with Update
// semantics. The patch runs against the draft inside the update, so
// updates landing before this one are never overwritten. The snapshot
// round-trips through JSON, so numeric terminals come back as float64.
func (s *Store) ApplyPatch(patchJSON []byte, opts UpdateOptions) error {
	ops, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return fmt.Errorf("decode patch: %w", err)
	}
	var patchErr error
	err = s.Update(func(draft any) any {
		doc, err := json.Marshal(draft)
		if err != nil {
			patchErr = fmt.Errorf("encode form: %w", err)
			return nil
		}
		out, err := ops.Apply(doc)
		if err != nil {
			patchErr = fmt.Errorf("apply patch: %w", err)
			return nil
		}
		var next any
		if err := json.Unmarshal(out, &next); err != nil {
			patchErr = fmt.Errorf("decode patched form: %w", err)
			return nil
		}
		return next
	}, opts)
	if err != nil {
		return err
	}
	return patchErr
}
