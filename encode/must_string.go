package encode

import (
	"bytes"
	"fmt"
)

// MustString renders snapshot with Encode. It panics on write error,
// which a bytes.Buffer never returns.
func MustString(snapshot any, opts ...EncodeOption) string {
	var buf bytes.Buffer
	if err := Encode(snapshot, &buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}

func asString(v any) string {
	return fmt.Sprintf("%v", v)
}
