package formbind

import (
	"fmt"

	"github.com/formbind/go-formbind/fieldpath"
)

// MisuseError reports a binding-pass value that could not be correlated
// with the session's access record, or whose snapshot value no longer
// matches the supplied one. The binding layer never guesses a path.
type MisuseError struct {
	Value  any
	Path   fieldpath.Path
	Reason string
}

func (e *MisuseError) Error() string {
	if len(e.Path) > 0 {
		return fmt.Sprintf("form binding misuse at %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("form binding misuse: %s", e.Reason)
}
