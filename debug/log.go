package debug

import (
	"encoding/json"
	"fmt"
	"os"
)

// Logf writes a debug line to stderr. Tree-shaped args render as
// indented JSON so nested snapshots stay readable.
func Logf(msg string, args ...any) {
	for i := range args {
		switch a := args[i].(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
