package encode

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/formbind/go-formbind/fieldpath"
)

type EncodeOption func(*EncState)

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// ColorsFor enables colors when w is a terminal and is a no-op
// otherwise.
func ColorsFor(w io.Writer) EncodeOption {
	return func(es *EncState) {
		f, ok := w.(*os.File)
		if !ok {
			return
		}
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			es.Color = NewColors().Color
		}
	}
}

// Accessed marks the fields at the given paths, typically the ones an
// access log recorded.
func Accessed(paths []fieldpath.Path) EncodeOption {
	return func(es *EncState) {
		if es.accessed == nil {
			es.accessed = map[string]bool{}
		}
		for _, p := range paths {
			es.accessed[p.String()] = true
		}
	}
}
