package formbind

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/formbind/go-formbind/fieldpath"
	"github.com/formbind/go-formbind/tree"
)

type derivedField struct {
	path fieldpath.Path
	src  string
	prog *vm.Program
}

// Derive installs a derived field: after every update the expression is
// evaluated against the new snapshot and its result written at path
// silently. The current snapshot is recomputed immediately. Expressions
// see the snapshot's top-level fields as variables:
//
//	store.Derive(fieldpath.MustParse("fullName"),
//		`user.first + " " + user.last`)
func (s *Store) Derive(path fieldpath.Path, src string) error {
	if len(path) == 0 {
		return fmt.Errorf("derive: %w", tree.ErrEmptyPath)
	}
	prog, err := expr.Compile(src)
	if err != nil {
		return fmt.Errorf("derive %s: %w", path, err)
	}
	s.mu.Lock()
	s.derived = append(s.derived, &derivedField{path: path, src: src, prog: prog})
	s.mu.Unlock()
	return s.Update(nil, UpdateOptions{})
}

// applyDerived recomputes every derived field on the draft. Callers hold
// s.mu.
func (s *Store) applyDerived(draft any) error {
	if len(s.derived) == 0 {
		return nil
	}
	env, _ := draft.(map[string]any)
	for _, df := range s.derived {
		out, err := expr.Run(df.prog, env)
		if err != nil {
			return fmt.Errorf("derive %s: %w", df.path, err)
		}
		if err := tree.Set(draft, df.path, out, tree.MakeMap); err != nil {
			return fmt.Errorf("derive %s: %w", df.path, err)
		}
	}
	return nil
}
