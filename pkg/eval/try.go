package eval

import (
	"github.com/kristofer/quest/pkg/ast"
	"github.com/kristofer/quest/pkg/object"
	"github.com/kristofer/quest/pkg/scope"
)

// execTryStmt implements spec.md §4.5.2: catch clauses are tried in
// declaration order, the first whose type annotation matches (or carries no
// annotation) wins; ensure always runs on every exit path, and an exception
// raised inside ensure itself dominates whatever the body or a catch clause
// produced (spec.md §9 "Ensure ordering").
func (e *Evaluator) execTryStmt(env *scope.Scope, n *ast.TryStmt) (object.Object, error) {
	result, err := e.execBlock(env.Push(), n.Body)

	if exc, ok := err.(*object.Exception); ok {
		for _, c := range n.Catches {
			if c.Type != "" && !exc.IsA(c.Type) {
				continue
			}
			frame := env.Push()
			if c.Name != "" {
				frame.Declare(c.Name, exc, false)
			}
			result, err = e.execBlock(frame, c.Body)
			break
		}
	}

	if n.Ensure != nil {
		if _, ensureErr := e.execBlock(env.Push(), n.Ensure); ensureErr != nil {
			return nil, ensureErr
		}
	}
	return result, err
}
