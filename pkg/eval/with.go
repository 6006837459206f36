package eval

import (
	"github.com/kristofer/quest/pkg/ast"
	"github.com/kristofer/quest/pkg/object"
	"github.com/kristofer/quest/pkg/scope"
)

// execWithStmt implements spec.md §4.6: each manager expression is entered
// left-to-right via its `_enter()` method; a failing `_enter` unwinds the
// managers already entered (their `_exit()` called in reverse) before the
// failure propagates. On normal entry the body runs once, and every entered
// manager's `_exit()` runs in reverse (LIFO) order regardless of how the
// body exited; an exception raised by `_exit` dominates whatever the body
// produced.
func (e *Evaluator) execWithStmt(env *scope.Scope, n *ast.WithStmt) error {
	frame := env.Push()
	managers := make([]object.Object, 0, len(n.Items))

	var entryErr error
	for _, item := range n.Items {
		mgr, err := e.Eval(item.Expr, frame)
		if err != nil {
			entryErr = err
			break
		}
		entered, err := e.enterManager(mgr)
		if err != nil {
			entryErr = err
			break
		}
		managers = append(managers, mgr)
		if item.As != "" {
			if declErr := e.declareName(frame, item.As, entered, false); declErr != nil {
				entryErr = declErr
				break
			}
		}
	}

	var bodyErr error
	if entryErr == nil {
		_, bodyErr = e.execBlock(frame, n.Body)
	}

	exitErr := e.exitManagers(managers)

	if entryErr != nil {
		return entryErr
	}
	if exitErr != nil {
		return exitErr
	}
	return bodyErr
}

func (e *Evaluator) enterManager(mgr object.Object) (object.Object, error) {
	enterFn, err := e.resolveMember(mgr, "_enter")
	if err != nil {
		return nil, err
	}
	return e.applyCallable(enterFn, nil, 0, 0)
}

func (e *Evaluator) exitManagers(managers []object.Object) error {
	var last error
	for i := len(managers) - 1; i >= 0; i-- {
		exitFn, err := e.resolveMember(managers[i], "_exit")
		if err != nil {
			continue
		}
		if _, err := e.applyCallable(exitFn, nil, 0, 0); err != nil {
			last = err
		}
	}
	return last
}
