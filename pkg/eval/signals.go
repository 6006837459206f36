package eval

import "github.com/kristofer/quest/pkg/object"

// breakSignal and continueSignal are control-flow markers propagated as Go
// errors up through statement execution until trapped by the innermost
// loop (spec.md §4.4.2). They carry no value and are never visible to
// Quest-level catch clauses.
type breakSignal struct{}

func (breakSignal) Error() string { return "break outside loop" }

type continueSignal struct{}

func (continueSignal) Error() string { return "continue outside loop" }

// returnSignal carries the value of `return EXPR` up to the enclosing
// function call.
type returnSignal struct{ Value object.Object }

func (r *returnSignal) Error() string { return "return outside function" }

// exitSignal propagates `sys.exit(code)` up through every enclosing frame to
// Run, unwinding the same way returnSignal does rather than terminating the
// Go process directly (spec.md §9 "embedding hosts control process exit").
type exitSignal struct{ Code int }

func (x *exitSignal) Error() string { return "sys.exit" }

func isControlSignal(err error) bool {
	switch err.(type) {
	case breakSignal, continueSignal, *returnSignal, *exitSignal:
		return true
	}
	return false
}
