package object

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// StackEntry records one call-site frame for an Exception's stack trace.
// Grounded on the teacher's pkg/vm/errors.go StackFrame (Name/SourceLine/
// SourceCol), generalized from bytecode instruction-pointer bookkeeping to
// the tree walker's call-site positions.
type StackEntry struct {
	FunName string
	Line    int
	Col     int
}

func (e StackEntry) String() string {
	if e.FunName == "" {
		return fmt.Sprintf("at %d:%d", e.Line, e.Col)
	}
	return fmt.Sprintf("at %s (%d:%d)", e.FunName, e.Line, e.Col)
}

// Exception is Quest's raised-error value. Kind names the taxonomy entry
// (e.g. "ValueErr", "TypeErr", "NameErr", "IndexErr", "KeyErr", "ArgErr",
// "OverflowErr", "IOErr", "ImportErr", "RuntimeErr") per spec.md §4.5's
// exception hierarchy; Cause optionally
// chains to a prior Exception (`raise e as cause`).
type Exception struct {
	ExcKind string
	Message string
	Stack   []StackEntry
	Cause   *Exception
	// WrappedGoErr can hold a Go-level error behind this exception; it is
	// never surfaced to `.message()`. Nothing in this module sets or reads
	// it: the module loader puts the wrapped read error's text into Message.
	WrappedGoErr error
}

func NewException(kind, message string) *Exception {
	return &Exception{ExcKind: kind, Message: message}
}

func (e *Exception) Kind() Kind { return EXCEPTION }
func (e *Exception) Display() string {
	return e.ExcKind + ": " + e.Message
}
func (e *Exception) Inspect() string {
	var b strings.Builder
	b.WriteString(e.Display())
	for _, fr := range e.Stack {
		b.WriteString("\n  " + fr.String())
	}
	if e.Cause != nil {
		b.WriteString("\ncaused by: " + e.Cause.Display())
	}
	return b.String()
}
func (e *Exception) IsTruthy() bool { return true }

// PrettyTrace renders this exception and its cause chain as an indented
// tree: one branch per raised exception, with its call-stack frames as
// leaves underneath. Intended for a human-facing diagnostic dump (an
// uncaught exception report, a `sys` debug surface) rather than the
// catch-clause-visible `.stack()` accessor, which stays a plain Array.
func (e *Exception) PrettyTrace() string {
	root := treeprint.New()
	root.SetValue(e.Display())
	appendTrace(root, e)
	return root.String()
}

func appendTrace(node treeprint.Tree, e *Exception) {
	for _, fr := range e.Stack {
		node.AddNode(fr.String())
	}
	if e.Cause != nil {
		branch := node.AddBranch("caused by: " + e.Cause.Display())
		appendTrace(branch, e.Cause)
	}
}

// errorKinds is the set of leaf kinds spec.md §4.5.1/§7 places directly
// under the hierarchy's middle tier, "Error" (root "Exception" -> "Error"
// -> one of these). A catch clause naming "Error" must therefore match any
// of them, not just the root.
var errorKinds = map[string]bool{
	"TypeErr":      true,
	"NameErr":      true,
	"AttrErr":      true,
	"IndexErr":     true,
	"KeyErr":       true,
	"ValueErr":     true,
	"ArgErr":       true,
	"OverflowErr":  true,
	"IOErr":        true,
	"ImportErr":    true,
	"RuntimeErr":   true,
	"ZeroDivErr":   true,
	"RecursionErr": true,
}

// IsA reports whether this exception's kind matches name or one of its
// ancestors in the taxonomy: every kind is-a its own kind, "Error" (if it's
// one of the modeled leaf kinds), and "Exception" (the root) per spec.md
// §4.5.1's "a catch clause matches a kind or any ancestor".
func (e *Exception) IsA(name string) bool {
	if name == e.ExcKind {
		return true
	}
	if name == "Exception" {
		return true
	}
	if name == "Error" {
		return errorKinds[e.ExcKind]
	}
	return false
}

// Error implements the Go error interface so *Exception can flow through
// ordinary Go error-returning code paths inside pkg/eval.
func (e *Exception) Error() string { return e.Display() }
