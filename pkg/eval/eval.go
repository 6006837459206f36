// Package eval implements Quest's tree-walking evaluator (spec.md §4.4):
// expression evaluation, statement execution, control flow, function calls,
// method dispatch, the exception system, the with-statement context-manager
// runtime, and I/O redirection.
package eval

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/kristofer/quest/internal/config"
	"github.com/kristofer/quest/internal/diag"
	"github.com/kristofer/quest/pkg/ast"
	"github.com/kristofer/quest/pkg/object"
	"github.com/kristofer/quest/pkg/scope"
	"github.com/kristofer/quest/pkg/token"
)

// Evaluator holds the state shared across one program run: the current
// call stack (for exception stack traces), the current I/O redirect
// targets, recursion-depth bookkeeping, and the diagnostics logger.
//
// Output targets live on the Evaluator rather than threaded through every
// Scope: since evaluation is single-threaded (spec.md §5) a call made while
// stdout is redirected naturally observes the same Evaluator, which is the
// "scope inheritance" spec.md §4.7 asks for without extra plumbing.
type Evaluator struct {
	MaxCallDepth int
	Log          *diag.Logger

	Stdout object.OutputTarget
	Stderr object.OutputTarget

	callStack []object.StackEntry

	// ScriptDir is the directory `use "./..."` paths resolve relative to.
	ScriptDir string
	// ModuleSearchPath lists additional roots consulted for a `use` path
	// that is neither "std/..." nor relative.
	ModuleSearchPath []string
	modules          map[string]*object.Module
	loading          map[string]bool

	exitCode    int
	exitCalled  bool
}

// New builds an Evaluator from an embedding configuration.
func New(cfg *config.Config) *Evaluator {
	if cfg == nil {
		cfg = config.Default()
	}
	log := diag.Noop()
	if cfg.Trace {
		if l, err := diag.New(true); err == nil {
			log = l
		}
	}
	return &Evaluator{
		MaxCallDepth:     cfg.MaxCallDepth,
		Log:              log,
		Stdout:           object.NewSystemStream("stdout", os.Stdout),
		Stderr:           object.NewSystemStream("stderr", os.Stderr),
		ModuleSearchPath: cfg.ModuleSearchPath,
		modules:          make(map[string]*object.Module),
		loading:          make(map[string]bool),
	}
}

// ExitRequested reports whether `sys.exit(code)` was called during
// evaluation, and the code it was called with.
func (e *Evaluator) ExitRequested() (int, bool) { return e.exitCode, e.exitCalled }

// NewGlobalScope builds the scope a script or module body executes its
// top-level statements in. Builtins (puts, print, str, len, type, id, sys,
// StringIO) live in their own parent frame, never the frame returned here —
// that keeps two things true at once: a top-level `let` shadowing a builtin
// name is ordinary shadowing rather than an illegal same-frame redeclaration
// (scope.Scope.Declare only rejects redeclaration within one frame), and a
// loaded module's exported bindings (spec.md §6.3, read off this frame's
// own Names()) contain only the module's actual top-level declarations,
// never the builtins every such frame implicitly has access to.
func (e *Evaluator) NewGlobalScope() *scope.Scope {
	root := scope.New()
	e.installBuiltins(root)
	return root.Push()
}

// Run evaluates every top-level statement of program in env in order,
// returning the value of the last expression statement (if any).
func (e *Evaluator) Run(program *ast.Program, env *scope.Scope) (object.Object, error) {
	var result object.Object = object.NilValue
	for _, stmt := range program.Statements {
		v, err := e.execStatement(env, stmt)
		if err != nil {
			if _, ok := err.(*exitSignal); ok {
				return object.NilValue, nil
			}
			if exc, ok := err.(*object.Exception); ok {
				e.Log.TopLevelException(exc.ExcKind, exc.Message)
			}
			return nil, err
		}
		if v != nil {
			result = v
		}
	}
	return result, nil
}

func (e *Evaluator) newExc(kind, msg string) *object.Exception {
	exc := object.NewException(kind, msg)
	exc.Stack = append([]object.StackEntry(nil), e.callStack...)
	return exc
}

func (e *Evaluator) newExcf(kind, format string, args ...interface{}) *object.Exception {
	return e.newExc(kind, fmt.Sprintf(format, args...))
}

// Eval evaluates an expression node to a value.
func (e *Evaluator) Eval(node ast.Expression, env *scope.Scope) (object.Object, error) {
	switch n := node.(type) {
	case *ast.IntLiteral:
		return object.NewInt(n.Value), nil
	case *ast.BigIntLiteral:
		v := new(big.Int)
		if _, ok := v.SetString(n.Text, 10); !ok {
			return nil, e.newExcf("ValueErr", "invalid BigInt literal %q", n.Text)
		}
		return object.NewBigInt(v), nil
	case *ast.FloatLiteral:
		return object.NewFloat(n.Value), nil
	case *ast.StringLiteral:
		return object.NewStr(n.Value), nil
	case *ast.InterpolatedString:
		return e.evalInterpolatedString(n, env)
	case *ast.BoolLiteral:
		return object.NativeBool(n.Value), nil
	case *ast.NilLiteral:
		return object.NilValue, nil
	case *ast.Identifier:
		v, ok := env.Get(n.Name)
		if !ok {
			return nil, e.newExcf("NameErr", "undefined name '%s'", n.Name)
		}
		return v, nil
	case *ast.SelfExpr:
		v, ok := env.Get("self")
		if !ok {
			return nil, e.newExc("NameErr", "'self' is not bound outside a method body")
		}
		return v, nil
	case *ast.ArrayLiteral:
		elems := make([]object.Object, len(n.Elements))
		for i, el := range n.Elements {
			v, err := e.Eval(el, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return object.NewArray(elems), nil
	case *ast.DictLiteral:
		d := object.NewDict()
		for _, entry := range n.Entries {
			k, err := e.Eval(entry.Key, env)
			if err != nil {
				return nil, err
			}
			v, err := e.Eval(entry.Value, env)
			if err != nil {
				return nil, err
			}
			if err := d.Set(k, v); err != nil {
				return nil, e.newExcf("TypeErr", "unhashable dict key of kind %s", k.Kind())
			}
		}
		return d, nil
	case *ast.SetLiteral:
		s := object.NewSet()
		for _, el := range n.Elements {
			v, err := e.Eval(el, env)
			if err != nil {
				return nil, err
			}
			if !s.Add(v) {
				if _, hashable := v.(object.Hashable); !hashable {
					return nil, e.newExcf("TypeErr", "unhashable set member of kind %s", v.Kind())
				}
			}
		}
		return s, nil
	case *ast.RangeExpr:
		return e.evalRangeExpr(n, env)
	case *ast.FunctionLiteral:
		return &object.UserFun{
			Name:    n.Name,
			Params:  n.Params,
			Body:    n.Body,
			Closure: env,
			Doc:     n.Doc,
		}, nil
	case *ast.CallExpr:
		return e.evalCallExpr(n, env)
	case *ast.IndexExpr:
		return e.evalIndexGet(n, env)
	case *ast.MemberExpr:
		recv, err := e.Eval(n.Receiver, env)
		if err != nil {
			return nil, err
		}
		return e.resolveMember(recv, n.Name)
	case *ast.UnaryExpr:
		return e.evalUnary(n, env)
	case *ast.BinaryExpr:
		return e.evalBinary(n, env)
	case *ast.LogicalExpr:
		return e.evalLogical(n, env)
	case *ast.ElvisExpr:
		left, err := e.Eval(n.Left, env)
		if err != nil {
			return nil, err
		}
		if _, isNil := left.(*object.Nil); isNil {
			return e.Eval(n.Right, env)
		}
		return left, nil
	case *ast.TernaryExpr:
		cond, err := e.Eval(n.Cond, env)
		if err != nil {
			return nil, err
		}
		if cond.IsTruthy() {
			return e.Eval(n.Then, env)
		}
		return e.Eval(n.Else, env)
	case *ast.AssignExpr:
		return e.evalAssign(n, env)
	}
	return nil, e.newExcf("RuntimeErr", "cannot evaluate expression of type %T", node)
}

func (e *Evaluator) evalInterpolatedString(n *ast.InterpolatedString, env *scope.Scope) (object.Object, error) {
	var b strings.Builder
	for i, part := range n.Parts {
		b.WriteString(part)
		if i < len(n.Exprs) {
			v, err := e.Eval(n.Exprs[i], env)
			if err != nil {
				return nil, err
			}
			b.WriteString(v.Display())
		}
	}
	return object.NewStr(b.String()), nil
}

func (e *Evaluator) evalRangeExpr(n *ast.RangeExpr, env *scope.Scope) (object.Object, error) {
	start, err := e.Eval(n.Start, env)
	if err != nil {
		return nil, err
	}
	end, err := e.Eval(n.End, env)
	if err != nil {
		return nil, err
	}
	step := int64(1)
	if n.Step != nil {
		stepV, err := e.Eval(n.Step, env)
		if err != nil {
			return nil, err
		}
		si, ok := asInt(stepV)
		if !ok {
			return nil, e.newExc("TypeErr", "range step must be an Int")
		}
		step = si
	}
	startI, ok1 := asInt(start)
	endI, ok2 := asInt(end)
	if !ok1 || !ok2 {
		return nil, e.newExc("TypeErr", "range bounds must be Int")
	}
	if step == 0 {
		return nil, e.newExc("ValueErr", "range step cannot be 0")
	}
	if step < 0 && startI < endI {
		return nil, e.newExc("ValueErr", "negative step requires start >= end")
	}
	return object.NewRange(startI, endI, step, n.Inclusive), nil
}

func asInt(v object.Object) (int64, bool) {
	switch n := v.(type) {
	case *object.Int:
		return n.Value, true
	case *object.Float:
		return int64(n.Value), true
	}
	return 0, false
}

func (e *Evaluator) attrErr(kindName, name string) *object.Exception {
	return e.newExcf("AttrErr", "%s has no attribute '%s'", kindName, name)
}

// declareName wraps scope.Scope.Declare, translating a same-frame
// redeclaration into the NameErr spec.md §7 requires ("redeclaration" is
// listed as one of NameErr's raising conditions).
func (e *Evaluator) declareName(env *scope.Scope, name string, value object.Object, isConst bool) error {
	if err := env.Declare(name, value, isConst); err != nil {
		return e.newExcf("NameErr", "'%s' is already declared in this scope", name)
	}
	return nil
}

// pushFrame/popFrame maintain the call stack used for exception stack
// traces (spec.md §4.5.3, outermost-first order).
func (e *Evaluator) pushFrame(name string, pos token.Position) error {
	if len(e.callStack) >= e.MaxCallDepth {
		return e.newExcf("RuntimeErr", "maximum call depth (%d) exceeded", e.MaxCallDepth)
	}
	if len(e.callStack) >= e.MaxCallDepth*9/10 {
		e.Log.RecursionWarning(len(e.callStack), e.MaxCallDepth)
	}
	e.callStack = append(e.callStack, object.StackEntry{FunName: name, Line: pos.Line, Col: pos.Col})
	return nil
}

func (e *Evaluator) popFrame() {
	if len(e.callStack) > 0 {
		e.callStack = e.callStack[:len(e.callStack)-1]
	}
}
