package eval

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kristofer/quest/pkg/ast"
	"github.com/kristofer/quest/pkg/object"
	"github.com/kristofer/quest/pkg/parser"
	"github.com/kristofer/quest/pkg/scope"
	"github.com/pkg/errors"
)

// execUseStmt implements spec.md §3.4/§6.2 module loading: canonical-path
// caching so a module is only ever evaluated once per run, circular-import
// detection, and the two binding forms (`use "path" as name` and
// `use "path" { a, b, c }`).
func (e *Evaluator) execUseStmt(env *scope.Scope, n *ast.UseStmt) error {
	resolved, err := e.resolveModulePath(n.Path)
	if err != nil {
		return err
	}

	if e.loading[resolved] {
		return e.newExcf("ImportErr", "circular import of '%s'", n.Path)
	}

	mod, cached := e.modules[resolved]
	if cached {
		e.Log.ModuleCacheHit(resolved)
	} else {
		e.Log.ModuleCacheMiss(resolved)
		e.loading[resolved] = true
		loaded, err := e.loadModule(resolved)
		delete(e.loading, resolved)
		if err != nil {
			return err
		}
		mod = loaded
		e.modules[resolved] = mod
	}
	e.Log.ImportResolved(n.Path, resolved)

	if len(n.Members) > 0 {
		for _, m := range n.Members {
			v, ok := mod.Get(m)
			if !ok {
				return e.newExcf("ImportErr", "module '%s' has no member '%s'", n.Path, m)
			}
			if err := e.declareName(env, m, v, false); err != nil {
				return err
			}
		}
		return nil
	}

	name := n.As
	if name == "" {
		name = mod.Name
	}
	return e.declareName(env, name, mod, false)
}

// resolveModulePath canonicalizes a `use` path per spec.md §3.4's three
// forms: "std/..." is the runtime's standard library, out of scope for the
// core and always an ImportErr here; "./..." and "../..." resolve relative
// to the evaluating script's directory; anything else is searched across
// internal/config's ModuleSearchPath.
func (e *Evaluator) resolveModulePath(path string) (string, error) {
	if strings.HasPrefix(path, "std/") {
		return "", e.newExcf("ImportErr", "standard library module '%s' is not available", path)
	}
	if strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../") {
		dir := e.ScriptDir
		if dir == "" {
			dir = "."
		}
		return withModuleExt(filepath.Join(dir, path)), nil
	}
	for _, root := range e.ModuleSearchPath {
		candidate := withModuleExt(filepath.Join(root, path))
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", e.newExcf("ImportErr", "module '%s' not found on the module search path", path)
}

func withModuleExt(path string) string {
	if strings.HasSuffix(path, ".qst") {
		return path
	}
	return path + ".qst"
}

// loadModule reads, parses, and evaluates the file at resolved, returning a
// flat snapshot of its top-level bindings (spec.md §3.4: a module is a fixed
// snapshot, not a live link into the defining scope). Every top-level
// UserFun is stamped with ModuleBinding so sibling module functions can call
// each other without closing over their own defining scope (spec.md §9).
func (e *Evaluator) loadModule(resolved string) (*object.Module, error) {
	src, err := os.ReadFile(resolved)
	if err != nil {
		return nil, e.newExcf("ImportErr", "%s", errors.Wrapf(err, "read module %s", resolved).Error())
	}

	program, err := parser.New(string(src)).ParseProgram()
	if err != nil {
		return nil, e.newExcf("ImportErr", "parse module %s: %s", resolved, err.Error())
	}

	name := strings.TrimSuffix(filepath.Base(resolved), ".qst")
	mod := object.NewModule(name, resolved)

	moduleScope := e.NewGlobalScope()
	prevDir := e.ScriptDir
	e.ScriptDir = filepath.Dir(resolved)
	_, runErr := e.Run(program, moduleScope)
	e.ScriptDir = prevDir
	if runErr != nil {
		return nil, runErr
	}

	// moduleScope is the child frame NewGlobalScope() pushes over the
	// builtins root, so Names() here reflects only the module body's own
	// top-level let/const/fun/type/trait declarations (spec.md §6.3) —
	// puts/print/str/len/type/id/sys/StringIO live one frame up and never
	// show up in Bindings.
	for _, n := range moduleScope.Names() {
		v, _ := moduleScope.Get(n)
		if fn, ok := v.(*object.UserFun); ok {
			fn.ModuleBinding = mod
		}
		mod.Bindings[n] = v
	}
	return mod, nil
}
