// Command quest is a minimal script-loader entry point for the core:
// read a file, run it. The CLI/REPL front end a production language
// tool would carry (flags, a line-edited REPL, bytecode compilation) is
// out of scope here — this binary exists only so the evaluator has a
// runnable home and `sys.exit(code)` has somewhere to report to.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kristofer/quest/internal/config"
	"github.com/kristofer/quest/pkg/eval"
	"github.com/kristofer/quest/pkg/parser"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: quest <file.qst>")
		os.Exit(1)
	}
	os.Exit(run(os.Args[1]))
}

func run(filename string) int {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", filename, err)
		return 1
	}

	program, err := parser.New(string(src)).ParseProgram()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		return 1
	}

	cfg, err := config.Load(filepath.Dir(filename))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	ev := eval.New(cfg)
	ev.ScriptDir = filepath.Dir(filename)
	env := ev.NewGlobalScope()

	if _, err := ev.Run(program, env); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if code, called := ev.ExitRequested(); called {
		return code
	}
	return 0
}
