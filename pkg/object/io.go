package object

import (
	"strconv"
	"strings"
)

// OutputTarget is anything `puts`/`print` can write to: the real process
// stdout/stderr, or a StringIO capture buffer installed by `sys.redirect_
// stream` (spec.md §4.7). This is distinct from internal/diag's zap
// logger — OutputTarget is the *language-visible* output path; diagnostics
// never touch it.
type OutputTarget interface {
	WriteString(s string) (int, error)
}

// SystemStream wraps a real OS stream (stdout/stderr) as an OutputTarget.
type SystemStream struct {
	Name string // "stdout" | "stderr"
	w    interface {
		WriteString(s string) (int, error)
	}
}

func NewSystemStream(name string, w interface {
	WriteString(s string) (int, error)
}) *SystemStream {
	return &SystemStream{Name: name, w: w}
}

func (s *SystemStream) Kind() Kind        { return SYSTEM_STREAM }
func (s *SystemStream) Display() string   { return "<stream " + s.Name + ">" }
func (s *SystemStream) Inspect() string   { return s.Display() }
func (s *SystemStream) IsTruthy() bool    { return true }
func (s *SystemStream) WriteString(str string) (int, error) { return s.w.WriteString(str) }

// StringIO is an in-memory OutputTarget, the redirect destination for
// capturing `puts`/`print` output in tests and embedding hosts.
type StringIO struct {
	buf strings.Builder
}

func NewStringIO() *StringIO { return &StringIO{} }

func (s *StringIO) Kind() Kind      { return STRINGIO }
func (s *StringIO) Display() string { return s.buf.String() }
func (s *StringIO) Inspect() string { return "<StringIO " + fmtLen(s.buf.Len()) + ">" }
func (s *StringIO) IsTruthy() bool  { return s.buf.Len() > 0 }
func (s *StringIO) WriteString(str string) (int, error) { return s.buf.WriteString(str) }
func (s *StringIO) String() string  { return s.buf.String() }

func fmtLen(n int) string {
	if n == 1 {
		return "1 byte"
	}
	return strconv.Itoa(n) + " bytes"
}

// RedirectGuard is the value `sys.redirect_stream(...)`'s `with`-usable
// context manager returns: on `_exit()` it restores the previous target,
// implementing the LIFO redirect-stack discipline of spec.md §4.7.
type RedirectGuard struct {
	Previous OutputTarget
	Restore  func(OutputTarget)
}

func (g *RedirectGuard) Kind() Kind      { return REDIRECT_GUARD }
func (g *RedirectGuard) Display() string { return "<redirect guard>" }
func (g *RedirectGuard) Inspect() string { return g.Display() }
func (g *RedirectGuard) IsTruthy() bool  { return true }

// Exit restores the prior output target; called by the with-statement
// runtime (spec.md §4.6) or explicitly via `.restore()`.
func (g *RedirectGuard) Exit() {
	if g.Restore != nil {
		g.Restore(g.Previous)
		g.Restore = nil
	}
}
