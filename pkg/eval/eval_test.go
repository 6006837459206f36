package eval_test

import (
	"testing"

	"github.com/kristofer/quest/internal/config"
	"github.com/kristofer/quest/pkg/eval"
	"github.com/kristofer/quest/pkg/object"
	"github.com/kristofer/quest/pkg/parser"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (object.Object, error) {
	t.Helper()
	program, err := parser.New(src).ParseProgram()
	require.NoError(t, err, "parse error for source:\n%s", src)
	ev := eval.New(config.Default())
	env := ev.NewGlobalScope()
	return ev.Run(program, env)
}

func mustRun(t *testing.T, src string) object.Object {
	t.Helper()
	v, err := run(t, src)
	require.NoError(t, err, "eval error for source:\n%s", src)
	return v
}

func TestArithmeticPromotion(t *testing.T) {
	v := mustRun(t, `1 + 2 * 3`)
	i, ok := v.(*object.Int)
	require.True(t, ok)
	require.Equal(t, int64(7), i.Value)

	v = mustRun(t, `7 / 2`)
	f, ok := v.(*object.Float)
	require.True(t, ok)
	require.Equal(t, 3.5, f.Value)

	v = mustRun(t, `8 / 2`)
	i, ok = v.(*object.Int)
	require.True(t, ok)
	require.Equal(t, int64(4), i.Value)
}

func TestDivisionByZeroRaisesValueErr(t *testing.T) {
	_, err := run(t, `1 / 0`)
	require.Error(t, err)
	exc, ok := err.(*object.Exception)
	require.True(t, ok)
	require.Equal(t, "ValueErr", exc.ExcKind)
}

func TestStringInterpolation(t *testing.T) {
	v := mustRun(t, "let name = \"world\"\nf\"hello {{name}}!\"")
	s, ok := v.(*object.Str)
	require.True(t, ok)
	require.Equal(t, "hello world!", s.Value)
}

func TestFunctionDefaultsAndVariadic(t *testing.T) {
	v := mustRun(t, `
fun greet(name, greeting = "hi")
    return greeting .. ", " .. name
end
greet("Ada")
`)
	s, ok := v.(*object.Str)
	require.True(t, ok)
	require.Equal(t, "hi, Ada", s.Value)

	v = mustRun(t, `
fun total(*nums)
    let sum = 0
    for n in nums
        sum += n
    end
    return sum
end
total(1, 2, 3, 4)
`)
	i, ok := v.(*object.Int)
	require.True(t, ok)
	require.Equal(t, int64(10), i.Value)
}

func TestRecursiveClosure(t *testing.T) {
	v := mustRun(t, `
fun fact(n)
    if n <= 1
        return 1
    end
    return n * fact(n - 1)
end
fact(6)
`)
	i, ok := v.(*object.Int)
	require.True(t, ok)
	require.Equal(t, int64(720), i.Value)
}

func TestTryCatchEnsure(t *testing.T) {
	v := mustRun(t, `
let log = []
try
    raise "boom"
catch e: RuntimeErr
    log.push("caught")
ensure
    log.push("ensured")
end
log
`)
	arr, ok := v.(*object.Array)
	require.True(t, ok)
	require.Len(t, arr.Elements, 2)
	require.Equal(t, "caught", arr.Elements[0].(*object.Str).Value)
	require.Equal(t, "ensured", arr.Elements[1].(*object.Str).Value)
}

func TestExceptionStackTraceAndCause(t *testing.T) {
	v := mustRun(t, `
fun inner()
    raise "low-level failure"
end

fun outer()
    try
        inner()
    catch e
        raise "wrapped failure" as e
    end
end

try
    outer()
catch e
    e.stack_trace()
end
`)
	s, ok := v.(*object.Str)
	require.True(t, ok)
	require.Contains(t, s.Value, "wrapped failure")
	require.Contains(t, s.Value, "caused by: RuntimeErr: low-level failure")
}

func TestArrayBuiltinMethods(t *testing.T) {
	v := mustRun(t, `
let nums = [1, 2, 3, 4, 5]
nums.filter(fun(n) return n % 2 == 0 end).map(fun(n) return n * 10 end)
`)
	arr, ok := v.(*object.Array)
	require.True(t, ok)
	require.Len(t, arr.Elements, 2)
	require.Equal(t, int64(20), arr.Elements[0].(*object.Int).Value)
	require.Equal(t, int64(40), arr.Elements[1].(*object.Int).Value)
}

func TestMatchWithRangeStep(t *testing.T) {
	v := mustRun(t, `
fun classify(n)
    match n
    in 0 until 10 step 2 ->
        return "even single digit"
    in 0 until 10 ->
        return "odd single digit"
    else ->
        return "other"
    end
end
[classify(4), classify(3), classify(42)]
`)
	arr, ok := v.(*object.Array)
	require.True(t, ok)
	require.Equal(t, "even single digit", arr.Elements[0].(*object.Str).Value)
	require.Equal(t, "odd single digit", arr.Elements[1].(*object.Str).Value)
	require.Equal(t, "other", arr.Elements[2].(*object.Str).Value)
}

func TestStructTraitsAndUpdate(t *testing.T) {
	v := mustRun(t, `
trait Greetable
    fun greeting()
end

type Person
    name
    age

    impl Greetable
    fun greeting(self)
        return "hi " .. self.name
    end
end

let p = Person(name: "Ada", age: 30)
let older = p.update(age: 31)
[p.greeting(), p.does(Greetable), older.age, p.age]
`)
	arr, ok := v.(*object.Array)
	require.True(t, ok)
	require.Equal(t, "hi Ada", arr.Elements[0].(*object.Str).Value)
	require.Equal(t, true, arr.Elements[1].(*object.Bool).Value)
	require.Equal(t, int64(31), arr.Elements[2].(*object.Int).Value)
	require.Equal(t, int64(30), arr.Elements[3].(*object.Int).Value)
}

func TestWithStatementRedirectsOutput(t *testing.T) {
	v := mustRun(t, `
let buf = StringIO.new()
with sys.redirect_stream("stdout", buf) as _
    puts("captured")
end
buf.get_value()
`)
	s, ok := v.(*object.Str)
	require.True(t, ok)
	require.Equal(t, "captured\n", s.Value)
}

func TestSysExitStopsExecution(t *testing.T) {
	program, err := parser.New(`
puts("before")
sys.exit(3)
puts("after")
`).ParseProgram()
	require.NoError(t, err)

	ev := eval.New(config.Default())
	env := ev.NewGlobalScope()
	_, err = ev.Run(program, env)
	require.NoError(t, err)

	code, called := ev.ExitRequested()
	require.True(t, called)
	require.Equal(t, 3, code)
}

func TestLetRedeclarationIsNameErr(t *testing.T) {
	_, err := run(t, `
let x = 1
let x = 2
`)
	exc, ok := err.(*object.Exception)
	require.True(t, ok, "expected an exception, got %v", err)
	require.Equal(t, "NameErr", exc.ExcKind)
}

func TestLetShadowingInChildBlockIsAllowed(t *testing.T) {
	v := mustRun(t, `
let x = 1
if true
    let x = 2
    x
end
`)
	i, ok := v.(*object.Int)
	require.True(t, ok)
	require.Equal(t, int64(2), i.Value)
}

func TestLetShadowingBuiltinNameIsAllowed(t *testing.T) {
	v := mustRun(t, `
let len = 5
len
`)
	i, ok := v.(*object.Int)
	require.True(t, ok)
	require.Equal(t, int64(5), i.Value)
}

func TestCatchErrorMatchesAnyLeafKind(t *testing.T) {
	v := mustRun(t, `
let log = []
try
    let d = {}
    d["missing"]
catch e: Error
    log.push(e.kind())
end
log
`)
	arr, ok := v.(*object.Array)
	require.True(t, ok)
	require.Len(t, arr.Elements, 1)
	require.Equal(t, "KeyErr", arr.Elements[0].(*object.Str).Value)
}
