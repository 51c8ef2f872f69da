// Package script compiles user functions written in tengo into signal.Func
// values.
//
// A script defines fn := func(x) { ... }. The runtime appends a dispatch
// loop that maps fn over a whole sample array per run, and injects the
// builtin functions as the immutable map sig.
package script

import (
	"fmt"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/convolve/signal"
)

const dispatchScript = `
__ys = []
for __x in __xs {
	__ys = append(__ys, fn(__x))
}
`

// Func is a compiled tengo user function.
type Func struct {
	name string

	mu       sync.Mutex
	compiled *tengo.Compiled
}

// Compile compiles src as the user function called name.
func Compile(name, src string) (*Func, error) {
	script := tengo.NewScript([]byte(src + "\n" + dispatchScript))
	_ = script.Add("sig", hostModule())
	_ = script.Add("__xs", &tengo.Array{})
	_ = script.Add("__ys", &tengo.Array{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Func{name: name, compiled: compiled}, nil
}

// Name returns the name the function was compiled under.
func (f *Func) Name() string {
	return f.name
}

// Eval runs fn over xs.
func (f *Func) Eval(xs []float64) ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	in := make([]tengo.Object, len(xs))
	for i, x := range xs {
		in[i] = &tengo.Float{Value: x}
	}
	if err := f.compiled.Set("__xs", &tengo.Array{Value: in}); err != nil {
		return nil, fmt.Errorf("script: eval %s: %w", f.name, err)
	}
	if err := f.compiled.Run(); err != nil {
		return nil, fmt.Errorf("script: eval %s: %w", f.name, err)
	}

	arr, ok := f.compiled.Get("__ys").Object().(*tengo.Array)
	if !ok {
		return nil, fmt.Errorf("script: eval %s: dispatch produced no array", f.name)
	}
	out := make([]float64, len(arr.Value))
	for i, o := range arr.Value {
		v, ok := objectAsFloat(o)
		if !ok {
			return nil, fmt.Errorf("script: eval %s: fn(%g) returned %s, want a number", f.name, xs[i], o.TypeName())
		}
		out[i] = v
	}
	return out, nil
}

func objectAsFloat(o tengo.Object) (float64, bool) {
	if b, ok := o.(*tengo.Bool); ok {
		if b.IsFalsy() {
			return 0, true
		}
		return 1, true
	}
	return tengo.ToFloat64(o)
}

func hostModule() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	for _, name := range signal.BuiltinNames() {
		fn, _ := signal.Builtin(name)
		values[name] = builtinFunction(name, fn)
	}
	return &tengo.ImmutableMap{Value: values}
}

func builtinFunction(name string, fn signal.Pointwise) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, ok := objectAsFloat(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{
				Name:     "x",
				Expected: "float(compatible)",
				Found:    args[0].TypeName(),
			}
		}
		return &tengo.Float{Value: fn(x)}, nil
	}}
}

// IsScriptRef reports whether a function reference names a script rather
// than a builtin.
func IsScriptRef(ref string) bool {
	return strings.HasPrefix(ref, "script:") || strings.HasSuffix(ref, ".tengo")
}
