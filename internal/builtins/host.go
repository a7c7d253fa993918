// Package builtins hosts the global object bootstrap: the intrinsic
// prototypes (Object, Function, Array, Boolean, Number, String, Error and
// its subtypes), their constructors, a representative Math object,
// console/print, and the global `eval`/`parseInt`/`parseFloat`/`isNaN`/
// `isFinite` functions (spec.md §1's "hosting interface" collaborator
// point, C9). It depends only on internal/heap and internal/object so the
// evaluator package - which implements Host - can import it without a
// cycle.
package builtins

import (
	"io"

	"github.com/cwbudde/go-mjs/internal/heap"
	"github.com/cwbudde/go-mjs/internal/object"
)

// Host is the surface the evaluator exposes so this package can wire up
// the global object without importing the evaluator package. Every
// builtin native function body receives an object.Runtime parameter at
// call time (object.CallFunc's fixed signature); the concrete value is
// always an Evaluator, so bodies recover the rest of this interface with
// a type assertion: host := rt.(builtins.Host).
type Host interface {
	object.Runtime

	Prototype(name string) heap.Pos
	SetPrototype(name string, pos heap.Pos)

	Global() heap.Pos
	SetGlobal(pos heap.Pos)

	Output() io.Writer
	Version() int

	// EvalSource parses and runs source as a Program; direct selects
	// between direct- and indirect-eval scoping (spec.md §4.4).
	EvalSource(source string, direct bool) (object.Value, error)

	ToStringHost(v object.Value) (string, error)
	ToNumberHost(v object.Value) (float64, error)
	ToBooleanHost(v object.Value) bool
	NewStringHost(s string) object.Value
}

// MakeFunction allocates a native function object bound to call, with no
// special construct behavior (so `new` on it falls back to Call against a
// fresh instance per object.ConstructValue's default path).
func MakeFunction(h *heap.Heap, proto heap.Pos, name string, arity int, call object.CallFunc) heap.Pos {
	pos := object.NewFunction(h, proto, paramNames(arity), false, call, nil)
	obj := object.Get(h, pos)
	obj.DefineOwnProperty("length", object.Number(float64(arity)).ToRepresentation(), object.ReadOnly|object.DontEnum|object.DontDelete)
	obj.DefineOwnProperty("name", object.NewGoString(h, name).ToRepresentation(), object.ReadOnly|object.DontEnum|object.DontDelete)
	return pos
}

// MakeConstructable allocates a native function object with distinct call
// and construct bodies, used by the Boolean/Number/String/Array/Error
// family where `new Foo(x)` and `Foo(x)` behave differently (box vs.
// convert, allocate-and-fill vs. plain conversion).
func MakeConstructable(h *heap.Heap, proto heap.Pos, name string, arity int, call object.CallFunc, construct object.ConstructFunc) heap.Pos {
	pos := object.NewFunction(h, proto, paramNames(arity), false, call, construct)
	obj := object.Get(h, pos)
	obj.DefineOwnProperty("length", object.Number(float64(arity)).ToRepresentation(), object.ReadOnly|object.DontEnum|object.DontDelete)
	obj.DefineOwnProperty("name", object.NewGoString(h, name).ToRepresentation(), object.ReadOnly|object.DontEnum|object.DontDelete)
	return pos
}

func paramNames(arity int) []string {
	if arity <= 0 {
		return nil
	}
	names := make([]string, arity)
	for i := range names {
		names[i] = "arg"
	}
	return names
}

// PutNativeFunction defines a DontEnum native-function-valued property on
// the object at pos, the attribute shape every intrinsic method/builtin
// global uses (ES5 §15's "every built-in Function object... [is]
// {[[Writable]]: true, [[Enumerable]]: false, [[Configurable]]: true}").
func PutNativeFunction(host Host, pos heap.Pos, name string, arity int, call object.CallFunc) {
	h := host.Heap()
	fnPos := MakeFunction(h, host.Prototype("Function"), name, arity, call)
	object.Get(h, pos).DefineOwnProperty(name, object.ObjectAt(fnPos).ToRepresentation(), object.DontEnum)
}

// PutPrototypeWithAttributes defines name on pos with the given
// representation and attributes, a thin convenience wrapper used by the
// bootstrap files that define fixed constants (global_functions.go,
// math.go, number_proto.go).
func PutPrototypeWithAttributes(h *heap.Heap, pos heap.Pos, name string, val object.Value, attrs object.Attributes) {
	object.Get(h, pos).DefineOwnProperty(name, val.ToRepresentation(), attrs)
}

// arg returns args[i], or Undefined if the call site passed fewer
// arguments than the native function declares (ES5 §10.6's arguments
// object semantics: missing trailing arguments read as undefined).
func arg(args []object.Value, i int) object.Value {
	if i < len(args) {
		return args[i]
	}
	return object.Undefined
}
