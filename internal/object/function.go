package object

import "github.com/cwbudde/go-mjs/internal/heap"

// FuncData is the function-object extension of spec.md §3.7: the
// declared parameter names (their count is the function's `length`), the
// strict-mode flag inherited from the function body's directive
// prologue, and an opaque Closure the evaluator attaches its own
// scope/AST-node pair to. This package never inspects Closure; it exists
// purely so CallValue can route through Object.Call uniformly for both
// native and script-defined functions.
type FuncData struct {
	ParamNames []string
	Strict     bool
	Closure    any
}

// NewFunction allocates a function object. call is invoked for both plain
// calls and, when construct is nil, `new` expressions too (native
// constructors that don't need a fresh `this` pass construct=nil and rely
// on Call alone, matching the behavior of natives like Boolean/Number
// used as converters).
func NewFunction(h *heap.Heap, prototype heap.Pos, paramNames []string, strict bool, call CallFunc, construct ConstructFunc) heap.Pos {
	return h.Make(objectType, &Object{
		ClassName:  "Function",
		Prototype:  prototype,
		Internal:   heap.UndefinedRepr,
		Extensible: true,
		Variant:    VariantFunction,
		Func: &FuncData{
			ParamNames: paramNames,
			Strict:     strict,
		},
		Call:      call,
		Construct: construct,
	})
}

// ErrNotCallable is a sentinel error for a value that is not callable.
// CallValue does not return it: a non-callable fn is reported there as a
// thrown TypeError through rt.Throw.
type notCallableError struct{}

func (*notCallableError) Error() string { return "value is not callable" }

var ErrNotCallable = &notCallableError{}

// CallValue invokes fn (expected to be an Object whose Call is non-nil)
// with the given receiver and arguments. Both native functions and
// script-defined functions are invoked through this single path: the
// evaluator, when materializing a script function, sets Object.Call to a
// closure that runs the function body against Func.Closure, so this
// package never needs to know how script bodies execute.
func CallValue(rt Runtime, fn Value, this Value, args []Value) (Value, error) {
	if !fn.IsObject() {
		return Undefined, rt.Throw("TypeError", "value is not a function")
	}
	obj := Get(rt.Heap(), fn.Pos())
	if obj.Call == nil {
		return Undefined, rt.Throw("TypeError", "value is not a function")
	}
	return obj.Call(rt, this, args)
}

// ConstructValue invokes fn's Construct body, or falls back to Call with a
// freshly allocated `this` when Construct is nil and Call is present
// (spec.md §4.4 rule 5's default construct behavior for natives that
// don't need special instance setup).
func ConstructValue(rt Runtime, fn Value, args []Value) (Value, error) {
	if !fn.IsObject() {
		return Undefined, rt.Throw("TypeError", "value is not a constructor")
	}
	obj := Get(rt.Heap(), fn.Pos())
	if obj.Construct != nil {
		protoPos := rt.ObjectPrototype()
		if proto, ok, err := obj.GetOwnProperty(rt, "prototype", fn); err == nil && ok && proto.IsObject() {
			protoPos = proto.Pos()
		}
		instPos := New(rt.Heap(), obj.ClassName, protoPos)
		this := ObjectAt(instPos)
		result, err := obj.Construct(rt, this, args)
		if err != nil {
			return Undefined, err
		}
		if result.IsObject() {
			return result, nil
		}
		return this, nil
	}
	if obj.Call != nil {
		protoPos := rt.ObjectPrototype()
		if proto, ok, err := obj.GetOwnProperty(rt, "prototype", Undefined); err == nil && ok && proto.IsObject() {
			protoPos = proto.Pos()
		}
		instPos := New(rt.Heap(), obj.ClassName, protoPos)
		this := ObjectAt(instPos)
		result, err := obj.Call(rt, this, args)
		if err != nil {
			return Undefined, err
		}
		if result.IsObject() {
			return result, nil
		}
		return this, nil
	}
	return Undefined, rt.Throw("TypeError", "value is not a constructor")
}
