package evaluator

import (
	"github.com/cwbudde/go-mjs/internal/ast"
	"github.com/cwbudde/go-mjs/internal/heap"
	"github.com/cwbudde/go-mjs/internal/interp/runtime"
	"github.com/cwbudde/go-mjs/internal/object"
)

// funcClosure is the Closure payload every script-defined function object
// carries (spec.md §3.7/§9's "heap-allocated closure object... declares
// its own move/fixup for captured heap references"): the function's AST,
// the lexical scope it closed over, its strict-mode flag, and its own
// heap position (kept current across collections via FixupClosure so
// arguments.callee always resolves to a live position).
type funcClosure struct {
	lit      *ast.FunctionLiteral
	defScope *runtime.Scope
	strict   bool
	self     heap.Pos
}

// FixupClosure implements object.ClosureFixer: it re-registers both the
// captured scope chain and this function's own self-position with the
// in-progress collection, invoked from objectType's Fixup callback.
func (fc *funcClosure) FixupClosure(h *heap.Heap) {
	runtime.FixupChain(h, fc.defScope)
	pos := fc.self
	h.RegisterFixup(&pos)
	h.RegisterPostFixup(func() { fc.self = pos })
}

// makeFunction allocates a function object for lit, closing over scope.
// selfBind is true only for named function *expressions* (ES5 §13): it
// wraps scope in an extra declarative scope binding the function's own
// name, read-only, so the function can recurse through its own name
// without that name leaking into (or being reassignable from) the
// enclosing scope. Function *declarations* already get a normal mutable
// binding from the hoisting pass and pass selfBind=false.
func (e *Evaluator) makeFunction(lit *ast.FunctionLiteral, scope *runtime.Scope, selfBind bool) (object.Value, error) {
	strict := e.strict || lit.Strict
	paramNames := make([]string, len(lit.Params))
	for i, p := range lit.Params {
		paramNames[i] = p.Name
	}

	fc := &funcClosure{lit: lit, defScope: scope, strict: strict}
	call := func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		return e.invoke(fc, this, args)
	}
	pos := object.NewFunction(e.heap, e.Prototype("Function"), paramNames, strict, call, nil)
	fc.self = pos
	fnVal := object.ObjectAt(pos)

	if selfBind && lit.Name != "" {
		named := runtime.NewDeclarativeScope(scope)
		named.DeclareImmutable(lit.Name, fnVal)
		fc.defScope = named
	}

	obj := object.Get(e.heap, pos)
	obj.Func.Closure = fc
	obj.DefineOwnProperty("length", object.Number(float64(len(lit.Params))).ToRepresentation(), object.ReadOnly|object.DontEnum|object.DontDelete)
	obj.DefineOwnProperty("name", object.NewGoString(e.heap, lit.Name).ToRepresentation(), object.ReadOnly|object.DontEnum|object.DontDelete)

	protoPos := object.New(e.heap, "Object", e.Prototype("Object"))
	object.Get(e.heap, protoPos).DefineOwnProperty("constructor", fnVal.ToRepresentation(), object.DontEnum)
	obj.DefineOwnProperty("prototype", object.ObjectAt(protoPos).ToRepresentation(), object.DontDelete)

	return fnVal, nil
}

// invoke runs fc's body against this/args, implementing spec.md §4.4's
// seven-step function-invocation algorithm.
func (e *Evaluator) invoke(fc *funcClosure, this object.Value, args []object.Value) (object.Value, error) {
	pos := fc.lit.Pos()
	prevPos := e.pushPos(pos)
	defer e.popPos(prevPos)

	name := fc.lit.Name
	if name == "" {
		name = "<anonymous>"
	}
	if err := e.callStack.Push(name, e.sourceFile, pos); err != nil {
		return object.Undefined, e.Throw("RangeError", err.Error())
	}
	defer e.callStack.Pop()

	var thisVal object.Value
	switch {
	case fc.strict:
		thisVal = this
	case this.IsNullOrUndefined():
		thisVal = object.ObjectAt(e.Global())
	default:
		boxed, err := e.ToObject(this)
		if err != nil {
			return object.Undefined, err
		}
		thisVal = boxed
	}

	callScope := runtime.NewFunctionScope(fc.defScope, thisVal)

	calleeVal := object.ObjectAt(fc.self)
	argsPos := e.makeArguments(fc, callScope, args, calleeVal)
	if err := callScope.DeclareFunction(e, "arguments", object.ObjectAt(argsPos), false); err != nil {
		return object.Undefined, err
	}

	for i, p := range fc.lit.Params {
		v := object.Undefined
		if i < len(args) {
			v = args[i]
		}
		if err := callScope.DeclareFunction(e, p.Name, v, false); err != nil {
			return object.Undefined, err
		}
	}

	prevScope := e.pushScope(callScope)
	defer e.popScope(prevScope)
	prevStrict := e.pushStrict(fc.strict)
	defer e.popStrict(prevStrict)

	if err := e.hoistFunctionBody(fc.lit.Body); err != nil {
		return object.Undefined, err
	}
	for _, stmt := range fc.lit.Body.Statements {
		e.maybeTrace(stmt)
		comp, err := e.execStatement(stmt)
		if err != nil {
			return object.Undefined, err
		}
		if comp.Kind == runtime.Return {
			return comp.Value, nil
		}
		if comp.IsAbrupt() {
			break
		}
	}
	return object.Undefined, nil
}

// makeArguments builds the arguments object (ES5 §10.6): in non-strict
// mode its indexed slots alias the named parameter bindings in scope
// (writes to arguments[i] are visible through the parameter name and vice
// versa), backed by NativeData getters/setters that read/write scope
// directly; in strict mode (and for indices beyond the declared
// parameter count) each slot is a plain, unaliased copy.
func (e *Evaluator) makeArguments(fc *funcClosure, scope *runtime.Scope, args []object.Value, callee object.Value) heap.Pos {
	pos := object.New(e.heap, "Arguments", e.Prototype("Object"))
	obj := object.Get(e.heap, pos)
	obj.Variant = object.VariantNative
	obj.Native = object.NewNativeData()

	for i := 0; i < len(args); i++ {
		idx := i
		if !fc.strict && idx < len(fc.lit.Params) {
			paramName := fc.lit.Params[idx].Name
			obj.Native.Define(argKey(idx),
				func(rt object.Runtime, this object.Value) (object.Value, error) {
					v, _, err := scope.GetBindingValue(e, paramName)
					return v, err
				},
				func(rt object.Runtime, this object.Value, val object.Value) error {
					return scope.SetMutableBinding(e, paramName, val, false)
				})
			continue
		}
		val := args[idx]
		obj.Native.Define(argKey(idx),
			func(rt object.Runtime, this object.Value) (object.Value, error) { return val, nil },
			func(rt object.Runtime, this object.Value, v object.Value) error { val = v; return nil })
	}

	obj.DefineOwnProperty("length", object.Number(float64(len(args))).ToRepresentation(), object.DontEnum)
	if fc.strict {
		thrower := e.throwerFunction()
		accessor := object.NewAccessor(e.heap, thrower, thrower)
		obj.DefineOwnProperty("callee", accessor, object.Accessor|object.DontEnum|object.DontDelete)
		obj.DefineOwnProperty("caller", accessor, object.Accessor|object.DontEnum|object.DontDelete)
	} else {
		obj.DefineOwnProperty("callee", callee.ToRepresentation(), object.DontEnum)
	}
	return pos
}

// throwerFunction is the ES5 §10.6 "[[ThrowTypeError]]" native function
// shared by a strict-mode arguments object's callee/caller accessors.
func (e *Evaluator) throwerFunction() object.Value {
	pos := object.NewFunction(e.heap, e.Prototype("Function"), nil, true,
		func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
			return object.Undefined, e.Throw("TypeError", "'caller' and 'callee' may not be accessed in strict mode")
		}, nil)
	return object.ObjectAt(pos)
}

func argKey(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [10]byte
	p := len(buf)
	for i > 0 {
		p--
		buf[p] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[p:])
}
