package builtins

import "github.com/cwbudde/go-mjs/internal/object"

// Bootstrap wires up every intrinsic prototype, constructor, and global
// function/object onto host in the two-phase order ES5 itself requires:
// Object.prototype first (every other prototype's own [[Prototype]]),
// then Function.prototype (itself a function, so it must exist before any
// other native function object can be created), then the remaining
// prototypes and their constructors, then the free-standing globals.
func Bootstrap(host Host) {
	h := host.Heap()

	objectProto := object.New(h, "Object", 0)
	host.SetPrototype("Object", objectProto)

	functionProto := object.NewFunction(h, objectProto, nil, false, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		return object.Undefined, nil
	}, nil)
	host.SetPrototype("Function", functionProto)

	globalPos := object.New(h, "global", objectProto)
	host.SetGlobal(globalPos)

	registerObject(host, objectProto)
	registerFunction(host, functionProto)
	registerArray(host)
	registerBoolean(host)
	registerNumber(host)
	registerString(host)
	registerError(host)
	registerMath(host)
	registerConsole(host)
	registerGlobalFunctions(host)
}
