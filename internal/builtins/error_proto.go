package builtins

import (
	"github.com/cwbudde/go-mjs/internal/heap"
	"github.com/cwbudde/go-mjs/internal/object"
)

// errorSubtypes lists the native error constructors spec.md's thrown-kind
// taxonomy needs beyond the base Error: every abstract-operation failure
// (ToNumber on a Symbol, calling a non-function, an out-of-range array
// length) is thrown as one of these (ES5 §15.11.6).
var errorSubtypes = []string{"TypeError", "RangeError", "ReferenceError", "SyntaxError", "EvalError", "URIError"}

func registerError(host Host) {
	h := host.Heap()
	proto := object.New(h, "Error", host.Prototype("Object"))
	host.SetPrototype("Error", proto)
	proto2 := object.Get(h, proto)
	proto2.DefineOwnProperty("name", object.NewGoString(h, "Error").ToRepresentation(), object.DontEnum)
	proto2.DefineOwnProperty("message", object.NewGoString(h, "").ToRepresentation(), object.DontEnum)

	PutNativeFunction(host, proto, "toString", 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		name := "Error"
		if v, err := object.GetProperty(rt, this.Pos(), "name"); err == nil && !v.IsUndefined() {
			if s, err := host.ToStringHost(v); err == nil {
				name = s
			}
		}
		msg := ""
		if v, err := object.GetProperty(rt, this.Pos(), "message"); err == nil && !v.IsUndefined() {
			if s, err := host.ToStringHost(v); err == nil {
				msg = s
			}
		}
		if msg == "" {
			return object.NewGoString(h, name), nil
		}
		return object.NewGoString(h, name+": "+msg), nil
	})

	errorCtor := makeErrorCtor(host, proto, "Error")
	linkConstructor(h, errorCtor, proto)
	object.Get(h, host.Global()).DefineOwnProperty("Error", object.ObjectAt(errorCtor).ToRepresentation(), object.DontEnum)

	for _, name := range errorSubtypes {
		subProto := object.New(h, "Error", proto)
		host.SetPrototype(name, subProto)
		object.Get(h, subProto).DefineOwnProperty("name", object.NewGoString(h, name).ToRepresentation(), object.DontEnum)
		ctor := makeErrorCtor(host, subProto, name)
		linkConstructor(h, ctor, subProto)
		object.Get(h, host.Global()).DefineOwnProperty(name, object.ObjectAt(ctor).ToRepresentation(), object.DontEnum)
	}
}

func makeErrorCtor(host Host, proto heap.Pos, name string) heap.Pos {
	h := host.Heap()
	fill := func(this object.Value, args []object.Value) (object.Value, error) {
		if a := arg(args, 0); !a.IsUndefined() {
			s, err := host.ToStringHost(a)
			if err != nil {
				return object.Undefined, err
			}
			object.Get(h, this.Pos()).DefineOwnProperty("message", object.NewGoString(h, s).ToRepresentation(), object.DontEnum)
		}
		return this, nil
	}
	return MakeConstructable(h, host.Prototype("Function"), name, 1,
		func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
			inst := object.ObjectAt(object.New(h, "Error", proto))
			return fill(inst, args)
		},
		func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
			return fill(this, args)
		})
}
