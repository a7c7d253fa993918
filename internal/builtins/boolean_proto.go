package builtins

import "github.com/cwbudde/go-mjs/internal/object"

func registerBoolean(host Host) {
	h := host.Heap()
	proto := object.New(h, "Boolean", host.Prototype("Object"))
	host.SetPrototype("Boolean", proto)
	object.Get(h, proto).Internal = object.False.ToRepresentation()

	PutNativeFunction(host, proto, "toString", 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		b, err := booleanValueOf(host, this)
		if err != nil {
			return object.Undefined, err
		}
		if b {
			return object.NewGoString(h, "true"), nil
		}
		return object.NewGoString(h, "false"), nil
	})

	PutNativeFunction(host, proto, "valueOf", 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		b, err := booleanValueOf(host, this)
		if err != nil {
			return object.Undefined, err
		}
		return object.Bool(b), nil
	})

	ctor := MakeConstructable(h, host.Prototype("Function"), "Boolean", 1,
		func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
			return object.Bool(host.ToBooleanHost(arg(args, 0))), nil
		},
		func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
			inst := object.New(h, "Boolean", proto)
			object.Get(h, inst).Internal = object.Bool(host.ToBooleanHost(arg(args, 0))).ToRepresentation()
			return object.ObjectAt(inst), nil
		})
	linkConstructor(h, ctor, proto)
	object.Get(h, host.Global()).DefineOwnProperty("Boolean", object.ObjectAt(ctor).ToRepresentation(), object.DontEnum)
}

func booleanValueOf(host Host, this object.Value) (bool, error) {
	if this.IsBoolean() {
		return this.Bool(), nil
	}
	if this.IsObject() {
		internal := object.FromRepresentation(object.Get(host.Heap(), this.Pos()).Internal)
		if internal.IsBoolean() {
			return internal.Bool(), nil
		}
	}
	return false, host.Throw("TypeError", "Boolean.prototype method called on incompatible receiver")
}
