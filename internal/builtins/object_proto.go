package builtins

import (
	"github.com/cwbudde/go-mjs/internal/heap"
	"github.com/cwbudde/go-mjs/internal/object"
)

func registerObject(host Host, proto heap.Pos) {
	h := host.Heap()

	PutNativeFunction(host, proto, "toString", 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		if this.IsNullOrUndefined() {
			return object.NewGoString(h, "[object Undefined]"), nil
		}
		class := "Object"
		if this.IsObject() {
			class = object.Get(h, this.Pos()).ClassName
		}
		return object.NewGoString(h, "[object "+class+"]"), nil
	})

	PutNativeFunction(host, proto, "valueOf", 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		return this, nil
	})

	PutNativeFunction(host, proto, "hasOwnProperty", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		if !this.IsObject() {
			return object.False, nil
		}
		name, err := host.ToStringHost(arg(args, 0))
		if err != nil {
			return object.Undefined, err
		}
		return object.Bool(object.Get(h, this.Pos()).HasOwnProperty(name)), nil
	})

	PutNativeFunction(host, proto, "isPrototypeOf", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		v := arg(args, 0)
		if !this.IsObject() || !v.IsObject() {
			return object.False, nil
		}
		for cur := object.Get(h, v.Pos()).Prototype; cur != 0; cur = object.Get(h, cur).Prototype {
			if cur == this.Pos() {
				return object.True, nil
			}
		}
		return object.False, nil
	})

	PutNativeFunction(host, proto, "propertyIsEnumerable", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		if !this.IsObject() {
			return object.False, nil
		}
		name, err := host.ToStringHost(arg(args, 0))
		if err != nil {
			return object.Undefined, err
		}
		obj := object.Get(h, this.Pos())
		for _, k := range obj.OwnKeys(true) {
			if k == name {
				return object.True, nil
			}
		}
		return object.False, nil
	})

	ctor := MakeConstructable(h, host.Prototype("Function"), "Object", 1,
		func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
			v := arg(args, 0)
			if v.IsNullOrUndefined() {
				return object.ObjectAt(object.New(h, "Object", proto)), nil
			}
			return v, nil
		},
		func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
			v := arg(args, 0)
			if v.IsObject() {
				return v, nil
			}
			return object.Undefined, nil
		})
	linkConstructor(h, ctor, proto)

	PutNativeFunction(host, ctor, "keys", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		v := arg(args, 0)
		if !v.IsObject() {
			return object.Undefined, host.Throw("TypeError", "Object.keys called on non-object")
		}
		obj := object.Get(h, v.Pos())
		var keys []string
		if obj.Variant == object.VariantArray {
			keys = append(keys, obj.ArrayOwnIndexKeys()...)
		}
		keys = append(keys, obj.OwnKeys(true)...)
		arr := object.NewArray(h, host.Prototype("Array"))
		arrObj := object.Get(h, arr)
		for i, k := range keys {
			arrObj.ArrayPut(h, itoaKey(i), object.NewGoString(h, k))
		}
		return object.ObjectAt(arr), nil
	})

	PutNativeFunction(host, ctor, "getPrototypeOf", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		v := arg(args, 0)
		if !v.IsObject() {
			return object.Undefined, host.Throw("TypeError", "Object.getPrototypeOf called on non-object")
		}
		p := object.Get(h, v.Pos()).Prototype
		if p == 0 {
			return object.Null, nil
		}
		return object.ObjectAt(p), nil
	})

	PutNativeFunction(host, ctor, "create", 2, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		protoArg := arg(args, 0)
		var protoPos heap.Pos
		if protoArg.IsObject() {
			protoPos = protoArg.Pos()
		} else if !protoArg.IsNull() {
			return object.Undefined, host.Throw("TypeError", "Object prototype may only be an Object or null")
		}
		return object.ObjectAt(object.New(h, "Object", protoPos)), nil
	})

	object.Get(h, host.Global()).DefineOwnProperty("Object", object.ObjectAt(ctor).ToRepresentation(), object.DontEnum)
}

// linkConstructor wires the standard ctor.prototype / proto.constructor
// pair (ES5 §15's intrinsic-constructor layout) shared by every family in
// this package.
func linkConstructor(h *heap.Heap, ctor, proto heap.Pos) {
	object.Get(h, ctor).DefineOwnProperty("prototype", object.ObjectAt(proto).ToRepresentation(), object.ReadOnly|object.DontEnum|object.DontDelete)
	object.Get(h, proto).DefineOwnProperty("constructor", object.ObjectAt(ctor).ToRepresentation(), object.DontEnum)
}

func itoaKey(i int) string {
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
