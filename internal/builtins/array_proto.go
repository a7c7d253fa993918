package builtins

import (
	"sort"

	"github.com/cwbudde/go-mjs/internal/heap"
	"github.com/cwbudde/go-mjs/internal/object"
)

func registerArray(host Host) {
	h := host.Heap()
	proto := object.NewArray(h, host.Prototype("Object"))
	host.SetPrototype("Array", proto)

	length := func(v object.Value) uint32 {
		if lv, ok := object.Get(h, v.Pos()).ArrayGet(h, "length"); ok {
			return uint32(lv.Number())
		}
		return 0
	}

	PutNativeFunction(host, proto, "toString", 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		return joinArray(rt, host, this, ",")
	})

	PutNativeFunction(host, proto, "join", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		sep := ","
		if a := arg(args, 0); !a.IsUndefined() {
			s, err := host.ToStringHost(a)
			if err != nil {
				return object.Undefined, err
			}
			sep = s
		}
		return joinArray(rt, host, this, sep)
	})

	PutNativeFunction(host, proto, "push", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		if !this.IsObject() {
			return object.Undefined, host.Throw("TypeError", "Array.prototype.push called on non-object")
		}
		n := length(this)
		for _, a := range args {
			object.Get(h, this.Pos()).ArrayPut(h, itoaKey(int(n)), a)
			n++
		}
		return object.Number(float64(n)), nil
	})

	PutNativeFunction(host, proto, "pop", 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		n := length(this)
		if n == 0 {
			return object.Undefined, nil
		}
		v, _ := object.Get(h, this.Pos()).ArrayGet(h, itoaKey(int(n-1)))
		object.Get(h, this.Pos()).ArrayPut(h, "length", object.Number(float64(n-1)))
		return v, nil
	})

	PutNativeFunction(host, proto, "slice", 2, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		n := int(length(this))
		start := clampIndex(host, args, 0, n, 0)
		end := clampIndex(host, args, 1, n, n)
		result := object.NewArray(h, proto)
		resultObj := object.Get(h, result)
		out := 0
		for i := start; i < end; i++ {
			v, _ := object.Get(h, this.Pos()).ArrayGet(h, itoaKey(i))
			resultObj.ArrayPut(h, itoaKey(out), v)
			out++
		}
		return object.ObjectAt(result), nil
	})

	PutNativeFunction(host, proto, "concat", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		result := object.NewArray(h, proto)
		resultObj := object.Get(h, result)
		out := 0
		appendOne := func(v object.Value) {
			if v.IsObject() && object.Get(h, v.Pos()).Variant == object.VariantArray {
				n := length(v)
				for i := uint32(0); i < n; i++ {
					item, _ := object.Get(h, v.Pos()).ArrayGet(h, itoaKey(int(i)))
					resultObj.ArrayPut(h, itoaKey(out), item)
					out++
				}
				return
			}
			resultObj.ArrayPut(h, itoaKey(out), v)
			out++
		}
		appendOne(this)
		for _, a := range args {
			appendOne(a)
		}
		return object.ObjectAt(result), nil
	})

	PutNativeFunction(host, proto, "indexOf", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		target := arg(args, 0)
		n := length(this)
		for i := uint32(0); i < n; i++ {
			v, ok := object.Get(h, this.Pos()).ArrayGet(h, itoaKey(int(i)))
			if ok && strictEquals(h, v, target) {
				return object.Number(float64(i)), nil
			}
		}
		return object.Number(-1), nil
	})

	PutNativeFunction(host, proto, "forEach", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		fn := arg(args, 0)
		n := length(this)
		for i := uint32(0); i < n; i++ {
			v, ok := object.Get(h, this.Pos()).ArrayGet(h, itoaKey(int(i)))
			if !ok {
				continue
			}
			if _, err := object.CallValue(rt, fn, object.Undefined, []object.Value{v, object.Number(float64(i)), this}); err != nil {
				return object.Undefined, err
			}
		}
		return object.Undefined, nil
	})

	PutNativeFunction(host, proto, "map", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		fn := arg(args, 0)
		n := length(this)
		result := object.NewArray(h, proto)
		resultObj := object.Get(h, result)
		for i := uint32(0); i < n; i++ {
			v, ok := object.Get(h, this.Pos()).ArrayGet(h, itoaKey(int(i)))
			if !ok {
				continue
			}
			mapped, err := object.CallValue(rt, fn, object.Undefined, []object.Value{v, object.Number(float64(i)), this})
			if err != nil {
				return object.Undefined, err
			}
			resultObj.ArrayPut(h, itoaKey(int(i)), mapped)
		}
		return object.ObjectAt(result), nil
	})

	PutNativeFunction(host, proto, "sort", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		if !this.IsObject() {
			return this, nil
		}
		obj := object.Get(h, this.Pos())
		n := int(length(this))
		items := make([]object.Value, n)
		for i := 0; i < n; i++ {
			items[i], _ = obj.ArrayGet(h, itoaKey(i))
		}
		cmp := arg(args, 0)
		var sortErr error
		sort.SliceStable(items, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			if !cmp.IsUndefined() {
				result, err := object.CallValue(rt, cmp, object.Undefined, []object.Value{items[i], items[j]})
				if err != nil {
					sortErr = err
					return false
				}
				n, err := host.ToNumberHost(result)
				if err != nil {
					sortErr = err
					return false
				}
				return n < 0
			}
			si, err := host.ToStringHost(items[i])
			if err != nil {
				sortErr = err
				return false
			}
			sj, err := host.ToStringHost(items[j])
			if err != nil {
				sortErr = err
				return false
			}
			return si < sj
		})
		if sortErr != nil {
			return object.Undefined, sortErr
		}
		for i, v := range items {
			obj.ArrayPut(h, itoaKey(i), v)
		}
		return this, nil
	})

	ctor := MakeConstructable(h, host.Prototype("Function"), "Array", 1,
		func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
			return arrayFromArgs(h, proto, args), nil
		},
		func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
			return arrayFromArgs(h, proto, args), nil
		})
	linkConstructor(h, ctor, proto)
	object.Get(h, host.Global()).DefineOwnProperty("Array", object.ObjectAt(ctor).ToRepresentation(), object.DontEnum)
}

// arrayFromArgs implements the single-numeric-argument-means-length vs.
// otherwise-means-elements split of ES5 §15.4.1/15.4.2.
func arrayFromArgs(h *heap.Heap, proto heap.Pos, args []object.Value) object.Value {
	pos := object.NewArray(h, proto)
	obj := object.Get(h, pos)
	if len(args) == 1 && args[0].IsNumber() {
		obj.ArrayPut(h, "length", args[0])
		return object.ObjectAt(pos)
	}
	for i, a := range args {
		obj.ArrayPut(h, itoaKey(i), a)
	}
	return object.ObjectAt(pos)
}

func joinArray(rt object.Runtime, host Host, this object.Value, sep string) (object.Value, error) {
	h := host.Heap()
	if !this.IsObject() {
		return object.NewGoString(h, ""), nil
	}
	obj := object.Get(h, this.Pos())
	n := uint32(0)
	if lv, ok := obj.ArrayGet(h, "length"); ok {
		n = uint32(lv.Number())
	}
	out := ""
	for i := uint32(0); i < n; i++ {
		if i > 0 {
			out += sep
		}
		v, ok := obj.ArrayGet(h, itoaKey(int(i)))
		if !ok || v.IsNullOrUndefined() {
			continue
		}
		s, err := host.ToStringHost(v)
		if err != nil {
			return object.Undefined, err
		}
		out += s
	}
	return object.NewGoString(h, out), nil
}

func clampIndex(host Host, args []object.Value, argIdx, n, defaultVal int) int {
	a := arg(args, argIdx)
	if a.IsUndefined() {
		return defaultVal
	}
	f, err := host.ToNumberHost(a)
	if err != nil {
		return defaultVal
	}
	idx := int(f)
	if idx < 0 {
		idx += n
	}
	if idx < 0 {
		idx = 0
	}
	if idx > n {
		idx = n
	}
	return idx
}

func strictEquals(h *heap.Heap, a, b object.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case object.KindUndefined, object.KindNull:
		return true
	case object.KindBoolean:
		return a.Bool() == b.Bool()
	case object.KindNumber:
		return a.Number() == b.Number()
	case object.KindString:
		return object.GoString(h, a) == object.GoString(h, b)
	case object.KindObject:
		return a.Pos() == b.Pos()
	default:
		return false
	}
}
