package builtins

import (
	"strings"

	"github.com/cwbudde/go-mjs/internal/heap"
	"github.com/cwbudde/go-mjs/internal/object"
)

func registerFunction(host Host, proto heap.Pos) {
	h := host.Heap()

	PutNativeFunction(host, proto, "toString", 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		if !this.IsObject() {
			return object.Undefined, host.Throw("TypeError", "Function.prototype.toString called on non-function")
		}
		name := object.Get(h, this.Pos()).ClassName
		return object.NewGoString(h, "function "+name+"() { [native code] }"), nil
	})

	PutNativeFunction(host, proto, "call", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		newThis := arg(args, 0)
		var rest []object.Value
		if len(args) > 1 {
			rest = args[1:]
		}
		return object.CallValue(rt, this, newThis, rest)
	})

	PutNativeFunction(host, proto, "apply", 2, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		newThis := arg(args, 0)
		argArray := arg(args, 1)
		var rest []object.Value
		if argArray.IsObject() {
			arrObj := object.Get(h, argArray.Pos())
			length := uint32(0)
			if lv, ok := arrObj.ArrayGet(h, "length"); ok {
				length = uint32(lv.Number())
			}
			rest = make([]object.Value, length)
			for i := range rest {
				v, err := object.GetProperty(rt, argArray.Pos(), itoaKey(i))
				if err != nil {
					return object.Undefined, err
				}
				rest[i] = v
			}
		}
		return object.CallValue(rt, this, newThis, rest)
	})

	ctor := MakeFunction(h, proto, "Function", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		host := rt.(Host)
		var body string
		var params []string
		for i, a := range args {
			s, err := host.ToStringHost(a)
			if err != nil {
				return object.Undefined, err
			}
			if i == len(args)-1 {
				body = s
			} else {
				params = append(params, s)
			}
		}
		src := "(function(" + strings.Join(params, ",") + "){" + body + "})"
		return host.EvalSource(src, false)
	})
	linkConstructor(h, ctor, proto)
	object.Get(h, host.Global()).DefineOwnProperty("Function", object.ObjectAt(ctor).ToRepresentation(), object.DontEnum)
}
