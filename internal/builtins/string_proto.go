package builtins

import (
	"math"
	"strings"

	"github.com/cwbudde/go-mjs/internal/object"
)

func registerString(host Host) {
	h := host.Heap()
	proto := object.New(h, "String", host.Prototype("Object"))
	host.SetPrototype("String", proto)
	object.Get(h, proto).Internal = object.NewGoString(h, "").ToRepresentation()

	units := func(this object.Value) ([]uint16, error) {
		if this.IsString() {
			return h.GetString(this.Pos()).Units, nil
		}
		if this.IsObject() {
			internal := object.FromRepresentation(object.Get(h, this.Pos()).Internal)
			if internal.IsString() {
				return h.GetString(internal.Pos()).Units, nil
			}
		}
		return nil, host.Throw("TypeError", "String.prototype method called on incompatible receiver")
	}

	PutNativeFunction(host, proto, "toString", 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		u, err := units(this)
		if err != nil {
			return object.Undefined, err
		}
		return object.StringAt(h.NewString(u)), nil
	})

	PutNativeFunction(host, proto, "valueOf", 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		u, err := units(this)
		if err != nil {
			return object.Undefined, err
		}
		return object.StringAt(h.NewString(u)), nil
	})

	PutNativeFunction(host, proto, "charAt", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		u, err := units(this)
		if err != nil {
			return object.Undefined, err
		}
		idx, err := intArg(host, args, 0)
		if err != nil {
			return object.Undefined, err
		}
		if idx < 0 || idx >= len(u) {
			return object.NewGoString(h, ""), nil
		}
		return object.StringAt(h.NewString(u[idx : idx+1])), nil
	})

	PutNativeFunction(host, proto, "charCodeAt", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		u, err := units(this)
		if err != nil {
			return object.Undefined, err
		}
		idx, err := intArg(host, args, 0)
		if err != nil {
			return object.Undefined, err
		}
		if idx < 0 || idx >= len(u) {
			return object.Number(math.NaN()), nil
		}
		return object.Number(float64(u[idx])), nil
	})

	PutNativeFunction(host, proto, "indexOf", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		u, err := units(this)
		if err != nil {
			return object.Undefined, err
		}
		search, err := host.ToStringHost(arg(args, 0))
		if err != nil {
			return object.Undefined, err
		}
		idx := strings.Index(object.UTF16ToString(u), search)
		if idx < 0 {
			return object.Number(-1), nil
		}
		return object.Number(float64(len(object.UTF16FromString(object.UTF16ToString(u)[:idx])))), nil
	})

	PutNativeFunction(host, proto, "slice", 2, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		u, err := units(this)
		if err != nil {
			return object.Undefined, err
		}
		n := len(u)
		start := clampIndex(host, args, 0, n, 0)
		end := clampIndex(host, args, 1, n, n)
		if end < start {
			end = start
		}
		return object.StringAt(h.NewString(u[start:end])), nil
	})

	PutNativeFunction(host, proto, "substring", 2, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		u, err := units(this)
		if err != nil {
			return object.Undefined, err
		}
		n := len(u)
		start := nonNegIndex(host, args, 0, n, 0)
		end := nonNegIndex(host, args, 1, n, n)
		if start > end {
			start, end = end, start
		}
		return object.StringAt(h.NewString(u[start:end])), nil
	})

	PutNativeFunction(host, proto, "toUpperCase", 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		u, err := units(this)
		if err != nil {
			return object.Undefined, err
		}
		return object.NewGoString(h, strings.ToUpper(object.UTF16ToString(u))), nil
	})

	PutNativeFunction(host, proto, "toLowerCase", 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		u, err := units(this)
		if err != nil {
			return object.Undefined, err
		}
		return object.NewGoString(h, strings.ToLower(object.UTF16ToString(u))), nil
	})

	PutNativeFunction(host, proto, "concat", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		u, err := units(this)
		if err != nil {
			return object.Undefined, err
		}
		out := append([]uint16(nil), u...)
		for _, a := range args {
			s, err := host.ToStringHost(a)
			if err != nil {
				return object.Undefined, err
			}
			out = append(out, object.UTF16FromString(s)...)
		}
		return object.StringAt(h.NewString(out)), nil
	})

	PutNativeFunction(host, proto, "split", 2, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		u, err := units(this)
		if err != nil {
			return object.Undefined, err
		}
		s := object.UTF16ToString(u)
		sepArg := arg(args, 0)
		var parts []string
		if sepArg.IsUndefined() {
			parts = []string{s}
		} else {
			sep, err := host.ToStringHost(sepArg)
			if err != nil {
				return object.Undefined, err
			}
			if sep == "" {
				for _, r := range s {
					parts = append(parts, string(r))
				}
			} else {
				parts = strings.Split(s, sep)
			}
		}
		arr := object.NewArray(h, host.Prototype("Array"))
		arrObj := object.Get(h, arr)
		for i, p := range parts {
			arrObj.ArrayPut(h, itoaKey(i), object.NewGoString(h, p))
		}
		return object.ObjectAt(arr), nil
	})

	ctor := MakeConstructable(h, host.Prototype("Function"), "String", 1,
		func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
			if len(args) == 0 {
				return object.NewGoString(h, ""), nil
			}
			s, err := host.ToStringHost(args[0])
			if err != nil {
				return object.Undefined, err
			}
			return object.NewGoString(h, s), nil
		},
		func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
			s := ""
			if len(args) > 0 {
				var err error
				s, err = host.ToStringHost(args[0])
				if err != nil {
					return object.Undefined, err
				}
			}
			inst := object.New(h, "String", proto)
			object.Get(h, inst).Internal = object.NewGoString(h, s).ToRepresentation()
			return object.ObjectAt(inst), nil
		})
	linkConstructor(h, ctor, proto)

	PutNativeFunction(host, ctor, "fromCharCode", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		out := make([]uint16, len(args))
		for i, a := range args {
			f, err := host.ToNumberHost(a)
			if err != nil {
				return object.Undefined, err
			}
			out[i] = uint16(int64(f))
		}
		return object.StringAt(h.NewString(out)), nil
	})

	object.Get(h, host.Global()).DefineOwnProperty("String", object.ObjectAt(ctor).ToRepresentation(), object.DontEnum)
}

func intArg(host Host, args []object.Value, i int) (int, error) {
	f, err := host.ToNumberHost(arg(args, i))
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func nonNegIndex(host Host, args []object.Value, argIdx, n, defaultVal int) int {
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
		idx = 0
	}
	if idx > n {
		idx = n
	}
	return idx
}
