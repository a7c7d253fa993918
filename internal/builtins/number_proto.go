package builtins

import (
	"math"
	"strconv"

	"github.com/cwbudde/go-mjs/internal/object"
)

func registerNumber(host Host) {
	h := host.Heap()
	proto := object.New(h, "Number", host.Prototype("Object"))
	host.SetPrototype("Number", proto)
	object.Get(h, proto).Internal = object.Number(0).ToRepresentation()

	PutNativeFunction(host, proto, "toString", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		n, err := numberValueOf(host, this)
		if err != nil {
			return object.Undefined, err
		}
		radix := 10
		if a := arg(args, 0); !a.IsUndefined() {
			f, err := host.ToNumberHost(a)
			if err != nil {
				return object.Undefined, err
			}
			radix = int(f)
		}
		return object.NewGoString(h, formatNumberRadix(n, radix)), nil
	})

	PutNativeFunction(host, proto, "valueOf", 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		n, err := numberValueOf(host, this)
		if err != nil {
			return object.Undefined, err
		}
		return object.Number(n), nil
	})

	PutNativeFunction(host, proto, "toFixed", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		n, err := numberValueOf(host, this)
		if err != nil {
			return object.Undefined, err
		}
		digits := 0
		if a := arg(args, 0); !a.IsUndefined() {
			f, err := host.ToNumberHost(a)
			if err != nil {
				return object.Undefined, err
			}
			digits = int(f)
		}
		return object.NewGoString(h, strconv.FormatFloat(n, 'f', digits, 64)), nil
	})

	ctor := MakeConstructable(h, host.Prototype("Function"), "Number", 1,
		func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
			if len(args) == 0 {
				return object.Number(0), nil
			}
			f, err := host.ToNumberHost(args[0])
			if err != nil {
				return object.Undefined, err
			}
			return object.Number(f), nil
		},
		func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
			f := 0.0
			if len(args) > 0 {
				var err error
				f, err = host.ToNumberHost(args[0])
				if err != nil {
					return object.Undefined, err
				}
			}
			inst := object.New(h, "Number", proto)
			object.Get(h, inst).Internal = object.Number(f).ToRepresentation()
			return object.ObjectAt(inst), nil
		})
	linkConstructor(h, ctor, proto)
	PutPrototypeWithAttributes(h, ctor, "MAX_VALUE", object.Number(math.MaxFloat64), object.ReadOnly|object.DontEnum|object.DontDelete)
	PutPrototypeWithAttributes(h, ctor, "MIN_VALUE", object.Number(5e-324), object.ReadOnly|object.DontEnum|object.DontDelete)
	PutPrototypeWithAttributes(h, ctor, "NaN", object.Number(math.NaN()), object.ReadOnly|object.DontEnum|object.DontDelete)
	PutPrototypeWithAttributes(h, ctor, "POSITIVE_INFINITY", object.Number(math.Inf(1)), object.ReadOnly|object.DontEnum|object.DontDelete)
	PutPrototypeWithAttributes(h, ctor, "NEGATIVE_INFINITY", object.Number(math.Inf(-1)), object.ReadOnly|object.DontEnum|object.DontDelete)
	object.Get(h, host.Global()).DefineOwnProperty("Number", object.ObjectAt(ctor).ToRepresentation(), object.DontEnum)
}

func numberValueOf(host Host, this object.Value) (float64, error) {
	if this.IsNumber() {
		return this.Number(), nil
	}
	if this.IsObject() {
		internal := object.FromRepresentation(object.Get(host.Heap(), this.Pos()).Internal)
		if internal.IsNumber() {
			return internal.Number(), nil
		}
	}
	return 0, host.Throw("TypeError", "Number.prototype method called on incompatible receiver")
}

// formatNumberRadix renders n in the given radix, matching ES5's
// Number.prototype.toString(radix) for the common integer case; fractional
// non-decimal rendering is intentionally out of scope.
func formatNumberRadix(n float64, radix int) string {
	if radix == 10 || math.IsNaN(n) || math.IsInf(n, 0) {
		return formatNumber(n)
	}
	neg := n < 0
	if neg {
		n = -n
	}
	i := int64(n)
	s := strconv.FormatInt(i, radix)
	if neg {
		return "-" + s
	}
	return s
}

func formatNumber(n float64) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if math.IsInf(n, 1) {
		return "Infinity"
	}
	if math.IsInf(n, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
