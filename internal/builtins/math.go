package builtins

import (
	"math"
	"math/rand"

	"github.com/cwbudde/go-mjs/internal/object"
)

func registerMath(host Host) {
	h := host.Heap()
	mathObj := object.New(h, "Math", host.Prototype("Object"))

	PutPrototypeWithAttributes(h, mathObj, "PI", object.Number(math.Pi), object.ReadOnly|object.DontEnum|object.DontDelete)
	PutPrototypeWithAttributes(h, mathObj, "E", object.Number(math.E), object.ReadOnly|object.DontEnum|object.DontDelete)
	PutPrototypeWithAttributes(h, mathObj, "LN2", object.Number(math.Ln2), object.ReadOnly|object.DontEnum|object.DontDelete)
	PutPrototypeWithAttributes(h, mathObj, "LN10", object.Number(math.Log(10)), object.ReadOnly|object.DontEnum|object.DontDelete)
	PutPrototypeWithAttributes(h, mathObj, "SQRT2", object.Number(math.Sqrt2), object.ReadOnly|object.DontEnum|object.DontDelete)

	unary := func(name string, fn func(float64) float64) {
		PutNativeFunction(host, mathObj, name, 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
			f, err := host.ToNumberHost(arg(args, 0))
			if err != nil {
				return object.Undefined, err
			}
			return object.Number(fn(f)), nil
		})
	}
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("round", func(f float64) float64 { return math.Floor(f + 0.5) })
	unary("trunc", math.Trunc)
	unary("abs", math.Abs)
	unary("sqrt", math.Sqrt)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("atan", math.Atan)
	unary("asin", math.Asin)
	unary("acos", math.Acos)
	unary("log", math.Log)
	unary("exp", math.Exp)

	PutNativeFunction(host, mathObj, "pow", 2, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		x, err := host.ToNumberHost(arg(args, 0))
		if err != nil {
			return object.Undefined, err
		}
		y, err := host.ToNumberHost(arg(args, 1))
		if err != nil {
			return object.Undefined, err
		}
		return object.Number(math.Pow(x, y)), nil
	})

	PutNativeFunction(host, mathObj, "atan2", 2, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		y, err := host.ToNumberHost(arg(args, 0))
		if err != nil {
			return object.Undefined, err
		}
		x, err := host.ToNumberHost(arg(args, 1))
		if err != nil {
			return object.Undefined, err
		}
		return object.Number(math.Atan2(y, x)), nil
	})

	PutNativeFunction(host, mathObj, "max", 2, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		return extremum(host, args, math.Inf(-1), func(a, b float64) bool { return b > a })
	})
	PutNativeFunction(host, mathObj, "min", 2, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		return extremum(host, args, math.Inf(1), func(a, b float64) bool { return b < a })
	})

	PutNativeFunction(host, mathObj, "random", 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		return object.Number(rand.Float64()), nil
	})

	object.Get(h, host.Global()).DefineOwnProperty("Math", object.ObjectAt(mathObj).ToRepresentation(), object.DontEnum)
}

func extremum(host Host, args []object.Value, seed float64, better func(cur, candidate float64) bool) (object.Value, error) {
	best := seed
	for _, a := range args {
		f, err := host.ToNumberHost(a)
		if err != nil {
			return object.Undefined, err
		}
		if math.IsNaN(f) {
			return object.Number(math.NaN()), nil
		}
		if better(best, f) {
			best = f
		}
	}
	return object.Number(best), nil
}
