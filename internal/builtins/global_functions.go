package builtins

import (
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/go-mjs/internal/object"
)

func registerGlobalFunctions(host Host) {
	h := host.Heap()
	global := host.Global()

	PutPrototypeWithAttributes(h, global, "undefined", object.Undefined, object.ReadOnly|object.DontEnum|object.DontDelete)
	PutPrototypeWithAttributes(h, global, "NaN", object.Number(math.NaN()), object.ReadOnly|object.DontEnum|object.DontDelete)
	PutPrototypeWithAttributes(h, global, "Infinity", object.Number(math.Inf(1)), object.ReadOnly|object.DontEnum|object.DontDelete)

	PutNativeFunction(host, global, "eval", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		a := arg(args, 0)
		if !a.IsString() {
			return a, nil
		}
		src, err := host.ToStringHost(a)
		if err != nil {
			return object.Undefined, err
		}
		return host.EvalSource(src, false)
	})

	PutNativeFunction(host, global, "parseInt", 2, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		s, err := host.ToStringHost(arg(args, 0))
		if err != nil {
			return object.Undefined, err
		}
		radix := 0
		if a := arg(args, 1); !a.IsUndefined() {
			f, err := host.ToNumberHost(a)
			if err != nil {
				return object.Undefined, err
			}
			radix = int(f)
		}
		return object.Number(parseIntString(s, radix)), nil
	})

	PutNativeFunction(host, global, "parseFloat", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		s, err := host.ToStringHost(arg(args, 0))
		if err != nil {
			return object.Undefined, err
		}
		return object.Number(parseFloatString(s)), nil
	})

	PutNativeFunction(host, global, "isNaN", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		f, err := host.ToNumberHost(arg(args, 0))
		if err != nil {
			return object.Undefined, err
		}
		return object.Bool(math.IsNaN(f)), nil
	})

	PutNativeFunction(host, global, "isFinite", 1, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		f, err := host.ToNumberHost(arg(args, 0))
		if err != nil {
			return object.Undefined, err
		}
		return object.Bool(!math.IsNaN(f) && !math.IsInf(f, 0)), nil
	})
}

// parseIntString implements the ES5 §15.1.2.2 scan: skip leading
// whitespace, an optional sign, an optional 0x/0X radix-16 prefix when
// radix is 0 or 16, then the longest valid digit run in that radix.
func parseIntString(s string, radix int) float64 {
	s = strings.TrimSpace(s)
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if radix == 0 {
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			radix = 16
			s = s[2:]
		} else {
			radix = 10
		}
	} else if radix == 16 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		s = s[2:]
	}
	if radix < 2 || radix > 36 {
		return math.NaN()
	}
	end := 0
	for end < len(s) && digitValue(s[end]) < radix {
		end++
	}
	if end == 0 {
		return math.NaN()
	}
	n, err := strconv.ParseInt(s[:end], radix, 64)
	if err != nil {
		f, ferr := strconv.ParseUint(s[:end], radix, 64)
		if ferr != nil {
			return math.NaN()
		}
		n = int64(f)
	}
	if neg {
		return -float64(n)
	}
	return float64(n)
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 99
	}
}

// parseFloatString implements the ES5 §15.1.2.3 longest-valid-prefix scan
// by delegating to strconv against progressively shorter prefixes.
func parseFloatString(s string) float64 {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "Infinity") || strings.HasPrefix(s, "+Infinity") {
		return math.Inf(1)
	}
	if strings.HasPrefix(s, "-Infinity") {
		return math.Inf(-1)
	}
	end := len(s)
	for end > 0 {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return f
		}
		end--
	}
	return math.NaN()
}
