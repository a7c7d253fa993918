package evaluator

import (
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/go-mjs/internal/object"
)

// ToPrimitive implements ES5 §9.1: an object converts to a primitive by
// trying valueOf then toString (hint "number", the default), or the
// reverse order for hint "string". Non-objects are already primitive.
func (e *Evaluator) ToPrimitive(v object.Value, hint string) (object.Value, error) {
	if !v.IsObject() {
		return v, nil
	}
	methods := []string{"valueOf", "toString"}
	if hint == "string" {
		methods = []string{"toString", "valueOf"}
	}
	for _, name := range methods {
		fn, err := object.GetProperty(e, v.Pos(), name)
		if err != nil {
			return object.Undefined, err
		}
		if !fn.IsObject() || object.Get(e.heap, fn.Pos()).Call == nil {
			continue
		}
		result, err := object.CallValue(e, fn, v, nil)
		if err != nil {
			return object.Undefined, err
		}
		if !result.IsObject() {
			return result, nil
		}
	}
	return object.Undefined, e.Throw("TypeError", "cannot convert object to primitive value")
}

// ToNumber implements ES5 §9.3.
func (e *Evaluator) ToNumber(v object.Value) (float64, error) {
	switch v.Kind() {
	case object.KindUndefined:
		return math.NaN(), nil
	case object.KindNull:
		return 0, nil
	case object.KindBoolean:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	case object.KindNumber:
		return v.Number(), nil
	case object.KindString:
		return stringToNumber(object.GoString(e.heap, v)), nil
	case object.KindObject:
		prim, err := e.ToPrimitive(v, "number")
		if err != nil {
			return 0, err
		}
		return e.ToNumber(prim)
	default:
		return math.NaN(), nil
	}
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if s == "Infinity" || s == "+Infinity" {
			return math.Inf(1)
		}
		if s == "-Infinity" {
			return math.Inf(-1)
		}
		return math.NaN()
	}
	return f
}

// ToString implements ES5 §9.8.
func (e *Evaluator) ToString(v object.Value) (string, error) {
	switch v.Kind() {
	case object.KindUndefined:
		return "undefined", nil
	case object.KindNull:
		return "null", nil
	case object.KindBoolean:
		if v.Bool() {
			return "true", nil
		}
		return "false", nil
	case object.KindNumber:
		return numberToString(v.Number()), nil
	case object.KindString:
		return object.GoString(e.heap, v), nil
	case object.KindObject:
		prim, err := e.ToPrimitive(v, "string")
		if err != nil {
			return "", err
		}
		return e.ToString(prim)
	default:
		return "", nil
	}
}

func numberToString(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ToBoolean implements ES5 §9.2.
func (e *Evaluator) ToBoolean(v object.Value) bool {
	switch v.Kind() {
	case object.KindUndefined, object.KindNull:
		return false
	case object.KindBoolean:
		return v.Bool()
	case object.KindNumber:
		f := v.Number()
		return f != 0 && !math.IsNaN(f)
	case object.KindString:
		return object.GoString(e.heap, v) != ""
	case object.KindObject:
		return true
	default:
		return false
	}
}

// ToObject implements ES5 §9.9, boxing primitives via the matching
// intrinsic prototype; throws on undefined/null, which have no wrapper.
func (e *Evaluator) ToObject(v object.Value) (object.Value, error) {
	switch v.Kind() {
	case object.KindObject:
		return v, nil
	case object.KindUndefined, object.KindNull:
		return object.Undefined, e.Throw("TypeError", "cannot convert undefined or null to object")
	case object.KindBoolean:
		pos := object.New(e.heap, "Boolean", e.Prototype("Boolean"))
		object.Get(e.heap, pos).Internal = v.ToRepresentation()
		return object.ObjectAt(pos), nil
	case object.KindNumber:
		pos := object.New(e.heap, "Number", e.Prototype("Number"))
		object.Get(e.heap, pos).Internal = v.ToRepresentation()
		return object.ObjectAt(pos), nil
	case object.KindString:
		pos := object.New(e.heap, "String", e.Prototype("String"))
		object.Get(e.heap, pos).Internal = v.ToRepresentation()
		return object.ObjectAt(pos), nil
	default:
		return object.Undefined, e.Throw("TypeError", "cannot convert value to object")
	}
}

// ToInt32 / ToUint32 implement ES5 §9.5/§9.6.
func (e *Evaluator) ToInt32(v object.Value) (int32, error) {
	f, err := e.ToNumber(v)
	if err != nil {
		return 0, err
	}
	return toInt32(f), nil
}

func (e *Evaluator) ToUint32(v object.Value) (uint32, error) {
	f, err := e.ToNumber(v)
	if err != nil {
		return 0, err
	}
	return toUint32(f), nil
}

func toUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return 0
	}
	sign := 1.0
	if f < 0 {
		sign = -1
	}
	f = math.Floor(math.Abs(f))
	m := math.Mod(sign*f, 4294967296)
	if m < 0 {
		m += 4294967296
	}
	return uint32(m)
}

func toInt32(f float64) int32 {
	u := toUint32(f)
	if u >= 1<<31 {
		return int32(u - (1 << 32))
	}
	return int32(u)
}

// typeOf implements the `typeof` operator (ES5 §11.4.3), including the
// "function" special case for callable objects.
func (e *Evaluator) typeOf(v object.Value) string {
	switch v.Kind() {
	case object.KindUndefined:
		return "undefined"
	case object.KindNull:
		return "object"
	case object.KindBoolean:
		return "boolean"
	case object.KindNumber:
		return "number"
	case object.KindString:
		return "string"
	case object.KindObject:
		if object.Get(e.heap, v.Pos()).Call != nil {
			return "function"
		}
		return "object"
	default:
		return "undefined"
	}
}

// strictEquals implements the === algorithm (ES5 §11.9.6): no coercion,
// numbers compare by IEEE equality (NaN != NaN, +0 == -0).
func (e *Evaluator) strictEquals(a, b object.Value) bool {
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
		return object.GoString(e.heap, a) == object.GoString(e.heap, b)
	case object.KindObject:
		return a.Pos() == b.Pos()
	default:
		return false
	}
}

// abstractEquals implements the == algorithm (ES5 §11.9.3)'s type-coercion
// ladder.
func (e *Evaluator) abstractEquals(a, b object.Value) (bool, error) {
	if a.Kind() == b.Kind() {
		return e.strictEquals(a, b), nil
	}
	if a.IsNullOrUndefined() && b.IsNullOrUndefined() {
		return true, nil
	}
	if a.IsNullOrUndefined() || b.IsNullOrUndefined() {
		return false, nil
	}
	if a.IsNumber() && b.IsString() {
		bn, err := e.ToNumber(b)
		if err != nil {
			return false, err
		}
		return a.Number() == bn, nil
	}
	if a.IsString() && b.IsNumber() {
		an, err := e.ToNumber(a)
		if err != nil {
			return false, err
		}
		return an == b.Number(), nil
	}
	if a.IsBoolean() {
		an, err := e.ToNumber(a)
		if err != nil {
			return false, err
		}
		return e.abstractEquals(object.Number(an), b)
	}
	if b.IsBoolean() {
		bn, err := e.ToNumber(b)
		if err != nil {
			return false, err
		}
		return e.abstractEquals(a, object.Number(bn))
	}
	if (a.IsNumber() || a.IsString()) && b.IsObject() {
		bp, err := e.ToPrimitive(b, "")
		if err != nil {
			return false, err
		}
		return e.abstractEquals(a, bp)
	}
	if a.IsObject() && (b.IsNumber() || b.IsString()) {
		ap, err := e.ToPrimitive(a, "")
		if err != nil {
			return false, err
		}
		return e.abstractEquals(ap, b)
	}
	return false, nil
}

// instanceOf implements ES5 §11.8.6: the right operand must be callable
// and carry an object `prototype` own property; the left operand's
// prototype chain is walked for that exact object.
func (e *Evaluator) instanceOf(left, right object.Value) (bool, error) {
	if !right.IsObject() || object.Get(e.heap, right.Pos()).Call == nil {
		return false, e.Throw("TypeError", "right-hand side of instanceof is not callable")
	}
	protoVal, err := object.GetProperty(e, right.Pos(), "prototype")
	if err != nil {
		return false, err
	}
	if !protoVal.IsObject() {
		return false, e.Throw("TypeError", "prototype is not an object")
	}
	if !left.IsObject() {
		return false, nil
	}
	for cur := object.Get(e.heap, left.Pos()).Prototype; cur != 0; cur = object.Get(e.heap, cur).Prototype {
		if cur == protoVal.Pos() {
			return true, nil
		}
	}
	return false, nil
}
