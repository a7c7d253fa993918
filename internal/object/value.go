// Package object implements the live value representation and the
// prototype-based object model of spec.md §3: Value (the seven-kind
// tagged union), Object (properties, attributes, prototype chain), and
// the Array/Native/Function object variants.
package object

import (
	"math"

	"github.com/cwbudde/go-mjs/internal/heap"
)

// Kind enumerates all seven value kinds of spec.md §3.1, including the
// internal-only Reference kind that heap.Kind deliberately omits.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindObject
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Reference is the internal (base, property-name) pair of spec.md §3.1.
// It is never stored in a container; it exists only as a transient
// expression-evaluation result, resolved via GetValue/PutValue.
type Reference struct {
	// Base is Undefined when the reference has no resolvable base (e.g. an
	// unqualified identifier that was not found in any scope); Null is
	// used for the "base is the global object" case produced by bare
	// identifier lookups, resolved by the evaluator rather than stored
	// here.
	Base   Value
	Name   string
	Strict bool
}

// Value is the live tagged union of spec.md §3.1.
type Value struct {
	kind Kind
	num  float64
	b    bool
	pos  heap.Pos
	ref  *Reference
}

var (
	Undefined = Value{kind: KindUndefined}
	Null      = Value{kind: KindNull}
	True      = Value{kind: KindBoolean, b: true}
	False     = Value{kind: KindBoolean, b: false}
)

// Bool returns True or False.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Number constructs a number value, canonicalising NaN per spec.md §3.1.
func Number(f float64) Value {
	if math.IsNaN(f) {
		f = math.NaN()
	}
	return Value{kind: KindNumber, num: f}
}

// StringAt wraps a heap string handle as a value.
func StringAt(pos heap.Pos) Value {
	return Value{kind: KindString, pos: pos}
}

// ObjectAt wraps a heap object handle as a value.
func ObjectAt(pos heap.Pos) Value {
	return Value{kind: KindObject, pos: pos}
}

// Ref constructs an internal reference value.
func Ref(base Value, name string, strict bool) Value {
	return Value{kind: KindReference, ref: &Reference{Base: base, Name: name, Strict: strict}}
}

func (v Value) Kind() Kind        { return v.kind }
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }
func (v Value) IsNull() bool      { return v.kind == KindNull }
func (v Value) IsNullOrUndefined() bool {
	return v.kind == KindNull || v.kind == KindUndefined
}
func (v Value) IsBoolean() bool   { return v.kind == KindBoolean }
func (v Value) IsNumber() bool    { return v.kind == KindNumber }
func (v Value) IsString() bool    { return v.kind == KindString }
func (v Value) IsObject() bool    { return v.kind == KindObject }
func (v Value) IsReference() bool { return v.kind == KindReference }

func (v Value) Bool() bool            { return v.b }
func (v Value) Number() float64       { return v.num }
func (v Value) Pos() heap.Pos         { return v.pos }
func (v Value) Reference() *Reference { return v.ref }

// ToRepresentation packs v into its heap-storable form. Panics if v is a
// Reference, which spec.md §3.1 forbids from ever being stored.
func (v Value) ToRepresentation() heap.Representation {
	switch v.kind {
	case KindUndefined:
		return heap.UndefinedRepr
	case KindNull:
		return heap.NullRepr
	case KindBoolean:
		return heap.BoolRepr(v.b)
	case KindNumber:
		return heap.NumberRepr(v.num)
	case KindString:
		return heap.StringRepr(v.pos)
	case KindObject:
		return heap.ObjectRepr(v.pos)
	default:
		panic("object: cannot represent a reference value")
	}
}

// FromRepresentation unpacks a heap-storable representation back into a
// live Value.
func FromRepresentation(r heap.Representation) Value {
	switch r.Kind() {
	case heap.KindUndefined:
		return Undefined
	case heap.KindNull:
		return Null
	case heap.KindBoolean:
		return Bool(r.Bool())
	case heap.KindNumber:
		return Number(r.Number())
	case heap.KindString:
		return StringAt(r.Pos())
	case heap.KindObject:
		return ObjectAt(r.Pos())
	default:
		panic("object: unknown representation kind")
	}
}

// NewGoString allocates a heap string from a Go string (converted to
// UTF-16) and returns it as a value.
func NewGoString(h *heap.Heap, s string) Value {
	return StringAt(h.NewString(UTF16FromString(s)))
}

// GoString reads a string value back out as a Go string (UTF-16 decoded).
func GoString(h *heap.Heap, v Value) string {
	if v.kind != KindString {
		panic("object: GoString on non-string value")
	}
	return UTF16ToString(h.GetString(v.pos).Units)
}

// UTF16FromString converts a Go (UTF-8) string to UTF-16 code units.
func UTF16FromString(s string) []uint16 {
	return utf16Encode([]rune(s))
}

// UTF16ToString converts UTF-16 code units back to a Go string.
func UTF16ToString(units []uint16) string {
	return utf16Decode(units)
}
