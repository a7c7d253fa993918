package object

import "github.com/cwbudde/go-mjs/internal/heap"

// Attributes is the set of property attributes of spec.md §3.4, drawn
// from {read_only, dont_enum, dont_delete, accessor}.
type Attributes uint8

const (
	ReadOnly Attributes = 1 << iota
	DontEnum
	DontDelete
	Accessor
)

// Has reports whether attrs contains every flag in want.
func (attrs Attributes) Has(want Attributes) bool { return attrs&want == want }

// Property is one entry of an object's ordered property list.
type Property struct {
	Key        string
	Value      heap.Representation // when Accessor is set, an ObjectRepr pointing at an accessorPair
	Attributes Attributes
}

// ErrNoSuchOwnProperty is the "invalid-attribute sentinel" spec.md §3.4
// calls for when a requested own property does not exist.
var ErrNoSuchOwnProperty = &noSuchOwnProperty{}

type noSuchOwnProperty struct{}

func (*noSuchOwnProperty) Error() string { return "no such own property" }

// Variant distinguishes the object-kind-specific pre-checks of spec.md
// §3.5-3.7. Shared fields (class name, prototype, properties,
// extensible, call/construct) live directly on Object; each variant adds
// its own extra state via the corresponding pointer field below, only one
// of which is non-nil for a given object.
type Variant uint8

const (
	VariantPlain Variant = iota
	VariantArray
	VariantNative
	VariantFunction
	VariantArguments
)

// Object is the heap-resident object of spec.md §3.4.
type Object struct {
	ClassName  string
	Prototype  heap.UntrackedHandle // 0 = null
	Internal   heap.Representation  // internal_value, used by boxed primitives
	Props      []Property
	Extensible bool

	Variant Variant
	Array   *ArrayData
	Native  *NativeData
	Func    *FuncData

	// Call/Construct are present on function objects (Variant ==
	// VariantFunction); nil otherwise.
	Call      CallFunc
	Construct ConstructFunc
}

// CallFunc is a native function body: given the receiver (`this`) and
// argument list, produce a result or propagate a thrown value via the
// error return (spec.md's "function object ... call closure").
type CallFunc func(rt Runtime, this Value, args []Value) (Value, error)

// ConstructFunc is a native construct body, invoked by the `new` operator
// (spec.md §4.4 rule 5) with the freshly allocated object as `this`.
type ConstructFunc func(rt Runtime, this Value, args []Value) (Value, error)

// Runtime is the minimal surface the object package needs from the
// evaluator to run a native call: heap access plus the ability to throw a
// native exception and to read the active object prototype (needed by
// ToObject-style boxing inside builtins). Kept tiny and defined here
// (rather than imported from the evaluator, which depends on this
// package) to avoid a cycle.
type Runtime interface {
	Heap() *heap.Heap
	Throw(kind string, message string) error
	ObjectPrototype() heap.Pos
}

// accessorPair is the "accessor object" spec.md §3.4 describes: a pair of
// function values invoked on property read/write.
type accessorPair struct {
	Get heap.Representation
	Set heap.Representation
}

var accessorType = heap.RegisterType(heap.TypeInfo{
	Name: "accessorPair",
	Move: func(p any) any {
		a := p.(*accessorPair)
		return &accessorPair{Get: a.Get, Set: a.Set}
	},
	Fixup: func(h *heap.Heap, p any) {
		a := p.(*accessorPair)
		fixupRepr(h, &a.Get)
		fixupRepr(h, &a.Set)
	},
})

func fixupRepr(h *heap.Heap, r *heap.Representation) {
	switch (*r).Kind() {
	case heap.KindString, heap.KindObject:
		pos := (*r).Pos()
		captured := r
		origKind := (*r).Kind()
		h.RegisterFixup(&pos)
		h.RegisterPostFixup(func() {
			if origKind == heap.KindString {
				*captured = heap.StringRepr(pos)
			} else {
				*captured = heap.ObjectRepr(pos)
			}
		})
	}
}

// NewAccessor allocates an accessor pair and returns it as a
// representation suitable for storing in a Property whose Attributes has
// Accessor set.
func NewAccessor(h *heap.Heap, get, set Value) heap.Representation {
	pos := h.Make(accessorType, &accessorPair{Get: get.ToRepresentation(), Set: set.ToRepresentation()})
	return heap.ObjectRepr(pos)
}

func getAccessor(h *heap.Heap, repr heap.Representation) *accessorPair {
	return h.Payload(repr.Pos()).(*accessorPair)
}

// ExistingAccessor reads back the get/set pair stored in repr (an
// accessor-property's Value), letting callers outside this package (the
// evaluator's object-literal getter/setter merge, ES5 §11.1.5) preserve
// the half not currently being redefined.
func ExistingAccessor(h *heap.Heap, repr heap.Representation) (get, set Value) {
	acc := getAccessor(h, repr)
	return FromRepresentation(acc.Get), FromRepresentation(acc.Set)
}

var objectType = heap.RegisterType(heap.TypeInfo{
	Name: "object",
	Move: func(p any) any {
		o := p.(*Object)
		cp := *o
		cp.Props = append([]Property(nil), o.Props...)
		return &cp
	},
	Fixup: func(h *heap.Heap, p any) {
		o := p.(*Object)
		h.RegisterFixup((*heap.Pos)(&o.Prototype))
		for i := range o.Props {
			fixupRepr(h, &o.Props[i].Value)
		}
		if o.Array != nil {
			o.Array.fixup(h)
		}
		if o.Func != nil {
			if cf, ok := o.Func.Closure.(ClosureFixer); ok {
				cf.FixupClosure(h)
			}
		}
	},
})

// ClosureFixer is implemented by a FuncData.Closure value that itself
// embeds heap positions unreachable from this object's own Props (a
// captured lexical scope chain, in the evaluator package's case). The
// object package cannot name that concrete type without importing the
// evaluator - this interface is the seam that lets Fixup still reach it.
type ClosureFixer interface {
	FixupClosure(h *heap.Heap)
}

// ObjectType is the TypeID plain (and array/native/function) objects are
// registered under - they share one Go type and are distinguished by
// Variant, so the heap only needs one registration.
func ObjectType() TypeID { return objectType }

// TypeID re-exports heap.TypeID so callers of this package need not import
// internal/heap merely to read ObjectType()'s return type.
type TypeID = heap.TypeID

// New allocates a new plain object with the given prototype and returns
// its heap position.
func New(h *heap.Heap, class string, prototype heap.Pos) heap.Pos {
	return h.Make(objectType, &Object{
		ClassName:  class,
		Prototype:  prototype,
		Internal:   heap.UndefinedRepr,
		Extensible: true,
	})
}

// Get dereferences an object position.
func Get(h *heap.Heap, pos heap.Pos) *Object {
	return h.Payload(pos).(*Object)
}

// findOwn returns the index of key in o.Props, or -1.
func (o *Object) findOwn(key string) int {
	for i := range o.Props {
		if o.Props[i].Key == key {
			return i
		}
	}
	return -1
}

// GetOwnProperty returns the own property's representation and whether it
// exists, following the accessor protocol (spec.md §3.4: reads invoke Get
// with the owning object as receiver). thisVal is the receiver passed to
// an accessor getter - usually pos itself, but may differ when called via
// a prototype-chain lookup.
func (o *Object) GetOwnProperty(rt Runtime, key string, thisVal Value) (Value, bool, error) {
	i := o.findOwn(key)
	if i < 0 {
		return Undefined, false, nil
	}
	p := o.Props[i]
	if p.Attributes.Has(Accessor) {
		acc := getAccessor(rt.Heap(), p.Value)
		getter := FromRepresentation(acc.Get)
		if getter.IsUndefined() {
			return Undefined, true, nil
		}
		v, err := CallValue(rt, getter, thisVal, nil)
		return v, true, err
	}
	return FromRepresentation(p.Value), true, nil
}

// HasOwnProperty reports whether key is an own property, without invoking
// any accessor.
func (o *Object) HasOwnProperty(key string) bool { return o.findOwn(key) >= 0 }

// DefineOwnProperty creates or overwrites an own property unconditionally,
// bypassing read_only/extensible checks - used by the evaluator's
// bootstrap and hoisting code, and by Put after it has validated them.
func (o *Object) DefineOwnProperty(key string, value heap.Representation, attrs Attributes) {
	if i := o.findOwn(key); i >= 0 {
		o.Props[i].Value = value
		o.Props[i].Attributes = attrs
		return
	}
	o.Props = append(o.Props, Property{Key: key, Value: value, Attributes: attrs})
}

// DeleteOwnProperty removes key if present and not dont_delete. Returns
// true if the property is now absent (whether it was removed just now or
// never existed), false if it exists but is non-configurable.
func (o *Object) DeleteOwnProperty(key string) bool {
	i := o.findOwn(key)
	if i < 0 {
		return true
	}
	if o.Props[i].Attributes.Has(DontDelete) {
		return false
	}
	o.Props = append(o.Props[:i], o.Props[i+1:]...)
	return true
}

// OwnKeys returns own property keys in insertion order, matching spec.md
// §5's "property enumeration order equals insertion order per object".
func (o *Object) OwnKeys(enumerableOnly bool) []string {
	keys := make([]string, 0, len(o.Props))
	for _, p := range o.Props {
		if enumerableOnly && p.Attributes.Has(DontEnum) {
			continue
		}
		keys = append(keys, p.Key)
	}
	return keys
}
