package heap

// String is a heap-resident, immutable UTF-16 string (spec.md §3.1: the
// string value kind is "a heap handle to immutable UTF-16 string").
// Represented as a slice of UTF-16 code units so indexing and length
// match ECMAScript's UTF-16 string semantics rather than Go's UTF-8 rune
// semantics.
type String struct {
	Units []uint16
}

func (s *String) Len() int { return len(s.Units) }

var stringType = RegisterType(TypeInfo{
	Name: "string",
	// Move: strings carry no embedded positions and are immutable, so a
	// shallow copy (sharing the backing array) is sufficient - spec.md's
	// "trivially relocatable" fast path.
	Move: func(payload any) any {
		s := payload.(*String)
		return &String{Units: s.Units}
	},
})

// StringType is the TypeID strings are registered under; exported so the
// object package can allocate them via Heap.Make.
func StringType() TypeID { return stringType }

// NewString allocates a heap string from a UTF-16 slice and returns its
// position.
func (h *Heap) NewString(units []uint16) Pos {
	cp := make([]uint16, len(units))
	copy(cp, units)
	return h.Make(stringType, &String{Units: cp})
}

// GetString dereferences a string position.
func (h *Heap) GetString(pos Pos) *String {
	return h.Payload(pos).(*String)
}

// Vector is a heap-resident, variable-length array of Representation
// slots (spec.md §3.3's "heap-resident ... vectors ... used by higher
// layers"), backing Array's dense element storage. Object's own
// properties are kept in a plain Go slice, not a Vector.
type Vector struct {
	Items []Representation
}

var vectorType = RegisterType(TypeInfo{
	Name: "vector",
	Move: func(payload any) any {
		v := payload.(*Vector)
		cp := make([]Representation, len(v.Items))
		copy(cp, v.Items)
		return &Vector{Items: cp}
	},
	Fixup: func(h *Heap, payload any) {
		fixupVectorSlots(h, payload.(*Vector))
	},
})

// fixupVectorSlots registers a stable *Pos for every embedded
// string/object slot by routing through a side array the closure keeps
// alive until this GC pass's worklist drains, then writes results back.
// This two-step dance exists because Representation is a value type (not
// individually addressable within a slice the way a struct field is),
// unlike the untyped position fields other payload types expose directly.
func fixupVectorSlots(h *Heap, v *Vector) {
	type slot struct {
		idx int
		pos Pos
	}
	var slots []*slot
	for i := range v.Items {
		k := v.Items[i].Kind()
		if k != KindString && k != KindObject {
			continue
		}
		s := &slot{idx: i, pos: v.Items[i].Pos()}
		slots = append(slots, s)
		h.RegisterFixup(&s.pos)
	}
	if len(slots) == 0 {
		return
	}
	h.RegisterPostFixup(func() {
		for _, s := range slots {
			v.Items[s.idx] = v.Items[s.idx].WithPos(s.pos)
		}
	})
}

// VectorType is the TypeID vectors are registered under.
func VectorType() TypeID { return vectorType }

// NewVector allocates a heap vector with the given initial contents.
func (h *Heap) NewVector(items []Representation) Pos {
	cp := make([]Representation, len(items))
	copy(cp, items)
	return h.Make(vectorType, &Vector{Items: cp})
}

// GetVector dereferences a vector position.
func (h *Heap) GetVector(pos Pos) *Vector {
	return h.Payload(pos).(*Vector)
}
