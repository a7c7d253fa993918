package heap

import "testing"

func TestAllocateAndPayload(t *testing.T) {
	h := New(64)
	pos := h.NewString([]uint16{'h', 'i'})
	if pos == 0 {
		t.Fatalf("expected non-zero position")
	}
	s := h.GetString(pos)
	if s.Len() != 2 {
		t.Fatalf("expected length 2, got %d", s.Len())
	}
}

func TestCalcUsedAfterCollectWithNoRoots(t *testing.T) {
	h := New(64)
	h.NewString([]uint16{'a'})
	h.NewString([]uint16{'b'})
	if h.CalcUsed() == 0 {
		t.Fatalf("expected nonzero usage before collection")
	}
	h.GarbageCollect()
	if got := h.CalcUsed(); got != 0 {
		t.Fatalf("calc_used() == %d, want 0 after collecting with no roots", got)
	}
}

func TestTrackedHandleSurvivesCollection(t *testing.T) {
	h := New(64)
	pos := h.NewString([]uint16{'s', 'u', 'r', 'v', 'i', 'v', 'e'})
	th := h.NewTracked(pos)

	h.GarbageCollect()

	s := h.GetString(th.Pos())
	if string(utf16ToRunes(s.Units)) != "survive" {
		t.Fatalf("expected surviving string to round-trip, got %v", s.Units)
	}
}

func TestIdempotentCollection(t *testing.T) {
	h := New(64)
	pos := h.NewString([]uint16{'x'})
	th := h.NewTracked(pos)

	h.GarbageCollect()
	used1 := h.CalcUsed()
	_ = th
	h.GarbageCollect()
	used2 := h.CalcUsed()

	if used1 != used2 {
		t.Fatalf("two consecutive collections gave different used-slot counts: %d vs %d", used1, used2)
	}
}

func TestWeakHandleZeroedWhenUnreachable(t *testing.T) {
	h := New(64)
	pos := h.NewString([]uint16{'g', 'o', 'n', 'e'})

	type weakOwner struct {
		target WeakHandle
	}
	ownerType := RegisterType(TypeInfo{
		Name: "weakOwner",
		Move: func(p any) any {
			o := p.(*weakOwner)
			return &weakOwner{target: o.target}
		},
		Fixup: func(h *Heap, p any) {
			o := p.(*weakOwner)
			h.RegisterWeakFixup(&o.target)
		},
	})

	ownerPos := h.Make(ownerType, &weakOwner{target: pos})
	ownerHandle := h.NewTracked(ownerPos)

	h.GarbageCollect()

	owner := h.Payload(ownerHandle.Pos()).(*weakOwner)
	if owner.target != 0 {
		t.Fatalf("expected weak handle to unreachable target to be zeroed, got %d", owner.target)
	}
}

func TestWeakHandleSurvivesWhenTargetRooted(t *testing.T) {
	h := New(64)
	pos := h.NewString([]uint16{'k', 'e', 'e', 'p'})
	strongHandle := h.NewTracked(pos)

	type weakOwner struct {
		target WeakHandle
	}
	ownerType := RegisterType(TypeInfo{
		Name: "weakOwner2",
		Move: func(p any) any {
			o := p.(*weakOwner)
			return &weakOwner{target: o.target}
		},
		Fixup: func(h *Heap, p any) {
			o := p.(*weakOwner)
			h.RegisterWeakFixup(&o.target)
		},
	})
	ownerPos := h.Make(ownerType, &weakOwner{target: pos})
	ownerHandle := h.NewTracked(ownerPos)

	h.GarbageCollect()

	owner := h.Payload(ownerHandle.Pos()).(*weakOwner)
	if owner.target == 0 {
		t.Fatalf("expected weak handle to rooted target to survive")
	}
	if got := h.GetString(owner.target); got == nil || string(utf16ToRunes(got.Units)) != "keep" {
		t.Fatalf("weak handle did not resolve to surviving string")
	}
	_ = strongHandle
}

func TestRepresentationRoundTrip(t *testing.T) {
	cases := []Representation{
		UndefinedRepr,
		NullRepr,
		TrueRepr,
		FalseRepr,
		NumberRepr(3.5),
		NumberRepr(-0.0),
		StringRepr(42),
		ObjectRepr(7),
	}
	for _, r := range cases {
		k := r.Kind()
		switch k {
		case KindNumber:
			if NumberRepr(r.Number()) != r {
				t.Fatalf("number round-trip failed for %v", r)
			}
		case KindString, KindObject:
			if r.Pos() == 0 && k == KindObject && r != ObjectRepr(0) {
				t.Fatalf("unexpected zero position")
			}
		}
	}
}

func TestRepresentationCanonicalizesNaN(t *testing.T) {
	weirdNaN := NumberRepr(negZeroDivZero())
	if weirdNaN != Representation(canonicalNaNBits) {
		t.Fatalf("expected canonical NaN bit pattern, got %x", uint64(weirdNaN))
	}
}

func negZeroDivZero() float64 {
	zero := 0.0
	return zero / zero
}

func utf16ToRunes(units []uint16) []rune {
	out := make([]rune, 0, len(units))
	for _, u := range units {
		out = append(out, rune(u))
	}
	return out
}
