package heap

import "fmt"

// allocation is the fixed 8-byte header of spec.md §3.3: a slot count and
// a type index. sizeSlots includes the header slot itself, matching the
// original's "size" field (which counts the header plus the payload).
type allocation struct {
	sizeSlots   uint32
	typeID      TypeID
	payload     any
	newPosition Pos // valid only when typeID == movedType
}

// Heap is a bump-allocated arena of fixed capacity. All allocations begin
// on an 8-byte (one slot) boundary; the payload itself is represented as a
// boxed Go value rather than raw bytes, since Go's own allocator and GC
// already guarantee memory safety for the structs stored there - what this
// type adds is the *relocatable position* abstraction spec.md requires:
// positions are rewritten by GarbageCollect exactly as if the bytes had
// moved, and a TypeInfo's Move/Fixup hooks run on every collection.
type Heap struct {
	slots    []allocation // index 0 is reserved; real positions start at 1
	capacity uint32
	nextFree Pos

	tracked map[*TrackedHandle]struct{}

	// gc-in-progress state, valid only during GarbageCollect.
	gc *gcState
}

type gcState struct {
	newHeap       *Heap
	pendingFixups []*Pos
	weakFixups    []*Pos
	postFixups    []func()
	level         int
}

// New creates a heap with room for capacity slots (spec.md §6 "heap
// capacity (slots)" embedding parameter).
func New(capacity uint32) *Heap {
	if capacity == 0 {
		panic("heap: capacity must be positive")
	}
	h := &Heap{
		slots:    make([]allocation, capacity+1),
		capacity: capacity,
		nextFree: 1,
		tracked:  make(map[*TrackedHandle]struct{}),
	}
	return h
}

// Capacity returns the heap's fixed slot capacity.
func (h *Heap) Capacity() uint32 { return h.capacity }

// Allocate reserves nslots contiguous slots (including the header) and
// returns the position of the header. The payload is uninitialized
// (typeID == uninitializedType) until Make stores it. Fails fatally when
// capacity is exhausted, matching the core contract's "no resize" rule
// (spec.md §4.1).
func (h *Heap) Allocate(nslots uint32) Pos {
	if nslots == 0 {
		panic("heap: invalid allocation size")
	}
	if nslots > h.capacity || uint32(h.nextFree)+nslots-1 > h.capacity {
		panic(fmt.Sprintf("heap: out of memory (requested %d slots, %d free)", nslots, h.capacity-uint32(h.nextFree)+1))
	}
	pos := h.nextFree
	h.nextFree += Pos(nslots)
	h.slots[pos] = allocation{sizeSlots: nslots, typeID: uninitializedType}
	return pos
}

// Make allocates one slot's worth of header plus payload and stores
// payload under typ's registration. It is the Go analogue of the C++
// gc_heap::make<T>.
func (h *Heap) Make(typ TypeID, payload any) Pos {
	pos := h.Allocate(1)
	h.slots[pos].typeID = typ
	h.slots[pos].payload = payload
	return pos
}

// NewTracked registers a fresh root handle at pos.
func (h *Heap) NewTracked(pos Pos) *TrackedHandle {
	th := &TrackedHandle{heap: h, pos: pos}
	h.tracked[th] = struct{}{}
	return th
}

// Payload returns the live payload stored at pos. Panics if pos is null
// or does not refer to a live allocation - callers are expected to check
// Pos != 0 themselves, matching the original's unchecked dereference.
func (h *Heap) Payload(pos Pos) any {
	if pos == 0 || pos >= h.nextFree {
		panic("heap: dereferencing invalid position")
	}
	a := &h.slots[pos]
	if a.typeID == uninitializedType || a.typeID == movedType {
		panic("heap: dereferencing uninitialized or stale position")
	}
	return a.payload
}

// TypeOf returns the live type index stored at pos.
func (h *Heap) TypeOf(pos Pos) TypeID {
	return h.slots[pos].typeID
}

// CalcUsed returns the number of slots currently occupied by live
// allocations (spec.md §4.1 introspection).
func (h *Heap) CalcUsed() uint32 {
	var used uint32
	for pos := Pos(1); pos < h.nextFree; {
		a := &h.slots[pos]
		if a.typeID != uninitializedType {
			used += a.sizeSlots
		}
		pos += Pos(a.sizeSlots)
	}
	return used
}

// UsePercentage returns CalcUsed as a percentage of Capacity, used by the
// evaluator's GC trigger policy (spec.md §5).
func (h *Heap) UsePercentage() int {
	return int(h.CalcUsed()) * 100 / int(h.capacity)
}

// RegisterFixup enqueues an embedded position field for rewriting during
// the in-progress collection. Must only be called from within a
// TypeInfo.Fixup callback.
func (h *Heap) RegisterFixup(pos *Pos) {
	if h.gc == nil {
		panic("heap: RegisterFixup called outside garbage_collect")
	}
	h.gc.pendingFixups = append(h.gc.pendingFixups, pos)
}

// RegisterPostFixup queues fn to run once the current collection's
// position worklist has fully drained, used by payload types (like
// Vector) whose embedded positions aren't individually addressable struct
// fields.
func (h *Heap) RegisterPostFixup(fn func()) {
	if h.gc == nil {
		panic("heap: RegisterPostFixup called outside garbage_collect")
	}
	h.gc.postFixups = append(h.gc.postFixups, fn)
}

// RegisterWeakFixup enqueues a weak position field; after collection it is
// rewritten to the surviving object's new position, or zeroed if the
// target did not survive.
func (h *Heap) RegisterWeakFixup(pos *Pos) {
	if h.gc == nil {
		panic("heap: RegisterWeakFixup called outside garbage_collect")
	}
	h.gc.weakFixups = append(h.gc.weakFixups, pos)
}

// GarbageCollect runs the copying collector described in spec.md §4.1:
// enumerate roots, move every reachable object into a fresh semispace via
// gcMove, process weak fixups, then swap storage.
func (h *Heap) GarbageCollect() {
	if h.gc != nil {
		panic("heap: re-entrant garbage_collect")
	}

	st := &gcState{}
	h.gc = st

	// 1-2. Enumerate roots (every tracked handle is by construction a root:
	// positions embedded *inside* heap payloads must use UntrackedHandle or
	// WeakHandle instead, so there is no "is this handle internal" check to
	// perform here, unlike the C++ original which shares one handle type).
	for th := range h.tracked {
		st.pendingFixups = append(st.pendingFixups, &th.pos)
	}

	if len(st.pendingFixups) == 0 {
		h.runDestructors()
		h.nextFree = 1
		h.gc = nil
		return
	}

	newHeap := New(h.capacity)
	st.newHeap = newHeap

	for len(st.pendingFixups) > 0 {
		n := len(st.pendingFixups) - 1
		ppos := st.pendingFixups[n]
		st.pendingFixups = st.pendingFixups[:n]
		*ppos = h.gcMove(*ppos)
	}

	for _, fn := range st.postFixups {
		fn()
	}

	for _, p := range st.weakFixups {
		a := &h.slots[*p]
		if a.typeID == movedType {
			*p = a.newPosition
		} else {
			*p = 0
		}
	}

	h.slots, newHeap.slots = newHeap.slots, h.slots
	h.nextFree, newHeap.nextFree = newHeap.nextFree, h.nextFree
	h.gc = nil
	// After the swap newHeap holds the old storage: every reachable object
	// has been moved out of it, so what was not moved is unreachable; run
	// its destructors.
	newHeap.runDestructors()
}

// gcMove relocates the object at pos into the new heap (if not already
// moved) and returns its new position, registering fixups for whatever
// embedded positions its Fixup hook reports. Mirrors gc_heap::gc_move.
func (h *Heap) gcMove(pos Pos) Pos {
	h.gc.level++
	if h.gc.level >= 64 {
		panic("heap: gc recursion limit reached")
	}
	defer func() { h.gc.level-- }()

	a := &h.slots[pos]
	if a.typeID == movedType {
		return a.newPosition
	}

	info := typeInfo(a.typeID)
	newHeap := h.gc.newHeap
	newPos := newHeap.Allocate(a.sizeSlots)
	newA := &newHeap.slots[newPos]

	var movedPayload any
	if info.Move != nil {
		movedPayload = info.Move(a.payload)
	} else {
		movedPayload = a.payload
	}
	newA.typeID = a.typeID
	newA.payload = movedPayload

	if info.Destroy != nil {
		info.Destroy(a.payload)
	}

	a.typeID = movedType
	a.newPosition = newPos

	if info.Fixup != nil {
		// Fixups discovered here are appended to h.gc.pendingFixups (the
		// *old* heap's in-progress state), which the caller's worklist loop
		// keeps draining - matches the original's single pending_fixups
		// list shared across the whole collection.
		info.Fixup(h, movedPayload)
	}

	return newPos
}

func (h *Heap) runDestructors() {
	for pos := Pos(1); pos < h.nextFree; {
		a := &h.slots[pos]
		if a.typeID != uninitializedType && a.typeID != movedType {
			if info := typeInfo(a.typeID); info.Destroy != nil {
				info.Destroy(a.payload)
			}
		}
		pos += Pos(a.sizeSlots)
	}
}
