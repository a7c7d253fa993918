// Package heap implements the compacting, precise garbage-collected heap
// described in spec.md §3.3-3.4 and §4.1: a bump-allocated slot arena with
// fixed allocation headers, a process-global type registry exposing
// destroy/move/fixup hooks per type, and three handle flavors (tracked,
// untracked, weak) over the same address space.
package heap

import "fmt"

// Pos is a position within a Heap, measured in slots. Zero is the null
// position and never denotes a live allocation.
type Pos uint32

// SlotSize is the heap's allocation granularity in bytes (spec.md §3.3).
const SlotSize = 8

// TypeID indexes into the process-global type registry.
type TypeID int32

const uninitializedType TypeID = -1
const movedType TypeID = -2

// TypeInfo mirrors the C++ original's gc_type_info: three hooks per
// registered type, exactly as spec.md §3.3 describes the allocation
// header's {size_in_slots, type_index} contract.
type TypeInfo struct {
	Name string

	// Destroy releases any non-heap resources held by payload (e.g. closed
	// file handles on a native object). May be nil for trivially destructible
	// types.
	Destroy func(payload any)

	// Move constructs a fresh copy of payload for insertion into the
	// destination heap and returns it. The returned value becomes the new
	// slot's payload; the old payload is then destroyed. Move must not
	// itself rewrite embedded Pos fields - that is Fixup's job, invoked
	// after the move so recursive structures don't loop forever.
	Move func(payload any) any

	// Fixup is invoked on the moved copy once it has a stable new position.
	// It must register every embedded Pos (heap.UntrackedHandle or
	// heap.WeakHandle field) with the heap so the collector can rewrite it.
	// Nil means "no embedded positions" (the C++ original's no_fixup_needed
	// fast path).
	Fixup func(h *Heap, payload any)
}

var typeRegistry []TypeInfo

// RegisterType appends a new type to the process-global, append-only type
// registry and returns its TypeID. Registration happens during package
// initialization (var blocks calling RegisterType), mirroring the
// original's static gc_type_info_registration<T> instances.
func RegisterType(info TypeInfo) TypeID {
	typeRegistry = append(typeRegistry, info)
	return TypeID(len(typeRegistry) - 1)
}

func typeInfo(id TypeID) *TypeInfo {
	if id < 0 || int(id) >= len(typeRegistry) {
		panic(fmt.Sprintf("heap: invalid type index %d", id))
	}
	return &typeRegistry[id]
}

// UntrackedHandle is a bare slot position embedded inside another heap
// object's payload. It is never a GC root; its owner's Fixup hook must
// register it explicitly on every collection (spec.md §4.1 "Untracked
// handle").
type UntrackedHandle = Pos

// WeakHandle is like UntrackedHandle but registered in the heap's weak
// list instead of the ordinary fixup worklist: after collection it points
// at the surviving object's new position, or is zeroed if the object did
// not survive (spec.md §4.1 "Weak handle").
type WeakHandle = Pos

// TrackedHandle is a GC root: a handle held outside any heap payload (by
// the evaluator's scope chain, the C stack of a recursive evaluation, or
// similar). Registering and releasing a TrackedHandle must be paired by
// the caller - Go has no destructors to do this automatically, so
// TrackedHandle is the one place this package asks for RAII discipline
// from its caller, exactly as the C++ gc_heap_ptr constructor/destructor
// pair does via scope exit.
type TrackedHandle struct {
	heap *Heap
	pos  Pos
}

// Pos returns the handle's current slot position. The position changes
// across a GarbageCollect call if the target object moved.
func (t *TrackedHandle) Pos() Pos {
	if t == nil {
		return 0
	}
	return t.pos
}

// Release removes the handle from the heap's root set. After Release the
// handle must not be used.
func (t *TrackedHandle) Release() {
	if t == nil || t.heap == nil {
		return
	}
	delete(t.heap.tracked, t)
	t.heap = nil
}
