package runtime

import (
	"github.com/cwbudde/go-mjs/internal/heap"
	"github.com/cwbudde/go-mjs/internal/object"
)

// PrepareGCRoots pins every heap position embedded in s and its outer
// chain (object-environment-record positions, `this` bindings, variable
// bindings) as a temporary TrackedHandle, so the collector's root
// enumeration sees them, then returns a commit function that writes the
// post-collection positions back into the scope chain and releases the
// handles. Call sequence: commit := PrepareGCRoots(h, scope); h.GarbageCollect(); commit().
//
// This is only safe to call between statements (spec.md §5's GC trigger
// policy): at that point no intermediate expression Values are live on
// the Go stack outside the scope chain itself.
func PrepareGCRoots(h *heap.Heap, s *Scope) func() {
	var pins []func()
	for sc := s; sc != nil; sc = sc.outer {
		sc.pinRoots(h, &pins)
	}
	return func() {
		for _, commit := range pins {
			commit()
		}
	}
}

func (s *Scope) pinRoots(h *heap.Heap, pins *[]func()) {
	if s.objectRecord != 0 {
		handle := h.NewTracked(s.objectRecord)
		sc := s
		*pins = append(*pins, func() {
			sc.objectRecord = handle.Pos()
			handle.Release()
		})
	}
	if s.hasThis {
		if commit, ok := pinValue(h, &s.thisVal); ok {
			*pins = append(*pins, commit)
		}
	}
	for _, b := range s.vars {
		if commit, ok := pinValue(h, &b.value); ok {
			*pins = append(*pins, commit)
		}
	}
}

func pinValue(h *heap.Heap, v *object.Value) (func(), bool) {
	switch v.Kind() {
	case object.KindObject:
		handle := h.NewTracked(v.Pos())
		return func() {
			*v = object.ObjectAt(handle.Pos())
			handle.Release()
		}, true
	case object.KindString:
		handle := h.NewTracked(v.Pos())
		return func() {
			*v = object.StringAt(handle.Pos())
			handle.Release()
		}, true
	default:
		return nil, false
	}
}

// FixupChain registers the scope chain rooted at s with the heap's
// in-progress collection worklist. Unlike PrepareGCRoots, this is called
// from within a TypeInfo.Fixup callback (object's closure-data fixup)
// while a collection is already underway, so it uses RegisterFixup/
// RegisterPostFixup instead of a temporary TrackedHandle.
func FixupChain(h *heap.Heap, s *Scope) {
	for sc := s; sc != nil; sc = sc.outer {
		sc.fixupSelf(h)
	}
}

func (s *Scope) fixupSelf(h *heap.Heap) {
	if s.objectRecord != 0 {
		pos := s.objectRecord
		sc := s
		h.RegisterFixup(&pos)
		h.RegisterPostFixup(func() { sc.objectRecord = pos })
	}
	if s.hasThis {
		fixupValueFixup(h, &s.thisVal)
	}
	for _, b := range s.vars {
		fixupValueFixup(h, &b.value)
	}
}

func fixupValueFixup(h *heap.Heap, v *object.Value) {
	switch v.Kind() {
	case object.KindObject:
		pos := v.Pos()
		h.RegisterFixup(&pos)
		h.RegisterPostFixup(func() { *v = object.ObjectAt(pos) })
	case object.KindString:
		pos := v.Pos()
		h.RegisterFixup(&pos)
		h.RegisterPostFixup(func() { *v = object.StringAt(pos) })
	}
}
