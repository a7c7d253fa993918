// Package runtime implements the evaluator's supporting runtime state:
// lexical scopes (spec.md §4.4's environment records), completions, the
// exception/call-stack machinery behind throw/catch, and the active
// heap/version/strict-mode context threaded through evaluation.
package runtime

import (
	"fmt"

	"github.com/cwbudde/go-mjs/internal/heap"
	"github.com/cwbudde/go-mjs/internal/object"
)

// binding is one declarative-environment-record slot (ES5 §10.2.1.1): a
// value plus whether it may be reassigned or removed.
type binding struct {
	value     object.Value
	mutable   bool
	deletable bool
}

// PropertyHost is the minimal surface Scope needs to route object-
// environment-record (global object / `with` statement) lookups through
// the general property algorithms in internal/object, without importing
// the evaluator package that supplies the concrete object.Runtime.
type PropertyHost interface {
	object.Runtime
}

// Scope is one entry in the lexical environment chain: either a
// declarative environment record (function, catch, or block-level `var`
// scope) or an object environment record wrapping a heap object (global
// scope, or a `with` statement's object).
type Scope struct {
	vars  map[string]*binding
	outer *Scope

	objectRecord heap.Pos // 0 for a declarative record
	provideThis  bool     // true only for the global object environment record

	hasThis bool
	thisVal object.Value
}

// NewGlobalScope creates the outermost object environment record, bound to
// globalObj, with `this` set to the global object itself (ES5 §10.2.3).
func NewGlobalScope(globalObj heap.Pos) *Scope {
	return &Scope{
		vars:         make(map[string]*binding),
		objectRecord: globalObj,
		provideThis:  true,
		hasThis:      true,
		thisVal:      object.ObjectAt(globalObj),
	}
}

// NewDeclarativeScope creates a nested declarative environment record (a
// block, catch clause, or for-loop head) that does not rebind `this`.
func NewDeclarativeScope(outer *Scope) *Scope {
	return &Scope{vars: make(map[string]*binding), outer: outer}
}

// NewFunctionScope creates a function call's variable environment, binding
// `this` per spec.md §4.4 rule 4 (already ToObject-coerced/defaulted to the
// global object by the caller for non-strict calls).
func NewFunctionScope(outer *Scope, thisVal object.Value) *Scope {
	return &Scope{vars: make(map[string]*binding), outer: outer, hasThis: true, thisVal: thisVal}
}

// NewWithScope creates a `with` statement's object environment record. It
// does not provide `this` - reads of `this` still resolve to the nearest
// enclosing function/global scope (ES5 §10.2.1.2.6, provideThis = false).
func NewWithScope(outer *Scope, obj heap.Pos) *Scope {
	return &Scope{vars: make(map[string]*binding), outer: outer, objectRecord: obj}
}

// ThisValue resolves `this` by walking outward to the nearest scope that
// provides one, falling back to Undefined if none does (should not happen
// once the global scope is always the chain's root).
func (s *Scope) ThisValue() object.Value {
	for sc := s; sc != nil; sc = sc.outer {
		if sc.hasThis {
			return sc.thisVal
		}
	}
	return object.Undefined
}

// HasBinding reports whether name resolves anywhere in this scope or an
// enclosing one.
func (s *Scope) HasBinding(rt PropertyHost, name string) bool {
	for sc := s; sc != nil; sc = sc.outer {
		if sc.hasOwnBinding(rt, name) {
			return true
		}
	}
	return false
}

func (s *Scope) hasOwnBinding(rt PropertyHost, name string) bool {
	if s.objectRecord != 0 {
		return object.HasProperty(rt.Heap(), s.objectRecord, name)
	}
	_, ok := s.vars[name]
	return ok
}

// HasOwnBinding reports whether name is bound directly in this scope
// (not an enclosing one) - used by `delete` on an unqualified identifier
// to find which environment record actually holds the binding (ES5
// §10.2.1's per-record [[DeleteBinding]] dispatch).
func (s *Scope) HasOwnBinding(rt PropertyHost, name string) bool { return s.hasOwnBinding(rt, name) }

// GetBindingValue resolves name in this scope or an enclosing one, per
// ES5 §10.2.2.1's identifier resolution algorithm.
func (s *Scope) GetBindingValue(rt PropertyHost, name string) (object.Value, bool, error) {
	for sc := s; sc != nil; sc = sc.outer {
		if sc.objectRecord != 0 {
			if object.HasProperty(rt.Heap(), sc.objectRecord, name) {
				v, err := object.GetProperty(rt, sc.objectRecord, name)
				return v, true, err
			}
			continue
		}
		if b, ok := sc.vars[name]; ok {
			return b.value, true, nil
		}
	}
	return object.Undefined, false, nil
}

// SetMutableBinding assigns name in whichever scope it's bound in, per
// ES5 §10.2.2.1's assignment form. strict requests a ReferenceError when
// name is unresolved (spec.md §4.4/§7's strict-mode unresolvable-reference
// rule); otherwise an unresolved assignment creates a property on the
// global object, matching sloppy-mode implicit globals.
func (s *Scope) SetMutableBinding(rt PropertyHost, name string, val object.Value, strict bool) error {
	for sc := s; sc != nil; sc = sc.outer {
		if sc.objectRecord != 0 {
			if object.HasProperty(rt.Heap(), sc.objectRecord, name) {
				return object.PutProperty(rt, sc.objectRecord, name, val, strict)
			}
			continue
		}
		if b, ok := sc.vars[name]; ok {
			if !b.mutable {
				if strict {
					return rt.Throw("TypeError", fmt.Sprintf("assignment to constant variable '%s'", name))
				}
				return nil
			}
			b.value = val
			return nil
		}
	}
	if strict {
		return rt.Throw("ReferenceError", fmt.Sprintf("%s is not defined", name))
	}
	return s.globalScope().declareOnObjectRecord(rt, name, val)
}

func (s *Scope) globalScope() *Scope {
	sc := s
	for sc.outer != nil {
		sc = sc.outer
	}
	return sc
}

func (s *Scope) declareOnObjectRecord(rt PropertyHost, name string, val object.Value) error {
	if s.objectRecord != 0 {
		return object.PutProperty(rt, s.objectRecord, name, val, false)
	}
	s.vars[name] = &binding{value: val, mutable: true, deletable: true}
	return nil
}

// DeclareVar creates an undefined `var` binding in this scope if one does
// not already exist (ES5 §10.5's variable-instantiation step for
// VariableDeclarations; step 2.b: existing bindings, including parameters,
// are left untouched). deletable decides whether the new binding may be
// deleted; the evaluator's hoisting passes false everywhere, eval code
// included, so hoisted `var` bindings are never deletable.
func (s *Scope) DeclareVar(rt PropertyHost, name string, deletable bool) error {
	if s.objectRecord != 0 {
		if object.HasProperty(rt.Heap(), s.objectRecord, name) {
			return nil
		}
		attrs := object.Attributes(0)
		if !deletable {
			attrs = object.DontDelete
		}
		obj := object.Get(rt.Heap(), s.objectRecord)
		obj.DefineOwnProperty(name, object.Undefined.ToRepresentation(), attrs)
		return nil
	}
	if _, ok := s.vars[name]; ok {
		return nil
	}
	s.vars[name] = &binding{value: object.Undefined, mutable: true, deletable: deletable}
	return nil
}

// DeclareFunction installs a hoisted FunctionDeclaration's value,
// overwriting any existing binding unconditionally (ES5 §10.5 step 5.e:
// function bindings always replace, even a prior `var` of the same name).
func (s *Scope) DeclareFunction(rt PropertyHost, name string, val object.Value, deletable bool) error {
	if s.objectRecord != 0 {
		attrs := object.Attributes(0)
		if !deletable {
			attrs = object.DontDelete
		}
		obj := object.Get(rt.Heap(), s.objectRecord)
		obj.DefineOwnProperty(name, val.ToRepresentation(), attrs)
		return nil
	}
	s.vars[name] = &binding{value: val, mutable: true, deletable: deletable}
	return nil
}

// DeclareImmutable creates a non-writable binding such as a function's own
// name inside its expression scope (ES5 §13's named function expression
// self-reference binding).
func (s *Scope) DeclareImmutable(name string, val object.Value) {
	s.vars[name] = &binding{value: val, mutable: false, deletable: false}
}

// DeclareCatchParameter creates a writable, non-deletable binding for a
// try/catch clause's parameter (ES5 §12.14: the catch variable may be
// reassigned inside the handler but cannot be removed with `delete`).
func (s *Scope) DeclareCatchParameter(name string, val object.Value) {
	s.vars[name] = &binding{value: val, mutable: true, deletable: false}
}

// DeleteBinding removes name from this scope only (not outer scopes),
// reporting whether it is now absent. Used by the `delete` operator
// applied to an unqualified identifier in non-strict code.
func (s *Scope) DeleteBinding(rt PropertyHost, name string) (bool, error) {
	if s.objectRecord != 0 {
		return object.DeleteProperty(rt, s.objectRecord, name, false)
	}
	b, ok := s.vars[name]
	if !ok {
		return true, nil
	}
	if !b.deletable {
		return false, nil
	}
	delete(s.vars, name)
	return true, nil
}

// ObjectRecord returns the heap object this scope wraps, and whether it is
// an object environment record at all (used by `with`'s unqualified-
// identifier-inside-with resolution and by global-object introspection).
func (s *Scope) ObjectRecord() (heap.Pos, bool) { return s.objectRecord, s.objectRecord != 0 }

// Outer returns the enclosing scope, or nil at the global scope.
func (s *Scope) Outer() *Scope { return s.outer }
