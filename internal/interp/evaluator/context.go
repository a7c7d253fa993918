// Package evaluator implements the tree-walking evaluator of spec.md §4:
// expression/statement visitor methods dispatched from Eval/Exec, variable
// and function hoisting, function invocation and construction, the global
// `eval` entry point, and the abstract operations (ToPrimitive, ToNumber,
// ToString, abstract/strict equality) that tie them together.
package evaluator

import (
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/go-mjs/internal/ast"
	"github.com/cwbudde/go-mjs/internal/heap"
	"github.com/cwbudde/go-mjs/internal/interp/runtime"
	"github.com/cwbudde/go-mjs/internal/lexer"
	"github.com/cwbudde/go-mjs/internal/object"
	"github.com/cwbudde/go-mjs/internal/parser"
)

// Evaluator holds the heap, the live prototype/global handles, the
// current scope chain, and the bookkeeping (call stack, GC cool-down,
// current source position) threaded through every Eval/Exec call.
type Evaluator struct {
	heap *heap.Heap

	prototypes map[string]*heap.TrackedHandle
	global     *heap.TrackedHandle

	scope     *runtime.Scope
	strict    bool
	callStack *runtime.CallStack

	sourceFile string
	curPos     lexer.Position

	// gcCooldown decays by one per top-level statement executed; a
	// collection runs only when it reaches zero and heap use exceeds
	// gcThresholdPct (spec.md §5's "bounded, monotone decay").
	gcCooldown    int
	gcCooldownMax int
	gcThresholdPct int

	output io.Writer
	trace  func(stmt ast.Statement)

	version lexer.Version

	// evalFnPos caches the global `eval` function's heap position, used to
	// detect direct-eval call sites (spec.md §4.4's "direct eval" rule).
	evalFnPos heap.Pos
}

// Options configures a new Evaluator (spec.md §6 embedding parameters).
type Options struct {
	Capacity   uint32
	Version    lexer.Version
	Output     io.Writer
	Trace      func(stmt ast.Statement)
	SourceFile string
	MaxStack   int
}

// New allocates a heap of the requested capacity, bootstraps the global
// object and intrinsic prototypes, and returns a ready-to-run Evaluator.
func New(opts Options) *Evaluator {
	if opts.Capacity == 0 {
		opts.Capacity = 1 << 16
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	e := &Evaluator{
		heap:           heap.New(opts.Capacity),
		prototypes:     make(map[string]*heap.TrackedHandle),
		callStack:      runtime.NewCallStack(opts.MaxStack),
		sourceFile:     opts.SourceFile,
		gcCooldownMax:  1000,
		gcThresholdPct: 90,
		output:         opts.Output,
		trace:          opts.Trace,
		version:        opts.Version,
	}
	e.gcCooldown = e.gcCooldownMax
	bootstrap(e)
	e.scope = runtime.NewGlobalScope(e.Global())
	return e
}

// --- object.Runtime ---

func (e *Evaluator) Heap() *heap.Heap { return e.heap }

// Throw constructs a native error object of the given kind (falling back
// to the plain Error prototype for an unregistered kind) and returns it
// wrapped as a *runtime.Exception, ready to propagate as a Go error.
func (e *Evaluator) Throw(kind, message string) error {
	val := e.newErrorValue(kind, message)
	return runtime.NewException(val, e.curPos, e.callStack.Snapshot(), fmt.Sprintf("%s: %s", kind, message))
}

func (e *Evaluator) ObjectPrototype() heap.Pos { return e.Prototype("Object") }

// --- builtins.Host ---

func (e *Evaluator) Prototype(name string) heap.Pos { return e.prototypes[name].Pos() }

func (e *Evaluator) SetPrototype(name string, pos heap.Pos) {
	if old := e.prototypes[name]; old != nil {
		old.Release()
	}
	e.prototypes[name] = e.heap.NewTracked(pos)
}

func (e *Evaluator) Global() heap.Pos { return e.global.Pos() }

func (e *Evaluator) SetGlobal(pos heap.Pos) {
	if e.global != nil {
		e.global.Release()
	}
	e.global = e.heap.NewTracked(pos)
}

func (e *Evaluator) Output() io.Writer { return e.output }

func (e *Evaluator) Version() int { return int(e.version) }

func (e *Evaluator) ToStringHost(v object.Value) (string, error) { return e.ToString(v) }
func (e *Evaluator) ToNumberHost(v object.Value) (float64, error) { return e.ToNumber(v) }
func (e *Evaluator) ToBooleanHost(v object.Value) bool             { return e.ToBoolean(v) }
func (e *Evaluator) NewStringHost(s string) object.Value           { return object.NewGoString(e.heap, s) }

// EvalSource parses and runs source as a Program, honoring direct-eval
// scoping rules (spec.md §4.4's eval): a direct call shares the caller's
// variable environment and strict-mode status; an indirect call always
// runs in global scope, non-strict unless the source itself opts in.
func (e *Evaluator) EvalSource(source string, direct bool) (object.Value, error) {
	l := lexer.New(source, lexer.WithVersion(e.version))
	prog, perrs := parser.ParseProgram(l)
	if len(perrs) > 0 {
		msgs := make([]string, len(perrs))
		for i, pe := range perrs {
			msgs[i] = pe.Error()
		}
		return object.Undefined, e.Throw("SyntaxError", strings.Join(msgs, "; "))
	}

	callerScope, callerStrict := e.scope, e.strict
	evalStrict := prog.Strict
	if direct {
		evalStrict = evalStrict || callerStrict
	}
	if !direct {
		e.scope = runtime.NewGlobalScope(e.Global())
	} else if evalStrict {
		// A strict direct eval gets its own variable environment so its
		// var/function declarations don't leak into the caller (ES5 §10.4.2).
		e.scope = runtime.NewDeclarativeScope(callerScope)
	}
	defer func() { e.scope = callerScope }()

	prevStrict := e.strict
	e.strict = evalStrict
	defer func() { e.strict = prevStrict }()

	if err := e.hoistProgram(prog); err != nil {
		return object.Undefined, err
	}
	result := object.Undefined
	for _, stmt := range prog.Statements {
		comp, err := e.execStatement(stmt)
		if err != nil {
			return object.Undefined, err
		}
		if comp.Kind == runtime.Normal && !comp.Value.IsUndefined() {
			result = comp.Value
		}
		if comp.IsAbrupt() {
			break
		}
	}
	return result, nil
}

// EvalProgram runs a freshly-parsed top-level program against the global
// scope, returning the value of its last expression statement (used by
// pkg/mjs's Interpreter.Eval, and through it by the CLI's file runner and
// REPL, matching the Completion-value convention `eval` itself relies on).
func (e *Evaluator) EvalProgram(prog *ast.Program) (object.Value, error) {
	e.strict = prog.Strict
	if err := e.hoistProgram(prog); err != nil {
		return object.Undefined, err
	}
	result := object.Undefined
	for _, stmt := range prog.Statements {
		e.maybeTrace(stmt)
		comp, err := e.execStatement(stmt)
		if err != nil {
			return object.Undefined, err
		}
		if !comp.Value.IsUndefined() {
			result = comp.Value
		}
		if comp.IsAbrupt() {
			break
		}
		e.maybeCollect()
	}
	return result, nil
}

func (e *Evaluator) maybeTrace(stmt ast.Statement) {
	if e.trace != nil {
		e.trace(stmt)
	}
}

// maybeCollect implements the GC trigger policy of spec.md §5: the
// cool-down counter decays once per top-level statement, and a collection
// runs only once it reaches zero and the heap is meaningfully full. It
// must only be called between statements, never mid-expression - see
// runtime.PrepareGCRoots's doc comment for why that matters.
func (e *Evaluator) maybeCollect() {
	if e.gcCooldown > 0 {
		e.gcCooldown--
	}
	if e.gcCooldown > 0 || e.heap.UsePercentage() < e.gcThresholdPct {
		return
	}
	commit := runtime.PrepareGCRoots(e.heap, e.scope)
	e.heap.GarbageCollect()
	commit()
	e.gcCooldown = e.gcCooldownMax
}

func (e *Evaluator) pushPos(pos lexer.Position) lexer.Position {
	prev := e.curPos
	e.curPos = pos
	return prev
}

func (e *Evaluator) popPos(prev lexer.Position) { e.curPos = prev }

func (e *Evaluator) pushScope(s *runtime.Scope) *runtime.Scope {
	prev := e.scope
	e.scope = s
	return prev
}

func (e *Evaluator) popScope(prev *runtime.Scope) { e.scope = prev }

func (e *Evaluator) pushStrict(strict bool) bool {
	prev := e.strict
	e.strict = e.strict || strict
	return prev
}

func (e *Evaluator) popStrict(prev bool) { e.strict = prev }

func (e *Evaluator) newErrorValue(kind, message string) object.Value {
	proto := e.Prototype(kind)
	if proto == 0 {
		proto = e.Prototype("Error")
	}
	pos := object.New(e.heap, kind, proto)
	obj := object.Get(e.heap, pos)
	obj.DefineOwnProperty("message", object.NewGoString(e.heap, message).ToRepresentation(), object.DontEnum)
	obj.DefineOwnProperty("name", object.NewGoString(e.heap, kind).ToRepresentation(), object.DontEnum)
	obj.DefineOwnProperty("stack", object.NewGoString(e.heap, e.callStack.String()).ToRepresentation(), object.DontEnum)
	return object.ObjectAt(pos)
}
