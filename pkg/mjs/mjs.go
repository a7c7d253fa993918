// Package mjs is the embeddable entry point into the interpreter: a heap,
// lexer/parser, and tree-walking evaluator for ES1/ES3/ES5 source, exposed
// without requiring callers to touch any internal package (spec.md §6's
// "library embedding" interface).
package mjs

import (
	"io"

	"github.com/cwbudde/go-mjs/internal/ast"
	"github.com/cwbudde/go-mjs/internal/builtins"
	cerrors "github.com/cwbudde/go-mjs/internal/errors"
	"github.com/cwbudde/go-mjs/internal/interp/evaluator"
	"github.com/cwbudde/go-mjs/internal/lexer"
	"github.com/cwbudde/go-mjs/internal/object"
	"github.com/cwbudde/go-mjs/internal/parser"
)

// Version selects the conformance level the lexer/parser enforce (ES1,
// ES3, or ES5 keyword sets, ASI rules, and strict-mode support).
type Version int

const (
	ES1 Version = 1
	ES3 Version = 3
	ES5 Version = 5
)

// Options configures a new Interpreter.
type Options struct {
	// Capacity is the heap's slot count; 0 selects a reasonable default.
	Capacity uint32
	// Version selects the language conformance level. Defaults to ES5.
	Version Version
	// Output receives console/print output; defaults to io.Discard.
	Output io.Writer
	// Trace, if set, is invoked before executing each top-level and
	// function-body statement (spec.md §6's "optional per-statement trace
	// callback").
	Trace func(line int)
	// SourceFile names the script for stack-trace formatting.
	SourceFile string
	// MaxStack bounds call-stack depth before a RangeError is thrown; 0
	// selects the evaluator's default.
	MaxStack int
}

// Interpreter is one independent heap plus evaluator. It is not safe for
// concurrent use from multiple goroutines (spec.md §5: the heap is
// exclusively owned by one evaluator).
type Interpreter struct {
	eval       *evaluator.Evaluator
	version    Version
	sourceFile string
}

// New constructs an Interpreter ready to evaluate source.
func New(opts Options) *Interpreter {
	if opts.Version == 0 {
		opts.Version = ES5
	}
	var trace func(ast.Statement)
	if opts.Trace != nil {
		userTrace := opts.Trace
		trace = func(s ast.Statement) { userTrace(s.Pos().Line) }
	}
	e := evaluator.New(evaluator.Options{
		Capacity:   opts.Capacity,
		Version:    lexer.Version(opts.Version),
		Output:     opts.Output,
		Trace:      trace,
		SourceFile: opts.SourceFile,
		MaxStack:   opts.MaxStack,
	})
	return &Interpreter{eval: e, version: opts.Version, sourceFile: opts.SourceFile}
}

// SyntaxError reports one or more parse failures, each rendered with the
// offending source line and a caret pointing at the column (the same
// compiler-diagnostic format used by the teacher's command-line tools).
type SyntaxError struct {
	Errors []*cerrors.CompilerError
}

func (e *SyntaxError) Error() string {
	return cerrors.FormatErrors(e.Errors, false)
}

// Value is an opaque handle to a live script value, valid only until the
// next collection-triggering Eval/call on the Interpreter that produced
// it - callers that need a value to outlive that should convert it with
// String/Number/Bool immediately.
type Value struct {
	it *Interpreter
	v  object.Value
}

// Eval parses source at the interpreter's configured version and runs it
// as a top-level program, returning the completion value of its last
// expression statement (spec.md §6).
func (it *Interpreter) Eval(source string) (Value, error) {
	l := lexer.New(source, lexer.WithVersion(lexer.Version(it.version)))
	prog, perrs := parser.ParseProgram(l)
	if len(perrs) > 0 {
		compilerErrors := make([]*cerrors.CompilerError, 0, len(perrs))
		for _, perr := range perrs {
			compilerErrors = append(compilerErrors, cerrors.NewCompilerError(perr.Pos, perr.Message, source, it.sourceFile))
		}
		return Value{}, &SyntaxError{Errors: compilerErrors}
	}
	v, err := it.eval.EvalProgram(prog)
	if err != nil {
		return Value{}, err
	}
	return Value{it: it, v: v}, nil
}

// Global looks up a property of the global object by name.
func (it *Interpreter) Global(name string) (Value, bool) {
	v, ok := object.HasProperty(it.eval.Heap(), it.eval.Global(), name), true
	if !v {
		return Value{}, false
	}
	val, err := object.GetProperty(it.eval, it.eval.Global(), name)
	if err != nil {
		return Value{}, false
	}
	return Value{it: it, v: val}, ok
}

// SetGlobal defines or overwrites a property on the global object.
func (it *Interpreter) SetGlobal(name string, v Value) error {
	return object.PutProperty(it.eval, it.eval.Global(), name, v.v, false)
}

// NativeFunc is a host function callable from script. args reflects
// exactly what the call site passed (no padding or truncation); a thrown
// error propagates as a script exception.
type NativeFunc func(this Value, args []Value) (Value, error)

// RegisterFunction defines a global native function under name, callable
// from script with arity declared for its `.length` property.
func (it *Interpreter) RegisterFunction(name string, arity int, fn NativeFunc) {
	call := func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		wrapped := make([]Value, len(args))
		for i, a := range args {
			wrapped[i] = Value{it: it, v: a}
		}
		result, err := fn(Value{it: it, v: this}, wrapped)
		if err != nil {
			return object.Undefined, err
		}
		return result.v, nil
	}
	builtins.PutNativeFunction(it.eval, it.eval.Global(), name, arity, call)
}

// --- Value conversions (spec.md §3.1's abstract operations, exposed) ---

func (v Value) String() (string, error) { return v.it.eval.ToString(v.v) }
func (v Value) Number() (float64, error) { return v.it.eval.ToNumber(v.v) }
func (v Value) Bool() bool               { return v.it.eval.ToBoolean(v.v) }
func (v Value) Int32() (int32, error)    { return v.it.eval.ToInt32(v.v) }
func (v Value) IsUndefined() bool        { return v.v.IsUndefined() }
func (v Value) IsNull() bool             { return v.v.Kind() == object.KindNull }

// NewString wraps a Go string as a script string value.
func (it *Interpreter) NewString(s string) Value {
	return Value{it: it, v: object.NewGoString(it.eval.Heap(), s)}
}

// NewNumber wraps a float64 as a script number value.
func (it *Interpreter) NewNumber(n float64) Value { return Value{it: it, v: object.Number(n)} }

// NewBool wraps a bool as a script boolean value.
func (it *Interpreter) NewBool(b bool) Value { return Value{it: it, v: object.Bool(b)} }

// Undefined returns the interpreter's undefined value.
func (it *Interpreter) Undefined() Value { return Value{it: it, v: object.Undefined} }
