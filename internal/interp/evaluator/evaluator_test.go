package evaluator

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-mjs/internal/lexer"
	"github.com/cwbudde/go-mjs/internal/object"
	"github.com/cwbudde/go-mjs/internal/parser"
)

func run(t *testing.T, src string) (object.Value, *Evaluator) {
	t.Helper()
	l := lexer.New(src, lexer.WithVersion(lexer.ES5))
	prog, errs := parser.ParseProgram(l)
	if len(errs) > 0 {
		t.Fatalf("parse error for %q: %v", src, errs[0])
	}
	e := New(Options{})
	v, err := e.EvalProgram(prog)
	if err != nil {
		t.Fatalf("eval error for %q: %v", src, err)
	}
	return v, e
}

func runExpectThrow(t *testing.T, src string) error {
	t.Helper()
	l := lexer.New(src, lexer.WithVersion(lexer.ES5))
	prog, errs := parser.ParseProgram(l)
	if len(errs) > 0 {
		t.Fatalf("parse error for %q: %v", src, errs[0])
	}
	e := New(Options{})
	_, err := e.EvalProgram(prog)
	if err == nil {
		t.Fatalf("expected %q to throw, it did not", src)
	}
	return err
}

// spec.md §8 scenario 1: function call and addition.
func TestFunctionCallAddition(t *testing.T) {
	v, e := run(t, "function f(a,b){return a+b;} f(2,3)")
	n, err := e.ToNumber(v)
	if err != nil || n != 5 {
		t.Fatalf("want 5, got %v (err %v)", n, err)
	}
}

// spec.md §8 scenario 2: array elision.
func TestArrayElision(t *testing.T) {
	v, e := run(t, "a=[1,,3]; a.length*10 + (a[1]===undefined ? 1 : 0)")
	n, err := e.ToNumber(v)
	if err != nil || n != 31 {
		t.Fatalf("want 31, got %v (err %v)", n, err)
	}
}

// spec.md §8 scenario 3: TypeError from a null member access, caught.
func TestNullMemberAccessThrowsTypeError(t *testing.T) {
	v, e := run(t, "try { null.x } catch (e) { e.name + ':' + typeof e.message }")
	s, err := e.ToString(v)
	if err != nil || s != "TypeError:string" {
		t.Fatalf("want %q, got %q (err %v)", "TypeError:string", s, err)
	}
}

// spec.md §8 scenario 4: for-loop accumulation inside an IIFE.
func TestForLoopAccumulation(t *testing.T) {
	v, e := run(t, "(function(){var x=0; for (var i=0;i<10;++i) x+=i; return x;})()")
	n, err := e.ToNumber(v)
	if err != nil || n != 45 {
		t.Fatalf("want 45, got %v (err %v)", n, err)
	}
}

// spec.md §8 scenario 5: strict-mode `this` is undefined, not the global object.
func TestStrictModeThisIsUndefined(t *testing.T) {
	v, _ := run(t, "(function(){'use strict'; return this;})()")
	if !v.IsUndefined() {
		t.Fatalf("want undefined this, got kind %v", v.Kind())
	}
}

// spec.md §8 scenario 6: direct eval shares scope, indirect eval runs globally.
func TestDirectVsIndirectEval(t *testing.T) {
	v, e := run(t, "var x=1; eval('var x=2'); x")
	n, err := e.ToNumber(v)
	if err != nil || n != 2 {
		t.Fatalf("direct eval: want 2, got %v (err %v)", n, err)
	}

	v, e = run(t, "(0,eval)('var y=3'); y")
	n, err = e.ToNumber(v)
	if err != nil || n != 3 {
		t.Fatalf("indirect eval: want 3, got %v (err %v)", n, err)
	}
}

func TestTryFinallyOverridesCompletion(t *testing.T) {
	v, e := run(t, "(function(){ try { return 1; } finally { return 2; } })()")
	n, err := e.ToNumber(v)
	if err != nil || n != 2 {
		t.Fatalf("want 2, got %v (err %v)", n, err)
	}
}

func TestLabeledBreakFromNestedLoop(t *testing.T) {
	v, e := run(t, `
		var found = -1;
		outer: for (var i = 0; i < 3; i++) {
			for (var j = 0; j < 3; j++) {
				if (i === 1 && j === 1) { found = i * 10 + j; break outer; }
			}
		}
		found;
	`)
	n, err := e.ToNumber(v)
	if err != nil || n != 11 {
		t.Fatalf("want 11, got %v (err %v)", n, err)
	}
}

func TestSwitchFallthrough(t *testing.T) {
	v, e := run(t, `
		var out = "";
		switch (2) {
		case 1: out += "a";
		case 2: out += "b";
		case 3: out += "c"; break;
		case 4: out += "d";
		}
		out;
	`)
	s, err := e.ToString(v)
	if err != nil || s != "bc" {
		t.Fatalf("want %q, got %q (err %v)", "bc", s, err)
	}
}

func TestForInEnumeratesOwnAndInherited(t *testing.T) {
	v, e := run(t, `
		function Base() {}
		Base.prototype.inherited = 1;
		var o = new Base();
		o.own = 2;
		var keys = "";
		for (var k in o) { keys += k + ","; }
		keys;
	`)
	s, err := e.ToString(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(s, "own,") || !strings.Contains(s, "inherited,") {
		t.Fatalf("expected own and inherited keys, got %q", s)
	}
}

func TestArgumentsAliasingNonStrict(t *testing.T) {
	v, e := run(t, `
		function f(a) { arguments[0] = 99; return a; }
		f(1);
	`)
	n, err := e.ToNumber(v)
	if err != nil || n != 99 {
		t.Fatalf("want 99 (aliased), got %v (err %v)", n, err)
	}
}

func TestStrictModeDeleteUnqualifiedIsSyntaxError(t *testing.T) {
	e := New(Options{})
	_, err := e.EvalSource(`'use strict'; var x = 1; delete x;`, false)
	if err == nil || !strings.HasPrefix(err.Error(), "SyntaxError") {
		t.Fatalf("want a SyntaxError for deleting an unqualified name in strict code, got %v", err)
	}
}

func TestDeleteRemovesConfigurableProperty(t *testing.T) {
	v, e := run(t, `
		var o = {a: 1};
		var before = ('a' in o);
		delete o.a;
		var after = ('a' in o);
		(before ? 1 : 0) * 10 + (after ? 1 : 0);
	`)
	n, err := e.ToNumber(v)
	if err != nil || n != 10 {
		t.Fatalf("want 10, got %v (err %v)", n, err)
	}
}

func TestGetterSetterMerge(t *testing.T) {
	v, e := run(t, `
		var log = 0;
		var o = {
			get x() { return log; },
			set x(v) { log = v; }
		};
		o.x = 7;
		o.x;
	`)
	n, err := e.ToNumber(v)
	if err != nil || n != 7 {
		t.Fatalf("want 7, got %v (err %v)", n, err)
	}
}
