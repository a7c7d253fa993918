package parser

import (
	"testing"

	"github.com/cwbudde/go-mjs/internal/ast"
	"github.com/cwbudde/go-mjs/internal/lexer"
)

func parse(t *testing.T, src string, version lexer.Version) (*ast.Program, []*ParseError) {
	t.Helper()
	l := lexer.New(src, lexer.WithVersion(version))
	return ParseProgram(l)
}

func mustParse(t *testing.T, src string, version lexer.Version) *ast.Program {
	t.Helper()
	prog, errs := parse(t, src, version)
	if len(errs) > 0 {
		t.Fatalf("parse(%q): unexpected errors: %v", src, errs)
	}
	return prog
}

// spec.md §8 "Given 'a = b\n++c', the parsed AST groups ++c as a separate
// statement."
func TestASIGroupsPlusPlusAsSeparateStatement(t *testing.T) {
	prog := mustParse(t, "a = b\n++c", lexer.ES5)
	if len(prog.Statements) != 2 {
		t.Fatalf("want 2 statements (ASI split), got %d: %v", len(prog.Statements), prog.Statements)
	}
	if _, ok := prog.Statements[1].(*ast.ExpressionStatement); !ok {
		t.Fatalf("want second statement to be an ExpressionStatement, got %T", prog.Statements[1])
	}
}

// With an explicit ';' and no LineTerminator, the second statement is an
// ordinary postfix `c++`; no semicolon has to be inserted to split them.
func TestNoASIWithoutNewline(t *testing.T) {
	prog := mustParse(t, "a = b; c++", lexer.ES5)
	if len(prog.Statements) != 2 {
		t.Fatalf("want 2 statements, got %d", len(prog.Statements))
	}
}

// spec.md §8 "continue\nid parses as two statements; continue id parses
// as a labelled continue only from ES3."
func TestRestrictedProductionContinueWithNewline(t *testing.T) {
	prog := mustParse(t, "outer: while (true) { continue\nid; }", lexer.ES5)
	ls, ok := prog.Statements[0].(*ast.LabeledStatement)
	if !ok {
		t.Fatalf("want labeled statement, got %T", prog.Statements[0])
	}
	block, ok := ls.Body.(*ast.WhileStatement)
	if !ok {
		t.Fatalf("want while statement body, got %T", ls.Body)
	}
	body, ok := block.Body.(*ast.BlockStatement)
	if !ok || len(body.Statements) != 2 {
		t.Fatalf("want a restricted 'continue' followed by a separate 'id' statement, got %#v", block.Body)
	}
	cont, ok := body.Statements[0].(*ast.ContinueStatement)
	if !ok || cont.Label != "" {
		t.Fatalf("want an unlabeled continue statement, got %#v", body.Statements[0])
	}
}

func TestContinueWithLabelNoNewline(t *testing.T) {
	prog := mustParse(t, "outer: while (true) { continue outer; }", lexer.ES5)
	ls := prog.Statements[0].(*ast.LabeledStatement)
	block := ls.Body.(*ast.WhileStatement)
	body := block.Body.(*ast.BlockStatement)
	if len(body.Statements) != 1 {
		t.Fatalf("want a single labeled-continue statement, got %d", len(body.Statements))
	}
	cont, ok := body.Statements[0].(*ast.ContinueStatement)
	if !ok || cont.Label != "outer" {
		t.Fatalf("want continue outer, got %#v", body.Statements[0])
	}
}

// spec.md §8 "Function expression inside a property-name-and-value list:
// ({get x(){return 42;}}).x == 42."
func TestGetterPropertyParses(t *testing.T) {
	prog := mustParse(t, "({get x(){return 42;}}).x;", lexer.ES5)
	stmt, ok := prog.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("want ExpressionStatement, got %T", prog.Statements[0])
	}
	member, ok := stmt.Expression.(*ast.MemberExpression)
	if !ok {
		t.Fatalf("want MemberExpression, got %T", stmt.Expression)
	}
	obj, ok := member.Object.(*ast.ObjectLiteral)
	if !ok {
		t.Fatalf("want ObjectLiteral, got %T", member.Object)
	}
	if len(obj.Properties) != 1 || obj.Properties[0].Kind != ast.PropertyGet {
		t.Fatalf("want a single getter property, got %#v", obj.Properties)
	}
}

func TestGetterSetterNotRecognizedBeforeES5(t *testing.T) {
	prog, errs := parse(t, "({get x(){return 42;}});", lexer.ES3)
	if len(errs) == 0 {
		if obj, ok := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.ObjectLiteral); ok {
			if len(obj.Properties) == 1 && obj.Properties[0].Kind == ast.PropertyGet {
				t.Fatalf("ES3 should not recognize get/set accessor syntax")
			}
		}
	}
}

// spec.md §4.3 "In strict mode, the parser additionally rejects: octal
// numeric literals, with, duplicate parameter names, assignment to
// reserved identifiers eval/arguments, and uses of strict-reserved words
// as identifiers."
func TestStrictModeRejectsWith(t *testing.T) {
	_, errs := parse(t, `'use strict'; with (x) { y; }`, lexer.ES5)
	if len(errs) == 0 {
		t.Fatal("want a strict-mode error rejecting 'with'")
	}
}

func TestStrictModeRejectsOctalLiteral(t *testing.T) {
	_, errs := parse(t, `'use strict'; var x = 010;`, lexer.ES5)
	if len(errs) == 0 {
		t.Fatal("want a strict-mode error rejecting an octal literal")
	}
}

func TestStrictModeRejectsDuplicateParams(t *testing.T) {
	_, errs := parse(t, `function f(a, a) { 'use strict'; }`, lexer.ES5)
	if len(errs) == 0 {
		t.Fatal("want a strict-mode error rejecting duplicate parameter names")
	}
}

func TestStrictModeRejectsEvalBindingName(t *testing.T) {
	_, errs := parse(t, `'use strict'; var eval = 1;`, lexer.ES5)
	if len(errs) == 0 {
		t.Fatal("want a strict-mode error rejecting 'eval' as a binding identifier")
	}
}

func TestStrictModeRejectsStrictReservedWordAsIdentifier(t *testing.T) {
	_, errs := parse(t, `'use strict'; var x = yield;`, lexer.ES5)
	if len(errs) == 0 {
		t.Fatal("want a strict-mode error rejecting 'yield' as an identifier reference")
	}
}

func TestSloppyModeAllowsStrictReservedWordAsIdentifier(t *testing.T) {
	mustParse(t, `var yield = 1; yield;`, lexer.ES5)
}

// spec.md §4.3 "A function body inherits strictness from its enclosing
// block, and its own prologue may upgrade to strict."
func TestNestedFunctionInheritsStrictness(t *testing.T) {
	_, errs := parse(t, `'use strict'; function f(eval) {}`, lexer.ES5)
	if len(errs) == 0 {
		t.Fatal("want the nested function to inherit strictness from its enclosing program")
	}
}

// spec.md §4.2/§4.3 version gating: `switch`/`try`/`do`/`debugger` raise a
// version-gated parse error before their introducing edition.
func TestSwitchGatedBeforeES3(t *testing.T) {
	_, errs := parse(t, `switch (1) { default: ; }`, lexer.ES1)
	if len(errs) == 0 {
		t.Fatal("want a version-gated error for 'switch' under ES1")
	}
	mustParse(t, `switch (1) { default: ; }`, lexer.ES3)
}

func TestTryGatedBeforeES3(t *testing.T) {
	_, errs := parse(t, `try { x(); } catch (e) {}`, lexer.ES1)
	if len(errs) == 0 {
		t.Fatal("want a version-gated error for 'try' under ES1")
	}
}

func TestDoWhileGatedBeforeES3(t *testing.T) {
	_, errs := parse(t, `do { x(); } while (false);`, lexer.ES1)
	if len(errs) == 0 {
		t.Fatal("want a version-gated error for 'do' under ES1")
	}
}

func TestDebuggerGatedBeforeES5(t *testing.T) {
	_, errs := parse(t, `debugger;`, lexer.ES3)
	if len(errs) == 0 {
		t.Fatal("want a version-gated error for 'debugger' before ES5")
	}
	mustParse(t, `debugger;`, lexer.ES5)
}

func TestInstanceofGatedBeforeES3(t *testing.T) {
	_, errs := parse(t, `a instanceof b;`, lexer.ES1)
	if len(errs) == 0 {
		t.Fatal("want a version-gated error for 'instanceof' under ES1")
	}
}

// Regex-vs-divide disambiguation (spec.md §4.3): after an identifier a
// following '/' is division; at the start of an expression it is a regex.
func TestRegexVsDivideInExpressionPosition(t *testing.T) {
	prog := mustParse(t, "var r = /abc/;", lexer.ES5)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	init := decl.Declarations[0].Init
	if _, ok := init.(*ast.RegexLiteral); !ok {
		t.Fatalf("want a RegexLiteral initializer, got %T", init)
	}
}

func TestDivideAfterIdentifierIsOperator(t *testing.T) {
	prog := mustParse(t, "var r = a / b;", lexer.ES5)
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	init := decl.Declarations[0].Init
	bin, ok := init.(*ast.BinaryExpression)
	if !ok || bin.Operator != "/" {
		t.Fatalf("want a division BinaryExpression, got %#v", init)
	}
}
