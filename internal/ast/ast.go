// Package ast defines the abstract syntax tree node types produced by
// internal/parser and walked by internal/interp/evaluator.
package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-mjs/internal/lexer"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: a sequence of source elements (statements and
// function declarations), plus whether its own directive prologue
// contained "use strict" (spec.md §2.5/§4.2).
type Program struct {
	Statements []Statement
	Strict     bool
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}
func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

// ---- Expressions ----

type Identifier struct {
	Token lexer.Token
	Name  string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Name }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }

type NumberLiteral struct {
	Token lexer.Token
	Value float64
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) String() string       { return n.Token.Literal }
func (n *NumberLiteral) Pos() lexer.Position  { return n.Token.Pos }

// StringLiteral carries the decoded value plus whether its source used a
// legacy octal escape - ES5 Annex B.1.2 forbids those in strict code.
type StringLiteral struct {
	Token       lexer.Token
	Value       string
	OctalEscape bool
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) String() string       { return "\"" + s.Value + "\"" }
func (s *StringLiteral) Pos() lexer.Position  { return s.Token.Pos }

type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) String() string       { return b.Token.Literal }
func (b *BooleanLiteral) Pos() lexer.Position  { return b.Token.Pos }

type NullLiteral struct{ Token lexer.Token }

func (n *NullLiteral) expressionNode()      {}
func (n *NullLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NullLiteral) String() string       { return "null" }
func (n *NullLiteral) Pos() lexer.Position  { return n.Token.Pos }

type ThisExpression struct{ Token lexer.Token }

func (t *ThisExpression) expressionNode()      {}
func (t *ThisExpression) TokenLiteral() string { return t.Token.Literal }
func (t *ThisExpression) String() string       { return "this" }
func (t *ThisExpression) Pos() lexer.Position  { return t.Token.Pos }

// RegexLiteral stores the raw /body/flags text; the evaluator's host
// RegExp constructor is responsible for parsing it (spec.md treats RegExp
// as an out-of-scope collaborator beyond this literal's existence).
type RegexLiteral struct {
	Token lexer.Token
	Body  string
	Flags string
}

func (r *RegexLiteral) expressionNode()      {}
func (r *RegexLiteral) TokenLiteral() string { return r.Token.Literal }
func (r *RegexLiteral) String() string       { return "/" + r.Body + "/" + r.Flags }
func (r *RegexLiteral) Pos() lexer.Position  { return r.Token.Pos }

type ArrayLiteral struct {
	Token    lexer.Token
	Elements []Expression // nil entries are elisions
}

func (a *ArrayLiteral) expressionNode()      {}
func (a *ArrayLiteral) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayLiteral) Pos() lexer.Position  { return a.Token.Pos }
func (a *ArrayLiteral) String() string {
	var parts []string
	for _, e := range a.Elements {
		if e == nil {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, e.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// PropertyKind distinguishes the three ES5 object-literal property forms.
type PropertyKind int

const (
	PropertyInit PropertyKind = iota
	PropertyGet
	PropertySet
)

type Property struct {
	Key      Expression // Identifier or StringLiteral or NumberLiteral
	Value    Expression
	Kind     PropertyKind
	Computed bool // unused at ES5 but kept for forward-compatible visitors
}

type ObjectLiteral struct {
	Token      lexer.Token
	Properties []Property
}

func (o *ObjectLiteral) expressionNode()      {}
func (o *ObjectLiteral) TokenLiteral() string { return o.Token.Literal }
func (o *ObjectLiteral) Pos() lexer.Position  { return o.Token.Pos }
func (o *ObjectLiteral) String() string {
	var parts []string
	for _, p := range o.Properties {
		parts = append(parts, p.Key.String()+": "+p.Value.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FunctionLiteral backs both FunctionDeclaration and FunctionExpression
// (spec.md §2.3); Name is empty for anonymous function expressions.
type FunctionLiteral struct {
	Token  lexer.Token
	Name   string
	Params []*Identifier
	Body   *BlockStatement
	Strict bool // own directive prologue contains "use strict"
}

func (f *FunctionLiteral) expressionNode()      {}
func (f *FunctionLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionLiteral) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionLiteral) String() string {
	var params []string
	for _, p := range f.Params {
		params = append(params, p.Name)
	}
	return "function " + f.Name + "(" + strings.Join(params, ", ") + ") " + f.Body.String()
}

type UnaryExpression struct {
	Token    lexer.Token
	Operator string
	Operand  Expression
	Prefix   bool
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) Pos() lexer.Position  { return u.Token.Pos }
func (u *UnaryExpression) String() string {
	if u.Prefix {
		return "(" + u.Operator + u.Operand.String() + ")"
	}
	return "(" + u.Operand.String() + u.Operator + ")"
}

// UpdateExpression is ++/-- (spec.md distinguishes it from UnaryExpression
// because its operand must be a Reference).
type UpdateExpression struct {
	Token    lexer.Token
	Operator string
	Operand  Expression
	Prefix   bool
}

func (u *UpdateExpression) expressionNode()      {}
func (u *UpdateExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UpdateExpression) Pos() lexer.Position  { return u.Token.Pos }
func (u *UpdateExpression) String() string {
	if u.Prefix {
		return "(" + u.Operator + u.Operand.String() + ")"
	}
	return "(" + u.Operand.String() + u.Operator + ")"
}

type BinaryExpression struct {
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() lexer.Position  { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// LogicalExpression is && / || (spec.md: short-circuiting, evaluated
// separately from BinaryExpression so the evaluator never eagerly
// evaluates the right operand).
type LogicalExpression struct {
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (l *LogicalExpression) expressionNode()      {}
func (l *LogicalExpression) TokenLiteral() string { return l.Token.Literal }
func (l *LogicalExpression) Pos() lexer.Position  { return l.Token.Pos }
func (l *LogicalExpression) String() string {
	return "(" + l.Left.String() + " " + l.Operator + " " + l.Right.String() + ")"
}

type AssignmentExpression struct {
	Token    lexer.Token
	Left     Expression // Identifier or MemberExpression
	Operator string     // "=", "+=", etc.
	Right    Expression
}

func (a *AssignmentExpression) expressionNode()      {}
func (a *AssignmentExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AssignmentExpression) Pos() lexer.Position  { return a.Token.Pos }
func (a *AssignmentExpression) String() string {
	return "(" + a.Left.String() + " " + a.Operator + " " + a.Right.String() + ")"
}

type ConditionalExpression struct {
	Token       lexer.Token
	Test        Expression
	Consequent  Expression
	Alternate   Expression
}

func (c *ConditionalExpression) expressionNode()      {}
func (c *ConditionalExpression) TokenLiteral() string { return c.Token.Literal }
func (c *ConditionalExpression) Pos() lexer.Position  { return c.Token.Pos }
func (c *ConditionalExpression) String() string {
	return "(" + c.Test.String() + " ? " + c.Consequent.String() + " : " + c.Alternate.String() + ")"
}

// SequenceExpression is the comma operator.
type SequenceExpression struct {
	Token       lexer.Token
	Expressions []Expression
}

func (s *SequenceExpression) expressionNode()      {}
func (s *SequenceExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SequenceExpression) Pos() lexer.Position  { return s.Token.Pos }
func (s *SequenceExpression) String() string {
	var parts []string
	for _, e := range s.Expressions {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}

type MemberExpression struct {
	Token    lexer.Token
	Object   Expression
	Property Expression // Identifier for dot access, any Expression for bracket access
	Computed bool        // true for obj[prop], false for obj.prop
}

func (m *MemberExpression) expressionNode()      {}
func (m *MemberExpression) TokenLiteral() string { return m.Token.Literal }
func (m *MemberExpression) Pos() lexer.Position  { return m.Token.Pos }
func (m *MemberExpression) String() string {
	if m.Computed {
		return m.Object.String() + "[" + m.Property.String() + "]"
	}
	return m.Object.String() + "." + m.Property.String()
}

type CallExpression struct {
	Token    lexer.Token
	Callee   Expression
	Args     []Expression
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) Pos() lexer.Position  { return c.Token.Pos }
func (c *CallExpression) String() string {
	var args []string
	for _, a := range c.Args {
		args = append(args, a.String())
	}
	return c.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

type NewExpression struct {
	Token  lexer.Token
	Callee Expression
	Args   []Expression
}

func (n *NewExpression) expressionNode()      {}
func (n *NewExpression) TokenLiteral() string { return n.Token.Literal }
func (n *NewExpression) Pos() lexer.Position  { return n.Token.Pos }
func (n *NewExpression) String() string {
	var args []string
	for _, a := range n.Args {
		args = append(args, a.String())
	}
	return "new " + n.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// ---- Statements ----

type ExpressionStatement struct {
	Token      lexer.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) Pos() lexer.Position  { return e.Token.Pos }
func (e *ExpressionStatement) String() string {
	if e.Expression != nil {
		return e.Expression.String() + ";"
	}
	return ";"
}

type EmptyStatement struct{ Token lexer.Token }

func (e *EmptyStatement) statementNode()       {}
func (e *EmptyStatement) TokenLiteral() string { return e.Token.Literal }
func (e *EmptyStatement) Pos() lexer.Position  { return e.Token.Pos }
func (e *EmptyStatement) String() string       { return ";" }

type DebuggerStatement struct{ Token lexer.Token }

func (d *DebuggerStatement) statementNode()       {}
func (d *DebuggerStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DebuggerStatement) Pos() lexer.Position  { return d.Token.Pos }
func (d *DebuggerStatement) String() string       { return "debugger;" }

type BlockStatement struct {
	Token      lexer.Token
	Statements []Statement
}

func (b *BlockStatement) statementNode()       {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStatement) Pos() lexer.Position  { return b.Token.Pos }
func (b *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString("  " + strings.ReplaceAll(s.String(), "\n", "\n  ") + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// VariableDeclarator pairs a declared name with its optional initializer.
type VariableDeclarator struct {
	Name *Identifier
	Init Expression // nil if uninitialized
}

type VariableDeclaration struct {
	Token        lexer.Token // 'var'
	Declarations []*VariableDeclarator
}

func (v *VariableDeclaration) statementNode()       {}
func (v *VariableDeclaration) TokenLiteral() string { return v.Token.Literal }
func (v *VariableDeclaration) Pos() lexer.Position  { return v.Token.Pos }
func (v *VariableDeclaration) String() string {
	var parts []string
	for _, d := range v.Declarations {
		if d.Init != nil {
			parts = append(parts, d.Name.Name+" = "+d.Init.String())
		} else {
			parts = append(parts, d.Name.Name)
		}
	}
	return "var " + strings.Join(parts, ", ") + ";"
}

// FunctionDeclaration wraps a FunctionLiteral as a hoisted source element
// (spec.md §4.2: function declarations install the function object into
// the variable environment during hoisting, before any statement runs).
type FunctionDeclaration struct {
	Token    lexer.Token
	Function *FunctionLiteral
}

func (f *FunctionDeclaration) statementNode()       {}
func (f *FunctionDeclaration) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDeclaration) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionDeclaration) String() string       { return f.Function.String() }

type IfStatement struct {
	Token      lexer.Token
	Test       Expression
	Consequent Statement
	Alternate  Statement // nil if no else branch
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) Pos() lexer.Position  { return i.Token.Pos }
func (i *IfStatement) String() string {
	s := "if (" + i.Test.String() + ") " + i.Consequent.String()
	if i.Alternate != nil {
		s += " else " + i.Alternate.String()
	}
	return s
}

type WhileStatement struct {
	Token lexer.Token
	Test  Expression
	Body  Statement
}

func (w *WhileStatement) statementNode()       {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) Pos() lexer.Position  { return w.Token.Pos }
func (w *WhileStatement) String() string       { return "while (" + w.Test.String() + ") " + w.Body.String() }

type DoWhileStatement struct {
	Token lexer.Token
	Body  Statement
	Test  Expression
}

func (d *DoWhileStatement) statementNode()       {}
func (d *DoWhileStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DoWhileStatement) Pos() lexer.Position  { return d.Token.Pos }
func (d *DoWhileStatement) String() string {
	return "do " + d.Body.String() + " while (" + d.Test.String() + ");"
}

// ForStatement is the C-style for(init;test;update) loop. Init may be a
// *VariableDeclaration or an Expression wrapped as ExpressionStatement-less
// Expression; nil fields mean the clause was omitted.
type ForStatement struct {
	Token  lexer.Token
	Init   Node // *VariableDeclaration or Expression, or nil
	Test   Expression
	Update Expression
	Body   Statement
}

func (f *ForStatement) statementNode()       {}
func (f *ForStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForStatement) Pos() lexer.Position  { return f.Token.Pos }
func (f *ForStatement) String() string {
	return "for (...) " + f.Body.String()
}

// ForInStatement is for (x in obj) ... (spec.md §4.3's enumerate-own-and-
// inherited-enumerable-keys loop).
type ForInStatement struct {
	Token  lexer.Token
	Left   Node // *VariableDeclaration (single declarator) or Expression (Identifier/MemberExpression)
	Right  Expression
	Body   Statement
}

func (f *ForInStatement) statementNode()       {}
func (f *ForInStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForInStatement) Pos() lexer.Position  { return f.Token.Pos }
func (f *ForInStatement) String() string {
	return "for (... in " + f.Right.String() + ") " + f.Body.String()
}

type BreakStatement struct {
	Token lexer.Token
	Label string // empty if unlabeled
}

func (b *BreakStatement) statementNode()       {}
func (b *BreakStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStatement) Pos() lexer.Position  { return b.Token.Pos }
func (b *BreakStatement) String() string {
	if b.Label != "" {
		return "break " + b.Label + ";"
	}
	return "break;"
}

type ContinueStatement struct {
	Token lexer.Token
	Label string
}

func (c *ContinueStatement) statementNode()       {}
func (c *ContinueStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStatement) Pos() lexer.Position  { return c.Token.Pos }
func (c *ContinueStatement) String() string {
	if c.Label != "" {
		return "continue " + c.Label + ";"
	}
	return "continue;"
}

type ReturnStatement struct {
	Token    lexer.Token
	Argument Expression // nil for bare `return;`
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) Pos() lexer.Position  { return r.Token.Pos }
func (r *ReturnStatement) String() string {
	if r.Argument != nil {
		return "return " + r.Argument.String() + ";"
	}
	return "return;"
}

type ThrowStatement struct {
	Token    lexer.Token
	Argument Expression
}

func (t *ThrowStatement) statementNode()       {}
func (t *ThrowStatement) TokenLiteral() string { return t.Token.Literal }
func (t *ThrowStatement) Pos() lexer.Position  { return t.Token.Pos }
func (t *ThrowStatement) String() string       { return "throw " + t.Argument.String() + ";" }

// CatchClause binds the thrown value to Param within Body's own scope
// (spec.md §4.4's "completion whose target is an exception handler").
type CatchClause struct {
	Param *Identifier
	Body  *BlockStatement
}

type TryStatement struct {
	Token     lexer.Token
	Block     *BlockStatement
	Handler   *CatchClause // nil if no catch
	Finalizer *BlockStatement // nil if no finally
}

func (t *TryStatement) statementNode()       {}
func (t *TryStatement) TokenLiteral() string { return t.Token.Literal }
func (t *TryStatement) Pos() lexer.Position  { return t.Token.Pos }
func (t *TryStatement) String() string {
	s := "try " + t.Block.String()
	if t.Handler != nil {
		s += " catch (" + t.Handler.Param.Name + ") " + t.Handler.Body.String()
	}
	if t.Finalizer != nil {
		s += " finally " + t.Finalizer.String()
	}
	return s
}

// SwitchCase is one `case expr: stmts` or the `default:` clause (Test nil).
type SwitchCase struct {
	Test       Expression
	Consequent []Statement
}

type SwitchStatement struct {
	Token        lexer.Token
	Discriminant Expression
	Cases        []*SwitchCase
}

func (s *SwitchStatement) statementNode()       {}
func (s *SwitchStatement) TokenLiteral() string { return s.Token.Literal }
func (s *SwitchStatement) Pos() lexer.Position  { return s.Token.Pos }
func (s *SwitchStatement) String() string {
	return "switch (" + s.Discriminant.String() + ") { ... }"
}

type LabeledStatement struct {
	Token lexer.Token
	Label string
	Body  Statement
}

func (l *LabeledStatement) statementNode()       {}
func (l *LabeledStatement) TokenLiteral() string { return l.Token.Literal }
func (l *LabeledStatement) Pos() lexer.Position  { return l.Token.Pos }
func (l *LabeledStatement) String() string       { return l.Label + ": " + l.Body.String() }

type WithStatement struct {
	Token  lexer.Token
	Object Expression
	Body   Statement
}

func (w *WithStatement) statementNode()       {}
func (w *WithStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WithStatement) Pos() lexer.Position  { return w.Token.Pos }
func (w *WithStatement) String() string {
	return "with (" + w.Object.String() + ") " + w.Body.String()
}
