package evaluator

import "github.com/cwbudde/go-mjs/internal/ast"

// hoistProgram installs every var-declared name and function declaration
// reachable in prog's top-level statement list onto the current scope
// (spec.md §4.4's hoisting pass), before any statement actually runs.
func (e *Evaluator) hoistProgram(prog *ast.Program) error {
	return e.hoistStatements(prog.Statements)
}

// hoistFunctionBody hoists a function body's own statement list into its
// freshly created activation scope.
func (e *Evaluator) hoistFunctionBody(body *ast.BlockStatement) error {
	return e.hoistStatements(body.Statements)
}

// hoistStatements walks stmts collecting var names (descending into
// nested blocks/control constructs, but not into nested function bodies)
// and installs them as undefined bindings, then installs each top-level
// function declaration as a callable value - in that fixed order, so a
// function declaration's binding always wins over a plain `var` of the
// same name (ES5 §10.5 step 5.e).
func (e *Evaluator) hoistStatements(stmts []ast.Statement) error {
	var varNames []string
	collectVarNames(stmts, &varNames)
	for _, name := range varNames {
		if err := e.scope.DeclareVar(e, name, false); err != nil {
			return err
		}
	}
	for _, stmt := range stmts {
		if fd, ok := stmt.(*ast.FunctionDeclaration); ok {
			fn, err := e.makeFunction(fd.Function, e.scope, false)
			if err != nil {
				return err
			}
			if err := e.scope.DeclareFunction(e, fd.Function.Name, fn, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// collectVarNames recurses into every nested statement that does not
// introduce its own function scope, appending every VariableDeclaration
// name and nested FunctionDeclaration name it finds (ES5 §10.5's "var
// declared names include names of nested function declarations").
func collectVarNames(stmts []ast.Statement, out *[]string) {
	for _, stmt := range stmts {
		collectVarNamesIn(stmt, out)
	}
}

func collectVarNamesIn(stmt ast.Statement, out *[]string) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		for _, d := range s.Declarations {
			*out = append(*out, d.Name.Name)
		}
	case *ast.FunctionDeclaration:
		*out = append(*out, s.Function.Name)
	case *ast.BlockStatement:
		collectVarNames(s.Statements, out)
	case *ast.IfStatement:
		collectVarNamesIn(s.Consequent, out)
		if s.Alternate != nil {
			collectVarNamesIn(s.Alternate, out)
		}
	case *ast.WhileStatement:
		collectVarNamesIn(s.Body, out)
	case *ast.DoWhileStatement:
		collectVarNamesIn(s.Body, out)
	case *ast.ForStatement:
		if decl, ok := s.Init.(*ast.VariableDeclaration); ok {
			collectVarNamesIn(decl, out)
		}
		collectVarNamesIn(s.Body, out)
	case *ast.ForInStatement:
		if decl, ok := s.Left.(*ast.VariableDeclaration); ok {
			collectVarNamesIn(decl, out)
		}
		collectVarNamesIn(s.Body, out)
	case *ast.TryStatement:
		collectVarNames(s.Block.Statements, out)
		if s.Handler != nil {
			collectVarNames(s.Handler.Body.Statements, out)
		}
		if s.Finalizer != nil {
			collectVarNames(s.Finalizer.Statements, out)
		}
	case *ast.SwitchStatement:
		for _, c := range s.Cases {
			collectVarNames(c.Consequent, out)
		}
	case *ast.LabeledStatement:
		collectVarNamesIn(s.Body, out)
	case *ast.WithStatement:
		collectVarNamesIn(s.Body, out)
	}
}
