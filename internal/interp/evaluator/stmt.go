package evaluator

import (
	"github.com/cwbudde/go-mjs/internal/ast"
	"github.com/cwbudde/go-mjs/internal/interp/runtime"
	"github.com/cwbudde/go-mjs/internal/object"
)

// execStatement executes stmt and returns its completion (spec.md §4.4):
// Normal to keep going, or an abrupt Break/Continue/Return that the
// caller (an enclosing loop, switch, function body, or try/finally) must
// interpret. A thrown value propagates as a Go error wrapping
// *runtime.Exception rather than as a fourth completion kind.
func (e *Evaluator) execStatement(stmt ast.Statement) (runtime.Completion, error) {
	return e.execLabeled(stmt, nil)
}

// execLabeled is execStatement with the set of labels that currently
// target stmt directly (spec.md §4.3's LabelledStatement production);
// loop and switch statements consult labels to decide whether a
// same-level break/continue belongs to them.
func (e *Evaluator) execLabeled(stmt ast.Statement, labels []string) (runtime.Completion, error) {
	prevPos := e.pushPos(stmt.Pos())
	defer e.popPos(prevPos)

	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		v, err := e.evalExpression(s.Expression)
		if err != nil {
			return runtime.Completion{}, err
		}
		return runtime.Completion{Kind: runtime.Normal, Value: v}, nil
	case *ast.EmptyStatement, *ast.DebuggerStatement, *ast.FunctionDeclaration:
		return runtime.NormalCompletion, nil
	case *ast.VariableDeclaration:
		return e.execVariableDeclaration(s)
	case *ast.BlockStatement:
		return e.execBlock(s)
	case *ast.IfStatement:
		return e.execIf(s)
	case *ast.WhileStatement:
		return e.execWhile(s, labels)
	case *ast.DoWhileStatement:
		return e.execDoWhile(s, labels)
	case *ast.ForStatement:
		return e.execFor(s, labels)
	case *ast.ForInStatement:
		return e.execForIn(s, labels)
	case *ast.BreakStatement:
		return runtime.BreakCompletion(s.Label), nil
	case *ast.ContinueStatement:
		return runtime.ContinueCompletion(s.Label), nil
	case *ast.ReturnStatement:
		v := object.Undefined
		if s.Argument != nil {
			var err error
			v, err = e.evalExpression(s.Argument)
			if err != nil {
				return runtime.Completion{}, err
			}
		}
		return runtime.ReturnCompletion(v), nil
	case *ast.ThrowStatement:
		return e.execThrow(s)
	case *ast.TryStatement:
		return e.execTry(s)
	case *ast.SwitchStatement:
		return e.execSwitch(s, labels)
	case *ast.LabeledStatement:
		return e.execLabeledStatement(s)
	case *ast.WithStatement:
		return e.execWith(s)
	default:
		return runtime.Completion{}, e.Throw("SyntaxError", "unsupported statement")
	}
}

func (e *Evaluator) execVariableDeclaration(s *ast.VariableDeclaration) (runtime.Completion, error) {
	for _, d := range s.Declarations {
		if d.Init == nil {
			continue
		}
		v, err := e.evalExpression(d.Init)
		if err != nil {
			return runtime.Completion{}, err
		}
		if err := e.scope.SetMutableBinding(e, d.Name.Name, v, e.strict); err != nil {
			return runtime.Completion{}, err
		}
	}
	return runtime.NormalCompletion, nil
}

func (e *Evaluator) execBlock(b *ast.BlockStatement) (runtime.Completion, error) {
	result := runtime.NormalCompletion
	for _, stmt := range b.Statements {
		comp, err := e.execStatement(stmt)
		if err != nil {
			return runtime.Completion{}, err
		}
		if !comp.Value.IsUndefined() {
			result.Value = comp.Value
		}
		if comp.IsAbrupt() {
			result.Kind, result.Target = comp.Kind, comp.Target
			return result, nil
		}
	}
	return result, nil
}

func (e *Evaluator) execIf(s *ast.IfStatement) (runtime.Completion, error) {
	test, err := e.evalExpression(s.Test)
	if err != nil {
		return runtime.Completion{}, err
	}
	if e.ToBoolean(test) {
		return e.execStatement(s.Consequent)
	}
	if s.Alternate != nil {
		return e.execStatement(s.Alternate)
	}
	return runtime.NormalCompletion, nil
}

// labelMatches reports whether target (a break/continue's label, "" for
// unlabeled) is satisfied by the label set directly attached to the
// enclosing loop/switch.
func labelMatches(target string, labels []string) bool {
	if target == "" {
		return true
	}
	for _, l := range labels {
		if l == target {
			return true
		}
	}
	return false
}

func (e *Evaluator) execWhile(s *ast.WhileStatement, labels []string) (runtime.Completion, error) {
	result := runtime.NormalCompletion
	for {
		test, err := e.evalExpression(s.Test)
		if err != nil {
			return runtime.Completion{}, err
		}
		if !e.ToBoolean(test) {
			return result, nil
		}
		comp, err := e.execStatement(s.Body)
		if err != nil {
			return runtime.Completion{}, err
		}
		if !comp.Value.IsUndefined() {
			result.Value = comp.Value
		}
		switch comp.Kind {
		case runtime.Break:
			if labelMatches(comp.Target, labels) {
				return result, nil
			}
			return comp, nil
		case runtime.Continue:
			if labelMatches(comp.Target, labels) {
				continue
			}
			return comp, nil
		case runtime.Return:
			return comp, nil
		}
	}
}

func (e *Evaluator) execDoWhile(s *ast.DoWhileStatement, labels []string) (runtime.Completion, error) {
	result := runtime.NormalCompletion
	for {
		comp, err := e.execStatement(s.Body)
		if err != nil {
			return runtime.Completion{}, err
		}
		if !comp.Value.IsUndefined() {
			result.Value = comp.Value
		}
		switch comp.Kind {
		case runtime.Break:
			if labelMatches(comp.Target, labels) {
				return result, nil
			}
			return comp, nil
		case runtime.Continue:
			if !labelMatches(comp.Target, labels) {
				return comp, nil
			}
		case runtime.Return:
			return comp, nil
		}
		test, err := e.evalExpression(s.Test)
		if err != nil {
			return runtime.Completion{}, err
		}
		if !e.ToBoolean(test) {
			return result, nil
		}
	}
}

func (e *Evaluator) execFor(s *ast.ForStatement, labels []string) (runtime.Completion, error) {
	switch init := s.Init.(type) {
	case *ast.VariableDeclaration:
		if _, err := e.execVariableDeclaration(init); err != nil {
			return runtime.Completion{}, err
		}
	case ast.Expression:
		if _, err := e.evalExpression(init); err != nil {
			return runtime.Completion{}, err
		}
	}

	result := runtime.NormalCompletion
	for {
		if s.Test != nil {
			test, err := e.evalExpression(s.Test)
			if err != nil {
				return runtime.Completion{}, err
			}
			if !e.ToBoolean(test) {
				return result, nil
			}
		}
		comp, err := e.execStatement(s.Body)
		if err != nil {
			return runtime.Completion{}, err
		}
		if !comp.Value.IsUndefined() {
			result.Value = comp.Value
		}
		switch comp.Kind {
		case runtime.Break:
			if labelMatches(comp.Target, labels) {
				return result, nil
			}
			return comp, nil
		case runtime.Continue:
			if !labelMatches(comp.Target, labels) {
				return comp, nil
			}
		case runtime.Return:
			return comp, nil
		}
		if s.Update != nil {
			if _, err := e.evalExpression(s.Update); err != nil {
				return runtime.Completion{}, err
			}
		}
	}
}

// execForIn implements spec.md §4.4's `for (x in obj)`: skip entirely
// when obj is null/undefined (ES5 relaxation), otherwise enumerate own
// and inherited enumerable string keys in insertion order, assigning each
// to the loop variable before running the body.
func (e *Evaluator) execForIn(s *ast.ForInStatement, labels []string) (runtime.Completion, error) {
	rightVal, err := e.evalExpression(s.Right)
	if err != nil {
		return runtime.Completion{}, err
	}
	if rightVal.IsNullOrUndefined() {
		return runtime.NormalCompletion, nil
	}
	obj, err := e.ToObject(rightVal)
	if err != nil {
		return runtime.Completion{}, err
	}
	keys := object.EnumerateKeys(e.heap, obj.Pos())

	assign := func(key string) error {
		v := object.NewGoString(e.heap, key)
		switch left := s.Left.(type) {
		case *ast.VariableDeclaration:
			return e.scope.SetMutableBinding(e, left.Declarations[0].Name.Name, v, e.strict)
		case ast.Expression:
			ref, err := e.evalReference(left)
			if err != nil {
				return err
			}
			return e.putValue(ref, v)
		}
		return nil
	}

	result := runtime.NormalCompletion
	for _, key := range keys {
		if !object.HasProperty(e.heap, obj.Pos(), key) {
			continue // deleted by a previous iteration's body
		}
		if err := assign(key); err != nil {
			return runtime.Completion{}, err
		}
		comp, err := e.execStatement(s.Body)
		if err != nil {
			return runtime.Completion{}, err
		}
		if !comp.Value.IsUndefined() {
			result.Value = comp.Value
		}
		switch comp.Kind {
		case runtime.Break:
			if labelMatches(comp.Target, labels) {
				return result, nil
			}
			return comp, nil
		case runtime.Continue:
			if !labelMatches(comp.Target, labels) {
				return comp, nil
			}
		case runtime.Return:
			return comp, nil
		}
	}
	return result, nil
}

func (e *Evaluator) execThrow(s *ast.ThrowStatement) (runtime.Completion, error) {
	v, err := e.evalExpression(s.Argument)
	if err != nil {
		return runtime.Completion{}, err
	}
	display, _ := e.ToString(v)
	return runtime.Completion{}, runtime.NewException(v, e.curPos, e.callStack.Snapshot(), display)
}

// execTry implements spec.md §4.4's try/catch/finally: the finally
// block's own abrupt completion (if any) overrides whatever completion or
// thrown error was in flight.
func (e *Evaluator) execTry(s *ast.TryStatement) (runtime.Completion, error) {
	comp, err := e.execBlock(s.Block)

	if err != nil && s.Handler != nil {
		if exc, ok := err.(*runtime.Exception); ok {
			catchScope := runtime.NewDeclarativeScope(e.scope)
			catchScope.DeclareCatchParameter(s.Handler.Param.Name, exc.Value)
			prevScope := e.pushScope(catchScope)
			comp, err = e.execBlock(s.Handler.Body)
			e.popScope(prevScope)
		}
	}

	if s.Finalizer != nil {
		finComp, finErr := e.execBlock(s.Finalizer)
		if finErr != nil {
			return runtime.Completion{}, finErr
		}
		if finComp.IsAbrupt() {
			return finComp, nil
		}
	}

	return comp, err
}

// execSwitch implements spec.md §4.4's switch: cases are matched with
// strict equality in source order, falling through the first match (and
// any following cases) until a break or the end of the list; if no case
// matches, the default clause (if any) runs from its own position,
// falling through the cases that follow it.
func (e *Evaluator) execSwitch(s *ast.SwitchStatement, labels []string) (runtime.Completion, error) {
	disc, err := e.evalExpression(s.Discriminant)
	if err != nil {
		return runtime.Completion{}, err
	}

	matchIdx := -1
	defaultIdx := -1
	for i, c := range s.Cases {
		if c.Test == nil {
			defaultIdx = i
			continue
		}
		testVal, err := e.evalExpression(c.Test)
		if err != nil {
			return runtime.Completion{}, err
		}
		if e.strictEquals(disc, testVal) {
			matchIdx = i
			break
		}
	}
	if matchIdx < 0 {
		matchIdx = defaultIdx
	}
	if matchIdx < 0 {
		return runtime.NormalCompletion, nil
	}

	result := runtime.NormalCompletion
	for _, c := range s.Cases[matchIdx:] {
		for _, stmt := range c.Consequent {
			comp, err := e.execStatement(stmt)
			if err != nil {
				return runtime.Completion{}, err
			}
			if !comp.Value.IsUndefined() {
				result.Value = comp.Value
			}
			if comp.Kind == runtime.Break && labelMatches(comp.Target, labels) {
				return result, nil
			}
			if comp.IsAbrupt() {
				return comp, nil
			}
		}
	}
	return result, nil
}

func (e *Evaluator) execLabeledStatement(s *ast.LabeledStatement) (runtime.Completion, error) {
	labels := []string{s.Label}
	body := s.Body
	for {
		inner, ok := body.(*ast.LabeledStatement)
		if !ok {
			break
		}
		labels = append(labels, inner.Label)
		body = inner.Body
	}
	comp, err := e.execLabeled(body, labels)
	if err != nil {
		return runtime.Completion{}, err
	}
	if comp.Kind == runtime.Break && labelMatches(comp.Target, labels) {
		return runtime.Completion{Kind: runtime.Normal, Value: comp.Value}, nil
	}
	return comp, nil
}

// execWith pushes the evaluated expression as an object environment
// record (spec.md §4.4); the parser rejects `with` entirely in strict
// mode, so e.strict is never true here.
func (e *Evaluator) execWith(s *ast.WithStatement) (runtime.Completion, error) {
	v, err := e.evalExpression(s.Object)
	if err != nil {
		return runtime.Completion{}, err
	}
	obj, err := e.ToObject(v)
	if err != nil {
		return runtime.Completion{}, err
	}
	withScope := runtime.NewWithScope(e.scope, obj.Pos())
	prevScope := e.pushScope(withScope)
	defer e.popScope(prevScope)
	return e.execStatement(s.Body)
}
