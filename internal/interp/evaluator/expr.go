package evaluator

import (
	"math"

	"github.com/cwbudde/go-mjs/internal/ast"
	"github.com/cwbudde/go-mjs/internal/heap"
	"github.com/cwbudde/go-mjs/internal/interp/runtime"
	"github.com/cwbudde/go-mjs/internal/object"
)

// reference is the evaluator's internal analogue of spec.md §3.1's
// "reference" kind: the transient result of evaluating an identifier or a
// member expression, resolved to a value via getValue/putValue. Unlike
// object.Value's Reference payload (base is always a heap object), an
// identifier reference's base may be a lexical scope rather than a heap
// object - this package's Scope chain (§3.8) stores declarative bindings
// in a Go map, not a heap activation object, so the two reference shapes
// need different resolution paths.
type reference struct {
	scope *runtime.Scope // non-nil for an identifier reference
	base  object.Value   // valid for a property reference (scope == nil)
	name  string
	// unresolvedIdentifier is true when a bare identifier did not resolve
	// in any scope; getValue reports ReferenceError, but typeof and delete
	// tolerate it.
	unresolvedIdentifier bool
}

func identRef(scope *runtime.Scope, name string, found bool) reference {
	return reference{scope: scope, name: name, unresolvedIdentifier: !found}
}

func propRef(base object.Value, name string) reference {
	return reference{base: base, name: name}
}

// getValue implements spec.md §4.4 rule 1: resolve a reference to its
// value, raising ReferenceError for an unresolvable identifier.
func (e *Evaluator) getValue(r reference) (object.Value, error) {
	if r.scope != nil {
		if r.unresolvedIdentifier {
			return object.Undefined, e.Throw("ReferenceError", r.name+" is not defined")
		}
		v, _, err := r.scope.GetBindingValue(e, r.name)
		return v, err
	}
	obj, err := e.ToObject(r.base)
	if err != nil {
		return object.Undefined, err
	}
	return object.GetProperty(e, obj.Pos(), r.name)
}

// putValue implements spec.md §4.4 rule 2.
func (e *Evaluator) putValue(r reference, val object.Value) error {
	if r.scope != nil {
		return r.scope.SetMutableBinding(e, r.name, val, e.strict)
	}
	obj, err := e.ToObject(r.base)
	if err != nil {
		return err
	}
	return object.PutProperty(e, obj.Pos(), r.name, val, e.strict)
}

// evalReference evaluates expr as an assignable reference (identifier or
// member expression); any other expression kind is evaluated for its value
// and wrapped as a property reference with an empty name on that value.
func (e *Evaluator) evalReference(expr ast.Expression) (reference, error) {
	switch x := expr.(type) {
	case *ast.Identifier:
		_, found, err := e.scope.GetBindingValue(e, x.Name)
		if err != nil {
			return reference{}, err
		}
		return identRef(e.scope, x.Name, found), nil
	case *ast.MemberExpression:
		baseVal, err := e.evalExpression(x.Object)
		if err != nil {
			return reference{}, err
		}
		name, err := e.memberName(x)
		if err != nil {
			return reference{}, err
		}
		return propRef(baseVal, name), nil
	default:
		v, err := e.evalExpression(expr)
		if err != nil {
			return reference{}, err
		}
		return propRef(v, ""), nil
	}
}

func (e *Evaluator) memberName(m *ast.MemberExpression) (string, error) {
	if !m.Computed {
		return m.Property.(*ast.Identifier).Name, nil
	}
	key, err := e.evalExpression(m.Property)
	if err != nil {
		return "", err
	}
	return e.ToString(key)
}

// evalExpression evaluates expr and fully resolves it (GetValue already
// applied), suitable for any context that wants a plain value rather than
// a reference.
func (e *Evaluator) evalExpression(expr ast.Expression) (object.Value, error) {
	switch x := expr.(type) {
	case *ast.Identifier:
		v, found, err := e.scope.GetBindingValue(e, x.Name)
		if err != nil {
			return object.Undefined, err
		}
		if !found {
			return object.Undefined, e.Throw("ReferenceError", x.Name+" is not defined")
		}
		return v, nil
	case *ast.NumberLiteral:
		return object.Number(x.Value), nil
	case *ast.StringLiteral:
		if x.OctalEscape && e.strict {
			return object.Undefined, e.Throw("SyntaxError", "octal escape sequences are not allowed in strict mode")
		}
		return object.NewGoString(e.heap, x.Value), nil
	case *ast.BooleanLiteral:
		return object.Bool(x.Value), nil
	case *ast.NullLiteral:
		return object.Null, nil
	case *ast.ThisExpression:
		return e.scope.ThisValue(), nil
	case *ast.RegexLiteral:
		return e.newRegexLiteral(x)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(x)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(x)
	case *ast.FunctionLiteral:
		return e.makeFunction(x, e.scope, true)
	case *ast.UnaryExpression:
		return e.evalUnary(x)
	case *ast.UpdateExpression:
		return e.evalUpdate(x)
	case *ast.BinaryExpression:
		return e.evalBinary(x)
	case *ast.LogicalExpression:
		return e.evalLogical(x)
	case *ast.ConditionalExpression:
		return e.evalConditional(x)
	case *ast.AssignmentExpression:
		return e.evalAssignment(x)
	case *ast.SequenceExpression:
		return e.evalSequence(x)
	case *ast.MemberExpression:
		ref, err := e.evalReference(x)
		if err != nil {
			return object.Undefined, err
		}
		return e.getValue(ref)
	case *ast.CallExpression:
		return e.evalCall(x)
	case *ast.NewExpression:
		return e.evalNew(x)
	default:
		return object.Undefined, e.Throw("SyntaxError", "unsupported expression")
	}
}

// newRegexLiteral constructs a RegExp instance via the global RegExp
// constructor, treated as an out-of-scope collaborator per spec.md §1: if
// the host never registered one, the literal degrades to a plain object
// carrying source/flags so evaluation can still proceed.
func (e *Evaluator) newRegexLiteral(r *ast.RegexLiteral) (object.Value, error) {
	ctor, err := object.GetProperty(e, e.Global(), "RegExp")
	if err == nil && ctor.IsObject() && object.Get(e.heap, ctor.Pos()).Call != nil {
		return object.ConstructValue(e, ctor,
			[]object.Value{object.NewGoString(e.heap, r.Body), object.NewGoString(e.heap, r.Flags)})
	}
	pos := object.New(e.heap, "RegExp", e.ObjectPrototype())
	obj := object.Get(e.heap, pos)
	obj.DefineOwnProperty("source", object.NewGoString(e.heap, r.Body).ToRepresentation(), object.DontEnum)
	obj.DefineOwnProperty("flags", object.NewGoString(e.heap, r.Flags).ToRepresentation(), object.DontEnum)
	return object.ObjectAt(pos), nil
}

func (e *Evaluator) evalArrayLiteral(lit *ast.ArrayLiteral) (object.Value, error) {
	pos := object.NewArray(e.heap, e.Prototype("Array"))
	arrObj := object.Get(e.heap, pos)
	length := uint32(0)
	for i, elem := range lit.Elements {
		length = uint32(i + 1)
		if elem == nil {
			continue // elision: index left absent, per spec.md §3.5
		}
		v, err := e.evalExpression(elem)
		if err != nil {
			return object.Undefined, err
		}
		arrObj.ArrayPut(e.heap, itoaPublic(i), v)
	}
	if length > arrObj.Array.Length {
		arrObj.Array.Length = length
	}
	return object.ObjectAt(pos), nil
}

func itoaPublic(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [10]byte
	p := len(buf)
	for i > 0 {
		p--
		buf[p] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[p:])
}

func (e *Evaluator) evalObjectLiteral(lit *ast.ObjectLiteral) (object.Value, error) {
	pos := object.New(e.heap, "Object", e.Prototype("Object"))
	obj := object.Get(e.heap, pos)
	for _, prop := range lit.Properties {
		key, err := e.propertyKeyString(prop.Key)
		if err != nil {
			return object.Undefined, err
		}
		switch prop.Kind {
		case ast.PropertyInit:
			v, err := e.evalExpression(prop.Value)
			if err != nil {
				return object.Undefined, err
			}
			obj.DefineOwnProperty(key, v.ToRepresentation(), 0) // enumerable, writable, configurable
		case ast.PropertyGet, ast.PropertySet:
			fnVal, err := e.makeFunction(prop.Value.(*ast.FunctionLiteral), e.scope, true)
			if err != nil {
				return object.Undefined, err
			}
			e.mergeAccessor(obj, key, prop.Kind, fnVal)
		}
	}
	return object.ObjectAt(pos), nil
}

// mergeAccessor installs get/set onto an existing accessor pair for key if
// one is already present (ES5 §11.1.5's "both a getter and setter with
// the same name" merge), or creates a fresh one otherwise.
func (e *Evaluator) mergeAccessor(obj *object.Object, key string, kind ast.PropertyKind, fn object.Value) {
	get, set := object.Undefined, object.Undefined
	if kind == ast.PropertyGet {
		get = fn
	} else {
		set = fn
	}
	for i := range obj.Props {
		if obj.Props[i].Key == key && obj.Props[i].Attributes.Has(object.Accessor) {
			existingGet, existingSet := object.ExistingAccessor(e.heap, obj.Props[i].Value)
			if kind == ast.PropertyGet {
				set = existingSet
			} else {
				get = existingGet
			}
			break
		}
	}
	acc := object.NewAccessor(e.heap, get, set)
	obj.DefineOwnProperty(key, acc, object.Accessor)
}

func (e *Evaluator) propertyKeyString(key ast.Expression) (string, error) {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name, nil
	case *ast.StringLiteral:
		return k.Value, nil
	case *ast.NumberLiteral:
		return numberToString(k.Value), nil
	default:
		v, err := e.evalExpression(key)
		if err != nil {
			return "", err
		}
		return e.ToString(v)
	}
}

func (e *Evaluator) evalUnary(u *ast.UnaryExpression) (object.Value, error) {
	if u.Operator == "delete" {
		return e.evalDelete(u.Operand)
	}
	if u.Operator == "typeof" {
		return e.evalTypeof(u.Operand)
	}
	if u.Operator == "void" {
		_, err := e.evalExpression(u.Operand)
		if err != nil {
			return object.Undefined, err
		}
		return object.Undefined, nil
	}
	v, err := e.evalExpression(u.Operand)
	if err != nil {
		return object.Undefined, err
	}
	switch u.Operator {
	case "-":
		n, err := e.ToNumber(v)
		if err != nil {
			return object.Undefined, err
		}
		return object.Number(-n), nil
	case "+":
		n, err := e.ToNumber(v)
		if err != nil {
			return object.Undefined, err
		}
		return object.Number(n), nil
	case "~":
		n, err := e.ToInt32(v)
		if err != nil {
			return object.Undefined, err
		}
		return object.Number(float64(^n)), nil
	case "!":
		return object.Bool(!e.ToBoolean(v)), nil
	default:
		return object.Undefined, e.Throw("SyntaxError", "unsupported unary operator "+u.Operator)
	}
}

func (e *Evaluator) evalDelete(operand ast.Expression) (object.Value, error) {
	switch x := operand.(type) {
	case *ast.Identifier:
		if e.strict {
			return object.Undefined, e.Throw("SyntaxError", "delete of an unqualified identifier is not allowed in strict mode")
		}
		ok, err := e.deleteIdentifier(x.Name)
		return object.Bool(ok), err
	case *ast.MemberExpression:
		baseVal, err := e.evalExpression(x.Object)
		if err != nil {
			return object.Undefined, err
		}
		name, err := e.memberName(x)
		if err != nil {
			return object.Undefined, err
		}
		obj, err := e.ToObject(baseVal)
		if err != nil {
			return object.Undefined, err
		}
		ok, err := object.DeleteProperty(e, obj.Pos(), name, e.strict)
		return object.Bool(ok), err
	default:
		// delete of a non-reference evaluates the operand for its side
		// effects and returns true (ES5 §11.4.1 step 2).
		if _, err := e.evalExpression(operand); err != nil {
			return object.Undefined, err
		}
		return object.True, nil
	}
}

// deleteIdentifier walks the scope chain for name and deletes it from the
// scope it is bound in (ES5 §10.2.1's [[DeleteBinding]] dispatches to the
// environment record that actually holds the binding, not necessarily the
// innermost one).
func (e *Evaluator) deleteIdentifier(name string) (bool, error) {
	for sc := e.scope; sc != nil; sc = sc.Outer() {
		if sc.HasOwnBinding(e, name) {
			return sc.DeleteBinding(e, name)
		}
	}
	return true, nil
}

func (e *Evaluator) evalTypeof(operand ast.Expression) (object.Value, error) {
	if id, ok := operand.(*ast.Identifier); ok {
		v, found, err := e.scope.GetBindingValue(e, id.Name)
		if err != nil {
			return object.Undefined, err
		}
		if !found {
			return object.NewGoString(e.heap, "undefined"), nil
		}
		return object.NewGoString(e.heap, e.typeOf(v)), nil
	}
	v, err := e.evalExpression(operand)
	if err != nil {
		return object.Undefined, err
	}
	return object.NewGoString(e.heap, e.typeOf(v)), nil
}

func (e *Evaluator) evalUpdate(u *ast.UpdateExpression) (object.Value, error) {
	ref, err := e.evalReference(u.Operand)
	if err != nil {
		return object.Undefined, err
	}
	old, err := e.getValue(ref)
	if err != nil {
		return object.Undefined, err
	}
	oldNum, err := e.ToNumber(old)
	if err != nil {
		return object.Undefined, err
	}
	var newNum float64
	if u.Operator == "++" {
		newNum = oldNum + 1
	} else {
		newNum = oldNum - 1
	}
	if err := e.putValue(ref, object.Number(newNum)); err != nil {
		return object.Undefined, err
	}
	if u.Prefix {
		return object.Number(newNum), nil
	}
	return object.Number(oldNum), nil
}

func (e *Evaluator) evalBinary(b *ast.BinaryExpression) (object.Value, error) {
	if b.Operator == "in" {
		return e.evalIn(b)
	}
	if b.Operator == "instanceof" {
		left, err := e.evalExpression(b.Left)
		if err != nil {
			return object.Undefined, err
		}
		right, err := e.evalExpression(b.Right)
		if err != nil {
			return object.Undefined, err
		}
		ok, err := e.instanceOf(left, right)
		return object.Bool(ok), err
	}
	left, err := e.evalExpression(b.Left)
	if err != nil {
		return object.Undefined, err
	}
	right, err := e.evalExpression(b.Right)
	if err != nil {
		return object.Undefined, err
	}
	return e.applyBinary(b.Operator, left, right)
}

func (e *Evaluator) evalIn(b *ast.BinaryExpression) (object.Value, error) {
	left, err := e.evalExpression(b.Left)
	if err != nil {
		return object.Undefined, err
	}
	right, err := e.evalExpression(b.Right)
	if err != nil {
		return object.Undefined, err
	}
	if !right.IsObject() {
		return object.Undefined, e.Throw("TypeError", "cannot use 'in' operator on a non-object")
	}
	name, err := e.ToString(left)
	if err != nil {
		return object.Undefined, err
	}
	return object.Bool(object.HasProperty(e.heap, right.Pos(), name)), nil
}

// applyBinary implements the ES5 §11.5-11.11 arithmetic/relational/
// bitwise/equality operator semantics given two already-evaluated values.
func (e *Evaluator) applyBinary(op string, left, right object.Value) (object.Value, error) {
	switch op {
	case "+":
		lp, err := e.ToPrimitive(left, "")
		if err != nil {
			return object.Undefined, err
		}
		rp, err := e.ToPrimitive(right, "")
		if err != nil {
			return object.Undefined, err
		}
		if lp.IsString() || rp.IsString() {
			ls, err := e.ToString(lp)
			if err != nil {
				return object.Undefined, err
			}
			rs, err := e.ToString(rp)
			if err != nil {
				return object.Undefined, err
			}
			return object.NewGoString(e.heap, ls+rs), nil
		}
		ln, err := e.ToNumber(lp)
		if err != nil {
			return object.Undefined, err
		}
		rn, err := e.ToNumber(rp)
		if err != nil {
			return object.Undefined, err
		}
		return object.Number(ln + rn), nil
	case "-", "*", "/", "%":
		ln, err := e.ToNumber(left)
		if err != nil {
			return object.Undefined, err
		}
		rn, err := e.ToNumber(right)
		if err != nil {
			return object.Undefined, err
		}
		switch op {
		case "-":
			return object.Number(ln - rn), nil
		case "*":
			return object.Number(ln * rn), nil
		case "/":
			return object.Number(ln / rn), nil
		default:
			return object.Number(math.Mod(ln, rn)), nil
		}
	case "<", ">", "<=", ">=":
		return e.relational(op, left, right)
	case "==":
		eq, err := e.abstractEquals(left, right)
		return object.Bool(eq), err
	case "!=":
		eq, err := e.abstractEquals(left, right)
		return object.Bool(!eq), err
	case "===":
		return object.Bool(e.strictEquals(left, right)), nil
	case "!==":
		return object.Bool(!e.strictEquals(left, right)), nil
	case "&", "|", "^", "<<", ">>", ">>>":
		return e.bitwise(op, left, right)
	default:
		return object.Undefined, e.Throw("SyntaxError", "unsupported binary operator "+op)
	}
}

// relational implements ES5 §11.8.5's abstract relational comparison,
// which prefers numeric comparison but falls back to code-unit string
// comparison when both operands are strings.
func (e *Evaluator) relational(op string, left, right object.Value) (object.Value, error) {
	lp, err := e.ToPrimitive(left, "number")
	if err != nil {
		return object.Undefined, err
	}
	rp, err := e.ToPrimitive(right, "number")
	if err != nil {
		return object.Undefined, err
	}
	if lp.IsString() && rp.IsString() {
		ls := object.GoString(e.heap, lp)
		rs := object.GoString(e.heap, rp)
		var result bool
		switch op {
		case "<":
			result = ls < rs
		case ">":
			result = ls > rs
		case "<=":
			result = ls <= rs
		default:
			result = ls >= rs
		}
		return object.Bool(result), nil
	}
	ln, err := e.ToNumber(lp)
	if err != nil {
		return object.Undefined, err
	}
	rn, err := e.ToNumber(rp)
	if err != nil {
		return object.Undefined, err
	}
	if math.IsNaN(ln) || math.IsNaN(rn) {
		return object.False, nil
	}
	var result bool
	switch op {
	case "<":
		result = ln < rn
	case ">":
		result = ln > rn
	case "<=":
		result = ln <= rn
	default:
		result = ln >= rn
	}
	return object.Bool(result), nil
}

func (e *Evaluator) bitwise(op string, left, right object.Value) (object.Value, error) {
	if op == "<<" || op == ">>" || op == ">>>" {
		l, err := e.ToInt32(left)
		if err != nil {
			return object.Undefined, err
		}
		shift, err := e.ToUint32(right)
		if err != nil {
			return object.Undefined, err
		}
		shift &= 0x1F
		switch op {
		case "<<":
			return object.Number(float64(l << shift)), nil
		case ">>":
			return object.Number(float64(l >> shift)), nil
		default:
			return object.Number(float64(uint32(l) >> shift)), nil
		}
	}
	l, err := e.ToInt32(left)
	if err != nil {
		return object.Undefined, err
	}
	r, err := e.ToInt32(right)
	if err != nil {
		return object.Undefined, err
	}
	switch op {
	case "&":
		return object.Number(float64(l & r)), nil
	case "|":
		return object.Number(float64(l | r)), nil
	default:
		return object.Number(float64(l ^ r)), nil
	}
}

// evalLogical implements && / || with short-circuit evaluation (ES5
// §11.11): the right operand is never evaluated when the left already
// decides the result.
func (e *Evaluator) evalLogical(l *ast.LogicalExpression) (object.Value, error) {
	left, err := e.evalExpression(l.Left)
	if err != nil {
		return object.Undefined, err
	}
	if l.Operator == "&&" {
		if !e.ToBoolean(left) {
			return left, nil
		}
		return e.evalExpression(l.Right)
	}
	if e.ToBoolean(left) {
		return left, nil
	}
	return e.evalExpression(l.Right)
}

func (e *Evaluator) evalConditional(c *ast.ConditionalExpression) (object.Value, error) {
	test, err := e.evalExpression(c.Test)
	if err != nil {
		return object.Undefined, err
	}
	if e.ToBoolean(test) {
		return e.evalExpression(c.Consequent)
	}
	return e.evalExpression(c.Alternate)
}

func (e *Evaluator) evalSequence(s *ast.SequenceExpression) (object.Value, error) {
	var result object.Value
	for _, expr := range s.Expressions {
		v, err := e.evalExpression(expr)
		if err != nil {
			return object.Undefined, err
		}
		result = v
	}
	return result, nil
}

func (e *Evaluator) evalAssignment(a *ast.AssignmentExpression) (object.Value, error) {
	ref, err := e.evalReference(a.Left)
	if err != nil {
		return object.Undefined, err
	}
	if a.Operator == "=" {
		val, err := e.evalExpression(a.Right)
		if err != nil {
			return object.Undefined, err
		}
		if err := e.putValue(ref, val); err != nil {
			return object.Undefined, err
		}
		return val, nil
	}
	old, err := e.getValue(ref)
	if err != nil {
		return object.Undefined, err
	}
	right, err := e.evalExpression(a.Right)
	if err != nil {
		return object.Undefined, err
	}
	op := a.Operator[:len(a.Operator)-1] // "+=" -> "+"
	val, err := e.applyBinary(op, old, right)
	if err != nil {
		return object.Undefined, err
	}
	if err := e.putValue(ref, val); err != nil {
		return object.Undefined, err
	}
	return val, nil
}

// evalCall implements spec.md §4.4 rule 4: evaluate the member, then the
// arguments, then coerce to callable, passing the member's base object as
// `this` for a member-expression callee (undefined otherwise), and
// detecting direct eval.
func (e *Evaluator) evalCall(c *ast.CallExpression) (object.Value, error) {
	prevPos := e.pushPos(c.Pos())
	defer e.popPos(prevPos)

	var calleeVal, thisVal object.Value
	direct := false
	switch callee := c.Callee.(type) {
	case *ast.MemberExpression:
		baseVal, err := e.evalExpression(callee.Object)
		if err != nil {
			return object.Undefined, err
		}
		name, err := e.memberName(callee)
		if err != nil {
			return object.Undefined, err
		}
		obj, err := e.ToObject(baseVal)
		if err != nil {
			return object.Undefined, err
		}
		calleeVal, err = object.GetProperty(e, obj.Pos(), name)
		if err != nil {
			return object.Undefined, err
		}
		thisVal = baseVal
	case *ast.Identifier:
		v, found, err := e.scope.GetBindingValue(e, callee.Name)
		if err != nil {
			return object.Undefined, err
		}
		if !found {
			return object.Undefined, e.Throw("ReferenceError", callee.Name+" is not defined")
		}
		calleeVal = v
		thisVal = object.Undefined
		if callee.Name == "eval" && v.IsObject() && v.Pos() == e.evalIntrinsicPos() {
			direct = true
		}
	default:
		v, err := e.evalExpression(c.Callee)
		if err != nil {
			return object.Undefined, err
		}
		calleeVal = v
		thisVal = object.Undefined
	}

	args := make([]object.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := e.evalExpression(a)
		if err != nil {
			return object.Undefined, err
		}
		args[i] = v
	}

	if direct {
		a := object.Undefined
		if len(args) > 0 {
			a = args[0]
		}
		if !a.IsString() {
			return a, nil
		}
		src, err := e.ToString(a)
		if err != nil {
			return object.Undefined, err
		}
		return e.EvalSource(src, true)
	}

	return object.CallValue(e, calleeVal, thisVal, args)
}

// evalIntrinsicPos returns the global `eval` function's heap position,
// lazily resolved and cached, used to detect direct-eval call sites.
func (e *Evaluator) evalIntrinsicPos() heap.Pos {
	if e.evalFnPos == 0 {
		if v, err := object.GetProperty(e, e.Global(), "eval"); err == nil && v.IsObject() {
			e.evalFnPos = v.Pos()
		}
	}
	return e.evalFnPos
}

func (e *Evaluator) evalNew(n *ast.NewExpression) (object.Value, error) {
	calleeVal, err := e.evalExpression(n.Callee)
	if err != nil {
		return object.Undefined, err
	}
	args := make([]object.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalExpression(a)
		if err != nil {
			return object.Undefined, err
		}
		args[i] = v
	}
	return object.ConstructValue(e, calleeVal, args)
}
