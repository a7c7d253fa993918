package runtime

import "github.com/cwbudde/go-mjs/internal/object"

// CompletionKind is the abrupt-completion type of spec.md §4.4 / ES5 §8.9,
// minus Throw: a thrown value instead propagates as a Go error wrapping an
// *Exception, so every statement-evaluation function's signature is
// (Completion, error) rather than threading a fourth completion kind
// through every normal-path check.
type CompletionKind uint8

const (
	Normal CompletionKind = iota
	Break
	Continue
	Return
)

// Completion is the result of evaluating a statement: either "keep going"
// (Normal) or a non-local transfer of control to an enclosing loop/switch
// (Break/Continue, optionally Target-labeled) or function call (Return,
// carrying Value).
type Completion struct {
	Kind   CompletionKind
	Value  object.Value
	Target string // label for Break/Continue; "" means the nearest enclosing construct
}

// NormalCompletion is the zero-value "statement ran, keep going" result.
var NormalCompletion = Completion{Kind: Normal}

func BreakCompletion(label string) Completion    { return Completion{Kind: Break, Target: label} }
func ContinueCompletion(label string) Completion  { return Completion{Kind: Continue, Target: label} }
func ReturnCompletion(v object.Value) Completion  { return Completion{Kind: Return, Value: v} }

// IsAbrupt reports whether c is anything other than Normal.
func (c Completion) IsAbrupt() bool { return c.Kind != Normal }
