package runtime

import (
	"fmt"

	intErrors "github.com/cwbudde/go-mjs/internal/errors"
	"github.com/cwbudde/go-mjs/internal/lexer"
	"github.com/cwbudde/go-mjs/internal/object"
)

// Exception is the Go error wrapper for a thrown script value (spec.md
// §4.4's ThrowCompletion): the live Value that was thrown, the position it
// was thrown from, and the call stack captured at that point, in the
// teacher's ExceptionValue/StackTrace style adapted to this package's
// single dynamic Value kind instead of a class/instance pair.
type Exception struct {
	Value     object.Value
	Pos       lexer.Position
	CallStack intErrors.StackTrace
	// Display is a best-effort, pre-rendered message for contexts (Go
	// error formatting, panics translated back to exceptions) that cannot
	// call back into the heap to stringify Value; the evaluator's own
	// error reporting should prefer reading Value's own "message"/toString
	// instead of this field when a heap is available.
	Display string
}

func (e *Exception) Error() string {
	if e.Display != "" {
		return e.Display
	}
	return fmt.Sprintf("uncaught exception at %d:%d", e.Pos.Line, e.Pos.Column)
}

// NewException wraps val as a thrown exception, capturing pos and the
// current call stack.
func NewException(val object.Value, pos lexer.Position, stack intErrors.StackTrace, display string) *Exception {
	return &Exception{Value: val, Pos: pos, CallStack: stack, Display: display}
}
