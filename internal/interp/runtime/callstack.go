package runtime

import (
	"fmt"

	"github.com/cwbudde/go-mjs/internal/errors"
	"github.com/cwbudde/go-mjs/internal/lexer"
)

// CallStack tracks the function call stack during evaluation, providing
// stack-overflow detection (spec.md §4.4's RangeError on unbounded
// recursion) and the trace attached to thrown exceptions.
type CallStack struct {
	frames   errors.StackTrace
	maxDepth int
}

// NewCallStack creates a call stack with the given maximum depth (0 or
// negative selects a default of 1024).
func NewCallStack(maxDepth int) *CallStack {
	if maxDepth <= 0 {
		maxDepth = 1024
	}
	return &CallStack{frames: errors.NewStackTrace(), maxDepth: maxDepth}
}

// Push adds a new frame, reporting an error instead when doing so would
// exceed the configured maximum depth.
func (cs *CallStack) Push(functionName string, sourceFile string, pos lexer.Position) error {
	if len(cs.frames) >= cs.maxDepth {
		return fmt.Errorf("stack overflow: maximum call depth (%d) exceeded in function %q", cs.maxDepth, functionName)
	}
	cs.frames = append(cs.frames, errors.NewStackFrame(functionName, sourceFile, &pos))
	return nil
}

// Pop removes the most recent frame; a no-op on an empty stack.
func (cs *CallStack) Pop() {
	if len(cs.frames) > 0 {
		cs.frames = cs.frames[:len(cs.frames)-1]
	}
}

// Depth returns the current number of frames.
func (cs *CallStack) Depth() int { return len(cs.frames) }

// Snapshot returns a copy of all frames, oldest first, suitable for
// attaching to a thrown Exception.
func (cs *CallStack) Snapshot() errors.StackTrace {
	frames := make(errors.StackTrace, len(cs.frames))
	copy(frames, cs.frames)
	return frames
}

// String renders the stack, most recent call first.
func (cs *CallStack) String() string { return cs.frames.String() }
