package evaluator

import "github.com/cwbudde/go-mjs/internal/builtins"

// bootstrap wires every intrinsic prototype, constructor and global
// function onto e before the global scope is created, so identifier
// resolution in the first user statement already sees a complete global
// object (spec.md §4.5's builtins-hosting contract).
func bootstrap(e *Evaluator) {
	builtins.Bootstrap(e)
}
