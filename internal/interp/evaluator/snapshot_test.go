package evaluator

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// snapshotPrograms covers representative corners of the evaluator: numeric
// coercion, prototype lookup, closures, and exception formatting. Each
// program's final completion value, stringified, is checked against a
// stored snapshot rather than a hardcoded literal so a regression shows up
// as a diff instead of a silent pass/fail toggle.
var snapshotPrograms = []struct {
	name string
	src  string
}{
	{
		name: "closure_counter",
		src: `
			function makeCounter() {
				var n = 0;
				return function() { return ++n; };
			}
			var c = makeCounter();
			c(); c(); c();
		`,
	},
	{
		name: "prototype_chain_tostring",
		src: `
			function Animal(name) { this.name = name; }
			Animal.prototype.speak = function() { return this.name + " makes a noise."; };
			function Dog(name) { Animal.call(this, name); }
			Dog.prototype = new Animal("template");
			Dog.prototype.speak = function() { return this.name + " barks."; };
			new Dog("Rex").speak();
		`,
	},
	{
		name: "array_methods",
		src: `
			var a = [5, 3, 1, 4, 2];
			a.sort(function(x, y) { return x - y; });
			a.join(",");
		`,
	},
	{
		name: "exception_message",
		src: `
			function boom() { throw new RangeError("out of range"); }
			try { boom(); } catch (e) { e.toString(); }
		`,
	},
	{
		name: "string_coercion",
		src: `"" + [1, [2, 3], null, undefined] + (1 + "2") + (true + 1);`,
	},
}

func TestEvaluatorSnapshots(t *testing.T) {
	for _, tc := range snapshotPrograms {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			v, e := run(t, tc.src)
			s, err := e.ToString(v)
			if err != nil {
				t.Fatalf("ToString failed: %v", err)
			}
			snaps.MatchSnapshot(t, tc.name, s)
		})
	}
}
