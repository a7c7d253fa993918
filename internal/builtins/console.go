package builtins

import (
	"fmt"

	"github.com/cwbudde/go-mjs/internal/object"
)

func registerConsole(host Host) {
	h := host.Heap()
	consoleObj := object.New(h, "console", host.Prototype("Object"))

	logTo := func(name string) {
		PutNativeFunction(host, consoleObj, name, 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
			return object.Undefined, writeLine(host, args)
		})
	}
	logTo("log")
	logTo("info")
	logTo("warn")
	logTo("error")
	logTo("debug")

	object.Get(h, host.Global()).DefineOwnProperty("console", object.ObjectAt(consoleObj).ToRepresentation(), object.DontEnum)

	PutNativeFunction(host, host.Global(), "print", 0, func(rt object.Runtime, this object.Value, args []object.Value) (object.Value, error) {
		return object.Undefined, writeLine(host, args)
	})
}

func writeLine(host Host, args []object.Value) error {
	parts := make([]string, len(args))
	for i, a := range args {
		s, err := host.ToStringHost(a)
		if err != nil {
			return err
		}
		parts[i] = s
	}
	line := ""
	for i, p := range parts {
		if i > 0 {
			line += " "
		}
		line += p
	}
	_, err := fmt.Fprintln(host.Output(), line)
	return err
}
