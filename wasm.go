//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/cottand/streamql/cmd"
)

func main() {
	js.Global().Set("LowerStatements", js.FuncOf(lowerStatements))
	js.Global().Set("CheckStatements", js.FuncOf(checkStatements))

	// wait indefinitely so that Go does not terminate execution
	// and the functions remain available
	<-make(chan struct{})
}

// lowerStatements takes a YAML statement document and returns the lowered SQL
func lowerStatements(_ js.Value, args []js.Value) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			ret = "lowering panicked: " + fmt.Sprint(r)
		}
	}()

	sql, err := cmd.LowerDocument(args[0].String())
	if err != nil {
		return fmt.Sprintf("the document has the following errors:\n%s", err)
	}
	return sql
}

// checkStatements lists the kind of each statement of a YAML statement document,
// and whether it needs struct access lowering
func checkStatements(_ js.Value, args []js.Value) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			ret = "check panicked: " + fmt.Sprint(r)
		}
	}()

	checks, err := cmd.CheckDocument(args[0].String())
	if err != nil {
		return fmt.Sprintf("the document has the following errors:\n%s", err)
	}
	return checks
}
