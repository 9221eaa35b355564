//go:build !(js || wasm)

package main

import (
	"os"

	"github.com/cottand/streamql/cmd"
)

func main() {
	err := cmd.NewRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
