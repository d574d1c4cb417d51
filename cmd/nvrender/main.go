// Command nvrender evaluates scene scripts and renders them to SVG without
// a window.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
