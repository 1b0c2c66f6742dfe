// The main package for the pcbflags executable.
package main

import (
	"github.com/beachwatch/pcbflags/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
