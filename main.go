package main

import (
	"fmt"
	"os"

	"github.com/temirov/stamp/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the stamp command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
