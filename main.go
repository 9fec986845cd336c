package main

import (
	"fmt"
	"os"

	"github.com/mwhicks1/3c-actions/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the 3c-actions command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
