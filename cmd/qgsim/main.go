// Command qgsim simulates small quantum circuits by layering their gates.
package main

import (
	"fmt"
	"os"

	"github.com/kshitijdave/QuantumGateSim/internal/cli"
)

func main() {
	err := cli.Execute()
	if err != nil && !cli.IsReported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}
