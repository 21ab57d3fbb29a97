// Command vtable browses large tabular datasets in a virtualized terminal table.
package main

import (
	"os"

	"github.com/rshade/vtable/internal/cli"
	"github.com/rshade/vtable/pkg/version"
)

func main() {
	os.Exit(exitCode(run()))
}

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.Execute()
}

// exitCode maps a command error to the process exit status. Cobra has
// already printed the error.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
