package main

import (
	"os"

	"github.com/compozy/tagdeploy/cmd"
	"github.com/compozy/tagdeploy/internal/output"
)

func main() {
	cmd.InitCommands()
	if err := cmd.Execute(); err != nil {
		output.New().Failure(err)
		os.Exit(1)
	}
}
