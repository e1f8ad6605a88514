package main

import (
	"github.com/inference-directory/infdir/cmd"
	"github.com/inference-directory/infdir/internal/logging"
)

func main() {
	defer logging.RecoverPanic("main", func() {
		logging.Error("Application terminated due to unhandled panic")
	})

	cmd.Execute()
}
