package main

import (
	"errors"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/viant/mcpx/cmd/mcpx-files/runner"
)

func main() {
	if err := runner.Run(os.Args[1:], os.Stdout); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		log.Fatal(err)
	}
}
