// Command csrfd runs a demo application protected by signed CSRF tokens and
// mints or checks tokens from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/JeanGrijp/go-csrf/v2/internal/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
