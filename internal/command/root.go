// Package command provides the csrfd command-line interface.
//
// It uses urfave/cli/v2 and exposes three commands: serve runs the demo
// application, sign mints a token offline and verify checks one.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "csrfd",
		Usage:   "Signed, stateless CSRF tokens",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		Commands: []*cli.Command{
			ServeCommand(),
			SignCommand(),
			VerifyCommand(),
		},
	}
}

// signingFlags are shared by sign and verify.
func signingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "secret",
			Usage:    "Shared signing secret",
			EnvVars:  []string{"CSRFD_CSRF_SECRET"},
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:     "identity",
			Aliases:  []string{"i"},
			Usage:    "Identity component, repeat for composite identities",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "algorithm",
			Usage: "Digest algorithm (ripemd160, sha256, sha3-256, blake2b-256, ...)",
			Value: "sha256",
		},
	}
}
