package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version information, set at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func newApp() *cli.App {
	return &cli.App{
		Name:    "speck",
		Usage:   "SPECK block cipher toolkit",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Commands: []*cli.Command{
			variantsCommand,
			keygenCommand,
			sealCommand,
			openCommand,
			idsCommand,
			vectorsCommand,
			serveCommand,
			logsCommand,
			benchCommand,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
