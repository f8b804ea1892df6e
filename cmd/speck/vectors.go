package main

import (
	"fmt"

	"speck-go/pkg/vectors"

	"github.com/urfave/cli/v2"
)

var vectorsCommand = &cli.Command{
	Name:      "vectors",
	Usage:     "checks known-answer test vectors",
	UsageText: "speck vectors [--file vectors.toml]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "TOML `FILE` with [[vectors]] tables, defaults to the built-in vectors",
		},
	},
	Action: vectorsCmd,
}

func vectorsCmd(c *cli.Context) error {
	vs := vectors.Default()
	if path := c.String("file"); path != "" {
		var err error
		if vs, err = vectors.Load(path); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	failed := 0
	for _, r := range vectors.CheckAll(vs) {
		if r.Err != nil {
			failed++
			fmt.Fprintf(c.App.Writer, "FAIL %-14s %v\n", r.Vector.Name, r.Err)
			continue
		}
		fmt.Fprintf(c.App.Writer, "ok   %-14s %s\n", r.Vector.Name, r.Vector.Ciphertext)
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d vectors failed", failed, len(vs)), 1)
	}
	return nil
}
