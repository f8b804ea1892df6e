package main

import (
	"speck-go/pkg/benchmark"

	"github.com/urfave/cli/v2"
)

var benchCommand = &cli.Command{
	Name:      "bench",
	Usage:     "measures per-block latency of a variant",
	UsageText: "speck bench [--variant NAME | --all] [--op seal|open|schedule] [--output results.csv]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "variant",
			Aliases: []string{"v"},
			Value:   benchmark.DefaultBenchmarkOptions().Variant,
			Usage:   "variant `NAME` to benchmark",
		},
		&cli.BoolFlag{
			Name:  "all",
			Usage: "benchmark every variant",
		},
		&cli.StringFlag{
			Name:  "op",
			Value: "seal",
			Usage: "operation to time: seal, open or schedule",
		},
		&cli.IntFlag{
			Name:  "iterations",
			Value: benchmark.DefaultBenchmarkOptions().Iterations,
			Usage: "number of timed samples",
		},
		&cli.IntFlag{
			Name:  "batch",
			Value: benchmark.DefaultBenchmarkOptions().BatchSize,
			Usage: "operations per sample",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write results to CSV `FILE`",
		},
	},
	Action: benchCmd,
}

func benchCmd(c *cli.Context) error {
	op, err := benchmark.ParseOperation(c.String("op"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	opts := &benchmark.BenchmarkOptions{
		Variant:    c.String("variant"),
		Operation:  op,
		Iterations: c.Int("iterations"),
		BatchSize:  c.Int("batch"),
	}

	var results []*benchmark.LatencyResults
	if c.Bool("all") {
		results, err = benchmark.RunAllBenchmarks(opts)
	} else {
		var r *benchmark.LatencyResults
		if r, err = benchmark.BenchmarkLatency(opts); err == nil {
			results = append(results, r)
		}
	}
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	for _, r := range results {
		benchmark.PrintResults(c.App.Writer, r)
	}
	if out := c.String("output"); out != "" {
		if err := benchmark.SaveResultsToFile(results, out); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}
	return nil
}
