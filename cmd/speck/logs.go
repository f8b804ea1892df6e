package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"speck-go/pkg/appdir"
	"speck-go/pkg/log"

	"github.com/urfave/cli/v2"
)

// timeFormats are the absolute layouts accepted by parseTimeSpec, most
// specific first.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// parseTimeSpec reads either a duration back from now ("1h", "30m") or an
// absolute timestamp.
func parseTimeSpec(spec string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(spec); err == nil {
		return now.Add(-d), nil
	}
	for _, layout := range timeFormats {
		if ts, err := time.Parse(layout, spec); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time specification: '%s'. Use a relative duration (e.g. '1h', '30m') or an absolute time (e.g. '2023-10-27T15:04:05Z')", spec)
}

var logsCommand = &cli.Command{
	Name:      "logs",
	Usage:     "retrieves JSON log entries written by `speck serve`",
	UsageText: "speck logs -f speck.db [--since|--between] [-n N] [-s TIME] [-e TIME] [--export FILE]",
	Description: `Without a mode flag the most recent --count entries are printed.
TIME is a duration back from now ("5m", "1h30m") or an RFC3339 / date timestamp.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "dbfile",
			Aliases:  []string{"f"},
			Usage:    "SQLite log database `PATH`",
			Required: true,
		},
		&cli.BoolFlag{Name: "since", Usage: "entries since --start"},
		&cli.BoolFlag{Name: "between", Usage: "entries between --start and --end"},
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "number of entries in the default mode",
			Value:   100,
		},
		&cli.StringFlag{Name: "start", Aliases: []string{"s"}, Usage: "start `TIME`"},
		&cli.StringFlag{Name: "end", Aliases: []string{"e"}, Usage: "end `TIME`"},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "max entries for --since/--between",
			Value:   1000,
		},
		&cli.StringFlag{
			Name:  "export",
			Usage: "write the entries zstd compressed to `FILE` instead of stdout",
		},
	},
	Action: logsCmd,
}

func logsCmd(c *cli.Context) error {
	if c.Bool("since") && c.Bool("between") {
		return cli.Exit("Error: only one of --since and --between can be given.", 1)
	}

	// Relative names live in appdir, as for log.Init.
	dbFile := c.String("dbfile")
	if path := appdir.Resolve(dbFile); !fileExists(path) {
		return cli.Exit(fmt.Sprintf("Error: database file not found at '%s'", path), 1)
	}
	if err := log.Init(dbFile); err != nil {
		return cli.Exit(fmt.Sprintf("Error opening log database: %v", err), 1)
	}
	defer log.Close()

	entries, err := queryLogs(c, time.Now())
	if err != nil {
		if errors.Is(err, log.ErrNotInitialized) {
			return cli.Exit("Internal Error: log database handle became unavailable.", 2)
		}
		return cli.Exit(err.Error(), 1)
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No log entries found matching the criteria.")
		return nil
	}

	if path := c.String("export"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer f.Close()
		if err := log.Export(f, entries); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		fmt.Fprintf(os.Stderr, "exported %d entries to %s\n", len(entries), path)
		return nil
	}

	for _, e := range entries {
		fmt.Fprint(c.App.Writer, e.LogData)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func queryLogs(c *cli.Context, now time.Time) ([]log.Entry, error) {
	switch {
	case c.Bool("since"):
		if !c.IsSet("start") {
			return nil, errors.New("--start is required for --since")
		}
		start, err := parseTimeSpec(c.String("start"), now)
		if err != nil {
			return nil, err
		}
		return log.GetLogsSince(start, c.Int("limit"))
	case c.Bool("between"):
		if !c.IsSet("start") || !c.IsSet("end") {
			return nil, errors.New("--start and --end are required for --between")
		}
		start, err := parseTimeSpec(c.String("start"), now)
		if err != nil {
			return nil, err
		}
		end, err := parseTimeSpec(c.String("end"), now)
		if err != nil {
			return nil, err
		}
		return log.GetLogsBetween(start, end, c.Int("limit"))
	default:
		if c.Int("count") <= 0 {
			return nil, errors.New("--count must be a positive number")
		}
		return log.GetLastNLogs(c.Int("count"))
	}
}
