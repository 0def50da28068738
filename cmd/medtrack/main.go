// Package main is the entry point for the medtrack CLI.
//
// Usage:
//
//	medtrack add --name S --strength S --form S --expiry YYYY-MM-DD
//	medtrack list
//	medtrack soon --days 30
//	medtrack expired
//	medtrack find --query S
//	medtrack export --csv out.csv
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/medtrack/medtrack/internal/observability"
	"github.com/medtrack/medtrack/internal/query"
	"github.com/medtrack/medtrack/internal/record"
	"github.com/medtrack/medtrack/internal/store"
)

const (
	version = "0.1.0"
	appName = "medtrack"
)

// globalOptions are the flags accepted before the subcommand.
type globalOptions struct {
	storePath string
	verbose   bool
}

func main() {
	opts, args := parseGlobal(os.Args[1:])
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	logWriter := io.Writer(io.Discard)
	if opts.verbose {
		logWriter = os.Stderr
	}

	a := &app{
		storePath: opts.storePath,
		log:       observability.NewLogger(appName, logWriter),
		out:       os.Stdout,
		today:     record.Today(time.Now()),
	}

	cmd, rest := args[0], args[1:]

	var err error
	switch cmd {
	case "add":
		err = a.runAdd(rest)
	case "list":
		err = a.runList(rest)
	case "soon":
		err = a.runSoon(rest)
	case "expired":
		err = a.runExpired(rest)
	case "find":
		err = a.runFind(rest)
	case "export":
		err = a.runExport(rest)
	case "remove":
		err = a.runRemove(rest)
	case "version":
		fmt.Printf("%s v%s\n", appName, version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

// parseGlobal consumes the leading global flags and returns what is
// left, starting with the subcommand.
func parseGlobal(args []string) (globalOptions, []string) {
	opts := globalOptions{storePath: store.DefaultFileName}
	for len(args) > 0 {
		switch {
		case args[0] == "--verbose" || args[0] == "-v":
			opts.verbose = true
			args = args[1:]
		case args[0] == "--file" || args[0] == "-f":
			if len(args) < 2 {
				fmt.Fprintln(os.Stderr, "--file requires a path")
				os.Exit(1)
			}
			opts.storePath = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--file="):
			opts.storePath = strings.TrimPrefix(args[0], "--file=")
			args = args[1:]
		default:
			return opts, args
		}
	}
	return opts, args
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `%s v%s - medicine inventory with expiry tracking

Usage:
  %s [--file PATH] [--verbose] <command> [flags]

Commands:
  add        Add a medicine (--name --strength --form --expiry [--batch] [--location])
  list       List every medicine in insertion order
  soon       List medicines expiring within N days (--days, default %d)
  expired    List medicines already expired
  find       Search by name (--query, case-insensitive substring)
  export     Export the collection (--csv PATH and/or --xlsx PATH)
  remove     Remove all medicines with a given name (--name)
  version    Print version

Global flags:
  --file PATH   Store location (default %s in the working directory;
                a .db/.sqlite extension selects the SQLite backend)
  --verbose     Structured diagnostics on stderr

`, appName, version, appName, query.DefaultWindowDays, store.DefaultFileName)
}
