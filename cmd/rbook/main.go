package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
)

func printHelp(w io.Writer) {
	fmt.Fprint(w, `rbook - read plain-text books in the terminal, one line at a time

USAGE:
    rbook <COMMAND> [ARGS]

COMMANDS:
    add <path> [--percent P] [--title T] [--author A]
                          Add a UTF-8 text file to the catalog, optionally
                          starting at P percent of the file
    list                  Show catalogued books with their progress
    config <book> <percent>
                          Move a book's reading position to a percentage
    remove <book>         Remove a book from the catalog (the file is kept)
    read <book> [--width N] [--backend line|screen]
                          Read a book; PgDn next, PgUp back, End/Esc close
    menu                  Pick a book interactively, then read it
    settings [--backend B] [--width N] [--catalog P] [--catalog-driver D]
             [--log P] [--log-level L]
                          Show the effective settings, or save the given
                          ones to the config file

<book> is the number shown by 'rbook list' or the file path.

OPTIONS:
    -h, --help            Show this help message and exit

ENVIRONMENT:
    RBOOK_CATALOG, RBOOK_CATALOG_DRIVER, RBOOK_LOG, RBOOK_LOG_LEVEL,
    RBOOK_WIDTH, RBOOK_BACKEND override the config file.
`)
}

func main() {
	// Set UTF-8 as fallback encoding for maximum compatibility
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printHelp(stderr)
		return 2
	}
	switch args[0] {
	case "-h", "--help", "help":
		printHelp(stdout)
		return 0
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "rbook: unknown command %q\n\n", args[0])
		printHelp(stderr)
		return 2
	}

	env, err := newEnv(stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error initializing rbook: %v\n", err)
		return 1
	}
	defer env.Close()

	if err := cmd(env, args[1:]); err != nil {
		var usage usageError
		if errors.As(err, &usage) {
			fmt.Fprintf(stderr, "rbook %s: %v\n", args[0], err)
			return 2
		}
		env.log.WithError(err).WithField("command", args[0]).Error("command failed")
		fmt.Fprintf(stderr, "rbook %s: %v\n", args[0], err)
		return 1
	}
	return 0
}
