package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	apppkg "github.com/kk-code-lab/rbook/internal/app"
	"github.com/kk-code-lab/rbook/internal/book"
	"github.com/kk-code-lab/rbook/internal/catalog"
	"github.com/kk-code-lab/rbook/internal/config"
	rfs "github.com/kk-code-lab/rbook/internal/fs"
	"github.com/kk-code-lab/rbook/internal/menu"
	"github.com/sirupsen/logrus"
)

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

type command func(e *env, args []string) error

var commands = map[string]command{
	"add":      cmdAdd,
	"list":     cmdList,
	"config":   cmdConfig,
	"remove":   cmdRemove,
	"read":     cmdRead,
	"menu":     cmdMenu,
	"settings": cmdSettings,
}

// parseArgs parses flags that may appear before, between or after the
// positional arguments and returns the positionals in order.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	fs.SetOutput(io.Discard)
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, usagef("%v", err)
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func parsePercent(s string) (float64, error) {
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, usagef("invalid percentage %q", s)
	}
	if p < 0 || p > 100 {
		return 0, usagef("percentage %v out of range 0-100", p)
	}
	return p, nil
}

func cmdAdd(e *env, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	percent := fs.String("percent", "", "starting position in percent")
	title := fs.String("title", "", "book title")
	author := fs.String("author", "", "book author")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return usagef("expected exactly one file path")
	}

	file, err := rfs.CheckBook(positional[0])
	if err != nil {
		return err
	}
	entry := catalog.Entry{
		Title:     *title,
		Author:    *author,
		Path:      file.Path,
		FileSize:  file.Size,
		Available: true,
	}
	if entry.Title == "" {
		entry.Title = file.Title()
	}
	if *percent != "" {
		p, err := parsePercent(*percent)
		if err != nil {
			return err
		}
		if err := seed(e, &entry, p); err != nil {
			return err
		}
	}
	if err := e.app.Store().Add(entry); err != nil {
		return err
	}
	e.log.WithFields(logrus.Fields{
		"path":    entry.Path,
		"size":    entry.FileSize,
		"percent": entry.ProgressPercent,
	}).Info("book added")
	fmt.Fprintf(e.out, "Added %q (%s)\n", entry.Title, entry.Path)
	return nil
}

func cmdList(e *env, args []string) error {
	if len(args) != 0 {
		return usagef("list takes no arguments")
	}
	entries, err := catalog.Refresh(e.app.Store())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(e.out, "The catalog is empty. Add a book with 'rbook add <path>'.")
		return nil
	}
	fmt.Fprint(e.out, menu.FormatList(entries, time.Now()))
	return nil
}

func cmdConfig(e *env, args []string) error {
	if len(args) != 2 {
		return usagef("expected <book> <percent>")
	}
	p, err := parsePercent(args[1])
	if err != nil {
		return err
	}
	entry, err := catalog.Resolve(e.app.Store(), args[0])
	if err != nil {
		return err
	}
	if err := seed(e, &entry, p); err != nil {
		return err
	}
	if err := e.app.Store().Update(entry); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "%q will resume at %.1f%%\n", entry.Title, entry.ProgressPercent)
	return nil
}

func cmdRemove(e *env, args []string) error {
	if len(args) != 1 {
		return usagef("expected <book>")
	}
	entry, err := catalog.Resolve(e.app.Store(), args[0])
	if err != nil {
		return err
	}
	if err := e.app.Store().Remove(entry.Path); err != nil {
		return err
	}
	e.log.WithField("path", entry.Path).Info("book removed")
	fmt.Fprintf(e.out, "Removed %q\n", entry.Title)
	return nil
}

func cmdRead(e *env, args []string) error {
	fs := flag.NewFlagSet("read", flag.ContinueOnError)
	width := fs.Int("width", 0, "line width in columns")
	backend := fs.String("backend", "", "line or screen")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return usagef("expected <book>")
	}
	ctx, stop := apppkg.SignalContext(context.Background())
	defer stop()
	return e.app.Read(ctx, positional[0], apppkg.ReadOptions{Width: *width, Backend: *backend})
}

func cmdMenu(e *env, args []string) error {
	if len(args) != 0 {
		return usagef("menu takes no arguments")
	}
	ctx, stop := apppkg.SignalContext(context.Background())
	defer stop()

	for ctx.Err() == nil {
		entries, err := catalog.Refresh(e.app.Store())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(e.out, "The catalog is empty. Add a book with 'rbook add <path>'.")
			return nil
		}
		res, err := menu.Run(entries)
		if err != nil {
			return err
		}
		switch res.Action {
		case menu.ActionQuit:
			return nil
		case menu.ActionRemove:
			if err := e.app.Store().Remove(res.Entry.Path); err != nil {
				return err
			}
			e.log.WithField("path", res.Entry.Path).Info("book removed")
		case menu.ActionRead:
			if err := e.app.Read(ctx, res.Entry.Path, apppkg.ReadOptions{}); err != nil {
				return err
			}
		}
	}
	return nil
}

// cmdSettings prints the effective settings, or writes the given flags to
// the config file. Environment overrides are never written back.
func cmdSettings(e *env, args []string) error {
	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	catalogPath := fs.String("catalog", "", "catalog file")
	driver := fs.String("catalog-driver", "", "json or sqlite")
	logPath := fs.String("log", "", "log file")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	backend := fs.String("backend", "", "line or screen")
	width := fs.Int("width", 0, "line width in columns, 0 to detect")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 0 {
		return usagef("settings takes only flags")
	}

	changed := 0
	fs.Visit(func(*flag.Flag) { changed++ })
	if changed == 0 {
		printSettings(e.out, e.cfg)
		return nil
	}

	cfg, err := config.LoadFile(e.cfg.Path(), func(string) string { return "" })
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "catalog":
			cfg.CatalogPath = *catalogPath
		case "catalog-driver":
			cfg.CatalogDriver = *driver
		case "log":
			cfg.LogPath = *logPath
		case "log-level":
			cfg.LogLevel = *logLevel
		case "backend":
			cfg.Backend = *backend
		case "width":
			cfg.TermWidth = *width
		}
	})
	if err := cfg.Validate(); err != nil {
		return usagef("%v", err)
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	e.log.WithField("path", cfg.Path()).Info("settings saved")
	fmt.Fprintf(e.out, "Saved settings to %s\n", cfg.Path())
	return nil
}

func printSettings(w io.Writer, cfg *config.Config) {
	width := "auto"
	if cfg.TermWidth > 0 {
		width = strconv.Itoa(cfg.TermWidth)
	}
	fmt.Fprintf(w, "config file     %s\n", cfg.Path())
	fmt.Fprintf(w, "catalog         %s (%s)\n", cfg.CatalogPath, cfg.CatalogDriver)
	fmt.Fprintf(w, "log             %s (%s)\n", cfg.LogPath, cfg.LogLevel)
	fmt.Fprintf(w, "backend         %s\n", cfg.Backend)
	fmt.Fprintf(w, "width           %s\n", width)
}

// seed moves entry to percent, falling back to the start of the file with a
// warning when no character boundary follows the requested offset.
func seed(e *env, entry *catalog.Entry, percent float64) error {
	err := catalog.Seed(entry, percent)
	if errors.Is(err, book.ErrBoundaryNotFound) {
		e.log.WithFields(logrus.Fields{
			"path":    entry.Path,
			"percent": percent,
		}).Warn("no character boundary after requested offset, starting from the beginning")
		fmt.Fprintf(e.out, "warning: no character boundary after %.1f%%, starting from the beginning\n", percent)
		return nil
	}
	return err
}
