package app

import (
	"context"
	"fmt"
	"os"

	"github.com/kk-code-lab/rbook/internal/book"
	"github.com/kk-code-lab/rbook/internal/catalog"
	"github.com/kk-code-lab/rbook/internal/reader"
	"github.com/sirupsen/logrus"
)

// ReadOptions override the configured backend and width for one session.
type ReadOptions struct {
	Width   int
	Backend string
}

// Read opens the catalogued book ref (index or path) and runs a reading
// session until the reader leaves it or ctx is cancelled. Progress is
// written back to the catalog after every step.
func (app *Application) Read(ctx context.Context, ref string, opts ReadOptions) error {
	entry, err := catalog.Resolve(app.store, ref)
	if err != nil {
		return err
	}
	sessionOpts, err := app.sessionOptions(entry)
	if err != nil {
		return err
	}

	backendName := opts.Backend
	if backendName == "" {
		backendName = app.cfg.Backend
	}
	width := opts.Width
	if width <= 0 {
		width = app.cfg.TermWidth
	}

	be, err := app.openBackend(backendName, entry.Title, width)
	if err != nil {
		return fmt.Errorf("open %s backend: %w", backendName, err)
	}
	defer func() {
		if err := be.close(); err != nil {
			app.log.WithError(err).Warn("restore terminal")
		}
	}()

	sessionOpts.Width = be.width
	session, err := reader.Open(sessionOpts, app.log)
	if err != nil {
		if book.IsIOError(err) {
			app.markUnavailable(entry)
		}
		return err
	}
	if be.intro {
		p := session.Progress()
		if err := be.renderer.Render(reader.Frame{Offset: p.Offset, Size: p.Size, Percent: p.Percent}); err != nil {
			app.log.WithError(err).Warn("render position")
		}
	}

	app.log.WithFields(logrus.Fields{
		"path":    entry.Path,
		"backend": backendName,
		"width":   be.width,
	}).Info("enter read mode")
	reader.NewController(session, be.renderer, catalog.ProgressSink(app.store), app.log).Run(ctx, be.keys)
	return nil
}

// sessionOptions resumes at the stored offset, or re-resolves the stored
// percentage when the file no longer has the catalogued size.
func (app *Application) sessionOptions(entry catalog.Entry) (reader.Options, error) {
	info, err := os.Stat(entry.Path)
	if err != nil {
		app.markUnavailable(entry)
		return reader.Options{}, fmt.Errorf("open %s: %w", entry.Title, err)
	}

	opts := reader.Options{Path: entry.Path, Offset: entry.Progress}
	if info.Size() != entry.FileSize || entry.Progress > info.Size() {
		app.log.WithFields(logrus.Fields{
			"path":    entry.Path,
			"was":     entry.FileSize,
			"now":     info.Size(),
			"percent": entry.ProgressPercent,
		}).Info("book changed size, resuming from stored percentage")
		opts.Offset = 0
		opts.Percent = entry.ProgressPercent
		opts.FromPercent = true
	}
	return opts, nil
}

// markUnavailable flags a book whose file can no longer be read so list and
// menu show it as missing.
func (app *Application) markUnavailable(entry catalog.Entry) {
	if !entry.Available {
		return
	}
	entry.Available = false
	if err := app.store.Update(entry); err != nil {
		app.log.WithError(err).Warn("mark book unavailable")
	}
}
