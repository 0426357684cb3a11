package main

import (
	"io"

	apppkg "github.com/kk-code-lab/rbook/internal/app"
	"github.com/kk-code-lab/rbook/internal/catalog"
	"github.com/kk-code-lab/rbook/internal/config"
	"github.com/kk-code-lab/rbook/internal/logging"
	"github.com/sirupsen/logrus"
)

// env carries what every command needs.
type env struct {
	cfg       *config.Config
	log       *logrus.Logger
	logCloser io.Closer
	app       *apppkg.Application
	out       io.Writer
}

func newEnv(out io.Writer) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, logCloser, err := logging.New(logging.Options{Path: cfg.LogPath, Level: cfg.LogLevel})
	if err != nil {
		return nil, err
	}
	store, err := catalog.Open(cfg.CatalogDriver, cfg.CatalogPath)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}
	return &env{
		cfg:       cfg,
		log:       log,
		logCloser: logCloser,
		app:       apppkg.New(cfg, store, log),
		out:       out,
	}, nil
}

func (e *env) Close() {
	if err := e.app.Close(); err != nil {
		e.log.WithError(err).Warn("close catalog")
	}
	_ = e.logCloser.Close()
}
