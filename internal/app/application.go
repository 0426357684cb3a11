package app

import (
	"context"
	"os/signal"

	"github.com/kk-code-lab/rbook/internal/catalog"
	"github.com/kk-code-lab/rbook/internal/config"
	"github.com/sirupsen/logrus"
)

// Application ties the configuration, the catalog and the logger together
// for the commands that need more than one of them.
type Application struct {
	cfg   *config.Config
	store catalog.Store
	log   logrus.FieldLogger

	openBackend func(name string, title string, width int) (*backend, error)
}

// New creates an application over an open catalog.
func New(cfg *config.Config, store catalog.Store, log logrus.FieldLogger) *Application {
	return &Application{
		cfg:         cfg,
		store:       store,
		log:         log,
		openBackend: openBackend,
	}
}

// Store returns the catalog the application works on.
func (app *Application) Store() catalog.Store {
	return app.store
}

// Close releases the catalog.
func (app *Application) Close() error {
	return app.store.Close()
}

// SignalContext returns a context cancelled by SIGINT, SIGTERM or SIGHUP.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, stopSignals()...)
}
