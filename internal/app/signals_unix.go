//go:build !windows

package app

import (
	"os"
	"syscall"
)

// stopSignals end a reading session cleanly so progress is persisted.
func stopSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
}
