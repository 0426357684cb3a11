//go:build windows

package app

import "os"

func stopSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
