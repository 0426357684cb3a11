package reader

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// KeySource delivers decoded navigation commands. ReadCommand blocks until a
// key arrives; Cancel makes a pending or future ReadCommand return an error.
type KeySource interface {
	ReadCommand() (Command, error)
	Cancel()
}

// Listener runs a KeySource on its own goroutine and forwards commands over
// a single channel. After forwarding a terminating command it stops reading,
// so joining it never waits on the terminal.
type Listener struct {
	keys     KeySource
	log      logrus.FieldLogger
	commands chan Command
	done     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

// StartListener starts reading from keys.
func StartListener(keys KeySource, log logrus.FieldLogger) *Listener {
	l := &Listener{
		keys:     keys,
		log:      log,
		commands: make(chan Command, 1),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	go l.loop()
	return l
}

// Commands is closed once the listener goroutine has exited.
func (l *Listener) Commands() <-chan Command {
	return l.commands
}

// Stop cancels any pending read and waits for the goroutine to exit.
func (l *Listener) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
		l.keys.Cancel()
	})
	<-l.finished
}

func (l *Listener) loop() {
	defer close(l.finished)
	defer close(l.commands)

	for {
		cmd, err := l.keys.ReadCommand()
		if err != nil {
			select {
			case <-l.done:
			default:
				l.log.WithError(err).Warn("key listener stopped")
			}
			return
		}
		l.log.WithField("command", cmd.String()).Debug("key received")

		select {
		case <-l.done:
			return
		case l.commands <- cmd:
		}
		if cmd.Terminal() {
			return
		}
	}
}
