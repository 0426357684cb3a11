package reader

import (
	"context"
	"errors"

	"github.com/kk-code-lab/rbook/internal/book"
	"github.com/sirupsen/logrus"
)

// State is the Navigation Controller's position in its state machine.
type State int

const (
	StateAwaitingCommand State = iota
	StateRendering
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateAwaitingCommand:
		return "awaiting-command"
	case StateRendering:
		return "rendering"
	default:
		return "terminated"
	}
}

// Renderer draws frames. Clear removes whatever the last frame left behind.
type Renderer interface {
	Render(Frame) error
	Clear() error
}

// ProgressSink persists the reading position between sessions.
type ProgressSink interface {
	SaveProgress(Progress) error
}

// Controller drives a Session from navigation commands, renders every step
// and persists progress after each successful one.
type Controller struct {
	session  *Session
	renderer Renderer
	sink     ProgressSink
	log      logrus.FieldLogger
	state    State
}

func NewController(session *Session, renderer Renderer, sink ProgressSink, log logrus.FieldLogger) *Controller {
	return &Controller{
		session:  session,
		renderer: renderer,
		sink:     sink,
		log:      log,
		state:    StateAwaitingCommand,
	}
}

func (c *Controller) State() State {
	return c.state
}

// Run listens on keys until a terminating command arrives, the listener
// disconnects or ctx is cancelled. It always releases the session, joins the
// listener goroutine and writes a final progress record before returning.
func (c *Controller) Run(ctx context.Context, keys KeySource) {
	listener := StartListener(keys, c.log)
	defer func() {
		listener.Stop()
		if err := c.session.Close(); err != nil {
			c.log.WithError(err).Warn("close book")
		}
	}()

	for c.state != StateTerminated {
		select {
		case <-ctx.Done():
			c.log.Info("reading session interrupted")
			c.state = StateTerminated
		case cmd, ok := <-listener.Commands():
			if !ok {
				c.log.WithError(ErrChannelDisconnected).Warn("leaving read mode")
				c.state = StateTerminated
				continue
			}
			c.Step(cmd)
		}
	}

	if err := c.renderer.Clear(); err != nil {
		c.log.WithError(err).Warn("clear reading line")
	}
	c.persist()
}

// Step applies one command and reports whether the session is still active.
func (c *Controller) Step(cmd Command) bool {
	if c.state == StateTerminated {
		return false
	}

	switch cmd {
	case CommandNextLine, CommandPreviousLine:
		c.state = StateRendering
		c.navigate(cmd)
		c.state = StateAwaitingCommand
		return true
	case CommandExit:
		c.log.Debug("exit read mode")
	default:
		c.log.WithError(ErrUnsupportedKey).Warn("leaving read mode")
	}
	c.state = StateTerminated
	return false
}

func (c *Controller) navigate(cmd Command) {
	var (
		frame Frame
		err   error
	)
	if cmd == CommandNextLine {
		frame, err = c.session.Next()
	} else {
		frame, err = c.session.Previous()
	}

	switch {
	case errors.Is(err, book.ErrEndOfFile):
		c.log.WithField("offset", c.session.LineStart()).Info("no further content")
		return
	case errors.Is(err, book.ErrStartOfFile):
		c.log.WithField("offset", c.session.LineStart()).Info("no earlier content")
		return
	case err != nil:
		c.log.WithError(err).WithField("command", cmd.String()).Error("navigation step skipped")
		return
	}

	c.log.WithFields(logrus.Fields{
		"command": cmd.String(),
		"offset":  frame.Offset,
		"segment": frame.Segment,
	}).Debug("render")
	if err := c.renderer.Render(frame); err != nil {
		c.log.WithError(err).Error("render segment")
	}
	c.persist()
}

func (c *Controller) persist() {
	if c.sink == nil {
		return
	}
	progress := c.session.Progress()
	if err := c.sink.SaveProgress(progress); err != nil {
		c.log.WithError(err).WithField("path", progress.Path).Error("save book progress")
	}
}
