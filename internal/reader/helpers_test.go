package reader

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/kk-code-lab/rbook/internal/book"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

const scenarioText = "abcdefghijklmnopqrstuvwxy\n\nLine two\n"

func newMemorySession(t *testing.T, content string, width int) *Session {
	t.Helper()
	data := []byte(content)
	cursor := book.NewCursor(bytes.NewReader(data), int64(len(data)))
	session, err := NewSession("memory.txt", cursor, width, 0)
	require.NoError(t, err)
	return session
}

func newTestLogger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

type recordingRenderer struct {
	frames  []Frame
	cleared int
}

func (r *recordingRenderer) Render(f Frame) error {
	r.frames = append(r.frames, f)
	return nil
}

func (r *recordingRenderer) Clear() error {
	r.cleared++
	return nil
}

func (r *recordingRenderer) texts() []string {
	out := make([]string, 0, len(r.frames))
	for _, f := range r.frames {
		out = append(out, f.Text)
	}
	return out
}

type recordingSink struct {
	saved []Progress
	err   error
}

func (s *recordingSink) SaveProgress(p Progress) error {
	s.saved = append(s.saved, p)
	return s.err
}

// scriptedKeys replays commands, then blocks until cancelled.
type scriptedKeys struct {
	commands []Command
	err      error
	canceled chan struct{}
	once     sync.Once
}

func newScriptedKeys(cmds ...Command) *scriptedKeys {
	return &scriptedKeys{commands: cmds, canceled: make(chan struct{})}
}

func (k *scriptedKeys) ReadCommand() (Command, error) {
	if len(k.commands) > 0 {
		cmd := k.commands[0]
		k.commands = k.commands[1:]
		return cmd, nil
	}
	if k.err != nil {
		return CommandUnsupported, k.err
	}
	<-k.canceled
	return CommandUnsupported, errors.New("read cancelled")
}

func (k *scriptedKeys) Cancel() {
	k.once.Do(func() {
		close(k.canceled)
	})
}

func hasEntry(hook *test.Hook, level logrus.Level, msg string) bool {
	for _, e := range hook.AllEntries() {
		if e.Level == level && e.Message == msg {
			return true
		}
	}
	return false
}
