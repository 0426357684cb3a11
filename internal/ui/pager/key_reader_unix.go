//go:build !windows && !plan9 && !js && !wasip1

package pager

import (
	"golang.org/x/sys/unix"
)

// nextKey waits until either the tty or the cancel pipe is readable. Bytes
// already buffered by a previous escape sequence are decoded first.
func (t *Terminal) nextKey() (keyEvent, error) {
	if t.reader != nil && t.reader.Buffered() > 0 {
		return readKeyEvent(t.reader, t.inputPending)
	}
	if t.input == nil || t.cancelR == nil {
		return keyEvent{}, errNoTTY
	}
	inputFd := int(t.input.Fd())
	cancelFd := int(t.cancelR.Fd())
	for {
		var readfds unix.FdSet
		readfds.Set(inputFd)
		readfds.Set(cancelFd)
		maxfd := max(inputFd, cancelFd)
		n, err := unix.Select(maxfd+1, &readfds, nil, nil, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return keyEvent{}, err
		}
		if n == 0 {
			continue
		}
		if readfds.IsSet(cancelFd) {
			return keyEvent{}, errReadCanceled
		}
		if readfds.IsSet(inputFd) {
			return readKeyEvent(t.reader, t.inputPending)
		}
	}
}

// inputPending waits up to escapeWait for the tty to become readable.
func (t *Terminal) inputPending() bool {
	if t.input == nil {
		return false
	}
	fd := int(t.input.Fd())
	for {
		var readfds unix.FdSet
		readfds.Set(fd)
		tv := unix.NsecToTimeval(escapeWait.Nanoseconds())
		n, err := unix.Select(fd+1, &readfds, nil, nil, &tv)
		if err == unix.EINTR {
			continue
		}
		return err == nil && n > 0 && readfds.IsSet(fd)
	}
}
