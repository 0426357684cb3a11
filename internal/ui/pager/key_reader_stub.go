//go:build windows || plan9 || js || wasip1

package pager

// nextKey blocks on the tty without a cancel channel. Cancel only takes
// effect once the next key arrives.
func (t *Terminal) nextKey() (keyEvent, error) {
	if t.reader == nil {
		return keyEvent{}, errNoTTY
	}
	ev, err := readKeyEvent(t.reader, nil)
	if err != nil {
		return ev, err
	}
	if t.canceled() {
		return keyEvent{}, errReadCanceled
	}
	return ev, nil
}
