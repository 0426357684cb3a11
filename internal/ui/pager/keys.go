package pager

import (
	"bufio"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/kk-code-lab/rbook/internal/reader"
)

type keyKind int

const (
	keyUnknown keyKind = iota
	keyUp
	keyDown
	keyLeft
	keyRight
	keyPageUp
	keyPageDown
	keyHome
	keyEnd
	keyEscape
	keyRune
	keyCtrlC
)

// escapeWait is how long a lone ESC waits for the rest of a sequence that
// arrives split across reads.
const escapeWait = 50 * time.Millisecond

type keyEvent struct {
	kind keyKind
	r    rune
}

// commandForKey maps a decoded key to a reader command. Only PgDn, PgUp and
// End (or Esc) drive the session; every other key is unsupported.
func commandForKey(ev keyEvent) reader.Command {
	switch ev.kind {
	case keyPageDown:
		return reader.CommandNextLine
	case keyPageUp:
		return reader.CommandPreviousLine
	case keyEnd, keyEscape:
		return reader.CommandExit
	default:
		return reader.CommandUnsupported
	}
}

// readKeyEvent decodes one key from r. pending, when set, reports whether
// more input shows up within escapeWait; it is consulted after an ESC with
// nothing buffered behind it.
func readKeyEvent(r *bufio.Reader, pending func() bool) (keyEvent, error) {
	if r == nil {
		return keyEvent{}, errors.New("no reader available")
	}
	b, err := r.ReadByte()
	if err != nil {
		return keyEvent{}, err
	}

	switch {
	case b == 0x1b:
		return parseEscapeSequence(r, pending)
	case b == 0x03:
		return keyEvent{kind: keyCtrlC}, nil
	case b < utf8.RuneSelf:
		return keyEvent{kind: keyRune, r: rune(b)}, nil
	}

	buf := []byte{b}
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		next, err := r.ReadByte()
		if err != nil {
			break
		}
		buf = append(buf, next)
	}
	ru, _ := utf8.DecodeRune(buf)
	return keyEvent{kind: keyRune, r: ru}, nil
}

func parseEscapeSequence(r *bufio.Reader, pending func() bool) (keyEvent, error) {
	if r.Buffered() == 0 && (pending == nil || !pending()) {
		return keyEvent{kind: keyEscape}, nil
	}
	next, err := r.ReadByte()
	if err != nil {
		return keyEvent{kind: keyEscape}, nil
	}

	switch next {
	case '[':
		return parseCSI(r)
	case 'O':
		final, err := r.ReadByte()
		if err != nil {
			return keyEvent{kind: keyEscape}, nil
		}
		switch final {
		case 'H':
			return keyEvent{kind: keyHome}, nil
		case 'F':
			return keyEvent{kind: keyEnd}, nil
		default:
			return keyEvent{kind: keyUnknown}, nil
		}
	default:
		return keyEvent{kind: keyUnknown}, nil
	}
}

func parseCSI(r *bufio.Reader) (keyEvent, error) {
	seq := []byte{}
	for {
		b, err := r.ReadByte()
		if err != nil {
			return keyEvent{kind: keyEscape}, nil
		}
		seq = append(seq, b)
		if (b >= 'A' && b <= 'Z') || b == '~' {
			break
		}
		if len(seq) > 5 {
			break
		}
	}

	switch seq[len(seq)-1] {
	case 'A':
		return keyEvent{kind: keyUp}, nil
	case 'B':
		return keyEvent{kind: keyDown}, nil
	case 'C':
		return keyEvent{kind: keyRight}, nil
	case 'D':
		return keyEvent{kind: keyLeft}, nil
	case 'H':
		return keyEvent{kind: keyHome}, nil
	case 'F':
		return keyEvent{kind: keyEnd}, nil
	case '~':
		switch string(seq[:len(seq)-1]) {
		case "5":
			return keyEvent{kind: keyPageUp}, nil
		case "6":
			return keyEvent{kind: keyPageDown}, nil
		case "1", "7":
			return keyEvent{kind: keyHome}, nil
		case "4", "8":
			return keyEvent{kind: keyEnd}, nil
		}
	}
	return keyEvent{kind: keyUnknown}, nil
}
