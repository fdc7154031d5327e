// Package observabletest scripts and records observable signals for
// tests. Sources are described with marble diagrams: '-' is an empty
// tick, a letter or digit emits the value mapped to it, '|' completes,
// '#' errors, "(...)" collapses several signals onto one tick and '^'
// marks tick zero on a hot timeline.
package observabletest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// ErrScripted is the error behind '#' when no failure is supplied.
var ErrScripted = errors.New("scripted error")

var marbleSyntax = regexp2.MustCompile(`^(?:[-a-z0-9|#^]|\([a-z0-9|#]+\))*$`, regexp2.None)

// ParseMarbles reads a marble diagram into notifications. Spaces are
// ignored. Each character occupies one tick; the signals of a "(...)"
// group all carry the tick of the opening parenthesis, and the group
// advances time by its full character count so diagrams of equal length
// stay aligned. At most one '^' resets tick zero to its own position,
// leaving whatever precedes it on negative ticks. values maps identifier
// runes to payloads and failure is the error behind '#'.
func ParseMarbles[T any](diagram string, values map[rune]T, failure error) ([]Notification[T], error) {
	stripped := strings.ReplaceAll(diagram, " ", "")
	if ok, _ := marbleSyntax.MatchString(stripped); !ok {
		return nil, fmt.Errorf("malformed diagram %q", diagram)
	}
	if failure == nil {
		failure = ErrScripted
	}

	var (
		out      []Notification[T]
		tick     int
		group    = -1
		caret    = -1
		terminal = false
	)
	for _, c := range stripped {
		at := tick
		if group >= 0 {
			at = group
		}
		switch c {
		case '-':
		case '^':
			if caret >= 0 {
				return nil, fmt.Errorf("second subscription marker in diagram %q", diagram)
			}
			caret = tick
		case '(':
			group = tick
		case ')':
			group = -1
		case '|':
			if terminal {
				return nil, fmt.Errorf("signal after terminal in diagram %q", diagram)
			}
			terminal = true
			out = append(out, Notification[T]{Kind: KindComplete, Tick: at})
		case '#':
			if terminal {
				return nil, fmt.Errorf("signal after terminal in diagram %q", diagram)
			}
			terminal = true
			out = append(out, Notification[T]{Kind: KindError, Err: failure, Tick: at})
		default:
			if terminal {
				return nil, fmt.Errorf("signal after terminal in diagram %q", diagram)
			}
			value, ok := values[c]
			if !ok {
				return nil, fmt.Errorf("no value for marble %q", c)
			}
			out = append(out, Notification[T]{Kind: KindNext, Value: value, Tick: at})
		}
		tick++
	}
	if caret > 0 {
		for i := range out {
			out[i].Tick -= caret
		}
	}
	return out, nil
}
