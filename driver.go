package inquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// actionResult classifies the outcome of handling one semantic action and
// tells the driver loop what to do next.
type actionResult int

const (
	// resultClean means the action produced no visible change; the driver
	// loops without redrawing.
	resultClean actionResult = iota
	// resultNeedsRedraw means prompt state changed and the frame must be
	// redrawn.
	resultNeedsRedraw
	// resultSubmit means the prompt is ready to produce its answer; the
	// driver proceeds to validation.
	resultSubmit
)

// session is the capability set every prompt type implements for the driver
// loop: one implementing type per prompt kind, rendered onto backend type B,
// consuming inner actions I and producing answers O. The keymap accessor is
// the configuration surface the driver consumes; everything else stays
// private to the prompt.
type session[B CommonBackend, I, O any] interface {
	message() string
	keymap() *KeyMap[I]
	handle(action I) (actionResult, error)
	render(backend B) error
	submit() (*O, error)
	formatAnswer(answer O) string
}

// runSession drives one prompt session to completion: render the current
// state, block for the next raw input event, map it to a semantic action,
// hand it to the state machine and branch on the result. On submission the
// validation pipeline runs; a Valid outcome formats and returns the answer,
// an Invalid one re-renders with the error populated and the loop resumes.
//
// The loop is strictly synchronous. The blocking read is the sole yield
// point, and cancellation is cooperative: both the abort keys and the
// context are observed between events, never asynchronously.
func runSession[B CommonBackend, I, O any](ctx context.Context, terminal terminalInterface, backend B, s session[B, I, O]) (O, error) {
	var zero O

	if err := terminal.SetRaw(); err != nil {
		return zero, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	restored := false
	defer func() {
		if !restored {
			if err := terminal.Restore(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to exit raw mode: %v\n", err)
			}
		}
	}()

	if err := renderFrame(backend, s); err != nil {
		return zero, err
	}

	events := &eventReader{terminal: terminal}
	for {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		ev, err := readEvent(events)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return zero, ErrEOF
			}
			return zero, fmt.Errorf("failed to read input: %w", err)
		}

		action, ok := s.keymap().Lookup(ev)
		if !ok {
			// Unrecognized input: no state change, no redraw
			continue
		}

		result := resultClean
		switch action.kind {
		case actionInterrupt:
			// Restore the terminal before printing ^C so the shell prompt
			// comes back in a sane state
			if err := terminal.Restore(); err == nil {
				restored = true
			}
			return zero, ErrInterrupted
		case actionCancel:
			return zero, ErrCanceled
		case actionSubmit:
			result = resultSubmit
		case actionInner:
			result, err = s.handle(action.inner)
			if err != nil {
				return zero, err
			}
		}

		switch result {
		case resultClean:
			continue
		case resultNeedsRedraw:
			if err := renderFrame(backend, s); err != nil {
				return zero, err
			}
		case resultSubmit:
			answer, err := s.submit()
			if err != nil {
				return zero, err
			}
			if answer == nil {
				// Validation failed; the prompt stored the message and the
				// next frame surfaces it
				if err := renderFrame(backend, s); err != nil {
					return zero, err
				}
				continue
			}
			if err := backend.RenderFinalAnswer(s.message(), s.formatAnswer(*answer)); err != nil {
				return zero, err
			}
			return *answer, nil
		}
	}
}

// renderFrame brackets one full redraw of the prompt.
func renderFrame[B CommonBackend, I, O any](backend B, s session[B, I, O]) error {
	if err := backend.BeginFrame(); err != nil {
		return err
	}
	if err := s.render(backend); err != nil {
		return err
	}
	return backend.EndFrame()
}

// eventReader reads runes from the terminal with one level of pushback, so
// the escape tokenizer can look at the rune after an ESC and hand it back
// when it turns out to be an independent keystroke.
type eventReader struct {
	terminal terminalInterface
	pending  []rune
}

func (er *eventReader) readRune() (rune, error) {
	if len(er.pending) > 0 {
		r := er.pending[0]
		er.pending = er.pending[1:]
		return r, nil
	}
	return er.terminal.ReadRune()
}

func (er *eventReader) unread(r rune) {
	er.pending = append(er.pending, r)
}

func (er *eventReader) buffered() bool {
	return len(er.pending) > 0 || er.terminal.Buffered()
}

// readEvent reads the next raw input event: a single rune, or an escape
// sequence reported without the leading ESC. An ESC with no pending input
// behind it is a lone ESC press and is reported as the plain ESC rune so
// keymaps can bind it; when input is pending but does not open a CSI or SS3
// sequence, the ESC is still reported alone and the pending rune becomes the
// next event instead of being swallowed.
func readEvent(events *eventReader) (keyEvent, error) {
	r, err := events.readRune()
	if err != nil {
		return keyEvent{}, err
	}
	if r != '\x1b' {
		return keyEvent{Rune: r}, nil
	}
	if !events.buffered() {
		return keyEvent{Rune: '\x1b'}, nil
	}
	seq, err := readEscapeSequence(events)
	if err != nil || seq == "" {
		return keyEvent{Rune: '\x1b'}, nil
	}
	return keyEvent{Seq: seq}, nil
}

// readEscapeSequence consumes the remainder of an escape sequence after the
// initial ESC. CSI sequences ("[" prefix) run until their final byte in the
// 0x40-0x7E range, which covers arrows ("[A"), modified arrows ("[1;5C"),
// and tilde-terminated keys ("[3~"). SS3 sequences ("O" prefix, F1-F4) are
// two runes long. Any other rune is not part of a sequence; it is pushed
// back for the next event and the empty result tells the caller the ESC was
// a plain key press.
func readEscapeSequence(events *eventReader) (string, error) {
	first, err := events.readRune()
	if err != nil {
		return "", err
	}
	if first == 'O' {
		r, err := events.readRune()
		if err != nil {
			return string(first), err
		}
		return string([]rune{first, r}), nil
	}
	if first != '[' {
		events.unread(first)
		return "", nil
	}

	seq := []rune{first}
	for i := 0; i < 10; i++ { // guard against malformed input
		r, err := events.readRune()
		if err != nil {
			return string(seq), err
		}
		seq = append(seq, r)
		if r >= 0x40 && r <= 0x7E { // CSI final byte
			return string(seq), nil
		}
	}
	return string(seq), nil
}
