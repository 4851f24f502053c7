package inquire

import (
	"os"

	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// terminalInterface abstracts raw terminal input for the driver loop.
//
// The real implementation uses go-tty for cross-platform input and
// golang.org/x/term for raw mode state management. Tests use mockTerminal,
// which replays a scripted rune sequence, so full prompt sessions can be
// driven deterministically without a TTY.
//
// Raw mode is scoped to one prompt session: the driver enters it at session
// start and restores the original state on every exit path, whether the
// session ends by submission, cancellation, or error.
type terminalInterface interface {
	SetRaw() error                        // Enter raw mode for immediate key processing
	Restore() error                       // Restore the terminal state captured by SetRaw
	Size() (width, height int, err error) // Terminal dimensions with safe fallbacks
	ReadRune() (rune, error)              // Blocking read of a single rune
	Buffered() bool                       // Whether input is pending without blocking
	Close() error                         // Release the TTY
}

type realTerminal struct {
	tty           *tty.TTY
	closed        bool // go-tty panics on double close on Windows
	stdinFd       int
	originalState *term.State
}

func newRealTerminal() (*realTerminal, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}
	return &realTerminal{
		tty:     t,
		stdinFd: int(os.Stdin.Fd()),
	}, nil
}

func (t *realTerminal) SetRaw() error {
	// Capture the current state every time so Restore always has a fresh
	// baseline, no matter how often the session enters and leaves raw mode.
	if term.IsTerminal(t.stdinFd) {
		state, err := term.GetState(t.stdinFd)
		if err != nil {
			return err
		}
		t.originalState = state

		if _, err := term.MakeRaw(t.stdinFd); err != nil {
			return err
		}
	}
	return nil
}

func (t *realTerminal) Restore() error {
	if t.originalState != nil && term.IsTerminal(t.stdinFd) {
		err := term.Restore(t.stdinFd, t.originalState)
		t.originalState = nil
		return err
	}
	return nil
}

func (t *realTerminal) Size() (width, height int, err error) {
	w, h, err := t.tty.Size()
	if err != nil || w <= 0 || h <= 0 {
		// Safe fallback so layout math never divides by zero
		return 80, 24, err
	}
	return w, h, nil
}

func (t *realTerminal) ReadRune() (rune, error) {
	return t.tty.ReadRune()
}

func (t *realTerminal) Buffered() bool {
	return t.tty.Buffered()
}

func (t *realTerminal) Close() error {
	if t.closed {
		return nil
	}
	if t.tty != nil {
		err := t.tty.Close()
		t.closed = true
		return err
	}
	return nil
}
