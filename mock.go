package inquire

import "io"

// mockTerminal implements terminalInterface for tests.
//
// It replays a pre-configured rune sequence and tracks raw mode state, which
// lets tests drive complete prompt sessions (navigation, sub-dialogs,
// submission) deterministically and without a TTY. When the scripted input
// runs out, ReadRune returns io.EOF.
type mockTerminal struct {
	input        []rune
	inputPos     int
	rawMode      bool
	terminalSize [2]int // [width, height]
}

func newMockTerminal(input string) *mockTerminal {
	return &mockTerminal{
		input:        []rune(input),
		terminalSize: [2]int{80, 24},
	}
}

func (m *mockTerminal) SetRaw() error {
	m.rawMode = true
	return nil
}

func (m *mockTerminal) Restore() error {
	m.rawMode = false
	return nil
}

func (m *mockTerminal) Size() (width, height int, err error) {
	return m.terminalSize[0], m.terminalSize[1], nil
}

func (m *mockTerminal) ReadRune() (rune, error) {
	if m.inputPos >= len(m.input) {
		return 0, io.EOF
	}
	r := m.input[m.inputPos]
	m.inputPos++
	return r, nil
}

func (m *mockTerminal) Buffered() bool {
	return m.inputPos < len(m.input)
}

func (m *mockTerminal) Close() error {
	return nil
}
