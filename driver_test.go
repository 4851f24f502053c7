package inquire

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records every render call so tests can assert on what a
// session drew and in which order. Setting failOn makes the named method
// fail, simulating a rendering I/O error.
type fakeBackend struct {
	calls         []string
	frames        int
	errorMsgs     []string
	helpMsgs      []string
	details       []string
	calendars     []calendarCall
	selectPrompts [][2]string // message, filter
	optionPages   [][]string
	optionCursors []int
	finalMessage  string
	finalAnswer   string
	failOn        string
}

type calendarCall struct {
	month     time.Month
	year      int
	weekStart time.Weekday
	today     time.Time
	cursor    time.Time
	minDate   time.Time
	maxDate   time.Time
	marked    map[time.Time]DateInfo
}

func (f *fakeBackend) record(name string) error {
	f.calls = append(f.calls, name)
	if f.failOn == name {
		return errors.New("render failed")
	}
	return nil
}

func (f *fakeBackend) BeginFrame() error {
	f.frames++
	return f.record("BeginFrame")
}

func (f *fakeBackend) EndFrame() error {
	return f.record("EndFrame")
}

func (f *fakeBackend) RenderErrorMessage(msg string) error {
	f.errorMsgs = append(f.errorMsgs, msg)
	return f.record("RenderErrorMessage")
}

func (f *fakeBackend) RenderHelpMessage(text string) error {
	f.helpMsgs = append(f.helpMsgs, text)
	return f.record("RenderHelpMessage")
}

func (f *fakeBackend) RenderFinalAnswer(message, answer string) error {
	f.finalMessage = message
	f.finalAnswer = answer
	return f.record("RenderFinalAnswer")
}

func (f *fakeBackend) RenderCalendarPrompt(message string) error {
	return f.record("RenderCalendarPrompt")
}

func (f *fakeBackend) RenderCalendar(month time.Month, year int, weekStart time.Weekday, today, cursor, minDate, maxDate time.Time, marked map[time.Time]DateInfo) error {
	f.calendars = append(f.calendars, calendarCall{
		month:     month,
		year:      year,
		weekStart: weekStart,
		today:     today,
		cursor:    cursor,
		minDate:   minDate,
		maxDate:   maxDate,
		marked:    marked,
	})
	return f.record("RenderCalendar")
}

func (f *fakeBackend) RenderSelectionDetails(details string) error {
	f.details = append(f.details, details)
	return f.record("RenderSelectionDetails")
}

func (f *fakeBackend) RenderSelectPrompt(message, filter string) error {
	f.selectPrompts = append(f.selectPrompts, [2]string{message, filter})
	return f.record("RenderSelectPrompt")
}

func (f *fakeBackend) RenderOptions(options []string, cursor int) error {
	f.optionPages = append(f.optionPages, append([]string{}, options...))
	f.optionCursors = append(f.optionCursors, cursor)
	return f.record("RenderOptions")
}

// runDateSession drives a full date-selection session against scripted
// terminal input.
func runDateSession(t *testing.T, ds *DateSelect, input string) (DateOutput, *fakeBackend, *mockTerminal, error) {
	t.Helper()

	prompt, err := newDateSelectPrompt(ds)
	require.NoError(t, err, "prompt construction should succeed")

	terminal := newMockTerminal(input)
	backend := &fakeBackend{}
	out, err := runSession[DateSelectBackend, DateSelectAction, DateOutput](context.Background(), terminal, backend, prompt)
	return out, backend, terminal, err
}

func TestRunSessionSubmitsStartingDate(t *testing.T) {
	t.Parallel()

	ds := NewDateSelect("Pick a date")
	ds.StartingDate = Date(2023, time.June, 15)

	out, backend, terminal, err := runDateSession(t, ds, "\r")
	require.NoError(t, err)
	assert.Equal(t, Date(2023, time.June, 15), out.Date)
	assert.False(t, out.ToDelete)
	assert.Equal(t, "Pick a date", backend.finalMessage)
	assert.Equal(t, "2023-06-15", backend.finalAnswer)
	assert.Equal(t, 1, backend.frames, "only the initial frame should be drawn")
	assert.False(t, terminal.rawMode, "raw mode should be restored after the session")
}

func TestRunSessionNavigatesThenSubmits(t *testing.T) {
	t.Parallel()

	ds := NewDateSelect("Pick a date")
	ds.StartingDate = Date(2023, time.June, 15)

	out, backend, _, err := runDateSession(t, ds, "\x1b[C\r") // right arrow, enter
	require.NoError(t, err)
	assert.Equal(t, Date(2023, time.June, 16), out.Date)
	assert.Equal(t, 2, backend.frames, "navigation should trigger one redraw")

	last := backend.calendars[len(backend.calendars)-1]
	assert.Equal(t, Date(2023, time.June, 16), last.cursor)
}

func TestRunSessionIgnoresUnmappedKeys(t *testing.T) {
	t.Parallel()

	ds := NewDateSelect("Pick a date")
	ds.StartingDate = Date(2023, time.June, 15)

	out, backend, _, err := runDateSession(t, ds, "zx\r")
	require.NoError(t, err)
	assert.Equal(t, Date(2023, time.June, 15), out.Date)
	assert.Equal(t, 1, backend.frames, "unrecognized input must not redraw")
}

func TestRunSessionInterrupt(t *testing.T) {
	t.Parallel()

	ds := NewDateSelect("Pick a date")
	_, _, terminal, err := runDateSession(t, ds, "\x03")
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.False(t, terminal.rawMode, "raw mode should be restored on interrupt")
}

func TestRunSessionCancelOnEscape(t *testing.T) {
	t.Parallel()

	ds := NewDateSelect("Pick a date")
	_, _, _, err := runDateSession(t, ds, "\x1b")
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestRunSessionCancelWhileConfirmationPending(t *testing.T) {
	t.Parallel()

	ds := NewDateSelect("Pick a date")
	ds.StartingDate = Date(2023, time.June, 15)
	ds.MarkedDates = map[time.Time]DateInfo{
		Date(2023, time.June, 15): {Deletable: true, Details: "2 entries"},
	}

	_, _, _, err := runDateSession(t, ds, "d\x1b")
	assert.ErrorIs(t, err, ErrCanceled, "abort must work even while the dialog is pending")
}

func TestRunSessionEscapeCancelsAheadOfFurtherInput(t *testing.T) {
	t.Parallel()

	ds := NewDateSelect("Pick a date")
	ds.StartingDate = Date(2023, time.June, 15)
	ds.MarkedDates = map[time.Time]DateInfo{
		Date(2023, time.June, 15): {Deletable: true},
	}

	// The ESC must cancel even with more keystrokes behind it; the 'y' here
	// must not be absorbed into a bogus escape sequence
	_, _, _, err := runDateSession(t, ds, "d\x1by")
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestRunSessionDoubleEscapeCancels(t *testing.T) {
	t.Parallel()

	ds := NewDateSelect("Pick a date")
	_, _, _, err := runDateSession(t, ds, "\x1b\x1b")
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestRunSessionEOF(t *testing.T) {
	t.Parallel()

	ds := NewDateSelect("Pick a date")
	_, _, _, err := runDateSession(t, ds, "")
	assert.ErrorIs(t, err, ErrEOF)
}

func TestRunSessionContextCanceled(t *testing.T) {
	t.Parallel()

	prompt, err := newDateSelectPrompt(NewDateSelect("Pick a date"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = runSession[DateSelectBackend, DateSelectAction, DateOutput](ctx, newMockTerminal("\r"), &fakeBackend{}, prompt)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunSessionValidationFailureResumesLoop(t *testing.T) {
	t.Parallel()

	rejected := Date(2023, time.June, 15)
	ds := NewDateSelect("Pick a date")
	ds.StartingDate = rejected
	ds.Validators = []DateValidator{
		func(d time.Time) (Validation, error) {
			if d.Equal(rejected) {
				return Invalid("that day is fully booked"), nil
			}
			return Valid(), nil
		},
	}

	// Submit the rejected date, move right, submit again
	out, backend, _, err := runDateSession(t, ds, "\r\x1b[C\r")
	require.NoError(t, err)
	assert.Equal(t, Date(2023, time.June, 16), out.Date)
	assert.Contains(t, backend.errorMsgs, "that day is fully booked")
}

func TestRunSessionCustomValidatorErrorAborts(t *testing.T) {
	t.Parallel()

	boom := errors.New("backend unavailable")
	ds := NewDateSelect("Pick a date")
	ds.Validators = []DateValidator{
		func(time.Time) (Validation, error) { return Validation{}, boom },
	}

	_, _, terminal, err := runDateSession(t, ds, "\r")
	assert.ErrorIs(t, err, boom, "the validator's error must be preserved")
	assert.False(t, terminal.rawMode)
}

func TestRunSessionDeleteConfirmFlow(t *testing.T) {
	t.Parallel()

	marked := Date(2023, time.June, 15)
	ds := NewDateSelect("Pick a date")
	ds.StartingDate = marked
	ds.MarkedDates = map[time.Time]DateInfo{
		marked: {Deletable: true, Details: "3 entries"},
	}

	out, backend, _, err := runDateSession(t, ds, "dy")
	require.NoError(t, err)
	assert.True(t, out.ToDelete)
	assert.Equal(t, marked, out.Date)

	require.NotEmpty(t, backend.errorMsgs, "the confirmation question renders through the error banner")
	assert.Contains(t, backend.errorMsgs[0], "2023-06-15")
	assert.Contains(t, backend.errorMsgs[0], "[y/n]")
}

func TestRunSessionDeleteCancelFlow(t *testing.T) {
	t.Parallel()

	marked := Date(2023, time.June, 15)
	ds := NewDateSelect("Pick a date")
	ds.StartingDate = marked
	ds.MarkedDates = map[time.Time]DateInfo{
		marked: {Deletable: true},
	}

	out, backend, _, err := runDateSession(t, ds, "dn\r")
	require.NoError(t, err)
	assert.False(t, out.ToDelete, "canceling the dialog must not carry delete intent")
	assert.Equal(t, marked, out.Date)

	// The frame drawn after the cancel must not show the confirmation again
	last := backend.calendars[len(backend.calendars)-1]
	assert.Equal(t, marked, last.cursor)
	assert.Len(t, backend.errorMsgs, 1, "no residual error after cancel")
}

func TestRunSessionPendingDialogSwallowsNavigation(t *testing.T) {
	t.Parallel()

	marked := Date(2023, time.June, 15)
	ds := NewDateSelect("Pick a date")
	ds.StartingDate = marked
	ds.MarkedDates = map[time.Time]DateInfo{
		marked: {Deletable: true},
	}

	// Arrow keys while pending are ignored; Enter does not answer the
	// dialog either; only 'y' completes it
	out, _, _, err := runDateSession(t, ds, "d\x1b[C\x1b[B\ry")
	require.NoError(t, err)
	assert.True(t, out.ToDelete)
	assert.Equal(t, marked, out.Date, "navigation while pending must not move the cursor")
}

func TestRunSessionRenderFailureAborts(t *testing.T) {
	t.Parallel()

	prompt, err := newDateSelectPrompt(NewDateSelect("Pick a date"))
	require.NoError(t, err)

	backend := &fakeBackend{failOn: "RenderCalendar"}
	terminal := newMockTerminal("\r")
	_, err = runSession[DateSelectBackend, DateSelectAction, DateOutput](context.Background(), terminal, backend, prompt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render failed")
	assert.False(t, terminal.rawMode, "raw mode should be restored on render failure")
}

func TestRunSessionSelectEndToEnd(t *testing.T) {
	t.Parallel()

	sel := NewSelect("What's your favorite fruit?", []string{"Banana", "Apple", "Strawberry"})
	prompt, err := newSelectPrompt(sel)
	require.NoError(t, err)

	backend := &fakeBackend{}
	// Filter down to Strawberry, then submit
	out, err := runSession[SelectBackend, selectAction, SelectOutput](context.Background(), newMockTerminal("str\r"), backend, prompt)
	require.NoError(t, err)
	assert.Equal(t, SelectOutput{Index: 2, Value: "Strawberry"}, out)
	assert.Equal(t, "Strawberry", backend.finalAnswer)

	last := backend.selectPrompts[len(backend.selectPrompts)-1]
	assert.Equal(t, "str", last[1], "typed filter should reach the backend")
}

func TestRunSessionSelectArrowNavigation(t *testing.T) {
	t.Parallel()

	sel := NewSelect("Pick one", []string{"alpha", "beta", "gamma"})
	prompt, err := newSelectPrompt(sel)
	require.NoError(t, err)

	out, err := runSession[SelectBackend, selectAction, SelectOutput](context.Background(), newMockTerminal("\x1b[B\x1b[B\r"), &fakeBackend{}, prompt)
	require.NoError(t, err)
	assert.Equal(t, "gamma", out.Value)
}

func TestReadEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  keyEvent
	}{
		{name: "plain rune", input: "a", want: keyEvent{Rune: 'a'}},
		{name: "arrow key", input: "\x1b[C", want: keyEvent{Seq: "[C"}},
		{name: "modified arrow", input: "\x1b[1;5C", want: keyEvent{Seq: "[1;5C"}},
		{name: "tilde terminated", input: "\x1b[3~", want: keyEvent{Seq: "[3~"}},
		{name: "ss3 function key", input: "\x1bOP", want: keyEvent{Seq: "OP"}},
		{name: "lone escape", input: "\x1b", want: keyEvent{Rune: '\x1b'}},
		{name: "escape before a plain key", input: "\x1by", want: keyEvent{Rune: '\x1b'}},
		{name: "escape before another escape", input: "\x1b\x1b", want: keyEvent{Rune: '\x1b'}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ev, err := readEvent(&eventReader{terminal: newMockTerminal(tt.input)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
		})
	}
}

func TestReadEventKeepsRuneAfterLoneEscape(t *testing.T) {
	t.Parallel()

	// The rune pressed after a lone ESC must become the next event instead
	// of being swallowed into a bogus sequence
	events := &eventReader{terminal: newMockTerminal("\x1by\x1b[C")}

	ev, err := readEvent(events)
	require.NoError(t, err)
	assert.Equal(t, keyEvent{Rune: '\x1b'}, ev)

	ev, err = readEvent(events)
	require.NoError(t, err)
	assert.Equal(t, keyEvent{Rune: 'y'}, ev)

	ev, err = readEvent(events)
	require.NoError(t, err)
	assert.Equal(t, keyEvent{Seq: "[C"}, ev)
}
