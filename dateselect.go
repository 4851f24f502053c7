package inquire

import (
	"context"
	"fmt"
	"time"
)

// DateSelectAction is the closed set of semantic actions understood by the
// date-selection prompt. Submission and abort are uniform across prompt
// types and handled at the driver level.
type DateSelectAction int

// Date-selection actions
const (
	GoToPrevDay DateSelectAction = iota
	GoToNextDay
	GoToPrevWeek
	GoToNextWeek
	GoToPrevMonth
	GoToNextMonth
	GoToPrevYear
	GoToNextYear
	RequestDelete
	ConfirmDelete
	CancelDelete
)

// DateInfo annotates a marked date in the index handed to a date-selection
// prompt. Only dates whose annotation is deletable may enter the
// delete-confirmation sub-flow.
type DateInfo struct {
	Deletable bool
	Details   string // Free-form detail text shown when the cursor is on the date
}

// DateOutput is the answer produced by a date-selection prompt: the chosen
// date plus whether the user confirmed deletion of its marked entry.
type DateOutput struct {
	Date     time.Time
	ToDelete bool
}

// DateFormatter converts a chosen date to its display string.
type DateFormatter func(date time.Time) string

// DefaultDateFormatter formats dates as "2006-01-02".
func DefaultDateFormatter(date time.Time) string {
	return date.Format(time.DateOnly)
}

// DateSelect is the configuration for an interactive calendar prompt.
//
// Construct it with NewDateSelect, adjust fields as needed, then call Run:
//
//	ds := inquire.NewDateSelect("When is the appointment?")
//	ds.MinDate = inquire.Date(2023, time.January, 1)
//	ds.MaxDate = inquire.Date(2023, time.December, 31)
//	answer, err := ds.Run()
//
// The configuration is borrowed for the lifetime of one prompt session and
// never mutated by it. MinDate and MaxDate use the zero time.Time as
// "unbounded". MarkedDates is an externally-owned, read-only index keyed by
// normalized dates (see Date).
type DateSelect struct {
	Message      string
	HelpMessage  string
	StartingDate time.Time
	MinDate      time.Time
	MaxDate      time.Time
	WeekStart    time.Weekday
	Formatter    DateFormatter
	Validators   []DateValidator
	MarkedDates  map[time.Time]DateInfo
	VimMode      bool                      // h/j/k/l navigation in addition to arrows
	KeyMap       *KeyMap[DateSelectAction] // nil for the default keymap
}

// NewDateSelect creates a date-selection prompt configuration with defaults:
// starting at today, weeks beginning on Sunday, dates formatted as
// "2006-01-02".
func NewDateSelect(message string) *DateSelect {
	return &DateSelect{
		Message:      message,
		StartingDate: today(),
		WeekStart:    time.Sunday,
		Formatter:    DefaultDateFormatter,
	}
}

// Run starts the interactive prompt on the real terminal and blocks until
// the user submits a valid date or aborts.
func (ds *DateSelect) Run() (DateOutput, error) {
	return ds.RunWithContext(context.Background())
}

// RunWithContext is Run with context support; the session ends with the
// context's error when the context is done.
func (ds *DateSelect) RunWithContext(ctx context.Context) (DateOutput, error) {
	prompt, err := newDateSelectPrompt(ds)
	if err != nil {
		return DateOutput{}, err
	}

	terminal, err := newRealTerminal()
	if err != nil {
		return DateOutput{}, fmt.Errorf("failed to open terminal: %w", err)
	}
	defer terminal.Close()

	width, _, _ := terminal.Size()
	backend := newConsoleBackend(newDefaultOutput(), ThemeDefault, width)
	return runSession[DateSelectBackend, DateSelectAction, DateOutput](ctx, terminal, backend, prompt)
}

// newDateSelectKeyMap builds the default date-selection keymap. Arrow keys
// move by day and week, Shift+arrows and PageUp/PageDown by month,
// Ctrl+arrows by year. 'd' or Delete requests deletion of a marked date;
// 'y' and 'n' answer the confirmation dialog.
func newDateSelectKeyMap(vimMode bool) *KeyMap[DateSelectAction] {
	km := NewKeyMap[DateSelectAction]()

	km.Bind('\r', Submit[DateSelectAction]())
	km.Bind('\n', Submit[DateSelectAction]())
	km.Bind('\x03', Interrupt[DateSelectAction]()) // Ctrl+C
	km.Bind('\x1b', Cancel[DateSelectAction]())    // Escape
	km.Bind('d', Inner(RequestDelete))
	km.Bind('y', Inner(ConfirmDelete))
	km.Bind('n', Inner(CancelDelete))

	km.BindSequence("[D", Inner(GoToPrevDay))
	km.BindSequence("[C", Inner(GoToNextDay))
	km.BindSequence("[A", Inner(GoToPrevWeek))
	km.BindSequence("[B", Inner(GoToNextWeek))
	km.BindSequence("[5~", Inner(GoToPrevMonth))   // Page Up
	km.BindSequence("[6~", Inner(GoToNextMonth))   // Page Down
	km.BindSequence("[1;2D", Inner(GoToPrevMonth)) // Shift+Left
	km.BindSequence("[1;2C", Inner(GoToNextMonth)) // Shift+Right
	km.BindSequence("[1;5D", Inner(GoToPrevYear))  // Ctrl+Left
	km.BindSequence("[1;5C", Inner(GoToNextYear))  // Ctrl+Right
	km.BindSequence("[3~", Inner(RequestDelete))   // Delete

	if vimMode {
		km.Bind('h', Inner(GoToPrevDay))
		km.Bind('l', Inner(GoToNextDay))
		km.Bind('k', Inner(GoToPrevWeek))
		km.Bind('j', Inner(GoToNextWeek))
	}

	return km
}

// dateSelectPrompt is the per-session state machine behind a DateSelect
// configuration. It owns its mutable state exclusively; the marked-date
// index and validator list are read-only views borrowed from the caller.
type dateSelectPrompt struct {
	msg        string
	help       string
	keys       *KeyMap[DateSelectAction]
	formatter  DateFormatter
	validators []DateValidator
	marked     map[time.Time]DateInfo
	weekStart  time.Weekday
	minDate    time.Time // zero when unbounded
	maxDate    time.Time

	currentDate       time.Time
	errMsg            string
	deletionRequested bool
	toDelete          bool
}

// newDateSelectPrompt validates the configuration and creates the session
// state. A starting date outside declared bounds, or min above max, is a
// configuration error: the session fails fast here, before any rendering,
// and is never silently clamped into range.
func newDateSelectPrompt(ds *DateSelect) (*dateSelectPrompt, error) {
	starting := normalizeDate(ds.StartingDate)
	if ds.StartingDate.IsZero() {
		starting = today()
	}

	var minDate, maxDate time.Time
	if !ds.MinDate.IsZero() {
		minDate = normalizeDate(ds.MinDate)
	}
	if !ds.MaxDate.IsZero() {
		maxDate = normalizeDate(ds.MaxDate)
	}

	if !minDate.IsZero() && !maxDate.IsZero() && minDate.After(maxDate) {
		return nil, fmt.Errorf("%w: min date can not be greater than max date", ErrInvalidConfiguration)
	}
	if !minDate.IsZero() && minDate.After(starting) {
		return nil, fmt.Errorf("%w: min date can not be greater than starting date", ErrInvalidConfiguration)
	}
	if !maxDate.IsZero() && maxDate.Before(starting) {
		return nil, fmt.Errorf("%w: max date can not be smaller than starting date", ErrInvalidConfiguration)
	}

	formatter := ds.Formatter
	if formatter == nil {
		formatter = DefaultDateFormatter
	}
	keys := ds.KeyMap
	if keys == nil {
		keys = newDateSelectKeyMap(ds.VimMode)
	}
	weekStart := ds.WeekStart
	if weekStart < time.Sunday || weekStart > time.Saturday {
		return nil, fmt.Errorf("%w: week start %d is not a weekday", ErrInvalidConfiguration, weekStart)
	}

	return &dateSelectPrompt{
		msg:         ds.Message,
		help:        ds.HelpMessage,
		keys:        keys,
		formatter:   formatter,
		validators:  ds.Validators,
		marked:      ds.MarkedDates,
		weekStart:   weekStart,
		minDate:     minDate,
		maxDate:     maxDate,
		currentDate: starting,
	}, nil
}

func (p *dateSelectPrompt) message() string {
	return p.msg
}

func (p *dateSelectPrompt) keymap() *KeyMap[DateSelectAction] {
	return p.keys
}

func (p *dateSelectPrompt) formatAnswer(answer DateOutput) string {
	return p.formatter(answer.Date)
}

func (p *dateSelectPrompt) handle(action DateSelectAction) (actionResult, error) {
	if p.deletionRequested {
		// While the confirmation dialog is pending only these two actions
		// are honored; everything else leaves the state untouched
		switch action {
		case ConfirmDelete:
			p.deletionRequested = false
			p.toDelete = true
			p.errMsg = ""
			return resultSubmit, nil
		case CancelDelete:
			p.deletionRequested = false
			p.errMsg = ""
			return resultNeedsRedraw, nil
		default:
			return resultClean, nil
		}
	}

	switch action {
	case GoToPrevDay:
		return p.shiftDays(-1), nil
	case GoToNextDay:
		return p.shiftDays(1), nil
	case GoToPrevWeek:
		return p.shiftDays(-7), nil
	case GoToNextWeek:
		return p.shiftDays(7), nil
	case GoToPrevMonth:
		return p.shiftByMonths(-1), nil
	case GoToNextMonth:
		return p.shiftByMonths(1), nil
	case GoToPrevYear:
		return p.shiftByMonths(-12), nil
	case GoToNextYear:
		return p.shiftByMonths(12), nil
	case RequestDelete:
		return p.requestDeletion(), nil
	default:
		return resultClean, nil
	}
}

func (p *dateSelectPrompt) shiftDays(qty int) actionResult {
	return p.updateDate(p.currentDate.AddDate(0, 0, qty))
}

func (p *dateSelectPrompt) shiftByMonths(qty int) actionResult {
	next, ok := shiftMonths(p.currentDate, qty)
	if !ok {
		// No valid calendar date in the target month, e.g. day 31 shifted
		// into a 30-day month
		return resultClean
	}
	return p.updateDate(next)
}

// updateDate moves the cursor, clamping into [minDate, maxDate] strictly
// after the arithmetic so out-of-range steps land on the nearest bound.
func (p *dateSelectPrompt) updateDate(next time.Time) actionResult {
	if next.Equal(p.currentDate) {
		return resultClean
	}

	p.currentDate = next
	if !p.minDate.IsZero() && p.currentDate.Before(p.minDate) {
		p.currentDate = p.minDate
	}
	if !p.maxDate.IsZero() && p.currentDate.After(p.maxDate) {
		p.currentDate = p.maxDate
	}
	return resultNeedsRedraw
}

// requestDeletion opens the confirmation sub-dialog, but only when the
// cursor date is present in the marked index and its annotation is
// deletable. Anything else is a no-op with no visible change.
func (p *dateSelectPrompt) requestDeletion() actionResult {
	info, ok := p.marked[p.currentDate]
	if !ok || !info.Deletable {
		return resultClean
	}

	p.deletionRequested = true
	p.errMsg = fmt.Sprintf("Are you sure you want to delete logs for date: %s? [y/n]", p.currentDate.Format(time.DateOnly))
	return resultNeedsRedraw
}

func (p *dateSelectPrompt) submit() (*DateOutput, error) {
	if p.deletionRequested {
		// Enter does not answer the confirmation dialog
		return nil, nil
	}

	result, err := runValidators(p.currentDate, p.validators)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		p.errMsg = result.Message
		return nil, nil
	}

	return &DateOutput{Date: p.currentDate, ToDelete: p.toDelete}, nil
}

func (p *dateSelectPrompt) render(backend DateSelectBackend) error {
	if p.errMsg != "" {
		if err := backend.RenderErrorMessage(p.errMsg); err != nil {
			return err
		}
	}

	if err := backend.RenderCalendarPrompt(p.msg); err != nil {
		return err
	}

	if err := backend.RenderCalendar(
		p.currentDate.Month(),
		p.currentDate.Year(),
		p.weekStart,
		today(),
		p.currentDate,
		p.minDate,
		p.maxDate,
		p.marked,
	); err != nil {
		return err
	}

	if p.help != "" {
		if err := backend.RenderHelpMessage(p.help); err != nil {
			return err
		}
	}

	if info, ok := p.marked[p.currentDate]; ok {
		if err := backend.RenderSelectionDetails(info.Details); err != nil {
			return err
		}
	}

	return nil
}
