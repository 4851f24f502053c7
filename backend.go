package inquire

import "time"

// CommonBackend is the rendering surface shared by every prompt type.
//
// Backends are owned by the caller of the driver loop, not by the prompt
// state machines: prompts describe what to draw through these methods and the
// backend decides how. Every method may fail with an I/O error, which aborts
// the session immediately; rendering failures are never retried.
//
// BeginFrame and EndFrame bracket one full redraw. The console backend uses
// them to clear the previous frame and to track how many lines it wrote.
type CommonBackend interface {
	BeginFrame() error
	EndFrame() error
	RenderErrorMessage(msg string) error
	RenderHelpMessage(text string) error
	// RenderFinalAnswer replaces the prompt with the formatted answer once a
	// submission passed validation.
	RenderFinalAnswer(message, answer string) error
}

// DateSelectBackend is the rendering surface consumed by the date-selection
// prompt.
type DateSelectBackend interface {
	CommonBackend
	RenderCalendarPrompt(message string) error
	// RenderCalendar draws one month of the calendar grid. minDate and
	// maxDate use the zero time.Time as "unbounded". marked may be nil.
	RenderCalendar(month time.Month, year int, weekStart time.Weekday, today, cursor, minDate, maxDate time.Time, marked map[time.Time]DateInfo) error
	// RenderSelectionDetails shows the free-form annotation text of the date
	// under the cursor.
	RenderSelectionDetails(details string) error
}

// SelectBackend is the rendering surface consumed by the list-selection
// prompt.
type SelectBackend interface {
	CommonBackend
	RenderSelectPrompt(message, filter string) error
	// RenderOptions draws one page of options; cursor is the index of the
	// highlighted option within the page.
	RenderOptions(options []string, cursor int) error
}
