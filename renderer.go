package inquire

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-runewidth"
)

// newDefaultOutput returns the standard output writer, wrapped for ANSI
// color support on Windows.
func newDefaultOutput() io.Writer {
	if runtime.GOOS == "windows" {
		return colorable.NewColorableStdout()
	}
	return os.Stdout
}

// consoleBackend renders prompts to a terminal with ANSI escape sequences.
//
// It implements both DateSelectBackend and SelectBackend. Frames are drawn
// top to bottom one line at a time; the backend counts the lines it writes
// so BeginFrame can move the cursor back to the top of the previous frame
// and clear it before the next one is drawn. This keeps redraws in place
// instead of scrolling the terminal.
type consoleBackend struct {
	output io.Writer
	scheme *ColorScheme
	width  int // Terminal width for truncating long lines

	lines     int // Lines written in the current frame
	lastLines int // Lines written in the previous frame
	cursorOff bool
}

func newConsoleBackend(output io.Writer, scheme *ColorScheme, width int) *consoleBackend {
	if scheme == nil {
		scheme = ThemeDefault
	}
	if width <= 0 {
		width = 80
	}
	return &consoleBackend{
		output: output,
		scheme: scheme,
		width:  width,
	}
}

// BeginFrame clears the previous frame and prepares for a full redraw.
func (b *consoleBackend) BeginFrame() error {
	if !b.cursorOff {
		if _, err := fmt.Fprint(b.output, "\x1b[?25l"); err != nil {
			return err
		}
		b.cursorOff = true
	}
	return b.clearFrame()
}

// EndFrame records how many lines this frame used.
func (b *consoleBackend) EndFrame() error {
	b.lastLines = b.lines
	return nil
}

func (b *consoleBackend) clearFrame() error {
	if b.lastLines > 0 {
		if _, err := fmt.Fprintf(b.output, "\x1b[%dA", b.lastLines); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(b.output, "\r\x1b[J"); err != nil {
		return err
	}
	b.lines = 0
	return nil
}

// writeLine writes one colored line of the current frame.
func (b *consoleBackend) writeLine(color Color, text string) error {
	if _, err := fmt.Fprint(b.output, color.ToANSI(), text, Reset(), "\r\n"); err != nil {
		return err
	}
	b.lines++
	return nil
}

func (b *consoleBackend) RenderErrorMessage(msg string) error {
	return b.writeLine(b.scheme.Error, "✗ "+runewidth.Truncate(msg, b.width-2, "…"))
}

func (b *consoleBackend) RenderHelpMessage(text string) error {
	return b.writeLine(b.scheme.Help, "["+runewidth.Truncate(text, b.width-2, "…")+"]")
}

// RenderFinalAnswer replaces the whole prompt frame with the one-line
// "? message answer" summary and restores the terminal cursor.
func (b *consoleBackend) RenderFinalAnswer(message, answer string) error {
	if err := b.clearFrame(); err != nil {
		return err
	}
	if _, err := fmt.Fprint(b.output,
		b.scheme.Prompt.ToANSI(), "? ", Reset(),
		message, " ",
		b.scheme.Answer.ToANSI(), answer, Reset(),
		"\r\n"); err != nil {
		return err
	}
	if b.cursorOff {
		if _, err := fmt.Fprint(b.output, "\x1b[?25h"); err != nil {
			return err
		}
		b.cursorOff = false
	}
	b.lastLines = 0
	return nil
}

func (b *consoleBackend) RenderCalendarPrompt(message string) error {
	if _, err := fmt.Fprint(b.output,
		b.scheme.Prompt.ToANSI(), "? ", Reset(),
		runewidth.Truncate(message, b.width-2, "…"),
		"\r\n"); err != nil {
		return err
	}
	b.lines++
	return nil
}

// calendarWidth is the printed width of the grid: seven two-digit cells with
// single-column separators.
const calendarWidth = 7*3 - 1

// RenderCalendar draws one month: a centered "Month Year" title, a weekday
// header starting at the configured week start, and one row per week. The
// cursor date is shown in inverse video, today and marked dates in their
// scheme colors, and days outside the month or the configured bounds dimmed.
// The separator after a marked date carries its annotation glyph.
func (b *consoleBackend) RenderCalendar(month time.Month, year int, weekStart time.Weekday, todayDate, cursor, minDate, maxDate time.Time, marked map[time.Time]DateInfo) error {
	title := fmt.Sprintf("%s %d", month, year)
	pad := (calendarWidth - runewidth.StringWidth(title)) / 2
	if pad < 0 {
		pad = 0
	}
	if err := b.writeLine(b.scheme.Header, strings.Repeat(" ", pad)+title); err != nil {
		return err
	}

	var header strings.Builder
	for i, day := range weekdaysFrom(weekStart) {
		if i > 0 {
			header.WriteByte(' ')
		}
		header.WriteString(day.String()[:2])
	}
	if err := b.writeLine(b.scheme.Header, header.String()); err != nil {
		return err
	}

	// Roll back from the first of the month to the nearest week start
	first := Date(year, month, 1)
	last := Date(year, month, daysInMonth(month, year))
	day := first.AddDate(0, 0, -((int(first.Weekday())-int(weekStart))+7)%7)

	for !day.After(last) {
		var row strings.Builder
		for i := 0; i < 7; i++ {
			row.WriteString(b.formatDayCell(day, month, todayDate, cursor, minDate, maxDate, marked))
			row.WriteString(b.formatDaySeparator(day, marked))
			day = day.AddDate(0, 0, 1)
		}
		if _, err := fmt.Fprint(b.output, strings.TrimRight(row.String(), " "), "\r\n"); err != nil {
			return err
		}
		b.lines++
	}

	return nil
}

func (b *consoleBackend) formatDayCell(day time.Time, month time.Month, todayDate, cursor, minDate, maxDate time.Time, marked map[time.Time]DateInfo) string {
	cell := fmt.Sprintf("%2d", day.Day())
	_, isMarked := marked[day]

	switch {
	case day.Equal(cursor):
		// Inverse video so the cursor stands out regardless of theme
		return b.scheme.Selected.ToANSI() + "\x1b[7m" + cell + Reset()
	case day.Month() != month,
		!minDate.IsZero() && day.Before(minDate),
		!maxDate.IsZero() && day.After(maxDate):
		return b.scheme.Disabled.ToANSI() + cell + Reset()
	case isMarked:
		return b.scheme.Marked.ToANSI() + cell + Reset()
	case day.Equal(todayDate):
		return b.scheme.Today.ToANSI() + cell + Reset()
	default:
		return b.scheme.Day.ToANSI() + cell + Reset()
	}
}

// formatDaySeparator renders the column between day cells: an annotation
// glyph when the preceding date is marked, a plain space otherwise.
func (b *consoleBackend) formatDaySeparator(day time.Time, marked map[time.Time]DateInfo) string {
	if _, ok := marked[day]; ok {
		return b.scheme.Marked.ToANSI() + "*" + Reset()
	}
	return " "
}

func (b *consoleBackend) RenderSelectionDetails(details string) error {
	return b.writeLine(b.scheme.Marked, runewidth.Truncate(details, b.width, "…"))
}

func (b *consoleBackend) RenderSelectPrompt(message, filter string) error {
	if _, err := fmt.Fprint(b.output,
		b.scheme.Prompt.ToANSI(), "? ", Reset(),
		runewidth.Truncate(message, b.width-2, "…")); err != nil {
		return err
	}
	if filter != "" {
		if _, err := fmt.Fprint(b.output, " ", b.scheme.Selected.ToANSI(), filter, Reset()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(b.output, "\r\n"); err != nil {
		return err
	}
	b.lines++
	return nil
}

func (b *consoleBackend) RenderOptions(options []string, cursor int) error {
	for i, option := range options {
		label := runewidth.Truncate(option, b.width-2, "…")
		if i == cursor {
			if err := b.writeLine(b.scheme.Selected, "▶ "+label); err != nil {
				return err
			}
			continue
		}
		if err := b.writeLine(b.scheme.Day, "  "+label); err != nil {
			return err
		}
	}
	return nil
}
