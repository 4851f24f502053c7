package inquire

import (
	"fmt"
	"strings"
)

// ColorScheme defines the colors the console backend uses for the prompt
// line, the calendar grid, and the option list.
type ColorScheme struct {
	Name     string `json:"name"`
	Prompt   Color  `json:"prompt"`   // Prompt message
	Error    Color  `json:"error"`    // Inline error banner
	Help     Color  `json:"help"`     // Help text
	Header   Color  `json:"header"`   // Month/year title and weekday header
	Day      Color  `json:"day"`      // Ordinary day cells and options
	Today    Color  `json:"today"`    // Today's date
	Selected Color  `json:"selected"` // Cursor date / highlighted option
	Marked   Color  `json:"marked"`   // Annotated dates
	Disabled Color  `json:"disabled"` // Dates outside the configured bounds
	Answer   Color  `json:"answer"`   // Final formatted answer
}

// Color represents an RGB color with optional bold formatting.
type Color struct {
	R    uint8 `json:"r"`
	G    uint8 `json:"g"`
	B    uint8 `json:"b"`
	Bold bool  `json:"bold"`
}

// ThemeDefault is the default color scheme with a green prompt and white text
var ThemeDefault = &ColorScheme{
	Name:     "default",
	Prompt:   Color{R: 0, G: 255, B: 0, Bold: true},
	Error:    Color{R: 255, G: 85, B: 85, Bold: true},
	Help:     Color{R: 128, G: 128, B: 128, Bold: false},
	Header:   Color{R: 255, G: 255, B: 255, Bold: true},
	Day:      Color{R: 200, G: 200, B: 200, Bold: false},
	Today:    Color{R: 0, G: 255, B: 255, Bold: false},
	Selected: Color{R: 0, G: 255, B: 255, Bold: true},
	Marked:   Color{R: 255, G: 255, B: 0, Bold: false},
	Disabled: Color{R: 100, G: 100, B: 100, Bold: false},
	Answer:   Color{R: 0, G: 255, B: 255, Bold: false},
}

// ThemeDark is a dark theme with light blue accents
var ThemeDark = &ColorScheme{
	Name:     "Dark",
	Prompt:   Color{R: 102, G: 217, B: 239, Bold: true},
	Error:    Color{R: 255, G: 85, B: 85, Bold: true},
	Help:     Color{R: 98, G: 114, B: 164, Bold: false},
	Header:   Color{R: 248, G: 248, B: 242, Bold: true},
	Day:      Color{R: 248, G: 248, B: 242, Bold: false},
	Today:    Color{R: 139, G: 233, B: 253, Bold: false},
	Selected: Color{R: 80, G: 250, B: 123, Bold: true},
	Marked:   Color{R: 241, G: 250, B: 140, Bold: false},
	Disabled: Color{R: 98, G: 114, B: 164, Bold: false},
	Answer:   Color{R: 139, G: 233, B: 253, Bold: false},
}

// ToANSI converts a Color to an ANSI escape sequence.
func (c Color) ToANSI() string {
	var codes []string

	// Bold formatting comes first
	if c.Bold {
		codes = append(codes, "1")
	}

	// RGB color (true color support)
	codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B))

	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}
