package inquire

import (
	"fmt"
	"strings"
)

// Default values for the shared prompt configuration surface.
const (
	// DefaultPageSize is the number of options shown per page in list-style
	// prompts.
	DefaultPageSize = 7
	// DefaultVimMode controls whether h/j/k/l navigation is enabled by
	// default.
	DefaultVimMode = false
	// DefaultKeepFilter controls whether a typed filter persists after a
	// submission attempt in list-style prompts.
	DefaultKeepFilter = true
)

// Filter decides whether an option matches the query the user typed.
// The index is the option's position in the original option list.
type Filter func(query, option string, index int) bool

// Transformer converts a produced answer into its display string. It is
// invoked once, on successful submission.
type Transformer func(answer any) string

// DefaultFilter matches options by case-insensitive substring search.
func DefaultFilter(query, option string, _ int) bool {
	return strings.Contains(strings.ToLower(option), strings.ToLower(query))
}

// DefaultTransformer stringifies the answer.
func DefaultTransformer(answer any) string {
	return fmt.Sprint(answer)
}
