package inquire

// keyEvent is one raw input event read from the terminal: either a single
// rune, or an escape sequence (without the leading ESC).
type keyEvent struct {
	Rune rune
	Seq  string
}

// actionKind classifies a mapped action at the framework level. Submit,
// cancel and interrupt are uniform across prompt types; everything else is a
// prompt-specific inner action.
type actionKind int

const (
	actionInner actionKind = iota
	actionSubmit
	actionCancel
	actionInterrupt
)

// Action is the result of mapping a raw key event for a prompt whose inner
// action set is I.
type Action[I any] struct {
	kind  actionKind
	inner I
}

// Inner wraps a prompt-specific action.
func Inner[I any](inner I) Action[I] {
	return Action[I]{kind: actionInner, inner: inner}
}

// Submit returns the action that asks the driver to validate and submit the
// current answer.
func Submit[I any]() Action[I] {
	return Action[I]{kind: actionSubmit}
}

// Cancel returns the action that aborts the session with ErrCanceled.
func Cancel[I any]() Action[I] {
	return Action[I]{kind: actionCancel}
}

// Interrupt returns the action that aborts the session with ErrInterrupted.
func Interrupt[I any]() Action[I] {
	return Action[I]{kind: actionInterrupt}
}

// KeyMap holds the key binding configuration for one prompt type.
//
// It maps single runes and escape sequences to actions, isolating the prompt
// state machine from the representation of raw input. Lookups are pure and
// stateless; events with no binding yield no action and are ignored by the
// driver without a redraw.
type KeyMap[I any] struct {
	bindings  map[rune]Action[I]
	sequences map[string]Action[I]
	// onRune, when set, handles printable runes that have no explicit
	// binding. List-style prompts use it to feed typed characters into the
	// filter.
	onRune func(r rune) (Action[I], bool)
}

// NewKeyMap creates an empty key map for a prompt with inner action set I.
func NewKeyMap[I any]() *KeyMap[I] {
	return &KeyMap[I]{
		bindings:  make(map[rune]Action[I]),
		sequences: make(map[string]Action[I]),
	}
}

// Bind adds or updates a key binding for a single character.
func (km *KeyMap[I]) Bind(key rune, action Action[I]) {
	km.bindings[key] = action
}

// BindSequence adds or updates an escape sequence binding. The sequence must
// not include the initial ESC character, e.g. "[A" for the up arrow.
func (km *KeyMap[I]) BindSequence(seq string, action Action[I]) {
	km.sequences[seq] = action
}

// Lookup maps a raw key event to an action. The second return value is false
// when the event has no binding.
func (km *KeyMap[I]) Lookup(ev keyEvent) (Action[I], bool) {
	if km == nil {
		var zero Action[I]
		return zero, false
	}
	if ev.Seq != "" {
		action, ok := km.sequences[ev.Seq]
		return action, ok
	}
	if action, ok := km.bindings[ev.Rune]; ok {
		return action, true
	}
	if km.onRune != nil && isPrintable(ev.Rune) {
		return km.onRune(ev.Rune)
	}
	var zero Action[I]
	return zero, false
}

func isPrintable(r rune) bool {
	return r >= 32 && r != 127
}
