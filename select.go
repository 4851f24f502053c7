package inquire

import (
	"context"
	"fmt"
)

// selectOp enumerates the semantic actions of the list-selection prompt.
type selectOp int

const (
	selectMoveUp selectOp = iota
	selectMoveDown
	selectPageUp
	selectPageDown
	selectTypeRune
	selectEraseRune
)

// selectAction carries one list-selection action; typeRune actions also
// carry the rune appended to the filter.
type selectAction struct {
	op selectOp
	r  rune
}

// SelectOutput is the answer produced by a list-selection prompt.
type SelectOutput struct {
	Index int // Position in the original option list
	Value string
}

// Select is the configuration for an interactive list-selection prompt with
// incremental filtering and paging.
//
//	sel := inquire.NewSelect("What's your favorite fruit?", fruits)
//	sel.PageSize = 10
//	answer, err := sel.Run()
//
// Typing narrows the options through the configured Filter; KeepFilter
// controls whether the typed query survives a failed submission attempt.
type Select struct {
	Message        string
	Options        []string
	HelpMessage    string
	PageSize       int  // Options shown per page; DefaultPageSize when zero
	VimMode        bool // j/k navigation in addition to arrows
	KeepFilter     bool
	StartingCursor int
	Filter         Filter
	Transformer    Transformer
	Validators     []Validator[string]
}

// NewSelect creates a list-selection prompt configuration with defaults:
// page size 7, persistent filter, case-insensitive substring matching, and
// an answer transformer that stringifies the value.
func NewSelect(message string, options []string) *Select {
	return &Select{
		Message:     message,
		Options:     options,
		PageSize:    DefaultPageSize,
		KeepFilter:  DefaultKeepFilter,
		Filter:      DefaultFilter,
		Transformer: DefaultTransformer,
	}
}

// Run starts the interactive prompt on the real terminal and blocks until
// the user submits an option or aborts.
func (s *Select) Run() (SelectOutput, error) {
	return s.RunWithContext(context.Background())
}

// RunWithContext is Run with context support.
func (s *Select) RunWithContext(ctx context.Context) (SelectOutput, error) {
	prompt, err := newSelectPrompt(s)
	if err != nil {
		return SelectOutput{}, err
	}

	terminal, err := newRealTerminal()
	if err != nil {
		return SelectOutput{}, fmt.Errorf("failed to open terminal: %w", err)
	}
	defer terminal.Close()

	width, _, _ := terminal.Size()
	backend := newConsoleBackend(newDefaultOutput(), ThemeDefault, width)
	return runSession[SelectBackend, selectAction, SelectOutput](ctx, terminal, backend, prompt)
}

func newSelectKeyMap(vimMode bool) *KeyMap[selectAction] {
	km := NewKeyMap[selectAction]()

	km.Bind('\r', Submit[selectAction]())
	km.Bind('\n', Submit[selectAction]())
	km.Bind('\x03', Interrupt[selectAction]()) // Ctrl+C
	km.Bind('\x1b', Cancel[selectAction]())    // Escape
	km.Bind('\x7f', Inner(selectAction{op: selectEraseRune}))
	km.Bind('\b', Inner(selectAction{op: selectEraseRune}))

	km.BindSequence("[A", Inner(selectAction{op: selectMoveUp}))
	km.BindSequence("[B", Inner(selectAction{op: selectMoveDown}))
	km.BindSequence("[5~", Inner(selectAction{op: selectPageUp}))
	km.BindSequence("[6~", Inner(selectAction{op: selectPageDown}))

	if vimMode {
		km.Bind('k', Inner(selectAction{op: selectMoveUp}))
		km.Bind('j', Inner(selectAction{op: selectMoveDown}))
	}

	// Printable runes without an explicit binding feed the filter
	km.onRune = func(r rune) (Action[selectAction], bool) {
		return Inner(selectAction{op: selectTypeRune, r: r}), true
	}

	return km
}

// selectPrompt is the per-session state machine behind a Select
// configuration. The cursor indexes into the filtered view; offset is the
// top of the visible page and follows the cursor when it scrolls past
// either edge.
type selectPrompt struct {
	msg         string
	help        string
	keys        *KeyMap[selectAction]
	options     []string
	pageSize    int
	keepFilter  bool
	filterFn    Filter
	transformer Transformer
	validators  []Validator[string]

	filter   string
	filtered []int // Indexes into options matching the current filter
	cursor   int   // Position within filtered
	offset   int   // First visible position within filtered
	errMsg   string
}

func newSelectPrompt(s *Select) (*selectPrompt, error) {
	if len(s.Options) == 0 {
		return nil, fmt.Errorf("%w: select prompt needs at least one option", ErrInvalidConfiguration)
	}
	if s.StartingCursor < 0 || s.StartingCursor >= len(s.Options) {
		return nil, fmt.Errorf("%w: starting cursor %d is out of range", ErrInvalidConfiguration, s.StartingCursor)
	}

	pageSize := s.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	filterFn := s.Filter
	if filterFn == nil {
		filterFn = DefaultFilter
	}
	transformer := s.Transformer
	if transformer == nil {
		transformer = DefaultTransformer
	}

	p := &selectPrompt{
		msg:         s.Message,
		help:        s.HelpMessage,
		keys:        newSelectKeyMap(s.VimMode),
		options:     s.Options,
		pageSize:    pageSize,
		keepFilter:  s.KeepFilter,
		filterFn:    filterFn,
		transformer: transformer,
		validators:  s.Validators,
	}
	p.refilter()
	p.cursor = s.StartingCursor
	p.scrollToCursor()
	return p, nil
}

func (p *selectPrompt) message() string {
	return p.msg
}

func (p *selectPrompt) keymap() *KeyMap[selectAction] {
	return p.keys
}

func (p *selectPrompt) formatAnswer(answer SelectOutput) string {
	return p.transformer(answer.Value)
}

func (p *selectPrompt) handle(action selectAction) (actionResult, error) {
	switch action.op {
	case selectMoveUp:
		return p.moveCursor(-1), nil
	case selectMoveDown:
		return p.moveCursor(1), nil
	case selectPageUp:
		return p.moveCursor(-p.pageSize), nil
	case selectPageDown:
		return p.moveCursor(p.pageSize), nil
	case selectTypeRune:
		p.filter += string(action.r)
		p.refilter()
		return resultNeedsRedraw, nil
	case selectEraseRune:
		if p.filter == "" {
			return resultClean, nil
		}
		runes := []rune(p.filter)
		p.filter = string(runes[:len(runes)-1])
		p.refilter()
		return resultNeedsRedraw, nil
	default:
		return resultClean, nil
	}
}

func (p *selectPrompt) moveCursor(delta int) actionResult {
	if len(p.filtered) == 0 {
		return resultClean
	}

	next := p.cursor + delta
	if next < 0 {
		next = 0
	}
	if next > len(p.filtered)-1 {
		next = len(p.filtered) - 1
	}
	if next == p.cursor {
		return resultClean
	}

	p.cursor = next
	p.scrollToCursor()
	return resultNeedsRedraw
}

// scrollToCursor keeps the cursor inside the visible page, scrolling the
// window the minimal amount in either direction.
func (p *selectPrompt) scrollToCursor() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+p.pageSize {
		p.offset = p.cursor - p.pageSize + 1
	}
}

func (p *selectPrompt) refilter() {
	p.filtered = p.filtered[:0]
	for i, option := range p.options {
		if p.filter == "" || p.filterFn(p.filter, option, i) {
			p.filtered = append(p.filtered, i)
		}
	}
	p.cursor = 0
	p.offset = 0
}

func (p *selectPrompt) submit() (*SelectOutput, error) {
	if len(p.filtered) == 0 {
		p.errMsg = "no options match the filter"
		if !p.keepFilter {
			p.filter = ""
			p.refilter()
		}
		return nil, nil
	}

	index := p.filtered[p.cursor]
	value := p.options[index]

	result, err := runValidators(value, p.validators)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		p.errMsg = result.Message
		if !p.keepFilter {
			p.filter = ""
			p.refilter()
		}
		return nil, nil
	}

	return &SelectOutput{Index: index, Value: value}, nil
}

func (p *selectPrompt) render(backend SelectBackend) error {
	if p.errMsg != "" {
		if err := backend.RenderErrorMessage(p.errMsg); err != nil {
			return err
		}
	}

	if err := backend.RenderSelectPrompt(p.msg, p.filter); err != nil {
		return err
	}

	page := make([]string, 0, p.pageSize)
	for i := p.offset; i < len(p.filtered) && i < p.offset+p.pageSize; i++ {
		page = append(page, p.options[p.filtered[i]])
	}
	if err := backend.RenderOptions(page, p.cursor-p.offset); err != nil {
		return err
	}

	if p.help != "" {
		if err := backend.RenderHelpMessage(p.help); err != nil {
			return err
		}
	}

	return nil
}
