// Package repl implements the interactive calculator prompt.
package repl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/enklht/seva/lang"
	"github.com/enklht/seva/log"
)

const (
	evalPrompt = "> "
	ctrlPrompt = ": "

	defaultWidth = 80
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help       Print this message
  vars       List variables
  funcs      List user-defined functions
  builtins   List builtin functions
  ast        Toggle printing the parsed syntax tree
  clear      Clear screen
  quit       Exit REPL

Usage:
  Type an expression to evaluate it, e.g. 2(3 + 4)!
  Define variables with "let x = 2" and functions with "let f(x) = x^2"
  Use _ to refer to the previous answer
  Press Tab / Shift-Tab to cycle through completions
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Type exit or quit, press Ctrl+C on an empty line, or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Config configures a REPL session.
type Config struct {
	// Context is the evaluation environment; a fresh one is created if nil.
	Context *lang.Context
	// Fix and Base select how results are printed (see [lang.FormatResult]).
	Fix  int
	Base int
	// Debug echoes each parsed statement before its result.
	Debug bool
	// History is the path of the history file. Empty keeps history in memory.
	History string
	Styles  Styles
	Logger  log.Logger

	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	calc         *lang.Context
	fix, base    int
	debug        bool
	showAST      bool
	styles       Styles
	input        textinput.Model
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	clearScreen  bool
	mode         inputMode
	evalText     string
	evalCursor   int
	ctrlText     string
	ctrlCursor   int
}

// Run starts an interactive session and blocks until the user quits.
func Run(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg.Logger.TraceContext(
		ctx,
		"repl start",
		slog.String("history", cfg.History),
		slog.Int("fix", cfg.Fix),
		slog.Int("base", cfg.Base),
	)

	history := NewHistory(cfg.History)
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history",
			slog.String("path", cfg.History),
			slog.Any("error", err),
		)
	}

	cfg.Logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}

	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}

	_, err = tea.NewProgram(newModel(ctx, cfg, history), opts...).Run()

	return err
}

func newModel(ctx context.Context, cfg Config, history *History) model {
	calc := cfg.Context
	if calc == nil {
		calc = lang.NewContext(lang.WithLogger(cfg.Logger))
	}

	ti := textinput.New()
	ti.Prompt = cfg.Styles.Prompt.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		calc:       calc,
		fix:        cfg.Fix,
		base:       cfg.Base,
		debug:      cfg.Debug,
		styles:     cfg.Styles,
		input:      ti,
		logger:     cfg.Logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(evalPrompt)-2, 1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.hintView())
	b.WriteString("\n")

	return b.String()
}

// hintView renders the line below the prompt.
func (m model) hintView() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		return m.styles.Hint.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		if m.mode == modeEval {
			return m.styles.Hint.Render("Type an expression or press Esc for commands")
		}

		return m.styles.Hint.Render("Type: " + strings.Join(ctrlCommands, ", ") +
			" (press Esc to return)")
	}

	if m.mode == modeEval && (!m.tabActive || len(m.matches) == 0) {
		call := detectFunctionCall(input, m.input.Position())
		if call.inCall {
			if sig, ok := lookupSignature(m.calc, call.name); ok {
				return m.styles.renderSignatureHint(sig, call.argIndex)
			}
		}
	}

	return m.renderCandidateBar()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyCtrlL:
		return m, tea.ClearScreen

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.switchToMode(1 - m.mode), nil

	case tea.KeyRunes, tea.KeySpace:
		// Space accepts the candidate while tab-cycling.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key (backspace, delete, arrows, etc.) edits without
	// auto-confirming a completion.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step, wrapping around. A sole candidate
// is completed immediately.
func (m model) cycle(step int) model {
	switch len(m.matches) {
	case 0:
		return m

	case 1:
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word in the input with
// replacement and moves the cursor after it.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true and the typed word already equals the sole
// candidate, the completion bar is dismissed.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	mode := m.mode

	// Reset both mode inputs after submission.
	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Append(input, mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	var (
		echo  string
		lines []string
	)

	if mode == modeCtrl {
		echo = m.styles.CtrlPrompt.Render(ctrlPrompt) + m.styles.Input.Render(input)
		lines = m.command(input)
	} else {
		echo = m.styles.Prompt.Render(evalPrompt) + m.styles.Input.Render(input)
		lines = m.evaluate(input)
	}

	cmds := []tea.Cmd{tea.Println(echo)}
	for _, line := range lines {
		cmds = append(cmds, tea.Println(line))
	}

	if m.clearScreen {
		m.clearScreen = false
		cmds = []tea.Cmd{tea.ClearScreen}
	}

	if m.quitting {
		cmds = append(cmds, tea.Quit)
	}

	return m, tea.Sequence(cmds...)
}

// evaluate runs one statement and returns the lines to print.
func (m *model) evaluate(input string) []string {
	ctx := m.ctxFunc()

	if input == "exit" || input == "quit" {
		m.quitting = true

		return nil
	}

	m.logger.TraceContext(ctx, "repl eval", slog.String("input", input))

	stmt, err := lang.Parse(input)
	if err != nil {
		m.logger.DebugContext(ctx, "parse failed", slog.Any("error", err))

		return []string{m.styles.RenderError(err)}
	}

	var lines []string

	if m.debug {
		lines = append(lines, m.styles.Hint.Render(stmt.String()))
	}

	if m.showAST {
		lines = append(lines, m.styles.Hint.Render(repr.String(stmt, repr.Indent("  "))))
	}

	value, err := lang.Eval(stmt, m.calc)
	if err != nil {
		m.logger.DebugContext(ctx, "evaluation failed", slog.Any("error", err))

		return append(lines, m.styles.RenderError(err))
	}

	if def, ok := stmt.(lang.DefFun); ok {
		sig, _ := lookupSignature(m.calc, def.Name)

		return append(lines, m.styles.Hint.Render("defined "+sig.String()))
	}

	return append(lines, m.styles.Result.Render(lang.FormatResult(value, m.fix, m.base)))
}

// command runs a control-mode command and returns the lines to print.
func (m *model) command(input string) []string {
	name, _, _ := strings.Cut(input, " ")

	m.logger.TraceContext(m.ctxFunc(), "repl command", slog.String("command", name))

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return nil

	case "h", "help":
		return []string{helpMessage()}

	case "v", "vars":
		return m.listVariables()

	case "f", "funcs":
		return m.listFunctions()

	case "b", "builtins":
		return m.listBuiltins()

	case "a", "ast":
		m.showAST = !m.showAST

		state := "off"
		if m.showAST {
			state = "on"
		}

		return []string{m.styles.Hint.Render("syntax tree display " + state)}

	case "c", "clear":
		m.clearScreen = true

		return nil

	default:
		return []string{m.styles.Error.Render("unknown command: " + name + " (try 'help')")}
	}
}

func (m *model) listVariables() []string {
	var lines []string

	for name, v := range m.calc.Variables() {
		line := "  " + name + " = " + lang.FormatResult(v.Value, m.fix, m.base)
		if v.External {
			line += m.styles.Hint.Render("  (constant)")
		}

		lines = append(lines, line)
	}

	if prev, ok := m.calc.PrevAnswer(); ok {
		lines = append(lines, "  _ = "+lang.FormatResult(prev, m.fix, m.base)+
			m.styles.Hint.Render("  (previous answer)"))
	}

	return lines
}

func (m *model) listFunctions() []string {
	var lines []string

	for name, f := range m.calc.Functions() {
		def := lang.DefFun{Name: name, Params: f.Params, Body: f.Body}
		lines = append(lines, "  "+strings.TrimPrefix(def.String(), "let "))
	}

	if len(lines) == 0 {
		return []string{m.styles.Hint.Render("  no functions defined")}
	}

	return lines
}

func (m *model) listBuiltins() []string {
	var lines []string

	for name, b := range m.calc.Builtins() {
		lines = append(lines, fmt.Sprintf("  %-16s %s", b.Signature(name), m.styles.Hint.Render(b.Doc)))
	}

	return lines
}

// historyStep moves through history by step. With sameMode, entries of the
// other mode are skipped; otherwise the mode follows the recalled entry.
func (m model) historyStep(step int, sameMode bool) model {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m
	}

	// Stepping past the newest entry returns to an empty line.
	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// switchToMode switches to mode, preserving each mode's pending input.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeEval {
		m.evalText, m.evalCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode

	if mode == modeEval {
		m.input.Prompt = m.styles.Prompt.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = m.styles.CtrlPrompt.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	m.tabActive = false
	refreshMatches(&m, false)

	return m
}
