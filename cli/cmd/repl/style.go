package repl

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/enklht/seva/lang"
)

// Styles renders REPL and command output. The zero value renders plain text.
type Styles struct {
	Prompt     lipgloss.Style
	CtrlPrompt lipgloss.Style
	Input      lipgloss.Style
	Result     lipgloss.Style
	Error      lipgloss.Style
	Caret      lipgloss.Style
	Hint       lipgloss.Style
	Suggestion lipgloss.Style
	Selected   lipgloss.Style
	Match      lipgloss.Style
	MatchSel   lipgloss.Style
	Signature  lipgloss.Style
	FuncName   lipgloss.Style
	Param      lipgloss.Style
}

// NewStyles returns the styles for output written to w.
// If color is false every style renders plain text.
func NewStyles(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)

	if !color {
		plain := r.NewStyle()

		return Styles{
			Prompt: plain, CtrlPrompt: plain, Input: plain, Result: plain,
			Error: plain, Caret: plain, Hint: plain, Suggestion: plain,
			Selected: plain.Reverse(true), Match: plain, MatchSel: plain.Reverse(true),
			Signature: plain, FuncName: plain, Param: plain.Underline(true),
		}
	}

	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return Styles{
		Prompt:     fg("6").Bold(true),
		CtrlPrompt: fg("5").Bold(true),
		Input:      fg("15"),
		Result:     fg("2"),
		Error:      fg("1"),
		Caret:      fg("1").Bold(true),
		Hint:       fg("8"),
		Suggestion: fg("4"),
		Selected:   fg("0").Background(lipgloss.Color("4")),
		Match:      fg("4").Bold(true),
		MatchSel:   fg("0").Background(lipgloss.Color("4")).Bold(true),
		Signature:  fg("8"),
		FuncName:   fg("6").Bold(true),
		Param:      fg("11").Bold(true),
	}
}

// RenderError formats err for the terminal. Parse errors are followed by the
// offending input with the failing span underlined.
func (s Styles) RenderError(err error) string {
	var b strings.Builder

	b.WriteString(s.Error.Render("error: " + err.Error()))

	var perr *lang.ParseError
	if errors.As(err, &perr) && perr.Input != "" {
		src, caret, _ := strings.Cut(perr.Snippet(), "\n")
		b.WriteString("\n")
		b.WriteString(s.Hint.Render(src))
		b.WriteString("\n")
		b.WriteString(s.Caret.Render(caret))
	}

	return b.String()
}
