package repl

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/enklht/seva/lang"
)

func newTestModel(t *testing.T) model {
	t.Helper()

	return newModel(t.Context(), Config{
		Fix:    lang.DefaultFix,
		Base:   lang.DefaultBase,
		Styles: NewStyles(io.Discard, false),
	}, NewHistory(""))
}

func typeText(m model, s string) model {
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})

	return m
}

func press(m model, k tea.KeyType) model {
	m, _ = m.handleKey(tea.KeyMsg{Type: k})

	return m
}

func TestModel_Evaluate(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2", "3"},
		{"_ * 2", "6"},
		{"let x = 2", "2"},
		{"let f(y) = y^2 + x", "defined f(y)"},
		{"f(3)", "11"},
		{"2pi", "6.2831853072"},
		{"1/3", "0.3333333333"},
	}

	for _, tt := range tests {
		lines := m.evaluate(tt.input)
		if len(lines) != 1 || lines[0] != tt.want {
			t.Errorf("%q: got %q, expected %q", tt.input, lines, tt.want)
		}
	}
}

func TestModel_Evaluate_Errors(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		input string
		want  []string
	}{
		{"2 +", []string{"error: parse error at column 4", "  2 +", "     ^"}},
		{"y + 1", []string{"error: ", "y"}},
		{"let pi = 3", []string{"error: ", "pi"}},
	}

	for _, tt := range tests {
		lines := m.evaluate(tt.input)
		if len(lines) != 1 {
			t.Fatalf("%q: expected one message, got %q", tt.input, lines)
		}

		for _, want := range tt.want {
			if !strings.Contains(lines[0], want) {
				t.Errorf("%q: %q does not contain %q", tt.input, lines[0], want)
			}
		}
	}

	if v, _ := m.calc.Variable("pi"); v.Value == 3 {
		t.Error("constant pi was redefined")
	}
}

func TestModel_Evaluate_FormatAndDebug(t *testing.T) {
	m := newTestModel(t)
	m.base = 16
	m.debug = true

	lines := m.evaluate("255 + 1")
	if len(lines) != 2 || lines[0] != "(255 + 1)" || lines[1] != "0x100" {
		t.Errorf("got %q", lines)
	}
}

func TestModel_Evaluate_Quit(t *testing.T) {
	for _, word := range []string{"exit", "quit"} {
		m := newTestModel(t)

		if lines := m.evaluate(word); lines != nil || !m.quitting {
			t.Errorf("%q: lines %q, quitting %v", word, lines, m.quitting)
		}
	}
}

func TestModel_Commands(t *testing.T) {
	m := newTestModel(t)
	m.evaluate("let r = 4")
	m.evaluate("let area(r) = pi r^2")
	m.evaluate("r + 1")

	join := func(lines []string) string { return strings.Join(lines, "\n") }

	if got := join(m.command("vars")); !strings.Contains(got, "  r = 4") ||
		!strings.Contains(got, "  pi = 3.1415926536  (constant)") ||
		!strings.Contains(got, "  _ = 5") {
		t.Errorf("vars:\n%s", got)
	}

	if got := join(m.command("funcs")); got != "  area(r) = (pi * (r ^ 2))" {
		t.Errorf("funcs: %q", got)
	}

	if got := join(m.command("builtins")); !strings.Contains(got, "atan2(y, x)") ||
		!strings.Contains(got, "largest argument") {
		t.Errorf("builtins:\n%s", got)
	}

	if got := join(m.command("help")); !strings.Contains(got, "builtins") {
		t.Errorf("help:\n%s", got)
	}

	if got := join(m.command("bogus")); !strings.Contains(got, "unknown command: bogus") {
		t.Errorf("bogus: %q", got)
	}

	m.command("ast")

	if !m.showAST {
		t.Fatal("ast did not enable the syntax tree")
	}

	lines := m.evaluate("1 + 2")
	if len(lines) != 2 || !strings.Contains(lines[0], "lang.InfixOp") {
		t.Errorf("ast output: %q", lines)
	}

	m.command("clear")

	if !m.clearScreen {
		t.Error("clear did not request a clear screen")
	}

	m.command("quit")

	if !m.quitting {
		t.Error("quit did not quit")
	}
}

func TestModel_Keys_SubmitAndHistory(t *testing.T) {
	m := newTestModel(t)

	m = typeText(m, "1 + 1")
	m = press(m, tea.KeyEnter)

	if m.input.Value() != "" || m.history.Len() != 1 {
		t.Fatalf("after submit: input %q, history %d", m.input.Value(), m.history.Len())
	}

	if prev, ok := m.calc.PrevAnswer(); !ok || prev != 2 {
		t.Errorf("previous answer = %v, %v", prev, ok)
	}

	m = press(m, tea.KeyEsc)
	m = typeText(m, "vars")
	m = press(m, tea.KeyEnter)
	m = press(m, tea.KeyEsc)

	if m.mode != modeEval {
		t.Fatalf("expected eval mode, got %v", m.mode)
	}

	m = press(m, tea.KeyUp)

	if m.input.Value() != "vars" || m.mode != modeCtrl {
		t.Errorf("up: %q in mode %v", m.input.Value(), m.mode)
	}

	m = press(m, tea.KeyUp)

	if m.input.Value() != "1 + 1" || m.mode != modeEval {
		t.Errorf("up: %q in mode %v", m.input.Value(), m.mode)
	}

	m = press(m, tea.KeyDown)
	m = press(m, tea.KeyDown)

	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("down past newest: %q at %d", m.input.Value(), m.historyIdx)
	}

	if m.mode != modeCtrl {
		t.Fatalf("history recall should leave command mode, got %v", m.mode)
	}

	// Shift+Up stays in eval mode and skips the command entry.
	m = press(m, tea.KeyEsc)
	m = press(m, tea.KeyShiftUp)

	if m.input.Value() != "1 + 1" || m.mode != modeEval {
		t.Errorf("shift+up in %v mode: %q", m.mode, m.input.Value())
	}
}

func TestModel_Keys_TabCompletion(t *testing.T) {
	m := newTestModel(t)

	m = typeText(m, "2 * at")

	if len(m.matches) < 2 {
		t.Fatalf("expected several matches, got %v", m.matches)
	}

	first, second := m.matches[0].Str, m.matches[1].Str

	m = press(m, tea.KeyTab)

	if got := m.input.Value(); got != "2 * "+first || !m.tabActive {
		t.Errorf("tab: %q", got)
	}

	m = press(m, tea.KeyTab)

	if got := m.input.Value(); got != "2 * "+second {
		t.Errorf("second tab: %q", got)
	}

	m = press(m, tea.KeyEsc)

	if got := m.input.Value(); got != "2 * at" || m.tabActive || m.mode != modeEval {
		t.Errorf("esc restores the typed word: %q", got)
	}
}

func TestModel_Keys_Quit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyCtrlD} {
		m := press(newTestModel(t), k)

		if !m.quitting || m.View() != "" {
			t.Errorf("%v on an empty line should quit", k)
		}
	}

	m := typeText(newTestModel(t), "1 +")
	m = press(m, tea.KeyCtrlC)

	if m.quitting || m.input.Value() != "" {
		t.Errorf("ctrl+c should clear the line: %q", m.input.Value())
	}
}

func TestModel_View_Hints(t *testing.T) {
	m := newTestModel(t)

	if got := m.hintView(); !strings.Contains(got, "Type an expression") {
		t.Errorf("empty hint: %q", got)
	}

	m = typeText(m, "atan2(1, ")

	if got := m.hintView(); got != "atan2(y, x)  angle of the point (x, y)" {
		t.Errorf("signature hint: %q", got)
	}

	m = press(m, tea.KeyEsc)

	if got := m.hintView(); !strings.Contains(got, "quit") {
		t.Errorf("command hint: %q", got)
	}
}
