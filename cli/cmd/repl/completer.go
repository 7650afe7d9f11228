package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/enklht/seva/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{
	"ast", "builtins", "clear", "funcs", "help", "quit", "vars",
}

// isIdentByte reports whether c may appear in an identifier.
func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// wordBounds returns the identifier around cursor and its byte boundaries
// within input. Any byte that cannot appear in an identifier is a boundary,
// so the word is empty when the cursor sits between operators or spaces.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 && isIdentByte(input[start-1]) {
		start--
	}

	end = cursor
	for end < len(input) && isIdentByte(input[end]) {
		end++
	}

	return input[start:end], start, end
}

// candidates returns the completion candidates for mode.
func candidates(calc *lang.Context, mode inputMode) []string {
	if mode == modeCtrl {
		return ctrlCommands
	}

	return calc.Names()
}

// computeMatches ranks the candidates against the word at the cursor, best
// first. A word that starts with a digit is a number and is never completed.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	word, wordStart, wordEnd := wordBounds(m.input.Value(), m.input.Position())

	if word == "" || (word[0] >= '0' && word[0] <= '9') {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates(m.calc, m.mode)), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate (when tabbing) uses the selected
// style.
func (m model) renderCandidateBar() string {
	if len(m.matches) == 0 || m.width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := m.styles.Hint.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range m.matches {
		rendered := m.renderCandidate(match, m.tabActive && i == m.suggIdx)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		last := i == len(m.matches)-1
		if i > 0 && ((last && used+w > m.width) || (!last && used+w+reserve > m.width)) {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted. Callable names are shown with a "()" suffix that is not part
// of the completion.
func (m model) renderCandidate(match fuzzy.Match, selected bool) string {
	base, hl := m.styles.Suggestion, m.styles.Match
	if selected {
		base, hl = m.styles.Selected, m.styles.MatchSel
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(hl.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if m.mode == modeEval && isCallable(m.calc, match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

func isCallable(calc *lang.Context, name string) bool {
	if _, ok := calc.Builtin(name); ok {
		return true
	}

	_, ok := calc.Function(name)

	return ok
}
