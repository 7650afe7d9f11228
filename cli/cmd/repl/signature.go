package repl

import (
	"strings"

	"github.com/enklht/seva/lang"
)

// functionCall is a call whose argument list contains the cursor.
type functionCall struct {
	name     string
	argIndex int // 0-based index of the argument under the cursor
	inCall   bool
}

// detectFunctionCall finds the innermost unclosed call before cursor and the
// index of the argument being typed.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	open, depth := -1, 0

	for i := cursor - 1; i >= 0 && open < 0; i-- {
		switch input[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			} else {
				depth--
			}
		}
	}

	if open < 0 {
		return functionCall{}
	}

	// Whitespace may separate the name from its parenthesis.
	end := open
	for end > 0 && (input[end-1] == ' ' || input[end-1] == '\t') {
		end--
	}

	start := end
	for start > 0 && isIdentByte(input[start-1]) {
		start--
	}

	name := input[start:end]
	if name == "" || (name[0] >= '0' && name[0] <= '9') || name == "let" {
		return functionCall{}
	}

	arg, depth := 0, 0

	for i := open + 1; i < cursor; i++ {
		switch input[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				arg++
			}
		}
	}

	return functionCall{name: name, argIndex: arg, inCall: true}
}

// signature describes a callable name: its parameter names, whether the last
// one repeats, and a one-line description.
type signature struct {
	name     string
	params   []string
	variadic bool
	doc      string
}

// lookupSignature resolves name the way the evaluator does, builtins first.
func lookupSignature(calc *lang.Context, name string) (signature, bool) {
	if b, ok := calc.Builtin(name); ok {
		return signature{
			name:     name,
			params:   b.Params,
			variadic: b.Arity < 0,
			doc:      b.Doc,
		}, true
	}

	if f, ok := calc.Function(name); ok {
		return signature{name: name, params: f.Params}, true
	}

	return signature{}, false
}

// String renders s without styling, such as "max(x, ...)".
func (s signature) String() string {
	params := strings.Join(s.params, ", ")
	if s.variadic {
		params += ", ..."
	}

	return s.name + "(" + params + ")"
}

// renderSignatureHint renders s with the parameter at argIndex highlighted.
// Arguments past the last parameter of a variadic function highlight the
// trailing ellipsis.
func (st Styles) renderSignatureHint(s signature, argIndex int) string {
	var b strings.Builder

	b.WriteString(st.FuncName.Render(s.name))
	b.WriteString(st.Signature.Render("("))

	params := s.params
	if s.variadic {
		params = append(params[:len(params):len(params)], "...")
	}

	for i, p := range params {
		if i > 0 {
			b.WriteString(st.Signature.Render(", "))
		}

		current := i == argIndex ||
			(s.variadic && i == len(params)-1 && argIndex >= i)

		if current {
			b.WriteString(st.Param.Render(p))
		} else {
			b.WriteString(st.Signature.Render(p))
		}
	}

	b.WriteString(st.Signature.Render(")"))

	if s.doc != "" {
		b.WriteString(st.Hint.Render("  " + s.doc))
	}

	return b.String()
}
