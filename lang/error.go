package lang

//go:generate go tool stringer --linecomment --type ParseErrorKind,EvalErrorKind --output error_string.go

import (
	"log/slog"
	"strconv"
	"strings"
)

// ParseErrorKind classifies a [ParseError].
type ParseErrorKind int

const (
	// UnexpectedToken means input was present but did not fit the grammar.
	UnexpectedToken ParseErrorKind = iota // unexpected token
	// UnexpectedEnd means the input ended where more was required.
	UnexpectedEnd // unexpected end of input
	// ExpectedIdent means an identifier was required.
	ExpectedIdent // expected identifier
	// ExpectedExpression means an expression operand was required.
	ExpectedExpression // expected expression
)

// Span is a half-open byte range [Start, End) of the input.
type Span struct {
	Start int
	End   int
}

// ParseError describes why an input line could not be parsed.
//
// Labels is the chain of grammar contexts enclosing the failure, outermost
// first (for example "variable definition", "expression").
type ParseError struct {
	Kind     ParseErrorKind
	Span     Span
	Labels   []string
	Expected string // what the parser was looking for, if known
	Found    string // offending text, empty at end of input
	Input    string

	// committed is set once the parser has recognized enough of a statement
	// form that alternatives must not be tried.
	committed bool
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var sb strings.Builder

	sb.WriteString("parse error at column ")
	sb.WriteString(strconv.Itoa(e.Span.Start + 1))
	sb.WriteString(": ")

	switch {
	case e.Expected != "" && e.Kind == UnexpectedEnd:
		sb.WriteString("expected ")
		sb.WriteString(e.Expected)
		sb.WriteString(", found end of input")

	case e.Expected != "" && e.Found != "":
		sb.WriteString("expected ")
		sb.WriteString(e.Expected)
		sb.WriteString(", found ")
		sb.WriteString(strconv.Quote(e.Found))

	case e.Expected != "":
		sb.WriteString("expected ")
		sb.WriteString(e.Expected)

	case e.Found != "":
		sb.WriteString(e.Kind.String())
		sb.WriteString(" ")
		sb.WriteString(strconv.Quote(e.Found))

	default:
		sb.WriteString(e.Kind.String())
	}

	if len(e.Labels) > 0 {
		sb.WriteString(" (in ")
		sb.WriteString(strings.Join(e.Labels, " > "))
		sb.WriteString(")")
	}

	return sb.String()
}

// Snippet renders the input with a caret marking the failing span.
func (e *ParseError) Snippet() string {
	var sb strings.Builder

	sb.WriteString("  ")
	sb.WriteString(e.Input)
	sb.WriteString("\n  ")

	start := min(max(e.Span.Start, 0), len(e.Input))
	sb.WriteString(strings.Repeat(" ", len([]rune(e.Input[:start]))))

	width := 1
	if e.Span.End > start && e.Span.End <= len(e.Input) {
		width = max(len([]rune(e.Input[start:e.Span.End])), 1)
	}

	sb.WriteString(strings.Repeat("^", width))

	return sb.String()
}

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", e.Kind.String()),
		slog.Int("start", e.Span.Start),
		slog.Int("end", e.Span.End),
	}

	if e.Expected != "" {
		attrs = append(attrs, slog.String("expected", e.Expected))
	}

	if e.Found != "" {
		attrs = append(attrs, slog.String("found", e.Found))
	}

	if len(e.Labels) > 0 {
		attrs = append(attrs, slog.String("context", strings.Join(e.Labels, " > ")))
	}

	return slog.GroupValue(attrs...)
}

// Is reports whether target is a *ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)

	return ok && t.Kind == e.Kind
}

// within adds label to the context chain of e. Labels accumulate innermost
// first and are put in order by [Parse]; directly repeated labels, as in
// deeply nested parentheses, are recorded once.
func (e *ParseError) within(label string) *ParseError {
	if n := len(e.Labels); n == 0 || e.Labels[n-1] != label {
		e.Labels = append(e.Labels, label)
	}

	return e
}

// commit marks e as non-backtracking.
func (e *ParseError) commit() *ParseError {
	e.committed = true

	return e
}

// EvalErrorKind classifies an [EvalError].
type EvalErrorKind int

const (
	// Undefined means a variable or function name has no binding.
	Undefined EvalErrorKind = iota // undefined
	// ArityMismatch means a call supplied the wrong number of arguments.
	ArityMismatch // arity mismatch
	// DomainError means an operand is outside the domain of an operation.
	DomainError // domain error
	// ReadOnly means a definition tried to replace a constant or builtin.
	ReadOnly // read-only
	// DepthExceeded means nested user function calls exceeded the limit.
	DepthExceeded // maximum call depth exceeded
)

// EvalError describes why a statement could not be evaluated.
// Only the fields relevant to Kind are set.
type EvalError struct {
	Kind      EvalErrorKind
	Name      string // Undefined, ArityMismatch, ReadOnly, DepthExceeded
	Expected  int    // ArityMismatch; negative means "at least -Expected"
	Got       int    // ArityMismatch, DepthExceeded
	Operation string // DomainError
	Detail    string // DomainError
}

// Sentinel values for errors.Is.
var (
	ErrUndefined     = &EvalError{Kind: Undefined}
	ErrArityMismatch = &EvalError{Kind: ArityMismatch}
	ErrDomain        = &EvalError{Kind: DomainError}
	ErrReadOnly      = &EvalError{Kind: ReadOnly}
	ErrDepthExceeded = &EvalError{Kind: DepthExceeded}
)

// Error implements the error interface.
func (e *EvalError) Error() string {
	switch e.Kind {
	case Undefined:
		return "undefined: " + e.Name

	case ArityMismatch:
		want := strconv.Itoa(e.Expected)
		if e.Expected < 0 {
			want = "at least " + strconv.Itoa(-e.Expected)
		}

		return e.Name + ": expected " + want + " argument(s), got " +
			strconv.Itoa(e.Got)

	case DomainError:
		if e.Detail == "" {
			return "domain error in " + e.Operation
		}

		return "domain error in " + e.Operation + ": " + e.Detail

	case ReadOnly:
		return "cannot redefine read-only name: " + e.Name

	case DepthExceeded:
		return "maximum call depth exceeded (" + strconv.Itoa(e.Got) +
			") calling " + e.Name

	default:
		return e.Kind.String()
	}
}

// Is reports whether target is an *EvalError of the same kind, so that the
// sentinel values match any error of their kind.
func (e *EvalError) Is(target error) bool {
	t, ok := target.(*EvalError)

	return ok && t.Kind == e.Kind
}

// LogValue implements slog.LogValuer.
func (e *EvalError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("error", e.Kind.String())}

	if e.Name != "" {
		attrs = append(attrs, slog.String("name", e.Name))
	}

	switch e.Kind {
	case ArityMismatch:
		attrs = append(attrs,
			slog.Int("expected", e.Expected),
			slog.Int("got", e.Got),
		)

	case DomainError:
		attrs = append(attrs,
			slog.String("operation", e.Operation),
			slog.String("detail", e.Detail),
		)

	case DepthExceeded:
		attrs = append(attrs, slog.Int("depth", e.Got))
	}

	return slog.GroupValue(attrs...)
}
