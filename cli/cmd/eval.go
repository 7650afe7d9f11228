package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/enklht/seva/cli/cmd/repl"
	"github.com/enklht/seva/lang"
	"github.com/enklht/seva/log"
)

// Eval evaluates statements given as arguments, or read one per line from
// the --source files or stdin.
type Eval struct {
	Exprs    []string `arg:""    help:"Statements to evaluate (default: read lines from --source or stdin)" name:"expr" optional:""`
	FailFast bool     `          help:"Stop at the first failing statement"                                            short:"x"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	opts := optionsFrom(ctx)
	stdout, stderr := writers(ctx)
	logger := log.Default().With(slog.String("command", "eval"))

	b := batch{
		opts:     opts,
		calc:     opts.calculator(logger),
		styles:   repl.NewStyles(stderr, opts.Color),
		out:      stdout,
		errOut:   stderr,
		logger:   logger,
		failFast: e.FailFast,
	}

	if len(e.Exprs) > 0 {
		for i, src := range e.Exprs {
			stmt, err := lang.Parse(src)

			line := lang.Line{Number: i + 1, Source: src, Stmt: stmt, Err: err}
			if err == nil {
				line.Value, line.Err = lang.Eval(stmt, b.calc)
			}

			if !b.report(ctx, line) {
				break
			}
		}

		return b.result()
	}

	var r io.Reader = os.Stdin
	if src := sourceFilesFrom(ctx); src != nil {
		r = src
	}

	return b.run(ctx, r)
}

// batch evaluates statements non-interactively, writing results and errors
// to separate streams.
type batch struct {
	opts     Options
	calc     *lang.Context
	styles   repl.Styles
	out      io.Writer
	errOut   io.Writer
	logger   log.Logger
	failFast bool
	failed   int
}

// run evaluates every line read from r.
func (b *batch) run(ctx context.Context, r io.Reader) error {
	for line := range lang.Script(r, b.calc) {
		if line.Stmt == nil && line.Source == "" {
			return ErrReadSource.
				With(slog.Int("line", line.Number)).
				Wrap(line.Err)
		}

		if !b.report(ctx, line) {
			break
		}
	}

	return b.result()
}

// report prints the outcome of one statement and reports whether evaluation
// should continue.
func (b *batch) report(ctx context.Context, line lang.Line) bool {
	if b.opts.Debug && line.Stmt != nil {
		fmt.Fprintln(b.out, line.Stmt)
	}

	if line.Err != nil {
		b.failed++

		b.logger.DebugContext(ctx, "statement failed",
			slog.Int("line", line.Number),
			slog.String("input", line.Source),
			slog.Any("error", line.Err),
		)

		fmt.Fprintln(b.errOut,
			b.styles.Hint.Render("line "+strconv.Itoa(line.Number)+":")+" "+
				b.styles.RenderError(line.Err))

		return !b.failFast
	}

	if _, ok := line.Stmt.(lang.DefFun); !ok {
		fmt.Fprintln(b.out, b.opts.format(line.Value))
	}

	return true
}

func (b *batch) result() error {
	if b.failed == 0 {
		return nil
	}

	return ErrEvaluate.With(slog.Int("failed", b.failed))
}
