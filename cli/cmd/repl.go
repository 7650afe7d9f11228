package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/enklht/seva/cli/cmd/repl"
	"github.com/enklht/seva/log"
)

// Repl starts an interactive session. When stdin is not a terminal the lines
// read from it are evaluated as in the eval command.
type Repl struct {
	History bool `default:"true" help:"Persist input history" negatable:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	opts := optionsFrom(ctx)
	stdout, stderr := writers(ctx)
	logger := log.Default().With(slog.String("command", "repl"))
	calc := opts.calculator(logger)

	b := batch{
		opts:   opts,
		calc:   calc,
		styles: repl.NewStyles(stderr, opts.Color),
		out:    stdout,
		errOut: stderr,
		logger: logger,
	}

	// Source files are evaluated first so the session can use their
	// definitions.
	if src := sourceFilesFrom(ctx); src != nil {
		if err := b.run(ctx, src); err != nil {
			logger.WarnContext(ctx, "source evaluation failed", slog.Any("error", err))
		}

		b.failed = 0
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return b.run(ctx, os.Stdin)
	}

	var history string
	if r.History && opts.CacheDir != "" {
		history = filepath.Join(opts.CacheDir, repl.HistoryFile)
	}

	return repl.Run(ctx, repl.Config{
		Context: calc,
		Fix:     opts.Fix,
		Base:    opts.Base,
		Debug:   opts.Debug,
		History: history,
		Styles:  repl.NewStyles(stdout, opts.Color),
		Logger:  logger,
	})
}
