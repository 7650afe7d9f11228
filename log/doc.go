// Package log provides a leveled structured logger built on [log/slog].
//
// A [Logger] is configured once with functional options and is safe for
// concurrent use. Besides the slog levels it has [LevelTrace] for the
// per-call output of the evaluator.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339"),
//		log.WithCaller(true))
//
//	logger.Debug("evaluated", slog.Float64("result", 42))
//
// Text output is colorized with lipgloss when [WithPretty] is enabled and
// the writer is a terminal. [FormatJSON] writes one JSON object per line.
//
// The package-level functions log through a default logger writing to
// standard error, which [Config] reconfigures.
package log
