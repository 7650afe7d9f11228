// Package cli contains the command line interface for seva.
//
// # Usage
//
// Without a command seva starts the interactive prompt. The eval command
// evaluates its arguments, or the source files and stdin when none are given:
//
//	seva
//	seva eval '2 pi' 'sqrt(2)'
//	seva --base=16 eval '255 + 1'
//	echo 'let x = 3; x^2' | seva eval
//
// # Calculator Options
//
//   - --fix: Fractional digits to print (negative for shortest)
//   - --base: Radix of printed results (2-36)
//   - --angle-unit: Unit of angles (radian, degree)
//   - --debug: Print each parsed statement before its result
//   - --no-color: Disable colorized output
//   - --source: Evaluate statements from file(s) before the command runs
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory. Keys are flag names, with either dashes or underscores:
//
//	fix: 4
//	angle_unit: degree
//	log-level: debug
//
// The init command writes the current flag values to that file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o seva .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/seva/pprof)
package cli
