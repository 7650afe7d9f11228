package lang

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"

	"github.com/klauspost/readahead"
)

// commentPrefix starts a comment line in a script.
const commentPrefix = "#"

// Line is the outcome of one script line.
type Line struct {
	Number int // 1-based line number
	Source string
	Stmt   Stmt // nil if the line did not parse
	Value  float64
	Err    error // *ParseError, *EvalError, or a read error
}

// Script returns an iterator evaluating each statement read from r against
// c, one per line. Blank lines and lines starting with "#" are skipped.
//
// Lines may be of any length. Evaluation continues after a failing line;
// the caller decides whether to stop by breaking out of the loop. A read
// error is yielded as the final Line.
func Script(r io.Reader, c *Context) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		// Read ahead asynchronously while earlier lines evaluate.
		ra := readahead.NewReader(r)
		defer ra.Close()

		br := bufio.NewReader(ra)

		number := 0

		for {
			text, err := br.ReadString('\n')

			if src := strings.TrimSpace(text); text != "" {
				number++

				if src != "" && !strings.HasPrefix(src, commentPrefix) &&
					!yield(evalLine(number, src, c)) {
					return
				}
			}

			if err != nil {
				if !errors.Is(err, io.EOF) {
					yield(Line{Number: number + 1, Err: err})
				}

				return
			}
		}
	}
}

// evalLine parses and evaluates one script statement.
func evalLine(number int, src string, c *Context) Line {
	line := Line{Number: number, Source: src}

	stmt, err := Parse(src)
	if err != nil {
		line.Err = err

		return line
	}

	line.Stmt = stmt
	line.Value, line.Err = Eval(stmt, c)

	return line
}
