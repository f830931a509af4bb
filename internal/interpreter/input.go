package interpreter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrBadCount       = errors.New("bad case count")
	ErrTruncatedInput = errors.New("input ended before all cases were read")
)

const maxProgramLine = 1 << 20

// Case is one program to run, numbered from 1.
type Case struct {
	Index   int
	Program string
}

// ReadCases reads the batch format:
// first line: number of cases T
// then T lines, one program per line (surrounding blanks are trimmed)
func ReadCases(r io.Reader) ([]Case, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxProgramLine)

	count := -1
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", ErrBadCount, line)
		}
		count = n
		break
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: empty input", ErrBadCount)
	}

	cases := make([]Case, 0, min(count, 1024))
	for len(cases) < count && sc.Scan() {
		cases = append(cases, Case{Index: len(cases) + 1, Program: strings.TrimSpace(sc.Text())})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(cases) < count {
		return nil, fmt.Errorf("%w: want %d cases, got %d", ErrTruncatedInput, count, len(cases))
	}
	return cases, nil
}
