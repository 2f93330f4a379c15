package scanner

import (
	"bufio"
	"bytes"
	"io"
	"regexp"

	"github.com/gcbaptista/go-textscan/internal/tokenizer"
	"github.com/gcbaptista/go-textscan/model"
)

// ScanLines writes "Line: <n> Word: <match>" for the first match on every matching
// line, numbering lines from 0.
func ScanLines(r io.Reader, w io.Writer, re *regexp.Regexp) (model.ScanResult, error) {
	var result model.ScanResult
	out := bufio.NewWriter(w)

	err := eachLine(r, func(n int, line string) error {
		result.LinesRead++

		loc := re.FindStringIndex(line)
		if loc == nil {
			return nil
		}
		match := model.LineMatch{Line: n, Text: line[loc[0]:loc[1]]}
		if _, err := out.WriteString(match.String() + "\n"); err != nil {
			return err
		}
		result.Matches++
		return nil
	})

	return result, flush(out, err)
}

// ScanWords sorts the words of each line in byte order and writes every word the
// pattern matches, one per output line. Duplicate words are written each time.
func ScanWords(r io.Reader, w io.Writer, re *regexp.Regexp) (model.ScanResult, error) {
	var result model.ScanResult
	out := bufio.NewWriter(w)

	err := eachLine(r, func(_ int, line string) error {
		result.LinesRead++

		for _, word := range tokenizer.SortedWords(line) {
			if !re.MatchString(word) {
				continue
			}
			match := model.WordMatch{Word: word}
			if _, err := out.WriteString(match.String() + "\n"); err != nil {
				return err
			}
			result.Matches++
		}
		return nil
	})

	return result, flush(out, err)
}

// maxLineBytes bounds a single line; longer lines fail the scan with bufio.ErrTooLong.
const maxLineBytes = 64 << 20

// eachLine calls fn for every line of r with its line terminator removed. A final
// line without a terminator is still passed to fn.
func eachLine(r io.Reader, fn func(n int, line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	sc.Split(splitLines)

	for n := 0; sc.Scan(); n++ {
		if err := fn(n, sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

// splitLines is bufio.ScanLines with "\n", "\r\n" and a lone "\r" all ending a line.
func splitLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		// A trailing '\r' may be the first half of "\r\n".
		if !atEOF {
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// flush writes out whatever was buffered, including after a failed read, and
// returns the first error.
func flush(out *bufio.Writer, err error) error {
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	return err
}
