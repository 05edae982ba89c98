package todo

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Delimiter separates the fields of a persisted task.
const Delimiter = "|"

const maxLineSize = 1024 * 1024

// LineError describes a malformed line in a task file.
type LineError struct {
	Line int    // 1-based line number
	Text string // raw line content
	Err  error  // underlying error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseLine parses one "description|status|importance" record.
func ParseLine(line string) (Task, error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != 3 {
		return Task{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	status, err := ParseStatus(fields[1])
	if err != nil {
		return Task{}, err
	}
	importance, err := ParseImportance(fields[2])
	if err != nil {
		return Task{}, err
	}
	return Task{
		Description: fields[0],
		Status:      status,
		Importance:  importance,
	}, nil
}

// FormatLine formats a task as a record without the trailing newline.
func FormatLine(t Task) (string, error) {
	if strings.ContainsAny(t.Description, Delimiter+"\r\n") {
		return "", fmt.Errorf("%w: %q", ErrDelimiter, t.Description)
	}
	return t.Description + Delimiter + string(t.Status) + Delimiter + string(t.Importance), nil
}

// Decode reads task records from r. Malformed lines are skipped and returned
// as line errors; the returned error is only set when reading itself fails.
func Decode(r io.Reader) ([]Task, []*LineError, error) {
	br := bufio.NewReader(r)

	var tasks []Task
	var bad []*LineError
	for lineNo := 1; ; lineNo++ {
		line, tooLong, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, bad, fmt.Errorf("read task file: %w", err)
		}
		if tooLong {
			bad = append(bad, &LineError{Line: lineNo, Text: preview(line), Err: ErrLineTooLong})
			continue
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		task, err := ParseLine(line)
		if err != nil {
			bad = append(bad, &LineError{Line: lineNo, Text: line, Err: err})
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, bad, nil
}

// readLine returns the next line without its terminator. A line longer than
// maxLineSize is read to its end but only its first maxLineSize bytes are
// kept. io.EOF is returned only once nothing is left to read.
func readLine(br *bufio.Reader) (string, bool, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if err == io.EOF && (len(buf) > 0 || tooLong) {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}
		if room := maxLineSize - len(buf); len(chunk) > room {
			chunk = chunk[:room]
			tooLong = true
		}
		buf = append(buf, chunk...)
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

const previewSize = 40

func preview(line string) string {
	if len(line) <= previewSize {
		return line
	}
	return line[:previewSize] + "..."
}

// Encode writes one record per task to w. Every task is checked before
// anything is written, so a task that cannot be represented leaves w
// untouched.
func Encode(w io.Writer, tasks []Task) error {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		line, err := FormatLine(t)
		if err != nil {
			return fmt.Errorf("task %d: %w", i+1, err)
		}
		lines[i] = line
	}

	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
