package report

import "io"

// Writer outputs a performance report to some destination.
type Writer interface {
	// Write renders the report. Returns the number of bytes written and
	// any error encountered.
	Write(p *Performance) (int, error)
}

// MultiWriter writes the same report to several Writers, for example both
// the terminal and a file. It stops on the first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer fanning out to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the report through every configured Writer.
func (m *MultiWriter) Write(p *Performance) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(p)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter carries the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
