package shared

import (
	"fmt"
	"io"
)

// Reporter renders human-readable result lines for stamping operations.
type Reporter interface {
	Printf(format string, arguments ...any)
}

// WriterReporter is a Reporter backed by an io.Writer. A nil writer silences
// every report, which lets callers run services quietly without guarding each
// call site.
type WriterReporter struct {
	writer io.Writer
}

// NewWriterReporter constructs a WriterReporter over the provided writer.
func NewWriterReporter(writer io.Writer) WriterReporter {
	return WriterReporter{writer: writer}
}

// Printf formats the arguments and writes the resulting line to the underlying writer.
func (reporter WriterReporter) Printf(format string, arguments ...any) {
	if reporter.writer == nil {
		return
	}
	fmt.Fprintf(reporter.writer, format, arguments...)
}
