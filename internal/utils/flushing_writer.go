package utils

import (
	"io"
	"sync"
)

type flushableWriter interface {
	Flush() error
}

// FlushingWriter forwards writes to a destination writer and flushes it after
// every write when the destination buffers its output. Progress lines emitted
// mid-run stay visible instead of sitting in a buffer until the run ends.
type FlushingWriter struct {
	destination io.Writer
	writeGuard  sync.Mutex
}

// NewFlushingWriter wraps the destination writer. A nil destination yields a
// nil writer, and an already wrapped destination is returned unchanged.
func NewFlushingWriter(destination io.Writer) io.Writer {
	if destination == nil {
		return nil
	}
	if _, alreadyWrapped := destination.(*FlushingWriter); alreadyWrapped {
		return destination
	}
	return &FlushingWriter{destination: destination}
}

// Write forwards the data to the destination and flushes it when supported.
func (writer *FlushingWriter) Write(data []byte) (int, error) {
	writer.writeGuard.Lock()
	defer writer.writeGuard.Unlock()

	writtenByteCount, writeError := writer.destination.Write(data)
	if writeError != nil {
		return writtenByteCount, writeError
	}

	if flushableDestination, destinationFlushes := writer.destination.(flushableWriter); destinationFlushes {
		if flushError := flushableDestination.Flush(); flushError != nil {
			return writtenByteCount, flushError
		}
	}

	return writtenByteCount, nil
}
