package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

// DefaultTimeFormatStr is the default time format string for log appenders.
const DefaultTimeFormatStr = "2006-01-02T15:04:05.000Z0700"

// Appender is an output for log entries. This is a subset of the `zapcore.Core` interface.
type Appender interface {
	// Write submits a structured log entry to the appender for logging.
	Write(zapcore.Entry, []zapcore.Field) error
	// Sync is for signaling that any buffered logs to `Write` should be flushed. E.g: at shutdown.
	Sync() error
}

// ConsoleAppender will create human readable tab separated lines on the underlying writer.
type ConsoleAppender struct {
	mu sync.Mutex
	io.Writer
}

// NewWriterAppender creates a new appender that writes human readable output to the input writer.
func NewWriterAppender(writer io.Writer) Appender {
	return &ConsoleAppender{Writer: writer}
}

// Write outputs the log entry to the underlying stream.
func (appender *ConsoleAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	line, err := formatEntry(entry, fields)
	appender.mu.Lock()
	defer appender.mu.Unlock()
	if _, writeErr := fmt.Fprintln(appender.Writer, line); writeErr != nil {
		return writeErr
	}
	return err
}

// Sync is a no-op.
func (appender *ConsoleAppender) Sync() error {
	return nil
}

// formatEntry renders `time LEVEL name caller message {fields}` with tab separators. Fields are
// rendered with zap's json encoder such that their order is preserved.
func formatEntry(entry zapcore.Entry, fields []zapcore.Field) (string, error) {
	const maxLength = 10
	toPrint := make([]string, 0, maxLength)
	toPrint = append(toPrint, entry.Time.Format(DefaultTimeFormatStr))

	toPrint = append(toPrint, strings.ToUpper(entry.Level.String()))
	if entry.LoggerName != "" {
		toPrint = append(toPrint, entry.LoggerName)
	}
	if entry.Caller.Defined {
		toPrint = append(toPrint, callerToString(&entry.Caller))
	}
	toPrint = append(toPrint, entry.Message)
	if len(fields) == 0 {
		return strings.Join(toPrint, "\t"), nil
	}

	jsonEncoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{SkipLineEnding: true})
	buf, err := jsonEncoder.EncodeEntry(zapcore.Entry{}, fields)
	if err != nil {
		return strings.Join(toPrint, "\t"), err
	}
	toPrint = append(toPrint, buf.String())
	return strings.Join(toPrint, "\t"), nil
}

// callerToString turns a caller into `dir/file.go:line`.
func callerToString(caller *zapcore.EntryCaller) string {
	return caller.TrimmedPath()
}
