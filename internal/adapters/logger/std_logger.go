package logger

import (
	"io"

	"github.com/baditaflorin/go_sms_normalizer/internal/ports"
	"github.com/baditaflorin/l"
)

const (
	defaultBufferSize  = 1024 * 1024      // 1MB buffer
	defaultMaxFileSize = 10 * 1024 * 1024 // 10MB max file size
	defaultMaxBackups  = 5
)

// StdLogger adapts the l.Logger to the ports.Logger interface.
type StdLogger struct {
	logger l.Logger
}

// NewWriterLogger creates an asynchronous logger writing to w, as JSON lines
// when jsonFormat is set and as human-readable text otherwise.
func NewWriterLogger(w io.Writer, jsonFormat bool) (ports.Logger, error) {
	return NewCustomStdLogger(l.Config{
		Output:      w,
		JsonFormat:  jsonFormat,
		AsyncWrite:  true,
		BufferSize:  defaultBufferSize,
		MaxFileSize: defaultMaxFileSize,
		MaxBackups:  defaultMaxBackups,
		AddSource:   true,
		Metrics:     true,
	})
}

// NewCustomStdLogger creates a new standard logger with custom configuration.
func NewCustomStdLogger(config l.Config) (ports.Logger, error) {
	logger, err := l.NewStandardFactory().CreateLogger(config)
	if err != nil {
		return nil, err
	}

	return &StdLogger{logger: logger}, nil
}

// Debug logs a debug message.
func (l *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (l *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (l *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (l *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

// Close flushes and closes the logger.
func (l *StdLogger) Close() error {
	return l.logger.Close()
}

// FromExisting creates a new StdLogger from an existing l.Logger.
func FromExisting(logger l.Logger) ports.Logger {
	return &StdLogger{logger: logger}
}
