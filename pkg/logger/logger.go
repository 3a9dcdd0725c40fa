// Package logger provides the small logging interface shared by the
// moreos CLI and the browser cookie importer. The core library itself
// never logs.
package logger

import "log"

// Logger is implemented by anything that can receive leveled, formatted
// messages.
type Logger interface {
	// Info logs an informational message.
	Info(format string, args ...any)

	// Warning logs a recoverable problem, e.g. a skipped malformed
	// cookie line.
	Warning(format string, args ...any)

	// Error logs a failure.
	Error(format string, args ...any)
}

// Standard wraps a stdlib *log.Logger.
type Standard struct {
	logger *log.Logger
}

// NewStandard wraps l; a nil l uses log.Default().
func NewStandard(l *log.Logger) *Standard {
	if l == nil {
		l = log.Default()
	}
	return &Standard{logger: l}
}

func (s *Standard) Info(format string, args ...any) {
	s.logger.Printf("[INFO] "+format, args...)
}

func (s *Standard) Warning(format string, args ...any) {
	s.logger.Printf("[WARNING] "+format, args...)
}

func (s *Standard) Error(format string, args ...any) {
	s.logger.Printf("[ERROR] "+format, args...)
}

// Nop discards all messages.
type Nop struct{}

func (Nop) Info(string, ...any)    {}
func (Nop) Warning(string, ...any) {}
func (Nop) Error(string, ...any)   {}

var (
	_ Logger = (*Standard)(nil)
	_ Logger = Nop{}
)
