// Package logger provides the leveled logger shared by the spinlab binaries.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger writes prefixed info, warn and error lines.
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// New returns a logger whose lines carry the "[name-LEVEL] " prefix.
// Info and warn lines go to stdout, errors to stderr.
func New(name string) *Logger {
	return NewWithWriters(name, os.Stdout, os.Stderr)
}

// NewWithWriters is New with explicit destinations.
func NewWithWriters(name string, out, errOut io.Writer) *Logger {
	flags := log.Ldate | log.Ltime
	return &Logger{
		infoLogger:  log.New(out, "["+name+"-INFO] ", flags),
		warnLogger:  log.New(out, "["+name+"-WARN] ", flags),
		errorLogger: log.New(errOut, "["+name+"-ERROR] ", flags),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriters("", io.Discard, io.Discard)
}

// Info logs informational messages.
func (l *Logger) Info(msg string) {
	l.infoLogger.Println(msg)
}

// Infof logs a formatted informational message.
func (l *Logger) Infof(format string, args ...any) {
	l.infoLogger.Println(fmt.Sprintf(format, args...))
}

// Warn logs warning messages.
func (l *Logger) Warn(msg string) {
	l.warnLogger.Println(msg)
}

// Warnf logs a formatted warning.
func (l *Logger) Warnf(format string, args ...any) {
	l.warnLogger.Println(fmt.Sprintf(format, args...))
}

// Error logs error messages.
func (l *Logger) Error(msg string) {
	l.errorLogger.Println(msg)
}

// Errorf logs a formatted error.
func (l *Logger) Errorf(format string, args ...any) {
	l.errorLogger.Println(fmt.Sprintf(format, args...))
}

// Fatalf logs a formatted error and exits with status 1.
func (l *Logger) Fatalf(format string, args ...any) {
	l.errorLogger.Fatalf(format, args...)
}

// Event logs a named run event, e.g. a finished chain or a stored sweep.
func (l *Logger) Event(eventType, id, details string) {
	l.infoLogger.Printf("[EVENT:%s] id=%s | %s", eventType, id, details)
}
