package editor

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

type ConsoleEntry struct {
	Time    time.Time
	Message string
	Type    string // "info", "success", "warning", "error"
}

func (e ConsoleEntry) String() string {
	return fmt.Sprintf("[%s] %s", e.Time.Format("15:04:05"), e.Message)
}

// Logs is the shared sink every editor component reports to. Entries go to
// zap and to a bounded console; errors also become the notice shown to the
// user until dismissed.
type Logs struct {
	log *zap.Logger

	console    []ConsoleEntry
	maxEntries int

	lastError string
	show      bool

	now func() time.Time
}

func NewLogs(log *zap.Logger) *Logs {
	return &Logs{
		log:        log,
		maxEntries: maxConsoleLines,
		now:        time.Now,
	}
}

func (l *Logs) Info(msg string, fields ...zap.Field) {
	l.log.Info(msg, fields...)
	l.append(msg, "info")
}

func (l *Logs) Success(msg string, fields ...zap.Field) {
	l.log.Info(msg, fields...)
	l.append(msg, "success")
}

func (l *Logs) Warn(msg string, fields ...zap.Field) {
	l.log.Warn(msg, fields...)
	l.append(msg, "warning")
}

// Error records a recoverable failure. err may be nil.
func (l *Logs) Error(msg string, err error, fields ...zap.Field) {
	text := msg
	if err != nil {
		fields = append(fields, zap.Error(err))
		text = fmt.Sprintf("%s: %v", msg, err)
	}
	l.log.Error(msg, fields...)
	l.append(text, "error")

	l.lastError = text
	l.show = true
}

// Notice returns the most recent error while it has not been dismissed.
func (l *Logs) Notice() (string, bool) {
	return l.lastError, l.show
}

func (l *Logs) Dismiss() {
	l.show = false
}

func (l *Logs) Console() []ConsoleEntry {
	return l.console
}

func (l *Logs) append(message, msgType string) {
	l.console = append(l.console, ConsoleEntry{
		Time:    l.now(),
		Message: message,
		Type:    msgType,
	})

	// Limit console history
	if len(l.console) > l.maxEntries {
		l.console = l.console[len(l.console)-l.maxEntries:]
	}
}
