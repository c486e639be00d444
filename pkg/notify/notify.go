// Package notify delivers user-facing failure notices raised by rolled-back
// optimistic mutations.
package notify

import (
	"log"
	"os"
)

// Reporter receives a notice with a short title and a longer description.
type Reporter interface {
	Report(title, description string)
}

// Func adapts a function to the Reporter interface.
type Func func(title, description string)

func (f Func) Report(title, description string) {
	f(title, description)
}

// LogReporter writes notices to a standard logger.
type LogReporter struct {
	logger *log.Logger
}

// NewLogReporter creates a reporter that writes to stderr.
func NewLogReporter() *LogReporter {
	return &LogReporter{
		logger: log.New(os.Stderr, "notify: ", log.LstdFlags),
	}
}

// NewLogReporterWith creates a reporter over an existing logger.
func NewLogReporterWith(logger *log.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Report(title, description string) {
	r.logger.Printf("%s: %s", title, description)
}

// Multi fans a notice out to several reporters in order.
type Multi []Reporter

func (m Multi) Report(title, description string) {
	for _, r := range m {
		r.Report(title, description)
	}
}
