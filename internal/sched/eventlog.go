package sched

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// EventLog writes status events as CSV records. Several runs may share one
// log; each gets its own hook through ForPolicy.
type EventLog struct {
	closer io.Closer
	w      *csv.Writer
	err    error
}

// NewEventLog writes the header immediately.
func NewEventLog(w io.Writer) *EventLog {
	l := &EventLog{w: csv.NewWriter(w)}
	l.write([]string{"policy", "time", "event", "pid", "remaining", "ran"})
	return l
}

// CreateEventLog opens path for CSV logging of events.
func CreateEventLog(path string) (*EventLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	l := NewEventLog(f)
	l.closer = f
	return l, nil
}

// ForPolicy returns a hook tagging every record with the policy name.
func (l *EventLog) ForPolicy(policy string) Hook {
	return HookFunc(func(ev StatusEvent) {
		l.write([]string{
			policy,
			strconv.FormatInt(ev.Time, 10),
			ev.Kind.String(),
			strconv.Itoa(ev.PID),
			strconv.FormatInt(ev.Remaining, 10),
			strconv.FormatInt(ev.Ran, 10),
		})
	})
}

func (l *EventLog) write(rec []string) {
	if l.err != nil {
		return
	}
	l.err = l.w.Write(rec)
}

// Close flushes buffered records and closes the file, if one was opened.
func (l *EventLog) Close() error {
	l.w.Flush()
	if l.err == nil {
		l.err = l.w.Error()
	}
	if l.closer != nil {
		if err := l.closer.Close(); err != nil && l.err == nil {
			l.err = err
		}
	}
	return l.err
}
