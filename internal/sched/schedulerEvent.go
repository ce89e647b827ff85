// internal/sched/schedulerEvent.go

package sched

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusAdmit StatusKind = iota
	StatusIdle
	StatusDispatch
	StatusPreempt
	StatusFinish
)

// StatusEvent is emitted by the event loop on every notable action.
type StatusEvent struct {
	Time      int64
	Kind      StatusKind
	PID       int
	Remaining int64
	Ran       int64 // slice length on Dispatch, gap on Idle, turnaround on Finish
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusAdmit:
		return "Admit"
	case StatusIdle:
		return "Idle"
	case StatusDispatch:
		return "Dispatch"
	case StatusPreempt:
		return "Preempt"
	case StatusFinish:
		return "Finish"
	default:
		return "Unknown"
	}
}

// Hook receives status events synchronously from the event loop.
type Hook interface {
	Func(ev StatusEvent)
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(ev StatusEvent)

func (f HookFunc) Func(ev StatusEvent) { f(ev) }
