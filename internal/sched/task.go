package sched

import (
	"errors"
	"fmt"
)

// ProcState tracks where a process sits in its lifecycle.
type ProcState int

const (
	StatePending ProcState = iota // not yet arrived
	StateReady                    // admitted, waiting for or holding the CPU
	StateCompleted
)

// Spec is the input descriptor of one process: (pid, arrival, burst, priority).
type Spec struct {
	PID      int   `yaml:"pid" json:"pid"`
	Arrival  int64 `yaml:"arrival_time" json:"arrival_time"`
	Burst    int64 `yaml:"burst_time" json:"burst_time"`
	Priority int   `yaml:"priority" json:"priority"` // carried, never consulted by a policy
}

// Process represents one schedulable unit of work and its runtime state.
type Process struct {
	Spec

	Remaining  int64
	Completion int64
	Turnaround int64 // Completion - Arrival
	Waiting    int64 // Turnaround - Burst

	FirstStart int64 // first instant the process held the CPU, -1 before that
	LastStart  int64 // start of the execution span that finished the process
	State      ProcState
}

func newProcess(s Spec) Process {
	return Process{
		Spec:       s,
		Remaining:  s.Burst,
		FirstStart: -1,
		LastStart:  -1,
		State:      StatePending,
	}
}

// finish freezes the metrics of a process that ran out of remaining time at now.
func (p *Process) finish(now int64) {
	p.Remaining = 0
	p.Completion = now
	p.Turnaround = p.Completion - p.Arrival
	p.Waiting = p.Turnaround - p.Burst
	p.State = StateCompleted
}

// Response is the delay between arrival and first dispatch.
func (p *Process) Response() int64 {
	if p.FirstStart < 0 {
		return 0
	}
	return p.FirstStart - p.Arrival
}

var (
	ErrNoProcesses      = errors.New("no processes to schedule")
	ErrDuplicatePID     = errors.New("duplicate pid")
	ErrNegativeArrival  = errors.New("negative arrival time")
	ErrNonPositiveBurst = errors.New("burst time must be positive")
)

// Validate rejects inputs the simulation cannot give a meaning to.
func Validate(specs []Spec) error {
	if len(specs) == 0 {
		return ErrNoProcesses
	}
	seen := make(map[int]struct{}, len(specs))
	for _, s := range specs {
		if _, dup := seen[s.PID]; dup {
			return fmt.Errorf("pid %d: %w", s.PID, ErrDuplicatePID)
		}
		seen[s.PID] = struct{}{}
		if s.Arrival < 0 {
			return fmt.Errorf("pid %d arrives at %d: %w", s.PID, s.Arrival, ErrNegativeArrival)
		}
		if s.Burst <= 0 {
			return fmt.Errorf("pid %d has burst %d: %w", s.PID, s.Burst, ErrNonPositiveBurst)
		}
	}
	return nil
}

// Registry is the arena owning every process of one run. Other collections
// refer to processes by their index here, never by copy.
type Registry struct {
	procs     []Process
	completed []int // indices, in completion order
}

// NewRegistry validates the specs and builds the arena in input order.
func NewRegistry(specs []Spec) (*Registry, error) {
	if err := Validate(specs); err != nil {
		return nil, err
	}
	r := &Registry{
		procs:     make([]Process, len(specs)),
		completed: make([]int, 0, len(specs)),
	}
	for i, s := range specs {
		r.procs[i] = newProcess(s)
	}
	return r, nil
}

func (r *Registry) Len() int { return len(r.procs) }

// At returns the process stored at index i.
func (r *Registry) At(i int) *Process { return &r.procs[i] }

// Done reports whether every process has completed.
func (r *Registry) Done() bool { return len(r.completed) == len(r.procs) }

// complete finalizes the process at index i and appends it to the completed list.
func (r *Registry) complete(i int, now int64) {
	r.procs[i].finish(now)
	r.completed = append(r.completed, i)
}

// NextArrival returns the earliest arrival strictly after now among processes
// that have not arrived yet. ok is false when none remain.
func (r *Registry) NextArrival(now int64) (next int64, ok bool) {
	for i := range r.procs {
		p := &r.procs[i]
		if p.State != StatePending || p.Arrival <= now {
			continue
		}
		if !ok || p.Arrival < next {
			next, ok = p.Arrival, true
		}
	}
	return next, ok
}

// Completed returns copies of the finished processes in completion order.
func (r *Registry) Completed() []Process {
	out := make([]Process, len(r.completed))
	for n, i := range r.completed {
		out[n] = r.procs[i]
	}
	return out
}
