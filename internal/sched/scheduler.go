// internal/sched/scheduler.go

package sched

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

type loopState int

const (
	stateAdmitting loopState = iota
	stateIdle
	stateRunning
	stateDone
)

// Scheduler runs one discrete-event simulation of a process set under a
// single policy. It is not safe for concurrent use; build one per run.
type Scheduler struct {
	policy   Policy
	reg      *Registry
	ready    *ReadyQueue
	clock    *SimClock
	timeline Timeline
	hooks    []Hook
	logger   *slog.Logger

	running int   // registry index of the last dispatched process, -1 if none
	lastEnd int64 // instant the last slice ended
}

// Result is everything a run produces for the reporting side.
type Result struct {
	Policy     string
	Timeline   []Segment
	Slices     []Slice
	Completed  []Process // completion order
	Makespan   int64
	Iterations int64
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithLogger makes the scheduler log every status event at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithHook registers a hook at construction time.
func WithHook(h Hook) Option {
	return func(s *Scheduler) { s.AcceptHook(h) }
}

// New validates the input and prepares a scheduler at t=0.
func New(specs []Spec, policy Policy, opts ...Option) (*Scheduler, error) {
	reg, err := NewRegistry(specs)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		policy:  policy,
		reg:     reg,
		ready:   NewReadyQueue(reg, policy),
		clock:   NewSimClock(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		running: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AcceptHook registers a hook. Must be called before Run().
func (s *Scheduler) AcceptHook(h Hook) {
	s.hooks = append(s.hooks, h)
}

// Simulate is a shorthand for New followed by Run.
func Simulate(ctx context.Context, specs []Spec, policy Policy, opts ...Option) (*Result, error) {
	s, err := New(specs, policy, opts...)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx)
}

// Run drives the event loop until every process has completed.
func (s *Scheduler) Run(ctx context.Context) (*Result, error) {
	state := stateAdmitting
	for state != stateDone {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch state {
		case stateAdmitting:
			if s.reg.Done() {
				state = stateDone
				continue
			}
			s.admit()
			if s.ready.Empty() {
				state = stateIdle
			} else {
				state = stateRunning
			}

		case stateIdle:
			if err := s.idle(); err != nil {
				return nil, err
			}
			state = stateAdmitting

		case stateRunning:
			if err := s.runSlice(); err != nil {
				return nil, err
			}
			state = stateAdmitting
		}
	}

	s.logger.Info("simulation finished",
		slog.String("policy", s.policy.Name()),
		slog.Int("processes", s.reg.Len()),
		slog.Int64("makespan", s.clock.Now()),
	)

	return &Result{
		Policy:     s.policy.Name(),
		Timeline:   s.timeline.Segments(),
		Slices:     s.timeline.Slices(),
		Completed:  s.reg.Completed(),
		Makespan:   s.clock.Now(),
		Iterations: s.clock.Count(),
	}, nil
}

func (s *Scheduler) admit() {
	now := s.clock.Now()
	for _, i := range s.ready.Admit(now) {
		p := s.reg.At(i)
		s.emit(StatusEvent{Time: now, Kind: StatusAdmit, PID: p.PID, Remaining: p.Remaining})
	}
}

// idle jumps the clock to the next arrival and records the gap.
func (s *Scheduler) idle() error {
	now := s.clock.Now()
	next, ok := s.reg.NextArrival(now)
	if !ok {
		return fmt.Errorf("no runnable process at t=%d with %d of %d completed",
			now, len(s.reg.completed), s.reg.Len())
	}

	s.timeline.idle(now, next)
	s.emit(StatusEvent{Time: now, Kind: StatusIdle, Ran: next - now})
	return s.clock.JumpTo(next)
}

// runSlice selects the best ready process and runs it for one policy slice.
func (s *Scheduler) runSlice() error {
	i, _ := s.ready.Pop()
	p := s.reg.At(i)
	now := s.clock.Now()

	if s.running >= 0 && s.running != i {
		if prev := s.reg.At(s.running); prev.State == StateReady {
			s.emit(StatusEvent{Time: now, Kind: StatusPreempt, PID: prev.PID, Remaining: prev.Remaining})
		}
	}
	if s.running != i || s.lastEnd != now {
		p.LastStart = now
	}
	if p.FirstStart < 0 {
		p.FirstStart = now
	}

	next, hasNext := s.reg.NextArrival(now)
	d := s.policy.Slice(p, now, next, hasNext)
	s.emit(StatusEvent{Time: now, Kind: StatusDispatch, PID: p.PID, Remaining: p.Remaining, Ran: d})

	if err := s.clock.Advance(d); err != nil {
		return fmt.Errorf("pid %d: %w", p.PID, err)
	}
	end := s.clock.Now()
	p.Remaining -= d
	s.timeline.ran(p.PID, now, end)
	s.running, s.lastEnd = i, end

	if p.Remaining > 0 {
		s.ready.Requeue(i)
		return nil
	}

	s.reg.complete(i, end)
	s.timeline.completed(p)
	s.emit(StatusEvent{Time: end, Kind: StatusFinish, PID: p.PID, Ran: p.Turnaround})
	return nil
}

func (s *Scheduler) emit(ev StatusEvent) {
	s.logger.Debug(ev.Kind.String(),
		slog.String("policy", s.policy.Name()),
		slog.Int64("t", ev.Time),
		slog.Int("pid", ev.PID),
		slog.Int64("remaining", ev.Remaining),
		slog.Int64("ran", ev.Ran),
	)
	for _, h := range s.hooks {
		h.Func(ev)
	}
}
