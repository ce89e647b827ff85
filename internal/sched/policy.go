package sched

import (
	"errors"
	"fmt"
	"strings"
)

// Policy decides what the ready set is ordered by and how long a selected
// process may run before control returns to the loop.
type Policy interface {
	Name() string
	// Key is the primary selection key; smaller runs first.
	Key(p *Process) int64
	// Slice returns how long p runs from now. next is the next arrival
	// instant, valid only when hasNext is true.
	Slice(p *Process, now, next int64, hasNext bool) int64
}

// SJF is non-preemptive shortest job first.
type SJF struct{}

func (SJF) Name() string { return "sjf" }

func (SJF) Key(p *Process) int64 { return p.Burst }

// Slice runs the process to completion.
func (SJF) Slice(p *Process, _, _ int64, _ bool) int64 { return p.Remaining }

// SRT is preemptive shortest remaining time.
type SRT struct{}

func (SRT) Name() string { return "srt" }

func (SRT) Key(p *Process) int64 { return p.Remaining }

// Slice stops at the next arrival, the only instant the choice can change.
func (SRT) Slice(p *Process, now, next int64, hasNext bool) int64 {
	if hasNext && next-now < p.Remaining {
		return next - now
	}
	return p.Remaining
}

var ErrUnknownPolicy = errors.New("unknown policy")

// PolicyByName resolves "sjf" or "srt", case-insensitively.
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sjf":
		return SJF{}, nil
	case "srt", "srtf":
		return SRT{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownPolicy)
	}
}

// Policies lists every available policy in a stable order.
func Policies() []Policy {
	return []Policy{SJF{}, SRT{}}
}
