package sched

import "fmt"

// SegmentKind tells idle spans from process spans on the timeline.
type SegmentKind int

const (
	SegmentRun SegmentKind = iota
	SegmentIdle
)

func (k SegmentKind) String() string {
	if k == SegmentIdle {
		return "IDLE"
	}
	return "RUN"
}

func (k SegmentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *SegmentKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "RUN":
		*k = SegmentRun
	case "IDLE":
		*k = SegmentIdle
	default:
		return fmt.Errorf("unknown segment kind %q", b)
	}
	return nil
}

// Segment is one Gantt chart entry. Idle segments span [Start, End). Run
// segments are recorded when a process completes: End is the completion
// time, Start is the beginning of its final execution span, and Arrival is
// kept so a reporter may label the whole lifespan instead.
type Segment struct {
	Kind    SegmentKind `json:"kind"`
	PID     int         `json:"pid"`
	Arrival int64       `json:"arrival"`
	Start   int64       `json:"start"`
	End     int64       `json:"end"`
}

func (s Segment) IsIdle() bool { return s.Kind == SegmentIdle }

// Slice is a contiguous span during which one process held the CPU.
type Slice struct {
	PID   int   `json:"pid"`
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Timeline is the append-only recorder owned by the event loop.
type Timeline struct {
	segments []Segment
	slices   []Slice
}

func (t *Timeline) idle(start, end int64) {
	t.segments = append(t.segments, Segment{Kind: SegmentIdle, Start: start, End: end})
}

func (t *Timeline) completed(p *Process) {
	t.segments = append(t.segments, Segment{
		Kind:    SegmentRun,
		PID:     p.PID,
		Arrival: p.Arrival,
		Start:   p.LastStart,
		End:     p.Completion,
	})
}

// ran records that pid held the CPU over [start, end), merging with the
// previous slice when it is the same process continuing without a gap.
func (t *Timeline) ran(pid int, start, end int64) {
	if n := len(t.slices); n > 0 {
		last := &t.slices[n-1]
		if last.PID == pid && last.End == start {
			last.End = end
			return
		}
	}
	t.slices = append(t.slices, Slice{PID: pid, Start: start, End: end})
}

func (t *Timeline) Segments() []Segment { return t.segments }

func (t *Timeline) Slices() []Slice { return t.slices }
