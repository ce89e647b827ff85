// Package report renders simulation results for humans.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/MarshallK03/SRT-Scheduling-Algorithm/internal/sched"
)

// Title prints a framed heading.
func Title(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 50))
	_, _ = fmt.Fprintln(w, strings.ToUpper(title))
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 50))
}

// Gantt prints one line per timeline segment. label selects whether run
// segments start at the process arrival or at its actual start.
func Gantt(w io.Writer, timeline []sched.Segment, label string) {
	_, _ = fmt.Fprintln(w, "Process Execution Order (Gantt Chart):")
	for _, seg := range timeline {
		if seg.IsIdle() {
			_, _ = fmt.Fprintf(w, "IDLE: %d -> %d\n", seg.Start, seg.End)
			continue
		}
		start := seg.Start
		if label == sched.LabelArrival {
			start = seg.Arrival
		}
		_, _ = fmt.Fprintf(w, "P%d: %d -> %d\n", seg.PID, start, seg.End)
	}
}

// Slices prints every contiguous span a process held the CPU, in a single
// bar: |P1|P2|P3| followed by the boundary instants.
func Slices(w io.Writer, slices []sched.Slice) {
	if len(slices) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, "CPU Slices:")

	var bar, ticks strings.Builder
	bar.WriteString("|")
	var prevEnd int64 = -1
	for _, s := range slices {
		if prevEnd >= 0 && s.Start != prevEnd {
			cell := pad("idle", 6)
			bar.WriteString(cell + "|")
			ticks.WriteString(pad(strconv.FormatInt(prevEnd, 10), len(cell)+1))
		}
		cell := pad("P"+strconv.Itoa(s.PID), 6)
		bar.WriteString(cell + "|")
		ticks.WriteString(pad(strconv.FormatInt(s.Start, 10), len(cell)+1))
		prevEnd = s.End
	}
	ticks.WriteString(strconv.FormatInt(prevEnd, 10))

	_, _ = fmt.Fprintln(w, bar.String())
	_, _ = fmt.Fprintln(w, ticks.String())
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Table prints the per-process metrics sorted by PID and the averages.
func Table(w io.Writer, sum sched.Summary) {
	_, _ = fmt.Fprintln(w, "Process Scheduling Details:")

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"PID", "Arrival", "Burst", "Completion", "Turnaround", "Waiting"})
	for _, p := range sum.Processes {
		table.Append([]string{
			strconv.Itoa(p.PID),
			strconv.FormatInt(p.Arrival, 10),
			strconv.FormatInt(p.Burst, 10),
			strconv.FormatInt(p.Completion, 10),
			strconv.FormatInt(p.Turnaround, 10),
			strconv.FormatInt(p.Waiting, 10),
		})
	}
	table.Render()

	_, _ = fmt.Fprintf(w, "Average Turnaround Time: %.2f\n", sum.AverageTurnaround)
	_, _ = fmt.Fprintf(w, "Average Waiting Time: %.2f\n", sum.AverageWaiting)
	_, _ = fmt.Fprintf(w, "Average Response Time: %.2f\n", sum.AverageResponse)
	_, _ = fmt.Fprintf(w, "CPU Utilization: %.2f%%  Throughput: %.3f/t  Idle: %d\n",
		sum.Utilization*100, sum.Throughput, sum.IdleTime)
}

// Print renders a full report of one run.
func Print(w io.Writer, r *sched.Result, label string) error {
	sum, err := sched.Summarize(r)
	if err != nil {
		return err
	}

	Title(w, policyTitle(r.Policy))
	Gantt(w, r.Timeline, label)
	_, _ = fmt.Fprintln(w)
	Slices(w, r.Slices)
	_, _ = fmt.Fprintln(w)
	Table(w, sum)
	_, _ = fmt.Fprintln(w)
	return nil
}

func policyTitle(name string) string {
	switch name {
	case "sjf":
		return "Shortest Job First (non-preemptive)"
	case "srt":
		return "Shortest Remaining Time (preemptive)"
	default:
		return name
	}
}
