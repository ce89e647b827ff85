package sched

import "sort"

// Summary aggregates the per-process metrics of one run.
type Summary struct {
	Policy            string
	Processes         []Process // sorted by PID
	AverageTurnaround float64
	AverageWaiting    float64
	AverageResponse   float64
	Utilization       float64 // busy time / makespan
	Throughput        float64 // processes per time unit
	IdleTime          int64
	Makespan          int64
}

// Summarize computes averages over the completed processes of a result.
func Summarize(r *Result) (Summary, error) {
	if r == nil || len(r.Completed) == 0 {
		return Summary{}, ErrNoProcesses
	}

	procs := make([]Process, len(r.Completed))
	copy(procs, r.Completed)
	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].PID < procs[j].PID
	})

	var turnaround, waiting, response, busy int64
	for i := range procs {
		turnaround += procs[i].Turnaround
		waiting += procs[i].Waiting
		response += procs[i].Response()
		busy += procs[i].Burst
	}

	var idle int64
	for _, seg := range r.Timeline {
		if seg.IsIdle() {
			idle += seg.End - seg.Start
		}
	}

	n := float64(len(procs))
	sum := Summary{
		Policy:            r.Policy,
		Processes:         procs,
		AverageTurnaround: float64(turnaround) / n,
		AverageWaiting:    float64(waiting) / n,
		AverageResponse:   float64(response) / n,
		IdleTime:          idle,
		Makespan:          r.Makespan,
	}
	if r.Makespan > 0 {
		sum.Utilization = float64(busy) / float64(r.Makespan)
		sum.Throughput = n / float64(r.Makespan)
	}
	return sum, nil
}
