package api

import "github.com/MarshallK03/SRT-Scheduling-Algorithm/internal/sched"

type ScheduleRequest struct {
	Processes []sched.Spec `json:"processes"`
}

type ProcessResponse struct {
	ProcessId      int   `json:"process_id"`
	ArrivalTime    int64 `json:"arrival_time"`
	BurstTime      int64 `json:"burst_time"`
	Priority       int   `json:"priority"`
	CompletionTime int64 `json:"completion_time"`
	TurnAroundTime int64 `json:"turn_around_time"`
	WaitingTime    int64 `json:"waiting_time"`
	ResponseTime   int64 `json:"response_time"`
}

type ScheduleResponse struct {
	Policy                string            `json:"policy"`
	Timeline              []sched.Segment   `json:"timeline"`
	Slices                []sched.Slice     `json:"slices"`
	TotalTime             int64             `json:"total_time"`
	IdleTime              int64             `json:"idle_time"`
	AverageWaitingTime    float64           `json:"average_waiting_time"`
	AverageResponseTime   float64           `json:"average_response_time"`
	AverageTurnAroundTime float64           `json:"average_turn_around_time"`
	CpuUtilization        float64           `json:"cpu_utilization"`
	CpuThroughput         float64           `json:"cpu_throughput"`
	Details               []ProcessResponse `json:"details"`
}

func newScheduleResponse(r *sched.Result) (ScheduleResponse, error) {
	sum, err := sched.Summarize(r)
	if err != nil {
		return ScheduleResponse{}, err
	}

	details := make([]ProcessResponse, 0, len(sum.Processes))
	for i := range sum.Processes {
		p := &sum.Processes[i]
		details = append(details, ProcessResponse{
			ProcessId:      p.PID,
			ArrivalTime:    p.Arrival,
			BurstTime:      p.Burst,
			Priority:       p.Priority,
			CompletionTime: p.Completion,
			TurnAroundTime: p.Turnaround,
			WaitingTime:    p.Waiting,
			ResponseTime:   p.Response(),
		})
	}

	return ScheduleResponse{
		Policy:                r.Policy,
		Timeline:              r.Timeline,
		Slices:                r.Slices,
		TotalTime:             sum.Makespan,
		IdleTime:              sum.IdleTime,
		AverageWaitingTime:    sum.AverageWaiting,
		AverageResponseTime:   sum.AverageResponse,
		AverageTurnAroundTime: sum.AverageTurnaround,
		CpuUtilization:        sum.Utilization,
		CpuThroughput:         sum.Throughput,
		Details:               details,
	}, nil
}
