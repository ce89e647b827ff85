package sched

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// (pid, arrival, burst)
func specsOf(rows ...[3]int64) []Spec {
	specs := make([]Spec, len(rows))
	for i, r := range rows {
		specs[i] = Spec{PID: int(r[0]), Arrival: r[1], Burst: r[2], Priority: 1}
	}
	return specs
}

var textbook = specsOf(
	[3]int64{1, 0, 3},
	[3]int64{2, 2, 6},
	[3]int64{3, 4, 4},
	[3]int64{4, 6, 5},
	[3]int64{5, 8, 2},
)

func byPID(procs []Process) map[int]Process {
	m := make(map[int]Process, len(procs))
	for _, p := range procs {
		m[p.PID] = p
	}
	return m
}

func completionOrder(procs []Process) []int {
	pids := make([]int, len(procs))
	for i, p := range procs {
		pids[i] = p.PID
	}
	return pids
}

func runOrFail(specs []Spec, p Policy, opts ...Option) *Result {
	r, err := Simulate(context.Background(), specs, p, opts...)
	Expect(err).NotTo(HaveOccurred())
	return r
}

var _ = Describe("Scheduler", func() {
	Context("SJF on the textbook workload", func() {
		var r *Result

		BeforeEach(func() {
			r = runOrFail(textbook, SJF{})
		})

		It("should run each job to completion in shortest-burst order", func() {
			Expect(r.Policy).To(Equal("sjf"))
			Expect(r.Timeline).To(Equal([]Segment{
				{Kind: SegmentRun, PID: 1, Arrival: 0, Start: 0, End: 3},
				{Kind: SegmentRun, PID: 2, Arrival: 2, Start: 3, End: 9},
				{Kind: SegmentRun, PID: 5, Arrival: 8, Start: 9, End: 11},
				{Kind: SegmentRun, PID: 3, Arrival: 4, Start: 11, End: 15},
				{Kind: SegmentRun, PID: 4, Arrival: 6, Start: 15, End: 20},
			}))
			Expect(completionOrder(r.Completed)).To(Equal([]int{1, 2, 5, 3, 4}))
			Expect(r.Makespan).To(BeEquivalentTo(20))
		})

		It("should compute turnaround and waiting times", func() {
			procs := byPID(r.Completed)
			turnaround := map[int]int64{1: 3, 2: 7, 3: 11, 4: 14, 5: 3}
			waiting := map[int]int64{1: 0, 2: 1, 3: 7, 4: 9, 5: 1}
			for pid := range turnaround {
				Expect(procs[pid].Turnaround).To(Equal(turnaround[pid]), "pid %d", pid)
				Expect(procs[pid].Waiting).To(Equal(waiting[pid]), "pid %d", pid)
			}

			sum, err := Summarize(r)
			Expect(err).NotTo(HaveOccurred())
			Expect(sum.AverageTurnaround).To(BeNumerically("~", 7.6, 1e-9))
			Expect(sum.AverageWaiting).To(BeNumerically("~", 3.6, 1e-9))
		})
	})

	Context("SRT on the textbook workload", func() {
		var r *Result

		BeforeEach(func() {
			r = runOrFail(textbook, SRT{})
		})

		It("should preempt when a shorter job arrives", func() {
			procs := byPID(r.Completed)
			completion := map[int]int64{1: 3, 2: 15, 3: 8, 4: 20, 5: 10}
			for pid, want := range completion {
				Expect(procs[pid].Completion).To(Equal(want), "pid %d", pid)
			}
			Expect(completionOrder(r.Completed)).To(Equal([]int{1, 3, 5, 2, 4}))
		})

		It("should compute turnaround and waiting times", func() {
			procs := byPID(r.Completed)
			turnaround := map[int]int64{1: 3, 2: 13, 3: 4, 4: 14, 5: 2}
			waiting := map[int]int64{1: 0, 2: 7, 3: 0, 4: 9, 5: 0}
			for pid := range turnaround {
				Expect(procs[pid].Turnaround).To(Equal(turnaround[pid]), "pid %d", pid)
				Expect(procs[pid].Waiting).To(Equal(waiting[pid]), "pid %d", pid)
			}

			sum, err := Summarize(r)
			Expect(err).NotTo(HaveOccurred())
			Expect(sum.AverageTurnaround).To(BeNumerically("~", 7.2, 1e-9))
			Expect(sum.AverageWaiting).To(BeNumerically("~", 3.2, 1e-9))
		})

		It("should keep both the arrival and the final start on segments", func() {
			Expect(r.Timeline).To(Equal([]Segment{
				{Kind: SegmentRun, PID: 1, Arrival: 0, Start: 0, End: 3},
				{Kind: SegmentRun, PID: 3, Arrival: 4, Start: 4, End: 8},
				{Kind: SegmentRun, PID: 5, Arrival: 8, Start: 8, End: 10},
				{Kind: SegmentRun, PID: 2, Arrival: 2, Start: 10, End: 15},
				{Kind: SegmentRun, PID: 4, Arrival: 6, Start: 15, End: 20},
			}))
		})

		It("should merge consecutive slices of the same process", func() {
			Expect(r.Slices).To(Equal([]Slice{
				{PID: 1, Start: 0, End: 3},
				{PID: 2, Start: 3, End: 4},
				{PID: 3, Start: 4, End: 8},
				{PID: 5, Start: 8, End: 10},
				{PID: 2, Start: 10, End: 15},
				{PID: 4, Start: 15, End: 20},
			}))
		})

		It("should record the first dispatch for response time", func() {
			procs := byPID(r.Completed)
			p2 := procs[2]
			Expect(p2.FirstStart).To(BeEquivalentTo(3))
			Expect(p2.Response()).To(BeEquivalentTo(1))
		})
	})

	DescribeTable("a single process",
		func(p Policy) {
			r := runOrFail(specsOf([3]int64{1, 0, 5}), p)
			Expect(r.Completed).To(HaveLen(1))
			Expect(r.Completed[0].Completion).To(BeEquivalentTo(5))
			Expect(r.Completed[0].Turnaround).To(BeEquivalentTo(5))
			Expect(r.Completed[0].Waiting).To(BeZero())
			for _, seg := range r.Timeline {
				Expect(seg.IsIdle()).To(BeFalse())
			}
		},
		Entry("SJF", SJF{}),
		Entry("SRT", SRT{}),
	)

	DescribeTable("a leading idle gap",
		func(p Policy) {
			r := runOrFail(specsOf([3]int64{1, 5, 3}), p)
			Expect(r.Timeline).To(Equal([]Segment{
				{Kind: SegmentIdle, Start: 0, End: 5},
				{Kind: SegmentRun, PID: 1, Arrival: 5, Start: 5, End: 8},
			}))
		},
		Entry("SJF", SJF{}),
		Entry("SRT", SRT{}),
	)

	DescribeTable("idle segments",
		func(p Policy, specs []Spec, wantIdle []Segment) {
			r := runOrFail(specs, p)
			var idle []Segment
			for _, seg := range r.Timeline {
				if seg.IsIdle() {
					idle = append(idle, seg)
				}
			}
			Expect(idle).To(Equal(wantIdle))
		},
		Entry("gap in the middle under SJF", SJF{},
			specsOf([3]int64{1, 0, 2}, [3]int64{2, 5, 1}),
			[]Segment{{Kind: SegmentIdle, Start: 2, End: 5}}),
		Entry("gap in the middle under SRT", SRT{},
			specsOf([3]int64{1, 0, 2}, [3]int64{2, 5, 1}, [3]int64{3, 9, 1}),
			[]Segment{
				{Kind: SegmentIdle, Start: 2, End: 5},
				{Kind: SegmentIdle, Start: 6, End: 9},
			}),
		Entry("back-to-back arrivals never idle", SRT{},
			specsOf([3]int64{1, 0, 2}, [3]int64{2, 2, 1}),
			[]Segment(nil)),
	)

	Context("tie-breaking", func() {
		It("should prefer the earlier arrival on equal bursts under SJF", func() {
			r := runOrFail(specsOf(
				[3]int64{1, 0, 5},
				[3]int64{2, 2, 3},
				[3]int64{3, 1, 3},
			), SJF{})
			Expect(completionOrder(r.Completed)).To(Equal([]int{1, 3, 2}))
		})

		It("should keep the earlier arrival running on equal remaining time under SRT", func() {
			var preempts int
			r := runOrFail(specsOf([3]int64{1, 0, 4}, [3]int64{2, 2, 2}), SRT{},
				WithHook(HookFunc(func(ev StatusEvent) {
					if ev.Kind == StatusPreempt {
						preempts++
					}
				})))
			Expect(completionOrder(r.Completed)).To(Equal([]int{1, 2}))
			Expect(preempts).To(BeZero())
		})

		DescribeTable("equal key and arrival falls back to input order",
			func(p Policy) {
				specs := specsOf([3]int64{10, 0, 2}, [3]int64{4, 0, 2}, [3]int64{7, 0, 2})
				first := runOrFail(specs, p)
				Expect(completionOrder(first.Completed)).To(Equal([]int{10, 4, 7}))

				again := runOrFail(specs, p)
				Expect(again.Timeline).To(Equal(first.Timeline))
			},
			Entry("SJF", SJF{}),
			Entry("SRT", SRT{}),
		)
	})

	DescribeTable("invariants",
		func(p Policy, specs []Spec) {
			var (
				events   []StatusEvent
				lastStep int64 = -1
			)
			r := runOrFail(specs, p, WithHook(HookFunc(func(ev StatusEvent) {
				events = append(events, ev)
			})))

			By("completing every process exactly once")
			Expect(r.Completed).To(HaveLen(len(specs)))
			seen := map[int]bool{}
			for _, proc := range r.Completed {
				Expect(seen[proc.PID]).To(BeFalse())
				seen[proc.PID] = true
			}

			By("conserving turnaround and waiting time")
			for _, proc := range r.Completed {
				Expect(proc.Remaining).To(BeZero())
				Expect(proc.Turnaround).To(Equal(proc.Completion - proc.Arrival))
				Expect(proc.Waiting).To(Equal(proc.Turnaround - proc.Burst))
				Expect(proc.Waiting).To(BeNumerically(">=", 0))
			}

			By("never moving the clock backwards and never stalling")
			var prev int64
			for _, ev := range events {
				Expect(ev.Time).To(BeNumerically(">=", prev))
				prev = ev.Time
				if ev.Kind == StatusDispatch || ev.Kind == StatusIdle {
					Expect(ev.Time).To(BeNumerically(">", lastStep))
					Expect(ev.Ran).To(BeNumerically(">", 0))
					lastStep = ev.Time
				}
			}
			Expect(r.Iterations).To(BeNumerically(">=", len(specs)))
		},
		Entry("SJF textbook", SJF{}, textbook),
		Entry("SRT textbook", SRT{}, textbook),
		Entry("SRT staggered with gaps", SRT{}, specsOf(
			[3]int64{1, 3, 8}, [3]int64{2, 4, 1}, [3]int64{3, 5, 1},
			[3]int64{4, 20, 2}, [3]int64{5, 21, 9}, [3]int64{6, 22, 1},
		)),
		Entry("SJF staggered with gaps", SJF{}, specsOf(
			[3]int64{1, 3, 8}, [3]int64{2, 4, 1}, [3]int64{3, 5, 1},
			[3]int64{4, 20, 2}, [3]int64{5, 21, 9}, [3]int64{6, 22, 1},
		)),
	)

	It("should emit a preempt event when a shorter job takes the CPU", func() {
		var preempted []int
		runOrFail(textbook, SRT{}, WithHook(HookFunc(func(ev StatusEvent) {
			if ev.Kind == StatusPreempt {
				preempted = append(preempted, ev.PID)
				Expect(ev.Time).To(BeEquivalentTo(4))
			}
		})))
		Expect(preempted).To(Equal([]int{2}))
	})

	It("should reject invalid input before running", func() {
		_, err := New(specsOf([3]int64{1, 0, 0}), SJF{})
		Expect(err).To(MatchError(ErrNonPositiveBurst))

		_, err = New(nil, SRT{})
		Expect(err).To(MatchError(ErrNoProcesses))
	})

	It("should stop when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Simulate(ctx, textbook, SRT{})
		Expect(err).To(MatchError(context.Canceled))
	})
})
