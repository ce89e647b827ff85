package sched

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	DescribeTable("validation",
		func(specs []Spec, want error) {
			_, err := NewRegistry(specs)
			Expect(err).To(MatchError(want))
		},
		Entry("empty", []Spec{}, ErrNoProcesses),
		Entry("duplicate pid", specsOf([3]int64{1, 0, 1}, [3]int64{1, 2, 1}), ErrDuplicatePID),
		Entry("negative arrival", specsOf([3]int64{1, -1, 1}), ErrNegativeArrival),
		Entry("zero burst", specsOf([3]int64{1, 0, 0}), ErrNonPositiveBurst),
		Entry("negative burst", specsOf([3]int64{1, 0, -3}), ErrNonPositiveBurst),
	)

	It("should initialize remaining time to the burst", func() {
		reg, err := NewRegistry(specsOf([3]int64{4, 1, 7}))
		Expect(err).NotTo(HaveOccurred())

		p := reg.At(0)
		Expect(p.Remaining).To(BeEquivalentTo(7))
		Expect(p.Completion).To(BeZero())
		Expect(p.FirstStart).To(BeEquivalentTo(-1))
		Expect(p.Response()).To(BeZero())
	})

	It("should find the next future arrival among pending processes", func() {
		reg, err := NewRegistry(specsOf([3]int64{1, 0, 1}, [3]int64{2, 7, 1}, [3]int64{3, 4, 1}))
		Expect(err).NotTo(HaveOccurred())

		next, ok := reg.NextArrival(0)
		Expect(ok).To(BeTrue())
		Expect(next).To(BeEquivalentTo(4))

		_, ok = reg.NextArrival(7)
		Expect(ok).To(BeFalse())
	})

	It("should freeze metrics on completion", func() {
		reg, err := NewRegistry(specsOf([3]int64{1, 2, 3}))
		Expect(err).NotTo(HaveOccurred())

		reg.complete(0, 9)
		Expect(reg.Done()).To(BeTrue())

		done := reg.Completed()
		Expect(done).To(HaveLen(1))
		Expect(done[0].Turnaround).To(BeEquivalentTo(7))
		Expect(done[0].Waiting).To(BeEquivalentTo(4))
		Expect(done[0].State).To(Equal(StateCompleted))
	})
})

var _ = Describe("SimClock", func() {
	It("should only move forward", func() {
		c := NewSimClock()
		Expect(c.Advance(3)).To(Succeed())
		Expect(c.JumpTo(10)).To(Succeed())
		Expect(c.Now()).To(BeEquivalentTo(10))
		Expect(c.Count()).To(BeEquivalentTo(2))

		Expect(c.Advance(0)).NotTo(Succeed())
		Expect(c.JumpTo(4)).NotTo(Succeed())
		Expect(c.Now()).To(BeEquivalentTo(10))
	})
})

var _ = Describe("Policy", func() {
	It("should resolve names", func() {
		p, err := PolicyByName(" SRT ")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Name()).To(Equal("srt"))

		_, err = PolicyByName("rr")
		Expect(err).To(MatchError(ErrUnknownPolicy))
	})

	It("should cut SRT slices at the next arrival", func() {
		p := &Process{Remaining: 6}
		Expect(SRT{}.Slice(p, 3, 4, true)).To(BeEquivalentTo(1))
		Expect(SRT{}.Slice(p, 3, 20, true)).To(BeEquivalentTo(6))
		Expect(SRT{}.Slice(p, 3, 0, false)).To(BeEquivalentTo(6))
		Expect(SJF{}.Slice(p, 3, 4, true)).To(BeEquivalentTo(6))
	})
})
