package sched

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CompareKeys", func() {
	DescribeTable("ordering",
		func(a, b ReadyKey, want int) {
			Expect(CompareKeys(a, b)).To(Equal(want))
			Expect(CompareKeys(b, a)).To(Equal(-want))
		},
		Entry("primary decides first", ReadyKey{1, 9, 9}, ReadyKey{2, 0, 0}, -1),
		Entry("arrival breaks primary ties", ReadyKey{3, 1, 9}, ReadyKey{3, 2, 0}, -1),
		Entry("index breaks the rest", ReadyKey{3, 2, 0}, ReadyKey{3, 2, 1}, -1),
		Entry("identical keys", ReadyKey{3, 2, 1}, ReadyKey{3, 2, 1}, 0),
	)
})

var _ = Describe("ReadyQueue", func() {
	var (
		reg *Registry
		q   *ReadyQueue
	)

	BeforeEach(func() {
		var err error
		reg, err = NewRegistry(specsOf(
			[3]int64{1, 0, 6},
			[3]int64{2, 0, 2},
			[3]int64{3, 4, 1},
		))
		Expect(err).NotTo(HaveOccurred())
		q = NewReadyQueue(reg, SRT{})
	})

	It("should admit only arrived processes", func() {
		Expect(q.Admit(0)).To(Equal([]int{0, 1}))
		Expect(q.Len()).To(Equal(2))
		Expect(reg.At(2).State).To(Equal(StatePending))
	})

	It("should be idempotent for the same instant", func() {
		q.Admit(0)
		Expect(q.Admit(0)).To(BeEmpty())
		Expect(q.Len()).To(Equal(2))
	})

	It("should not readmit completed processes", func() {
		q.Admit(0)
		i, ok := q.Pop()
		Expect(ok).To(BeTrue())
		reg.complete(i, 2)

		Expect(q.Admit(5)).To(Equal([]int{2}))
		Expect(q.Indices()).To(Equal([]int{2, 0}))
	})

	It("should pop the smallest key", func() {
		q.Admit(4)
		Expect(q.Indices()).To(Equal([]int{2, 1, 0}))

		i, ok := q.Pop()
		Expect(ok).To(BeTrue())
		Expect(i).To(Equal(2))
		Expect(q.Len()).To(Equal(2))
	})

	It("should reorder a requeued process by its new remaining time", func() {
		q.Admit(0)
		i, _ := q.Pop()
		Expect(i).To(Equal(1))

		reg.At(1).Remaining = 2
		q.Requeue(i)
		Expect(q.Indices()).To(Equal([]int{1, 0}))

		j, _ := q.Pop()
		Expect(j).To(Equal(1))
		k, _ := q.Pop()
		Expect(k).To(Equal(0))

		reg.At(0).Remaining = 1
		q.Requeue(k)
		q.Requeue(j)
		Expect(q.Indices()).To(Equal([]int{0, 1}))
	})

	It("should report an empty queue", func() {
		_, ok := q.Pop()
		Expect(ok).To(BeFalse())
		Expect(q.Empty()).To(BeTrue())
	})
})
