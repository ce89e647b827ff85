package sched

import (
	"github.com/emirpasic/gods/trees/redblacktree"
)

// ReadyKey orders processes in the ready set. Primary is the policy's
// selection key (burst for SJF, remaining time for SRT).
type ReadyKey struct {
	Primary int64
	Arrival int64
	Index   int // position in the registry, last resort tie-break
}

// CompareKeys orders keys lexicographically by (Primary, Arrival, Index).
func CompareKeys(a, b ReadyKey) int {
	switch {
	case a.Primary < b.Primary:
		return -1
	case a.Primary > b.Primary:
		return 1
	case a.Arrival < b.Arrival:
		return -1
	case a.Arrival > b.Arrival:
		return 1
	case a.Index < b.Index:
		return -1
	case a.Index > b.Index:
		return 1
	default:
		return 0
	}
}

func cmp(a, b any) int {
	return CompareKeys(a.(ReadyKey), b.(ReadyKey))
}

// ReadyQueue is the set of admitted, not yet completed processes, kept in a
// red-black tree so the best candidate is always the leftmost node.
type ReadyQueue struct {
	rbt    *redblacktree.Tree
	policy Policy
	reg    *Registry
}

func NewReadyQueue(reg *Registry, policy Policy) *ReadyQueue {
	return &ReadyQueue{
		rbt:    redblacktree.NewWith(cmp),
		policy: policy,
		reg:    reg,
	}
}

func (q *ReadyQueue) keyOf(i int) ReadyKey {
	p := q.reg.At(i)
	return ReadyKey{Primary: q.policy.Key(p), Arrival: p.Arrival, Index: i}
}

// Admit moves every pending process with Arrival <= now into the ready set
// and returns the indices admitted. Calling it twice with the same now is a no-op.
func (q *ReadyQueue) Admit(now int64) []int {
	var admitted []int
	for i := 0; i < q.reg.Len(); i++ {
		p := q.reg.At(i)
		if p.State != StatePending || p.Arrival > now {
			continue
		}
		p.State = StateReady
		q.rbt.Put(q.keyOf(i), i)
		admitted = append(admitted, i)
	}
	return admitted
}

// Pop removes and returns the index of the best candidate.
func (q *ReadyQueue) Pop() (int, bool) {
	node := q.rbt.Left()
	if node == nil {
		return 0, false
	}
	q.rbt.Remove(node.Key)
	return node.Value.(int), true
}

// Requeue puts a process back under its current key. The key must be
// recomputed because the remaining time may have changed.
func (q *ReadyQueue) Requeue(i int) {
	q.rbt.Put(q.keyOf(i), i)
}

func (q *ReadyQueue) Len() int { return q.rbt.Size() }

func (q *ReadyQueue) Empty() bool { return q.rbt.Empty() }

// Indices lists the queued processes in selection order.
func (q *ReadyQueue) Indices() []int {
	out := make([]int, 0, q.rbt.Size())
	for _, v := range q.rbt.Values() {
		out = append(out, v.(int))
	}
	return out
}
