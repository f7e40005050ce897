package msgbody

import "container/heap"

// moreSpecific reports whether annotation a is more specific than b: shorter
// ranges are more specific, for ranges of equal length the one declared later
// wins.
func moreSpecific(a, b *annotation) bool {
	if a.spn.len() != b.spn.len() {
		return a.spn.len() < b.spn.len()
	}
	return a.index > b.index
}

// coverQueue holds the ranges of one style which have started at the current
// sweep position, the most specific one on top. Ranges which have already
// ended are removed lazily when they reach the top.
type coverQueue []*annotation

func (q coverQueue) Len() int           { return len(q) }
func (q coverQueue) Less(i, j int) bool { return moreSpecific(q[i], q[j]) }
func (q coverQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *coverQueue) Push(x any) {
	*q = append(*q, x.(*annotation))
}

func (q *coverQueue) Pop() any {
	old := *q
	n := len(old)
	a := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return a
}

func (q *coverQueue) add(a *annotation) {
	heap.Push(q, a)
}

// top returns the most specific range covering position pos, or nil.
func (q *coverQueue) top(pos int) *annotation {
	for q.Len() > 0 {
		a := (*q)[0]
		if a.spn.r > pos {
			return a
		}
		heap.Pop(q)
	}
	return nil
}
