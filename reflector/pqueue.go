// SPDX-License-Identifier: MIT
// Package: ivpbuild/reflector
//
// pqueue.go - bounded max-priority queue of piece indices.
//
// Design:
//   • A container/heap max-heap ordered by value, lower key first on ties.
//   • Capacity is 2^levels-1. Inserting into a full queue evicts the
//     current minimum when the new value beats it, otherwise the new entry
//     is dropped.
//   • A queue built with levels <= 0 is null: it accepts nothing.

package reflector

import "container/heap"

type pqItem struct {
	key int
	val float64
}

// pqHeap implements heap.Interface.
type pqHeap []pqItem

func (h pqHeap) Len() int { return len(h) }
func (h pqHeap) Less(i, j int) bool {
	if h[i].val != h[j].val {
		return h[i].val > h[j].val
	}
	return h[i].key < h[j].key
}
func (h pqHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *pqHeap) Push(x any)   { *h = append(*h, x.(pqItem)) }
func (h *pqHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// PQueue holds (piece index, value) pairs and pops the largest value first.
type PQueue struct {
	levels int
	limit  int
	h      pqHeap
}

// NewPQueue returns a queue holding up to 2^levels-1 entries. levels is
// capped at MaxQueueLevels; levels <= 0 yields a null queue.
func NewPQueue(levels int) *PQueue {
	if levels > MaxQueueLevels {
		levels = MaxQueueLevels
	}
	if levels < 0 {
		levels = 0
	}
	return &PQueue{levels: levels, limit: 1<<uint(levels) - 1}
}

// Null reports whether the queue has no capacity.
func (q *PQueue) Null() bool { return q == nil || q.limit == 0 }

// Levels returns the level count the queue was built with.
func (q *PQueue) Levels() int { return q.levels }

// Len returns the number of queued entries.
func (q *PQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.h)
}

// Insert queues key with value val and reports whether it was kept.
// Complexity: O(log n), O(n) when full.
func (q *PQueue) Insert(key int, val float64) bool {
	if q.Null() {
		return false
	}
	if len(q.h) < q.limit {
		heap.Push(&q.h, pqItem{key: key, val: val})
		return true
	}
	// the minimum of a max-heap is a leaf
	lowIx := len(q.h) / 2
	for i := lowIx + 1; i < len(q.h); i++ {
		if q.h.Less(lowIx, i) {
			lowIx = i
		}
	}
	if val <= q.h[lowIx].val {
		return false
	}
	q.h[lowIx] = pqItem{key: key, val: val}
	heap.Fix(&q.h, lowIx)
	return true
}

// PeekBest returns the best entry without removing it.
func (q *PQueue) PeekBest() (key int, val float64, ok bool) {
	if q.Len() == 0 {
		return -1, 0, false
	}
	return q.h[0].key, q.h[0].val, true
}

// PopBest removes and returns the entry with the largest value.
func (q *PQueue) PopBest() (key int, val float64, ok bool) {
	if q.Len() == 0 {
		return -1, 0, false
	}
	it := heap.Pop(&q.h).(pqItem)
	return it.key, it.val, true
}

// Remap rewrites every key k to idxMap[k] and drops entries whose key is
// out of range or maps to a negative index.
// Complexity: O(n).
func (q *PQueue) Remap(idxMap []int) {
	if q.Null() {
		return
	}
	kept := q.h[:0]
	for _, it := range q.h {
		if it.key < 0 || it.key >= len(idxMap) || idxMap[it.key] < 0 {
			continue
		}
		kept = append(kept, pqItem{key: idxMap[it.key], val: it.val})
	}
	q.h = kept
	heap.Init(&q.h)
}
