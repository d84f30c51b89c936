package scheduler

import (
	"time"

	"github.com/google/uuid"
)

// entry is one pending occurrence in the due-time index.
type entry struct {
	reminderID uuid.UUID
	dueAt      time.Time
	index      int // position in the heap, maintained by heap.Interface
}

// entryHeap is a min-heap ordered by due instant.
type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool { return h[i].dueAt.Before(h[j].dueAt) }

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}
