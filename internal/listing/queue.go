package listing

import (
	"container/heap"
	"context"
	"log/slog"
	"sync"
)

// Priority orders refresh tasks. Lower values run first.
type Priority int

const (
	// PriorityUser marks a user-triggered search.
	PriorityUser Priority = iota
	// PriorityBackground marks a scheduled cache refresh.
	PriorityBackground
)

type task struct {
	priority Priority
	seq      int // FIFO tie-break within a priority
	location string
}

type taskHeap []task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}

// Queue is a bounded-concurrency priority queue for listing refreshes.
// User-triggered work always runs ahead of background refreshes. Locations
// already queued are not enqueued twice.
type Queue struct {
	mu      sync.Mutex
	heap    taskHeap
	pending map[string]bool
	seq     int
	notify  chan struct{}
	workers int
	run     func(ctx context.Context, location string)
}

// NewQueue creates a refresh queue with the given worker count.
// run is invoked once per dequeued location.
func NewQueue(workers int, run func(ctx context.Context, location string)) *Queue {
	if workers < 1 {
		workers = 1
	}
	return &Queue{
		pending: make(map[string]bool),
		notify:  make(chan struct{}, 1),
		workers: workers,
		run:     run,
	}
}

// Enqueue adds a location at the given priority. Duplicate locations are
// dropped while still pending.
func (q *Queue) Enqueue(location string, p Priority) {
	q.mu.Lock()
	if q.pending[location] {
		q.mu.Unlock()
		return
	}
	q.pending[location] = true
	q.seq++
	heap.Push(&q.heap, task{priority: p, seq: q.seq, location: location})
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Len reports the number of pending tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.heap)
}

func (q *Queue) next() (task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.heap) == 0 {
		return task{}, false
	}
	t := heap.Pop(&q.heap).(task)
	delete(q.pending, t.location)
	return t, true
}

// Run starts the workers and blocks until the context is cancelled.
func (q *Queue) Run(ctx context.Context) {
	slog.Info("listing queue: starting", "workers", q.workers)

	var wg sync.WaitGroup
	for i := 0; i < q.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				t, ok := q.next()
				if !ok {
					select {
					case <-ctx.Done():
						return
					case <-q.notify:
						continue
					}
				}
				q.run(ctx, t.location)

				select {
				case <-ctx.Done():
					return
				default:
				}
			}
		}()
	}

	wg.Wait()
	slog.Info("listing queue: shut down")
}
