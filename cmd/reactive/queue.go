package main

// runQueue holds scheduled re-runs until it is flushed.
type runQueue struct {
	runs []func()
}

func newRunQueue() *runQueue {
	return &runQueue{
		runs: make([]func(), 0),
	}
}

func (q *runQueue) Enqueue(run func()) {
	q.runs = append(q.runs, run)
}

func (q *runQueue) Len() int {
	return len(q.runs)
}

// Flush runs everything queued, including runs queued while flushing,
// and returns how many ran.
func (q *runQueue) Flush() int {
	n := 0

	for len(q.runs) > 0 {
		runs := q.runs
		q.runs = make([]func(), 0)

		for _, run := range runs {
			run()
			n++
		}
	}

	return n
}
