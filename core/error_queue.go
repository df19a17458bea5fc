package core

// ErrorQueue stores occurred errors until they are queried by the user,
// e.g. via SYSTem:ERRor:NEXT?.
type ErrorQueue interface {
	// Count is the number of errors currently stored.
	Count() int
	// Push appends an error to the end of the queue. When the queue is
	// full the most recently added entry is replaced by ErrQueueOverflow,
	// as required by IEEE 488.2, 21.8.1.
	Push(err Error)
	// Pop removes and returns the error at the front of the queue.
	Pop() (Error, bool)
	// Clear drops all stored errors.
	Clear()
}

// StaticErrorQueue is a fixed-capacity FIFO ErrorQueue. The backing
// array is allocated once; pushes and pops never allocate.
type StaticErrorQueue struct {
	entries []Error
	head    int
	count   int
}

func NewStaticErrorQueue(capacity int) *StaticErrorQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &StaticErrorQueue{entries: make([]Error, capacity)}
}

func (q *StaticErrorQueue) Count() int {
	return q.count
}

func (q *StaticErrorQueue) Push(err Error) {
	if q.count == len(q.entries) {
		// Overwrite the newest entry, never the oldest.
		q.entries[(q.head+q.count-1)%len(q.entries)] = ErrQueueOverflow
		return
	}
	q.entries[(q.head+q.count)%len(q.entries)] = err
	q.count++
}

func (q *StaticErrorQueue) Pop() (Error, bool) {
	if q.count == 0 {
		return Error{}, false
	}
	err := q.entries[q.head]
	q.head = (q.head + 1) % len(q.entries)
	q.count--
	return err, true
}

func (q *StaticErrorQueue) Clear() {
	q.head = 0
	q.count = 0
}
