package queue

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/juju/clock"
)

// requestQueue is an unbounded FIFO of entries with many producers and a
// single consumer. It closes once its last producer handle is closed.
type requestQueue struct {
	entries   []*entry
	mutex     sync.Mutex
	cond      *sync.Cond
	producers int
	closed    bool
}

func newRequestQueue() *requestQueue {
	q := &requestQueue{
		entries:   make([]*entry, 0),
		producers: 1,
	}
	q.cond = sync.NewCond(&q.mutex)
	return q
}

// push appends e. It never blocks on the consumer and reports false only if
// the queue is already closed.
func (q *requestQueue) push(e *entry) bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.closed {
		return false
	}
	q.entries = append(q.entries, e)
	q.cond.Signal()
	return true
}

// pop waits for the next entry. It returns false once the queue is closed
// and drained.
func (q *requestQueue) pop() (*entry, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	for len(q.entries) == 0 {
		if q.closed {
			return nil, false
		}
		q.cond.Wait()
	}
	e := q.entries[0]
	q.entries[0] = nil
	q.entries = q.entries[1:]
	return e, true
}

func (q *requestQueue) addProducer() bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.closed {
		return false
	}
	q.producers++
	return true
}

func (q *requestQueue) removeProducer() {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.producers--
	if q.producers == 0 {
		q.closed = true
		q.cond.Broadcast()
	}
}

func (q *requestQueue) len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.entries)
}

// Submitter is a producer handle to the request queue. Handles may be cloned
// and used from any goroutine; the queue closes when every handle has been
// closed, which in turn stops the dispatch loop.
type Submitter struct {
	queue  *requestQueue
	clock  clock.Clock
	closed atomic.Bool
}

// Submit enqueues req and returns the receiver its result will be delivered
// on. It never blocks.
func (s *Submitter) Submit(req *Request) *Receiver {
	tx, rx := newOneshot()
	if req == nil {
		tx.send(Result{Err: ErrInvalidRequest})
		return rx
	}
	if s.closed.Load() {
		tx.send(Result{Err: ErrSubmitterClosed})
		return rx
	}
	e := &entry{
		id:         uuid.NewString(),
		req:        req,
		sender:     tx,
		enqueuedAt: s.clock.Now(),
	}
	if !s.queue.push(e) {
		tx.send(Result{Err: ErrSubmitterClosed})
	}
	return rx
}

// Clone returns a new handle to the same queue. Cloning a closed handle
// returns a closed handle.
func (s *Submitter) Clone() *Submitter {
	clone := &Submitter{queue: s.queue, clock: s.clock}
	if s.closed.Load() || !s.queue.addProducer() {
		clone.closed.Store(true)
	}
	return clone
}

// Close releases the handle. It is idempotent.
func (s *Submitter) Close() {
	if s.closed.CompareAndSwap(false, true) {
		s.queue.removeProducer()
	}
}
