package queue

import (
	"context"
	"sync"
	"sync/atomic"
)

// Receiver is the receiving half of a one-shot result channel. At most one
// Result is ever delivered on it. A caller that is no longer interested in
// the result calls Abandon; a request that has not been resolved yet is then
// dropped without a result.
type Receiver struct {
	ch          chan Result
	abandoned   chan struct{}
	abandonOnce sync.Once
}

// sender is the sending half of a one-shot result channel. It is owned by
// exactly one queue entry.
type sender struct {
	ch        chan<- Result
	abandoned <-chan struct{}
	sent      atomic.Bool
}

func newOneshot() (*sender, *Receiver) {
	r := &Receiver{
		ch:        make(chan Result, 1),
		abandoned: make(chan struct{}),
	}
	return &sender{ch: r.ch, abandoned: r.abandoned}, r
}

// C returns the channel the result is delivered on.
func (r *Receiver) C() <-chan Result {
	return r.ch
}

// Abandon signals that the caller no longer wants the result. It is safe to
// call more than once and from any goroutine.
func (r *Receiver) Abandon() {
	r.abandonOnce.Do(func() {
		close(r.abandoned)
	})
}

// Wait blocks until the result is delivered or ctx is done. If ctx is done
// first the receiver is abandoned and ctx.Err() is returned.
func (r *Receiver) Wait(ctx context.Context) ([]byte, error) {
	select {
	case res := <-r.ch:
		return res.Body, res.Err
	case <-ctx.Done():
		r.Abandon()
		return nil, ctx.Err()
	}
}

// send delivers res. It reports false if the receiver was abandoned, in which
// case the result is discarded. Calling send twice is a programming error.
func (s *sender) send(res Result) bool {
	if !s.sent.CompareAndSwap(false, true) {
		panic("queue: result sent twice on a one-shot channel")
	}
	select {
	case <-s.abandoned:
		return false
	default:
	}
	s.ch <- res
	return true
}

// isAbandoned reports whether the receiver has been abandoned.
func (s *sender) isAbandoned() bool {
	select {
	case <-s.abandoned:
		return true
	default:
		return false
	}
}
