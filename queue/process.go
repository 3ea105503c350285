package queue

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
)

// HTTPClient executes a single HTTP request. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the optional collaborators of a Dispatcher.
type Config struct {
	// Clock defaults to clock.WallClock.
	Clock clock.Clock

	// Logger defaults to the process-wide logger.
	Logger *logrus.Entry

	// MonitorInterval is how often the queue monitor checks for changes.
	// Zero means one second, a negative value disables the monitor.
	MonitorInterval time.Duration
}

// Dispatcher owns the HTTP client and executes queued requests strictly one
// at a time, in submission order.
type Dispatcher struct {
	queue           *requestQueue
	client          HTTPClient
	clock           clock.Clock
	logger          *logrus.Entry
	monitorInterval time.Duration
	done            chan struct{}

	inFlight  atomic.Int32
	completed atomic.Uint64
	failed    atomic.Uint64
	cancelled atomic.Uint64
}

// Start creates the request queue and starts the dispatch loop on client.
// The returned Submitter is the first producer handle; the loop stops once
// it and all its clones are closed and the queue is drained.
func Start(client HTTPClient, cfg Config) (*Submitter, *Dispatcher) {
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(log)
	}
	if cfg.MonitorInterval == 0 {
		cfg.MonitorInterval = time.Second
	}

	d := &Dispatcher{
		queue:           newRequestQueue(),
		client:          client,
		clock:           cfg.Clock,
		logger:          cfg.Logger,
		monitorInterval: cfg.MonitorInterval,
		done:            make(chan struct{}),
	}
	go d.process()
	if d.monitorInterval > 0 {
		go d.monitor()
	}
	return &Submitter{queue: d.queue, clock: d.clock}, d
}

// Done is closed when the dispatch loop has terminated.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

// Stats returns a snapshot of the queue depth and counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Queued:    d.queue.len(),
		InFlight:  int(d.inFlight.Load()),
		Completed: d.completed.Load(),
		Failed:    d.failed.Load(),
		Cancelled: d.cancelled.Load(),
	}
}

// process drains the queue one entry at a time until it is closed.
func (d *Dispatcher) process() {
	defer close(d.done)
	for {
		e, ok := d.queue.pop()
		if !ok {
			d.logger.Debug("Request queue closed, stopping dispatcher")
			return
		}
		d.dispatch(e)
	}
}

// dispatch executes a single entry and resolves its result channel. It
// returns only once the outcome has been delivered or the caller has gone.
func (d *Dispatcher) dispatch(e *entry) {
	logger := d.logger.WithFields(logrus.Fields{
		"request_id": e.id,
		"method":     e.req.method(),
		"uri":        e.req.URI,
	})

	if e.sender.isAbandoned() {
		d.cancelled.Add(1)
		logger.Warn("HTTP request has been cancelled")
		return
	}
	logger.WithField("queued_for", d.clock.Now().Sub(e.enqueuedAt)).Trace("Sending request")

	d.inFlight.Add(1)
	defer d.inFlight.Add(-1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	doneChan := make(chan Result, 1)
	go func(r *Request) {
		doneChan <- d.execute(ctx, r)
	}(e.req)

	select {
	case res := <-doneChan:
		if res.Err != nil {
			d.failed.Add(1)
			logger.WithError(res.Err).Debug("Request failed")
		} else {
			d.completed.Add(1)
		}
		if !e.sender.send(res) {
			logger.Warn("Unable to send response back to caller")
		}
	case <-e.sender.abandoned:
		// The in-flight call is abandoned by the deferred cancel.
		d.cancelled.Add(1)
		logger.Warn("HTTP request has been cancelled")
	}
}

// execute performs the HTTP call. Only a 200 response has its body read.
func (d *Dispatcher) execute(ctx context.Context, req *Request) Result {
	if err := validateURI(req.URI); err != nil {
		return Result{Err: err}
	}

	hreq, err := http.NewRequestWithContext(ctx, req.method(), req.URI, bytes.NewReader(req.Body))
	if err != nil {
		return Result{Err: fmt.Errorf("%w: %v", ErrInvalidRequest, err)}
	}
	for key, values := range req.Header {
		for _, value := range values {
			hreq.Header.Add(key, value)
		}
	}

	resp, err := d.client.Do(hreq)
	if err != nil {
		return Result{Err: &TransportError{Cause: err}}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Err: &HTTPError{StatusCode: resp.StatusCode}}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Err: &TransportError{Cause: err}}
	}
	return Result{Body: body}
}

func validateURI(uri string) error {
	u, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	return nil
}
