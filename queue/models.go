package queue

import (
	"net/http"
	"time"
)

// Request is an HTTP request to be dispatched. It must not be modified after
// it has been submitted.
type Request struct {
	Method string
	URI    string
	Header http.Header
	Body   []byte
}

// NewGetRequest returns a GET request for uri.
func NewGetRequest(uri string) *Request {
	return &Request{Method: http.MethodGet, URI: uri}
}

func (r *Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

// Result is the outcome of a dispatched request. Body holds the full
// response body when Err is nil.
type Result struct {
	Body []byte
	Err  error
}

// entry is a request paired with the sending half of its result channel.
type entry struct {
	id         string
	req        *Request
	sender     *sender
	enqueuedAt time.Time
}

// Stats is a snapshot of the dispatcher counters.
type Stats struct {
	Queued    int
	InFlight  int
	Completed uint64
	Failed    uint64
	Cancelled uint64
}
