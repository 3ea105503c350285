package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/juju/errors"

	"restqueue/queue"
)

// Forwarder sends a request to the API through the dispatcher.
type Forwarder interface {
	Forward(ctx context.Context, method, path string, headers http.Header, body []byte) ([]byte, error)
}

// hopHeaders are not forwarded to the API.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// HTTPHandler handles incoming HTTP requests and forwards them through the request queue
type HTTPHandler struct {
	Backend Forwarder
}

// NewHTTPHandler creates a new instance of HTTPHandler
func NewHTTPHandler(b Forwarder) *HTTPHandler {
	return &HTTPHandler{
		Backend: b,
	}
}

// ServeHTTP implements the http.Handler interface for HTTPHandler
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, callingRequest *http.Request) {
	// callingRequest is the HTTP request from the client that initiated this function.

	// Read the request body
	body, err := io.ReadAll(callingRequest.Body)
	if err != nil {
		logAndReturnError(w, "Bad Request: unable to read body", http.StatusBadRequest)
		return
	}
	callingRequest.Body.Close()

	headers := callingRequest.Header.Clone()
	for _, name := range hopHeaders {
		headers.Del(name)
	}

	path := callingRequest.URL.EscapedPath()
	if callingRequest.URL.RawQuery != "" {
		path += "?" + callingRequest.URL.RawQuery
	}

	// The request is abandoned if the client disconnects before it is served.
	res, err := h.Backend.Forward(callingRequest.Context(), callingRequest.Method, path, headers, body)
	if err != nil {
		if callingRequest.Context().Err() != nil {
			log.Debugf("Client %s disconnected, request abandoned", callingRequest.RemoteAddr)
			return
		}
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(res)
	logRequest(callingRequest)
}

func writeError(w http.ResponseWriter, err error) {
	if code, ok := queue.IsHTTPError(err); ok {
		logAndReturnError(w, http.StatusText(code), code, err.Error())
		return
	}
	switch {
	case errors.Is(err, queue.ErrInvalidURI), errors.Is(err, queue.ErrInvalidRequest):
		logAndReturnError(w, "Bad Request: invalid request", http.StatusBadRequest, err.Error())
	case queue.IsTransportError(err):
		logAndReturnError(w, "Bad Gateway: failed to reach backend", http.StatusBadGateway, err.Error())
	case errors.Is(err, queue.ErrSubmitterClosed):
		logAndReturnError(w, "Service Unavailable: shutting down", http.StatusServiceUnavailable, err.Error())
	default:
		logAndReturnError(w, "Internal Server Error", http.StatusInternalServerError, err.Error())
	}
}
