// Package network provides the pre-configured HTTP client used to talk to the extraction service.
package network

import (
	"net/http"
	"time"
)

// Client is shared by every service call. The timeout is generous because
// playlist extraction on the service side can take tens of seconds.
var Client = New(2 * time.Minute)

// New builds a client with the tuned transport and the given overall timeout.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: newTransport(),
	}
}

// newTransport initializes a tuned http.Transport. A session talks to a single
// host, so the per-host pool matters more than the global one.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 16
	t.MaxIdleConnsPerHost = 16
	t.MaxConnsPerHost = 32
	t.IdleConnTimeout = 90 * time.Second
	t.ResponseHeaderTimeout = time.Minute
	t.ExpectContinueTimeout = time.Second
	return t
}
