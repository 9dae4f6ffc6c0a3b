// Package network provides the shared HTTP client used for Gemini and release lookups.
package network

import (
	"net/http"
	"time"
)

// Client is shared across the application. It has no overall timeout;
// requests are bounded only by their context.
var Client = &http.Client{
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 10
	t.MaxIdleConnsPerHost = 2
	t.IdleConnTimeout = 90 * time.Second
	t.TLSHandshakeTimeout = 15 * time.Second
	t.ExpectContinueTimeout = time.Second
	return t
}
