package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// Transport records outbound request counts and latency for every round trip
type Transport struct {
	Base http.RoundTripper
}

// NewTransport wraps base, or http.DefaultTransport when base is nil
func NewTransport(base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base}
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	path := NormalizePath(req.URL.Path)

	resp, err := t.Base.RoundTrip(req)

	status := StatusTransportError
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	APIRequestsTotal.WithLabelValues(req.Method, path, status).Inc()
	APIRequestDuration.WithLabelValues(req.Method, path).Observe(time.Since(start).Seconds())

	return resp, err
}
