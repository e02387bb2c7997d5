package utils

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ThrottledTransport is an http.RoundTripper that gates every outgoing
// request through a shared rate limiter. It is a cooperative ceiling on top
// of the per-collector delay windows, not a correctness mechanism.
type ThrottledTransport struct {
	Transport http.RoundTripper
	Limiter   *rate.Limiter
}

func (t *ThrottledTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return transport.RoundTrip(req)
}

// NewThrottledTransport caps outgoing requests at requestsPerMinute over the
// default transport. Non-positive values fall back to 20 per minute.
func NewThrottledTransport(requestsPerMinute int) *ThrottledTransport {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 20
	}
	interval := time.Minute / time.Duration(requestsPerMinute)
	return &ThrottledTransport{
		Limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}
