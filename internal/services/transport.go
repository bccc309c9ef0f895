package services

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// limitedTransport waits on a shared [rate.Limiter] before every request.
type limitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// NewLimitedClient returns an [http.Client] that sends at most rps requests per second (unlimited when rps <= 0).
//
// A zero timeout means requests never time out.
func NewLimitedClient(base http.RoundTripper, rps float64, timeout time.Duration) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &http.Client{
		Transport: &limitedTransport{base: base, limiter: rate.NewLimiter(limit, 1)},
		Timeout:   timeout,
	}
}
