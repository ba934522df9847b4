package ports

import (
	"context"

	"calq-destination-service/internal/events/core/domain"
)

// Response is what the destination answered.
type Response struct {
	StatusCode int
	Body       []byte
}

// SubmitterPort is the integration runtime: it owns the endpoint, retries,
// request execution and response/error normalization.
//
//	resp != nil, err == nil -> accepted
//	resp != nil, err != nil -> destination answered but refused the call
//	resp == nil, err != nil -> nothing usable came back (network, timeout, ...)
type SubmitterPort interface {
	Submit(ctx context.Context, method, path string, body domain.Payload) (*Response, error)
}
