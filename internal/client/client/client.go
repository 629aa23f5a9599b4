package client

import (
	"context"
	"net/url"
)

// Client is the transport contract the domain services are written against.
// out receives the decoded JSON response body; pass nil to discard it.
type Client interface {
	Get(ctx context.Context, path string, params url.Values, out any, opts ...RequestOption) error
	Post(ctx context.Context, path string, body any, out any, opts ...RequestOption) error
	Put(ctx context.Context, path string, body any, out any, opts ...RequestOption) error
	Delete(ctx context.Context, path string, out any, opts ...RequestOption) error
	DecodeCredential(ctx context.Context) (*Claims, error)
}

// CredentialProvider yields the bearer token for outgoing requests, or ""
// when there is none.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

type requestOptions struct {
	unauthenticated bool
}

// RequestOption tweaks a single request.
type RequestOption func(*requestOptions)

// Unauthenticated omits the Authorization header for this request.
func Unauthenticated() RequestOption {
	return func(o *requestOptions) { o.unauthenticated = true }
}
