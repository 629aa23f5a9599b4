package services

import (
	"context"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
)

// call records one transport invocation.
type call struct {
	Method          string
	Path            string
	Body            any
	Unauthenticated bool
}

// fakeClient implements client.Client for service unit tests. Responses are
// looked up by "METHOD path"; a missing entry means success with an empty body.
type fakeClient struct {
	mu        sync.Mutex
	calls     []call
	responses map[string]func(out any)
	errs      map[string]error

	claims    *client.Claims
	claimsErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{responses: map[string]func(any){}, errs: map[string]error{}}
}

func (f *fakeClient) respond(method, path string, fill func(out any)) {
	f.responses[method+" "+path] = fill
}

func (f *fakeClient) fail(method, path string, err error) {
	f.errs[method+" "+path] = err
}

func (f *fakeClient) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeClient) do(method, path string, body, out any, opts []client.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := call{Method: method, Path: path, Body: body}
	if len(opts) > 0 {
		// Only Unauthenticated exists; any option means the header is skipped.
		c.Unauthenticated = true
	}
	f.calls = append(f.calls, c)

	key := method + " " + path
	if err, ok := f.errs[key]; ok {
		return err
	}
	if fill, ok := f.responses[key]; ok && out != nil {
		fill(out)
	}
	return nil
}

func (f *fakeClient) Get(_ context.Context, path string, _ url.Values, out any, opts ...client.RequestOption) error {
	return f.do("GET", path, nil, out, opts)
}

func (f *fakeClient) Post(_ context.Context, path string, body any, out any, opts ...client.RequestOption) error {
	return f.do("POST", path, body, out, opts)
}

func (f *fakeClient) Put(_ context.Context, path string, body any, out any, opts ...client.RequestOption) error {
	return f.do("PUT", path, body, out, opts)
}

func (f *fakeClient) Delete(_ context.Context, path string, out any, opts ...client.RequestOption) error {
	return f.do("DELETE", path, nil, out, opts)
}

func (f *fakeClient) DecodeCredential(context.Context) (*client.Claims, error) {
	return f.claims, f.claimsErr
}
