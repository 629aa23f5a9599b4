package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken struct {
	token string
	err   error
}

func (s staticToken) Token(ctx context.Context) (string, error) { return s.token, s.err }

func newTestClient(t *testing.T, h http.HandlerFunc, creds CredentialProvider) *HTTPClient {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := New(Config{BaseURL: ts.URL + "/", Timeout: 2 * time.Second, Credentials: creds})
	require.NoError(t, err)
	return c
}

func requireAPIError(t *testing.T, err error, status int, msg string) *common.APIError {
	t.Helper()
	var ae *common.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, status, ae.Status)
	assert.Equal(t, msg, ae.Message)
	return ae
}

func TestNew_ValidatesBaseURL(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)

	_, err = New(Config{BaseURL: "ftp://example.com"})
	require.Error(t, err)

	c, err := New(Config{BaseURL: "http://localhost:3000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", c.baseURL)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}

func TestGet_SerializesParamsAndDecodes(t *testing.T) {
	var gotURL string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		assert.Equal(t, http.MethodGet, r.Method)
		assert.NotEmpty(t, r.Header.Get(common.RequestIDHeaderName))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"g1"}]`)
	}, nil)

	var out []map[string]string
	err := c.Get(context.Background(), "/api/goals", url.Values{"status": {"open"}, "page": {"2"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "/api/goals?page=2&status=open", gotURL)
	assert.Equal(t, "g1", out[0]["id"])
}

func TestRequests_CarryBearerCredential(t *testing.T) {
	var auth []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = append(auth, r.Header.Get(common.AuthorizationHeaderName))
		w.WriteHeader(http.StatusNoContent)
	}, staticToken{token: "tok"})

	ctx := context.Background()
	require.NoError(t, c.Post(ctx, "/api/goals", map[string]string{"title": "x"}, nil))
	require.NoError(t, c.Put(ctx, "/api/goals/g1", map[string]string{"title": "y"}, nil))
	require.NoError(t, c.Delete(ctx, "/api/goals/g1", nil))
	require.NoError(t, c.Post(ctx, "/api/auth/login", nil, nil, Unauthenticated()))

	assert.Equal(t, []string{"Bearer tok", "Bearer tok", "Bearer tok", ""}, auth)
}

func TestRequests_OmitHeaderWithoutCredential(t *testing.T) {
	var present bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header[common.AuthorizationHeaderName]
		w.WriteHeader(http.StatusOK)
	}, staticToken{})

	require.NoError(t, c.Get(context.Background(), "/api/goals", nil, nil))
	assert.False(t, present)
}

func TestErrorResponse_UsesBodyMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"goal not found"}`)
	}, nil)

	err := c.Delete(context.Background(), "/api/goals/nope", nil)
	requireAPIError(t, err, http.StatusNotFound, "goal not found")
}

func TestErrorResponse_NoBodyMessageFallsBackToTransportMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, nil)

	err := c.Get(context.Background(), "/api/goals", nil, nil)
	requireAPIError(t, err, 500, "request failed with status code 500")
}

func TestErrorResponse_NonJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	}, nil)

	err := c.Get(context.Background(), "/api/goals", nil, nil)
	requireAPIError(t, err, http.StatusBadGateway, "request failed with status code 502")
}

func TestNetworkFailure_ReportsSentinelStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := ts.URL
	ts.Close()

	c, err := New(Config{BaseURL: base, Timeout: time.Second})
	require.NoError(t, err)

	err = c.Get(context.Background(), "/api/goals", nil, nil)
	ae := requireAPIError(t, err, common.StatusUnknown, common.MsgNetworkError)
	assert.NotNil(t, errors.Unwrap(ae))
}

func TestTimeout_IsNetworkFailure(t *testing.T) {
	block := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(func() { close(block); ts.Close() })

	c, err := New(Config{BaseURL: ts.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	err = c.Get(context.Background(), "/slow", nil, nil)
	requireAPIError(t, err, common.StatusUnknown, common.MsgNetworkError)
}

func TestUnexpectedFailures_ReportSentinelStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	}, nil)

	var out map[string]any
	err := c.Get(context.Background(), "/api/goals", nil, &out)
	requireAPIError(t, err, common.StatusUnknown, common.MsgUnexpectedError)

	err = c.Post(context.Background(), "/api/goals", func() {}, nil)
	requireAPIError(t, err, common.StatusUnknown, common.MsgUnexpectedError)

	broken := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent when the credential cannot be read")
	}, staticToken{err: errors.New("store closed")})
	err = broken.Get(context.Background(), "/api/goals", nil, nil)
	requireAPIError(t, err, common.StatusUnknown, common.MsgUnexpectedError)
}

func TestDecodeCredential(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
		Email:            "a@b.com",
		Name:             "Alice",
	}).SignedString([]byte("server-only-secret"))
	require.NoError(t, err)

	c, err := New(Config{BaseURL: "http://localhost", Credentials: staticToken{token: signed}})
	require.NoError(t, err)

	claims, err := c.DecodeCredential(context.Background())
	require.NoError(t, err)
	require.NotNil(t, claims)

	u := claims.User()
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, "Alice", u.Name)
	assert.Empty(t, u.Token)
}

func TestDecodeCredential_AbsentAndMalformed(t *testing.T) {
	c, err := New(Config{BaseURL: "http://localhost", Credentials: staticToken{}})
	require.NoError(t, err)
	claims, err := c.DecodeCredential(context.Background())
	require.NoError(t, err)
	assert.Nil(t, claims)

	c, err = New(Config{BaseURL: "http://localhost"})
	require.NoError(t, err)
	claims, err = c.DecodeCredential(context.Background())
	require.NoError(t, err)
	assert.Nil(t, claims)

	c, err = New(Config{BaseURL: "http://localhost", Credentials: staticToken{token: "not-a-jwt"}})
	require.NoError(t, err)
	_, err = c.DecodeCredential(context.Background())
	require.ErrorContains(t, err, "decode credential")
}
