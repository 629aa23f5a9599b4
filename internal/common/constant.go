// Package common contains shared constants and the error taxonomy used across
// the fittrack client layers.
package common

// AuthorizationHeaderName is the HTTP header that carries the bearer credential
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header value.
const BearerPrefix = "Bearer "

// RequestIDHeaderName tags every outbound request with a correlation id.
const RequestIDHeaderName = "X-Request-ID"

// StatusUnknown is reported on APIError when no HTTP response was received
// (network failure) or the failure could not be classified.
const StatusUnknown = 500

// CredentialKey is the fixed key under which the persisted credential record
// is stored.
const CredentialKey = "user"
