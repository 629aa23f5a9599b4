// Package client contains the transport layer of the fittrack client.
//
// # Overview
//
// The package provides:
//  1. A transport contract (see the Client interface) with one method per HTTP
//     verb plus DecodeCredential.
//  2. A concrete implementation over net/http (see HTTPClient) that is built
//     once with a base address and timeout and shared process-wide. It injects
//     the bearer credential read from a CredentialProvider on every request
//     unless the call opts out with Unauthenticated, and tags each request with
//     an X-Request-ID.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying the embedded goose migrations.
//
// # Error Handling
//
// Every failure leaves this package as a *common.APIError:
//   - non-2xx responses carry the HTTP status and the body's "message", or the
//     transport's own "request failed with status code N" when there is none;
//   - requests that never got a response report common.StatusUnknown with
//     common.MsgNetworkError;
//   - anything else reports common.StatusUnknown with common.MsgUnexpectedError.
//
// The underlying net/http error is only reachable through errors.Unwrap.
//
// # Credentials
//
// DecodeCredential parses the claims of the stored token without verifying its
// signature. It is a local convenience; the server verifies on every request.
package client
