// Package credentials persists the bearer credential between runs and hands it
// to the transport client on every request.
//
// Reads happen on every transport request; writes go through the explicit
// SetCredential/ClearCredential contract and are made only by the auth service
// on login, register and logout.
package credentials

import (
	"context"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
)

// Record is the persisted credential: the bearer token plus the profile that
// came with it.
type Record struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Store is the full read/write contract over the persisted credential.
type Store interface {
	// Token returns "" when no credential is stored.
	Token(ctx context.Context) (string, error)
	// Load returns (nil, nil) when no credential is stored.
	Load(ctx context.Context) (*Record, error)
	SetCredential(ctx context.Context, rec Record) error
	// ClearCredential is idempotent. The remembered email survives it.
	ClearCredential(ctx context.Context) error
	// LastEmail returns the email of the most recent successful login.
	LastEmail(ctx context.Context) (string, error)
}
