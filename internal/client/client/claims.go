package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the profile claims embedded in the bearer token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id,omitempty"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

// User rebuilds a profile from the claims. The id falls back to the standard
// subject claim.
func (c *Claims) User() models.User {
	id := c.UserID
	if id == "" {
		id = c.Subject
	}
	return models.User{ID: id, Email: c.Email, Name: c.Name}
}

// DecodeCredential reads the stored token and parses its claims without
// checking the signature. It returns (nil, nil) when no token is stored.
func (c *HTTPClient) DecodeCredential(ctx context.Context) (*Claims, error) {
	if c.credentials == nil {
		return nil, nil
	}
	token, err := c.credentials.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("read credential: %w", err)
	}
	if token == "" {
		return nil, nil
	}
	return decodeClaims(token)
}

func decodeClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	return claims, nil
}
