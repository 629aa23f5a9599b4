// Package models defines the client-side domain entities mirrored from the
// fitness API and the observable state snapshots owned by the hooks.
package models

// User is an account profile. Token is the bearer credential and is set only
// on a User reconstructed from the persisted credential.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token,omitempty"`
}

// WithoutToken returns a copy of u with the credential stripped.
func (u User) WithoutToken() User {
	u.Token = ""
	return u
}

// Credentials is the login/register request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by the login and register endpoints.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
