// Package services contains the domain services of the fittrack client.
// This file defines the authentication service: login, register, logout and
// restoring the current user from the persisted credential.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/credentials"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/validators"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

const (
	pathLogin    = "/api/auth/login"
	pathRegister = "/api/auth/register"
	pathLogout   = "/api/auth/logout"
)

// AuthService defines authentication operations.
//
// Contract:
//   - Login/Register: validate credentials locally, call the server, persist
//     the returned credential.
//   - Logout: best-effort remote logout, then always clear the local credential.
//   - GetCurrentUser: rebuild the user from the persisted credential without a
//     network call; (nil, nil) when logged out.
//
// Every returned error is a common.Error.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*models.User, error)
}

type authService struct {
	client client.Client
	store  credentials.Store
	logger logging.Logger
}

// NewAuthService constructs an AuthService bound to the transport and the
// credential store the transport reads from.
func NewAuthService(c client.Client, store credentials.Store, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &authService{client: c, store: store, logger: logger.With("service", "auth")}
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	resp, err := a.authenticate(ctx, pathLogin, email, password)
	return resp, normalize(err, common.MsgUnexpectedAuth)
}

func (a *authService) Register(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	resp, err := a.authenticate(ctx, pathRegister, email, password)
	return resp, normalize(err, common.MsgUnexpectedAuth)
}

func (a *authService) authenticate(ctx context.Context, path, email, password string) (*models.AuthResponse, error) {
	if err := validators.ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	var resp models.AuthResponse
	body := models.Credentials{Email: email, Password: password}
	if err := a.client.Post(ctx, path, body, &resp, client.Unauthenticated()); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("auth response carries no token")
	}

	resp.User = resp.User.WithoutToken()
	if err := a.store.SetCredential(ctx, credentials.Record{Token: resp.Token, User: resp.User}); err != nil {
		return nil, fmt.Errorf("persist credential: %w", err)
	}

	a.logger.Info(ctx, "authenticated", "user_id", resp.User.ID)
	return &resp, nil
}

// Logout always leaves the client logged out locally. A failed remote call is
// logged and dropped; only a failure to clear the local credential is returned.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Post(ctx, pathLogout, nil, nil, client.Unauthenticated()); err != nil {
		a.logger.Warn(ctx, "remote logout failed, clearing local credential anyway",
			"status", common.StatusOf(err), "error", common.Message(err))
	}

	if err := a.store.ClearCredential(ctx); err != nil {
		return normalize(fmt.Errorf("clear credential: %w", err), common.MsgUnexpectedAuth)
	}
	return nil
}

func (a *authService) GetCurrentUser(ctx context.Context) (*models.User, error) {
	u, err := a.currentUser(ctx)
	return u, normalize(err, common.MsgUnexpectedAuth)
}

func (a *authService) currentUser(ctx context.Context) (*models.User, error) {
	claims, err := a.client.DecodeCredential(ctx)
	if err != nil {
		return nil, err
	}
	if claims == nil {
		return nil, nil
	}

	rec, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	u := claims.User()
	if u.ID == "" {
		u.ID = rec.User.ID
	}
	if u.Email == "" {
		u.Email = rec.User.Email
	}
	if u.Name == "" {
		u.Name = rec.User.Name
	}
	u.Token = rec.Token
	return &u, nil
}
