package hooks

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/credentials"
	"github.com/dmitrijs2005/fittrack/internal/client/services"
	"github.com/dmitrijs2005/fittrack/internal/testutil/fakeapi"
	"github.com/stretchr/testify/require"
)

// env wires real services and transport to an in-memory API.
type env struct {
	api     *fakeapi.API
	store   *credentials.MemoryStore
	auth    services.AuthService
	goalSvc services.GoalService
	session *Session
	goals   *Goals
}

func newEnv(t *testing.T) *env {
	t.Helper()

	api := fakeapi.New()
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	store := credentials.NewMemoryStore()
	c, err := client.New(client.Config{BaseURL: srv.URL, Credentials: store})
	require.NoError(t, err)

	auth := services.NewAuthService(c, store, nil)
	goalSvc := services.NewGoalService(c)
	return &env{
		api:     api,
		store:   store,
		auth:    auth,
		goalSvc: goalSvc,
		session: NewSession(auth, nil),
		goals:   NewGoals(goalSvc, nil),
	}
}

// loggedIn seeds an account and logs the session into it.
func (e *env) loggedIn(t *testing.T) {
	t.Helper()
	e.api.Seed("a@b.com", "Passw0rd1", "Ann")
	_, err := e.session.Login(context.Background(), "a@b.com", "Passw0rd1")
	require.NoError(t, err)
}
